package citation

import (
	"github.com/matsen/b2m/internal/identifier"
	"github.com/matsen/b2m/internal/record"
)

// Convert runs the full pipeline over one batch of records: extract
// identifiers, select a key per record, drop superseded arXiv preprints,
// and order the survivors chronologically.
//
// Convert holds no state between calls and is safe to run concurrently
// on independent batches. The only possible error is a *CollisionError:
// two surviving records with the same key.
func Convert(records []record.Record) ([]Entry, error) {
	entries := make([]Entry, 0, len(records))
	for _, rec := range records {
		entries = append(entries, build(rec))
	}

	entries = Deduplicate(entries)

	if err := checkUnique(entries); err != nil {
		return nil, err
	}

	Sort(entries)
	return entries, nil
}

// build assembles the working entry for one record.
func build(rec record.Record) Entry {
	ids := identifier.Extract(rec)
	key, kind := SelectKey(ids, rec.SourceKey)
	return Entry{
		Key:         key,
		Kind:        kind,
		Date:        record.ResolveDate(rec),
		SourceKey:   rec.SourceKey,
		Record:      rec,
		Identifiers: ids,
	}
}

// checkUnique enforces the batch uniqueness invariant after
// deduplication. A surviving collision means either a deduplicator gap
// or genuinely ambiguous input; both must surface, not overwrite.
func checkUnique(entries []Entry) error {
	firstSource := make(map[string]string, len(entries))
	for _, e := range entries {
		if source, seen := firstSource[e.Key]; seen {
			return &CollisionError{Key: e.Key, FirstSource: source, SecondSource: e.SourceKey}
		}
		firstSource[e.Key] = e.SourceKey
	}
	return nil
}
