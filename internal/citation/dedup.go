package citation

import (
	"strings"

	"github.com/matsen/b2m/internal/identifier"
)

// Deduplicate drops arXiv-keyed entries that have a published counterpart
// in the batch. The published entry supersedes the preprint wholesale:
// its key and fields win and nothing from the preprint is merged in.
// Entries with no duplicate pass through unchanged, in order.
func Deduplicate(entries []Entry) []Entry {
	result := make([]Entry, 0, len(entries))
	for i, e := range entries {
		if e.Kind == identifier.KindArXiv && hasPublishedCounterpart(entries, i) {
			continue
		}
		result = append(result, e)
	}
	return result
}

// hasPublishedCounterpart reports whether another entry supersedes the
// arXiv-keyed entry at index i. A counterpart either carries a
// CoRR-tagged venue with a matching arXiv id, or a non-arXiv key with an
// exactly matching title.
func hasPublishedCounterpart(entries []Entry, i int) bool {
	candidate := entries[i]
	title := normalizeTitle(candidate.Title())

	for j, other := range entries {
		if j == i || other.Kind == identifier.KindArXiv {
			continue
		}
		if venueIsCoRR(other.Venue()) && sharesArXivID(candidate, other) {
			return true
		}
		if title != "" && normalizeTitle(other.Title()) == title {
			return true
		}
	}
	return false
}

// venueIsCoRR reports whether a venue contains the CoRR token.
func venueIsCoRR(venue string) bool {
	for _, token := range strings.FieldsFunc(venue, func(r rune) bool {
		return r == ' ' || r == ',' || r == ';' || r == '(' || r == ')'
	}) {
		if strings.EqualFold(token, "corr") {
			return true
		}
	}
	return false
}

// sharesArXivID reports whether the two entries have a common arXiv
// identifier, compared version-stripped.
func sharesArXivID(a, b Entry) bool {
	for _, ida := range a.Identifiers {
		if ida.Kind != identifier.KindArXiv {
			continue
		}
		for _, idb := range b.Identifiers {
			if idb.Kind == identifier.KindArXiv && ida.DedupKey() == idb.DedupKey() {
				return true
			}
		}
	}
	return false
}

// normalizeTitle folds case and whitespace for exact-title comparison.
func normalizeTitle(title string) string {
	return strings.ToLower(strings.Join(strings.Fields(title), " "))
}
