// Package citation turns bibliographic records into unique, chronologically
// ordered citation entries keyed by their best external identifier.
package citation

import (
	"fmt"

	"github.com/matsen/b2m/internal/identifier"
	"github.com/matsen/b2m/internal/record"
)

// Entry is one emitted citation. Entries are immutable once the pipeline
// returns them.
type Entry struct {
	Key         string                  `json:"key"`  // "kind:value", unique within a batch
	Kind        identifier.Kind         `json:"kind"` // kind of the selected identifier
	Date        record.Date             `json:"date"` // resolved publication date, zero if unknown
	SourceKey   string                  `json:"source_key"`
	Record      record.Record           `json:"-"`
	Identifiers []identifier.Identifier `json:"-"`
}

// Title returns the entry's normalized title.
func (e Entry) Title() string {
	return e.Record.Title()
}

// Venue returns the entry's journal or booktitle.
func (e Entry) Venue() string {
	return e.Record.Venue()
}

// CollisionError reports two distinct source records that resolved to the
// same citation key after deduplication. It is the only fatal batch
// condition: emitting both would silently overwrite one.
type CollisionError struct {
	Key          string
	FirstSource  string
	SecondSource string
}

func (e *CollisionError) Error() string {
	return fmt.Sprintf("duplicate citation key %q: source records %q and %q", e.Key, e.FirstSource, e.SecondSource)
}
