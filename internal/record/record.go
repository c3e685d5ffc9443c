// Package record defines the normalized representation of a bibliographic entry.
package record

import (
	"sort"
	"strconv"
	"strings"
)

// Common BibTeX entry types. Unknown types are carried through as-is.
const (
	TypeArticle       = "article"
	TypeBook          = "book"
	TypeInProceedings = "inproceedings"
	TypeMisc          = "misc"
)

// Record represents one parsed bibliographic entry.
//
// Fields holds BibTeX field values keyed by the canonical lower-case field
// name, with values trimmed. SourceKey is the original cite key and is
// treated as opaque.
type Record struct {
	SourceKey string            `json:"source_key"`
	EntryType string            `json:"entry_type"`
	Fields    map[string]string `json:"fields"`
}

// New builds a Record from a raw field map, normalizing field names to
// lower case and trimming values. When two raw names collide after
// lower-casing, the first in sorted raw-name order wins, so the result is
// deterministic regardless of map iteration order.
func New(sourceKey, entryType string, fields map[string]string) Record {
	rec := Record{
		SourceKey: strings.TrimSpace(sourceKey),
		EntryType: strings.ToLower(strings.TrimSpace(entryType)),
		Fields:    make(map[string]string, len(fields)),
	}
	if rec.EntryType == "" {
		rec.EntryType = TypeMisc
	}

	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		canonical := strings.ToLower(strings.TrimSpace(name))
		if canonical == "" {
			continue
		}
		if _, exists := rec.Fields[canonical]; exists {
			continue
		}
		rec.Fields[canonical] = strings.TrimSpace(fields[name])
	}

	return rec
}

// Field returns the value of a field by its canonical name, or "".
func (r Record) Field(name string) string {
	return r.Fields[strings.ToLower(name)]
}

// Title returns the cleaned title, or "".
func (r Record) Title() string {
	return CleanField(r.Field("title"))
}

// Venue returns the journal, falling back to booktitle for proceedings.
func (r Record) Venue() string {
	if j := r.Field("journal"); j != "" {
		return CleanField(j)
	}
	return CleanField(r.Field("booktitle"))
}

// Year returns the publication year, or 0 if absent or non-numeric.
func (r Record) Year() int {
	y, err := strconv.Atoi(strings.TrimSpace(r.Field("year")))
	if err != nil || y <= 0 {
		return 0
	}
	return y
}

// Authors returns the parsed author list.
func (r Record) Authors() []Author {
	return ParseAuthors(r.Field("author"))
}
