// Package identifier extracts, normalizes and validates the external
// identifiers a bibliographic record can be cited by.
package identifier

import (
	"regexp"
	"strings"
)

// Kind is the type of an external identifier.
type Kind string

// Identifier kinds, in no particular order. Priority between kinds is the
// citation package's concern.
const (
	KindDOI   Kind = "doi"
	KindPMID  Kind = "pmid"
	KindPMCID Kind = "pmcid"
	KindArXiv Kind = "arxiv"
	KindISBN  Kind = "isbn"
	KindURL   Kind = "url"
	KindRaw   Kind = "raw"
)

// Kinds lists every recognized kind.
var Kinds = []Kind{KindDOI, KindPMID, KindPMCID, KindArXiv, KindISBN, KindURL, KindRaw}

// Identifier is one normalized external identifier found in a record.
type Identifier struct {
	Kind  Kind   `json:"kind"`
	Value string `json:"value"` // normalized form, versions retained
	Raw   string `json:"raw"`   // original matched substring
}

// Key renders the identifier as a citation key: "kind:value".
func (id Identifier) Key() string {
	return string(id.Kind) + ":" + id.Value
}

var arxivVersionRe = regexp.MustCompile(`v\d+$`)

// DedupKey returns the comparison form of the identifier. It matches
// Value except for arXiv ids, where the version suffix is stripped so
// that 1234.5678v2 and 1234.5678 compare equal.
func (id Identifier) DedupKey() string {
	if id.Kind == KindArXiv {
		return arxivVersionRe.ReplaceAllString(id.Value, "")
	}
	return id.Value
}

// RawKey builds the fallback key for a record with no identifiers.
func RawKey(sourceKey string) string {
	return string(KindRaw) + ":" + strings.TrimSpace(sourceKey)
}
