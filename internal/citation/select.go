package citation

import "github.com/matsen/b2m/internal/identifier"

// priority is the fixed kind preference for key selection. DOI first: it
// is the most stable and most widely resolvable identifier. Raw is the
// guaranteed fallback and never appears here.
var priority = []identifier.Kind{
	identifier.KindDOI,
	identifier.KindPMID,
	identifier.KindPMCID,
	identifier.KindArXiv,
	identifier.KindISBN,
	identifier.KindURL,
}

// SelectKey chooses the single citation key for one record's identifier
// set. When several identifiers share the winning kind, the first in
// field-scan order wins; that tie-break is deterministic but otherwise
// arbitrary. With no identifiers at all the key is "raw:<sourceKey>".
func SelectKey(ids []identifier.Identifier, sourceKey string) (string, identifier.Kind) {
	for _, kind := range priority {
		for _, id := range ids {
			if id.Kind == kind {
				return id.Key(), kind
			}
		}
	}
	return identifier.RawKey(sourceKey), identifier.KindRaw
}
