package identifier

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/matsen/b2m/internal/record"
)

// scanFields is the fixed field-scan order. Within one kind, the first
// match in this order wins, which makes the selector's same-kind
// tie-break deterministic.
var scanFields = []string{"doi", "pmid", "pmcid", "eprint", "arxiv", "isbn", "url", "note", "journal"}

var (
	doiRe = regexp.MustCompile(`10\.\d{4,9}/[-._;()/:A-Za-z0-9]+`)

	pmidBareRe = regexp.MustCompile(`^\d{1,8}$`)
	pmidURLRe  = regexp.MustCompile(`(?i)pubmed[^0-9]*(\d{1,8})`)

	pmcidRe = regexp.MustCompile(`(?i)PMC(\d+)`)

	arxivNewRe    = regexp.MustCompile(`(?:arXiv:)?(\d{4}\.\d{4,5}(?:v\d+)?)`)
	arxivNewFull  = regexp.MustCompile(`^\d{4}\.\d{4,5}(?:v\d+)?$`)
	arxivLegacyRe = regexp.MustCompile(`^[a-z-]+(?:\.[A-Z]{2})?/\d{7}$`)

	isbnCandidateRe = regexp.MustCompile(`[0-9][0-9Xx -]{8,16}[0-9Xx]`)
)

// Extract scans a record's fields for recognizable identifiers. The
// result is deduplicated by (kind, comparison value) and ordered by the
// field-scan order. Extraction never fails: malformed candidates are
// simply not returned.
func Extract(rec record.Record) []Identifier {
	var ids []Identifier
	seen := make(map[string]bool)

	add := func(id Identifier) {
		k := string(id.Kind) + "\x00" + id.DedupKey()
		if seen[k] {
			return
		}
		seen[k] = true
		ids = append(ids, id)
	}

	for _, field := range scanFields {
		value := rec.Field(field)
		if value == "" {
			continue
		}

		if doi, raw, ok := extractDOI(value); ok {
			add(Identifier{Kind: KindDOI, Value: doi, Raw: raw})
		}
		if pmid, raw, ok := extractPMID(field, value); ok {
			add(Identifier{Kind: KindPMID, Value: pmid, Raw: raw})
		}
		if m := pmcidRe.FindStringSubmatch(value); m != nil {
			add(Identifier{Kind: KindPMCID, Value: "PMC" + m[1], Raw: m[0]})
		}
		if arxiv, raw, ok := extractArXiv(field, value); ok {
			add(Identifier{Kind: KindArXiv, Value: arxiv, Raw: raw})
		}
		if isbn, raw, ok := extractISBN(value); ok {
			add(Identifier{Kind: KindISBN, Value: isbn, Raw: raw})
		}
		if u, ok := extractURL(value); ok {
			add(Identifier{Kind: KindURL, Value: u, Raw: u})
		}
	}

	return ids
}

// extractDOI finds a DOI in text, stripping any doi:/resolver wrapper.
// The suffix keeps its original case: DOIs are case-insensitive to
// resolvers but the registered form is not ours to fold.
func extractDOI(text string) (value, raw string, ok bool) {
	stripped := strings.TrimSpace(text)
	for _, prefix := range []string{"doi:", "DOI:", "https://doi.org/", "http://doi.org/", "https://dx.doi.org/", "http://dx.doi.org/", "doi.org/"} {
		stripped = strings.TrimPrefix(stripped, prefix)
	}

	match := doiRe.FindString(stripped)
	if match == "" {
		return "", "", false
	}
	return strings.TrimRight(match, ".,;:)"), match, true
}

// extractPMID accepts a bare digit string only from a field explicitly
// tagged as a PubMed id, or digits embedded in a PubMed URL.
func extractPMID(field, value string) (pmid, raw string, ok bool) {
	if field == "pmid" {
		trimmed := strings.TrimSpace(strings.TrimPrefix(strings.TrimPrefix(value, "PMID:"), "pmid:"))
		trimmed = strings.TrimSpace(trimmed)
		if pmidBareRe.MatchString(trimmed) {
			return trimmed, value, true
		}
		return "", "", false
	}

	if strings.Contains(strings.ToLower(value), "pubmed") {
		if m := pmidURLRe.FindStringSubmatch(value); m != nil {
			return m[1], m[0], true
		}
	}
	return "", "", false
}

// extractArXiv accepts the modern YYMM.NNNNN[vN] form anywhere, and the
// legacy archive-class/YYMMNNN form only from an eprint or arxiv field,
// where a slash-bearing token is unambiguous.
func extractArXiv(field, value string) (id, raw string, ok bool) {
	tagged := field == "eprint" || field == "arxiv"

	if tagged {
		trimmed := strings.TrimSpace(strings.TrimPrefix(strings.TrimPrefix(value, "arXiv:"), "arxiv:"))
		if arxivNewFull.MatchString(trimmed) || arxivLegacyRe.MatchString(trimmed) {
			return trimmed, value, true
		}
	}

	if m := arxivNewRe.FindStringSubmatch(value); m != nil {
		return m[1], m[0], true
	}
	return "", "", false
}

// extractISBN finds a checksum-valid ISBN-10 or ISBN-13. Candidates that
// fail the checksum are rejected, not extracted.
func extractISBN(value string) (isbn, raw string, ok bool) {
	for _, candidate := range isbnCandidateRe.FindAllString(value, -1) {
		normalized := normalizeISBN(candidate)
		if ValidISBN(normalized) {
			return normalized, candidate, true
		}
	}
	return "", "", false
}

// extractURL accepts a field whose whole value is an http(s) URL.
func extractURL(value string) (string, bool) {
	trimmed := strings.TrimSpace(value)
	if !strings.HasPrefix(trimmed, "http://") && !strings.HasPrefix(trimmed, "https://") {
		return "", false
	}
	u, err := url.Parse(trimmed)
	if err != nil || u.Host == "" {
		return "", false
	}
	return trimmed, true
}
