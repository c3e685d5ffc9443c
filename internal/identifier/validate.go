package identifier

import (
	"fmt"
	"regexp"
	"strings"
)

// Result is the outcome of validating one citation key.
type Result struct {
	Key    string `json:"key"`
	OK     bool   `json:"ok"`
	Reason string `json:"reason,omitempty"`
}

var (
	keyRe       = regexp.MustCompile(`^(doi|pmid|pmcid|arxiv|isbn|url|raw):.+$`)
	doiFullRe   = regexp.MustCompile(`^10\.\d{4,9}/[-._;()/:A-Za-z0-9]+$`)
	pmidFullRe  = regexp.MustCompile(`^\d{1,8}$`)
	pmcidFullRe = regexp.MustCompile(`^PMC\d+$`)
	urlFullRe   = regexp.MustCompile(`^https?://\S+$`)
)

// ValidateKey checks one citation key against the key grammar and the
// per-kind value rules used at extraction time. It is pure: no network,
// no state, and every outcome is a Result, never an error.
func ValidateKey(key string) Result {
	kindStr, value, found := strings.Cut(key, ":")
	if !found {
		return fail(key, "missing ':' separator")
	}
	if value == "" {
		return fail(key, "empty value after ':'")
	}
	if !keyRe.MatchString(key) {
		return fail(key, fmt.Sprintf("unrecognized kind %q", kindStr))
	}

	switch Kind(kindStr) {
	case KindDOI:
		if !doiFullRe.MatchString(value) {
			return fail(key, "malformed DOI")
		}
	case KindPMID:
		if !pmidFullRe.MatchString(value) {
			return fail(key, "PMID must be 1-8 digits")
		}
	case KindPMCID:
		if !pmcidFullRe.MatchString(value) {
			return fail(key, "PMCID must be PMC followed by digits")
		}
	case KindArXiv:
		if !arxivNewFull.MatchString(value) && !arxivLegacyRe.MatchString(value) {
			return fail(key, "malformed arXiv id")
		}
	case KindISBN:
		if !ValidISBN(normalizeISBN(value)) {
			return fail(key, "ISBN fails checksum")
		}
	case KindURL:
		if _, ok := extractURL(value); !ok || !urlFullRe.MatchString(value) {
			return fail(key, "malformed URL")
		}
	case KindRaw:
		if strings.TrimSpace(value) == "" {
			return fail(key, "blank raw key")
		}
	}

	return Result{Key: key, OK: true}
}

// ValidateKeys validates a batch of keys. A failing key never aborts the
// rest of the batch.
func ValidateKeys(keys []string) []Result {
	results := make([]Result, len(keys))
	for i, key := range keys {
		results[i] = ValidateKey(key)
	}
	return results
}

func fail(key, reason string) Result {
	return Result{Key: key, Reason: reason}
}
