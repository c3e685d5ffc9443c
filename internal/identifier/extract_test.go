package identifier

import (
	"testing"

	"github.com/matsen/b2m/internal/record"
)

func rec(fields map[string]string) record.Record {
	return record.New("test-key", "article", fields)
}

func findKind(ids []Identifier, kind Kind) (Identifier, bool) {
	for _, id := range ids {
		if id.Kind == kind {
			return id, true
		}
	}
	return Identifier{}, false
}

func TestExtract_DOI(t *testing.T) {
	tests := []struct {
		name  string
		field string
		value string
		want  string
	}{
		{"bare", "doi", "10.1234/example", "10.1234/example"},
		{"doi prefix", "doi", "doi:10.1234/example", "10.1234/example"},
		{"resolver url", "doi", "https://doi.org/10.1234/example", "10.1234/example"},
		{"dx resolver", "url", "https://dx.doi.org/10.1038/s41467-021-23778-6", "10.1038/s41467-021-23778-6"},
		{"embedded in note", "note", "See doi:10.1093/molbev/msaa123 for details", "10.1093/molbev/msaa123"},
		{"trailing punctuation", "note", "published as 10.1234/example.", "10.1234/example"},
		{"case preserved", "doi", "10.1234/AbC.DeF", "10.1234/AbC.DeF"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ids := Extract(rec(map[string]string{tt.field: tt.value}))
			id, ok := findKind(ids, KindDOI)
			if !ok {
				t.Fatalf("Extract() found no DOI in %q", tt.value)
			}
			if id.Value != tt.want {
				t.Errorf("DOI value = %q, want %q", id.Value, tt.want)
			}
		})
	}
}

func TestExtract_NoDOIInPlainText(t *testing.T) {
	ids := Extract(rec(map[string]string{"note": "a perfectly ordinary note"}))
	if _, ok := findKind(ids, KindDOI); ok {
		t.Error("Extract() found a DOI where none exists")
	}
}

func TestExtract_PMID(t *testing.T) {
	t.Run("pmid field", func(t *testing.T) {
		ids := Extract(rec(map[string]string{"pmid": "12345678"}))
		id, ok := findKind(ids, KindPMID)
		if !ok || id.Value != "12345678" {
			t.Fatalf("Extract() = %v, want pmid 12345678", ids)
		}
	})

	t.Run("pubmed url", func(t *testing.T) {
		ids := Extract(rec(map[string]string{"url": "https://pubmed.ncbi.nlm.nih.gov/31978945/"}))
		id, ok := findKind(ids, KindPMID)
		if !ok || id.Value != "31978945" {
			t.Fatalf("Extract() = %v, want pmid 31978945", ids)
		}
	})

	t.Run("bare digits not in pmid field", func(t *testing.T) {
		ids := Extract(rec(map[string]string{"note": "8675309"}))
		if _, ok := findKind(ids, KindPMID); ok {
			t.Error("untagged digits must not become a PMID")
		}
	})

	t.Run("too many digits", func(t *testing.T) {
		ids := Extract(rec(map[string]string{"pmid": "123456789"}))
		if _, ok := findKind(ids, KindPMID); ok {
			t.Error("9-digit value must not become a PMID")
		}
	})
}

func TestExtract_PMCID(t *testing.T) {
	ids := Extract(rec(map[string]string{"note": "available as pmc7654321"}))
	id, ok := findKind(ids, KindPMCID)
	if !ok {
		t.Fatal("Extract() found no PMCID")
	}
	if id.Value != "PMC7654321" {
		t.Errorf("PMCID value = %q, want %q", id.Value, "PMC7654321")
	}
}

func TestExtract_ArXiv(t *testing.T) {
	tests := []struct {
		name   string
		fields map[string]string
		want   string
	}{
		{"eprint field", map[string]string{"eprint": "2301.12345"}, "2301.12345"},
		{"versioned", map[string]string{"eprint": "1234.5678v2"}, "1234.5678v2"},
		{"arXiv prefix", map[string]string{"eprint": "arXiv:2301.12345"}, "2301.12345"},
		{"legacy form in eprint", map[string]string{"eprint": "math.GT/0309136"}, "math.GT/0309136"},
		{"abs url", map[string]string{"url": "https://arxiv.org/abs/2301.12345v1"}, "2301.12345v1"},
		{"corr journal volume", map[string]string{"journal": "CoRR abs/2106.01234"}, "2106.01234"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ids := Extract(rec(tt.fields))
			id, ok := findKind(ids, KindArXiv)
			if !ok {
				t.Fatalf("Extract() found no arXiv id in %v", tt.fields)
			}
			if id.Value != tt.want {
				t.Errorf("arXiv value = %q, want %q", id.Value, tt.want)
			}
		})
	}

	t.Run("legacy form needs tagged field", func(t *testing.T) {
		ids := Extract(rec(map[string]string{"note": "math.GT/0309136"}))
		if _, ok := findKind(ids, KindArXiv); ok {
			t.Error("legacy arXiv form must only be accepted from eprint/arxiv fields")
		}
	})
}

func TestExtract_ArXivVersionDedup(t *testing.T) {
	// v1 and v2 of the same id are the same identifier; first scan wins.
	ids := Extract(rec(map[string]string{
		"eprint": "1234.5678v1",
		"url":    "https://arxiv.org/abs/1234.5678v2",
	}))

	var count int
	var got Identifier
	for _, id := range ids {
		if id.Kind == KindArXiv {
			count++
			got = id
		}
	}
	if count != 1 {
		t.Fatalf("got %d arXiv identifiers, want 1", count)
	}
	if got.Value != "1234.5678v1" {
		t.Errorf("arXiv value = %q, want the first-scanned %q", got.Value, "1234.5678v1")
	}
	if got.DedupKey() != "1234.5678" {
		t.Errorf("DedupKey() = %q, want %q", got.DedupKey(), "1234.5678")
	}
}

func TestExtract_ISBN(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  string
	}{
		{"isbn13 hyphenated", "978-3-16-148410-0", "9783161484100"},
		{"isbn13 bare", "9780306406157", "9780306406157"},
		{"isbn10", "0-306-40615-2", "0306406152"},
		{"isbn10 x check digit", "097522980x", "097522980X"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ids := Extract(rec(map[string]string{"isbn": tt.value}))
			id, ok := findKind(ids, KindISBN)
			if !ok {
				t.Fatalf("Extract() found no ISBN in %q", tt.value)
			}
			if id.Value != tt.want {
				t.Errorf("ISBN value = %q, want %q", id.Value, tt.want)
			}
		})
	}
}

func TestExtract_ISBNChecksumFailureIsSilent(t *testing.T) {
	// Correct shapes, wrong check digits: extraction misses, never errors.
	bad := []string{
		"978-3-16-148410-1",
		"9780306406158",
		"0-306-40615-3",
		"0975229801",
	}
	for _, value := range bad {
		ids := Extract(rec(map[string]string{"isbn": value}))
		if _, ok := findKind(ids, KindISBN); ok {
			t.Errorf("Extract() accepted checksum-invalid ISBN %q", value)
		}
	}
}

func TestExtract_URL(t *testing.T) {
	ids := Extract(rec(map[string]string{"url": "https://example.org/paper?id=7"}))
	id, ok := findKind(ids, KindURL)
	if !ok {
		t.Fatal("Extract() found no URL")
	}
	// Verbatim, trimmed; no query stripping.
	if id.Value != "https://example.org/paper?id=7" {
		t.Errorf("URL value = %q", id.Value)
	}

	ids = Extract(rec(map[string]string{"url": "ftp://example.org/paper"}))
	if _, ok := findKind(ids, KindURL); ok {
		t.Error("non-http scheme must not become a URL identifier")
	}
}

func TestExtract_EmptyRecord(t *testing.T) {
	if ids := Extract(rec(nil)); len(ids) != 0 {
		t.Errorf("Extract() = %v, want none", ids)
	}
}
