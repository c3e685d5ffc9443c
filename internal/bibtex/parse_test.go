package bibtex

import "testing"

func TestParse_SingleEntry(t *testing.T) {
	data := []byte(`@article{smith2020,
  author  = {Smith, John and Doe, Jane},
  title   = {An {Important} Result},
  journal = {Nature},
  year    = {2020},
  doi     = {10.1234/example},
}`)

	records, errs := Parse(data)
	if len(errs) > 0 {
		t.Fatalf("Parse() errors: %v", errs)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}

	rec := records[0]
	if rec.SourceKey != "smith2020" {
		t.Errorf("SourceKey = %q", rec.SourceKey)
	}
	if rec.EntryType != "article" {
		t.Errorf("EntryType = %q", rec.EntryType)
	}
	if got := rec.Field("doi"); got != "10.1234/example" {
		t.Errorf("doi = %q", got)
	}
	if got := rec.Field("title"); got != "An {Important} Result" {
		t.Errorf("title = %q (cleanup is the record package's job)", got)
	}
}

func TestParse_DBLPShapedEntry(t *testing.T) {
	data := []byte(`@article{DBLP:journals/corr/abs-2301-12345,
  author    = {Jane Doe},
  title     = {A Preprint},
  journal   = {CoRR},
  volume    = {abs/2301.12345},
  year      = {2023},
  url       = {https://arxiv.org/abs/2301.12345},
  eprinttype = {arXiv},
  eprint    = {2301.12345}
}`)

	records, errs := Parse(data)
	if len(errs) > 0 {
		t.Fatalf("Parse() errors: %v", errs)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	rec := records[0]
	if rec.SourceKey != "DBLP:journals/corr/abs-2301-12345" {
		t.Errorf("SourceKey = %q", rec.SourceKey)
	}
	if got := rec.Field("eprint"); got != "2301.12345" {
		t.Errorf("eprint = %q", got)
	}
}

func TestParse_ValueForms(t *testing.T) {
	data := []byte(`@book{k1,
  title     = "A Quoted Title",
  year      = 1999,
  publisher = {Nested {Braces {Deep}} Here},
  month     = jan # " 1st"
}`)

	records, errs := Parse(data)
	if len(errs) > 0 {
		t.Fatalf("Parse() errors: %v", errs)
	}
	rec := records[0]

	if got := rec.Field("title"); got != "A Quoted Title" {
		t.Errorf("quoted title = %q", got)
	}
	if got := rec.Field("year"); got != "1999" {
		t.Errorf("bare year = %q", got)
	}
	if got := rec.Field("publisher"); got != "Nested {Braces {Deep}} Here" {
		t.Errorf("nested braces = %q", got)
	}
	if got := rec.Field("month"); got != `jan  1st` {
		t.Errorf("concatenated month = %q", got)
	}
}

func TestParse_SkipsNonEntries(t *testing.T) {
	data := []byte(`@comment{this is ignored}
@string{nature = "Nature"}
@article{real, title = {Kept}, year = {2020}}
`)

	records, errs := Parse(data)
	if len(errs) > 0 {
		t.Fatalf("Parse() errors: %v", errs)
	}
	if len(records) != 1 || records[0].SourceKey != "real" {
		t.Errorf("records = %v, want just the article", records)
	}
}

func TestParse_BrokenEntryDoesNotAbort(t *testing.T) {
	data := []byte(`@article{broken,
  title = {Never Closed
@article{fine, title = {Good}, year = {2021}}
`)

	records, errs := Parse(data)
	if len(errs) != 1 {
		t.Fatalf("got %d errors, want 1: %v", len(errs), errs)
	}
	if len(records) != 1 || records[0].SourceKey != "fine" {
		t.Fatalf("records = %v, want the parseable entry", records)
	}
}

func TestParse_StrayAt(t *testing.T) {
	data := []byte(`Contact me @ the office.
@misc{key, note = {email: someone@example.org}, year = {2020}}
`)

	records, errs := Parse(data)
	if len(errs) > 0 {
		t.Fatalf("Parse() errors: %v", errs)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	if got := records[0].Field("note"); got != "email: someone@example.org" {
		t.Errorf("note = %q", got)
	}
}

func TestParse_Empty(t *testing.T) {
	records, errs := Parse(nil)
	if len(records) != 0 || len(errs) != 0 {
		t.Errorf("Parse(nil) = %v, %v; want nothing", records, errs)
	}
}
