package record

import "strings"

// Author represents a paper author.
type Author struct {
	First string `json:"first"`
	Last  string `json:"last"`
}

// String formats an author as "First Last".
func (a Author) String() string {
	if a.First == "" {
		return a.Last
	}
	return a.First + " " + a.Last
}

// ParseAuthors splits a BibTeX author field into individual authors.
// Entries are separated by " and "; each may be "Last, First" or
// "First Last" form.
func ParseAuthors(field string) []Author {
	field = CleanField(field)
	if field == "" {
		return nil
	}

	var authors []Author
	for _, part := range splitAnd(field) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		authors = append(authors, parseAuthor(part))
	}
	return authors
}

// splitAnd splits on the BibTeX author separator " and " (word-bounded,
// so names like "Anderson" are untouched).
func splitAnd(s string) []string {
	var parts []string
	fields := strings.Fields(s)
	start := 0
	for i, f := range fields {
		if f == "and" {
			parts = append(parts, strings.Join(fields[start:i], " "))
			start = i + 1
		}
	}
	parts = append(parts, strings.Join(fields[start:], " "))
	return parts
}

func parseAuthor(name string) Author {
	if last, first, ok := strings.Cut(name, ","); ok {
		return Author{
			First: strings.TrimSpace(first),
			Last:  strings.TrimSpace(last),
		}
	}

	words := strings.Fields(name)
	if len(words) == 1 {
		return Author{Last: words[0]}
	}
	return Author{
		First: strings.Join(words[:len(words)-1], " "),
		Last:  words[len(words)-1],
	}
}
