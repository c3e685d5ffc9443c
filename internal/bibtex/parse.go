// Package bibtex parses BibTeX text into raw bibliographic records.
//
// The parser is deliberately tolerant: it handles the entry shapes DBLP
// and common reference managers emit (brace and quote delimited values,
// nested braces, numeric bare values) and collects per-entry errors
// instead of failing the whole file.
package bibtex

import (
	"fmt"
	"strings"

	"github.com/matsen/b2m/internal/record"
)

// Parse extracts records from BibTeX text. Entries that cannot be parsed
// are reported in the error slice; parsing always continues with the
// next entry.
func Parse(data []byte) ([]record.Record, []error) {
	p := &parser{input: string(data)}

	var records []record.Record
	var errs []error

	for {
		entryType, ok := p.nextEntry()
		if !ok {
			break
		}

		switch strings.ToLower(entryType) {
		case "comment", "preamble", "string":
			// Not bibliographic entries; skip their body.
			if err := p.skipBody(); err != nil {
				errs = append(errs, fmt.Errorf("@%s: %w", entryType, err))
			}
			continue
		}

		rec, err := p.parseEntry(entryType)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		records = append(records, rec)
	}

	return records, errs
}

type parser struct {
	input      string
	pos        int
	entryStart int // offset of the current entry's '@'
}

// nextEntry advances to the next '@', reads the entry type, and consumes
// the opening brace. Returns false when no further entry exists.
func (p *parser) nextEntry() (string, bool) {
	for {
		at := strings.IndexByte(p.input[p.pos:], '@')
		if at < 0 {
			return "", false
		}
		p.entryStart = p.pos + at
		p.pos += at + 1

		start := p.pos
		for p.pos < len(p.input) && isNameChar(p.input[p.pos]) {
			p.pos++
		}
		entryType := p.input[start:p.pos]
		p.skipSpace()

		if entryType == "" || p.pos >= len(p.input) || p.input[p.pos] != '{' {
			// A stray '@' (e.g. in an email address); keep scanning.
			continue
		}
		p.pos++ // consume '{'
		return entryType, true
	}
}

// skipBody consumes a balanced-brace body whose opening brace has
// already been read.
func (p *parser) skipBody() error {
	depth := 1
	for p.pos < len(p.input) {
		switch p.input[p.pos] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				p.pos++
				return nil
			}
		}
		p.pos++
	}
	return fmt.Errorf("unterminated body")
}

// parseEntry reads "key, field = value, ..." up to the closing brace.
func (p *parser) parseEntry(entryType string) (record.Record, error) {
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.input) && p.input[p.pos] != ',' && p.input[p.pos] != '}' && !isSpace(p.input[p.pos]) {
		p.pos++
	}
	key := strings.TrimSpace(p.input[start:p.pos])
	if key == "" {
		p.recover()
		return record.Record{}, fmt.Errorf("@%s: entry has no cite key", entryType)
	}

	fields := make(map[string]string)
	for {
		p.skipSpace()
		if p.pos >= len(p.input) {
			p.recover()
			return record.Record{}, fmt.Errorf("@%s{%s}: unterminated entry", entryType, key)
		}
		switch p.input[p.pos] {
		case '}':
			p.pos++
			return record.New(key, entryType, fields), nil
		case ',':
			p.pos++
			continue
		}

		name, value, err := p.parseField()
		if err != nil {
			p.recover()
			return record.Record{}, fmt.Errorf("@%s{%s}: %w", entryType, key, err)
		}
		if _, exists := fields[name]; !exists {
			fields[name] = value
		}
	}
}

// parseField reads one "name = value" pair. Values may be brace
// delimited (nesting allowed), quote delimited, or bare tokens; '#'
// concatenations are joined with a space.
func (p *parser) parseField() (string, string, error) {
	start := p.pos
	for p.pos < len(p.input) && isNameChar(p.input[p.pos]) {
		p.pos++
	}
	name := strings.ToLower(strings.TrimSpace(p.input[start:p.pos]))
	if name == "" {
		return "", "", fmt.Errorf("expected field name at offset %d", p.pos)
	}

	p.skipSpace()
	if p.pos >= len(p.input) || p.input[p.pos] != '=' {
		return "", "", fmt.Errorf("field %q: expected '='", name)
	}
	p.pos++

	var parts []string
	for {
		p.skipSpace()
		part, err := p.parseValuePart()
		if err != nil {
			return "", "", fmt.Errorf("field %q: %w", name, err)
		}
		parts = append(parts, part)

		p.skipSpace()
		if p.pos < len(p.input) && p.input[p.pos] == '#' {
			p.pos++
			continue
		}
		break
	}

	return name, strings.Join(parts, " "), nil
}

func (p *parser) parseValuePart() (string, error) {
	if p.pos >= len(p.input) {
		return "", fmt.Errorf("unterminated value")
	}

	switch p.input[p.pos] {
	case '{':
		p.pos++
		start := p.pos
		depth := 1
		for p.pos < len(p.input) {
			switch p.input[p.pos] {
			case '{':
				depth++
			case '}':
				depth--
				if depth == 0 {
					value := p.input[start:p.pos]
					p.pos++
					return value, nil
				}
			}
			p.pos++
		}
		return "", fmt.Errorf("unterminated braced value")

	case '"':
		p.pos++
		start := p.pos
		depth := 0
		for p.pos < len(p.input) {
			switch p.input[p.pos] {
			case '{':
				depth++
			case '}':
				depth--
			case '"':
				if depth == 0 {
					value := p.input[start:p.pos]
					p.pos++
					return value, nil
				}
			}
			p.pos++
		}
		return "", fmt.Errorf("unterminated quoted value")

	default:
		// Bare token: a number or an undefined macro name.
		start := p.pos
		for p.pos < len(p.input) && !isSpace(p.input[p.pos]) &&
			p.input[p.pos] != ',' && p.input[p.pos] != '}' && p.input[p.pos] != '#' {
			p.pos++
		}
		if p.pos == start {
			return "", fmt.Errorf("empty value")
		}
		return p.input[start:p.pos], nil
	}
}

// recover repositions just past the broken entry's '@' and rescans for
// the next one, so an unterminated value cannot swallow the entries
// that follow it.
func (p *parser) recover() {
	from := p.entryStart + 1
	if from > len(p.input) {
		from = len(p.input)
	}
	if at := strings.IndexByte(p.input[from:], '@'); at >= 0 {
		p.pos = from + at
	} else {
		p.pos = len(p.input)
	}
}

func (p *parser) skipSpace() {
	for p.pos < len(p.input) && isSpace(p.input[p.pos]) {
		p.pos++
	}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isNameChar(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	case c == '_', c == '-', c == '.', c == ':', c == '+':
		return true
	}
	return false
}
