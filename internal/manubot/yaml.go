// Package manubot renders citation entries as Manubot-style YAML and
// reads citation keys back out of existing YAML files.
package manubot

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/matsen/b2m/internal/citation"
)

// Citation is the YAML shape of one emitted citation. The journal field
// is emitted as "publisher" and the URL as "link": that is what the
// website templates consuming these files expect.
type Citation struct {
	ID        string   `yaml:"id"`
	Title     string   `yaml:"title,omitempty"`
	Authors   []string `yaml:"authors,omitempty"`
	Publisher string   `yaml:"publisher,omitempty"`
	Year      int      `yaml:"year,omitempty"`
	Date      string   `yaml:"date,omitempty"`
	Link      string   `yaml:"link,omitempty"`
}

// FromEntry maps a pipeline entry onto its YAML shape.
func FromEntry(e citation.Entry) Citation {
	c := Citation{
		ID:        e.Key,
		Title:     e.Record.Title(),
		Publisher: e.Record.Venue(),
		Year:      e.Date.Year,
		Date:      e.Date.String(),
		Link:      e.Record.Field("url"),
	}
	for _, a := range e.Record.Authors() {
		c.Authors = append(c.Authors, a.String())
	}
	return c
}

// Render encodes entries as a YAML sequence in emission order.
func Render(entries []citation.Entry) ([]byte, error) {
	citations := make([]Citation, len(entries))
	for i, e := range entries {
		citations[i] = FromEntry(e)
	}

	out, err := yaml.Marshal(citations)
	if err != nil {
		return nil, fmt.Errorf("encoding citations: %w", err)
	}
	return out, nil
}

// ReadKeys extracts the citation keys from an existing YAML file. Both
// the bare-list form and the older {citations: [...]} wrapper are
// accepted; entries without an id contribute an empty key so that the
// validator can report them by position.
func ReadKeys(data []byte) ([]string, error) {
	var list []struct {
		ID string `yaml:"id"`
	}

	if err := yaml.Unmarshal(data, &list); err != nil {
		var wrapped struct {
			Citations []struct {
				ID string `yaml:"id"`
			} `yaml:"citations"`
		}
		if werr := yaml.Unmarshal(data, &wrapped); werr != nil {
			return nil, fmt.Errorf("parsing citation YAML: %w", err)
		}
		list = wrapped.Citations
	}

	keys := make([]string, len(list))
	for i, c := range list {
		keys[i] = c.ID
	}
	return keys, nil
}
