package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/matsen/b2m/internal/bibtex"
	"github.com/matsen/b2m/internal/citation"
	"github.com/matsen/b2m/internal/identifier"
	"github.com/matsen/b2m/internal/manubot"
	"github.com/matsen/b2m/internal/record"
	"github.com/spf13/cobra"
)

var (
	convertInputs   []string
	convertOutput   string
	convertValidate bool
)

func init() {
	convertCmd.Flags().StringSliceVarP(&convertInputs, "input", "i", nil, "Input .bib files (globs allowed, repeatable)")
	convertCmd.Flags().StringVarP(&convertOutput, "output", "o", "", "Output YAML file (default stdout)")
	convertCmd.Flags().BoolVar(&convertValidate, "validate", false, "Validate generated keys before writing")
	convertCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(convertCmd)
}

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert BibTeX files to a Manubot citation list",
	Long: `Convert BibTeX files to a Manubot citation list.

Usage:
  b2m convert -i refs.bib
  b2m convert -i 'papers/*.bib' -i extra.bib -o citations.yaml --validate

Records from all inputs are pooled before key derivation, so cross-file
duplicates are detected. With -o the citation list is written to the
file and a summary is printed; without it the YAML goes to stdout.`,
	Args: cobra.NoArgs,
	RunE: runConvert,
}

// ConvertResult summarizes a conversion.
type ConvertResult struct {
	Status     string   `json:"status"`
	Records    int      `json:"records"`
	Citations  int      `json:"citations"`
	Dropped    int      `json:"dropped"`
	ParseIssue []string `json:"parse_issues,omitempty"`
	Output     string   `json:"output,omitempty"`
}

func runConvert(cmd *cobra.Command, args []string) error {
	paths, err := expandInputs(convertInputs)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	if len(paths) == 0 {
		exitWithError(ExitError, "no input files matched")
	}

	var records []record.Record
	var parseIssues []string
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			exitWithError(ExitError, "reading %s: %v", path, err)
		}
		recs, errs := bibtex.Parse(data)
		records = append(records, recs...)
		for _, perr := range errs {
			parseIssues = append(parseIssues, fmt.Sprintf("%s: %v", path, perr))
		}
	}

	entries, err := citation.Convert(records)
	if err != nil {
		var collErr *citation.CollisionError
		if errors.As(err, &collErr) {
			exitWithError(ExitCollision, "%v", err)
		}
		exitWithError(ExitError, "converting records: %v", err)
	}

	if convertValidate {
		keys := make([]string, len(entries))
		for i, e := range entries {
			keys[i] = e.Key
		}
		for _, res := range identifier.ValidateKeys(keys) {
			if !res.OK {
				exitWithError(ExitDataError, "generated key %q failed validation: %s", res.Key, res.Reason)
			}
		}
	}

	out, err := manubot.Render(entries)
	if err != nil {
		exitWithError(ExitError, "rendering citations: %v", err)
	}

	if convertOutput == "" {
		os.Stdout.Write(out)
		return nil
	}
	if err := os.WriteFile(convertOutput, out, 0644); err != nil {
		exitWithError(ExitError, "writing %s: %v", convertOutput, err)
	}

	result := ConvertResult{
		Status:     "ok",
		Records:    len(records),
		Citations:  len(entries),
		Dropped:    len(records) - len(entries),
		ParseIssue: parseIssues,
		Output:     convertOutput,
	}
	if humanOutput {
		outputHuman("Wrote %d citations to %s (%d records, %d dropped)\n",
			result.Citations, result.Output, result.Records, result.Dropped)
		for _, issue := range parseIssues {
			outputHuman("  warning: %s\n", issue)
		}
		return nil
	}
	return outputJSON(result)
}

// expandInputs resolves glob patterns and plain paths. A pattern that
// matches nothing is an error, a plain path is passed through untouched.
func expandInputs(inputs []string) ([]string, error) {
	var paths []string
	for _, in := range inputs {
		matches, err := filepath.Glob(in)
		if err != nil {
			return nil, fmt.Errorf("bad glob %q: %w", in, err)
		}
		if matches == nil {
			if _, statErr := os.Stat(in); statErr != nil {
				return nil, fmt.Errorf("input %q: no such file", in)
			}
			matches = []string{in}
		}
		paths = append(paths, matches...)
	}
	return paths, nil
}
