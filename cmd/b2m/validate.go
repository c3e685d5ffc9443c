package main

import (
	"os"
	"strings"

	"github.com/matsen/b2m/internal/identifier"
	"github.com/matsen/b2m/internal/manubot"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(validateCmd)
}

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Validate citation keys in a Manubot YAML file",
	Long: `Validate citation keys in a Manubot YAML file.

Usage:
  b2m validate citations.yaml

Each id is checked against the key grammar (kind:value) and the
per-kind value rules. Exit code is 3 when any key fails.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

// ValidateResult is the full validation report for one file.
type ValidateResult struct {
	Status  string              `json:"status"`
	Total   int                 `json:"total"`
	Invalid int                 `json:"invalid"`
	Kinds   map[string]int      `json:"kinds"`
	Results []identifier.Result `json:"results"`
}

func runValidate(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		exitWithError(ExitError, "reading %s: %v", args[0], err)
	}

	keys, err := manubot.ReadKeys(data)
	if err != nil {
		exitWithError(ExitDataError, "parsing %s: %v", args[0], err)
	}

	results := identifier.ValidateKeys(keys)
	invalid := 0
	kinds := make(map[string]int)
	for _, r := range results {
		if !r.OK {
			invalid++
			continue
		}
		kind, _, _ := strings.Cut(r.Key, ":")
		kinds[kind]++
	}

	result := ValidateResult{
		Status:  "ok",
		Total:   len(results),
		Invalid: invalid,
		Kinds:   kinds,
		Results: results,
	}
	if invalid > 0 {
		result.Status = "invalid"
	}

	if humanOutput {
		outputHuman("%d keys, %d invalid\n", result.Total, result.Invalid)
		for _, r := range results {
			if !r.OK {
				outputHuman("  %s: %s\n", truncateString(r.Key, summaryTitleMaxLen), r.Reason)
			}
		}
		for _, k := range identifier.Kinds {
			if n := kinds[string(k)]; n > 0 {
				outputHuman("  %s: %d\n", k, n)
			}
		}
	} else if err := outputJSON(result); err != nil {
		return err
	}

	if invalid > 0 {
		os.Exit(ExitDataError)
	}
	return nil
}
