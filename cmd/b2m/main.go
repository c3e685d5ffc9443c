// Package main provides the b2m CLI entry point.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

// humanOutput controls whether to use human-readable output
var humanOutput bool

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "b2m",
	Short: "Convert BibTeX to Manubot citation keys",
	Long: `b2m converts BibTeX bibliographies into Manubot-style citation lists.

Each record is assigned a canonical citation key (doi:..., pmid:...,
arxiv:..., and so on) derived from the identifiers embedded in its
fields. Preprints superseded by a published version are dropped, and
the output is sorted chronologically. All commands output JSON status
by default for easy integration with other tools.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.Version = Version
}
