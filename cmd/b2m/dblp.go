package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/matsen/b2m/internal/bibtex"
	"github.com/matsen/b2m/internal/cache"
	"github.com/matsen/b2m/internal/citation"
	"github.com/matsen/b2m/internal/config"
	"github.com/matsen/b2m/internal/dblp"
	"github.com/matsen/b2m/internal/identifier"
	"github.com/matsen/b2m/internal/manubot"
	"github.com/spf13/cobra"
)

var (
	dblpURL      string
	dblpOutput   string
	dblpValidate bool
	dblpNoCache  bool
)

func init() {
	// Load .env file if present (for B2M_USER_AGENT)
	_ = godotenv.Load()

	dblpCmd.Flags().StringVarP(&dblpURL, "url", "u", "", "DBLP author profile URL")
	dblpCmd.Flags().StringVarP(&dblpOutput, "output", "o", "", "Output YAML file (default stdout)")
	dblpCmd.Flags().BoolVar(&dblpValidate, "validate", false, "Validate generated keys before writing")
	dblpCmd.Flags().BoolVar(&dblpNoCache, "no-cache", false, "Bypass the local fetch cache")
	dblpCmd.MarkFlagRequired("url")
	rootCmd.AddCommand(dblpCmd)
}

var dblpCmd = &cobra.Command{
	Use:   "dblp",
	Short: "Fetch a DBLP author profile and convert it to citations",
	Long: `Fetch a DBLP author profile and convert it to a Manubot citation list.

Usage:
  b2m dblp -u https://dblp.org/pid/154/4313.html
  b2m dblp -u https://dblp.org/pid/154/4313.html -o citations.yaml --validate

Fetched BibTeX exports are cached locally (see --no-cache). Requests
are rate-limited to stay polite to dblp.org; set B2M_USER_AGENT or the
user_agent config key to identify your crawler.

Environment Variables:
  B2M_USER_AGENT  User-Agent header for DBLP requests (optional)
  B2M_NO_CACHE    Set to any value to bypass the fetch cache`,
	Args: cobra.NoArgs,
	RunE: runDBLP,
}

// DBLPResult summarizes a fetch-and-convert run.
type DBLPResult struct {
	Status    string `json:"status"`
	Profile   string `json:"profile,omitempty"`
	PID       string `json:"pid"`
	Cached    bool   `json:"cached"`
	Records   int    `json:"records"`
	Citations int    `json:"citations"`
	Dropped   int    `json:"dropped"`
	Output    string `json:"output,omitempty"`
}

func runDBLP(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	profileURL, err := dblp.NormalizeProfileURL(dblpURL)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	pid := dblp.PID(profileURL)

	var opts []dblp.Option
	if ua := config.GetUserAgent(); ua != "" {
		opts = append(opts, dblp.WithUserAgent(ua))
	}
	if rate := config.GetFetchRate(); rate > 0 {
		opts = append(opts, dblp.WithRateLimit(rate))
	}
	client := dblp.NewClient(opts...)

	ttl := cache.DefaultTTL
	if configured := config.GetCacheTTL(); configured > 0 {
		ttl = configured
	}

	var fetchCache *cache.Cache
	if !dblpNoCache && os.Getenv("B2M_NO_CACHE") == "" {
		if path, err := cachePath(); err == nil {
			if c, err := cache.Open(path); err == nil {
				fetchCache = c
				defer fetchCache.Close()
			}
		}
		// Cache failures fall through to a direct fetch.
	}

	bib, cached := "", false
	if fetchCache != nil {
		if hit, ok, err := fetchCache.Get(pid, ttl); err == nil && ok {
			bib, cached = hit, true
		}
	}
	if bib == "" {
		bib, err = client.FetchBibTeX(ctx, profileURL)
		if err != nil {
			exitWithError(ExitError, "fetching %s: %v", profileURL, err)
		}
		if fetchCache != nil {
			_ = fetchCache.Put(pid, bib)
		}
	}

	records, parseErrs := bibtex.Parse([]byte(bib))
	if len(records) == 0 {
		exitWithError(ExitDataError, "no usable BibTeX records in DBLP export for %s", pid)
	}

	entries, err := citation.Convert(records)
	if err != nil {
		var collErr *citation.CollisionError
		if errors.As(err, &collErr) {
			exitWithError(ExitCollision, "%v", err)
		}
		exitWithError(ExitError, "converting records: %v", err)
	}

	if dblpValidate {
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

	if dblpOutput == "" {
		os.Stdout.Write(out)
		return nil
	}
	if err := os.WriteFile(dblpOutput, out, 0644); err != nil {
		exitWithError(ExitError, "writing %s: %v", dblpOutput, err)
	}

	result := DBLPResult{
		Status:    "ok",
		Profile:   client.ProfileName(ctx, profileURL),
		PID:       pid,
		Cached:    cached,
		Records:   len(records),
		Citations: len(entries),
		Dropped:   len(records) - len(entries),
		Output:    dblpOutput,
	}
	if humanOutput {
		name := result.Profile
		if name == "" {
			name = pid
		}
		outputHuman("Wrote %d citations for %s to %s (%d records, %d dropped",
			result.Citations, name, result.Output, result.Records, result.Dropped)
		if cached {
			outputHuman(", cached")
		}
		outputHuman(")\n")
		for _, perr := range parseErrs {
			outputHuman("  warning: %v\n", perr)
		}
		return nil
	}
	return outputJSON(result)
}

// cachePath returns the fetch cache location under the user cache dir.
func cachePath() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(base, "b2m")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating cache dir: %w", err)
	}
	return filepath.Join(dir, "fetch.db"), nil
}
