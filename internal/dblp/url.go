package dblp

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// pidRe extracts the person id from a profile path like
// /pid/154/4313.html or /pid/154/4313.
var pidRe = regexp.MustCompile(`/pid/([^/]+/[^/.]+)`)

// IsProfileURL reports whether a URL points at a DBLP author profile.
func IsProfileURL(rawURL string) bool {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return false
	}
	host := u.Hostname()
	if host != "dblp.org" && host != "dblp.uni-trier.de" {
		return false
	}
	return strings.Contains(u.Path, "/pid/")
}

// PID extracts the person id ("154/4313") from a profile URL, or "".
func PID(rawURL string) string {
	if m := pidRe.FindStringSubmatch(rawURL); m != nil {
		return m[1]
	}
	return ""
}

// NormalizeProfileURL validates a DBLP profile URL and returns its
// canonical https .html form.
func NormalizeProfileURL(rawURL string) (string, error) {
	rawURL = strings.TrimSpace(rawURL)
	if !strings.Contains(rawURL, "://") {
		rawURL = "https://" + rawURL
	}

	if !IsProfileURL(rawURL) {
		return "", fmt.Errorf("not a DBLP profile URL (expected https://dblp.org/pid/X/Y.html): %s", rawURL)
	}

	pid := PID(rawURL)
	if pid == "" {
		return "", fmt.Errorf("no person id in DBLP URL: %s", rawURL)
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parsing DBLP URL: %w", err)
	}
	return fmt.Sprintf("https://%s/pid/%s.html", u.Hostname(), pid), nil
}

// BibURL returns the BibTeX export URL for a person id.
func BibURL(base, pid string) string {
	return fmt.Sprintf("%s/pid/%s.bib", strings.TrimRight(base, "/"), pid)
}
