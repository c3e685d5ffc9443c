// Package dblp fetches BibTeX exports from DBLP author profiles.
package dblp

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"
)

const (
	// BaseURL is the DBLP site root.
	BaseURL = "https://dblp.org"

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// DefaultUserAgent identifies the tool to DBLP's servers.
	DefaultUserAgent = "b2m (academic citation converter)"

	// requestsPerSecond keeps fetches polite; DBLP asks crawlers to
	// stay slow.
	requestsPerSecond = 1.0

	maxBodySize = 32 * 1024 * 1024 // 32MB, profile exports can be large
)

// entryRe detects BibTeX content: at least one @type{ opener.
var entryRe = regexp.MustCompile(`@\w+\s*\{`)

// Client is a rate-limited HTTP client for DBLP.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    string
	userAgent  string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(url, "/")
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithRateLimit overrides the requests-per-second limit (for testing).
func WithRateLimit(rps float64) Option {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// NewClient creates a DBLP client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
		baseURL:    BaseURL,
		userAgent:  DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchBibTeX downloads the BibTeX export for a profile URL. When the
// server answers with HTML instead of a .bib payload, the BibTeX is
// scraped out of <pre> and <code> blocks as a fallback.
func (c *Client) FetchBibTeX(ctx context.Context, profileURL string) (string, error) {
	normalized, err := NormalizeProfileURL(profileURL)
	if err != nil {
		return "", err
	}
	pid := PID(normalized)

	body, err := c.get(ctx, BibURL(c.baseURL, pid))
	if err != nil {
		return "", fmt.Errorf("downloading BibTeX for pid %s: %w", pid, err)
	}

	content := strings.TrimSpace(body)
	if content == "" {
		return "", fmt.Errorf("empty BibTeX export for pid %s", pid)
	}

	if entryRe.MatchString(content) && !isHTML(content) {
		return content, nil
	}

	if isHTML(content) {
		if scraped := scrapeBibTeX(content); scraped != "" {
			return scraped, nil
		}
	}
	return "", fmt.Errorf("response for pid %s does not contain BibTeX", pid)
}

// ProfileName fetches the author name from a profile page, best-effort:
// a fetch or parse failure yields "".
func (c *Client) ProfileName(ctx context.Context, profileURL string) string {
	normalized, err := NormalizeProfileURL(profileURL)
	if err != nil {
		return ""
	}
	pid := PID(normalized)

	body, err := c.get(ctx, fmt.Sprintf("%s/pid/%s.html", c.baseURL, pid))
	if err != nil {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return ""
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())
	// DBLP titles read "Author Name - DBLP".
	if name, _, found := strings.Cut(title, " - "); found {
		return strings.TrimSpace(name)
	}
	return title
}

// get performs one rate-limited GET and returns the body as text.
func (c *Client) get(ctx context.Context, url string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("GET %s: status %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}
	return string(body), nil
}

// scrapeBibTeX pulls BibTeX entries out of <pre>/<code> blocks in an
// HTML page.
func scrapeBibTeX(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}

	var found string
	doc.Find("pre, code").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		text := strings.TrimSpace(sel.Text())
		if entryRe.MatchString(text) {
			found = text
			return false
		}
		return true
	})
	return found
}

func isHTML(content string) bool {
	head := strings.ToLower(strings.TrimSpace(content))
	return strings.HasPrefix(head, "<!doctype html") || strings.HasPrefix(head, "<html")
}
