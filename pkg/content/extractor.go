// Package content pulls readable text of pages linked from posts, used as extra analysis context.
package content

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/markusmobius/go-trafilatura"
)

var urlRe = regexp.MustCompile(`https?://[^\s<>"')\]]+`)

// skipHosts are links that point back to the social network itself, no article behind them
var skipHosts = map[string]bool{"x.com": true, "twitter.com": true, "www.x.com": true, "www.twitter.com": true}

// LinkExtractor extracts article text from urls found in posts using trafilatura
type LinkExtractor struct {
	client    *http.Client
	userAgent string
	maxChars  int
}

// NewLinkExtractor creates a new link extractor. maxChars limits returned text, 0 means unlimited.
func NewLinkExtractor(timeout time.Duration, userAgent string, maxChars int) *LinkExtractor {
	if userAgent == "" {
		userAgent = "Mozilla/5.0 (compatible; Postdigest/1.0)"
	}
	return &LinkExtractor{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
		maxChars:  maxChars,
	}
}

// LinkContext returns extracted text of the first external link in the post text.
// Empty string with nil error means the post has no usable link.
func (e *LinkExtractor) LinkContext(ctx context.Context, text string) (string, error) {
	link := FirstLink(text)
	if link == "" {
		return "", nil
	}
	res, err := e.Extract(ctx, link)
	if err != nil {
		return "", err
	}
	return truncate(res, e.maxChars), nil
}

// Extract retrieves and extracts text content from the given URL
func (e *LinkExtractor) Extract(ctx context.Context, urlStr string) (string, error) {
	// validate URL
	parsedURL, err := url.Parse(urlStr)
	if err != nil {
		return "", fmt.Errorf("parse URL: %w", err)
	}
	if parsedURL.Scheme == "" || parsedURL.Host == "" {
		return "", fmt.Errorf("invalid URL: %s", urlStr)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, http.NoBody)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", e.userAgent)
	addBrowserHeaders(req)

	resp, err := e.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch URL %s: %w", urlStr, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code %d for URL %s", resp.StatusCode, urlStr)
	}

	opts := trafilatura.Options{
		EnableFallback:  true,
		ExcludeComments: true,
		Deduplicate:     true,
		OriginalURL:     resp.Request.URL, // after redirects of link shorteners
	}

	result, err := trafilatura.Extract(resp.Body, opts)
	if err != nil {
		return "", fmt.Errorf("extract content from %s: %w", urlStr, err)
	}
	if result == nil {
		return "", fmt.Errorf("no content extracted from %s", urlStr)
	}

	content := strings.TrimSpace(result.ContentText)
	if content == "" {
		return "", fmt.Errorf("no text content extracted from %s", urlStr)
	}
	return content, nil
}

// FirstLink returns the first http(s) link of the text which doesn't point to the social network itself
func FirstLink(text string) string {
	for _, m := range urlRe.FindAllString(text, -1) {
		m = strings.TrimRight(m, ".,;:!?")
		u, err := url.Parse(m)
		if err != nil || u.Host == "" {
			continue
		}
		if skipHosts[strings.ToLower(u.Host)] {
			continue
		}
		return m
	}
	return ""
}

// truncate cuts s to at most n runes, adding an ellipsis
func truncate(s string, n int) string {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return strings.TrimSpace(string(runes[:n])) + "..."
}
