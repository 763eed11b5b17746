package wayback

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/Sriram-PR/clinic-scraper/pkg/utils"
)

// waybackCaptureRE matches Wayback Machine capture URLs of the form
// https://web.archive.org/web/<timestamp>/<original-url>
var waybackCaptureRE = regexp.MustCompile(`^https?://web\.archive\.org/web/([^/]+)/(.+)$`)

// CrawlURL is a discovered, absolute URL together with its canonical unwrapped form.
// Wrapped is the URL to fetch (kept as discovered so relative resolution stays
// correct); Original is the canonicalized live-site URL used for dedup and routing.
// Two CrawlURLs refer to the same page iff their Key() values are equal.
type CrawlURL struct {
	Wrapped  string
	Original string
}

// Key returns the dedup key: the canonical unwrapped URL.
// Snapshot timestamps never participate, so captures of the same page at
// different times collapse to one visit.
func (u CrawlURL) Key() string {
	return u.Original
}

// IsWrapped reports whether raw looks like a Wayback Machine capture URL.
func IsWrapped(raw string) bool {
	return waybackCaptureRE.MatchString(raw)
}

// Unwrap extracts the original URL embedded in a Wayback capture URL.
// Returns ok=false when raw is not a recognized capture URL.
func Unwrap(raw string) (original string, ok bool) {
	m := waybackCaptureRE.FindStringSubmatch(raw)
	if m == nil {
		return "", false
	}
	return m[2], true
}

// Canonicalize builds a CrawlURL from a raw absolute URL string.
// Wrapped keeps the input as given (absolute, fetchable); Original is the
// canonicalized unwrapped URL. For a non-capture URL the input itself is the
// original. Idempotent: feeding Original back in yields the same Original.
// Returns ErrMalformedURL when no parseable scheme/host remains after unwrapping.
func Canonicalize(raw string) (CrawlURL, error) {
	original := raw
	if unwrapped, ok := Unwrap(raw); ok {
		original = unwrapped
	}

	canonical, err := canonicalizeOriginal(original)
	if err != nil {
		return CrawlURL{}, err
	}
	return CrawlURL{Wrapped: raw, Original: canonical}, nil
}

// Resolve resolves an href found on a page against that page's absolute URL.
// Resolution happens on the wrapped form, so a relative href inherits the
// Wayback prefix automatically; absolute hrefs are never re-wrapped.
func Resolve(base CrawlURL, href string) (CrawlURL, error) {
	baseURL, err := url.Parse(base.Wrapped)
	if err != nil {
		return CrawlURL{}, fmt.Errorf("%w: base '%s': %v", utils.ErrMalformedURL, base.Wrapped, err)
	}
	resolved, err := baseURL.Parse(href)
	if err != nil {
		return CrawlURL{}, fmt.Errorf("%w: href '%s': %v", utils.ErrMalformedURL, href, err)
	}
	return Canonicalize(resolved.String())
}

// canonicalizeOriginal normalizes a live-site URL for comparison and dedup:
// lowercases scheme and host, upgrades http to https, removes query string and
// fragment, and strips a trailing slash (unless the path is root).
func canonicalizeOriginal(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: '%s': %v", utils.ErrMalformedURL, raw, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("%w: '%s' has no scheme/host", utils.ErrMalformedURL, raw)
	}

	// Work on a copy
	normalized := *u

	normalized.Scheme = strings.ToLower(normalized.Scheme)
	if normalized.Scheme == "http" {
		normalized.Scheme = "https"
	}
	normalized.Host = strings.ToLower(normalized.Host)

	// Handle path normalization
	if normalized.Path == "" {
		normalized.Path = "/" // Ensure empty path becomes "/"
	} else if len(normalized.Path) > 1 && strings.HasSuffix(normalized.Path, "/") {
		normalized.Path = strings.TrimRight(normalized.Path, "/")
	}

	normalized.Fragment = "" // Remove fragment
	normalized.RawQuery = "" // Remove query string

	return normalized.String(), nil
}
