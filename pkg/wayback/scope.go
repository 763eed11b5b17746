package wayback

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/Sriram-PR/clinic-scraper/pkg/utils"
)

// PageKind classifies a page by the shape of its unwrapped path.
type PageKind int

const (
	PageKindOutOfScope PageKind = iota
	PageKindLanding             // the clinic directory index, e.g. /our-clinics/
	PageKindRegion              // one segment below the landing page
	PageKindClinic              // two or more segments below the landing page
)

// String returns the kind name for logging.
func (k PageKind) String() string {
	switch k {
	case PageKindLanding:
		return "landing"
	case PageKindRegion:
		return "region"
	case PageKindClinic:
		return "clinic"
	default:
		return "out-of-scope"
	}
}

// Scope decides whether unwrapped URLs belong to the crawl and classifies
// in-scope pages by depth under the configured site prefix.
type Scope struct {
	host       string // lowercase
	pathPrefix string // lowercase, no trailing slash, e.g. "/our-clinics"
}

// NewScope builds a Scope from an absolute prefix URL such as
// "https://www.myfootdr.com.au/our-clinics/".
func NewScope(prefix string) (*Scope, error) {
	u, err := url.Parse(prefix)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: scope prefix '%s'", utils.ErrMalformedURL, prefix)
	}
	path := strings.ToLower(u.Path)
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
	}
	return &Scope{
		host:       strings.ToLower(u.Host),
		pathPrefix: path,
	}, nil
}

// InScope reports whether u's unwrapped URL lies under the site prefix.
// Comparison is case-insensitive and ignores a trailing slash.
func (s *Scope) InScope(u CrawlURL) bool {
	return s.Classify(u) != PageKindOutOfScope
}

// Classify derives the PageKind from the unwrapped path shape:
// the prefix itself is the landing page, one extra segment is a region page,
// two or more are a clinic page. Everything else is out of scope.
func (s *Scope) Classify(u CrawlURL) PageKind {
	parsed, err := url.Parse(u.Original)
	if err != nil {
		return PageKindOutOfScope
	}
	if strings.ToLower(parsed.Host) != s.host {
		return PageKindOutOfScope
	}

	path := strings.ToLower(parsed.Path)
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
	}
	if path == s.pathPrefix {
		return PageKindLanding
	}
	if !strings.HasPrefix(path, s.pathPrefix+"/") {
		return PageKindOutOfScope
	}

	rest := strings.Trim(path[len(s.pathPrefix)+1:], "/")
	switch strings.Count(rest, "/") {
	case 0:
		return PageKindRegion
	default:
		return PageKindClinic
	}
}
