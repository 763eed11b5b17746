package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/Sriram-PR/clinic-scraper/pkg/utils"
)

// Default crawl entry point: a known-good Wayback snapshot of the clinics landing page.
const DefaultStartURL = "https://web.archive.org/web/20250708180027/https://www.myfootdr.com.au/our-clinics/"

// DefaultSitePrefix scopes the crawl to the clinic directory on the live site.
const DefaultSitePrefix = "https://www.myfootdr.com.au/our-clinics/"

var (
	defaultStreetTypeTokens = []string{
		"rd", "road", "st", "street", "ave", "avenue", "hwy", "highway",
		"ln", "lane", "ct", "court", "dr", "drive",
	}
	defaultStateAbbreviations = []string{"qld", "nsw", "vic", "sa", "wa", "tas", "nt", "act"}
	defaultServiceMarkerPhrases = []string{
		"assist with",
		"services include",
		"we can help with",
		"we offer the following services",
		"our services include",
	}
	// National contact-centre number that appears on every page; never clinic-specific.
	defaultGenericPhoneNumbers = []string{"1800366837"}
	defaultTitleSeparators     = []string{" - ", " | ", " – "}
)

// Validate checks AppConfig fields and applies sensible defaults.
// Returns collected warnings and any fatal error.
// Modifies receiver in place to apply defaults.
func (c *AppConfig) Validate() (warnings []string, err error) {
	// StartURL
	if c.StartURL == "" {
		warnings = append(warnings, fmt.Sprintf("start_url is empty, defaulting to '%s'", DefaultStartURL))
		c.StartURL = DefaultStartURL
	}

	// SitePrefix
	if c.SitePrefix == "" {
		c.SitePrefix = DefaultSitePrefix
	}
	if !strings.HasPrefix(c.SitePrefix, "http://") && !strings.HasPrefix(c.SitePrefix, "https://") {
		return warnings, fmt.Errorf("%w: site_prefix must be an absolute http(s) URL, got '%s'",
			utils.ErrConfigValidation, c.SitePrefix)
	}

	// MaxPages
	if c.MaxPages < 0 {
		warnings = append(warnings, "max_pages cannot be negative, setting to 0 (unlimited)")
		c.MaxPages = 0
	}

	// UserAgent
	if c.UserAgent == "" {
		c.UserAgent = "clinic-scraper/1.0 (+https://www.myfootdr.com.au/)"
	}

	// MaxRetries
	if c.MaxRetries < 0 {
		warnings = append(warnings, "max_retries cannot be negative, setting to 0")
		c.MaxRetries = 0
	}
	if c.MaxRetries == 0 && c.InitialRetryDelay == 0 {
		c.MaxRetries = 3
	}

	// Retry delays (only if retries enabled)
	if c.MaxRetries > 0 {
		if c.InitialRetryDelay <= 0 {
			c.InitialRetryDelay = 1 * time.Second
		}
		if c.MaxRetryDelay <= 0 {
			c.MaxRetryDelay = 30 * time.Second
		}
	}

	// InitialRetryDelay > MaxRetryDelay check
	if c.InitialRetryDelay > c.MaxRetryDelay && c.MaxRetryDelay > 0 {
		warnings = append(warnings, fmt.Sprintf(
			"initial_retry_delay (%v) > max_retry_delay (%v), using max_retry_delay for initial",
			c.InitialRetryDelay, c.MaxRetryDelay))
		c.InitialRetryDelay = c.MaxRetryDelay
	}

	// HTTPClientSettings defaults
	c.validateHTTPClientSettings()

	// Extraction pattern sets
	c.Extraction.applyDefaults()

	return warnings, nil
}

// validateHTTPClientSettings applies defaults to HTTP client settings.
func (c *AppConfig) validateHTTPClientSettings() {
	h := &c.HTTPClientSettings
	if h.Timeout <= 0 {
		h.Timeout = 45 * time.Second
	}
	if h.MaxIdleConns <= 0 {
		h.MaxIdleConns = 100
	}
	if h.MaxIdleConnsPerHost <= 0 {
		h.MaxIdleConnsPerHost = 2
	}
	if h.IdleConnTimeout <= 0 {
		h.IdleConnTimeout = 90 * time.Second
	}
	if h.TLSHandshakeTimeout <= 0 {
		h.TLSHandshakeTimeout = 10 * time.Second
	}
	if h.ExpectContinueTimeout <= 0 {
		h.ExpectContinueTimeout = 1 * time.Second
	}
	if h.DialerTimeout <= 0 {
		h.DialerTimeout = 15 * time.Second
	}
	if h.DialerKeepAlive <= 0 {
		h.DialerKeepAlive = 30 * time.Second
	}
}

// applyDefaults fills empty pattern sets with the shipped defaults.
// Explicitly configured sets are left untouched, even if shorter.
func (e *ExtractionConfig) applyDefaults() {
	if len(e.StreetTypeTokens) == 0 {
		e.StreetTypeTokens = append([]string(nil), defaultStreetTypeTokens...)
	}
	if len(e.StateAbbreviations) == 0 {
		e.StateAbbreviations = append([]string(nil), defaultStateAbbreviations...)
	}
	if len(e.ServiceMarkerPhrases) == 0 {
		e.ServiceMarkerPhrases = append([]string(nil), defaultServiceMarkerPhrases...)
	}
	if len(e.GenericPhoneNumbers) == 0 {
		e.GenericPhoneNumbers = append([]string(nil), defaultGenericPhoneNumbers...)
	}
	if len(e.TitleSeparators) == 0 {
		e.TitleSeparators = append([]string(nil), defaultTitleSeparators...)
	}
}
