package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Sriram-PR/clinic-scraper/pkg/utils"
)

// AppConfig holds the global application configuration
type AppConfig struct {
	StartURL   string `yaml:"start_url"`
	SitePrefix string `yaml:"site_prefix,omitempty"` // Unwrapped URL prefix defining crawl scope
	MaxPages   int    `yaml:"max_pages,omitempty"`   // 0 = unlimited
	UserAgent  string `yaml:"user_agent,omitempty"`
	CacheDir   string `yaml:"cache_dir,omitempty"` // Empty disables the snapshot cache

	MaxRetries        int           `yaml:"max_retries,omitempty"`
	InitialRetryDelay time.Duration `yaml:"initial_retry_delay,omitempty"`
	MaxRetryDelay     time.Duration `yaml:"max_retry_delay,omitempty"`

	HTTPClientSettings HTTPClientConfig `yaml:"http_client_settings,omitempty"`

	Output     OutputConfig     `yaml:"output,omitempty"`
	Extraction ExtractionConfig `yaml:"extraction,omitempty"`
}

// OutputConfig holds exporter destinations. Empty paths disable the sink.
type OutputConfig struct {
	CSVPath           string `yaml:"csv_path,omitempty"`
	JSONPath          string `yaml:"json_path,omitempty"`
	IncompleteCSVPath string `yaml:"incomplete_csv_path,omitempty"`
}

// ExtractionConfig holds the heuristic pattern sets used by the field extractors.
// The shapes are deliberately configuration, not code: the source pages vary in
// markup and the token lists may need tuning per snapshot era.
type ExtractionConfig struct {
	StreetTypeTokens     []string `yaml:"street_type_tokens,omitempty"`
	StateAbbreviations   []string `yaml:"state_abbreviations,omitempty"`
	ServiceMarkerPhrases []string `yaml:"service_marker_phrases,omitempty"`
	GenericPhoneNumbers  []string `yaml:"generic_phone_numbers,omitempty"` // Digits-only denylist
	TitleSeparators      []string `yaml:"title_separators,omitempty"`      // Suffix separators stripped from <title>
}

// HTTPClientConfig holds settings for the shared HTTP client
type HTTPClientConfig struct {
	Timeout               time.Duration `yaml:"timeout,omitempty"`                 // Overall request timeout
	MaxIdleConns          int           `yaml:"max_idle_conns,omitempty"`          // Max total idle connections
	MaxIdleConnsPerHost   int           `yaml:"max_idle_conns_per_host,omitempty"` // Max idle connections per host
	IdleConnTimeout       time.Duration `yaml:"idle_conn_timeout,omitempty"`       // Timeout for idle connections
	TLSHandshakeTimeout   time.Duration `yaml:"tls_handshake_timeout,omitempty"`   // Timeout for TLS handshake
	ExpectContinueTimeout time.Duration `yaml:"expect_continue_timeout,omitempty"` // Timeout for 100-continue
	ForceAttemptHTTP2     *bool         `yaml:"force_attempt_http2,omitempty"`     // Explicitly enable/disable HTTP/2 attempt (use pointer for tri-state: nil=default, true=force, false=disable)
	DialerTimeout         time.Duration `yaml:"dialer_timeout,omitempty"`          // Connection dial timeout
	DialerKeepAlive       time.Duration `yaml:"dialer_keep_alive,omitempty"`       // TCP keep-alive interval
}

// Load reads and parses a YAML config file into an AppConfig.
// Validation is the caller's responsibility (see AppConfig.Validate).
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file '%s': %w", path, err)
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: parsing config file '%s': %w", utils.ErrConfigValidation, path, err)
	}
	return &cfg, nil
}
