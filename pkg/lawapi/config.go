// Package lawapi retrieves Korean statutes from the National Law Information
// Center open API (law.go.kr DRF) or from a directory of statute XML files.
//
// Retrieval is the only part of the system that performs I/O. It hands raw
// statute XML to the caller, which decodes it with statute.ParseLawXML.
package lawapi

import (
	"time"
)

// DefaultBaseURL is the National Law Information Center endpoint.
const DefaultBaseURL = "http://www.law.go.kr"

// DefaultOC is the public demo access identifier.
const DefaultOC = "chetera"

// DefaultKind restricts listing to acts (법률).
const DefaultKind = "A0002"

// DefaultPageSize is the number of rows requested per listing page.
const DefaultPageSize = 100

// DefaultTimeout is the per-request timeout.
const DefaultTimeout = 10 * time.Second

// DefaultRequestInterval is the default minimum interval between requests.
const DefaultRequestInterval = 200 * time.Millisecond

// DefaultCacheTTL is the default time-to-live for cached statute bodies.
const DefaultCacheTTL = 24 * time.Hour

// DefaultUserAgent is the User-Agent header sent with every request.
const DefaultUserAgent = "lawamend/1.0"

// Config holds configuration for a Client. It is passed explicitly; the
// client never reads the environment.
type Config struct {
	// BaseURL is the API origin. Default: http://www.law.go.kr.
	BaseURL string `yaml:"base_url"`

	// OC is the access identifier registered with the API.
	OC string `yaml:"oc"`

	// Kind is the statute kind code used when listing (knd). Empty lists all kinds.
	Kind string `yaml:"kind"`

	// PageSize is the number of rows per listing page (display).
	PageSize int `yaml:"page_size"`

	// Timeout is the per-request timeout.
	Timeout time.Duration `yaml:"timeout"`

	// RateLimit is the minimum interval between requests. Zero disables limiting.
	RateLimit time.Duration `yaml:"rate_limit"`

	// CacheDir is the directory for statute body caching. Empty disables caching.
	CacheDir string `yaml:"cache_dir"`

	// CacheTTL is the lifetime of cached statute bodies.
	CacheTTL time.Duration `yaml:"cache_ttl"`

	// UserAgent is the User-Agent header sent with requests.
	UserAgent string `yaml:"user_agent"`

	// HTTPClient is the underlying HTTP client. If nil, http.DefaultClient is used.
	HTTPClient HTTPClient `yaml:"-"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		BaseURL:   DefaultBaseURL,
		OC:        DefaultOC,
		Kind:      DefaultKind,
		PageSize:  DefaultPageSize,
		Timeout:   DefaultTimeout,
		RateLimit: DefaultRequestInterval,
		CacheTTL:  DefaultCacheTTL,
		UserAgent: DefaultUserAgent,
	}
}
