// Package config loads lawamend settings from a YAML file and the
// environment.
package config

import (
	"net/url"
	"os"
	"strconv"

	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"

	"github.com/coolbeans/lawamend/pkg/lawapi"
	"github.com/coolbeans/lawamend/pkg/lookup"
	"github.com/coolbeans/lawamend/pkg/render"
)

// ErrInvalid is returned by Validate for an unusable configuration.
var ErrInvalid = errors.New("invalid configuration")

// DefaultListen is the address the HTTP server binds by default.
const DefaultListen = "127.0.0.1:8080"

// Environment variables read by Load.
const (
	EnvOC       = "LAWAMEND_OC"
	EnvLegacyOC = "OC"
	EnvBaseURL  = "LAWAMEND_BASE_URL"
	EnvCacheDir = "LAWAMEND_CACHE_DIR"
	EnvSource   = "LAWAMEND_SOURCE"
	EnvWorkers  = "LAWAMEND_WORKERS"
	EnvListen   = "LAWAMEND_LISTEN"
)

// Config is the complete lawamend configuration.
type Config struct {
	// API configures the law.go.kr client.
	API lawapi.Config `yaml:"api"`

	// Source is a directory of statute XML files. When set it replaces the API.
	Source string `yaml:"source"`

	// Workers is the number of statutes fetched concurrently.
	Workers int `yaml:"workers"`

	// Output is the default output format.
	Output string `yaml:"output"`

	// Listen is the address of the HTTP server.
	Listen string `yaml:"listen"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		API:     lawapi.DefaultConfig(),
		Workers: lookup.DefaultWorkers,
		Output:  string(render.FormatText),
		Listen:  DefaultListen,
	}
}

// Load reads path (if non-empty) over the defaults and applies
// environment overrides.
func Load(path string) (Config, error) {
	return LoadFrom(path, os.LookupEnv)
}

// LoadFrom is Load with an explicit environment lookup.
func LoadFrom(path string, lookupEnv func(string) (string, bool)) (Config, error) {
	config := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, errors.Errorf("failed to read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &config); err != nil {
			return Config{}, errors.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	if err := config.applyEnv(lookupEnv); err != nil {
		return Config{}, err
	}
	return config, nil
}

func (config *Config) applyEnv(lookupEnv func(string) (string, bool)) error {
	if value, ok := lookupEnv(EnvLegacyOC); ok && value != "" {
		config.API.OC = value
	}
	if value, ok := lookupEnv(EnvOC); ok && value != "" {
		config.API.OC = value
	}
	if value, ok := lookupEnv(EnvBaseURL); ok && value != "" {
		config.API.BaseURL = value
	}
	if value, ok := lookupEnv(EnvCacheDir); ok {
		config.API.CacheDir = value
	}
	if value, ok := lookupEnv(EnvSource); ok {
		config.Source = value
	}
	if value, ok := lookupEnv(EnvListen); ok && value != "" {
		config.Listen = value
	}
	if value, ok := lookupEnv(EnvWorkers); ok && value != "" {
		workers, err := strconv.Atoi(value)
		if err != nil {
			return errors.Errorf("%w: %s=%q is not a number", ErrInvalid, EnvWorkers, value)
		}
		config.Workers = workers
	}
	return nil
}

// Validate checks that the configuration can be used.
func (config Config) Validate() error {
	if config.Source == "" {
		baseURL, err := url.Parse(config.API.BaseURL)
		if err != nil || baseURL.Scheme == "" || baseURL.Host == "" {
			return errors.Errorf("%w: base URL %q", ErrInvalid, config.API.BaseURL)
		}
		if config.API.OC == "" {
			return errors.Errorf("%w: OC is empty", ErrInvalid)
		}
	}
	if config.API.PageSize <= 0 {
		return errors.Errorf("%w: page size %d", ErrInvalid, config.API.PageSize)
	}
	if config.Workers <= 0 {
		return errors.Errorf("%w: workers %d", ErrInvalid, config.Workers)
	}
	if config.API.RateLimit < 0 {
		return errors.Errorf("%w: negative rate limit", ErrInvalid)
	}
	if _, err := render.ParseFormat(config.Output); err != nil {
		return errors.Errorf("%w: %s", ErrInvalid, err.Error())
	}
	return nil
}

// NewSource builds the statute source the configuration selects: the
// directory source when Source is set, the API client otherwise. The
// returned close function releases the source.
func (config Config) NewSource() (lawapi.Source, func(), error) {
	if config.Source != "" {
		source, err := lawapi.NewDirSource(config.Source)
		if err != nil {
			return nil, nil, err
		}
		return source, func() {}, nil
	}

	client, err := lawapi.NewClient(config.API)
	if err != nil {
		return nil, nil, err
	}
	return client, client.Close, nil
}
