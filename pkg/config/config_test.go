package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coolbeans/lawamend/pkg/lawapi"
)

func env(values map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		value, ok := values[key]
		return value, ok
	}
}

func TestDefault(t *testing.T) {
	config := Default()

	assert.Equal(t, lawapi.DefaultOC, config.API.OC)
	assert.Equal(t, lawapi.DefaultBaseURL, config.API.BaseURL)
	assert.Equal(t, "text", config.Output)
	require.NoError(t, config.Validate())
}

func TestLoadFrom_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lawamend.yaml")
	content := `
api:
  oc: myoc
  page_size: 50
  timeout: 3s
  rate_limit: 500ms
workers: 8
output: json
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	config, err := LoadFrom(path, env(nil))
	require.NoError(t, err)

	assert.Equal(t, "myoc", config.API.OC)
	assert.Equal(t, 50, config.API.PageSize)
	assert.Equal(t, 3*time.Second, config.API.Timeout)
	assert.Equal(t, 500*time.Millisecond, config.API.RateLimit)
	assert.Equal(t, lawapi.DefaultBaseURL, config.API.BaseURL, "unset keys keep defaults")
	assert.Equal(t, 8, config.Workers)
	assert.Equal(t, "json", config.Output)
}

func TestLoadFrom_EnvOverrides(t *testing.T) {
	config, err := LoadFrom("", env(map[string]string{
		EnvLegacyOC: "legacy",
		EnvOC:       "preferred",
		EnvBaseURL:  "https://example.test",
		EnvCacheDir: "/tmp/cache",
		EnvWorkers:  "2",
	}))
	require.NoError(t, err)

	assert.Equal(t, "preferred", config.API.OC)
	assert.Equal(t, "https://example.test", config.API.BaseURL)
	assert.Equal(t, "/tmp/cache", config.API.CacheDir)
	assert.Equal(t, 2, config.Workers)
}

func TestLoadFrom_LegacyOC(t *testing.T) {
	config, err := LoadFrom("", env(map[string]string{EnvLegacyOC: "legacy"}))
	require.NoError(t, err)
	assert.Equal(t, "legacy", config.API.OC)
}

func TestLoadFrom_Errors(t *testing.T) {
	_, err := LoadFrom(filepath.Join(t.TempDir(), "missing.yaml"), env(nil))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("workers: [1"), 0o644))
	_, err = LoadFrom(path, env(nil))
	assert.Error(t, err)

	_, err = LoadFrom("", env(map[string]string{EnvWorkers: "many"}))
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"relative base URL", func(config *Config) { config.API.BaseURL = "law.go.kr" }},
		{"empty OC", func(config *Config) { config.API.OC = "" }},
		{"zero page size", func(config *Config) { config.API.PageSize = 0 }},
		{"zero workers", func(config *Config) { config.Workers = 0 }},
		{"negative rate limit", func(config *Config) { config.API.RateLimit = -time.Second }},
		{"unknown output", func(config *Config) { config.Output = "pdf" }},
	}

	for _, testCase := range cases {
		t.Run(testCase.name, func(t *testing.T) {
			config := Default()
			testCase.mutate(&config)
			assert.ErrorIs(t, config.Validate(), ErrInvalid)
		})
	}
}

func TestValidate_DirectorySourceSkipsAPIChecks(t *testing.T) {
	config := Default()
	config.Source = t.TempDir()
	config.API.OC = ""

	require.NoError(t, config.Validate())

	source, closeSource, err := config.NewSource()
	require.NoError(t, err)
	defer closeSource()
	_, ok := source.(*lawapi.FSSource)
	assert.True(t, ok)
}

func TestNewSource_Client(t *testing.T) {
	source, closeSource, err := Default().NewSource()
	require.NoError(t, err)
	defer closeSource()

	_, ok := source.(*lawapi.Client)
	assert.True(t, ok)
}
