package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgconstants "github.com/agentstation/litmap/pkg/constants"
	"github.com/agentstation/litmap/pkg/errors"
)

// isolate keeps the developer's home config and LITMAP_* variables out of a test.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	for _, key := range []string{
		"LITMAP_CONFIG", "LITMAP_BASE_URL", "LITMAP_COLLECTION", "LITMAP_MAX_PAGES",
		"LITMAP_SEARCH_PAGE_SIZE", "LITMAP_LANGUAGE_PAGE_SIZE", "LITMAP_AUTHOR_PAGE_SIZE",
		"LITMAP_REQUESTS_PER_SECOND", "LITMAP_HTTP_TIMEOUT", "LITMAP_USER_AGENT",
		"LITMAP_WORK_CACHE_TTL", "LITMAP_FORMAT", "LITMAP_VERBOSE", "LITMAP_QUIET", "LITMAP_NO_COLOR",
		"LOG_LEVEL", "LOG_FORMAT", "LOG_OUTPUT",
	} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	isolate(t)

	config, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, pkgconstants.DefaultBaseURL, config.BaseURL)
	assert.Equal(t, pkgconstants.DefaultCollection, config.Collection)
	assert.Equal(t, pkgconstants.MaxPages, config.MaxPages)
	assert.Equal(t, pkgconstants.SearchPageSize, config.SearchPageSize)
	assert.Equal(t, pkgconstants.LanguagePageSize, config.LanguagePageSize)
	assert.Equal(t, pkgconstants.AuthorSearchPageSize, config.AuthorPageSize)
	assert.Equal(t, pkgconstants.DefaultHTTPTimeout, config.HTTPTimeout)
	assert.InDelta(t, pkgconstants.DefaultRequestsPerSecond, config.RequestsPerSecond, 0.001)
	assert.Equal(t, "auto", config.LogFormat)
	assert.Empty(t, config.LogLevel)
	assert.Empty(t, config.Format)
}

func TestLoadConfigEnvironment(t *testing.T) {
	isolate(t)
	t.Setenv("LITMAP_BASE_URL", "http://catalog.example.com")
	t.Setenv("LITMAP_MAX_PAGES", "7")
	t.Setenv("LITMAP_HTTP_TIMEOUT", "2s")
	t.Setenv("LITMAP_REQUESTS_PER_SECOND", "0")
	t.Setenv("LITMAP_FORMAT", "JSON")
	t.Setenv("LITMAP_VERBOSE", "true")

	config, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "http://catalog.example.com", config.BaseURL)
	assert.Equal(t, 7, config.MaxPages)
	assert.Equal(t, 2*time.Second, config.HTTPTimeout)
	assert.Zero(t, config.RequestsPerSecond)
	assert.Equal(t, "json", config.Format)
	assert.True(t, config.Verbose)
}

func TestLoadConfigFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "litmap.yaml")
	require.NoError(t, os.WriteFile(path, []byte("collection: ebooks\nmax_pages: 3\nsearch_page_size: 15\n"), 0o600))

	config, err := LoadConfigFile(path)
	require.NoError(t, err)

	assert.Equal(t, "ebooks", config.Collection)
	assert.Equal(t, 3, config.MaxPages)
	assert.Equal(t, 15, config.SearchPageSize)
	assert.Equal(t, path, config.ConfigFile)
}

func TestLoadConfigHomeFile(t *testing.T) {
	isolate(t)
	home := os.Getenv("HOME")
	require.NoError(t, os.WriteFile(filepath.Join(home, ".litmap.yaml"), []byte("max_pages: 9\n"), 0o600))

	config, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 9, config.MaxPages)
}

func TestLoadConfigMissingExplicitFile(t *testing.T) {
	isolate(t)

	_, err := LoadConfigFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"bad url", "LITMAP_BASE_URL", "not a url"},
		{"zero pages", "LITMAP_MAX_PAGES", "0"},
		{"page size too large", "LITMAP_SEARCH_PAGE_SIZE", "500"},
		{"negative rate", "LITMAP_REQUESTS_PER_SECOND", "-1"},
		{"unknown format", "LITMAP_FORMAT", "xml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			t.Setenv(tt.key, tt.value)

			_, err := LoadConfig()
			require.Error(t, err)
			assert.True(t, errors.IsValidationError(err))
		})
	}
}

func TestUpdateFromFlags(t *testing.T) {
	config := &Config{Format: "yaml", LogLevel: "error"}

	config.UpdateFromFlags(true, false, true, "", "")
	assert.True(t, config.Verbose)
	assert.True(t, config.NoColor)
	assert.Equal(t, "yaml", config.Format)
	assert.Equal(t, "error", config.LogLevel)

	config.UpdateFromFlags(false, true, false, "JSON", "debug")
	assert.False(t, config.Verbose)
	assert.True(t, config.Quiet)
	assert.Equal(t, "json", config.Format)
	assert.Equal(t, "debug", config.LogLevel)
}
