package app

import (
	"os"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/litmap/internal/cmd/constants"
	pkgconstants "github.com/agentstation/litmap/pkg/constants"
	"github.com/agentstation/litmap/pkg/errors"
)

// envPrefix namespaces environment variables, e.g. LITMAP_BASE_URL.
const envPrefix = "litmap"

// Config holds the application configuration loaded from config files,
// environment variables and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// Config file
	ConfigFile string

	// Catalog client configuration
	BaseURL           string
	Collection        string
	UserAgent         string
	HTTPTimeout       time.Duration
	RequestsPerSecond float64
	MaxPages          int
	SearchPageSize    int
	LanguagePageSize  int
	AuthorPageSize    int
	WorkCacheTTL      time.Duration

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (applied later by UpdateFromFlags)
// 2. Environment variables (LITMAP_*)
// 3. .env files
// 4. Config file (~/.litmap.yaml, or the file named by LITMAP_CONFIG)
// 5. Defaults
func LoadConfig() (*Config, error) {
	return LoadConfigFile("")
}

// LoadConfigFile loads configuration like LoadConfig but reads the given
// config file instead of searching for one. An empty path searches.
func LoadConfigFile(path string) (*Config, error) {
	loadEnvFiles()

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	setDefaults(v)

	if path == "" {
		path = v.GetString("config")
	}
	if path != "" {
		v.SetConfigFile(path)
	} else if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(home)
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(".litmap")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, errors.NewConfigError("config", "reading config file", err)
		}
	}

	config := &Config{
		Verbose: v.GetBool("verbose"),
		Quiet:   v.GetBool("quiet"),
		NoColor: v.GetBool("no-color"),
		Format:  strings.ToLower(v.GetString("format")),

		ConfigFile: v.ConfigFileUsed(),

		BaseURL:           v.GetString("base_url"),
		Collection:        v.GetString("collection"),
		UserAgent:         v.GetString("user_agent"),
		HTTPTimeout:       v.GetDuration("http_timeout"),
		RequestsPerSecond: v.GetFloat64("requests_per_second"),
		MaxPages:          v.GetInt("max_pages"),
		SearchPageSize:    v.GetInt("search_page_size"),
		LanguagePageSize:  v.GetInt("language_page_size"),
		AuthorPageSize:    v.GetInt("author_page_size"),
		WorkCacheTTL:      v.GetDuration("work_cache_ttl"),

		LogLevel:  getEnvOrDefault("LOG_LEVEL", ""),
		LogFormat: getEnvOrDefault("LOG_FORMAT", "auto"),
		LogOutput: getEnvOrDefault("LOG_OUTPUT", "stderr"),
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks the catalog client settings.
func (c *Config) Validate() error {
	err := validation.ValidateStruct(c,
		validation.Field(&c.BaseURL, validation.Required, is.URL),
		validation.Field(&c.Collection, validation.Required),
		validation.Field(&c.HTTPTimeout, validation.Required, validation.Min(time.Millisecond)),
		validation.Field(&c.RequestsPerSecond, validation.Min(0.0)),
		validation.Field(&c.MaxPages, validation.Required, validation.Min(1)),
		validation.Field(&c.SearchPageSize, validation.Required, validation.Min(1), validation.Max(pkgconstants.MaxPageSize)),
		validation.Field(&c.LanguagePageSize, validation.Required, validation.Min(1), validation.Max(pkgconstants.MaxPageSize)),
		validation.Field(&c.AuthorPageSize, validation.Required, validation.Min(1), validation.Max(pkgconstants.MaxPageSize)),
		validation.Field(&c.Format, validation.In(
			constants.FormatTable, constants.FormatWide, constants.FormatJSON,
			constants.FormatYAML, constants.FormatMarkdown,
		)),
	)
	if err != nil {
		return errors.NewConfigError("config", "invalid configuration", err)
	}
	return nil
}

// UpdateFromFlags updates config values from parsed command flags so flag
// values take precedence over config file and env vars.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, format, logLevel string) {
	c.Verbose = verbose
	c.Quiet = quiet
	c.NoColor = noColor
	if format != "" {
		c.Format = strings.ToLower(format)
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("base_url", pkgconstants.DefaultBaseURL)
	v.SetDefault("collection", pkgconstants.DefaultCollection)
	v.SetDefault("user_agent", pkgconstants.DefaultUserAgent)
	v.SetDefault("http_timeout", pkgconstants.DefaultHTTPTimeout)
	v.SetDefault("requests_per_second", pkgconstants.DefaultRequestsPerSecond)
	v.SetDefault("max_pages", pkgconstants.MaxPages)
	v.SetDefault("search_page_size", pkgconstants.SearchPageSize)
	v.SetDefault("language_page_size", pkgconstants.LanguagePageSize)
	v.SetDefault("author_page_size", pkgconstants.AuthorSearchPageSize)
	v.SetDefault("work_cache_ttl", pkgconstants.WorkCacheTTL)
}

// loadEnvFiles loads environment variables from .env files.
// .env.local does not override what .env set, matching godotenv.Load.
func loadEnvFiles() {
	for _, envFile := range []string{".env", ".env.local"} {
		_ = godotenv.Load(envFile)
	}
}

// getEnvOrDefault returns the environment variable value or the default if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
