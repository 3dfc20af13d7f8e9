// Package constants provides shared constants used throughout the litmap codebase.
// This includes the remote catalog defaults, pagination limits, timeouts and
// file permissions that should be consistent across the application.
package constants

import "time"

// Remote catalog defaults
const (
	// DefaultBaseURL is the root of the public Gutendex catalog API
	DefaultBaseURL = "https://gutendex.com"

	// DefaultCollection is the collection path the catalog is listed under
	DefaultCollection = "books"

	// DefaultUserAgent is sent with every request to the remote catalog
	DefaultUserAgent = "litmap"
)

// Timeout constants define various timeout durations used in the application
const (
	// DefaultHTTPTimeout is the standard timeout for HTTP requests to the remote catalog.
	// It is the only timeout applied to a build; the build itself has none.
	DefaultHTTPTimeout = 30 * time.Second

	// ShutdownTimeout bounds graceful shutdown of the CLI
	ShutdownTimeout = 5 * time.Second
)

// Pagination constants
const (
	// MaxPages is the hard ceiling on pages fetched by a single snapshot build
	MaxPages = 50

	// SearchPageSize is the page_size hint sent with title searches
	SearchPageSize = 20

	// LanguagePageSize is the page_size hint sent with language listings
	LanguagePageSize = 40

	// AuthorSearchPageSize is the page_size hint sent with author searches
	AuthorSearchPageSize = 50

	// MaxPageSize is the largest page_size hint accepted by configuration
	MaxPageSize = 100

	// DefaultTopN is the number of works shown by the top command
	DefaultTopN = 10
)

// Rate limiting constants
const (
	// DefaultRequestsPerSecond spaces requests to the remote catalog; zero disables the limiter
	DefaultRequestsPerSecond = 5

	// BurstSize is the token bucket burst size for rate limiting
	BurstSize = 1
)

// Cache constants
const (
	// WorkCacheTTL is how long a remotely fetched work stays memoized
	WorkCacheTTL = 15 * time.Minute

	// CacheCleanupInterval is how often to clean expired cache entries
	CacheCleanupInterval = 5 * time.Minute
)

// File permission constants define standard Unix file permissions
const (
	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)
