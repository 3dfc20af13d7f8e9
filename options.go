package litmap

import (
	"net/http"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/agentstation/litmap/pkg/constants"
	"github.com/agentstation/litmap/pkg/errors"
)

// Option is a function that configures a Client.
type Option func(*options) error

// options holds the Client configuration.
type options struct {
	baseURL           string
	collection        string
	userAgent         string
	httpTimeout       time.Duration
	httpClient        *http.Client
	requestsPerSecond float64
	maxPages          int
	searchPageSize    int
	languagePageSize  int
	authorPageSize    int
	workCacheTTL      time.Duration
}

func defaults() *options {
	return &options{
		baseURL:           constants.DefaultBaseURL,
		collection:        constants.DefaultCollection,
		userAgent:         constants.DefaultUserAgent,
		httpTimeout:       constants.DefaultHTTPTimeout,
		requestsPerSecond: constants.DefaultRequestsPerSecond,
		maxPages:          constants.MaxPages,
		searchPageSize:    constants.SearchPageSize,
		languagePageSize:  constants.LanguagePageSize,
		authorPageSize:    constants.AuthorSearchPageSize,
		workCacheTTL:      constants.WorkCacheTTL,
	}
}

// apply applies the options and validates the result.
func (o *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	if err := o.validate(); err != nil {
		return nil, err
	}
	return o, nil
}

func (o *options) validate() error {
	checks := []struct {
		field string
		value any
		rules []validation.Rule
	}{
		{"base_url", o.baseURL, []validation.Rule{validation.Required, is.URL}},
		{"collection", o.collection, []validation.Rule{validation.Required}},
		{"max_pages", o.maxPages, []validation.Rule{validation.Required, validation.Min(1)}},
		{"search_page_size", o.searchPageSize, []validation.Rule{validation.Required, validation.Min(1), validation.Max(constants.MaxPageSize)}},
		{"language_page_size", o.languagePageSize, []validation.Rule{validation.Required, validation.Min(1), validation.Max(constants.MaxPageSize)}},
		{"author_page_size", o.authorPageSize, []validation.Rule{validation.Required, validation.Min(1), validation.Max(constants.MaxPageSize)}},
	}
	for _, c := range checks {
		if err := validation.Validate(c.value, c.rules...); err != nil {
			return errors.NewConfigError("litmap", c.field+": "+err.Error(), errors.WrapValidation(c.field, err))
		}
	}
	return nil
}

// WithBaseURL sets the root of the remote catalog API.
func WithBaseURL(url string) Option {
	return func(o *options) error {
		o.baseURL = url
		return nil
	}
}

// WithCollection sets the collection path listed by the remote catalog.
func WithCollection(name string) Option {
	return func(o *options) error {
		o.collection = name
		return nil
	}
}

// WithUserAgent sets the User-Agent sent with every request.
func WithUserAgent(ua string) Option {
	return func(o *options) error {
		o.userAgent = ua
		return nil
	}
}

// WithHTTPTimeout sets the per-request timeout.
func WithHTTPTimeout(d time.Duration) Option {
	return func(o *options) error {
		if d <= 0 {
			return errors.NewValidationError("http_timeout", d, "must be positive")
		}
		o.httpTimeout = d
		return nil
	}
}

// WithHTTPClient sets the HTTP client used for remote calls. Its own
// timeout is left untouched.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) error {
		o.httpClient = hc
		return nil
	}
}

// WithRequestsPerSecond spaces remote requests. Zero disables spacing.
func WithRequestsPerSecond(rps float64) Option {
	return func(o *options) error {
		if rps < 0 {
			return errors.NewValidationError("requests_per_second", rps, "cannot be negative")
		}
		o.requestsPerSecond = rps
		return nil
	}
}

// WithMaxPages sets the page ceiling for a snapshot build.
func WithMaxPages(n int) Option {
	return func(o *options) error {
		o.maxPages = n
		return nil
	}
}

// WithSearchPageSize sets the page size hint for title searches.
func WithSearchPageSize(n int) Option {
	return func(o *options) error {
		o.searchPageSize = n
		return nil
	}
}

// WithLanguagePageSize sets the page size hint for language listings.
func WithLanguagePageSize(n int) Option {
	return func(o *options) error {
		o.languagePageSize = n
		return nil
	}
}

// WithAuthorSearchPageSize sets the page size hint for author searches.
func WithAuthorSearchPageSize(n int) Option {
	return func(o *options) error {
		o.authorPageSize = n
		return nil
	}
}

// WithWorkCacheTTL sets how long remotely fetched works stay memoized.
func WithWorkCacheTTL(d time.Duration) Option {
	return func(o *options) error {
		o.workCacheTTL = d
		return nil
	}
}
