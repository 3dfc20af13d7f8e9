// Package gutendex provides a client for the Gutendex catalog API.
package gutendex

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/agentstation/litmap/internal/transport"
	"github.com/agentstation/litmap/pkg/catalogs"
	"github.com/agentstation/litmap/pkg/constants"
	"github.com/agentstation/litmap/pkg/errors"
	"github.com/agentstation/litmap/pkg/logging"
)

// Client fetches works from a Gutendex-shaped API. It never retries;
// every failure to obtain a decodable response is reported as
// errors.ErrRemoteUnavailable.
type Client struct {
	baseURL    string
	collection string
	transport  *transport.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets the API root, e.g. "https://gutendex.com".
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = strings.TrimRight(u, "/")
		}
	}
}

// WithCollection sets the collection path, e.g. "books".
func WithCollection(name string) Option {
	return func(c *Client) {
		if name = strings.Trim(name, "/"); name != "" {
			c.collection = name
		}
	}
}

// WithTransport sets the HTTP transport.
func WithTransport(t *transport.Client) Option {
	return func(c *Client) {
		if t != nil {
			c.transport = t
		}
	}
}

// NewClient creates a new Gutendex client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:    constants.DefaultBaseURL,
		collection: constants.DefaultCollection,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.transport == nil {
		c.transport = transport.New()
	}
	return c
}

// FetchPage retrieves page n (1-based) of the full collection.
func (c *Client) FetchPage(ctx context.Context, page int) (*catalogs.Page, error) {
	if page < 1 {
		return nil, errors.NewValidationError("page", page, "must be at least 1")
	}
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	return c.list(logging.WithPage(ctx, page), q)
}

// Search retrieves works whose title or author matches term.
// No matches is an empty page, not an error.
func (c *Client) Search(ctx context.Context, term string, pageSize int) (*catalogs.Page, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, errors.NewValidationError("term", term, "cannot be empty")
	}
	q := url.Values{}
	q.Set("search", term)
	setPageSize(q, pageSize)
	return c.list(ctx, q)
}

// FetchByLanguage retrieves works listed under a language code.
func (c *Client) FetchByLanguage(ctx context.Context, code string, pageSize int) (*catalogs.Page, error) {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return nil, errors.NewValidationError("language", code, "cannot be empty")
	}
	q := url.Values{}
	q.Set("languages", code)
	setPageSize(q, pageSize)
	return c.list(ctx, q)
}

// FetchWork retrieves a single work. A 404 matches errors.ErrNotFound.
func (c *Client) FetchWork(ctx context.Context, id int) (*catalogs.Work, error) {
	if id < 1 {
		return nil, errors.NewValidationError("id", id, "must be positive")
	}
	endpoint := c.collectionURL() + strconv.Itoa(id) + "/"

	var result bookResponse
	if err := c.transport.GetJSON(logging.WithWork(ctx, id), endpoint, &result); err != nil {
		return nil, err
	}
	work := toWork(result)
	return &work, nil
}

// list performs a collection query.
func (c *Client) list(ctx context.Context, q url.Values) (*catalogs.Page, error) {
	endpoint := c.collectionURL() + "?" + q.Encode()

	var result listResponse
	if err := c.transport.GetJSON(ctx, endpoint, &result); err != nil {
		return nil, err
	}

	page := toPage(&result)
	logging.FromContext(ctx).Debug().
		Int("works", len(page.Works)).
		Int("count", page.Count).
		Bool("last", page.IsLast()).
		Msg("Fetched catalog page")
	return page, nil
}

func (c *Client) collectionURL() string {
	return c.baseURL + "/" + c.collection + "/"
}

func setPageSize(q url.Values, n int) {
	if n > 0 {
		q.Set("page_size", strconv.Itoa(n))
	}
}
