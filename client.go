// Package litmap provides the main entry point for browsing a remote
// literature catalog. It keeps one in-memory snapshot of the paginated
// remote collection and answers queries over it, falling back to the
// snapshot when a live language listing is unavailable.
//
// Example usage:
//
//	lm, err := litmap.New(litmap.WithMaxPages(10))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	lm.OnWorkAdded(func(w catalogs.Work) {
//	    log.Printf("New work: %d %s", w.ID, w.Title)
//	})
//
//	top, err := lm.TopByDownloads(ctx, 10)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, w := range top {
//	    fmt.Printf("%d  %s\n", w.DownloadCount, w.Title)
//	}
package litmap

import (
	"context"
	"time"

	"github.com/agentstation/litmap/internal/cache"
	"github.com/agentstation/litmap/internal/snapshot"
	"github.com/agentstation/litmap/internal/sources/gutendex"
	"github.com/agentstation/litmap/internal/transport"
	"github.com/agentstation/litmap/pkg/catalogs"
	"github.com/agentstation/litmap/pkg/constants"
	"github.com/agentstation/litmap/pkg/logging"
	"github.com/agentstation/litmap/pkg/query"
)

// State is the lifecycle position of the snapshot.
type State = snapshot.State

// Snapshot lifecycle states.
const (
	StateEmpty    = snapshot.StateEmpty
	StateBuilding = snapshot.StateBuilding
	StateReady    = snapshot.StateReady
)

// Compile-time interface check to ensure proper implementation.
var _ Client = (*client)(nil)

// Catalog provides access to the cached snapshot.
type Catalog interface {
	// Snapshot returns the current snapshot, building it first if needed
	Snapshot(ctx context.Context) (*catalogs.Snapshot, error)

	// Current returns the published snapshot without building, or nil
	Current() *catalogs.Snapshot

	// State reports whether a snapshot is empty, building or ready
	State() State
}

// Refresher rebuilds the snapshot on demand.
type Refresher interface {
	Refresh(ctx context.Context) (*RefreshResult, error)
}

// Queries answers questions over the catalog.
type Queries interface {
	WorksByLanguage(ctx context.Context, code string) (*query.WorksResult, error)
	SearchTitles(ctx context.Context, term, lang string) ([]catalogs.Work, error)
	SearchAuthors(ctx context.Context, fragment string) ([]catalogs.Person, error)
	Authors(ctx context.Context) ([]catalogs.Person, error)
	AuthorsAliveIn(ctx context.Context, year int) ([]catalogs.Person, error)
	FindAuthors(ctx context.Context, fragment string) ([]catalogs.Person, error)
	TopByDownloads(ctx context.Context, n int) ([]catalogs.Work, error)
	Stats(ctx context.Context) (query.Stats, error)
	Languages(ctx context.Context) ([]query.LanguageCount, error)
	Work(ctx context.Context, id int) (catalogs.Work, query.Source, error)
}

// Client is the composed catalog browser.
type Client interface {

	// Catalog provides access to the cached snapshot
	Catalog

	// Refresher rebuilds the snapshot
	Refresher

	// Queries answers questions over the catalog
	Queries

	// Hooks provides access to event callback registration
	Hooks
}

// RefreshResult reports a refresh.
type RefreshResult struct {
	Snapshot catalogs.SnapshotInfo `json:"snapshot" yaml:"snapshot"`
	Changes  Changes               `json:"changes" yaml:"changes"`
	Elapsed  time.Duration         `json:"elapsed" yaml:"elapsed"`
}

// client is the internal implementation of the Client interface.
type client struct {
	*query.Service
	*hooks

	options *options
	store   *snapshot.Store
}

// New creates a new Client with the given options. Nothing is fetched
// until the first query.
func New(opts ...Option) (Client, error) {
	o, err := defaults().apply(opts...)
	if err != nil {
		return nil, err
	}

	transportOpts := []transport.Option{
		transport.WithUserAgent(o.userAgent),
		transport.WithRequestsPerSecond(o.requestsPerSecond),
	}
	if o.httpClient != nil {
		transportOpts = append(transportOpts, transport.WithHTTPClient(o.httpClient))
	} else {
		transportOpts = append(transportOpts, transport.WithTimeout(o.httpTimeout))
	}

	source := gutendex.NewClient(
		gutendex.WithBaseURL(o.baseURL),
		gutendex.WithCollection(o.collection),
		gutendex.WithTransport(transport.New(transportOpts...)),
	)

	memo := cache.New(o.workCacheTTL, constants.CacheCleanupInterval)
	h := newHooks()
	store := snapshot.New(source,
		snapshot.WithMaxPages(o.maxPages),
		// works looked up remotely may be stale once a new snapshot lands
		snapshot.WithPublishHook(func(_, _ *catalogs.Snapshot) { memo.Clear() }),
		snapshot.WithPublishHook(h.triggerSnapshotUpdate),
	)

	svc := query.NewService(source, store,
		query.WithSearchPageSize(o.searchPageSize),
		query.WithLanguagePageSize(o.languagePageSize),
		query.WithAuthorSearchPageSize(o.authorPageSize),
		query.WithWorkCache(memo),
	)

	logging.Debug().
		Str("base_url", o.baseURL).
		Str("collection", o.collection).
		Int("max_pages", o.maxPages).
		Msg("Created litmap client")

	return &client{
		Service: svc,
		hooks:   h,
		options: o,
		store:   store,
	}, nil
}

// Snapshot returns the current snapshot, building it first if needed.
func (c *client) Snapshot(ctx context.Context) (*catalogs.Snapshot, error) {
	return c.store.Snapshot(ctx)
}

// Current returns the published snapshot without building.
func (c *client) Current() *catalogs.Snapshot {
	return c.store.Current()
}

// State reports the snapshot lifecycle state.
func (c *client) State() State {
	return c.store.State()
}

// Refresh rebuilds the snapshot and reports what changed. If the rebuild
// fails before any page is fetched the previous snapshot is kept and the
// error is returned.
func (c *client) Refresh(ctx context.Context) (*RefreshResult, error) {
	start := time.Now()
	prev := c.store.Current()

	next, err := c.store.Refresh(logging.WithOperation(ctx, "refresh"))
	if err != nil {
		return nil, err
	}

	result := &RefreshResult{
		Snapshot: next.Info(),
		Elapsed:  time.Since(start),
	}
	if prev != nil && prev != next {
		result.Changes = diffSnapshots(prev, next).counts()
	} else if prev == nil {
		result.Changes = Changes{Added: next.Len()}
	}
	return result, nil
}
