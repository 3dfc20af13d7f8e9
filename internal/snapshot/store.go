// Package snapshot owns the in-memory catalog snapshot: it builds it lazily
// from the paginated remote collection, rebuilds it on refresh, and makes
// sure only one build runs at a time.
package snapshot

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/agentstation/litmap/pkg/catalogs"
	"github.com/agentstation/litmap/pkg/constants"
	"github.com/agentstation/litmap/pkg/errors"
	"github.com/agentstation/litmap/pkg/logging"
)

const buildKey = "build"

// PageFetcher retrieves one page of the full collection.
type PageFetcher interface {
	FetchPage(ctx context.Context, page int) (*catalogs.Page, error)
}

// PublishFunc is called after a snapshot is published. prev is nil for the
// first publish. Hooks run once per publish, after the build has finished
// and before any caller waiting on it returns, so a hook may call Snapshot
// or Refresh.
type PublishFunc func(prev, next *catalogs.Snapshot)

// publication is the result of one build shared by every caller that
// joined it. Whichever caller receives it first runs the hooks.
type publication struct {
	prev, next *catalogs.Snapshot
	hooks      []PublishFunc
	once       sync.Once
}

func (p *publication) dispatch() {
	p.once.Do(func() {
		for _, fn := range p.hooks {
			fn(p.prev, p.next)
		}
	})
}

// Store owns the current Snapshot.
type Store struct {
	source   PageFetcher
	maxPages int
	now      func() time.Time

	mu        sync.Mutex
	state     State
	current   *catalogs.Snapshot
	onPublish []PublishFunc

	group singleflight.Group
}

// Option configures a Store.
type Option func(*Store)

// WithMaxPages sets the page ceiling for a build.
func WithMaxPages(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.maxPages = n
		}
	}
}

// WithPublishHook registers fn to run after every publish.
func WithPublishHook(fn PublishFunc) Option {
	return func(s *Store) {
		if fn != nil {
			s.onPublish = append(s.onPublish, fn)
		}
	}
}

// WithClock sets the time source used to stamp snapshots.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// New creates an empty Store backed by source.
func New(source PageFetcher, opts ...Option) *Store {
	s := &Store{
		source:   source,
		maxPages: constants.MaxPages,
		now:      func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// OnPublish registers fn to run after every publish.
func (s *Store) OnPublish(fn PublishFunc) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onPublish = append(s.onPublish, fn)
}

// Snapshot returns the published snapshot, building it first if there is
// none. Callers arriving while a build is in flight wait for that build and
// receive its result. When that build fails but an earlier snapshot is
// still published, Snapshot returns the earlier one; only Refresh reports
// the failure. If ctx ends while waiting, Snapshot returns the context
// error and the build carries on.
func (s *Store) Snapshot(ctx context.Context) (*catalogs.Snapshot, error) {
	s.mu.Lock()
	if s.state == StateReady {
		snap := s.current
		s.mu.Unlock()
		return snap, nil
	}
	s.mu.Unlock()

	snap, err := s.build(ctx, false)
	if err != nil && ctx.Err() == nil {
		if current := s.Current(); current != nil {
			logging.FromContext(ctx).Debug().Err(err).Msg("Rebuild failed, serving published snapshot")
			return current, nil
		}
	}
	return snap, err
}

// Refresh rebuilds and publishes a new snapshot. If the rebuild fails before
// any page is fetched, the previous snapshot stays published and the error
// is returned. A refresh requested while a build is in flight joins it.
func (s *Store) Refresh(ctx context.Context) (*catalogs.Snapshot, error) {
	return s.build(ctx, true)
}

// Current returns the published snapshot without building. It returns nil
// when nothing has been published yet.
func (s *Store) Current() *catalogs.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// State reports the lifecycle state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Store) build(ctx context.Context, force bool) (*catalogs.Snapshot, error) {
	detached := context.WithoutCancel(ctx)
	ch := s.group.DoChan(buildKey, func() (any, error) {
		return s.buildAndPublish(detached, force)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		pub := res.Val.(*publication)
		pub.dispatch()
		return pub.next, nil
	case <-ctx.Done():
		// The build outlives this caller; its hooks must still run.
		go func() {
			if res := <-ch; res.Err == nil {
				res.Val.(*publication).dispatch()
			}
		}()
		return nil, ctx.Err()
	}
}

func (s *Store) buildAndPublish(ctx context.Context, force bool) (*publication, error) {
	s.mu.Lock()
	if !force && s.state == StateReady {
		snap := s.current
		s.mu.Unlock()
		return &publication{next: snap}, nil
	}
	s.state = StateBuilding
	s.mu.Unlock()

	snap, err := s.fetchAll(ctx)

	s.mu.Lock()
	if snap == nil {
		if s.current != nil {
			s.state = StateReady
		} else {
			s.state = StateEmpty
		}
		s.mu.Unlock()
		return nil, err
	}
	prev := s.current
	s.current = snap
	s.state = StateReady
	hooks := append([]PublishFunc(nil), s.onPublish...)
	s.mu.Unlock()

	return &publication{prev: prev, next: snap, hooks: hooks}, nil
}

// fetchAll walks the collection from page 1 until an empty page, the last
// page, the ceiling, or a failure. It returns a nil snapshot only when no
// page could be fetched at all.
func (s *Store) fetchAll(ctx context.Context) (*catalogs.Snapshot, error) {
	buildID := uuid.NewString()
	ctx = logging.WithBuild(logging.WithOperation(ctx, "build"), buildID)
	logger := logging.FromContext(ctx)
	logger.Info().Int("max_pages", s.maxPages).Msg("Building catalog snapshot")

	start := time.Now()
	var (
		works      []catalogs.Work
		pages      int
		reachedEnd bool
		cause      error
	)
	for n := 1; n <= s.maxPages; n++ {
		page, err := s.source.FetchPage(ctx, n)
		if err != nil {
			if pages == 0 {
				logger.Warn().Err(err).Msg("Build failed before any page was fetched")
				if !errors.IsRemoteUnavailable(err) {
					err = errors.WrapRemote("page 1", 0, err)
				}
				return nil, err
			}
			logger.Warn().Err(err).Int("page", n).Int("works", len(works)).
				Msg("Build truncated by page failure, publishing partial snapshot")
			cause = err
			break
		}
		pages++
		if page.Empty() {
			reachedEnd = true
			break
		}
		works = append(works, page.Works...)
		if page.IsLast() {
			reachedEnd = true
			break
		}
	}

	opts := []catalogs.SnapshotOption{
		catalogs.WithSnapshotID(buildID),
		catalogs.WithFetchedAt(s.now()),
		catalogs.WithPages(pages),
	}
	if !reachedEnd {
		if cause == nil {
			logger.Warn().Int("pages", pages).Msg("Build stopped at page ceiling")
		}
		opts = append(opts, catalogs.WithTruncation(cause))
	}

	snap := catalogs.NewSnapshot(works, opts...)
	logger.Info().
		Int("pages", pages).
		Int("works", snap.Len()).
		Bool("complete", snap.Complete()).
		Dur("elapsed", time.Since(start)).
		Msg("Published catalog snapshot")
	return snap, nil
}
