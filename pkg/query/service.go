package query

import (
	"context"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/agentstation/litmap/internal/cache"
	"github.com/agentstation/litmap/pkg/catalogs"
	"github.com/agentstation/litmap/pkg/constants"
	"github.com/agentstation/litmap/pkg/errors"
	"github.com/agentstation/litmap/pkg/logging"
)

// Remote is the live side of the catalog.
type Remote interface {
	Search(ctx context.Context, term string, pageSize int) (*catalogs.Page, error)
	FetchByLanguage(ctx context.Context, code string, pageSize int) (*catalogs.Page, error)
	FetchWork(ctx context.Context, id int) (*catalogs.Work, error)
}

// Snapshots provides the cached catalog, building it on first use.
type Snapshots interface {
	Snapshot(ctx context.Context) (*catalogs.Snapshot, error)
}

// Source names the tier that answered a query.
type Source string

// Answering tiers.
const (
	SourceRemote Source = "remote"
	SourceCache  Source = "cache"
)

// WorksResult is a list of works and where it came from.
type WorksResult struct {
	Works  []catalogs.Work `json:"works" yaml:"works"`
	Source Source          `json:"source" yaml:"source"`
	// Fallback is the remote failure that sent the query to the cache.
	Fallback error `json:"-" yaml:"-"`
}

// Service answers queries against the remote catalog and the snapshot.
type Service struct {
	remote    Remote
	snapshots Snapshots
	works     *cache.Works

	searchPageSize   int
	languagePageSize int
	authorPageSize   int
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithSearchPageSize sets the page size hint for title searches.
func WithSearchPageSize(n int) ServiceOption {
	return func(s *Service) {
		if n > 0 {
			s.searchPageSize = n
		}
	}
}

// WithLanguagePageSize sets the page size hint for language listings.
func WithLanguagePageSize(n int) ServiceOption {
	return func(s *Service) {
		if n > 0 {
			s.languagePageSize = n
		}
	}
}

// WithAuthorSearchPageSize sets the page size hint for author searches.
func WithAuthorSearchPageSize(n int) ServiceOption {
	return func(s *Service) {
		if n > 0 {
			s.authorPageSize = n
		}
	}
}

// WithWorkCache sets the memo used for remote work lookups.
func WithWorkCache(c *cache.Works) ServiceOption {
	return func(s *Service) {
		if c != nil {
			s.works = c
		}
	}
}

// NewService creates a Service.
func NewService(remote Remote, snapshots Snapshots, opts ...ServiceOption) *Service {
	s := &Service{
		remote:           remote,
		snapshots:        snapshots,
		searchPageSize:   constants.SearchPageSize,
		languagePageSize: constants.LanguagePageSize,
		authorPageSize:   constants.AuthorSearchPageSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.works == nil {
		s.works = cache.New(constants.WorkCacheTTL, constants.CacheCleanupInterval)
	}
	return s
}

// WorksByLanguage lists works in a language. The remote answers first; if
// it is unavailable the snapshot is filtered instead. An empty code returns
// the whole snapshot.
func (s *Service) WorksByLanguage(ctx context.Context, code string) (*WorksResult, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		snap, err := s.snapshots.Snapshot(ctx)
		if err != nil {
			return nil, err
		}
		return &WorksResult{Works: snap.Works(), Source: SourceCache}, nil
	}

	ctx = logging.WithField(logging.WithOperation(ctx, "works_by_language"), "language", code)
	page, err := s.remote.FetchByLanguage(ctx, code, s.languagePageSize)
	if err == nil {
		return &WorksResult{Works: nonNil(page.Works), Source: SourceRemote}, nil
	}
	if !errors.IsRemoteUnavailable(err) {
		return nil, err
	}

	logging.FromContext(ctx).Warn().Err(err).Msg("Remote language listing failed, filtering cached snapshot")
	snap, snapErr := s.snapshots.Snapshot(ctx)
	if snapErr != nil {
		return nil, snapErr
	}
	return &WorksResult{
		Works:    FilterLanguage(snap.Works(), code),
		Source:   SourceCache,
		Fallback: err,
	}, nil
}

// SearchTitles runs a live search, optionally keeping only works in lang.
// The snapshot is never consulted.
func (s *Service) SearchTitles(ctx context.Context, term, lang string) ([]catalogs.Work, error) {
	term = strings.TrimSpace(term)
	if err := validation.Validate(term, validation.Required); err != nil {
		return nil, errors.WrapValidation("term", err)
	}
	page, err := s.remote.Search(logging.WithOperation(ctx, "search_titles"), term, s.searchPageSize)
	if err != nil {
		return nil, err
	}
	return FilterLanguage(page.Works, lang), nil
}

// SearchAuthors runs a live search and returns the unique authors whose
// name contains fragment.
func (s *Service) SearchAuthors(ctx context.Context, fragment string) ([]catalogs.Person, error) {
	fragment = strings.TrimSpace(fragment)
	if err := validation.Validate(fragment, validation.Required); err != nil {
		return nil, errors.WrapValidation("fragment", err)
	}
	page, err := s.remote.Search(logging.WithOperation(ctx, "search_authors"), fragment, s.authorPageSize)
	if err != nil {
		return nil, err
	}
	return FindAuthors(page.Works, fragment)
}

// Authors returns the unique authors in the snapshot.
func (s *Service) Authors(ctx context.Context) ([]catalogs.Person, error) {
	works, err := s.snapshotWorks(ctx)
	if err != nil {
		return nil, err
	}
	return UniqueAuthors(works), nil
}

// AuthorsAliveIn returns the unique snapshot authors alive in year.
func (s *Service) AuthorsAliveIn(ctx context.Context, year int) ([]catalogs.Person, error) {
	works, err := s.snapshotWorks(ctx)
	if err != nil {
		return nil, err
	}
	return AliveIn(works, year), nil
}

// FindAuthors searches the snapshot authors by name fragment.
func (s *Service) FindAuthors(ctx context.Context, fragment string) ([]catalogs.Person, error) {
	works, err := s.snapshotWorks(ctx)
	if err != nil {
		return nil, err
	}
	return FindAuthors(works, fragment)
}

// TopByDownloads returns the n most downloaded snapshot works.
func (s *Service) TopByDownloads(ctx context.Context, n int) ([]catalogs.Work, error) {
	works, err := s.snapshotWorks(ctx)
	if err != nil {
		return nil, err
	}
	return TopByDownloads(works, n), nil
}

// Stats summarizes snapshot download counts.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	works, err := s.snapshotWorks(ctx)
	if err != nil {
		return Stats{}, err
	}
	return DownloadStats(works)
}

// Languages lists the languages present in the snapshot.
func (s *Service) Languages(ctx context.Context) ([]LanguageCount, error) {
	works, err := s.snapshotWorks(ctx)
	if err != nil {
		return nil, err
	}
	return Languages(works), nil
}

// Work looks a work up in the snapshot, then in the memo of earlier remote
// lookups, then remotely. A snapshot that cannot be built does not prevent
// the remote lookup.
func (s *Service) Work(ctx context.Context, id int) (catalogs.Work, Source, error) {
	if err := validation.Validate(id, validation.Required, validation.Min(1)); err != nil {
		return catalogs.Work{}, "", errors.WrapValidation("id", err)
	}
	ctx = logging.WithWork(ctx, id)

	snap, err := s.snapshots.Snapshot(ctx)
	if err == nil {
		if w, ok := snap.Work(id); ok {
			return w, SourceCache, nil
		}
	} else {
		logging.FromContext(ctx).Debug().Err(err).Msg("Snapshot unavailable for work lookup")
	}

	if w, ok := s.works.Get(id); ok {
		return w, SourceCache, nil
	}

	w, err := s.remote.FetchWork(ctx, id)
	if err != nil {
		return catalogs.Work{}, "", err
	}
	s.works.Set(*w)
	return *w, SourceRemote, nil
}

func (s *Service) snapshotWorks(ctx context.Context) ([]catalogs.Work, error) {
	snap, err := s.snapshots.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return snap.Works(), nil
}
