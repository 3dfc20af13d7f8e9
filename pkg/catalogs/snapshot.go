package catalogs

import (
	"time"
)

// Snapshot is an immutable, ordered view of the catalog produced by one
// build. Accessors return copies, so callers may modify what they receive.
type Snapshot struct {
	id        string
	fetchedAt time.Time
	pages     int
	complete  bool
	err       error
	works     []Work
	index     map[int]int
}

// SnapshotOption configures a Snapshot at construction.
type SnapshotOption func(*Snapshot)

// WithSnapshotID sets the build identifier.
func WithSnapshotID(id string) SnapshotOption {
	return func(s *Snapshot) {
		s.id = id
	}
}

// WithFetchedAt sets the time the build finished.
func WithFetchedAt(t time.Time) SnapshotOption {
	return func(s *Snapshot) {
		s.fetchedAt = t
	}
}

// WithPages records how many pages the build fetched.
func WithPages(n int) SnapshotOption {
	return func(s *Snapshot) {
		s.pages = n
	}
}

// WithTruncation marks the snapshot incomplete. err is the failure that
// stopped the build, or nil when the page ceiling did.
func WithTruncation(err error) SnapshotOption {
	return func(s *Snapshot) {
		s.complete = false
		s.err = err
	}
}

// NewSnapshot freezes works into a Snapshot. The slice is deep-copied.
func NewSnapshot(works []Work, opts ...SnapshotOption) *Snapshot {
	s := &Snapshot{
		complete:  true,
		fetchedAt: time.Now().UTC(),
		works:     CloneWorks(works),
	}
	if s.works == nil {
		s.works = []Work{}
	}
	for _, opt := range opts {
		opt(s)
	}

	s.index = make(map[int]int, len(s.works))
	for i, w := range s.works {
		if _, dup := s.index[w.ID]; !dup {
			s.index[w.ID] = i
		}
	}
	return s
}

// ID returns the build identifier.
func (s *Snapshot) ID() string { return s.id }

// FetchedAt returns when the build finished.
func (s *Snapshot) FetchedAt() time.Time { return s.fetchedAt }

// Pages returns the number of pages fetched.
func (s *Snapshot) Pages() int { return s.pages }

// Complete reports whether the build reached the end of the collection.
func (s *Snapshot) Complete() bool { return s.complete }

// Err returns the failure that truncated the build, if any.
func (s *Snapshot) Err() error { return s.err }

// Len returns the number of works.
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.works)
}

// Works returns a copy of the works in catalog order.
func (s *Snapshot) Works() []Work {
	if s == nil {
		return []Work{}
	}
	return CloneWorks(s.works)
}

// Work looks up a work by ID.
func (s *Snapshot) Work(id int) (Work, bool) {
	if s == nil {
		return Work{}, false
	}
	i, ok := s.index[id]
	if !ok {
		return Work{}, false
	}
	return s.works[i].Clone(), true
}

// Each calls fn for every work in order without copying. fn must not
// retain or modify the work; return false to stop early.
func (s *Snapshot) Each(fn func(Work) bool) {
	if s == nil {
		return
	}
	for _, w := range s.works {
		if !fn(w) {
			return
		}
	}
}

// Info summarizes the build metadata.
func (s *Snapshot) Info() SnapshotInfo {
	info := SnapshotInfo{
		ID:        s.id,
		FetchedAt: s.fetchedAt,
		Pages:     s.pages,
		Works:     len(s.works),
		Complete:  s.complete,
	}
	if s.err != nil {
		info.Error = s.err.Error()
	}
	return info
}

// SnapshotInfo is the serializable summary of a Snapshot.
type SnapshotInfo struct {
	ID        string    `json:"id" yaml:"id"`
	FetchedAt time.Time `json:"fetched_at" yaml:"fetched_at"`
	Pages     int       `json:"pages" yaml:"pages"`
	Works     int       `json:"works" yaml:"works"`
	Complete  bool      `json:"complete" yaml:"complete"`
	Error     string    `json:"error,omitempty" yaml:"error,omitempty"`
}
