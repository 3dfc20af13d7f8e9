// Package gutendextest provides an in-memory Gutendex server for tests.
package gutendextest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/agentstation/litmap/internal/sources/gutendex"
	"github.com/agentstation/litmap/internal/transport"
	"github.com/agentstation/litmap/pkg/catalogs"
)

// Server serves a fixed set of works the way Gutendex pages them.
type Server struct {
	*httptest.Server

	mu        sync.Mutex
	works     []catalogs.Work
	pageSize  int
	failPages map[int]int
	down      bool
	gate      chan struct{}
	hits      map[string]int
}

// Option configures a Server.
type Option func(*Server)

// WithPageSize sets how many works each collection page holds.
func WithPageSize(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.pageSize = n
		}
	}
}

// WithFailingPage makes requests for page respond with status.
func WithFailingPage(page, status int) Option {
	return func(s *Server) {
		s.failPages[page] = status
	}
}

// WithGate blocks every request until gate is closed.
func WithGate(gate chan struct{}) Option {
	return func(s *Server) {
		s.gate = gate
	}
}

// NewServer starts a server closed at test cleanup.
func NewServer(t testing.TB, works []catalogs.Work, opts ...Option) *Server {
	t.Helper()
	s := &Server{
		works:     works,
		pageSize:  32,
		failPages: make(map[int]int),
		hits:      make(map[string]int),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.Close)
	return s
}

// Client returns a Gutendex client pointed at the server with no rate limit.
func (s *Server) Client() *gutendex.Client {
	return gutendex.NewClient(
		gutendex.WithBaseURL(s.URL),
		gutendex.WithTransport(transport.New(transport.WithRequestsPerSecond(0))),
	)
}

// SetWorks replaces the served works.
func (s *Server) SetWorks(works []catalogs.Work) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.works = works
}

// SetDown makes every request fail with 503 while down is true.
func (s *Server) SetDown(down bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.down = down
}

// SetGate blocks every later request until gate is closed; nil unblocks.
func (s *Server) SetGate(gate chan struct{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gate = gate
}

// SetFailingPage makes requests for page respond with status; 0 clears it.
func (s *Server) SetFailingPage(page, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if status == 0 {
		delete(s.failPages, page)
		return
	}
	s.failPages[page] = status
}

// Hits returns how many requests carried the given query key and value,
// e.g. Hits("page", "1").
func (s *Server) Hits(key, value string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[key+"="+value]
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	gate := s.gate
	s.mu.Unlock()
	if gate != nil {
		<-gate
	}

	s.mu.Lock()
	q := r.URL.Query()
	for key := range q {
		s.hits[key+"="+q.Get(key)]++
	}
	works := s.works
	pageSize := s.pageSize
	down := s.down
	page, _ := strconv.Atoi(q.Get("page"))
	failStatus := s.failPages[page]
	s.mu.Unlock()

	if down {
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/books/")
	if rest != "" {
		s.serveWork(w, works, strings.TrimSuffix(rest, "/"))
		return
	}

	switch {
	case q.Has("search"):
		writeList(w, filter(works, func(wk catalogs.Work) bool {
			term := strings.ToLower(q.Get("search"))
			if strings.Contains(strings.ToLower(wk.Title), term) {
				return true
			}
			for _, name := range wk.AuthorNames() {
				if strings.Contains(strings.ToLower(name), term) {
					return true
				}
			}
			return false
		}), "")
	case q.Has("languages"):
		writeList(w, filter(works, func(wk catalogs.Work) bool {
			return wk.HasLanguage(q.Get("languages"))
		}), "")
	default:
		if page < 1 {
			page = 1
		}
		if failStatus != 0 {
			http.Error(w, "page failure", failStatus)
			return
		}
		start := min((page-1)*pageSize, len(works))
		end := min(start+pageSize, len(works))
		next := ""
		if end < len(works) {
			next = s.URL + "/books/?page=" + strconv.Itoa(page+1)
		}
		writeListCount(w, works[start:end], len(works), next)
	}
}

func (s *Server) serveWork(w http.ResponseWriter, works []catalogs.Work, idStr string) {
	id, err := strconv.Atoi(idStr)
	if err != nil {
		http.Error(w, `{"detail":"Not found."}`, http.StatusNotFound)
		return
	}
	for _, wk := range works {
		if wk.ID == id {
			writeJSON(w, wk)
			return
		}
	}
	http.Error(w, `{"detail":"Not found."}`, http.StatusNotFound)
}

type listBody struct {
	Count    int             `json:"count"`
	Next     *string         `json:"next"`
	Previous *string         `json:"previous"`
	Results  []catalogs.Work `json:"results"`
}

func writeList(w http.ResponseWriter, works []catalogs.Work, next string) {
	writeListCount(w, works, len(works), next)
}

func writeListCount(w http.ResponseWriter, works []catalogs.Work, count int, next string) {
	body := listBody{Count: count, Results: works}
	if body.Results == nil {
		body.Results = []catalogs.Work{}
	}
	if next != "" {
		body.Next = &next
	}
	writeJSON(w, body)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func filter(works []catalogs.Work, keep func(catalogs.Work) bool) []catalogs.Work {
	var out []catalogs.Work
	for _, wk := range works {
		if keep(wk) {
			out = append(out, wk)
		}
	}
	return out
}

// Works builds n simple works with IDs 1..n, descending download counts and
// one author each.
func Works(n int) []catalogs.Work {
	works := make([]catalogs.Work, n)
	for i := range works {
		id := i + 1
		works[i] = catalogs.Work{
			ID:            id,
			Title:         "Work " + strconv.Itoa(id),
			Authors:       []catalogs.Person{{Name: "Author " + strconv.Itoa(id)}},
			Languages:     []string{"en"},
			DownloadCount: (n - i) * 10,
		}
	}
	return works
}
