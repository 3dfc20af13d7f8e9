package snapshot

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/agentstation/litmap/pkg/catalogs"
	"github.com/agentstation/litmap/pkg/errors"
)

// fakeSource serves pre-built pages and counts requests per page.
type fakeSource struct {
	mu     sync.Mutex
	pages  []*catalogs.Page
	failAt map[int]error
	calls  map[int]int
	gate   chan struct{}
}

func newFakeSource(pages ...*catalogs.Page) *fakeSource {
	return &fakeSource{
		pages:  pages,
		failAt: make(map[int]error),
		calls:  make(map[int]int),
	}
}

func (f *fakeSource) FetchPage(_ context.Context, n int) (*catalogs.Page, error) {
	f.mu.Lock()
	gate := f.gate
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[n]++
	if err := f.failAt[n]; err != nil {
		return nil, err
	}
	if n > len(f.pages) {
		return &catalogs.Page{}, nil
	}
	return f.pages[n-1], nil
}

func (f *fakeSource) setGate(gate chan struct{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gate = gate
}

func (f *fakeSource) fail(n int, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err == nil {
		delete(f.failAt, n)
		return
	}
	f.failAt[n] = err
}

func (f *fakeSource) callsFor(n int) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[n]
}

func page(next bool, ids ...int) *catalogs.Page {
	p := &catalogs.Page{}
	for _, id := range ids {
		p.Works = append(p.Works, catalogs.Work{
			ID:        id,
			Title:     "Work " + strconv.Itoa(id),
			Authors:   []catalogs.Person{{Name: "Author " + strconv.Itoa(id)}},
			Languages: []string{"en"},
		})
	}
	if next {
		p.Next = "more"
	}
	return p
}

func remoteDown() error {
	return errors.NewRemoteError("http://example.test/books/", http.StatusServiceUnavailable, "down")
}

func ids(s *catalogs.Snapshot) []int {
	var out []int
	for _, w := range s.Works() {
		out = append(out, w.ID)
	}
	return out
}

func TestBuildStopsAtLastPage(t *testing.T) {
	src := newFakeSource(page(true, 1, 2), page(true, 3), page(false, 4), page(false, 5))
	store := New(src)
	assert.Equal(t, StateEmpty, store.State())
	assert.Nil(t, store.Current())

	snap, err := store.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4}, ids(snap))
	assert.Equal(t, 3, snap.Pages())
	assert.True(t, snap.Complete())
	assert.NoError(t, snap.Err())
	assert.NotEmpty(t, snap.ID())
	assert.Equal(t, 0, src.callsFor(4))
	assert.Equal(t, StateReady, store.State())
	assert.Same(t, snap, store.Current())
}

func TestBuildStopsAtEmptyPage(t *testing.T) {
	src := newFakeSource(page(true, 1), page(true), page(false, 3))
	snap, err := New(src).Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int{1}, ids(snap))
	assert.True(t, snap.Complete())
	assert.Equal(t, 1, src.callsFor(2))
	assert.Equal(t, 0, src.callsFor(3))
}

func TestBuildStopsAtCeiling(t *testing.T) {
	src := newFakeSource(page(true, 1), page(true, 2), page(true, 3), page(true, 4))
	snap, err := New(src, WithMaxPages(3)).Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, ids(snap))
	assert.False(t, snap.Complete())
	assert.NoError(t, snap.Err())
	assert.Equal(t, 0, src.callsFor(4))
}

func TestBuildPublishesPartialOnFailure(t *testing.T) {
	src := newFakeSource(page(true, 1, 2), page(true, 3), page(false, 4))
	src.fail(2, remoteDown())

	store := New(src)
	snap, err := store.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, ids(snap))
	assert.False(t, snap.Complete())
	assert.True(t, errors.IsRemoteUnavailable(snap.Err()))
	assert.Equal(t, 1, snap.Pages())
	assert.Equal(t, 0, src.callsFor(3))
	assert.Equal(t, StateReady, store.State())
}

func TestFirstBuildFailureIsNotPublished(t *testing.T) {
	src := newFakeSource(page(false, 1))
	src.fail(1, remoteDown())
	store := New(src)

	snap, err := store.Snapshot(context.Background())
	require.Error(t, err)
	assert.Nil(t, snap)
	assert.True(t, errors.IsRemoteUnavailable(err))
	assert.Equal(t, StateEmpty, store.State())
	assert.Nil(t, store.Current())

	src.fail(1, nil)
	snap, err = store.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int{1}, ids(snap))
	assert.Equal(t, 2, src.callsFor(1))
}

func TestFirstBuildFailureWrapsUnknownErrors(t *testing.T) {
	src := newFakeSource()
	src.fail(1, errors.New("limiter closed"))

	_, err := New(src).Snapshot(context.Background())
	assert.True(t, errors.IsRemoteUnavailable(err))
}

func TestRefreshKeepsOldSnapshotOnTotalFailure(t *testing.T) {
	src := newFakeSource(page(false, 1, 2))
	store := New(src)
	first, err := store.Snapshot(context.Background())
	require.NoError(t, err)

	src.fail(1, remoteDown())
	snap, err := store.Refresh(context.Background())
	require.Error(t, err)
	assert.Nil(t, snap)
	assert.True(t, errors.IsRemoteUnavailable(err))
	assert.Same(t, first, store.Current())
	assert.Equal(t, StateReady, store.State())

	again, err := store.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Same(t, first, again)
}

func TestRefreshIsIdempotent(t *testing.T) {
	src := newFakeSource(page(true, 3, 1), page(false, 2))
	store := New(src)

	a, err := store.Refresh(context.Background())
	require.NoError(t, err)
	b, err := store.Refresh(context.Background())
	require.NoError(t, err)

	assert.NotSame(t, a, b)
	assert.NotEqual(t, a.ID(), b.ID())
	if diff := cmp.Diff(a.Works(), b.Works()); diff != "" {
		t.Errorf("refresh changed snapshot content (-first +second):\n%s", diff)
	}
	assert.Equal(t, 2, src.callsFor(1))
}

func TestSnapshotDoesNotRebuildWhenReady(t *testing.T) {
	src := newFakeSource(page(false, 1))
	store := New(src)
	for range 3 {
		_, err := store.Snapshot(context.Background())
		require.NoError(t, err)
	}
	assert.Equal(t, 1, src.callsFor(1))
}

func TestConcurrentFirstCallsShareOneBuild(t *testing.T) {
	src := newFakeSource(page(true, 1, 2), page(false, 3))
	gate := make(chan struct{})
	src.setGate(gate)
	store := New(src)

	const callers = 16
	results := make([]*catalogs.Snapshot, callers)
	var g errgroup.Group
	for i := range callers {
		g.Go(func() error {
			snap, err := store.Snapshot(context.Background())
			results[i] = snap
			return err
		})
	}

	require.Eventually(t, func() bool { return store.State() == StateBuilding }, time.Second, time.Millisecond)
	close(gate)
	require.NoError(t, g.Wait())

	for _, snap := range results {
		assert.Same(t, results[0], snap)
	}
	assert.Equal(t, []int{1, 2, 3}, ids(results[0]))
	assert.Equal(t, 1, src.callsFor(1))
	assert.Equal(t, 1, src.callsFor(2))
}

func TestWaiterCancellationDoesNotStopBuild(t *testing.T) {
	src := newFakeSource(page(false, 1))
	gate := make(chan struct{})
	src.setGate(gate)
	store := New(src)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := store.Snapshot(ctx)
		done <- err
	}()

	require.Eventually(t, func() bool { return store.State() == StateBuilding }, time.Second, time.Millisecond)
	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)

	close(gate)
	require.Eventually(t, func() bool { return store.State() == StateReady }, time.Second, time.Millisecond)
	assert.Equal(t, []int{1}, ids(store.Current()))
}

func TestCurrentServesOldSnapshotDuringRefresh(t *testing.T) {
	src := newFakeSource(page(false, 1))
	store := New(src)
	first, err := store.Snapshot(context.Background())
	require.NoError(t, err)

	gate := make(chan struct{})
	src.setGate(gate)
	refreshed := make(chan *catalogs.Snapshot, 1)
	go func() {
		snap, _ := store.Refresh(context.Background())
		refreshed <- snap
	}()

	require.Eventually(t, func() bool { return store.State() == StateBuilding }, time.Second, time.Millisecond)
	assert.Same(t, first, store.Current())

	close(gate)
	next := <-refreshed
	require.NotNil(t, next)
	assert.NotSame(t, first, next)
	assert.Same(t, next, store.Current())
}

func TestPublishHooks(t *testing.T) {
	src := newFakeSource(page(false, 1))
	var mu sync.Mutex
	var calls [][2]*catalogs.Snapshot
	record := func(prev, next *catalogs.Snapshot) {
		mu.Lock()
		defer mu.Unlock()
		calls = append(calls, [2]*catalogs.Snapshot{prev, next})
	}

	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	store := New(src, WithPublishHook(record), WithClock(func() time.Time { return fixed }))
	first, err := store.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, fixed, first.FetchedAt())

	var late int
	store.OnPublish(func(_, _ *catalogs.Snapshot) { late++ })
	second, err := store.Refresh(context.Background())
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, calls, 2)
	assert.Nil(t, calls[0][0])
	assert.Same(t, first, calls[0][1])
	assert.Same(t, first, calls[1][0])
	assert.Same(t, second, calls[1][1])
	assert.Equal(t, 1, late)
}

func TestSnapshotDuringFailedRefreshServesPublished(t *testing.T) {
	src := newFakeSource(page(false, 1, 2))
	store := New(src)
	first, err := store.Snapshot(context.Background())
	require.NoError(t, err)

	gate := make(chan struct{})
	src.setGate(gate)
	src.fail(1, remoteDown())

	refreshErr := make(chan error, 1)
	go func() {
		_, err := store.Refresh(context.Background())
		refreshErr <- err
	}()
	require.Eventually(t, func() bool { return store.State() == StateBuilding }, time.Second, time.Millisecond)

	type result struct {
		snap *catalogs.Snapshot
		err  error
	}
	reader := make(chan result, 1)
	go func() {
		snap, err := store.Snapshot(context.Background())
		reader <- result{snap, err}
	}()
	// give the reader time to join the in-flight build
	time.Sleep(20 * time.Millisecond)

	close(gate)
	err = <-refreshErr
	require.Error(t, err)
	assert.True(t, errors.IsRemoteUnavailable(err))

	got := <-reader
	require.NoError(t, got.err)
	assert.Same(t, first, got.snap)
	assert.Same(t, first, store.Current())
	assert.Equal(t, StateReady, store.State())
}

func TestSnapshotWithoutPublishedStillFails(t *testing.T) {
	src := newFakeSource(page(false, 1))
	src.fail(1, remoteDown())
	store := New(src)

	snap, err := store.Snapshot(context.Background())
	require.Error(t, err)
	assert.Nil(t, snap)
	assert.True(t, errors.IsRemoteUnavailable(err))
}

func TestPublishHookMayRefresh(t *testing.T) {
	src := newFakeSource(page(false, 1))
	store := New(src)

	var nested *catalogs.Snapshot
	refreshed := false
	store.OnPublish(func(_, _ *catalogs.Snapshot) {
		if refreshed {
			return
		}
		refreshed = true
		snap, err := store.Refresh(context.Background())
		assert.NoError(t, err)
		nested = snap
	})

	done := make(chan *catalogs.Snapshot, 1)
	go func() {
		snap, err := store.Snapshot(context.Background())
		assert.NoError(t, err)
		done <- snap
	}()

	select {
	case first := <-done:
		require.NotNil(t, first)
		require.NotNil(t, nested)
		assert.NotSame(t, first, nested)
		assert.Same(t, nested, store.Current())
		assert.Equal(t, 2, src.callsFor(1))
	case <-time.After(2 * time.Second):
		t.Fatal("hook calling Refresh did not return")
	}
}

func TestPublishHooksRunAfterWaitersGiveUp(t *testing.T) {
	src := newFakeSource(page(false, 1))
	gate := make(chan struct{})
	src.setGate(gate)

	var mu sync.Mutex
	var published int
	store := New(src, WithPublishHook(func(_, _ *catalogs.Snapshot) {
		mu.Lock()
		published++
		mu.Unlock()
	}))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := store.Snapshot(ctx)
		done <- err
	}()
	require.Eventually(t, func() bool { return store.State() == StateBuilding }, time.Second, time.Millisecond)
	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)

	close(gate)
	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return published == 1
	}, time.Second, time.Millisecond)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "empty", StateEmpty.String())
	assert.Equal(t, "building", StateBuilding.String())
	assert.Equal(t, "ready", StateReady.String())
	assert.Equal(t, "unknown", State(9).String())
}
