package litmap

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agentstation/litmap/pkg/catalogs"
)

func TestDiffSnapshots(t *testing.T) {
	prev := catalogs.NewSnapshot([]catalogs.Work{
		{ID: 1, Title: "A", DownloadCount: 1},
		{ID: 2, Title: "B", DownloadCount: 2},
		{ID: 3, Title: "C", DownloadCount: 3},
	})
	next := catalogs.NewSnapshot([]catalogs.Work{
		{ID: 2, Title: "B", DownloadCount: 2},
		{ID: 3, Title: "C", DownloadCount: 30},
		{ID: 4, Title: "D"},
	})

	d := diffSnapshots(prev, next)
	assert.Equal(t, Changes{Added: 1, Updated: 1, Removed: 1}, d.counts())
	assert.Equal(t, 4, d.added[0].ID)
	assert.Equal(t, 1, d.removed[0].ID)
	assert.Equal(t, 3, d.updated[0][0].DownloadCount)
	assert.Equal(t, 30, d.updated[0][1].DownloadCount)

	assert.Equal(t, Changes{}, diffSnapshots(next, next).counts())
	assert.Equal(t, Changes{Added: 3}, diffSnapshots(nil, next).counts())
}

func TestTriggerSnapshotUpdate(t *testing.T) {
	h := newHooks()
	var added, removed, updated, published int
	h.OnWorkAdded(func(catalogs.Work) { added++ })
	h.OnWorkRemoved(func(catalogs.Work) { removed++ })
	h.OnWorkUpdated(func(_, _ catalogs.Work) { updated++ })
	h.OnSnapshotPublished(func(catalogs.SnapshotInfo) { published++ })

	first := catalogs.NewSnapshot([]catalogs.Work{{ID: 1}, {ID: 2}})
	h.triggerSnapshotUpdate(nil, first)
	assert.Equal(t, 0, added)
	assert.Equal(t, 1, published)

	second := catalogs.NewSnapshot([]catalogs.Work{{ID: 2, Title: "changed"}, {ID: 3}})
	h.triggerSnapshotUpdate(first, second)
	assert.Equal(t, 1, added)
	assert.Equal(t, 1, removed)
	assert.Equal(t, 1, updated)
	assert.Equal(t, 2, published)
}
