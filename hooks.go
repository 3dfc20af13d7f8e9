package litmap

import (
	"sync"

	"github.com/agentstation/litmap/pkg/catalogs"
)

// Hook function types for snapshot events
type (
	// WorkAddedHook is called for a work present in a refreshed snapshot but
	// not in the one it replaced
	WorkAddedHook func(work catalogs.Work)

	// WorkUpdatedHook is called for a work whose data changed across a refresh
	WorkUpdatedHook func(old, new catalogs.Work)

	// WorkRemovedHook is called for a work missing from a refreshed snapshot
	WorkRemovedHook func(work catalogs.Work)

	// SnapshotPublishedHook is called after every publish, including the first
	SnapshotPublishedHook func(info catalogs.SnapshotInfo)
)

// Hooks provides event callback registration. Callbacks run once per
// publish, after the snapshot is current and before the query or refresh
// that caused the build returns. They may call back into the client,
// Refresh included.
type Hooks interface {
	OnWorkAdded(WorkAddedHook)
	OnWorkUpdated(WorkUpdatedHook)
	OnWorkRemoved(WorkRemovedHook)
	OnSnapshotPublished(SnapshotPublishedHook)
}

// hooks manages event callbacks for snapshot changes
type hooks struct {
	mu          sync.RWMutex
	onAdded     []WorkAddedHook
	onUpdated   []WorkUpdatedHook
	onRemoved   []WorkRemovedHook
	onPublished []SnapshotPublishedHook
}

func newHooks() *hooks {
	return &hooks{}
}

// OnWorkAdded registers a callback for when works are added
func (h *hooks) OnWorkAdded(fn WorkAddedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onAdded = append(h.onAdded, fn)
}

// OnWorkUpdated registers a callback for when works are updated
func (h *hooks) OnWorkUpdated(fn WorkUpdatedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onUpdated = append(h.onUpdated, fn)
}

// OnWorkRemoved registers a callback for when works are removed
func (h *hooks) OnWorkRemoved(fn WorkRemovedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onRemoved = append(h.onRemoved, fn)
}

// OnSnapshotPublished registers a callback for every publish
func (h *hooks) OnSnapshotPublished(fn SnapshotPublishedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onPublished = append(h.onPublished, fn)
}

// triggerSnapshotUpdate compares the replaced and new snapshots and fires
// the matching hooks. The first publish only fires OnSnapshotPublished.
func (h *hooks) triggerSnapshotUpdate(prev, next *catalogs.Snapshot) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if prev != nil {
		changes := diffSnapshots(prev, next)
		for _, w := range changes.added {
			for _, hook := range h.onAdded {
				hook(w)
			}
		}
		for _, pair := range changes.updated {
			for _, hook := range h.onUpdated {
				hook(pair[0], pair[1])
			}
		}
		for _, w := range changes.removed {
			for _, hook := range h.onRemoved {
				hook(w)
			}
		}
	}

	info := next.Info()
	for _, hook := range h.onPublished {
		hook(info)
	}
}

// Changes counts what a refresh changed.
type Changes struct {
	Added   int `json:"added" yaml:"added"`
	Updated int `json:"updated" yaml:"updated"`
	Removed int `json:"removed" yaml:"removed"`
}

// snapshotDiff holds the works that differ between two snapshots.
type snapshotDiff struct {
	added   []catalogs.Work
	updated [][2]catalogs.Work
	removed []catalogs.Work
}

func (d snapshotDiff) counts() Changes {
	return Changes{Added: len(d.added), Updated: len(d.updated), Removed: len(d.removed)}
}

// diffSnapshots matches works by ID. A nil prev means every work is new.
func diffSnapshots(prev, next *catalogs.Snapshot) snapshotDiff {
	var d snapshotDiff
	next.Each(func(w catalogs.Work) bool {
		old, ok := prev.Work(w.ID)
		switch {
		case !ok:
			d.added = append(d.added, w.Clone())
		case !old.Equal(w):
			d.updated = append(d.updated, [2]catalogs.Work{old, w.Clone()})
		}
		return true
	})
	prev.Each(func(w catalogs.Work) bool {
		if _, ok := next.Work(w.ID); !ok {
			d.removed = append(d.removed, w.Clone())
		}
		return true
	})
	return d
}
