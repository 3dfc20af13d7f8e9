package alerts

import (
	"fmt"

	"github.com/agentstation/litmap/pkg/catalogs"
)

// NewCacheFallback reports that a live query failed and the answer came
// from the local snapshot instead.
func NewCacheFallback(cause error) *Alert {
	return NewWarning("Catalog unavailable, showing cached works").WithError(cause)
}

// NewPartialSnapshot reports a snapshot whose build stopped before the end
// of the collection. It returns nil for a complete snapshot.
func NewPartialSnapshot(info catalogs.SnapshotInfo) *Alert {
	if info.Complete {
		return nil
	}
	a := NewWarning(fmt.Sprintf("Snapshot is partial after %d pages", info.Pages))
	if info.Error != "" {
		a = a.WithDetails(info.Error)
	}
	return a
}
