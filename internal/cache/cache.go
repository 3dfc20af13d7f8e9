// Package cache memoizes works fetched individually from the remote catalog.
// It uses patrickmn/go-cache for TTL-based expiry.
package cache

import (
	"strconv"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/agentstation/litmap/pkg/catalogs"
	"github.com/agentstation/litmap/pkg/constants"
)

// Works is a TTL cache of works keyed by ID. Values are copied in and out.
type Works struct {
	store *gocache.Cache
}

// New creates a cache with the given TTL and cleanup interval.
// Non-positive values fall back to the package defaults.
func New(ttl, cleanupInterval time.Duration) *Works {
	if ttl <= 0 {
		ttl = constants.WorkCacheTTL
	}
	if cleanupInterval <= 0 {
		cleanupInterval = constants.CacheCleanupInterval
	}
	return &Works{
		store: gocache.New(ttl, cleanupInterval),
	}
}

// Get retrieves a work.
func (c *Works) Get(id int) (catalogs.Work, bool) {
	v, ok := c.store.Get(key(id))
	if !ok {
		return catalogs.Work{}, false
	}
	w, ok := v.(catalogs.Work)
	if !ok {
		return catalogs.Work{}, false
	}
	return w.Clone(), true
}

// Set stores a work with the default TTL.
func (c *Works) Set(w catalogs.Work) {
	c.store.Set(key(w.ID), w.Clone(), gocache.DefaultExpiration)
}

// Clear drops every memoized work. The client calls it on each publish.
func (c *Works) Clear() {
	c.store.Flush()
}

func key(id int) string {
	return strconv.Itoa(id)
}
