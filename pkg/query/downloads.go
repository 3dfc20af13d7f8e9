package query

import (
	"sort"

	"github.com/agentstation/litmap/pkg/catalogs"
	"github.com/agentstation/litmap/pkg/errors"
)

// Stats summarizes download counts.
type Stats struct {
	Count int     `json:"count" yaml:"count"`
	Sum   int64   `json:"sum" yaml:"sum"`
	Min   int     `json:"min" yaml:"min"`
	Max   int     `json:"max" yaml:"max"`
	Mean  float64 `json:"mean" yaml:"mean"`
}

// TopByDownloads returns the n most downloaded works. Ties keep their
// order in works. n <= 0 yields an empty slice.
func TopByDownloads(works []catalogs.Work, n int) []catalogs.Work {
	if n <= 0 || len(works) == 0 {
		return []catalogs.Work{}
	}
	sorted := catalogs.CloneWorks(works)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].DownloadCount > sorted[j].DownloadCount
	})
	return sorted[:min(n, len(sorted))]
}

// DownloadStats computes count, sum, min, max and mean of download counts
// in a single pass. Empty input returns errors.ErrEmptyCatalog.
func DownloadStats(works []catalogs.Work) (Stats, error) {
	if len(works) == 0 {
		return Stats{}, errors.ErrEmptyCatalog
	}
	s := Stats{Min: works[0].DownloadCount, Max: works[0].DownloadCount}
	for _, w := range works {
		s.Count++
		s.Sum += int64(w.DownloadCount)
		s.Min = min(s.Min, w.DownloadCount)
		s.Max = max(s.Max, w.DownloadCount)
	}
	s.Mean = float64(s.Sum) / float64(s.Count)
	return s, nil
}
