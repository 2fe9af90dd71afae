package dataset

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"linal/internal/errs"
	"linal/internal/value"
)

// ColumnStats summarizes one column: its minimum and maximum comparable
// value (by value.Compare) and how many rows hold Null there. Computing
// it requires a full column scan, so results are cached.
type ColumnStats struct {
	Min       value.Value
	Max       value.Value
	NullCount int
}

// statsCache caches ColumnStats per column name in an LRU, invalidated
// whenever a row insertion or column mutation could change the answer.
type statsCache struct {
	cache *lru.Cache[string, ColumnStats]
}

func newStatsCache(capacity int) *statsCache {
	c, _ := lru.New[string, ColumnStats](capacity)
	return &statsCache{cache: c}
}

func (s *statsCache) invalidate(column string) {
	s.cache.Remove(column)
}

func (s *statsCache) invalidateAll() {
	s.cache.Purge()
}

// ColumnStats returns the cached stats for column, computing and caching
// them on a miss.
func (d *Dataset) ColumnStats(column string) (ColumnStats, error) {
	if stats, ok := d.stats.cache.Get(column); ok {
		return stats, nil
	}
	pos := d.Schema.IndexOf(column)
	if pos < 0 {
		return ColumnStats{}, &errs.NotFound{Kind: "column", Name: column}
	}

	var stats ColumnStats
	first := true
	for _, r := range d.Rows {
		v := r.Values[pos]
		if v.IsNull() {
			stats.NullCount++
			continue
		}
		if first {
			stats.Min, stats.Max = v, v
			first = false
			continue
		}
		if cmp, ok := value.Compare(v, stats.Min); ok && cmp < 0 {
			stats.Min = v
		}
		if cmp, ok := value.Compare(v, stats.Max); ok && cmp > 0 {
			stats.Max = v
		}
	}
	d.stats.cache.Add(column, stats)
	return stats, nil
}
