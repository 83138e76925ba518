package dictionary

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
//	type PrometheusCollector struct {
//	    searchHistogram prometheus.Histogram
//	}
//
//	func (p *PrometheusCollector) RecordSearch(results int, duration time.Duration, err error) {
//	    p.searchHistogram.Observe(duration.Seconds())
//	}
type MetricsCollector interface {
	// RecordSearch is called after each search.
	RecordSearch(results int, duration time.Duration, err error)

	// RecordLoad is called after a catalog is read from the store.
	RecordLoad(app string, items int, duration time.Duration, err error)

	// RecordImport is called after a catalog snapshot is written.
	RecordImport(app string, items int, duration time.Duration, err error)

	// RecordCacheHit and RecordCacheMiss are called on catalog lookups.
	RecordCacheHit(app string)
	RecordCacheMiss(app string)

	// RecordCacheEvict is called when a cached catalog is dropped, whether
	// evicted for space, replaced or invalidated.
	RecordCacheEvict(app string)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordSearch(int, time.Duration, error)         {}
func (NoopMetricsCollector) RecordLoad(string, int, time.Duration, error)   {}
func (NoopMetricsCollector) RecordImport(string, int, time.Duration, error) {}
func (NoopMetricsCollector) RecordCacheHit(string)                          {}
func (NoopMetricsCollector) RecordCacheMiss(string)                         {}
func (NoopMetricsCollector) RecordCacheEvict(string)                        {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	SearchCount      atomic.Int64
	SearchErrors     atomic.Int64
	SearchResults    atomic.Int64
	SearchTotalNanos atomic.Int64
	LoadCount        atomic.Int64
	LoadErrors       atomic.Int64
	LoadItems        atomic.Int64
	ImportCount      atomic.Int64
	ImportErrors     atomic.Int64
	ImportItems      atomic.Int64
	CacheHits        atomic.Int64
	CacheMisses      atomic.Int64
	CacheEvictions   atomic.Int64
}

// RecordSearch implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSearch(results int, duration time.Duration, err error) {
	b.SearchCount.Add(1)
	b.SearchTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.SearchErrors.Add(1)
		return
	}
	b.SearchResults.Add(int64(results))
}

// RecordLoad implements MetricsCollector.
func (b *BasicMetricsCollector) RecordLoad(_ string, items int, _ time.Duration, err error) {
	b.LoadCount.Add(1)
	if err != nil {
		b.LoadErrors.Add(1)
		return
	}
	b.LoadItems.Add(int64(items))
}

// RecordImport implements MetricsCollector.
func (b *BasicMetricsCollector) RecordImport(_ string, items int, _ time.Duration, err error) {
	b.ImportCount.Add(1)
	if err != nil {
		b.ImportErrors.Add(1)
		return
	}
	b.ImportItems.Add(int64(items))
}

// RecordCacheHit implements MetricsCollector.
func (b *BasicMetricsCollector) RecordCacheHit(string) { b.CacheHits.Add(1) }

// RecordCacheMiss implements MetricsCollector.
func (b *BasicMetricsCollector) RecordCacheMiss(string) { b.CacheMisses.Add(1) }

// RecordCacheEvict implements MetricsCollector.
func (b *BasicMetricsCollector) RecordCacheEvict(string) { b.CacheEvictions.Add(1) }

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		SearchCount:    b.SearchCount.Load(),
		SearchErrors:   b.SearchErrors.Load(),
		SearchResults:  b.SearchResults.Load(),
		SearchAvgNanos: b.getAvgSearchNanos(),
		LoadCount:      b.LoadCount.Load(),
		LoadErrors:     b.LoadErrors.Load(),
		LoadItems:      b.LoadItems.Load(),
		ImportCount:    b.ImportCount.Load(),
		ImportErrors:   b.ImportErrors.Load(),
		ImportItems:    b.ImportItems.Load(),
		CacheHits:      b.CacheHits.Load(),
		CacheMisses:    b.CacheMisses.Load(),
		CacheEvictions: b.CacheEvictions.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgSearchNanos() int64 {
	count := b.SearchCount.Load()
	if count == 0 {
		return 0
	}
	return b.SearchTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	SearchCount    int64
	SearchErrors   int64
	SearchResults  int64
	SearchAvgNanos int64
	LoadCount      int64
	LoadErrors     int64
	LoadItems      int64
	ImportCount    int64
	ImportErrors   int64
	ImportItems    int64
	CacheHits      int64
	CacheMisses    int64
	CacheEvictions int64
}
