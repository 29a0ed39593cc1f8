package nslscan

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems; the metric
// package provides a Prometheus implementation.
type MetricsCollector interface {
	// RecordSite is called after each core site has been computed.
	// comparisons is the number of valid pairwise comparisons at that site.
	RecordSite(duration time.Duration, comparisons int)

	// RecordSites is called after each whole-matrix per-site computation.
	RecordSites(sites int, duration time.Duration, err error)

	// RecordScan is called after each standardized scan.
	// kept is the number of sites that passed the frequency filter.
	RecordScan(kept, bins int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordSite(time.Duration, int)             {}
func (NoopMetricsCollector) RecordSites(int, time.Duration, error)     {}
func (NoopMetricsCollector) RecordScan(int, int, time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	SiteCount       atomic.Int64
	SiteTotalNanos  atomic.Int64
	Comparisons     atomic.Int64
	SitesCalls      atomic.Int64
	SitesErrors     atomic.Int64
	SitesTotalNanos atomic.Int64
	ScanCount       atomic.Int64
	ScanErrors      atomic.Int64
	ScanKeptSites   atomic.Int64
	ScanTotalNanos  atomic.Int64
}

// RecordSite implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSite(duration time.Duration, comparisons int) {
	b.SiteCount.Add(1)
	b.SiteTotalNanos.Add(duration.Nanoseconds())
	b.Comparisons.Add(int64(comparisons))
}

// RecordSites implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSites(_ int, duration time.Duration, err error) {
	b.SitesCalls.Add(1)
	b.SitesTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.SitesErrors.Add(1)
	}
}

// RecordScan implements MetricsCollector.
func (b *BasicMetricsCollector) RecordScan(kept, _ int, duration time.Duration, err error) {
	b.ScanCount.Add(1)
	b.ScanTotalNanos.Add(duration.Nanoseconds())
	b.ScanKeptSites.Add(int64(kept))
	if err != nil {
		b.ScanErrors.Add(1)
	}
}

// MetricsStats is a point-in-time snapshot of BasicMetricsCollector.
type MetricsStats struct {
	SiteCount     int64
	SiteAvgNanos  int64
	Comparisons   int64
	SitesCalls    int64
	SitesErrors   int64
	ScanCount     int64
	ScanErrors    int64
	ScanKeptSites int64
	ScanAvgNanos  int64
}

// GetStats returns a snapshot of the collected metrics.
func (b *BasicMetricsCollector) GetStats() MetricsStats {
	s := MetricsStats{
		SiteCount:     b.SiteCount.Load(),
		Comparisons:   b.Comparisons.Load(),
		SitesCalls:    b.SitesCalls.Load(),
		SitesErrors:   b.SitesErrors.Load(),
		ScanCount:     b.ScanCount.Load(),
		ScanErrors:    b.ScanErrors.Load(),
		ScanKeptSites: b.ScanKeptSites.Load(),
	}
	if s.SiteCount > 0 {
		s.SiteAvgNanos = b.SiteTotalNanos.Load() / s.SiteCount
	}
	if s.ScanCount > 0 {
		s.ScanAvgNanos = b.ScanTotalNanos.Load() / s.ScanCount
	}
	return s
}
