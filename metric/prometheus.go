package metric

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/hupe1980/nslscan"
)

const namespace = "nslscan"

var _ nslscan.MetricsCollector = (*PrometheusCollector)(nil)

// PrometheusCollector implements nslscan.MetricsCollector on a private
// Prometheus registry.
type PrometheusCollector struct {
	registry *prometheus.Registry

	siteDuration   prometheus.Histogram
	comparisons    prometheus.Counter
	callsTotal     *prometheus.CounterVec
	callDuration   *prometheus.HistogramVec
	sitesProcessed prometheus.Counter
	keptSites      prometheus.Counter
	bins           prometheus.Gauge
}

// NewPrometheusCollector creates a collector with its own registry.
func NewPrometheusCollector() *PrometheusCollector {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)

	return &PrometheusCollector{
		registry: reg,
		siteDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "site_duration_seconds",
			Help:      "Time to compute one core site",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10), // 10µs to ~2.6s
		}),
		comparisons: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "comparisons_total",
			Help:      "Valid pairwise haplotype comparisons",
		}),
		callsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "calls_total",
			Help:      "Whole-matrix calls by operation and result",
		}, []string{"operation", "result"}),
		callDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "call_duration_seconds",
			Help:      "Whole-matrix call duration by operation",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10), // 1ms to ~4min
		}, []string{"operation"}),
		sitesProcessed: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sites_total",
			Help:      "Core sites processed by per-site calls",
		}),
		keptSites: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scan_kept_sites_total",
			Help:      "Sites that passed the frequency filter",
		}),
		bins: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "scan_bins",
			Help:      "Frequency bins of the most recent scan",
		}),
	}
}

// Registry returns the underlying registry, e.g. for promhttp.HandlerFor.
func (c *PrometheusCollector) Registry() *prometheus.Registry {
	return c.registry
}

// RecordSite implements nslscan.MetricsCollector.
func (c *PrometheusCollector) RecordSite(duration time.Duration, comparisons int) {
	c.siteDuration.Observe(duration.Seconds())
	c.comparisons.Add(float64(comparisons))
}

// RecordSites implements nslscan.MetricsCollector.
func (c *PrometheusCollector) RecordSites(sites int, duration time.Duration, err error) {
	c.callsTotal.WithLabelValues("sites", result(err)).Inc()
	c.callDuration.WithLabelValues("sites").Observe(duration.Seconds())
	if err == nil {
		c.sitesProcessed.Add(float64(sites))
	}
}

// RecordScan implements nslscan.MetricsCollector.
func (c *PrometheusCollector) RecordScan(kept, bins int, duration time.Duration, err error) {
	c.callsTotal.WithLabelValues("scan", result(err)).Inc()
	c.callDuration.WithLabelValues("scan").Observe(duration.Seconds())
	if err == nil {
		c.keptSites.Add(float64(kept))
		c.bins.Set(float64(bins))
	}
}

// WriteTextfile writes all metrics in the text exposition format to path,
// for collection by the node_exporter textfile collector.
func (c *PrometheusCollector) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, c.registry)
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
