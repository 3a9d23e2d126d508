package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Texture lookup outcomes.
const (
	TextureExplicit = "explicit"
	TextureFastPath = "fast_path"
	TextureScan     = "scan"
	TextureMiss     = "miss"
)

// Metrics holds all Prometheus collectors of the indexer.
type Metrics struct {
	registry *prometheus.Registry

	PackagesOpened     prometheus.Counter
	PackageFailures    prometheus.Counter
	FilesIndexed       prometheus.Counter
	FilesShadowed      prometheus.Counter
	RecordsMaterialize prometheus.Counter
	DecodeFailures     prometheus.Counter
	BucketsActive      prometheus.Gauge
	TextureLookups     *prometheus.CounterVec
}

// New creates a metrics collector backed by a private registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		PackagesOpened: factory.NewCounter(prometheus.CounterOpts{
			Name: "pakindex_packages_opened_total",
			Help: "Packages successfully opened and indexed",
		}),
		PackageFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "pakindex_package_open_failures_total",
			Help: "Package opens that failed (wrong key or corrupt container)",
		}),
		FilesIndexed: factory.NewCounter(prometheus.CounterOpts{
			Name: "pakindex_files_indexed_total",
			Help: "File paths claimed in the file index",
		}),
		FilesShadowed: factory.NewCounter(prometheus.CounterOpts{
			Name: "pakindex_files_shadowed_total",
			Help: "File paths ignored because an earlier package already claimed them",
		}),
		RecordsMaterialize: factory.NewCounter(prometheus.CounterOpts{
			Name: "pakindex_records_materialized_total",
			Help: "Files decoded into records",
		}),
		DecodeFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "pakindex_decode_failures_total",
			Help: "Files that failed to decode",
		}),
		BucketsActive: factory.NewGauge(prometheus.GaugeOpts{
			Name: "pakindex_buckets_active",
			Help: "Category buckets materialized so far",
		}),
		TextureLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "pakindex_texture_lookups_total",
			Help: "Texture slot lookups by outcome",
		}, []string{"result"}),
	}
}

// Handler serves the collectors in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the private registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) PackageOpened() {
	if m != nil {
		m.PackagesOpened.Inc()
	}
}

func (m *Metrics) PackageFailed() {
	if m != nil {
		m.PackageFailures.Inc()
	}
}

func (m *Metrics) FilesClaimed(claimed, shadowed int) {
	if m != nil {
		m.FilesIndexed.Add(float64(claimed))
		m.FilesShadowed.Add(float64(shadowed))
	}
}

func (m *Metrics) RecordDecoded() {
	if m != nil {
		m.RecordsMaterialize.Inc()
	}
}

func (m *Metrics) DecodeFailed() {
	if m != nil {
		m.DecodeFailures.Inc()
	}
}

func (m *Metrics) BucketCreated() {
	if m != nil {
		m.BucketsActive.Inc()
	}
}

func (m *Metrics) TextureLookup(result string) {
	if m != nil {
		m.TextureLookups.WithLabelValues(result).Inc()
	}
}
