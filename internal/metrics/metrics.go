package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Registry struct {
	reg              *prometheus.Registry
	Generated        prometheus.Counter
	Published        prometheus.Counter
	Archived         prometheus.Counter
	AppendLatencySec prometheus.Histogram
	DatasetRows      prometheus.Gauge
	BuildSeconds     prometheus.Gauge

	// Verifier metrics
	Checked prometheus.Counter
	Bad     prometheus.Counter
}

func NewRegistry() *Registry {
	r := prometheus.NewRegistry()
	generated := prometheus.NewCounter(prometheus.CounterOpts{Name: "ordgen_orders_generated_total"})
	published := prometheus.NewCounter(prometheus.CounterOpts{Name: "ordgen_orders_published_total"})
	archived := prometheus.NewCounter(prometheus.CounterOpts{Name: "ordgen_orders_archived_total"})
	appendLatency := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "ordgen_append_latency_seconds",
		Buckets: prometheus.DefBuckets,
	})
	datasetRows := prometheus.NewGauge(prometheus.GaugeOpts{Name: "ordgen_dataset_rows"})
	buildSeconds := prometheus.NewGauge(prometheus.GaugeOpts{Name: "ordgen_dataset_build_seconds"})

	checked := prometheus.NewCounter(prometheus.CounterOpts{Name: "ordgen_verify_checked_total"})
	bad := prometheus.NewCounter(prometheus.CounterOpts{Name: "ordgen_verify_bad_total"})

	r.MustRegister(generated, published, archived, appendLatency, datasetRows, buildSeconds, checked, bad)
	return &Registry{
		reg:              r,
		Generated:        generated,
		Published:        published,
		Archived:         archived,
		AppendLatencySec: appendLatency,
		DatasetRows:      datasetRows,
		BuildSeconds:     buildSeconds,
		Checked:          checked,
		Bad:              bad,
	}
}

func (r *Registry) Handler() http.Handler { return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{}) }
