package server

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Error kinds recorded by PredictionErrors.
const (
	errKindValidation       = "validation"
	errKindBadRequest       = "bad_request"
	errKindMetadataMismatch = "metadata_mismatch"
	errKindInternal         = "internal"
)

// Metrics holds the Prometheus collectors exported on /metrics. Each server
// owns its registry so several servers can coexist in one process.
type Metrics struct {
	registry *prometheus.Registry

	Predictions      *prometheus.CounterVec
	PredictionErrors *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
}

// NewMetrics creates and registers the server collectors.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		Predictions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "customer_grouper_predictions_total",
				Help: "Customers assigned to a segment, by cluster id",
			},
			[]string{"cluster", "label"},
		),
		PredictionErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "customer_grouper_prediction_errors_total",
				Help: "Prediction requests that failed, by error kind",
			},
			[]string{"kind"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "customer_grouper_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route", "status"},
		),
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) observePrediction(clusterID int, label string) {
	m.Predictions.WithLabelValues(strconv.Itoa(clusterID), label).Inc()
}

func (m *Metrics) observeError(kind string) {
	m.PredictionErrors.WithLabelValues(kind).Inc()
}
