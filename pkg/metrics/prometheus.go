package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	quotesTotal *prometheus.CounterVec
	eventsTotal *prometheus.CounterVec
	errorsTotal *prometheus.CounterVec
	lastQuote   *prometheus.GaugeVec
	latency     *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		quotesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "freightiq_quotes_total",
				Help: "Total number of quotes produced",
			},
			[]string{"route"},
		),
		eventsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "freightiq_events_total",
				Help: "Total number of booking/decline events logged",
			},
			[]string{"type"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "freightiq_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		lastQuote: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "freightiq_last_quote_price",
				Help: "Last quoted price for a route",
			},
			[]string{"route"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "freightiq_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordQuote records a produced quote and its price.
func (r *Recorder) RecordQuote(route string, price float64) {
	r.quotesTotal.WithLabelValues(route).Inc()
	r.lastQuote.WithLabelValues(route).Set(price)
}

// RecordEvent records a logged booking or decline.
func (r *Recorder) RecordEvent(kind string) {
	r.eventsTotal.WithLabelValues(kind).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
