package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

type Metrics struct {
	registry *prometheus.Registry

	predictions   *prometheus.CounterVec
	requestErrors *prometheus.CounterVec
	chatReplies   *prometheus.CounterVec
	reports       prometheus.Counter
	heartAgeGap   prometheus.Histogram
	modelLoaded   prometheus.Gauge
}

// New registers every collector on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		predictions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cardiocare",
			Name:      "predictions_total",
			Help:      "Risk predictions served, by predicted label.",
		}, []string{"label"}),
		requestErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cardiocare",
			Name:      "request_errors_total",
			Help:      "Failed requests, by endpoint and error code.",
		}, []string{"endpoint", "code"}),
		chatReplies: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cardiocare",
			Name:      "chat_replies_total",
			Help:      "Chat replies, by the table that produced them.",
		}, []string{"source"}),
		reports: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "cardiocare",
			Name:      "reports_generated_total",
			Help:      "PDF reports rendered.",
		}),
		heartAgeGap: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "cardiocare",
			Name:      "heart_age_gap_years",
			Help:      "Heart age minus chronological age.",
			Buckets:   []float64{-5, -2, 0, 2, 5, 10, 15, 20, 30},
		}),
		modelLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "cardiocare",
			Name:      "model_loaded",
			Help:      "1 when a predictor is loaded.",
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.predictions,
		m.requestErrors,
		m.chatReplies,
		m.reports,
		m.heartAgeGap,
		m.modelLoaded,
	)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) RecordPrediction(label int, gap float64) {
	m.predictions.WithLabelValues(strconv.Itoa(label)).Inc()
	m.heartAgeGap.Observe(gap)
}

func (m *Metrics) RecordError(endpoint, code string) {
	m.requestErrors.WithLabelValues(endpoint, code).Inc()
}

func (m *Metrics) RecordChat(source string) {
	m.chatReplies.WithLabelValues(source).Inc()
}

func (m *Metrics) RecordReport() {
	m.reports.Inc()
}

func (m *Metrics) SetModelLoaded(loaded bool) {
	if loaded {
		m.modelLoaded.Set(1)
		return
	}
	m.modelLoaded.Set(0)
}
