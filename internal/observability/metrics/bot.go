package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// BotMetrics tracks the two blocking stages of the pipeline, extraction and
// answer generation, plus the number of live sessions.
type BotMetrics struct {
	registry *prometheus.Registry

	extractionTotal    *prometheus.CounterVec
	extractionDuration *prometheus.HistogramVec
	answerTotal        *prometheus.CounterVec
	answerDuration     *prometheus.HistogramVec
	activeSessions     prometheus.GaugeFunc
}

func NewBotMetrics(sessionCount func() int) *BotMetrics {
	registry := prometheus.NewRegistry()

	extractionTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cheatbot",
			Name:      "extraction_total",
			Help:      "Total document extractions by format and status.",
		},
		[]string{"format", "status"},
	)
	extractionDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "cheatbot",
			Name:      "extraction_duration_seconds",
			Help:      "Extraction duration in seconds by format.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"format"},
	)
	answerTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cheatbot",
			Name:      "answer_total",
			Help:      "Total answered questions by mode and status.",
		},
		[]string{"mode", "status"},
	)
	answerDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "cheatbot",
			Name:      "answer_duration_seconds",
			Help:      "Answer generation duration in seconds by mode.",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 30, 60, 120},
		},
		[]string{"mode"},
	)
	activeSessions := prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Namespace: "cheatbot",
			Name:      "active_sessions",
			Help:      "Number of users currently holding a document.",
		},
		func() float64 { return float64(sessionCount()) },
	)

	registry.MustRegister(extractionTotal, extractionDuration, answerTotal, answerDuration, activeSessions)

	return &BotMetrics{
		registry:           registry,
		extractionTotal:    extractionTotal,
		extractionDuration: extractionDuration,
		answerTotal:        answerTotal,
		answerDuration:     answerDuration,
		activeSessions:     activeSessions,
	}
}

func (m *BotMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *BotMetrics) ObserveExtraction(format string, duration time.Duration, err error) {
	m.extractionTotal.WithLabelValues(format, statusOf(err)).Inc()
	m.extractionDuration.WithLabelValues(format).Observe(duration.Seconds())
}

func (m *BotMetrics) ObserveAnswer(mode string, duration time.Duration, err error) {
	m.answerTotal.WithLabelValues(mode, statusOf(err)).Inc()
	m.answerDuration.WithLabelValues(mode).Observe(duration.Seconds())
}

func statusOf(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
