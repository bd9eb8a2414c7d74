package proxy

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/reviewnet/reviewnet-contract/common"
)

const (
	metricsNamespace = "reviewnet"
	metricsSubsystem = "dispatcher"
)

// Metrics holds Dispatcher metrics. Nil Metrics is valid and records
// nothing.
type Metrics struct {
	calls    *prometheus.CounterVec
	failures *prometheus.CounterVec
	duration *prometheus.HistogramVec
	height   prometheus.Gauge
}

// NewMetrics creates Dispatcher metrics and registers them in reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		calls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: metricsSubsystem,
				Name:      "calls_total",
				Help:      "Number of dispatched calls",
			},
			[]string{"method", "outcome"},
		),
		failures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: metricsSubsystem,
				Name:      "failures_total",
				Help:      "Number of failed calls by error class",
			},
			[]string{"class"},
		),
		duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Subsystem: metricsSubsystem,
				Name:      "call_duration_seconds",
				Help:      "Call execution time in seconds",
				Buckets:   []float64{.0005, .001, .005, .01, .05, .1, .5, 1},
			},
			[]string{"method"},
		),
		height: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: metricsNamespace,
				Subsystem: metricsSubsystem,
				Name:      "height",
				Help:      "Number of committed calls",
			},
		),
	}
}

func (m *Metrics) observe(method string, d time.Duration, err error) {
	if m == nil {
		return
	}

	if errors.Is(err, common.ErrUnknownMethod) {
		method = "unknown"
	}

	outcome := "ok"
	if err != nil {
		outcome = "fail"
		m.failures.WithLabelValues(common.ClassOf(err).String()).Inc()
	}

	m.calls.WithLabelValues(method, outcome).Inc()
	m.duration.WithLabelValues(method).Observe(d.Seconds())
}

func (m *Metrics) setHeight(h uint32) {
	if m == nil {
		return
	}

	m.height.Set(float64(h))
}
