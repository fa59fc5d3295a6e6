package report

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/zgpcy/calltimer/internal/version"
)

// DefaultDurationBuckets covers calls from a millisecond up to about a minute
var DefaultDurationBuckets = prometheus.ExponentialBuckets(0.001, 4, 9)

// Metrics implements Reporter and prometheus.Collector for call timings
type Metrics struct {
	callsTotal       *prometheus.CounterVec
	callDuration     *prometheus.HistogramVec
	lastCallDuration *prometheus.GaugeVec
	lastCallTime     *prometheus.Desc
	buildInfo        *prometheus.GaugeVec

	mu        sync.RWMutex
	lastCalls map[string]time.Time
}

// NewMetrics creates a Metrics reporter. Register it with a prometheus.Registerer
// before serving /metrics.
func NewMetrics() *Metrics {
	buildInfo := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "calltimer_build_info",
			Help: "Build version information",
		},
		[]string{"version", "git_commit", "build_date", "go_version"},
	)

	versionInfo := version.Info()
	buildInfo.With(prometheus.Labels{
		"version":    versionInfo["version"],
		"git_commit": versionInfo["git_commit"],
		"build_date": versionInfo["build_date"],
		"go_version": versionInfo["go_version"],
	}).Set(1)

	return &Metrics{
		callsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "calltimer_calls_total",
				Help: "Total number of successful timed calls",
			},
			[]string{"function"},
		),
		callDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "calltimer_call_duration_seconds",
				Help:    "Elapsed time of successful timed calls in seconds",
				Buckets: DefaultDurationBuckets,
			},
			[]string{"function"},
		),
		lastCallDuration: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "calltimer_last_call_duration_seconds",
				Help: "Elapsed time of the most recent successful call in seconds",
			},
			[]string{"function"},
		),
		lastCallTime: prometheus.NewDesc(
			"calltimer_last_call_timestamp_seconds",
			"Unix timestamp at which the most recent successful call finished",
			[]string{"function"},
			nil,
		),
		buildInfo: buildInfo,
		lastCalls: make(map[string]time.Time),
	}
}

// Report implements Reporter
func (m *Metrics) Report(inv Invocation) {
	seconds := inv.Elapsed().Seconds()
	m.callsTotal.WithLabelValues(inv.Name).Inc()
	m.callDuration.WithLabelValues(inv.Name).Observe(seconds)
	m.lastCallDuration.WithLabelValues(inv.Name).Set(seconds)

	m.mu.Lock()
	m.lastCalls[inv.Name] = inv.End
	m.mu.Unlock()
}

// lastCall returns when the most recent call of name finished, or the zero time
func (m *Metrics) lastCall(name string) time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastCalls[name]
}

// Describe implements prometheus.Collector
func (m *Metrics) Describe(ch chan<- *prometheus.Desc) {
	m.callsTotal.Describe(ch)
	m.callDuration.Describe(ch)
	m.lastCallDuration.Describe(ch)
	ch <- m.lastCallTime
	m.buildInfo.Describe(ch)
}

// Collect implements prometheus.Collector
func (m *Metrics) Collect(ch chan<- prometheus.Metric) {
	m.callsTotal.Collect(ch)
	m.callDuration.Collect(ch)
	m.lastCallDuration.Collect(ch)

	m.mu.RLock()
	for name, at := range m.lastCalls {
		ch <- prometheus.MustNewConstMetric(
			m.lastCallTime,
			prometheus.GaugeValue,
			float64(at.UnixNano())/1e9,
			name,
		)
	}
	m.mu.RUnlock()

	m.buildInfo.Collect(ch)
}
