// Package prommetrics exports Watcher metrics to Prometheus.
//
//	reg := prometheus.NewRegistry()
//	w, err := dirwatch.New("./data", dirwatch.WithMetrics(prommetrics.New(reg, "app")))
package prommetrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/zoobzio/dirwatch"
)

// Provider implements dirwatch.MetricsProvider on Prometheus collectors.
type Provider struct {
	state         prometheus.Gauge
	transitions   *prometheus.CounterVec
	events        *prometheus.CounterVec
	deliveries    *prometheus.CounterVec
	undelivered   *prometheus.CounterVec
	overflows     *prometheus.CounterVec
	invalidations *prometheus.CounterVec
	failures      *prometheus.CounterVec
	batchEvents   prometheus.Histogram
	batchDuration prometheus.Histogram
}

var _ dirwatch.MetricsProvider = (*Provider)(nil)

// New registers the dirwatch collectors with registerer under namespace.
// It panics if the collectors are already registered, like promauto.
func New(registerer prometheus.Registerer, namespace string) *Provider {
	f := promauto.With(registerer)
	return &Provider{
		state: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "dirwatch",
			Name:      "state",
			Help:      "Current watcher state (0 idle, 1 running, 2 draining, 3 stopped).",
		}),
		transitions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "dirwatch",
			Name:      "state_transitions_total",
			Help:      "Watcher state transitions.",
		}, []string{"from", "to"}),
		events: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "dirwatch",
			Name:      "events_total",
			Help:      "Events translated from the notification source.",
		}, []string{"kind"}),
		deliveries: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "dirwatch",
			Name:      "deliveries_total",
			Help:      "Handler invocations.",
		}, []string{"kind"}),
		undelivered: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "dirwatch",
			Name:      "undelivered_events_total",
			Help:      "Events no handler was invoked for.",
		}, []string{"kind"}),
		overflows: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "dirwatch",
			Name:      "overflows_total",
			Help:      "Overflow markers reported by the notification source.",
		}, []string{"directory"}),
		invalidations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "dirwatch",
			Name:      "directory_invalidations_total",
			Help:      "Directories deactivated because their watch became invalid.",
		}, []string{"directory"}),
		failures: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "dirwatch",
			Name:      "listener_failures_total",
			Help:      "Listener deliveries that failed, by reason.",
		}, []string{"reason"}),
		batchEvents: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "dirwatch",
			Name:      "batch_events",
			Help:      "Events per drained batch.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
		}),
		batchDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "dirwatch",
			Name:      "batch_duration_seconds",
			Help:      "Time spent dispatching a drained batch.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}

// OnStateChange implements dirwatch.MetricsProvider.
func (p *Provider) OnStateChange(from, to dirwatch.State) {
	p.state.Set(float64(to))
	p.transitions.WithLabelValues(from.String(), to.String()).Inc()
}

// OnEventDispatched implements dirwatch.MetricsProvider.
func (p *Provider) OnEventDispatched(kind dirwatch.Kind, delivered int) {
	k := kind.String()
	p.events.WithLabelValues(k).Inc()
	if delivered == 0 {
		p.undelivered.WithLabelValues(k).Inc()
		return
	}
	p.deliveries.WithLabelValues(k).Add(float64(delivered))
}

// OnOverflow implements dirwatch.MetricsProvider.
func (p *Provider) OnOverflow(dir string) {
	p.overflows.WithLabelValues(dir).Inc()
}

// OnDirectoryInvalidated implements dirwatch.MetricsProvider.
func (p *Provider) OnDirectoryInvalidated(dir string) {
	p.invalidations.WithLabelValues(dir).Inc()
}

// OnListenerFailure implements dirwatch.MetricsProvider.
func (p *Provider) OnListenerFailure(reason string) {
	p.failures.WithLabelValues(reason).Inc()
}

// OnBatchProcessed implements dirwatch.MetricsProvider.
func (p *Provider) OnBatchProcessed(events int, duration time.Duration) {
	p.batchEvents.Observe(float64(events))
	p.batchDuration.Observe(duration.Seconds())
}

