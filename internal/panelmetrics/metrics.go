// Package panelmetrics counts what happens to a panel's ranges.
package panelmetrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "timeline_panel"

// Sources of a TimelineRange commit.
const (
	SourceDrag       = "drag"
	SourceSelect     = "select"
	SourceReposition = "reposition"
	SourceAbsolute   = "absolute"
)

// Metrics holds one panel's collectors and the registry they live in.
//
// A nil *Metrics records nothing.
type Metrics struct {
	registry *prometheus.Registry

	commits      *prometheus.CounterVec
	rejections   *prometheus.CounterVec
	windowWrites *prometheus.CounterVec
	drags        *prometheus.CounterVec
	dragging     prometheus.Gauge
	visibleSpan  prometheus.Gauge
}

// New creates the collectors for the panel with the given instance id.
func New(panelID string) *Metrics {
	labels := prometheus.Labels{"panel": panelID}

	m := &Metrics{
		registry: prometheus.NewRegistry(),
		commits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "timeline_commits_total",
			Help:        "TimelineRange changes reported upstream.",
			ConstLabels: labels,
		}, []string{"source"}),
		rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "rejections_total",
			Help:        "Operations rejected while keeping the previous range.",
			ConstLabels: labels,
		}, []string{"reason"}),
		windowWrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "visible_range_writes_total",
			Help:        "VisibleRange changes by operation.",
			ConstLabels: labels,
		}, []string{"op"}),
		drags: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "drags_total",
			Help:        "Finished drag gestures by outcome.",
			ConstLabels: labels,
		}, []string{"outcome"}),
		dragging: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "drag_active",
			Help:        "1 while a drag session is alive.",
			ConstLabels: labels,
		}),
		visibleSpan: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "visible_span_seconds",
			Help:        "Span of the rendered window.",
			ConstLabels: labels,
		}),
	}

	m.registry.MustRegister(
		m.commits,
		m.rejections,
		m.windowWrites,
		m.drags,
		m.dragging,
		m.visibleSpan,
	)
	return m
}

// Registry returns the registry holding this panel's collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) Commit(source string) {
	if m == nil {
		return
	}
	m.commits.WithLabelValues(source).Inc()
}

func (m *Metrics) Reject(reason string) {
	if m == nil {
		return
	}
	m.rejections.WithLabelValues(reason).Inc()
}

// VisibleRangeSet records a VisibleRange write and its new span.
func (m *Metrics) VisibleRangeSet(op string, spanMillis int64) {
	if m == nil {
		return
	}
	m.windowWrites.WithLabelValues(op).Inc()
	m.visibleSpan.Set(float64(spanMillis) / 1000)
}

func (m *Metrics) DragStarted() {
	if m == nil {
		return
	}
	m.dragging.Set(1)
}

// DragEnded records the outcome of a drag: "committed", "cancelled" or
// "rejected".
func (m *Metrics) DragEnded(outcome string) {
	if m == nil {
		return
	}
	m.dragging.Set(0)
	m.drags.WithLabelValues(outcome).Inc()
}
