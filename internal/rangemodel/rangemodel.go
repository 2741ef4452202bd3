// Package rangemodel holds the two ranges a timeline panel reconciles: the
// brush selection reported to the host and the wider window the chart shows.
package rangemodel

import (
	"sync"

	"github.com/wandb/wandb/timeline/internal/timerange"
)

// DefaultContextWindow is how far before the dashboard range the visible
// window starts when a panel is created.
const DefaultContextWindow = 7 * timerange.MillisPerDay

// RangeModel owns TimelineRange and VisibleRange for one panel instance.
//
// Methods are safe for concurrent use. The change callback runs after the
// lock is released, so it may read from or write to the model.
type RangeModel struct {
	mu sync.Mutex

	dashboard timerange.TimeRange
	timeline  timerange.TimeRange
	visible   timerange.TimeRange

	onTimelineChange func(timerange.TimeRange)
}

// New creates a model for the given host range.
//
// TimelineRange starts equal to the dashboard range. VisibleRange starts at
// [dashboard.From - 7d, min(dashboard.To, now)]. When now is so far before
// the dashboard that this window would be empty, it is not capped and
// starts at [dashboard.From - 7d, dashboard.To].
func New(
	dashboard timerange.TimeRange,
	now int64,
	onTimelineChange func(timerange.TimeRange),
) *RangeModel {
	visible := timerange.New(
		dashboard.From-DefaultContextWindow,
		min(dashboard.To, now),
	)
	if !visible.Valid() {
		visible.To = dashboard.To
	}

	return &RangeModel{
		dashboard:        dashboard,
		timeline:         dashboard,
		visible:          visible,
		onTimelineChange: onTimelineChange,
	}
}

// SetTimelineRange replaces the brush range and notifies the host once.
//
// Ranges with From >= To are rejected with timerange.ErrInvalidRange; the
// previous range is kept and the host is not notified.
func (m *RangeModel) SetTimelineRange(r timerange.TimeRange) error {
	if err := r.Validate(); err != nil {
		return err
	}

	m.mu.Lock()
	m.timeline = r
	notify := m.onTimelineChange
	m.mu.Unlock()

	if notify != nil {
		notify(r)
	}
	return nil
}

// SetVisibleRange replaces the rendered window. The host is not notified.
func (m *RangeModel) SetVisibleRange(r timerange.TimeRange) error {
	if err := r.Validate(); err != nil {
		return err
	}

	m.mu.Lock()
	m.visible = r
	m.mu.Unlock()
	return nil
}

// SyncToDashboardRange resets the brush to the host's range.
//
// VisibleRange is left alone so the context window stays put, and the host
// is not notified since the change came from it.
func (m *RangeModel) SyncToDashboardRange(from, to int64) error {
	r := timerange.New(from, to)
	if err := r.Validate(); err != nil {
		return err
	}

	m.mu.Lock()
	m.dashboard = r
	m.timeline = r
	m.mu.Unlock()
	return nil
}

// TimelineRange returns the brush selection last committed or synced.
func (m *RangeModel) TimelineRange() timerange.TimeRange {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.timeline
}

// VisibleRange returns the window the chart is drawn over.
func (m *RangeModel) VisibleRange() timerange.TimeRange {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.visible
}

// DashboardRange returns the host range last seen by the model.
func (m *RangeModel) DashboardRange() timerange.TimeRange {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.dashboard
}

// Snapshot returns all three ranges under a single lock.
func (m *RangeModel) Snapshot() (dashboard, timeline, visible timerange.TimeRange) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.dashboard, m.timeline, m.visible
}
