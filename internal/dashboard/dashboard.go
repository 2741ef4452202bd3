// Package dashboard is an in-process host for timeline panels: it owns the
// dashboard time range and the wall clock, and fans range changes out to
// every panel.
package dashboard

import (
	"sync"
	"time"

	"github.com/wandb/wandb/timeline/internal/observability"
	"github.com/wandb/wandb/timeline/internal/timerange"
)

// Listener is called with the new dashboard range.
type Listener func(timerange.TimeRange)

type Dashboard struct {
	mu sync.Mutex

	timeRange timerange.TimeRange
	clock     func() time.Time
	logger    *observability.CoreLogger

	listeners map[int]Listener
	nextID    int
	changes   int
}

// New creates a host with the given range. A nil clock means time.Now.
func New(
	r timerange.TimeRange,
	clock func() time.Time,
	logger *observability.CoreLogger,
) *Dashboard {
	if clock == nil {
		clock = time.Now
	}
	if logger == nil {
		logger = observability.NewNoOpLogger()
	}
	return &Dashboard{
		timeRange: r,
		clock:     clock,
		logger:    logger,
		listeners: make(map[int]Listener),
	}
}

func (d *Dashboard) TimeRange() timerange.TimeRange {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timeRange
}

// Now is the host's wall clock.
func (d *Dashboard) Now() time.Time {
	return d.clock()
}

// NowMillis is Now in milliseconds since the epoch.
func (d *Dashboard) NowMillis() int64 {
	return d.clock().UnixMilli()
}

// Changes counts accepted range changes.
func (d *Dashboard) Changes() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.changes
}

// Subscribe registers fn for range changes and returns a function that
// removes it.
func (d *Dashboard) Subscribe(fn Listener) func() {
	d.mu.Lock()
	defer d.mu.Unlock()

	id := d.nextID
	d.nextID++
	d.listeners[id] = fn

	return func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		delete(d.listeners, id)
	}
}

// TimeRangeChanged replaces the dashboard range and notifies listeners.
//
// Panels call it when their brush commits; the host's own time picker
// calls it too. Listeners run after the lock is released.
func (d *Dashboard) TimeRangeChanged(r timerange.TimeRange) error {
	if err := r.Validate(); err != nil {
		d.logger.Warn("dashboard: ignoring invalid range", "error", err)
		return err
	}

	d.mu.Lock()
	if r == d.timeRange {
		d.mu.Unlock()
		return nil
	}
	d.timeRange = r
	d.changes++
	listeners := make([]Listener, 0, len(d.listeners))
	for _, fn := range d.listeners {
		listeners = append(listeners, fn)
	}
	d.mu.Unlock()

	d.logger.Info("dashboard: time range changed", "range", r.String())
	for _, fn := range listeners {
		fn(r)
	}
	return nil
}
