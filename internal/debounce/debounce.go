// Package debounce coalesces bursts of redraw requests.
package debounce

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/wandb/wandb/timeline/internal/observability"
)

// Debouncer is a rate limiter used to drop redundant redraws, such as the
// selection feedback sent on every pointer move during a drag.
//
// A nil *Debouncer runs nothing; callers that want unthrottled behavior
// call their function directly.
type Debouncer struct {
	limiter       *rate.Limiter
	finished      bool
	needsDebounce bool
	logger        *observability.CoreLogger
}

// NewDebouncer creates a new debouncer.
func NewDebouncer(
	eventRate rate.Limit,
	burstSize int,
	logger *observability.CoreLogger,
) *Debouncer {
	return &Debouncer{
		limiter: rate.NewLimiter(eventRate, burstSize),
		logger:  logger,
	}
}

// NewFrameDebouncer allows at most fps calls per second.
func NewFrameDebouncer(fps int, logger *observability.CoreLogger) *Debouncer {
	if fps <= 0 {
		return nil
	}
	return NewDebouncer(rate.Every(time.Second/time.Duration(fps)), 1, logger)
}

func (d *Debouncer) SetNeedsDebounce() {
	if d == nil {
		return
	}
	d.needsDebounce = true
}

func (d *Debouncer) UnsetNeedsDebounce() {
	if d == nil {
		return
	}
	d.needsDebounce = false
}

// NeedsFlush reports whether a debounced call is pending.
func (d *Debouncer) NeedsFlush() bool {
	return d != nil && !d.finished && d.needsDebounce
}

// Debounce calls f if a call is pending and the rate limiter allows it.
func (d *Debouncer) Debounce(f func()) {
	if d == nil || d.finished {
		return
	}
	if !d.needsDebounce || !d.limiter.Allow() {
		return
	}
	d.Flush(f)
}

// Flush calls f if a call is pending, ignoring the rate limit.
func (d *Debouncer) Flush(f func()) {
	if d == nil || d.finished {
		return
	}
	if d.needsDebounce {
		d.logger.Debug("debounce: flushing")
		f()
		d.UnsetNeedsDebounce()
	}
}

// Stop makes all future debounce operations no-ops.
func (d *Debouncer) Stop() {
	if d == nil {
		return
	}
	d.finished = true
}
