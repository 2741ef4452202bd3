// Package window computes the chart's visible range from presets, typed
// durations, absolute timestamps, zoom and pan.
package window

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/wandb/wandb/timeline/internal/observability"
	"github.com/wandb/wandb/timeline/internal/panelmetrics"
	"github.com/wandb/wandb/timeline/internal/rangemodel"
	"github.com/wandb/wandb/timeline/internal/timerange"
)

// ErrInvalidFactor is returned by Zoom for non-positive or non-finite
// factors.
var ErrInvalidFactor = errors.New("window: zoom factor must be positive")

// Direction is a pan direction.
type Direction int

const (
	PanLeft Direction = iota
	PanRight
)

func (d Direction) String() string {
	if d == PanLeft {
		return "left"
	}
	return "right"
}

// panFraction is the share of the visible span moved by one pan step.
const panFraction = 4

type Params struct {
	Model *rangemodel.RangeModel

	// Now is the host's clock. Defaults to time.Now.
	Now func() time.Time

	// ParseDuration converts a duration token to milliseconds.
	// Defaults to timerange.ParseDuration.
	ParseDuration timerange.ParseDurationFunc

	// Location is used for absolute timestamps without a zone.
	// Defaults to time.Local.
	Location *time.Location

	// Reposition keeps the brush at the same relative position when the
	// window changes through a preset or an absolute range.
	Reposition bool

	Logger  *observability.CoreLogger
	Metrics *panelmetrics.Metrics
}

// Applier changes VisibleRange. It writes TimelineRange only to reposition
// the brush or for SelectAbsoluteRange.
//
// Failures are logged and returned; the previous ranges are kept.
type Applier struct {
	model         *rangemodel.RangeModel
	now           func() time.Time
	parseDuration timerange.ParseDurationFunc
	location      *time.Location
	reposition    bool
	logger        *observability.CoreLogger
	metrics       *panelmetrics.Metrics
}

func New(params Params) *Applier {
	if params.Model == nil {
		panic("window: Model is nil")
	}
	if params.Now == nil {
		params.Now = time.Now
	}
	if params.ParseDuration == nil {
		params.ParseDuration = timerange.ParseDuration
	}
	if params.Location == nil {
		params.Location = time.Local
	}
	if params.Logger == nil {
		params.Logger = observability.NewNoOpLogger()
	}

	return &Applier{
		model:         params.Model,
		now:           params.Now,
		parseDuration: params.ParseDuration,
		location:      params.Location,
		reposition:    params.Reposition,
		logger:        params.Logger,
		metrics:       params.Metrics,
	}
}

// SetReposition toggles brush repositioning.
func (a *Applier) SetReposition(on bool) {
	a.reposition = on
}

func (a *Applier) Reposition() bool {
	return a.reposition
}

// ApplyPreset widens the dashboard range by a duration on both sides,
// capping the end at now.
//
// The token is a preset label or value, or free-form duration text such as
// "12h" or "1d12h".
func (a *Applier) ApplyPreset(token string) error {
	extra, err := a.parseDuration(presetValue(token))
	if err != nil {
		return a.reject("preset", "duration_parse", err, "token", token)
	}

	dashboard := a.model.DashboardRange()
	next := timerange.New(
		dashboard.From-extra,
		min(dashboard.To+extra, a.now().UnixMilli()),
	)
	if err := next.Validate(); err != nil {
		return a.reject("preset", "invalid_range", err, "token", token)
	}

	return a.apply("preset", next)
}

// ApplyAbsoluteRange shows exactly the typed range.
func (a *Applier) ApplyAbsoluteRange(fromText, toText string) error {
	next, err := timerange.ParseRange(fromText, toText, a.now(), a.location)
	if err != nil {
		return a.reject("absolute", reasonFor(err), err,
			"from", fromText, "to", toText)
	}
	return a.apply("absolute", next)
}

// SelectAbsoluteRange sets the brush to exactly the typed range.
func (a *Applier) SelectAbsoluteRange(fromText, toText string) error {
	next, err := timerange.ParseRange(fromText, toText, a.now(), a.location)
	if err != nil {
		return a.reject("select", reasonFor(err), err,
			"from", fromText, "to", toText)
	}
	if err := a.model.SetTimelineRange(next); err != nil {
		return a.reject("select", "invalid_range", err)
	}
	a.metrics.Commit(panelmetrics.SourceAbsolute)
	return nil
}

// Zoom scales the visible span by factor around its midpoint.
// Factors below 1 zoom in.
func (a *Applier) Zoom(factor float64) error {
	if factor <= 0 || math.IsNaN(factor) || math.IsInf(factor, 0) {
		return a.reject("zoom", "invalid_factor",
			fmt.Errorf("%w: %v", ErrInvalidFactor, factor))
	}

	visible := a.model.VisibleRange()
	mid := visible.Mid()
	half := float64(visible.Span()) * factor / 2
	next := timerange.New(
		timerange.RoundMillis(mid-half),
		timerange.RoundMillis(mid+half),
	)

	if err := a.model.SetVisibleRange(next); err != nil {
		return a.reject("zoom", "invalid_range", err, "factor", factor)
	}
	a.metrics.VisibleRangeSet("zoom", next.Span())
	return nil
}

// Pan shifts the visible range by a quarter of its span.
func (a *Applier) Pan(dir Direction) error {
	visible := a.model.VisibleRange()
	step := visible.Span() / panFraction
	if dir == PanLeft {
		step = -step
	}

	next := visible.Shift(step)
	if err := a.model.SetVisibleRange(next); err != nil {
		return a.reject("pan", "invalid_range", err, "direction", dir.String())
	}
	a.metrics.VisibleRangeSet("pan", next.Span())
	return nil
}

// AbsoluteDefaults returns the text the absolute range fields start with:
// the visible range in RFC 3339.
func (a *Applier) AbsoluteDefaults() (from, to string) {
	visible := a.model.VisibleRange()
	return visible.FromTime().In(a.location).Format(time.RFC3339),
		visible.ToTime().In(a.location).Format(time.RFC3339)
}

func (a *Applier) apply(op string, next timerange.TimeRange) error {
	old := a.model.VisibleRange()
	if err := a.model.SetVisibleRange(next); err != nil {
		return a.reject(op, "invalid_range", err)
	}
	a.metrics.VisibleRangeSet(op, next.Span())
	a.logger.Debug("window: visible range set", "op", op, "range", next.String())

	if a.reposition {
		a.repositionBrush(old, next)
	}
	return nil
}

// repositionBrush maps the brush's position inside old onto next.
func (a *Applier) repositionBrush(old, next timerange.TimeRange) {
	brush := a.model.TimelineRange()
	moved := timerange.New(
		next.At(old.Fraction(brush.From)),
		next.At(old.Fraction(brush.To)),
	)
	if moved == brush {
		return
	}

	if err := a.model.SetTimelineRange(moved); err != nil {
		a.logger.Debug("window: brush not repositioned", "error", err)
		a.metrics.Reject("invalid_range")
		return
	}
	a.metrics.Commit(panelmetrics.SourceReposition)
}

func (a *Applier) reject(op, reason string, err error, args ...any) error {
	a.logger.Warn(fmt.Sprintf("window: %s rejected", op),
		append([]any{"error", err}, args...)...)
	a.metrics.Reject(reason)
	return err
}

func reasonFor(err error) string {
	if errors.Is(err, timerange.ErrInvalidRange) {
		return "invalid_range"
	}
	return "duration_parse"
}
