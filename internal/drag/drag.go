// Package drag implements the brush gestures: moving the brush body and
// resizing it from either edge.
package drag

import (
	"errors"
	"fmt"
	"sync"

	"github.com/wandb/wandb/timeline/internal/bridge"
	"github.com/wandb/wandb/timeline/internal/debounce"
	"github.com/wandb/wandb/timeline/internal/observability"
	"github.com/wandb/wandb/timeline/internal/panelmetrics"
	"github.com/wandb/wandb/timeline/internal/rangemodel"
	"github.com/wandb/wandb/timeline/internal/timerange"
)

var (
	// ErrDragActive is returned by PointerDown while a session is alive.
	ErrDragActive = errors.New("drag: a drag session is already active")

	// ErrNotDragging is returned by PointerMove and PointerUp when idle.
	ErrNotDragging = errors.New("drag: no active drag session")
)

// minSpan is the narrowest brush a resize may produce, in milliseconds.
const minSpan = 1

// Kind identifies which part of the brush was grabbed.
type Kind int

const (
	Move Kind = iota
	ResizeLeft
	ResizeRight
)

func (k Kind) String() string {
	switch k {
	case Move:
		return "move"
	case ResizeLeft:
		return "resize-left"
	case ResizeRight:
		return "resize-right"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// State is the controller's gesture state.
type State int

const (
	Idle State = iota
	Dragging
)

// Session exists only while the pointer button is held.
type Session struct {
	Kind       Kind
	OriginX    float64
	OriginFrom int64
	OriginTo   int64
}

func (s Session) origin() timerange.TimeRange {
	return timerange.New(s.OriginFrom, s.OriginTo)
}

// Params are the collaborators of a Controller.
type Params struct {
	Model  *rangemodel.RangeModel
	Handle *bridge.Handle
	Logger *observability.CoreLogger

	// Metrics is optional.
	Metrics *panelmetrics.Metrics

	// Feedback, if set, rate-limits the live SetSelectionRect calls made
	// while dragging. Pending feedback is sent by FlushFeedback.
	Feedback *debounce.Debouncer
}

// Controller turns pointer events into TimelineRange updates.
//
// While a session is alive suspendSelectionEvents is true and the renderer's
// own selection notifications are ignored: the session is the only writer
// until PointerUp commits or Cancel drops it.
type Controller struct {
	mu sync.Mutex

	model    *rangemodel.RangeModel
	handle   *bridge.Handle
	logger   *observability.CoreLogger
	metrics  *panelmetrics.Metrics
	feedback *debounce.Debouncer

	suspendSelectionEvents bool
	session                *Session
	preview                timerange.TimeRange
	pendingRect            bridge.Rect
}

// New creates an idle controller and registers it as the handle's
// selection listener.
func New(params Params) *Controller {
	if params.Model == nil {
		panic("drag: Model is nil")
	}
	if params.Handle == nil {
		params.Handle = bridge.NewHandle()
	}
	if params.Logger == nil {
		params.Logger = observability.NewNoOpLogger()
	}

	c := &Controller{
		model:    params.Model,
		handle:   params.Handle,
		logger:   params.Logger,
		metrics:  params.Metrics,
		feedback: params.Feedback,
	}
	c.handle.OnSelect(c.HandleSelect)
	return c
}

// PointerDown starts a session of the given kind at pixel clientX.
func (c *Controller) PointerDown(kind Kind, clientX float64) error {
	if _, ok := c.handle.Get(); !ok {
		c.metrics.Reject("missing_bridge")
		return timerange.ErrMissingBridge
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session != nil {
		return ErrDragActive
	}

	origin := c.model.TimelineRange()
	c.session = &Session{
		Kind:       kind,
		OriginX:    clientX,
		OriginFrom: origin.From,
		OriginTo:   origin.To,
	}
	c.preview = origin
	c.suspendSelectionEvents = true
	c.metrics.DragStarted()

	c.logger.Debug("drag: started", "kind", kind.String(), "x", clientX)
	return nil
}

// PointerMove updates the preview range and the renderer's selection
// rectangle. TimelineRange is not written until PointerUp.
func (c *Controller) PointerMove(clientX float64) (timerange.TimeRange, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session == nil {
		return timerange.TimeRange{}, ErrNotDragging
	}

	b, ok := c.handle.Get()
	if !ok {
		return c.preview, timerange.ErrMissingBridge
	}

	c.preview = project(b, *c.session, clientX)
	c.pendingRect = bridge.SelectionRect(b,
		float64(c.preview.From), float64(c.preview.To))

	if c.feedback == nil {
		b.SetSelectionRect(c.pendingRect)
	} else {
		c.feedback.SetNeedsDebounce()
		c.feedback.Debounce(c.sendFeedbackLocked)
	}

	return c.preview, nil
}

// FlushFeedback sends a selection rectangle held back by the feedback
// debouncer. It is called once per rendered frame.
func (c *Controller) FlushFeedback() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session == nil {
		return
	}
	c.feedback.Flush(c.sendFeedbackLocked)
}

func (c *Controller) sendFeedbackLocked() {
	if b, ok := c.handle.Get(); ok {
		b.SetSelectionRect(c.pendingRect)
	}
}

// PointerUp ends the session and commits the final range.
func (c *Controller) PointerUp(clientX float64) error {
	c.mu.Lock()

	if c.session == nil {
		c.mu.Unlock()
		return ErrNotDragging
	}

	final := c.preview
	b, ok := c.handle.Get()
	if ok {
		final = project(b, *c.session, clientX)
		b.SetSelectionRect(bridge.Rect{})
	}
	kind := c.session.Kind
	c.endLocked()
	c.mu.Unlock()

	// Outside the lock: the model's callback may call back into us.
	if err := c.model.SetTimelineRange(final); err != nil {
		c.logger.Warn("drag: rejected final range",
			"kind", kind.String(), "range", final.String(), "error", err)
		c.metrics.Reject("invalid_range")
		c.metrics.DragEnded("rejected")
		return err
	}

	c.metrics.Commit(panelmetrics.SourceDrag)
	c.metrics.DragEnded("committed")
	c.logger.Debug("drag: committed", "kind", kind.String(), "range", final.String())
	return nil
}

// Cancel drops the session without committing. It reports whether a
// session was active.
func (c *Controller) Cancel() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session == nil {
		return false
	}

	if b, ok := c.handle.Get(); ok {
		b.SetSelectionRect(bridge.Rect{})
	}
	c.preview = c.session.origin()
	c.endLocked()

	c.metrics.DragEnded("cancelled")
	c.logger.Debug("drag: cancelled")
	return true
}

func (c *Controller) endLocked() {
	c.session = nil
	c.suspendSelectionEvents = false
	c.pendingRect = bridge.Rect{}
	c.feedback.UnsetNeedsDebounce()
}

// HandleSelect is the listener for the renderer's own selection
// notifications. It is ignored while a drag session is alive.
func (c *Controller) HandleSelect(r bridge.Rect) {
	c.mu.Lock()
	suspended := c.suspendSelectionEvents
	c.mu.Unlock()

	if suspended {
		c.logger.Debug("drag: ignoring selection during drag")
		return
	}
	if r.IsZero() {
		return
	}

	b, ok := c.handle.Get()
	if !ok {
		return
	}

	from, to := bridge.RectToValues(b, r)
	next := timerange.New(timerange.RoundMillis(from), timerange.RoundMillis(to))
	if err := c.model.SetTimelineRange(next); err != nil {
		c.logger.Debug("drag: ignoring empty selection", "error", err)
		c.metrics.Reject("invalid_range")
		return
	}
	c.metrics.Commit(panelmetrics.SourceSelect)
}

// Suspended reports whether renderer selection events are being ignored.
func (c *Controller) Suspended() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.suspendSelectionEvents
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session != nil {
		return Dragging
	}
	return Idle
}

// Dragging returns the active session, if any.
func (c *Controller) Dragging() (Session, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil {
		return Session{}, false
	}
	return *c.session, true
}

// Preview returns the range the active session would commit, or the
// current TimelineRange when idle.
func (c *Controller) Preview() timerange.TimeRange {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil {
		return c.model.TimelineRange()
	}
	return c.preview
}

// project applies the pointer offset to the session's origin.
//
// The offset is converted to time by a round trip through pixel space at
// the origin, so it stays correct if the scale is non-linear or re-ranged
// between frames.
func project(b bridge.Bridge, s Session, clientX float64) timerange.TimeRange {
	dx := clientX - s.OriginX
	originPx := b.ValueToPixel(float64(s.OriginFrom), bridge.AxisX)
	delta := timerange.RoundMillis(
		b.PixelToValue(originPx+dx, bridge.AxisX) - float64(s.OriginFrom))

	switch s.Kind {
	case ResizeLeft:
		return timerange.New(min(s.OriginFrom+delta, s.OriginTo-minSpan), s.OriginTo)
	case ResizeRight:
		return timerange.New(s.OriginFrom, max(s.OriginTo+delta, s.OriginFrom+minSpan))
	default:
		return timerange.New(s.OriginFrom+delta, s.OriginTo+delta)
	}
}
