// Package bridge is the panel's view of the rendering engine: pixel <-> time
// conversion, the selection rectangle and the engine's own selection events.
package bridge

import "sync"

// Axis names a chart scale.
type Axis string

// AxisX is the horizontal time axis; all conversions in the panel use it.
const AxisX Axis = "x"

// Rect is a selection rectangle in renderer pixels.
type Rect struct {
	Left, Top, Width, Height float64
}

// IsZero reports whether the rectangle is cleared.
func (r Rect) IsZero() bool {
	return r.Width == 0 && r.Height == 0
}

// Right returns the right edge.
func (r Rect) Right() float64 {
	return r.Left + r.Width
}

// Bridge is implemented by the rendering engine.
//
// SetSelectionRect must not trigger the engine's selection notification;
// only the engine's own mouse handling does that.
type Bridge interface {
	ValueToPixel(value float64, axis Axis) float64
	PixelToValue(pixel float64, axis Axis) float64
	SetSelectionRect(r Rect)
	PlotHeight() float64
	PlotLeft() float64
}

// Geometry is the static plot geometry captured when the renderer is ready.
type Geometry struct {
	PlotHeight float64
	PlotLeft   float64
}

// Handle is a re-acquirable back-reference to the live renderer.
//
// The renderer may be torn down and recreated at any time (for example on
// resize). Ready attaches the new instance and re-reads its geometry;
// Teardown drops both. Callers must check the second result of Get.
type Handle struct {
	mu       sync.Mutex
	bridge   Bridge
	geometry Geometry
	onSelect func(Rect)
}

// NewHandle returns a handle with no renderer attached.
func NewHandle() *Handle {
	return &Handle{}
}

// Ready attaches b and snapshots its geometry.
func (h *Handle) Ready(b Bridge) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.bridge = b
	if b == nil {
		h.geometry = Geometry{}
		return
	}
	h.geometry = Geometry{
		PlotHeight: b.PlotHeight(),
		PlotLeft:   b.PlotLeft(),
	}
}

// Teardown detaches the renderer.
func (h *Handle) Teardown() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.bridge = nil
	h.geometry = Geometry{}
}

// Get returns the live renderer, if any.
func (h *Handle) Get() (Bridge, bool) {
	if h == nil {
		return nil, false
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.bridge, h.bridge != nil
}

// Geometry returns the geometry captured by the last Ready.
func (h *Handle) Geometry() (Geometry, bool) {
	if h == nil {
		return Geometry{}, false
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.geometry, h.bridge != nil
}

// OnSelect registers the listener for the renderer's selection events.
func (h *Handle) OnSelect(fn func(Rect)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onSelect = fn
}

// NotifySelect is called by the renderer when its own mouse selection
// changes. It is dropped when no renderer is attached.
func (h *Handle) NotifySelect(r Rect) {
	h.mu.Lock()
	fn := h.onSelect
	attached := h.bridge != nil
	h.mu.Unlock()

	if fn != nil && attached {
		fn(r)
	}
}

// SelectionRect builds the rectangle covering [from, to] on the time axis.
func SelectionRect(b Bridge, from, to float64) Rect {
	left := b.ValueToPixel(from, AxisX)
	right := b.ValueToPixel(to, AxisX)
	return Rect{
		Left:   left,
		Top:    0,
		Width:  right - left,
		Height: b.PlotHeight(),
	}
}

// RectToValues converts a selection rectangle back to time values.
func RectToValues(b Bridge, r Rect) (from, to float64) {
	return b.PixelToValue(r.Left, AxisX), b.PixelToValue(r.Right(), AxisX)
}
