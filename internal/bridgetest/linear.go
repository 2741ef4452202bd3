package bridgetest

import (
	"github.com/wandb/wandb/timeline/internal/bridge"
)

// LinearBridge is an in-memory renderer with a linear time scale.
//
// Values in [Min, Max] map to pixels in [Left, Left+Width].
type LinearBridge struct {
	Min, Max    float64
	Left, Width float64
	Height      float64

	// Rects records every SetSelectionRect call.
	Rects []bridge.Rect
}

var _ bridge.Bridge = (*LinearBridge)(nil)

func (b *LinearBridge) ValueToPixel(value float64, _ bridge.Axis) float64 {
	return b.Left + (value-b.Min)/(b.Max-b.Min)*b.Width
}

func (b *LinearBridge) PixelToValue(pixel float64, _ bridge.Axis) float64 {
	return b.Min + (pixel-b.Left)/b.Width*(b.Max-b.Min)
}

func (b *LinearBridge) SetSelectionRect(r bridge.Rect) {
	b.Rects = append(b.Rects, r)
}

func (b *LinearBridge) PlotHeight() float64 { return b.Height }

func (b *LinearBridge) PlotLeft() float64 { return b.Left }

// LastRect returns the most recent selection rectangle.
func (b *LinearBridge) LastRect() (bridge.Rect, bool) {
	if len(b.Rects) == 0 {
		return bridge.Rect{}, false
	}
	return b.Rects[len(b.Rects)-1], true
}
