package panel_test

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wandb/wandb/timeline/internal/bridge"
	"github.com/wandb/wandb/timeline/internal/panel"
	"github.com/wandb/wandb/timeline/internal/timerange"
)

const chartTop = 2

func newTestChart(t *testing.T) *panel.TimelineChart {
	t.Helper()
	visible := timerange.New(0, 1_000_000)
	c := panel.NewTimelineChart(80, 20, 0, chartTop,
		panel.SyntheticSeries(visible, 50),
		panel.ChartColors{
			Brush:  panel.DefaultBrushColor,
			Handle: panel.DefaultHandleColor,
			Series: panel.DefaultSeriesColor,
		})
	c.SetVisible(visible)
	c.SetBrush(timerange.New(250_000, 750_000))
	require.Greater(t, c.GraphWidth(), 0)
	return c
}

func column(c *panel.TimelineChart, v int64) int {
	return int(math.Round(c.ValueToPixel(float64(v), bridge.AxisX)))
}

// columnStart returns the value at the left edge of the n-th plot column.
func columnStart(c *panel.TimelineChart, n int) int64 {
	return timerange.RoundMillis(c.PixelToValue(c.PlotLeft()+float64(n), bridge.AxisX))
}

func TestChart_ConvertsBetweenValuesAndColumns(t *testing.T) {
	c := newTestChart(t)

	assert.Equal(t, c.PlotLeft(), c.ValueToPixel(0, bridge.AxisX))
	assert.InDelta(t, c.PlotLeft()+float64(c.GraphWidth()),
		c.ValueToPixel(1_000_000, bridge.AxisX), 1e-9)
	assert.Equal(t, float64(c.GraphHeight()), c.PlotHeight())

	for _, v := range []float64{0, 123_456, 500_000, 1_000_000} {
		px := c.ValueToPixel(v, bridge.AxisX)
		assert.InDelta(t, v, c.PixelToValue(px, bridge.AxisX), 1e-6)
	}
}

func TestChart_Hit(t *testing.T) {
	c := newTestChart(t)
	left := column(c, 250_000)
	right := column(c, 750_000)
	plotLeft := int(c.PlotLeft())

	assert.Equal(t, panel.HitLeftHandle, c.Hit(left, chartTop))
	assert.Equal(t, panel.HitRightHandle, c.Hit(right, chartTop+1))
	assert.Equal(t, panel.HitBrush, c.Hit((left+right)/2, chartTop))
	assert.Equal(t, panel.HitPlot, c.Hit(plotLeft, chartTop))
	assert.Equal(t, panel.HitNone, c.Hit(plotLeft, chartTop-1))
	assert.Equal(t, panel.HitNone, c.Hit(plotLeft-1, chartTop))
	assert.Equal(t, panel.HitNone, c.Hit(plotLeft, chartTop+c.GraphHeight()))
}

func TestChart_HitNarrowBrush(t *testing.T) {
	c := newTestChart(t)
	from := columnStart(c, c.GraphWidth()/2)
	c.SetBrush(timerange.New(from, from+100))
	col := column(c, from)
	require.Equal(t, col, column(c, from+100))

	assert.Equal(t, panel.HitPlot, c.Hit(col-2, chartTop))
	assert.Equal(t, panel.HitLeftHandle, c.Hit(col-1, chartTop))
	assert.Equal(t, panel.HitBrush, c.Hit(col, chartTop))
	assert.Equal(t, panel.HitRightHandle, c.Hit(col+1, chartTop))
	assert.Equal(t, panel.HitPlot, c.Hit(col+2, chartTop))
}

func TestChart_HitTwoColumnBrush(t *testing.T) {
	c := newTestChart(t)
	perColumn := int64(1_000_000 / c.GraphWidth())
	from := columnStart(c, c.GraphWidth()/3)
	c.SetBrush(timerange.New(from, from+perColumn))
	left, right := column(c, from), column(c, from+perColumn)
	require.Equal(t, 1, right-left)

	assert.Equal(t, panel.HitLeftHandle, c.Hit(left-1, chartTop))
	assert.Equal(t, panel.HitBrush, c.Hit(left, chartTop))
	assert.Equal(t, panel.HitBrush, c.Hit(right, chartTop))
	assert.Equal(t, panel.HitRightHandle, c.Hit(right+1, chartTop))
}

func TestChart_HitNarrowBrushAtVisibleEnd(t *testing.T) {
	c := newTestChart(t)
	c.SetBrush(timerange.New(1_000_000-100, 1_000_000))
	plotRight := int(c.PlotLeft()) + c.GraphWidth() - 1

	assert.Equal(t, panel.HitRightHandle, c.Hit(plotRight, chartTop))
	assert.Equal(t, panel.HitBrush, c.Hit(plotRight-1, chartTop))
	assert.Equal(t, panel.HitLeftHandle, c.Hit(plotRight-2, chartTop))
	assert.Equal(t, panel.HitPlot, c.Hit(plotRight-3, chartTop))
}

func TestChart_HitBrushEndingAtVisibleEnd(t *testing.T) {
	c := newTestChart(t)
	c.SetBrush(timerange.New(500_000, 1_000_000))
	plotRight := int(c.PlotLeft()) + c.GraphWidth() - 1

	assert.Equal(t, panel.HitRightHandle, c.Hit(plotRight, chartTop))
	assert.Equal(t, panel.HitBrush, c.Hit(plotRight-1, chartTop))
}

func TestChart_HitWithoutBrush(t *testing.T) {
	c := newTestChart(t)
	c.SetBrush(timerange.TimeRange{})

	assert.Equal(t, panel.HitPlot, c.Hit(int(c.PlotLeft())+5, chartTop))
}

func TestChart_NativeSelectNotifiesListener(t *testing.T) {
	c := newTestChart(t)
	var got []bridge.Rect
	c.OnSelect(func(r bridge.Rect) { got = append(got, r) })

	start := int(c.PlotLeft()) + 10
	c.BeginSelect(start)
	c.UpdateSelect(start - 4)
	assert.True(t, c.Selecting())
	assert.Equal(t, float64(4), c.Selection().Width)

	c.EndSelect(start - 6)

	require.Len(t, got, 1)
	assert.Equal(t, float64(start-6), got[0].Left)
	assert.Equal(t, float64(6), got[0].Width)
	assert.Equal(t, c.PlotHeight(), got[0].Height)
	assert.False(t, c.Selecting())
	assert.True(t, c.Selection().IsZero())
}

func TestChart_NativeSelectClampsToPlot(t *testing.T) {
	c := newTestChart(t)
	var got bridge.Rect
	c.OnSelect(func(r bridge.Rect) { got = r })

	plotLeft := int(c.PlotLeft())
	c.BeginSelect(plotLeft + 3)
	c.EndSelect(0)

	assert.Equal(t, float64(plotLeft), got.Left)
	assert.Equal(t, float64(3), got.Width)
}

func TestChart_ClickWithoutDragDoesNotNotify(t *testing.T) {
	c := newTestChart(t)
	called := false
	c.OnSelect(func(bridge.Rect) { called = true })

	x := int(c.PlotLeft()) + 5
	c.BeginSelect(x)
	c.EndSelect(x)

	assert.False(t, called)
}

func TestChart_SetSelectionRectDoesNotNotify(t *testing.T) {
	c := newTestChart(t)
	called := false
	c.OnSelect(func(bridge.Rect) { called = true })

	r := bridge.SelectionRect(c, 100_000, 200_000)
	c.SetSelectionRect(r)

	assert.False(t, called)
	assert.Equal(t, r, c.Selection())
}

func TestChart_CancelSelect(t *testing.T) {
	c := newTestChart(t)
	called := false
	c.OnSelect(func(bridge.Rect) { called = true })

	assert.False(t, c.CancelSelect())

	x := int(c.PlotLeft()) + 5
	c.BeginSelect(x)
	c.UpdateSelect(x + 5)
	assert.True(t, c.CancelSelect())
	c.EndSelect(x + 5)

	assert.False(t, called)
	assert.True(t, c.Selection().IsZero())
}

func TestChart_DrawsHandles(t *testing.T) {
	c := newTestChart(t)

	c.Draw()
	view := c.View()

	assert.Contains(t, view, "┃")
	assert.GreaterOrEqual(t, strings.Count(view, "\n"), c.GraphHeight()-1)
}

func TestChart_DrawsWithoutPoints(t *testing.T) {
	c := panel.NewTimelineChart(40, 10, 0, 0, nil, panel.ChartColors{})
	c.SetVisible(timerange.New(0, 1000))

	assert.NotPanics(t, func() {
		c.Draw()
		_ = c.View()
	})
}
