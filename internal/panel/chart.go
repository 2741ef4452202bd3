package panel

import (
	"math"
	"sort"
	"time"

	"github.com/NimbleMarkets/ntcharts/canvas"
	"github.com/NimbleMarkets/ntcharts/canvas/graph"
	"github.com/NimbleMarkets/ntcharts/linechart"
	"github.com/charmbracelet/lipgloss"

	"github.com/wandb/wandb/timeline/internal/bridge"
	"github.com/wandb/wandb/timeline/internal/timerange"
)

// HitTarget is the part of the chart under the pointer.
type HitTarget int

const (
	HitNone HitTarget = iota
	HitPlot
	HitBrush
	HitLeftHandle
	HitRightHandle
)

// TimelineChart draws a series over the visible range with the brush on
// top. It is the panel's renderer: pixels are terminal columns.
//
// Implements bridge.Bridge.
type TimelineChart struct {
	linechart.Model

	points []Point

	visible timerange.TimeRange
	brush   timerange.TimeRange

	// selection is the rectangle requested through SetSelectionRect.
	selection bridge.Rect

	// Native click-and-drag selection on empty plot area.
	selecting    bool
	selectAnchor int
	selectCursor int
	onSelect     func(bridge.Rect)

	// Screen position of the canvas' top-left cell.
	offsetX, offsetY int

	seriesStyle lipgloss.Style
	brushColor  lipgloss.Color
	handleStyle lipgloss.Style
	selectColor lipgloss.Color
}

var _ bridge.Bridge = (*TimelineChart)(nil)

// ChartColors are the colors a chart is drawn with.
type ChartColors struct {
	Brush, Handle, Series string
}

func NewTimelineChart(
	width, height int,
	offsetX, offsetY int,
	points []Point,
	colors ChartColors,
) *TimelineChart {
	c := &TimelineChart{
		Model: linechart.New(width, height, 0, 1, 0, 1,
			linechart.WithXYSteps(8, 2),
		),
		points:      points,
		offsetX:     offsetX,
		offsetY:     offsetY,
		seriesStyle: lipgloss.NewStyle().Foreground(lipgloss.Color(colors.Series)),
		brushColor:  lipgloss.Color(colors.Brush),
		handleStyle: lipgloss.NewStyle().Foreground(lipgloss.Color(colors.Handle)).Bold(true),
		selectColor: lipgloss.Color(DefaultSelectColor),
	}
	c.AxisStyle = axisStyle
	c.LabelStyle = labelStyle
	c.XLabelFormatter = c.formatXLabel
	c.YLabelFormatter = formatYLabel
	c.updateYRange()
	return c
}

// OnSelect registers the listener for native selections.
func (c *TimelineChart) OnSelect(fn func(bridge.Rect)) {
	c.onSelect = fn
}

// SetVisible sets the time range spanned by the x axis.
func (c *TimelineChart) SetVisible(r timerange.TimeRange) {
	if !r.Valid() {
		return
	}
	c.visible = r
	c.SetXRange(float64(r.From), float64(r.To))
	c.SetViewXRange(float64(r.From), float64(r.To))
	c.updateYRange()
}

// SetBrush sets the range drawn as the brush.
func (c *TimelineChart) SetBrush(r timerange.TimeRange) {
	c.brush = r
}

func (c *TimelineChart) Visible() timerange.TimeRange {
	return c.visible
}

func (c *TimelineChart) Selection() bridge.Rect {
	return c.selection
}

// graphStartX is the first canvas column of the plot area.
func (c *TimelineChart) graphStartX() int {
	if c.YStep() > 0 {
		return c.Origin().X + 1
	}
	return 0
}

// ValueToPixel implements bridge.Bridge.ValueToPixel.
func (c *TimelineChart) ValueToPixel(value float64, _ bridge.Axis) float64 {
	span := c.ViewMaxX() - c.ViewMinX()
	if span <= 0 {
		return c.PlotLeft()
	}
	return c.PlotLeft() + (value-c.ViewMinX())/span*float64(c.GraphWidth())
}

// PixelToValue implements bridge.Bridge.PixelToValue.
func (c *TimelineChart) PixelToValue(pixel float64, _ bridge.Axis) float64 {
	if c.GraphWidth() <= 0 {
		return c.ViewMinX()
	}
	span := c.ViewMaxX() - c.ViewMinX()
	return c.ViewMinX() + (pixel-c.PlotLeft())/float64(c.GraphWidth())*span
}

// SetSelectionRect implements bridge.Bridge.SetSelectionRect.
//
// It only changes what is drawn; it never fires the select listener.
func (c *TimelineChart) SetSelectionRect(r bridge.Rect) {
	c.selection = r
}

// PlotHeight implements bridge.Bridge.PlotHeight.
func (c *TimelineChart) PlotHeight() float64 {
	return float64(c.GraphHeight())
}

// PlotLeft implements bridge.Bridge.PlotLeft.
func (c *TimelineChart) PlotLeft() float64 {
	return float64(c.offsetX + c.graphStartX())
}

// inPlot reports whether the screen cell (x, y) is inside the plot area.
func (c *TimelineChart) inPlot(x, y int) bool {
	left := int(c.PlotLeft())
	return x >= left && x < left+c.GraphWidth() &&
		y >= c.offsetY && y < c.offsetY+c.GraphHeight()
}

// brushColumns returns the screen columns of the brush edges.
func (c *TimelineChart) brushColumns() (left, right int) {
	left = int(math.Round(c.ValueToPixel(float64(c.brush.From), bridge.AxisX)))
	right = int(math.Round(c.ValueToPixel(float64(c.brush.To), bridge.AxisX)))
	return left, right
}

// handleColumns returns the columns the brush handles are drawn in.
//
// An edge at the visible range's end maps one column past the plot and is
// pulled back onto its last column. A brush narrower than three columns
// gets its handles pushed outward, staying inside the plot, so there is
// always a body column to grab between them.
func (c *TimelineChart) handleColumns() (left, right int) {
	left, right = c.brushColumns()
	plotLeft := int(c.PlotLeft())
	plotRight := plotLeft + c.GraphWidth() - 1

	if right == plotRight+1 {
		right = plotRight
		left = min(left, right)
	}
	onScreen := left <= plotRight && right >= plotLeft
	if !onScreen || right-left >= 2 || c.GraphWidth() < 3 {
		return left, right
	}

	left, right = left-1, right+1
	if left >= plotLeft && right > plotRight {
		left, right = plotRight-2, plotRight
	}
	if right <= plotRight && left < plotLeft {
		left, right = plotLeft, plotLeft+2
	}
	return left, right
}

// Hit returns what lies under the screen cell (x, y).
func (c *TimelineChart) Hit(x, y int) HitTarget {
	if !c.inPlot(x, y) {
		return HitNone
	}
	if !c.brush.Valid() {
		return HitPlot
	}

	left, right := c.handleColumns()
	switch {
	case x == left:
		return HitLeftHandle
	case x == right:
		return HitRightHandle
	case x > left && x < right:
		return HitBrush
	default:
		return HitPlot
	}
}

// BeginSelect starts a native selection at column x.
func (c *TimelineChart) BeginSelect(x int) {
	c.selecting = true
	c.selectAnchor = x
	c.selectCursor = x
}

// UpdateSelect extends the native selection to column x.
func (c *TimelineChart) UpdateSelect(x int) {
	if !c.selecting {
		return
	}
	c.selectCursor = c.clampColumn(x)
	c.selection = c.nativeRect()
}

// EndSelect finishes the native selection and reports it to the listener.
func (c *TimelineChart) EndSelect(x int) {
	if !c.selecting {
		return
	}
	c.selectCursor = c.clampColumn(x)
	r := c.nativeRect()

	c.selecting = false
	c.selection = bridge.Rect{}

	if r.Width > 0 && c.onSelect != nil {
		c.onSelect(r)
	}
}

// CancelSelect drops a native selection without reporting it.
func (c *TimelineChart) CancelSelect() bool {
	if !c.selecting {
		return false
	}
	c.selecting = false
	c.selection = bridge.Rect{}
	return true
}

func (c *TimelineChart) Selecting() bool {
	return c.selecting
}

func (c *TimelineChart) nativeRect() bridge.Rect {
	left := min(c.selectAnchor, c.selectCursor)
	right := max(c.selectAnchor, c.selectCursor)
	return bridge.Rect{
		Left:   float64(left),
		Width:  float64(right - left),
		Height: c.PlotHeight(),
	}
}

func (c *TimelineChart) clampColumn(x int) int {
	left := int(c.PlotLeft())
	return max(left, min(x, left+c.GraphWidth()))
}

// updateYRange fits the y axis to the points inside the visible range.
func (c *TimelineChart) updateYRange() {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, p := range c.visiblePoints() {
		lo = math.Min(lo, p.Value)
		hi = math.Max(hi, p.Value)
	}
	if math.IsInf(lo, 0) {
		lo, hi = 0, 1
	}
	if hi == lo {
		pad := math.Max(math.Abs(hi)*0.1, 1)
		lo, hi = lo-pad, hi+pad
	}
	pad := (hi - lo) * 0.1
	c.SetYRange(lo-pad, hi+pad)
	c.SetViewYRange(lo-pad, hi+pad)
}

// visiblePoints returns the points inside the visible range. Points are
// sorted by time.
func (c *TimelineChart) visiblePoints() []Point {
	if !c.visible.Valid() {
		return nil
	}
	lb := sort.Search(len(c.points), func(i int) bool {
		return c.points[i].Time >= c.visible.From
	})
	ub := sort.Search(len(c.points), func(i int) bool {
		return c.points[i].Time > c.visible.To
	})
	return c.points[lb:ub]
}

// Draw renders the axes, series, brush, handles and selection.
func (c *TimelineChart) Draw() {
	c.Clear()
	c.DrawXYAxisAndLabel()

	if c.GraphWidth() <= 0 || c.GraphHeight() <= 0 {
		return
	}

	c.drawSeries()
	if c.brush.Valid() {
		c.shadeColumns(c.handleColumns())
		c.drawHandles()
	}
	if !c.selection.IsZero() {
		left := int(math.Round(c.selection.Left))
		right := int(math.Round(c.selection.Right()))
		c.shadeColumnsWith(left, right, c.selectColor)
	}
}

func (c *TimelineChart) drawSeries() {
	pts := c.visiblePoints()
	if len(pts) == 0 {
		return
	}

	w, h := float64(c.GraphWidth()), float64(c.GraphHeight())
	bGrid := graph.NewBrailleGrid(c.GraphWidth(), c.GraphHeight(), 0, w, 0, h)

	xScale := w / (c.ViewMaxX() - c.ViewMinX())
	yScale := h / (c.ViewMaxY() - c.ViewMinY())
	scaled := make([]canvas.Point, 0, len(pts))
	for _, p := range pts {
		f := canvas.Float64Point{
			X: (float64(p.Time) - c.ViewMinX()) * xScale,
			Y: (p.Value - c.ViewMinY()) * yScale,
		}
		scaled = append(scaled, bGrid.GridPoint(f))
	}

	if len(scaled) == 1 {
		bGrid.Set(scaled[0])
	}
	for i := 0; i+1 < len(scaled); i++ {
		for _, gp := range graph.GetLinePoints(scaled[i], scaled[i+1]) {
			bGrid.Set(gp)
		}
	}

	graph.DrawBraillePatterns(&c.Canvas,
		canvas.Point{X: c.graphStartX(), Y: 0},
		bGrid.BraillePatterns(),
		c.seriesStyle)
}

func (c *TimelineChart) shadeColumns(left, right int) {
	c.shadeColumnsWith(left, right, c.brushColor)
}

// shadeColumnsWith sets the background of the screen columns [left, right]
// that fall inside the plot.
func (c *TimelineChart) shadeColumnsWith(left, right int, color lipgloss.Color) {
	plotLeft := int(c.PlotLeft())
	from := max(left, plotLeft)
	to := min(right, plotLeft+c.GraphWidth()-1)

	for x := from; x <= to; x++ {
		for y := 0; y < c.GraphHeight(); y++ {
			p := canvas.Point{X: x - c.offsetX, Y: y}
			style := lipgloss.NewStyle()
			if s := c.Canvas.GetCellStyle(p); s != nil {
				style = *s
			}
			c.Canvas.SetCellStyle(p, style.Background(color))
		}
	}
}

func (c *TimelineChart) drawHandles() {
	left, right := c.handleColumns()
	plotLeft := int(c.PlotLeft())
	plotRight := plotLeft + c.GraphWidth() - 1

	for _, x := range []int{left, right} {
		if x < plotLeft || x > plotRight {
			continue
		}
		for y := 0; y < c.GraphHeight(); y++ {
			c.Canvas.SetRuneWithStyle(
				canvas.Point{X: x - c.offsetX, Y: y}, '┃', c.handleStyle)
		}
	}
}

// formatXLabel picks a time layout for the visible span.
func (c *TimelineChart) formatXLabel(_ int, v float64) string {
	t := time.UnixMilli(int64(v)).Local()
	switch span := c.visible.Duration(); {
	case span > 2*24*time.Hour:
		return t.Format("01-02")
	case span > 2*time.Minute:
		return t.Format("15:04")
	default:
		return t.Format("15:04:05")
	}
}

func formatYLabel(_ int, v float64) string {
	return formatValue(v)
}
