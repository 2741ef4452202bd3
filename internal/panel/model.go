package panel

import (
	"fmt"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	zone "github.com/lrstanley/bubblezone"

	"github.com/wandb/wandb/timeline/internal/observability"
	"github.com/wandb/wandb/timeline/internal/timerange"
)

// presetCustom marks a typed duration as the active window.
const presetCustom = -2

// feedbackFlushMsg asks the model to send pending drag feedback.
type feedbackFlushMsg struct{}

// DashboardChangedMsg tells the model the dashboard range was changed from
// outside the program, so the view is redrawn.
type DashboardChangedMsg struct {
	Range timerange.TimeRange
}

type ModelParams struct {
	Session *Session
	Config  *ConfigManager
	Points  []Point
	Logger  *observability.CoreLogger
}

// Model is the terminal rendering of one timeline panel.
//
// Implements tea.Model.
type Model struct {
	// Serialize access to Update / View. View redraws the chart canvas, so
	// both take the exclusive lock.
	stateMu sync.Mutex

	config  *ConfigManager
	session *Session
	keyMap  map[string]func(*Model, tea.KeyMsg) tea.Cmd

	width, height int

	// chart is the live renderer; it is recreated on every resize.
	chart  *TimelineChart
	points []Point

	zones      *zone.Manager
	zonePrefix string

	help  *helpOverlay
	input *rangeInput

	// activePreset is the index into window.Presets of the last applied
	// preset, presetCustom, or -1.
	activePreset int

	// feedbackScheduled is set while a feedbackFlushMsg is in flight.
	feedbackScheduled bool

	status    string
	statusErr bool

	logger *observability.CoreLogger
}

func NewModel(params ModelParams) *Model {
	if params.Session == nil {
		panic("panel: Session is nil")
	}
	if params.Config == nil {
		params.Config = NewConfigManager(nil, "", params.Logger)
	}
	if params.Logger == nil {
		params.Logger = params.Session.Logger()
	}

	zones := zone.New()
	m := &Model{
		config:       params.Config,
		session:      params.Session,
		keyMap:       buildKeyMap(),
		points:       params.Points,
		zones:        zones,
		zonePrefix:   zones.NewPrefix(),
		help:         newHelpOverlay(),
		input:        newRangeInput(),
		activePreset: -1,
		logger:       params.Logger,
	}

	preset := params.Config.DefaultPreset()
	if err := m.session.ApplyStartupPreset(preset); err != nil {
		m.logger.Warn("model: default preset rejected", "preset", preset, "error", err)
	} else {
		m.markPreset(preset)
	}

	return m
}

// Init implements tea.Model.Init.
func (m *Model) Init() tea.Cmd {
	m.logger.Debug("model: Init called")
	return windowTitleCmd()
}

// Update implements tea.Model.Update.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	defer m.logger.Reraise("in", "Update")
	m.stateMu.Lock()
	defer m.stateMu.Unlock()

	if handled, cmd := m.handleHelp(msg); handled {
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, m.handleKeyMsg(msg)

	case tea.MouseMsg:
		return m, m.handleMouseMsg(msg)

	case tea.WindowSizeMsg:
		m.handleWindowResize(msg.Width, msg.Height)
		return m, nil

	case feedbackFlushMsg:
		m.feedbackScheduled = false
		m.session.Drag.FlushFeedback()
		return m, nil

	case DashboardChangedMsg:
		m.logger.Debug("model: dashboard range changed", "range", msg.Range.String())
		return m, nil
	}

	if m.input.Active() {
		return m, m.input.Update(msg)
	}
	return m, nil
}

// handleHelp toggles the help screen and routes input to it while shown.
func (m *Model) handleHelp(msg tea.Msg) (bool, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok && !m.input.Active() {
		switch km.String() {
		case "h", "?":
			if m.help.Active() {
				m.help.Close()
			} else {
				m.help.Open(m.helpState())
			}
			return true, nil
		}
	}

	if m.help.Active() {
		switch msg.(type) {
		case tea.KeyMsg, tea.MouseMsg:
			return true, m.help.Update(msg)
		}
	}
	return false, nil
}

func (m *Model) helpState() helpState {
	return helpState{
		activePreset: m.activePreset,
		reposition:   m.session.Window.Reposition(),
		dragFPS:      m.config.DragFPS(),
	}
}

// handleWindowResize recreates the renderer at the new size.
//
// The old chart is detached first so nothing converts coordinates with
// stale geometry in between.
func (m *Model) handleWindowResize(width, height int) {
	m.width, m.height = width, height
	m.help.SetSize(width, height)

	m.session.Handle.Teardown()
	if m.chart != nil && m.chart.Selecting() {
		m.chart.CancelSelect()
	}

	chartWidth, chartHeight := m.chartSize()
	_, brush, visible := m.brushAndWindow()
	brushColor, handleColor, seriesColor := m.config.Colors()

	m.chart = NewTimelineChart(
		chartWidth, chartHeight,
		ChartLeft, HeaderHeight+ControlRowHeight,
		m.points,
		ChartColors{Brush: brushColor, Handle: handleColor, Series: seriesColor},
	)
	m.chart.SetVisible(visible)
	m.chart.SetBrush(brush)
	m.chart.OnSelect(m.session.Handle.NotifySelect)

	m.session.Handle.Ready(m.chart)
	m.logger.Debug("model: renderer ready",
		"width", chartWidth, "height", chartHeight)
}

// chartSize returns the chart dimensions for the current window.
func (m *Model) chartSize() (int, int) {
	h := m.height - HeaderHeight - ControlRowHeight - InputRowHeight - StatusBarHeight
	return max(m.width, MinChartWidth), max(h, MinChartHeight)
}

// brushAndWindow returns the dashboard range, the range drawn as the
// brush and the visible range.
func (m *Model) brushAndWindow() (dashboard, brush, visible timerange.TimeRange) {
	return m.session.Model.Snapshot()
}

// View implements tea.Model.View.
func (m *Model) View() string {
	defer m.logger.Reraise("in", "View")
	m.stateMu.Lock()
	defer m.stateMu.Unlock()

	if m.width == 0 || m.height == 0 || m.chart == nil {
		return "Loading..."
	}

	if m.help.Active() {
		content := lipgloss.JoinVertical(lipgloss.Left, m.help.View(), m.renderStatusBar())
		return lipgloss.Place(m.width, m.height, lipgloss.Left, lipgloss.Top, content)
	}

	_, brush, visible := m.brushAndWindow()
	m.chart.SetVisible(visible)
	m.chart.SetBrush(brush)
	m.chart.Draw()

	view := lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(visible),
		m.renderControls(),
		m.chart.View(),
		m.renderInputRow(),
		m.renderStatusBar(),
	)
	return m.zones.Scan(view)
}

func (m *Model) renderHeader(visible timerange.TimeRange) string {
	title := headerStyle.Render("Timeline")
	window := fmt.Sprintf("  %s → %s",
		formatTimestamp(visible.FromTime()), formatTimestamp(visible.ToTime()))
	return lipgloss.NewStyle().MaxWidth(m.width).Render(title + window)
}

func (m *Model) renderInputRow() string {
	if m.input.Active() {
		return m.input.View(m.width)
	}
	if m.status == "" {
		return ""
	}
	style := labelStyle
	if m.statusErr {
		style = errorStyle
	}
	return style.MaxWidth(m.width).Render(m.status)
}

// renderStatusBar shows the brush, its span and how long ago it ended.
func (m *Model) renderStatusBar() string {
	brush := m.session.Drag.Preview()

	parts := []string{
		fmt.Sprintf("brush %s → %s",
			formatTimestamp(brush.FromTime()), formatTimestamp(brush.ToTime())),
		humanSpan(brush),
		"ended " + humanize.Time(brush.ToTime()),
	}
	if _, ok := m.session.Drag.Dragging(); ok {
		parts = append(parts, "dragging")
	}
	if m.session.Window.Reposition() {
		parts = append(parts, "reposition on")
	}

	text := strings.Join(parts, " • ")
	return statusBarStyle.Width(m.width).MaxWidth(m.width).Render(text)
}

func (m *Model) setStatus(text string, isErr bool) {
	m.status = text
	m.statusErr = isErr
}

// Close releases the zone manager and detaches the session.
func (m *Model) Close() {
	m.stateMu.Lock()
	defer m.stateMu.Unlock()
	m.session.Close()
	m.zones.Close()
}

func formatTimestamp(t time.Time) string {
	return t.Local().Format("2006-01-02 15:04:05")
}

// humanSpan renders a range's length, e.g. "3 days".
func humanSpan(r timerange.TimeRange) string {
	if !r.Valid() {
		return "empty"
	}
	from := r.FromTime()
	return strings.TrimSpace(humanize.RelTime(from, from.Add(r.Duration()), "", ""))
}
