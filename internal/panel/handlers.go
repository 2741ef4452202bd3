package panel

import (
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/wandb/wandb/timeline/internal/drag"
	"github.com/wandb/wandb/timeline/internal/window"
)

// Zoom factors for one key press or wheel notch.
const (
	zoomInFactor   = 0.5
	zoomOutFactor  = 2.0
	wheelInFactor  = 0.8
	wheelOutFactor = 1.25
)

// handleKeyMsg routes keys to the input row while it is open, otherwise
// through the key map.
func (m *Model) handleKeyMsg(msg tea.KeyMsg) tea.Cmd {
	if m.input.Active() {
		return m.handleInputKey(msg)
	}

	if handler, ok := m.keyMap[msg.String()]; ok {
		return handler(m, msg)
	}
	return nil
}

func (m *Model) handleInputKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		m.input.Close()
		return nil
	case tea.KeyTab, tea.KeyShiftTab:
		return m.input.ToggleFocus()
	case tea.KeyEnter:
		m.submitInput()
		return nil
	case tea.KeyCtrlC:
		return tea.Quit
	}
	return m.input.Update(msg)
}

// submitInput applies the typed values; on failure the input stays open
// with the error shown.
func (m *Model) submitInput() {
	from, to := m.input.Values()

	var err error
	switch m.input.Mode() {
	case inputCustomDuration:
		err = m.session.Window.ApplyPreset(from)
		if err == nil {
			m.markPreset(from)
			m.setStatus(fmt.Sprintf("window widened by %s", from), false)
		}
	case inputAbsoluteWindow:
		err = m.session.Window.ApplyAbsoluteRange(from, to)
		if err == nil {
			m.activePreset = -1
			m.setStatus("showing absolute range", false)
		}
	case inputAbsoluteSelect:
		err = m.session.Window.SelectAbsoluteRange(from, to)
		if err == nil {
			m.setStatus("selection set", false)
		}
	}

	if err != nil {
		m.input.SetError(err)
		return
	}
	m.input.Close()
}

func (m *Model) handleQuit(msg tea.KeyMsg) tea.Cmd {
	return tea.Quit
}

// handleCancel aborts a drag, a native selection, or clears the status.
func (m *Model) handleCancel(msg tea.KeyMsg) tea.Cmd {
	switch {
	case m.session.Drag.Cancel():
		m.setStatus("drag cancelled", false)
	case m.chart != nil && m.chart.CancelSelect():
		m.setStatus("selection cancelled", false)
	default:
		m.setStatus("", false)
	}
	return nil
}

func (m *Model) handlePresetKey(msg tea.KeyMsg) tea.Cmd {
	i := int(msg.Runes[0] - '1')
	m.applyPreset(i)
	return nil
}

func (m *Model) applyPreset(i int) {
	if i < 0 || i >= len(window.Presets) {
		return
	}
	p := window.Presets[i]
	if err := m.session.Window.ApplyPreset(p.Value); err != nil {
		m.setStatus(err.Error(), true)
		return
	}
	m.activePreset = i
	m.setStatus(p.Label, false)
}

// markPreset highlights the preset button matching token.
func (m *Model) markPreset(token string) {
	if p, ok := window.LookupPreset(token); ok {
		for i := range window.Presets {
			if window.Presets[i] == p {
				m.activePreset = i
				return
			}
		}
	}
	m.activePreset = presetCustom
}

func (m *Model) handleEnterCustom(msg tea.KeyMsg) tea.Cmd {
	return m.input.Open(inputCustomDuration, "", "")
}

func (m *Model) handleEnterAbsolute(msg tea.KeyMsg) tea.Cmd {
	from, to := m.session.Window.AbsoluteDefaults()
	return m.input.Open(inputAbsoluteWindow, from, to)
}

func (m *Model) handleEnterSelect(msg tea.KeyMsg) tea.Cmd {
	brush := m.session.Model.TimelineRange()
	loc := m.config.Location()
	return m.input.Open(inputAbsoluteSelect,
		brush.FromTime().In(loc).Format(time.RFC3339),
		brush.ToTime().In(loc).Format(time.RFC3339))
}

func (m *Model) handleToggleReposition(msg tea.KeyMsg) tea.Cmd {
	on := !m.session.Window.Reposition()
	m.session.Window.SetReposition(on)
	if err := m.config.SetRepositionBrush(on); err != nil {
		m.logger.Error(fmt.Sprintf("model: cannot save config: %v", err))
	}
	return nil
}

func (m *Model) handleZoomIn(msg tea.KeyMsg) tea.Cmd {
	m.zoom(zoomInFactor)
	return nil
}

func (m *Model) handleZoomOut(msg tea.KeyMsg) tea.Cmd {
	m.zoom(zoomOutFactor)
	return nil
}

func (m *Model) zoom(factor float64) {
	if err := m.session.Window.Zoom(factor); err != nil {
		m.setStatus(err.Error(), true)
		return
	}
	m.activePreset = -1
}

func (m *Model) handlePanLeft(msg tea.KeyMsg) tea.Cmd {
	m.pan(window.PanLeft)
	return nil
}

func (m *Model) handlePanRight(msg tea.KeyMsg) tea.Cmd {
	m.pan(window.PanRight)
	return nil
}

func (m *Model) pan(dir window.Direction) {
	if err := m.session.Window.Pan(dir); err != nil {
		m.setStatus(err.Error(), true)
		return
	}
	m.activePreset = -1
}

func (m *Model) handleResync(msg tea.KeyMsg) tea.Cmd {
	m.session.Resync()
	m.setStatus("selection reset to dashboard range", false)
	return nil
}

// handleMouseMsg drives the drag controller and the chart's native
// selection from raw mouse events.
func (m *Model) handleMouseMsg(msg tea.MouseMsg) tea.Cmd {
	if m.chart == nil || m.input.Active() {
		return nil
	}

	switch msg.Action {
	case tea.MouseActionPress:
		return m.handleMousePress(msg)

	case tea.MouseActionMotion:
		if _, ok := m.session.Drag.Dragging(); ok {
			if _, err := m.session.Drag.PointerMove(float64(msg.X)); err != nil {
				m.logger.Debug("model: drag move failed", "error", err)
			}
			return m.scheduleFeedbackFlush()
		}
		m.chart.UpdateSelect(msg.X)

	case tea.MouseActionRelease:
		if _, ok := m.session.Drag.Dragging(); ok {
			if err := m.session.Drag.PointerUp(float64(msg.X)); err != nil {
				m.setStatus(err.Error(), true)
			}
			return nil
		}
		m.chart.EndSelect(msg.X)
	}
	return nil
}

func (m *Model) handleMousePress(msg tea.MouseMsg) tea.Cmd {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if m.chart.Hit(msg.X, msg.Y) != HitNone {
			m.zoom(wheelInFactor)
		}
		return nil
	case tea.MouseButtonWheelDown:
		if m.chart.Hit(msg.X, msg.Y) != HitNone {
			m.zoom(wheelOutFactor)
		}
		return nil
	case tea.MouseButtonLeft:
	default:
		return nil
	}

	if id, ok := m.buttonAt(msg); ok {
		return m.handleButton(id)
	}

	var kind drag.Kind
	switch m.chart.Hit(msg.X, msg.Y) {
	case HitLeftHandle:
		kind = drag.ResizeLeft
	case HitRightHandle:
		kind = drag.ResizeRight
	case HitBrush:
		kind = drag.Move
	case HitPlot:
		m.chart.BeginSelect(msg.X)
		return nil
	default:
		return nil
	}

	err := m.session.Drag.PointerDown(kind, float64(msg.X))
	if err != nil && !errors.Is(err, drag.ErrDragActive) {
		m.setStatus(err.Error(), true)
	}
	return nil
}

// scheduleFeedbackFlush makes sure rate-limited drag feedback is sent on
// the next frame.
func (m *Model) scheduleFeedbackFlush() tea.Cmd {
	if m.feedbackScheduled {
		return nil
	}
	m.feedbackScheduled = true

	fps := max(m.config.DragFPS(), MinDragFPS)
	return tea.Tick(time.Second/time.Duration(fps), func(time.Time) tea.Msg {
		return feedbackFlushMsg{}
	})
}

func (m *Model) handleButton(id string) tea.Cmd {
	for i := range window.Presets {
		if id == presetButtonID(i) {
			m.applyPreset(i)
			return nil
		}
	}

	switch id {
	case buttonCustom:
		return m.handleEnterCustom(tea.KeyMsg{})
	case buttonAbsolute:
		return m.handleEnterAbsolute(tea.KeyMsg{})
	case buttonPanLeft:
		m.pan(window.PanLeft)
	case buttonPanRight:
		m.pan(window.PanRight)
	case buttonZoomIn:
		m.zoom(zoomInFactor)
	case buttonZoomOut:
		m.zoom(zoomOutFactor)
	case buttonResync:
		m.session.Resync()
	}
	return nil
}
