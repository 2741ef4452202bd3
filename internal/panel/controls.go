package panel

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wandb/wandb/timeline/internal/window"
)

// Control row button ids, prefixed by the model's zone prefix.
const (
	buttonPanLeft  = "pan-left"
	buttonPanRight = "pan-right"
	buttonZoomIn   = "zoom-in"
	buttonZoomOut  = "zoom-out"
	buttonResync   = "resync"
	buttonCustom   = "custom"
	buttonAbsolute = "absolute"
)

func presetButtonID(i int) string {
	return fmt.Sprintf("preset-%d", i)
}

// presetShortLabels are the control row captions of window.Presets.
var presetShortLabels = []string{"timepicker", "24h", "1w", "2w", "30d"}

type controlButton struct {
	id      string
	caption string
	active  bool
}

func (m *Model) controlButtons() []controlButton {
	buttons := make([]controlButton, 0, len(window.Presets)+7)
	for i := range window.Presets {
		buttons = append(buttons, controlButton{
			id:      presetButtonID(i),
			caption: presetShortLabels[i],
			active:  m.activePreset == i,
		})
	}
	buttons = append(buttons,
		controlButton{id: buttonCustom, caption: "custom…", active: m.activePreset == presetCustom},
		controlButton{id: buttonAbsolute, caption: "from/to…"},
		controlButton{id: buttonPanLeft, caption: "◀"},
		controlButton{id: buttonPanRight, caption: "▶"},
		controlButton{id: buttonZoomOut, caption: "−"},
		controlButton{id: buttonZoomIn, caption: "+"},
		controlButton{id: buttonResync, caption: "reset"},
	)
	return buttons
}

// renderControls draws the control row with each button marked as a zone.
func (m *Model) renderControls() string {
	var parts []string
	for _, b := range m.controlButtons() {
		style := buttonStyle
		if b.active {
			style = activeButtonStyle
		}
		parts = append(parts, m.zones.Mark(m.zonePrefix+b.id, style.Render(b.caption)))
	}
	return lipgloss.NewStyle().MaxWidth(m.width).Render(strings.Join(parts, ""))
}

// buttonAt returns the id of the button under the pointer, if any.
func (m *Model) buttonAt(msg tea.MouseMsg) (string, bool) {
	for _, b := range m.controlButtons() {
		if m.zones.Get(m.zonePrefix + b.id).InBounds(msg) {
			return b.id, true
		}
	}
	return "", false
}
