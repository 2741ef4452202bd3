package panel

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wandb/wandb/timeline/internal/window"
)

// helpState is the part of the panel state listed on the help screen.
type helpState struct {
	activePreset int
	reposition   bool
	dragFPS      int
}

// helpRow is one line of the help screen. A row without a description is
// a section title.
type helpRow struct {
	key, desc string
}

// helpOverlay is a scrollable list of the panel's keys and settings that
// replaces the chart while open.
type helpOverlay struct {
	viewport      viewport.Model
	open          bool
	width, height int
}

func newHelpOverlay() *helpOverlay {
	return &helpOverlay{viewport: viewport.New(80, 20)}
}

// Open shows the overlay, scrolled to the top, for the given state.
func (h *helpOverlay) Open(state helpState) {
	h.open = true
	h.viewport.SetContent(renderHelp(helpRows(state)))
	h.viewport.GotoTop()
}

func (h *helpOverlay) Close() {
	h.open = false
}

func (h *helpOverlay) Active() bool {
	return h.open
}

// SetSize leaves room for the status bar below the overlay.
func (h *helpOverlay) SetSize(width, height int) {
	h.width = width
	h.height = max(height-StatusBarHeight, 0)
	h.viewport.Width = width
	h.viewport.Height = max(h.height-helpContentStyle.GetVerticalPadding(), 0)
}

// Update scrolls the overlay. It returns tea.Quit for the quit keys.
func (h *helpOverlay) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "h", "?", "esc":
			h.Close()
			return nil
		case "q", "ctrl+c":
			return tea.Quit
		}
	case tea.MouseMsg:
	default:
		return nil
	}

	var cmd tea.Cmd
	h.viewport, cmd = h.viewport.Update(msg)
	return cmd
}

func (h *helpOverlay) View() string {
	if !h.open {
		return ""
	}
	return lipgloss.NewStyle().
		Width(h.width).
		Height(h.height).
		Render(helpContentStyle.Render(h.viewport.View()))
}

// helpRows lists the presets and settings first, then every key binding.
func helpRows(state helpState) []helpRow {
	rows := []helpRow{{key: "Presets"}}
	for i, p := range window.Presets {
		desc := p.Label
		if i == state.activePreset {
			desc += " (active)"
		}
		rows = append(rows, helpRow{key: fmt.Sprint(i + 1), desc: desc})
	}

	reposition := "off"
	if state.reposition {
		reposition = "on"
	}
	rows = append(rows,
		helpRow{key: "Settings"},
		helpRow{key: "reposition", desc: reposition},
		helpRow{key: "drag fps", desc: fmt.Sprint(state.dragFPS)},
	)

	for _, category := range PanelKeyBindings() {
		rows = append(rows, helpRow{key: category.Name})
		for _, b := range category.Bindings {
			rows = append(rows, helpRow{key: strings.Join(b.Keys, ", "), desc: b.Description})
		}
	}
	return rows
}

// renderHelp aligns descriptions on the widest key.
func renderHelp(rows []helpRow) string {
	keyWidth := 0
	for _, r := range rows {
		if r.desc != "" {
			keyWidth = max(keyWidth, lipgloss.Width(r.key))
		}
	}
	keyStyle := helpKeyStyle.Width(keyWidth + 2)

	lines := []string{headerStyle.Render("Timeline panel")}
	for _, r := range rows {
		if r.desc == "" {
			lines = append(lines, helpSectionStyle.Render(r.key))
			continue
		}
		lines = append(lines, keyStyle.Render(r.key)+helpDescStyle.Render(r.desc))
	}
	return strings.Join(lines, "\n")
}
