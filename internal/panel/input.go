package panel

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// inputMode is what the input row is collecting.
type inputMode int

const (
	inputNone inputMode = iota
	inputCustomDuration
	inputAbsoluteWindow
	inputAbsoluteSelect
)

func (m inputMode) label() string {
	switch m {
	case inputCustomDuration:
		return "Custom window"
	case inputAbsoluteWindow:
		return "Show range"
	case inputAbsoluteSelect:
		return "Select range"
	default:
		return ""
	}
}

// rangeInput is the text entry row: one duration field, or a from/to pair.
type rangeInput struct {
	mode    inputMode
	from    textinput.Model
	to      textinput.Model
	focusTo bool
	err     string
}

func newRangeInput() *rangeInput {
	from := textinput.New()
	from.Prompt = ""
	from.CharLimit = 64
	from.Width = 26

	to := textinput.New()
	to.Prompt = ""
	to.CharLimit = 64
	to.Width = 26

	return &rangeInput{from: from, to: to}
}

func (in *rangeInput) Active() bool {
	return in.mode != inputNone
}

func (in *rangeInput) Mode() inputMode {
	return in.mode
}

// Open starts collecting input. For the duration mode only fromText is used.
func (in *rangeInput) Open(mode inputMode, fromText, toText string) tea.Cmd {
	in.mode = mode
	in.err = ""
	in.focusTo = false

	in.from.SetValue(fromText)
	in.from.CursorEnd()
	in.to.SetValue(toText)
	in.to.CursorEnd()

	if mode == inputCustomDuration {
		in.from.Placeholder = "e.g. 12h, 1d12h, 2w"
	} else {
		in.from.Placeholder = "from"
		in.to.Placeholder = "to"
	}

	in.to.Blur()
	return in.from.Focus()
}

func (in *rangeInput) Close() {
	in.mode = inputNone
	in.err = ""
	in.from.Blur()
	in.to.Blur()
}

// SetError shows err next to the fields; the input stays open.
func (in *rangeInput) SetError(err error) {
	if err == nil {
		in.err = ""
		return
	}
	in.err = err.Error()
}

// Values returns the current field contents.
func (in *rangeInput) Values() (from, to string) {
	return in.from.Value(), in.to.Value()
}

// ToggleFocus switches between the from and to fields.
func (in *rangeInput) ToggleFocus() tea.Cmd {
	if in.mode == inputCustomDuration {
		return nil
	}
	in.focusTo = !in.focusTo
	if in.focusTo {
		in.from.Blur()
		return in.to.Focus()
	}
	in.to.Blur()
	return in.from.Focus()
}

// Update forwards editing keys to the focused field.
func (in *rangeInput) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if in.focusTo {
		in.to, cmd = in.to.Update(msg)
	} else {
		in.from, cmd = in.from.Update(msg)
	}
	return cmd
}

func (in *rangeInput) View(width int) string {
	if !in.Active() {
		return ""
	}

	parts := []string{inputLabelStyle.Render(in.mode.label() + ": ")}
	if in.mode == inputCustomDuration {
		parts = append(parts, in.from.View())
	} else {
		parts = append(parts, in.from.View(), " → ", in.to.View())
	}
	if in.err != "" {
		parts = append(parts, "  ", errorStyle.Render(in.err))
	}

	return lipgloss.NewStyle().MaxWidth(width).Render(
		lipgloss.JoinHorizontal(lipgloss.Top, parts...))
}
