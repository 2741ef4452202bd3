package panel

import (
	tea "github.com/charmbracelet/bubbletea"
)

// KeyBinding defines a key binding for a particular target type.
//
// If Handler is nil, the binding is shown in the help screen but is not
// dispatched through the key map.
type KeyBinding[T any] struct {
	Keys        []string
	Description string
	Handler     func(*T, tea.KeyMsg) tea.Cmd
}

// BindingCategory groups related key bindings for the help screen.
type BindingCategory[T any] struct {
	Name     string
	Bindings []KeyBinding[T]
}

// PanelKeyBindings returns the key bindings of the panel view.
func PanelKeyBindings() []BindingCategory[Model] {
	return []BindingCategory[Model]{
		{
			Name: "General",
			Bindings: []KeyBinding[Model]{
				{
					Keys:        []string{"h", "?"},
					Description: "Toggle this help screen",
				},
				{
					Keys:        []string{"q", "ctrl+c"},
					Description: "Quit",
					Handler:     (*Model).handleQuit,
				},
				{
					Keys:        []string{"esc"},
					Description: "Cancel drag, selection or input",
					Handler:     (*Model).handleCancel,
				},
			},
		},
		{
			Name: "Context window",
			Bindings: []KeyBinding[Model]{
				{
					Keys:        []string{"1", "2", "3", "4", "5"},
					Description: "Same as timepicker, 24h, 1w, 2w, 30d",
					Handler:     (*Model).handlePresetKey,
				},
				{
					Keys:        []string{"c"},
					Description: "Custom duration (e.g. 12h, 1d12h)",
					Handler:     (*Model).handleEnterCustom,
				},
				{
					Keys:        []string{"a"},
					Description: "Show an absolute range",
					Handler:     (*Model).handleEnterAbsolute,
				},
				{
					Keys:        []string{"p"},
					Description: "Toggle brush repositioning",
					Handler:     (*Model).handleToggleReposition,
				},
			},
		},
		{
			Name: "Navigation",
			Bindings: []KeyBinding[Model]{
				{
					Keys:        []string{"+", "="},
					Description: "Zoom in",
					Handler:     (*Model).handleZoomIn,
				},
				{
					Keys:        []string{"-", "_"},
					Description: "Zoom out",
					Handler:     (*Model).handleZoomOut,
				},
				{
					Keys:        []string{"left", "<"},
					Description: "Pan left",
					Handler:     (*Model).handlePanLeft,
				},
				{
					Keys:        []string{"right", ">"},
					Description: "Pan right",
					Handler:     (*Model).handlePanRight,
				},
			},
		},
		{
			Name: "Selection",
			Bindings: []KeyBinding[Model]{
				{
					Keys:        []string{"s"},
					Description: "Select an absolute range",
					Handler:     (*Model).handleEnterSelect,
				},
				{
					Keys:        []string{"r"},
					Description: "Reset selection to the dashboard range",
					Handler:     (*Model).handleResync,
				},
			},
		},
		{
			Name: "Mouse",
			Bindings: []KeyBinding[Model]{
				{
					Keys:        []string{"drag brush"},
					Description: "Move the selection",
				},
				{
					Keys:        []string{"drag edge"},
					Description: "Resize the selection",
				},
				{
					Keys:        []string{"drag plot"},
					Description: "Select a new range",
				},
				{
					Keys:        []string{"wheel"},
					Description: "Zoom the context window",
				},
			},
		},
	}
}

// buildKeyMap flattens the bindings into a key lookup table.
func buildKeyMap() map[string]func(*Model, tea.KeyMsg) tea.Cmd {
	keyMap := make(map[string]func(*Model, tea.KeyMsg) tea.Cmd)
	for _, category := range PanelKeyBindings() {
		for _, binding := range category.Bindings {
			if binding.Handler == nil {
				continue
			}
			for _, key := range binding.Keys {
				keyMap[key] = binding.Handler
			}
		}
	}
	return keyMap
}
