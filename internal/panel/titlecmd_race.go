//go:build race

package panel

import tea "github.com/charmbracelet/bubbletea"

func windowTitleCmd() tea.Cmd {
	return nil
}
