package panel

import "github.com/charmbracelet/lipgloss"

// Layout constants.
const (
	HeaderHeight     = 1
	ControlRowHeight = 1
	InputRowHeight   = 1
	StatusBarHeight  = 1

	MinChartWidth  = 20
	MinChartHeight = 5

	// ChartLeft is the column where the chart canvas starts.
	ChartLeft = 0
)

// Default colors. Users can override brush and series colors in the config.
const (
	DefaultBrushColor  = "#3B4252"
	DefaultHandleColor = "#FCBC32"
	DefaultSeriesColor = "#E281FE"
	DefaultSelectColor = "#5E81AC"
)

var (
	colorText    = lipgloss.AdaptiveColor{Light: "#111111", Dark: "#EEEEEE"}
	colorSubtle  = lipgloss.AdaptiveColor{Light: "#8A8A8A", Dark: "#6C6C6C"}
	colorHeading = lipgloss.Color(DefaultHandleColor)
	colorError   = lipgloss.Color("#BF616A")
)

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(colorHeading).
			Bold(true)

	axisStyle  = lipgloss.NewStyle().Foreground(colorSubtle)
	labelStyle = lipgloss.NewStyle().Foreground(colorSubtle)

	buttonStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Padding(0, 1)

	activeButtonStyle = buttonStyle.
				Foreground(colorHeading).
				Bold(true)

	inputLabelStyle = lipgloss.NewStyle().
			Foreground(colorHeading).
			Bold(true)

	errorStyle = lipgloss.NewStyle().Foreground(colorError)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#000000")).
			Background(colorHeading).
			Padding(0, 1)

	helpKeyStyle = lipgloss.NewStyle().
			Foreground(colorHeading).
			Bold(true)

	helpDescStyle = lipgloss.NewStyle().Foreground(colorText)

	helpSectionStyle = lipgloss.NewStyle().
				Foreground(colorHeading).
				Bold(true).
				MarginTop(1)

	helpContentStyle = lipgloss.NewStyle().Padding(1, 2)
)
