// Test<API> provides a controlled interface for testing internal model state.
// These methods are only exposed for tests in the panel_test package.
package panel

// TestChart returns the live renderer.
func (m *Model) TestChart() *TimelineChart {
	return m.chart
}

// TestActivePreset returns the highlighted preset index.
func (m *Model) TestActivePreset() int {
	return m.activePreset
}

// TestInputActive reports whether the input row is open.
func (m *Model) TestInputActive() bool {
	return m.input.Active()
}

// TestInputError returns the error shown in the input row.
func (m *Model) TestInputError() string {
	return m.input.err
}

// TestSetInputValues replaces the contents of the input fields.
func (m *Model) TestSetInputValues(from, to string) {
	m.input.from.SetValue(from)
	m.input.to.SetValue(to)
}

// TestInputValues returns the contents of the input fields.
func (m *Model) TestInputValues() (string, string) {
	return m.input.Values()
}

// TestStatus returns the status line and whether it is an error.
func (m *Model) TestStatus() (string, bool) {
	return m.status, m.statusErr
}

// TestHelpActive reports whether the help screen is shown.
func (m *Model) TestHelpActive() bool {
	return m.help.Active()
}

// TestPresetCustom is the activePreset value for a typed duration.
const TestPresetCustom = presetCustom

// TestSession returns the panel session.
func (m *Model) TestSession() *Session {
	return m.session
}
