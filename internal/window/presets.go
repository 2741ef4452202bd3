package window

import "strings"

// Preset is an entry of the context window selector.
type Preset struct {
	Label string
	Value string
}

// SameAsTimepicker is the preset that shows exactly the dashboard range.
const SameAsTimepicker = "0h"

// Presets are offered in this order; keys 1 to 5 select them.
var Presets = []Preset{
	{Label: "Same as timepicker", Value: SameAsTimepicker},
	{Label: "Last 24 hours", Value: "24h"},
	{Label: "Last 1 week", Value: "7d"},
	{Label: "Last 2 weeks", Value: "14d"},
	{Label: "Last 30 days", Value: "30d"},
}

// LookupPreset finds a preset by label or value, ignoring case.
func LookupPreset(token string) (Preset, bool) {
	t := strings.TrimSpace(token)
	for _, p := range Presets {
		if strings.EqualFold(p.Label, t) || strings.EqualFold(p.Value, t) {
			return p, true
		}
	}
	return Preset{}, false
}

// presetValue maps preset labels to their duration; anything else is
// returned unchanged as free-form duration text.
func presetValue(token string) string {
	if p, ok := LookupPreset(token); ok {
		return p.Value
	}
	return strings.TrimSpace(token)
}
