package timerange

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// absoluteLayouts are tried in order after RFC 3339.
var absoluteLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseTimestamp parses free text entered in the absolute range fields.
//
// Accepted forms:
//   - RFC 3339, e.g. "2024-01-01T00:00:00Z" or with an offset
//   - "2006-01-02T15:04:05", "2006-01-02 15:04:05", "2006-01-02 15:04",
//     "2006-01-02" (interpreted in loc)
//   - epoch milliseconds, e.g. "1704067200000"
//   - "now" and "now-<duration>" / "now+<duration>", e.g. "now-6h"
func ParseTimestamp(text string, now time.Time, loc *time.Location) (int64, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return 0, fmt.Errorf("%w: empty timestamp", ErrDurationParse)
	}
	if loc == nil {
		loc = time.UTC
	}

	if strings.HasPrefix(s, "now") {
		return parseRelative(s, now)
	}

	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return ms, nil
	}

	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.UnixMilli(), nil
	}
	for _, layout := range absoluteLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t.UnixMilli(), nil
		}
	}

	return 0, fmt.Errorf("%w: timestamp %q", ErrDurationParse, text)
}

// parseRelative handles "now", "now-6h" and "now+1d".
func parseRelative(s string, now time.Time) (int64, error) {
	rest := strings.TrimSpace(strings.TrimPrefix(s, "now"))
	if rest == "" {
		return now.UnixMilli(), nil
	}

	sign := int64(1)
	switch rest[0] {
	case '-':
		sign = -1
	case '+':
	default:
		return 0, fmt.Errorf("%w: timestamp %q", ErrDurationParse, s)
	}

	ms, err := ParseDuration(rest[1:])
	if err != nil {
		return 0, err
	}
	return now.UnixMilli() + sign*ms, nil
}

// ParseRange parses both ends of an absolute range and validates the
// ordering.
func ParseRange(fromText, toText string, now time.Time, loc *time.Location) (TimeRange, error) {
	from, err := ParseTimestamp(fromText, now, loc)
	if err != nil {
		return TimeRange{}, fmt.Errorf("from: %w", err)
	}
	to, err := ParseTimestamp(toText, now, loc)
	if err != nil {
		return TimeRange{}, fmt.Errorf("to: %w", err)
	}
	r := New(from, to)
	if err := r.Validate(); err != nil {
		return TimeRange{}, err
	}
	return r, nil
}
