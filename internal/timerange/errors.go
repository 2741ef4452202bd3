package timerange

import "errors"

var (
	// ErrInvalidRange is returned for candidate ranges with From >= To.
	ErrInvalidRange = errors.New("timerange: invalid range")

	// ErrDurationParse is returned for malformed duration tokens and
	// unparseable absolute timestamps.
	ErrDurationParse = errors.New("timerange: cannot parse")

	// ErrMissingBridge is returned when a geometry query or drag is
	// attempted before the renderer is ready.
	ErrMissingBridge = errors.New("timerange: renderer not ready")
)
