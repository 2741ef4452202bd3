// Package timerange defines the millisecond time intervals shared by the
// range model, the drag controller and the window applier.
package timerange

import (
	"fmt"
	"time"
)

// MillisPerDay is the length of a day in epoch milliseconds.
const MillisPerDay int64 = 24 * 60 * 60 * 1000

// TimeRange is an interval of milliseconds since the Unix epoch.
//
// A range is only accepted into a model when From < To.
type TimeRange struct {
	From int64
	To   int64
}

// New returns a TimeRange from two epoch-millisecond values.
func New(from, to int64) TimeRange {
	return TimeRange{From: from, To: to}
}

// Valid reports whether the range satisfies From < To.
func (r TimeRange) Valid() bool {
	return r.From < r.To
}

// Validate returns ErrInvalidRange wrapped with the offending bounds
// if the range is empty or inverted.
func (r TimeRange) Validate() error {
	if r.Valid() {
		return nil
	}
	return fmt.Errorf("%w: from=%d to=%d", ErrInvalidRange, r.From, r.To)
}

// Span returns To - From in milliseconds.
func (r TimeRange) Span() int64 {
	return r.To - r.From
}

// Mid returns the midpoint of the range.
func (r TimeRange) Mid() float64 {
	return (float64(r.From) + float64(r.To)) / 2
}

// Shift returns the range moved by delta milliseconds.
func (r TimeRange) Shift(delta int64) TimeRange {
	return TimeRange{From: r.From + delta, To: r.To + delta}
}

// Contains reports whether other lies entirely inside r.
func (r TimeRange) Contains(other TimeRange) bool {
	return other.From >= r.From && other.To <= r.To
}

// Fraction returns the position of v inside r, 0 at From and 1 at To.
//
// Values outside r yield fractions outside [0, 1].
func (r TimeRange) Fraction(v int64) float64 {
	if r.Span() == 0 {
		return 0
	}
	return float64(v-r.From) / float64(r.Span())
}

// At returns the timestamp at fraction f of r, rounded to the millisecond.
func (r TimeRange) At(f float64) int64 {
	return r.From + roundMillis(f*float64(r.Span()))
}

// FromTime returns From as a time.Time.
func (r TimeRange) FromTime() time.Time {
	return time.UnixMilli(r.From).UTC()
}

// ToTime returns To as a time.Time.
func (r TimeRange) ToTime() time.Time {
	return time.UnixMilli(r.To).UTC()
}

// Duration returns the span as a time.Duration.
func (r TimeRange) Duration() time.Duration {
	return time.Duration(r.Span()) * time.Millisecond
}

func (r TimeRange) String() string {
	return fmt.Sprintf("[%s, %s]",
		r.FromTime().Format(time.RFC3339Nano),
		r.ToTime().Format(time.RFC3339Nano))
}

// roundMillis rounds half away from zero.
func roundMillis(v float64) int64 {
	if v < 0 {
		return -int64(-v + 0.5)
	}
	return int64(v + 0.5)
}

// RoundMillis converts a fractional millisecond value to the nearest
// whole millisecond.
func RoundMillis(v float64) int64 {
	return roundMillis(v)
}
