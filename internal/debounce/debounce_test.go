package debounce_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"

	"github.com/wandb/wandb/timeline/internal/debounce"
	"github.com/wandb/wandb/timeline/internal/observability"
)

func TestDebouncer_RateLimits(t *testing.T) {
	logger := observability.NewNoOpLogger()
	d := debounce.NewDebouncer(rate.Every(time.Hour), 1, logger)

	count := 0
	d.SetNeedsDebounce()
	d.Debounce(func() { count++ })
	d.SetNeedsDebounce()
	d.Debounce(func() { count++ })

	assert.Equal(t, 1, count)
	assert.True(t, d.NeedsFlush())

	d.Flush(func() { count++ })
	assert.Equal(t, 2, count)
	assert.False(t, d.NeedsFlush())
}

func TestDebouncer_NothingPending(t *testing.T) {
	d := debounce.NewDebouncer(rate.Inf, 1, observability.NewNoOpLogger())

	called := false
	d.Debounce(func() { called = true })
	d.Flush(func() { called = true })

	assert.False(t, called)
}

func TestDebouncer_Stop(t *testing.T) {
	d := debounce.NewDebouncer(rate.Inf, 1, observability.NewNoOpLogger())
	d.Stop()

	called := false
	d.SetNeedsDebounce()
	d.Flush(func() { called = true })

	assert.False(t, called)
	assert.False(t, d.NeedsFlush())
}

func TestNewFrameDebouncer(t *testing.T) {
	assert.Nil(t, debounce.NewFrameDebouncer(0, observability.NewNoOpLogger()))

	var d *debounce.Debouncer
	d.SetNeedsDebounce()
	d.Debounce(func() { t.Fatal("nil debouncer must not call") })
	assert.False(t, d.NeedsFlush())
}
