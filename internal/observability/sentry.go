package observability

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/getsentry/sentry-go"
)

// SentryContext reports events to a Sentry hub, throttling messages that
// repeat.
//
// A nil *SentryContext is valid and drops everything.
type SentryContext struct {
	hub      *sentry.Hub
	throttle *ReportThrottle
}

// NewSentryContext wraps a hub with the default report throttle.
func NewSentryContext(hub *sentry.Hub) *SentryContext {
	throttle, err := NewReportThrottle(100, 5*time.Minute, nil)
	if err != nil {
		throttle = nil
	}
	return &SentryContext{hub: hub, throttle: throttle}
}

// NewSentryHub creates a hub for dsn. An empty dsn yields a nil context.
func NewSentryHub(dsn, release string) (*SentryContext, error) {
	if dsn == "" {
		return nil, nil
	}
	client, err := sentry.NewClient(sentry.ClientOptions{
		Dsn:              dsn,
		AttachStacktrace: true,
		Release:          release,
	})
	if err != nil {
		return nil, fmt.Errorf("observability: sentry client: %v", err)
	}
	return NewSentryContext(sentry.NewHub(client, sentry.NewScope())), nil
}

// CaptureException sends err with tags.
func (sc *SentryContext) CaptureException(err error, tags Tags) {
	if sc == nil || err == nil {
		return
	}
	ok, dropped := sc.throttle.Admit(err.Error())
	if !ok {
		return
	}
	sc.hub.WithScope(func(scope *sentry.Scope) {
		scope.SetTags(tags)
		setDropped(scope, dropped)
		sc.hub.CaptureException(err)
	})
}

// CaptureMessage sends msg with tags.
func (sc *SentryContext) CaptureMessage(msg string, tags Tags) {
	if sc == nil {
		return
	}
	ok, dropped := sc.throttle.Admit(msg)
	if !ok {
		return
	}
	sc.hub.WithScope(func(scope *sentry.Scope) {
		scope.SetTags(tags)
		setDropped(scope, dropped)
		sc.hub.CaptureMessage(msg)
	})
}

func setDropped(scope *sentry.Scope, dropped int) {
	if dropped > 0 {
		scope.SetTag("dropped_repeats", strconv.Itoa(dropped))
	}
}

// Reraise captures a recovered panic value, flushes and panics with it.
func (sc *SentryContext) Reraise(recovered any, tags Tags) {
	if sc != nil {
		err, ok := recovered.(error)
		if !ok {
			err = errors.New(fmt.Sprint(recovered))
		}
		sc.hub.WithScope(func(scope *sentry.Scope) {
			scope.SetTags(tags)
			sc.hub.CaptureException(err)
		})
		sc.hub.Flush(2 * time.Second)
	}
	panic(recovered)
}

// Flush waits for queued events to be sent.
func (sc *SentryContext) Flush(timeout time.Duration) {
	if sc == nil {
		return
	}
	sc.hub.Flush(timeout)
}
