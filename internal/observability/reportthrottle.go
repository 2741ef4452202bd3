package observability

import (
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru"
)

// maxThrottleKey bounds the prefix of a message used as its throttle key.
const maxThrottleKey = 256

// ReportThrottle drops repeated Sentry reports.
//
// A drag that keeps running into a rejected range raises the same error on
// every frame. Only the first report per message in each window is sent; the
// next one that goes through carries the number of copies dropped in between.
//
// A nil *ReportThrottle admits everything.
type ReportThrottle struct {
	mu     sync.Mutex
	seen   *lru.Cache
	window time.Duration
	now    func() time.Time
}

type throttleEntry struct {
	sentAt  time.Time
	dropped int
}

// NewReportThrottle remembers up to size distinct messages. A nil now uses
// the wall clock.
func NewReportThrottle(
	size int,
	window time.Duration,
	now func() time.Time,
) (*ReportThrottle, error) {
	seen, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	if now == nil {
		now = time.Now
	}
	return &ReportThrottle{seen: seen, window: window, now: now}, nil
}

// Admit reports whether msg may be sent, and how many copies of it were
// dropped since it was last sent.
func (t *ReportThrottle) Admit(msg string) (ok bool, dropped int) {
	if t == nil {
		return true, 0
	}
	if len(msg) > maxThrottleKey {
		msg = msg[:maxThrottleKey]
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	if v, found := t.seen.Get(msg); found {
		e := v.(*throttleEntry)
		if now.Sub(e.sentAt) < t.window {
			e.dropped++
			return false, 0
		}
		dropped = e.dropped
	}

	t.seen.Add(msg, &throttleEntry{sentAt: now})
	return true, dropped
}
