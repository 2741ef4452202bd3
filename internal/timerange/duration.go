package timerange

import (
	"fmt"
	"strings"
	"time"

	"github.com/prometheus/common/model"
)

// ParseDurationFunc parses a duration token into milliseconds.
//
// The window applier takes one of these so callers can substitute the
// dashboard's own duration grammar.
type ParseDurationFunc func(token string) (int64, error)

// ParseDurationToken parses a duration such as "24h", "7d", "2w", "1y" or a
// compound "1d12h".
//
// The grammar is the Prometheus one: units y, w, d, h, m, s and ms, largest
// first, integer amounts only. A bare "0" is accepted.
func ParseDurationToken(token string) (model.Duration, error) {
	t := strings.TrimSpace(token)
	if t == "" {
		return 0, fmt.Errorf("%w: empty duration", ErrDurationParse)
	}
	d, err := model.ParseDuration(t)
	if err != nil {
		return 0, fmt.Errorf("%w: duration %q: %v", ErrDurationParse, token, err)
	}
	return d, nil
}

// ToMilliseconds converts a parsed duration to whole milliseconds.
func ToMilliseconds(d model.Duration) int64 {
	return time.Duration(d).Milliseconds()
}

// ParseDuration is the default ParseDurationFunc.
func ParseDuration(token string) (int64, error) {
	d, err := ParseDurationToken(token)
	if err != nil {
		return 0, err
	}
	return ToMilliseconds(d), nil
}
