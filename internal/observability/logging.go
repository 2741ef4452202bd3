package observability

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"runtime/debug"
	"sort"
)

// Tags are key-value pairs attached to every message of a logger and to
// captured Sentry events.
type Tags map[string]string

// NewTags creates Tags from a mix of slog.Attr values and key/value pairs.
//
// Incomplete pairs and unsupported argument types are ignored.
func NewTags(args ...any) Tags {
	tags := Tags{}
	for len(args) > 0 {
		switch x := args[0].(type) {
		case slog.Attr:
			tags[x.Key] = x.Value.String()
			args = args[1:]
		case string:
			if len(args) < 2 {
				return tags
			}
			attr := slog.Any(x, args[1])
			tags[attr.Key] = attr.Value.String()
			args = args[2:]
		default:
			args = args[1:]
		}
	}
	return tags
}

// LevelFatal is logged by CaptureFatal.
const LevelFatal = slog.Level(12)

type CoreLoggerParams struct {
	Sentry *SentryContext
	Tags   Tags
}

// CoreLogger is a slog.Logger that can also report to Sentry.
type CoreLogger struct {
	*slog.Logger
	baseTags Tags
	sentry   *SentryContext
}

func NewCoreLogger(logger *slog.Logger, params *CoreLoggerParams) *CoreLogger {
	if params == nil {
		params = &CoreLoggerParams{}
	}

	keys := make([]string, 0, len(params.Tags))
	for key := range params.Tags {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	tags := Tags{}
	var args []any
	for _, key := range keys {
		args = append(args, slog.String(key, params.Tags[key]))
		tags[key] = params.Tags[key]
	}

	return &CoreLogger{
		Logger:   logger.With(args...),
		sentry:   params.Sentry,
		baseTags: tags,
	}
}

// withArgs merges args into the logger's base tags.
//
// Base tags take precedence.
func (cl *CoreLogger) withArgs(args ...any) Tags {
	tags := NewTags(args...)
	for key, value := range cl.baseTags {
		tags[key] = value
	}
	return tags
}

// With returns a derived logger that includes the given args in each message.
func (cl *CoreLogger) With(args ...any) *CoreLogger {
	tags := Tags{}
	for key, value := range cl.baseTags {
		tags[key] = value
	}
	for key, value := range NewTags(args...) {
		tags[key] = value
	}
	return &CoreLogger{
		Logger:   cl.Logger.With(args...),
		baseTags: tags,
		sentry:   cl.sentry,
	}
}

// CaptureError logs an error and sends it to Sentry.
func (cl *CoreLogger) CaptureError(err error, args ...any) {
	cl.Error(err.Error(), args...)
	cl.sentry.CaptureException(err, cl.withArgs(args...))
}

// CaptureWarn logs a warning and sends it to Sentry.
func (cl *CoreLogger) CaptureWarn(msg string, args ...any) {
	cl.Warn(msg, args...)
	cl.sentry.CaptureMessage(msg, cl.withArgs(args...))
}

// CaptureFatal logs a fatal error and sends it to Sentry.
func (cl *CoreLogger) CaptureFatal(err error, args ...any) {
	cl.Log(context.Background(), LevelFatal, err.Error(), args...)
	cl.sentry.CaptureException(err, cl.withArgs(args...))
}

// Reraise logs a recovered panic with its stack, reports it to Sentry and
// panics again.
//
// Must be deferred directly.
func (cl *CoreLogger) Reraise(args ...any) {
	if err := recover(); err != nil {
		cl.Error(
			fmt.Sprintf("panic: %v", err),
			append(args, "stack", string(debug.Stack()))...,
		)
		cl.sentry.Reraise(err, cl.withArgs(args...))
	}
}

// GetTags returns the tags associated with the logger.
//
// Used for testing.
func (cl *CoreLogger) GetTags() Tags {
	return cl.baseTags
}

// NewNoOpLogger returns a logger that discards all messages.
//
// Used for testing.
func NewNoOpLogger() *CoreLogger {
	return NewCoreLogger(
		slog.New(slog.NewJSONHandler(io.Discard, nil)),
		nil,
	)
}
