package observability_test

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wandb/wandb/timeline/internal/observability"
	"github.com/wandb/wandb/timeline/internal/observabilitytest"
)

func TestNewTags(t *testing.T) {
	tags := observability.NewTags(
		slog.String("a", "1"),
		"b", 2,
		42,
		"dangling",
	)

	assert.Equal(t, observability.Tags{"a": "1", "b": "2"}, tags)
}

func TestWith_MergesTags(t *testing.T) {
	logger := observability.NewCoreLogger(
		slog.New(slog.NewJSONHandler(&bytes.Buffer{}, nil)),
		&observability.CoreLoggerParams{Tags: observability.Tags{"panel_id": "p1"}},
	)

	derived := logger.With("component", "drag")

	assert.Equal(t, observability.Tags{"panel_id": "p1"}, logger.GetTags())
	assert.Equal(t,
		observability.Tags{"panel_id": "p1", "component": "drag"},
		derived.GetTags())
}

func TestCaptureError_LogsWithoutSentry(t *testing.T) {
	logger, buf := observabilitytest.NewRecordingTestLogger(t)

	logger.CaptureError(errors.New("boom"), "kind", "test")

	logs := observabilitytest.ExtractLogs(t, buf)
	require.Len(t, logs, 1)
	assert.Equal(t, "ERROR", logs[0]["level"])
	assert.Equal(t, "boom", logs[0]["msg"])
	assert.Equal(t, "test", logs[0]["kind"])
}

func TestCaptureError_SendsToSentry(t *testing.T) {
	logger, _, transport := observabilitytest.NewSentryTestLogger(t)

	logger.CaptureError(errors.New("sentry boom"))
	logger.CaptureError(errors.New("sentry boom"))

	events := transport.Events()
	require.Len(t, events, 1, "repeated messages are rate limited")
}

func TestCaptureWarn_SendsMessage(t *testing.T) {
	logger, buf, transport := observabilitytest.NewSentryTestLogger(t)

	logger.CaptureWarn("client too slow", "remote", "a")

	logs := observabilitytest.ExtractLogs(t, buf)
	require.Len(t, logs, 1)
	assert.Equal(t, "WARN", logs[0]["level"])
	events := transport.Events()
	require.Len(t, events, 1)
	assert.Equal(t, "client too slow", events[0].Message)
	assert.Equal(t, "a", events[0].Tags["remote"])
}

func TestCaptureFatal_LogsAboveError(t *testing.T) {
	logger, buf, transport := observabilitytest.NewSentryTestLogger(t)

	logger.CaptureFatal(errors.New("program failed"))

	logs := observabilitytest.ExtractLogs(t, buf)
	require.Len(t, logs, 1)
	assert.Equal(t, "ERROR+4", logs[0]["level"])
	assert.Len(t, transport.Events(), 1)
}

func TestReraise_ReportsAndPanicsAgain(t *testing.T) {
	logger, buf, transport := observabilitytest.NewSentryTestLogger(t)

	assert.PanicsWithValue(t, "kaboom", func() {
		defer logger.Reraise("in", "Update")
		panic("kaboom")
	})

	logs := observabilitytest.ExtractLogs(t, buf)
	require.Len(t, logs, 1)
	assert.Equal(t, "panic: kaboom", logs[0]["msg"])
	assert.Equal(t, "Update", logs[0]["in"])
	assert.Contains(t, logs[0]["stack"], "TestReraise_ReportsAndPanicsAgain")

	events := transport.Events()
	require.Len(t, events, 1)
	assert.Equal(t, "Update", events[0].Tags["in"])
}

func TestReraise_NoPanicIsNoOp(t *testing.T) {
	logger, buf, transport := observabilitytest.NewSentryTestLogger(t)

	assert.NotPanics(t, func() {
		defer logger.Reraise()
	})

	assert.Empty(t, buf.String())
	assert.Empty(t, transport.Events())
}

func TestReportThrottle(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	th, err := observability.NewReportThrottle(10, time.Minute,
		func() time.Time { return now })
	require.NoError(t, err)

	ok, dropped := th.Admit("x")
	assert.True(t, ok)
	assert.Zero(t, dropped)
	ok, _ = th.Admit("x")
	assert.False(t, ok)
	ok, _ = th.Admit("x")
	assert.False(t, ok)
	ok, _ = th.Admit("y")
	assert.True(t, ok)

	now = now.Add(time.Minute)
	ok, dropped = th.Admit("x")
	assert.True(t, ok)
	assert.Equal(t, 2, dropped)
	ok, _ = th.Admit("x")
	assert.False(t, ok)
}

func TestReportThrottle_LongMessagesShareAPrefix(t *testing.T) {
	th, err := observability.NewReportThrottle(10, time.Hour, nil)
	require.NoError(t, err)
	prefix := strings.Repeat("p", 300)

	ok, _ := th.Admit(prefix + "1")
	assert.True(t, ok)
	ok, _ = th.Admit(prefix + "2")
	assert.False(t, ok)
}

func TestReportThrottle_Nil(t *testing.T) {
	var th *observability.ReportThrottle

	ok, dropped := th.Admit("x")
	assert.True(t, ok)
	assert.Zero(t, dropped)
}

func TestNewHandler_JSON(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := slog.New(observability.NewHandler(buf, observability.FormatJSON, slog.LevelInfo))

	logger.Debug("hidden")
	logger.Info("shown", "k", "v")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)
}

func TestNewHandler_Text(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := slog.New(observability.NewHandler(buf, observability.FormatText, slog.LevelDebug))

	logger.Info("hello", "k", "v")

	assert.Contains(t, buf.String(), "hello")
	assert.Contains(t, buf.String(), "k=v")
}
