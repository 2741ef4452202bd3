package observability

import (
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/log"
)

const (
	FormatText = "text"
	FormatJSON = "json"
)

// NewHandler returns the slog handler used for the debug log.
//
// "json" produces slog's JSON records; anything else produces
// charmbracelet/log text lines.
func NewHandler(w io.Writer, format string, level slog.Level) slog.Handler {
	if strings.EqualFold(format, FormatJSON) {
		return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	}

	logger := log.NewWithOptions(w, log.Options{
		Level:           log.Level(level),
		ReportTimestamp: true,
		Formatter:       log.TextFormatter,
	})
	return logger
}
