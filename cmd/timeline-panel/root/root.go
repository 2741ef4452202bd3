package root

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/wandb/wandb/timeline/cmd/timeline-panel/root/config"
	"github.com/wandb/wandb/timeline/cmd/timeline-panel/root/version"
	"github.com/wandb/wandb/timeline/internal/dashboard"
	"github.com/wandb/wandb/timeline/internal/observability"
	"github.com/wandb/wandb/timeline/internal/panel"
	"github.com/wandb/wandb/timeline/internal/rangefeed"
	"github.com/wandb/wandb/timeline/internal/timerange"
)

const debugLogFile = "timeline-panel.debug.log"

// NewRootCmd creates the timeline-panel command.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "timeline-panel",
		Short: "Select a time range on a timeline",
		Long: heredoc.Doc(`
			An interactive timeline: drag the brush to choose the dashboard
			time range, and widen or narrow the context window around it.
		`),
		Example: heredoc.Doc(`
			# Last hour, with a synthetic series
			$ timeline-panel

			# Explicit range over a CSV series (time,value rows)
			$ timeline-panel --from 2024-01-01 --to now-6h --data cpu.csv

			# Serve metrics on /metrics and the range feed on /feed
			$ timeline-panel --http-addr :9464
		`),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd)
		},
	}

	flags := cmd.PersistentFlags()
	flags.String("from", "now-1h", "Start of the dashboard range (RFC 3339, date, epoch ms or now-<duration>)")
	flags.String("to", "now", "End of the dashboard range")
	flags.String("data", "", "CSV file with time,value rows to draw under the brush")
	flags.Bool("debug", false, "Write a debug log to "+debugLogFile)
	flags.String("log-format", observability.FormatText, "Debug log format: text or json")
	flags.String("sentry-dsn", "", "Report errors to this Sentry DSN")
	flags.String("http-addr", "", "Serve prometheus metrics and the range feed on this address")
	flags.String("panel-config", defaultPanelConfigPath(), "Panel settings file")

	for _, name := range []string{
		"from", "to", "data", "debug", "log-format",
		"sentry-dsn", "http-addr", "panel-config",
	} {
		_ = viper.BindPFlag(name, flags.Lookup(name))
	}

	cmd.AddCommand(config.NewConfigCmd(), version.NewVersionCmd())

	return cmd
}

func defaultPanelConfigPath() string {
	home, err := homedir.Dir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "timeline-panel", panel.ConfigFileName)
}

func run(cmd *cobra.Command) error {
	sentryCtx, err := observability.NewSentryHub(viper.GetString("sentry-dsn"), version.Version)
	if err != nil {
		return err
	}
	defer sentryCtx.Flush(2 * time.Second)

	writer := io.Discard
	if viper.GetBool("debug") {
		f, err := os.OpenFile(debugLogFile, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
		if err != nil {
			return fmt.Errorf("cannot open debug log: %w", err)
		}
		defer func() {
			_ = f.Close()
		}()
		writer = f
	}

	logger := observability.NewCoreLogger(
		slog.New(observability.NewHandler(writer, viper.GetString("log-format"), slog.LevelDebug)),
		&observability.CoreLoggerParams{
			Tags:   observability.Tags{"version": version.Version},
			Sentry: sentryCtx,
		},
	)

	now := time.Now()
	r, err := timerange.ParseRange(viper.GetString("from"), viper.GetString("to"), now, time.Local)
	if err != nil {
		return fmt.Errorf("invalid dashboard range: %w", err)
	}

	fs := afero.NewOsFs()
	points, err := loadPoints(fs, viper.GetString("data"), r, now)
	if err != nil {
		return err
	}

	cfg := panel.NewConfigManager(fs, viper.GetString("panel-config"), logger)
	dash := dashboard.New(r, nil, logger)
	session := panel.NewSession(panel.SessionParams{
		Dashboard: dash,
		Config:    cfg,
		Logger:    logger,
	})

	model := panel.NewModel(panel.ModelParams{
		Session: session,
		Config:  cfg,
		Points:  points,
		Logger:  logger,
	})
	defer model.Close()

	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(cmd.Context()),
	)

	if addr := viper.GetString("http-addr"); addr != "" {
		hub := rangefeed.NewHub(dash, logger)
		defer hub.Close()

		// Changes may arrive from the feed while Update is running.
		unsubscribe := dash.Subscribe(func(r timerange.TimeRange) {
			go p.Send(panel.DashboardChangedMsg{Range: r})
		})
		defer unsubscribe()

		stop := serve(addr, session, hub, logger)
		defer stop()
	}
	if _, err := p.Run(); err != nil {
		logger.CaptureFatal(fmt.Errorf("timeline-panel: %v", err))
		return err
	}

	final := dash.TimeRange()
	logger.Info("timeline-panel: exiting", "range", final.String(), "changes", dash.Changes())
	fmt.Fprintln(cmd.OutOrStdout(), final.String())
	return nil
}

// loadPoints reads the series to draw, or makes one up around the range.
func loadPoints(
	fs afero.Fs,
	path string,
	r timerange.TimeRange,
	now time.Time,
) ([]panel.Point, error) {
	if path != "" {
		points, err := panel.LoadSeries(fs, path)
		if err != nil {
			return nil, fmt.Errorf("cannot load series: %w", err)
		}
		return points, nil
	}

	const month = 30 * 24 * time.Hour
	end := max(r.To, now.UnixMilli())
	return panel.SyntheticSeries(timerange.New(r.From-month.Milliseconds(), end), 2000), nil
}

// serve exposes the session's metrics and the range feed, and returns a
// function that shuts the server down.
func serve(
	addr string,
	session *panel.Session,
	hub *rangefeed.Hub,
	logger *observability.CoreLogger,
) func() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", session.Metrics.Handler())
	mux.Handle("/feed", hub)
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		defer logger.Reraise("component", "http")
		logger.Info("timeline-panel: serving", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.CaptureError(fmt.Errorf("http server: %v", err))
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
}
