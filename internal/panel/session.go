package panel

import (
	"github.com/google/uuid"

	"github.com/wandb/wandb/timeline/internal/bridge"
	"github.com/wandb/wandb/timeline/internal/dashboard"
	"github.com/wandb/wandb/timeline/internal/debounce"
	"github.com/wandb/wandb/timeline/internal/drag"
	"github.com/wandb/wandb/timeline/internal/observability"
	"github.com/wandb/wandb/timeline/internal/panelmetrics"
	"github.com/wandb/wandb/timeline/internal/rangemodel"
	"github.com/wandb/wandb/timeline/internal/timerange"
	"github.com/wandb/wandb/timeline/internal/window"
)

type SessionParams struct {
	Dashboard *dashboard.Dashboard
	Config    *ConfigManager
	Logger    *observability.CoreLogger

	// ParseDuration overrides the duration grammar used by the applier.
	ParseDuration timerange.ParseDurationFunc
}

// Session is the per-panel state: the two ranges, the renderer handle and
// the controllers acting on them.
type Session struct {
	ID string

	Model   *rangemodel.RangeModel
	Handle  *bridge.Handle
	Drag    *drag.Controller
	Window  *window.Applier
	Metrics *panelmetrics.Metrics

	dashboard   *dashboard.Dashboard
	feedback    *debounce.Debouncer
	unsubscribe func()
	logger      *observability.CoreLogger
}

// NewSession creates a panel bound to the dashboard.
//
// Brush commits are reported through Dashboard.TimeRangeChanged; dashboard
// changes come back through SyncToDashboardRange, which does not report
// upstream again.
func NewSession(params SessionParams) *Session {
	if params.Dashboard == nil {
		panic("panel: Dashboard is nil")
	}
	if params.Config == nil {
		params.Config = NewConfigManager(nil, "", params.Logger)
	}
	if params.Logger == nil {
		params.Logger = observability.NewNoOpLogger()
	}

	id := uuid.NewString()
	logger := params.Logger.With("panel", id)
	dash := params.Dashboard

	s := &Session{
		ID:        id,
		Handle:    bridge.NewHandle(),
		Metrics:   panelmetrics.New(id),
		dashboard: dash,
		feedback:  debounce.NewFrameDebouncer(params.Config.DragFPS(), logger),
		logger:    logger,
	}

	s.Model = rangemodel.New(dash.TimeRange(), dash.NowMillis(), s.reportUpstream)
	s.Drag = drag.New(drag.Params{
		Model:    s.Model,
		Handle:   s.Handle,
		Logger:   logger,
		Metrics:  s.Metrics,
		Feedback: s.feedback,
	})
	s.Window = window.New(window.Params{
		Model:         s.Model,
		Now:           dash.Now,
		ParseDuration: params.ParseDuration,
		Location:      params.Config.Location(),
		Reposition:    params.Config.RepositionBrush(),
		Logger:        logger,
		Metrics:       s.Metrics,
	})
	s.unsubscribe = dash.Subscribe(s.syncFromDashboard)

	logger.Info("panel: session created",
		"dashboard", dash.TimeRange().String(),
		"visible", s.Model.VisibleRange().String())
	return s
}

func (s *Session) reportUpstream(r timerange.TimeRange) {
	if err := s.dashboard.TimeRangeChanged(r); err != nil {
		s.logger.CaptureError(err, "range", r.String())
	}
}

func (s *Session) syncFromDashboard(r timerange.TimeRange) {
	if err := s.Model.SyncToDashboardRange(r.From, r.To); err != nil {
		s.logger.Warn("panel: cannot sync to dashboard", "error", err)
	}
}

// Resync resets the brush to the dashboard's current range.
func (s *Session) Resync() {
	s.syncFromDashboard(s.dashboard.TimeRange())
}

// ApplyStartupPreset sets the initial window without moving the brush.
func (s *Session) ApplyStartupPreset(token string) error {
	reposition := s.Window.Reposition()
	s.Window.SetReposition(false)
	defer s.Window.SetReposition(reposition)

	return s.Window.ApplyPreset(token)
}

// Dashboard returns the host the session reports to.
func (s *Session) Dashboard() *dashboard.Dashboard {
	return s.dashboard
}

func (s *Session) Logger() *observability.CoreLogger {
	return s.logger
}

// Close detaches the session from the dashboard and the renderer. Drag
// feedback stops for good.
func (s *Session) Close() {
	s.Drag.Cancel()
	s.feedback.Stop()
	s.Handle.Teardown()
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
}
