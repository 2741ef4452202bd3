package panelmetrics_test

import (
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wandb/wandb/timeline/internal/panelmetrics"
)

func TestCounters(t *testing.T) {
	m := panelmetrics.New("p1")

	m.Commit(panelmetrics.SourceDrag)
	m.Commit(panelmetrics.SourceDrag)
	m.Reject("invalid_range")
	m.VisibleRangeSet("preset", 90_000)
	m.DragStarted()

	count, err := testutil.GatherAndCount(m.Registry(), "timeline_panel_timeline_commits_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	count, err = testutil.GatherAndCount(m.Registry(), "timeline_panel_drag_active")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	m.DragEnded("committed")
	count, err = testutil.GatherAndCount(m.Registry(), "timeline_panel_drags_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestHandler(t *testing.T) {
	m := panelmetrics.New("p1")
	m.VisibleRangeSet("zoom", 2_000)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), `timeline_panel_visible_span_seconds{panel="p1"} 2`)
}

func TestNilMetrics(t *testing.T) {
	var m *panelmetrics.Metrics

	assert.NotPanics(t, func() {
		m.Commit(panelmetrics.SourceSelect)
		m.Reject("x")
		m.VisibleRangeSet("pan", 1)
		m.DragStarted()
		m.DragEnded("cancelled")
	})
	assert.Nil(t, m.Registry())
}
