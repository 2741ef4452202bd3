package panel_test

import (
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wandb/wandb/timeline/internal/observabilitytest"
	"github.com/wandb/wandb/timeline/internal/panel"
)

const configPath = "/home/user/.config/timeline/panel.yaml"

func TestConfig_CreatesDefaultFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	cfg := panel.NewConfigManager(fs, configPath, observabilitytest.NewTestLogger(t))

	exists, err := afero.Exists(fs, configPath)
	require.NoError(t, err)
	assert.True(t, exists)

	snap := cfg.Snapshot()
	assert.Equal(t, "7d", snap.DefaultPreset)
	assert.True(t, snap.RepositionBrush)
	assert.Equal(t, panel.DefaultDragFPS, snap.DragFPS)
	assert.Equal(t, panel.DefaultBrushColor, snap.BrushColor)
	assert.Equal(t, time.Local, cfg.Location())
}

func TestConfig_NormalizesInvalidValues(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, configPath, []byte(`
default_preset: forever
reposition_brush: false
drag_fps: 500
timezone: Mars/Olympus_Mons
brush_color: red
handle_color: "#112233"
`), 0o644))

	cfg := panel.NewConfigManager(fs, configPath, observabilitytest.NewTestLogger(t))
	snap := cfg.Snapshot()

	assert.Equal(t, "7d", snap.DefaultPreset)
	assert.False(t, snap.RepositionBrush)
	assert.Equal(t, panel.DefaultDragFPS, snap.DragFPS)
	assert.Empty(t, snap.Timezone)
	assert.Equal(t, panel.DefaultBrushColor, snap.BrushColor)
	assert.Equal(t, "#112233", snap.HandleColor)
}

func TestConfig_KeepsValidTimezone(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, configPath, []byte("timezone: UTC\n"), 0o644))

	cfg := panel.NewConfigManager(fs, configPath, observabilitytest.NewTestLogger(t))

	assert.Equal(t, time.UTC, cfg.Location())
}

func TestConfig_SettersPersist(t *testing.T) {
	fs := afero.NewMemMapFs()
	logger := observabilitytest.NewTestLogger(t)
	cfg := panel.NewConfigManager(fs, configPath, logger)

	require.NoError(t, cfg.SetDefaultPreset("24h"))
	require.NoError(t, cfg.SetRepositionBrush(false))
	require.NoError(t, cfg.SetDragFPS(60))

	reloaded := panel.NewConfigManager(fs, configPath, logger)
	assert.Equal(t, "24h", reloaded.DefaultPreset())
	assert.False(t, reloaded.RepositionBrush())
	assert.Equal(t, 60, reloaded.DragFPS())

	exists, err := afero.Exists(fs, configPath+".tmp")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestConfig_SettersRejectInvalid(t *testing.T) {
	cfg := panel.NewConfigManager(afero.NewMemMapFs(), configPath, observabilitytest.NewTestLogger(t))

	assert.Error(t, cfg.SetDefaultPreset("later"))
	assert.Error(t, cfg.SetDragFPS(0))
	assert.Error(t, cfg.SetDragFPS(panel.MaxDragFPS+1))

	assert.Equal(t, "7d", cfg.DefaultPreset())
	assert.Equal(t, panel.DefaultDragFPS, cfg.DragFPS())
}

func TestConfig_InMemoryWithoutPath(t *testing.T) {
	fs := afero.NewMemMapFs()
	cfg := panel.NewConfigManager(fs, "", nil)

	require.NoError(t, cfg.SetDragFPS(10))
	assert.Equal(t, 10, cfg.DragFPS())

	entries, err := afero.ReadDir(fs, "/")
	require.NoError(t, err)
	assert.Empty(t, entries)
}
