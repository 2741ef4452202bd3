package root

import (
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wandb/wandb/timeline/internal/timerange"
)

func TestLoadPoints_Synthetic(t *testing.T) {
	now := time.UnixMilli(10 * 24 * time.Hour.Milliseconds())
	r := timerange.New(now.UnixMilli()-time.Hour.Milliseconds(), now.UnixMilli())

	points, err := loadPoints(afero.NewMemMapFs(), "", r, now)
	require.NoError(t, err)

	require.NotEmpty(t, points)
	assert.Less(t, points[0].Time, r.From)
	assert.Equal(t, now.UnixMilli(), points[len(points)-1].Time)
}

func TestLoadPoints_FromFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/series.csv", []byte("time,value\n1000,1\n"), 0o644))

	points, err := loadPoints(fs, "/series.csv", timerange.New(0, 1), time.Now())
	require.NoError(t, err)

	assert.Len(t, points, 1)
}

func TestLoadPoints_MissingFile(t *testing.T) {
	_, err := loadPoints(afero.NewMemMapFs(), "/missing.csv", timerange.New(0, 1), time.Now())

	assert.ErrorContains(t, err, "cannot load series")
}

func TestNewRootCmd_Flags(t *testing.T) {
	cmd := NewRootCmd()

	for _, name := range []string{"from", "to", "data", "debug", "log-format", "sentry-dsn", "http-addr", "panel-config"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), name)
	}

	var names []string
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.ElementsMatch(t, []string{"config", "version"}, names)
}
