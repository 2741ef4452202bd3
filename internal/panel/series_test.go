package panel_test

import (
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wandb/wandb/timeline/internal/panel"
	"github.com/wandb/wandb/timeline/internal/timerange"
)

func TestReadSeries_SkipsHeaderAndSorts(t *testing.T) {
	input := `time,value
# comments are ignored
2024-01-01T02:00:00Z,3.5
2024-01-01T00:00:00Z,1
2024-01-01T01:00:00Z,2
`
	points, err := panel.ReadSeries(strings.NewReader(input))
	require.NoError(t, err)

	require.Len(t, points, 3)
	assert.Equal(t, int64(1704067200000), points[0].Time)
	assert.Equal(t, 1.0, points[0].Value)
	assert.Equal(t, 2.0, points[1].Value)
	assert.Equal(t, 3.5, points[2].Value)
}

func TestReadSeries_AcceptsEpochMillis(t *testing.T) {
	points, err := panel.ReadSeries(strings.NewReader("1000,1\n2000,2\n"))
	require.NoError(t, err)

	require.Len(t, points, 2)
	assert.Equal(t, int64(1000), points[0].Time)
	assert.Equal(t, int64(2000), points[1].Time)
}

func TestReadSeries_BadRow(t *testing.T) {
	_, err := panel.ReadSeries(strings.NewReader("1000,1\nlater,2\n"))

	assert.ErrorContains(t, err, "row 2")
}

func TestReadSeries_WrongFieldCount(t *testing.T) {
	_, err := panel.ReadSeries(strings.NewReader("1000,1\n2000\n"))

	assert.Error(t, err)
}

func TestLoadSeries_MissingFile(t *testing.T) {
	_, err := panel.LoadSeries(afero.NewMemMapFs(), "/data/missing.csv")

	assert.Error(t, err)
}

func TestLoadSeries_FromFs(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/data/series.csv", []byte("1000,5\n"), 0o644))

	points, err := panel.LoadSeries(fs, "/data/series.csv")
	require.NoError(t, err)

	assert.Equal(t, []panel.Point{{Time: 1000, Value: 5}}, points)
}

func TestSyntheticSeries(t *testing.T) {
	r := timerange.New(0, 10_000)

	points := panel.SyntheticSeries(r, 11)

	require.Len(t, points, 11)
	assert.Equal(t, int64(0), points[0].Time)
	assert.Equal(t, int64(10_000), points[10].Time)
	for i := 1; i < len(points); i++ {
		assert.Greater(t, points[i].Time, points[i-1].Time)
	}
	assert.Nil(t, panel.SyntheticSeries(r, 1))
}
