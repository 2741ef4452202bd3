package panel

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/afero"

	"github.com/wandb/wandb/timeline/internal/timerange"
)

// Point is one sample of the series drawn under the brush.
type Point struct {
	Time  int64 // milliseconds since the epoch
	Value float64
}

// LoadSeries reads "time,value" rows from a CSV file.
//
// The time column takes anything the absolute range fields accept. A first
// row that does not parse is treated as a header. Rows are sorted by time.
func LoadSeries(fs afero.Fs, path string) ([]Point, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ReadSeries(f)
}

// ReadSeries is LoadSeries for an already open reader.
func ReadSeries(r io.Reader) ([]Point, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 2
	reader.TrimLeadingSpace = true
	reader.Comment = '#'

	var points []Point
	for row := 1; ; row++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("series: %v", err)
		}

		p, err := parsePoint(record)
		if err != nil {
			if row == 1 {
				continue
			}
			return nil, fmt.Errorf("series: row %d: %v", row, err)
		}
		points = append(points, p)
	}

	slices.SortStableFunc(points, func(a, b Point) int {
		switch {
		case a.Time < b.Time:
			return -1
		case a.Time > b.Time:
			return 1
		default:
			return 0
		}
	})
	return points, nil
}

func parsePoint(record []string) (Point, error) {
	t, err := timerange.ParseTimestamp(record[0], time.Now(), time.UTC)
	if err != nil {
		return Point{}, err
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(record[1]), 64)
	if err != nil {
		return Point{}, err
	}
	return Point{Time: t, Value: v}, nil
}

// SyntheticSeries returns n points of a smooth wave across r, used when no
// data file is given.
func SyntheticSeries(r timerange.TimeRange, n int) []Point {
	if n < 2 || !r.Valid() {
		return nil
	}
	points := make([]Point, n)
	for i := range n {
		f := float64(i) / float64(n-1)
		points[i] = Point{
			Time:  r.At(f),
			Value: 50 + 30*math.Sin(f*8*math.Pi) + 10*math.Sin(f*31*math.Pi),
		}
	}
	return points
}

// formatValue renders y axis labels compactly, e.g. "1.2k".
func formatValue(v float64) string {
	if math.Abs(v) < 1000 {
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
	return strings.ReplaceAll(humanize.SIWithDigits(v, 1, ""), " ", "")
}
