// Package report turns a recorded run's chart output into a self-contained
// HTML visualization with a reconciled trade table. It is a one-shot batch
// pipeline over a single input file and shares no state with the live
// trading path beyond the fixed series names.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
)

// Series names the live path plots and this package reads back. The names
// are a fixed contract of the run-file format, not user-configurable.
const (
	SeriesPrice   = "Price"
	SeriesFastSMA = "FastSMA"
	SeriesSlowSMA = "SlowSMA"
	SeriesBuy     = "Buy"
	SeriesSell    = "Sell"
)

// Point is one extracted observation: epoch milliseconds and a value.
type Point struct {
	XMillis int64
	Y       float64
}

// Series is one named series from a run file. Values are kept raw because
// the format allows both [seconds, value] pairs and {x, y} objects.
type Series struct {
	Name   string            `json:"name"`
	Values []json.RawMessage `json:"values"`
}

// Chart is one named chart: a mapping of series name to series.
type Chart struct {
	Name   string            `json:"name"`
	Series map[string]Series `json:"series"`
}

// RunFile is the decoded shape of a run's JSON output. Only the charts
// mapping is consumed; all other top-level fields are ignored.
type RunFile struct {
	Charts map[string]Chart `json:"charts"`
}

// LoadRunFile reads and decodes a run file from disk.
func LoadRunFile(path string) (*RunFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading run file: %w", err)
	}
	var rf RunFile
	if err := json.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("decoding run file %s: %w", path, err)
	}
	return &rf, nil
}

// Chart returns the named chart. A missing chart (including a file with no
// charts mapping at all) is an error that names the available alternatives
// so the caller can surface them to the user.
func (rf *RunFile) Chart(name string) (Chart, error) {
	if c, ok := rf.Charts[name]; ok {
		return c, nil
	}
	available := make([]string, 0, len(rf.Charts))
	for n := range rf.Charts {
		available = append(available, n)
	}
	sort.Strings(available)
	return Chart{}, fmt.Errorf("chart %q not found; available: %s",
		name, strings.Join(available, ", "))
}

// ExtractSeries converts a series' raw points into ordered (millis, value)
// pairs. Each point is either a two-element [seconds, value] array or an
// {x: seconds, y: value} object; timestamps are seconds and are scaled to
// milliseconds here. Malformed points are skipped, never fatal, and input
// order is preserved.
func ExtractSeries(s Series) []Point {
	points := make([]Point, 0, len(s.Values))
	for _, raw := range s.Values {
		if p, ok := parsePoint(raw); ok {
			points = append(points, p)
		}
	}
	return points
}

func parsePoint(raw json.RawMessage) (Point, bool) {
	var arr []json.RawMessage
	if err := json.Unmarshal(raw, &arr); err == nil {
		if len(arr) != 2 {
			return Point{}, false
		}
		return coercePoint(arr[0], arr[1])
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err == nil {
		x, okX := obj["x"]
		y, okY := obj["y"]
		if !okX || !okY {
			return Point{}, false
		}
		return coercePoint(x, y)
	}

	return Point{}, false
}

func coercePoint(rawX, rawY json.RawMessage) (Point, bool) {
	seconds, ok := toFloat(rawX)
	if !ok {
		return Point{}, false
	}
	y, ok := toFloat(rawY)
	if !ok {
		return Point{}, false
	}
	return Point{XMillis: int64(seconds) * 1000, Y: y}, true
}

// toFloat accepts JSON numbers and numeric strings.
func toFloat(raw json.RawMessage) (float64, bool) {
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		if f, err := n.Float64(); err == nil {
			return f, true
		}
		return 0, false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f, true
		}
	}
	return 0, false
}

// SeriesBundle holds the five extracted series a report is built from.
type SeriesBundle struct {
	Price []Point
	Fast  []Point
	Slow  []Point
	Buy   []Point
	Sell  []Point
}

// ExtractBundle pulls the five fixed series out of a chart. Absent series
// yield empty slices.
func ExtractBundle(c Chart) SeriesBundle {
	return SeriesBundle{
		Price: ExtractSeries(c.Series[SeriesPrice]),
		Fast:  ExtractSeries(c.Series[SeriesFastSMA]),
		Slow:  ExtractSeries(c.Series[SeriesSlowSMA]),
		Buy:   ExtractSeries(c.Series[SeriesBuy]),
		Sell:  ExtractSeries(c.Series[SeriesSell]),
	}
}
