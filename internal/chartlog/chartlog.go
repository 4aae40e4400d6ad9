// Package chartlog collects named time series during a run and persists them
// as a single JSON document. The on-disk shape is the fixed contract between
// the trading runtime and the offline visualizer:
//
//	{"charts": {<chart>: {"name": ..., "series": {<series>: {"name": ..., "values": [[unixSeconds, value], ...]}}}}}
package chartlog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Series names plotted by the built-in SMA crossover strategy. The offline
// visualizer consumes the same names; they are contract constants, not
// user-configurable.
const (
	SeriesPrice   = "Price"
	SeriesFastSMA = "FastSMA"
	SeriesSlowSMA = "SlowSMA"
	SeriesBuy     = "Buy"
	SeriesSell    = "Sell"
)

// ChartLog accumulates (time, value) points per chart and series, in the
// order they were plotted. It is driven by a single-threaded event loop and
// performs no locking.
type ChartLog struct {
	charts map[string]*chart
}

type chart struct {
	Name   string             `json:"name"`
	Series map[string]*series `json:"series"`
}

type series struct {
	Name   string       `json:"name"`
	Values [][2]float64 `json:"values"`
}

type runFile struct {
	Charts map[string]*chart `json:"charts"`
}

// New creates an empty ChartLog.
func New() *ChartLog {
	return &ChartLog{charts: make(map[string]*chart)}
}

// Plot appends one point to the named series of the named chart, creating
// both on first use. The timestamp is stored at one-second resolution as
// unix seconds, matching the run-file contract.
func (c *ChartLog) Plot(chartName, seriesName string, t time.Time, v float64) {
	ch, ok := c.charts[chartName]
	if !ok {
		ch = &chart{Name: chartName, Series: make(map[string]*series)}
		c.charts[chartName] = ch
	}
	s, ok := ch.Series[seriesName]
	if !ok {
		s = &series{Name: seriesName}
		ch.Series[seriesName] = s
	}
	s.Values = append(s.Values, [2]float64{float64(t.Unix()), v})
}

// Len returns the number of points in the named series, or 0 if it does not
// exist.
func (c *ChartLog) Len(chartName, seriesName string) int {
	if ch, ok := c.charts[chartName]; ok {
		if s, ok := ch.Series[seriesName]; ok {
			return len(s.Values)
		}
	}
	return 0
}

// MarshalJSON renders the full run file. Map keys are emitted in sorted
// order, so identical plot sequences produce identical bytes.
func (c *ChartLog) MarshalJSON() ([]byte, error) {
	return json.Marshal(runFile{Charts: c.charts})
}

// WriteFile writes the run file to path, creating parent directories as
// needed.
func (c *ChartLog) WriteFile(path string) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling chart log: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
