package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func seriesFromJSON(t *testing.T, raw string) Series {
	t.Helper()
	var s Series
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		t.Fatalf("unmarshal series: %v", err)
	}
	return s
}

func TestExtractSeriesArrayForm(t *testing.T) {
	s := seriesFromJSON(t, `{"name":"Price","values":[[1000,10.5],[2000,11.25]]}`)
	got := ExtractSeries(s)
	want := []Point{{1000000, 10.5}, {2000000, 11.25}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExtractSeries = %v, want %v", got, want)
	}
}

func TestExtractSeriesObjectFormMatchesArrayForm(t *testing.T) {
	arr := seriesFromJSON(t, `{"values":[[1000,10.5],[2000,11.25]]}`)
	obj := seriesFromJSON(t, `{"values":[{"x":1000,"y":10.5},{"x":2000,"y":11.25}]}`)
	if got, want := ExtractSeries(obj), ExtractSeries(arr); !reflect.DeepEqual(got, want) {
		t.Errorf("object form = %v, array form = %v; want identical", got, want)
	}
}

func TestExtractSeriesSkipsMalformedPoints(t *testing.T) {
	s := seriesFromJSON(t, `{"values":[
		[1000,10.5],
		[1000],
		[1000,2000,3000],
		{"x":2000},
		{"y":3.0},
		"garbage",
		null,
		[true,false],
		["not-a-number",1.0],
		[3000,12.0]
	]}`)
	got := ExtractSeries(s)
	want := []Point{{1000000, 10.5}, {3000000, 12.0}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExtractSeries = %v, want %v", got, want)
	}
}

func TestExtractSeriesNumericStrings(t *testing.T) {
	s := seriesFromJSON(t, `{"values":[["1000","10.5"],{"x":"2000","y":"11"}]}`)
	got := ExtractSeries(s)
	want := []Point{{1000000, 10.5}, {2000000, 11}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExtractSeries = %v, want %v", got, want)
	}
}

func TestExtractSeriesPreservesInputOrder(t *testing.T) {
	s := seriesFromJSON(t, `{"values":[[3000,3],[1000,1],[2000,2]]}`)
	got := ExtractSeries(s)
	want := []Point{{3000000, 3}, {1000000, 1}, {2000000, 2}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExtractSeries reordered points: %v, want %v", got, want)
	}
}

func TestExtractSeriesEmpty(t *testing.T) {
	if got := ExtractSeries(Series{}); len(got) != 0 {
		t.Errorf("ExtractSeries on empty series = %v, want empty", got)
	}
}

func TestRunFileChartLookup(t *testing.T) {
	var rf RunFile
	raw := `{"charts":{
		"SPY":{"name":"SPY","series":{"Price":{"name":"Price","values":[[1000,10]]}}},
		"Alpha":{"name":"Alpha","series":{}},
		"Drawdown":{"name":"Drawdown","series":{}}
	}}`
	if err := json.Unmarshal([]byte(raw), &rf); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	c, err := rf.Chart("SPY")
	if err != nil {
		t.Fatalf("Chart(SPY): %v", err)
	}
	if got := ExtractSeries(c.Series[SeriesPrice]); len(got) != 1 {
		t.Errorf("Price series has %d points, want 1", len(got))
	}

	_, err = rf.Chart("QQQ")
	if err == nil {
		t.Fatal("expected error for missing chart")
	}
	// Alternatives are enumerated in sorted order.
	if want := "Alpha, Drawdown, SPY"; !strings.Contains(err.Error(), want) {
		t.Errorf("error %q does not list available charts %q", err, want)
	}
}

func TestRunFileMissingChartsKey(t *testing.T) {
	var rf RunFile
	if err := json.Unmarshal([]byte(`{"statistics":{}}`), &rf); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	_, err := rf.Chart("SPY")
	if err == nil {
		t.Fatal("expected error when charts mapping is absent")
	}
	if !strings.Contains(err.Error(), `"SPY"`) {
		t.Errorf("error %q does not name the missing chart", err)
	}
}

func TestLoadRunFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "run.json")
	raw := `{"charts":{"SPY":{"name":"SPY","series":{
		"Price":{"name":"Price","values":[[1000,10],[2000,11]]},
		"Buy":{"name":"Buy","values":[[1000,10]]}
	}}}}`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}

	rf, err := LoadRunFile(path)
	if err != nil {
		t.Fatalf("LoadRunFile: %v", err)
	}
	c, err := rf.Chart("SPY")
	if err != nil {
		t.Fatalf("Chart: %v", err)
	}
	b := ExtractBundle(c)
	if len(b.Price) != 2 || len(b.Buy) != 1 {
		t.Errorf("bundle = %d price, %d buy points, want 2 and 1", len(b.Price), len(b.Buy))
	}
	if len(b.Fast) != 0 || len(b.Slow) != 0 || len(b.Sell) != 0 {
		t.Error("absent series must extract as empty, not fail")
	}
}

func TestLoadRunFileMissing(t *testing.T) {
	if _, err := LoadRunFile(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
