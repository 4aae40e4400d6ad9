package report

import (
	"bytes"
	"strings"
	"testing"
)

func sampleBundle() SeriesBundle {
	return SeriesBundle{
		Price: []Point{{1577836800000, 320.5}, {1577923200000, 322.0}},
		Fast:  []Point{{1577836800000, 319.0}},
		Slow:  []Point{{1577836800000, 318.0}},
		Buy:   []Point{{1577836800000, 320.5}},
		Sell:  []Point{{1577923200000, 322.0}},
	}
}

func TestRenderEmbedsSeriesAndTrades(t *testing.T) {
	bundle := sampleBundle()
	trades := BuildTrades(bundle.Buy, bundle.Sell)

	out, err := Render("SPY run", bundle, trades)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	html := string(out)

	for _, want := range []string{
		"SPY run",
		"[1577836800000,1577923200000]", // price x values as literals
		"[320.5,322]",
		"2020-01-01 00:00:00",
		"320.5000", // 4-decimal price formatting
		"322.0000",
		"chartsStatus", // degradation status element
		"onerror",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("rendered report missing %q", want)
		}
	}
}

func TestRenderNoTradesPlaceholder(t *testing.T) {
	out, err := Render("empty", SeriesBundle{}, nil)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(string(out), "No trades") {
		t.Error("rendered report missing the no-trades placeholder row")
	}
}

func TestRenderReproducible(t *testing.T) {
	bundle := sampleBundle()
	trades := BuildTrades(bundle.Buy, bundle.Sell)

	a, err := Render("SPY run", bundle, trades)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	b, err := Render("SPY run", bundle, trades)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Error("identical inputs produced different bytes")
	}
}

func TestRenderTableOutsideScript(t *testing.T) {
	bundle := sampleBundle()
	out, err := Render("SPY run", bundle, BuildTrades(bundle.Buy, bundle.Sell))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	html := string(out)

	// The trade table must appear before the first script tag so it renders
	// even when scripts never run.
	table := strings.Index(html, "<table")
	script := strings.Index(html, "<script")
	if table == -1 || script == -1 {
		t.Fatalf("table at %d, script at %d; both must be present", table, script)
	}
	if table > script {
		t.Error("trade table appears after the script block")
	}
}
