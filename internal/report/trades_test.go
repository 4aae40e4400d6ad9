package report

import (
	"reflect"
	"testing"
)

func TestBuildTradesChronological(t *testing.T) {
	buys := []Point{{XMillis: 1577836800000, Y: 320.5}}  // 2020-01-01T00:00:00Z
	sells := []Point{{XMillis: 1577750400000, Y: 318.0}} // 2019-12-31T00:00:00Z

	got := BuildTrades(buys, sells)
	want := []Trade{
		{TimeUTC: "2019-12-31 00:00:00", Side: "SELL", Price: 318.0},
		{TimeUTC: "2020-01-01 00:00:00", Side: "BUY", Price: 320.5},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("BuildTrades = %v, want %v", got, want)
	}
}

func TestBuildTradesTieBreakBuyFirst(t *testing.T) {
	// Buy and sell at the exact same instant: the stable sort keeps the buy
	// ahead of the sell.
	at := int64(1577836800000)
	got := BuildTrades([]Point{{at, 320.5}}, []Point{{at, 321.0}})
	if len(got) != 2 {
		t.Fatalf("got %d trades, want 2", len(got))
	}
	if got[0].Side != "BUY" || got[1].Side != "SELL" {
		t.Errorf("tie order = %s, %s, want BUY, SELL", got[0].Side, got[1].Side)
	}
	if got[0].TimeUTC != got[1].TimeUTC {
		t.Errorf("timestamps differ: %q vs %q", got[0].TimeUTC, got[1].TimeUTC)
	}
}

func TestBuildTradesIdempotent(t *testing.T) {
	buys := []Point{{3000000, 3}, {1000000, 1}}
	sells := []Point{{2000000, 2}, {1000000, 1.5}}

	once := BuildTrades(buys, sells)
	twice := BuildTrades(buys, sells)
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("BuildTrades not deterministic: %v vs %v", once, twice)
	}
	for i := 1; i < len(once); i++ {
		if once[i-1].TimeUTC > once[i].TimeUTC {
			t.Errorf("trades out of order at %d: %q after %q", i, once[i].TimeUTC, once[i-1].TimeUTC)
		}
	}
}

func TestBuildTradesEmpty(t *testing.T) {
	if got := BuildTrades(nil, nil); len(got) != 0 {
		t.Errorf("BuildTrades(nil, nil) = %v, want empty", got)
	}
}
