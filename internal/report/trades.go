package report

import (
	"sort"
	"time"
)

// timeLayout is lexicographically sortable, so sorting the formatted strings
// is the same as sorting chronologically.
const timeLayout = "2006-01-02 15:04:05"

// Trade is one reconciled trade row for display. TimeUTC is a UTC calendar
// timestamp with one-second resolution and no zone suffix.
type Trade struct {
	TimeUTC string
	Side    string // "BUY" or "SELL"
	Price   float64
}

// BuildTrades merges buy and sell marker series into one chronological trade
// table. The sort is stable over the buys-then-sells concatenation, so a buy
// and a sell at the exact same instant keep the buy first.
func BuildTrades(buys, sells []Point) []Trade {
	trades := make([]Trade, 0, len(buys)+len(sells))
	for _, p := range buys {
		trades = append(trades, Trade{TimeUTC: formatMillis(p.XMillis), Side: "BUY", Price: p.Y})
	}
	for _, p := range sells {
		trades = append(trades, Trade{TimeUTC: formatMillis(p.XMillis), Side: "SELL", Price: p.Y})
	}
	sort.SliceStable(trades, func(i, j int) bool {
		return trades[i].TimeUTC < trades[j].TimeUTC
	})
	return trades
}

func formatMillis(ms int64) string {
	return time.UnixMilli(ms).UTC().Format(timeLayout)
}
