// Package journal records executed fills as an append-only trade log.
package journal

import (
	"time"

	"smacross/internal/domain"
)

// TradeRecord is one classified trade. Records are immutable after creation.
type TradeRecord struct {
	Time  time.Time
	Side  domain.OrderSide
	Price float64
	Qty   float64
}

// Journal accumulates trade records in fill order. It is driven by a single
// event loop and performs no locking; the log is private to the journal and
// exposed only as a copy.
type Journal struct {
	records []TradeRecord
}

// New creates an empty Journal.
func New() *Journal {
	return &Journal{}
}

// Record classifies a fill by the sign of its quantity and appends it to the
// log. A zero quantity denotes a non-fill status event, not a trade: it is
// silently dropped and nil is returned. There is no deduplication and no
// merging of same-timestamp fills.
func (j *Journal) Record(f domain.Fill) *TradeRecord {
	if f.Qty == 0 {
		return nil
	}

	side := domain.OrderSideBuy
	qty := f.Qty
	if f.Qty < 0 {
		side = domain.OrderSideSell
		qty = -f.Qty
	}

	rec := TradeRecord{
		Time:  f.Timestamp,
		Side:  side,
		Price: f.Price,
		Qty:   qty,
	}
	j.records = append(j.records, rec)
	return &j.records[len(j.records)-1]
}

// Records returns a copy of the trade log in append order.
func (j *Journal) Records() []TradeRecord {
	out := make([]TradeRecord, len(j.records))
	copy(out, j.records)
	return out
}

// Len returns the number of recorded trades.
func (j *Journal) Len() int { return len(j.records) }
