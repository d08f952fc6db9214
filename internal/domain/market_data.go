// internal/domain/market_data.go
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MarketData is an immutable snapshot of market state for one variant as of
// SnapshotAt. A refresh replaces the whole snapshot; there is no partial
// update, so lowest ask and last sale can never drift out of sync.
type MarketData struct {
	lowestAsk     Money
	hasLowestAsk  bool
	highestBid    Money
	hasHighestBid bool
	lastSale      Money
	hasLastSale   bool
	sampleCount   int
	snapshotAt    time.Time
}

// NewMarketData builds a snapshot. Each price is optional (nil means the
// market side is empty). Present prices must share one currency.
func NewMarketData(lowestAsk, highestBid, lastSale *Money, sampleCount int, snapshotAt time.Time) (MarketData, error) {
	if sampleCount < 0 {
		return MarketData{}, newValidationError(KindInvalidMarketData, "sample_count", "sample count cannot be negative: %d", sampleCount)
	}
	if snapshotAt.IsZero() {
		return MarketData{}, newValidationError(KindInvalidMarketData, "snapshot_at", "snapshot timestamp is required")
	}
	currency := ""
	for _, m := range []*Money{lowestAsk, highestBid, lastSale} {
		if m == nil {
			continue
		}
		if currency == "" {
			currency = m.CurrencyCode()
		} else if m.CurrencyCode() != currency {
			return MarketData{}, newValidationError(KindInvalidMarketData, "currency_code", "snapshot mixes currencies %s and %s", currency, m.CurrencyCode())
		}
	}

	md := MarketData{sampleCount: sampleCount, snapshotAt: snapshotAt.UTC()}
	if lowestAsk != nil {
		md.lowestAsk, md.hasLowestAsk = *lowestAsk, true
	}
	if highestBid != nil {
		md.highestBid, md.hasHighestBid = *highestBid, true
	}
	if lastSale != nil {
		md.lastSale, md.hasLastSale = *lastSale, true
	}
	return md, nil
}

func (md MarketData) LowestAsk() (Money, bool)  { return md.lowestAsk, md.hasLowestAsk }
func (md MarketData) HighestBid() (Money, bool) { return md.highestBid, md.hasHighestBid }
func (md MarketData) LastSale() (Money, bool)   { return md.lastSale, md.hasLastSale }
func (md MarketData) SampleCount() int          { return md.sampleCount }
func (md MarketData) SnapshotAt() time.Time     { return md.snapshotAt }

// Spread returns lowest ask minus highest bid. Absent when either side is
// missing or the book is crossed (bid above ask).
func (md MarketData) Spread() (Money, bool) {
	if !md.hasLowestAsk || !md.hasHighestBid {
		return Money{}, false
	}
	spread, err := md.lowestAsk.Subtract(md.highestBid)
	if err != nil {
		return Money{}, false
	}
	return spread, true
}

// Midpoint returns the bid/ask midpoint as a bare decimal.
func (md MarketData) Midpoint() (decimal.Decimal, bool) {
	if !md.hasLowestAsk || !md.hasHighestBid {
		return decimal.Decimal{}, false
	}
	if md.lowestAsk.CurrencyCode() != md.highestBid.CurrencyCode() {
		return decimal.Decimal{}, false
	}
	sum := md.lowestAsk.Amount().Add(md.highestBid.Amount())
	return sum.Div(decimal.NewFromInt(2)), true
}

// IsStale reports whether the snapshot is older than maxAge relative to the
// caller-supplied now.
func (md MarketData) IsStale(maxAge time.Duration, now time.Time) bool {
	return now.Sub(md.snapshotAt) > maxAge
}

func (md MarketData) toRecord() map[string]interface{} {
	record := map[string]interface{}{
		"sample_count": md.sampleCount,
		"snapshot_at":  md.snapshotAt.Format(time.RFC3339Nano),
	}
	if md.hasLowestAsk {
		record["lowest_ask"] = md.lowestAsk.toRecord()
	}
	if md.hasHighestBid {
		record["highest_bid"] = md.highestBid.toRecord()
	}
	if md.hasLastSale {
		record["last_sale"] = md.lastSale.toRecord()
	}
	return record
}
