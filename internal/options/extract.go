// Package options selects and scores contracts out of a snapshot map.
// Feeds routinely omit open interest, implied volatility, and the
// underlying quote, so extraction runs every field through an ordered
// fallback ladder and records which substitutions were made.
package options

import (
	"math"
	"time"

	"OptionFlow/internal/contract"
	"OptionFlow/internal/domain/models"
)

// Facts is the fully resolved numeric view of one contract. Fields are
// never NaN; unknowns are filled with documented defaults.
type Facts struct {
	EntryPrice   float64
	Strike       float64
	Expiration   string
	DaysToExpiry float64
	DateKnown    bool
	Spot         float64
	ImpliedVol   float64
	IVEstimated  bool
	Volume       float64
	OpenInterest float64
	OIProxied    bool
}

// Extract resolves every scored field of a contract, applying the
// fallback ladder in a fixed order: key-encoded values first, snapshot
// fields next, estimates last.
func Extract(c models.Contract, now time.Time) Facts {
	f := Facts{
		EntryPrice: c.EntryPrice(),
		Volume:     c.Volume(),
	}

	key := contract.Parse(c.Key)
	f.Strike = key.Strike
	f.Expiration = key.Expiration

	if days, ok := contract.DaysUntil(key.Expiration, now); ok {
		f.DateKnown = true
		f.DaysToExpiry = math.Max(days, 1.0)
	} else {
		f.DaysToExpiry = 30.0
	}

	f.OpenInterest, f.OIProxied = c.OpenInterestOrProxy()

	if c.Snapshot.ImpliedVolatility != nil {
		f.ImpliedVol = *c.Snapshot.ImpliedVolatility
	} else {
		// Rough estimate from horizon and liquidity: 20-30% base plus
		// up to 10% for heavy volume.
		volumeFactor := math.Min(f.Volume/10000.0, 1.0)
		f.ImpliedVol = 0.2 + (f.DaysToExpiry/365.0)*0.1 + volumeFactor*0.1
		f.IVEstimated = true
	}

	switch {
	case c.Snapshot.UnderlyingPrice != nil:
		f.Spot = *c.Snapshot.UnderlyingPrice
	case f.Strike > 0:
		// Assume slightly out-of-the-money.
		f.Spot = f.Strike * 0.95
	default:
		f.Spot = f.EntryPrice * 100.0
	}

	return f
}
