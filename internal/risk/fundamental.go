// Package risk scores fundamental red flags of an underlying and its
// contract: penny pricing, thin liquidity, hazardous sectors, extreme
// implied volatility, and small estimated market cap. The output is
// independent of the quantitative metrics engine.
package risk

import (
	"math"

	"OptionFlow/internal/options"
)

// Assessment is an accumulated risk score in [0,1] with one reason
// string per triggered rule.
type Assessment struct {
	Score   float64
	Factors []string
}

// Assess runs every fundamental rule against a symbol and its resolved
// contract facts. Rules are additive and independently weighted; the
// total is clamped to 1.
func Assess(symbol string, facts options.Facts) Assessment {
	var a Assessment

	switch {
	case facts.EntryPrice < 0.05:
		a.add(0.3, "Extremely low price (<$0.05) - high risk of delisting")
	case facts.EntryPrice < 0.10:
		a.add(0.2, "Very low price (<$0.10) - penny stock risk")
	}

	switch {
	case facts.Volume < 100:
		a.add(0.25, "Very low volume (<100) - execution risk")
	case facts.Volume < 500:
		a.add(0.15, "Low volume (<500) - liquidity concerns")
	}

	// Only genuine open interest counts here; the volume proxy would
	// double-penalize thin contracts.
	oi := facts.OpenInterest
	if facts.OIProxied {
		oi = 0
	}
	if oi < 50 {
		a.add(0.2, "Very low open interest (<50) - limited liquidity")
	}

	sectorScore, sectorFactors := sectorRisk(symbol)
	a.Score += sectorScore
	a.Factors = append(a.Factors, sectorFactors...)

	switch {
	case facts.ImpliedVol > 1.0:
		a.add(0.3, "Extreme volatility (>100%) - high risk")
	case facts.ImpliedVol > 0.8:
		a.add(0.2, "Very high volatility (>80%) - elevated risk")
	}

	if EstimateMarketCap(symbol, facts.EntryPrice) < 50_000_000 {
		a.add(0.25, "Small cap stock (<$50M) - high volatility risk")
	}

	a.Score = math.Min(a.Score, 1.0)
	return a
}

func (a *Assessment) add(weight float64, reason string) {
	a.Score += weight
	a.Factors = append(a.Factors, reason)
}
