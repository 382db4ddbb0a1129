// Package quant computes per-contract risk and return metrics from a
// single option snapshot. All formulas are single-point estimates, not
// a backtest: there is one observation per contract, so moneyness,
// implied volatility, liquidity, and time to expiry drive everything.
package quant

import (
	"math"
	"time"
)

// Input is the normalized view of one contract the engine scores.
// Zero values for Strike, Spot, and ImpliedVol mean "unknown" and are
// resolved through documented defaults inside Compute.
type Input struct {
	EntryPrice   float64
	Strike       float64
	Spot         float64
	Volume       float64
	OpenInterest float64
	ImpliedVol   float64
	DaysToExpiry float64
}

// Result is the full metrics block for one contract. Every field is
// finite.
type Result struct {
	MeanReturn        float64
	Volatility        float64
	DownsideDeviation float64
	CAGR              float64
	MaxDrawdown       float64
	Sharpe            float64
	Sortino           float64
	Calmar            float64
	KellyFraction     float64
	CompositeScore    float64
}

// Engine scores option contracts using a fixed ScoringConfig.
type Engine struct {
	cfg ScoringConfig
}

// NewEngine creates an Engine with the given scoring parameters.
func NewEngine(cfg ScoringConfig) *Engine {
	return &Engine{cfg: cfg}
}

// Compute derives the metrics block for one contract. Returns false
// when the entry price is non-positive: a contract with no premium
// cannot be scored.
func (e *Engine) Compute(in Input, now time.Time) (Result, bool) {
	if in.EntryPrice <= 0 {
		return Result{}, false
	}

	strike := in.Strike
	if strike <= 0 {
		strike = in.EntryPrice * 1.1
	}
	iv := in.ImpliedVol
	if iv <= 0 {
		iv = 0.3
	}
	spot := in.Spot
	if spot <= 0 {
		// Assume slightly out-of-the-money when no underlying quote is
		// available.
		spot = strike * 0.95
	}
	tte := in.DaysToExpiry
	if tte <= 0 {
		tte = 30.0
	}

	moneyness := 1.0
	if strike > 0 {
		moneyness = spot / strike
	}

	// Expected daily return from moneyness bucket, scaled by horizon.
	var baseReturn float64
	switch {
	case moneyness > 0.9 && moneyness < 1.1:
		baseReturn = iv * 0.8
	case moneyness > 0.8 && moneyness < 1.2:
		baseReturn = iv * 0.6
	default:
		baseReturn = iv * 0.3
	}
	timeFactor := 1.0
	switch {
	case tte > 365:
		timeFactor = 1.5
	case tte > 90:
		timeFactor = 1.2
	}
	expectedReturn := baseReturn * timeFactor

	volatility := iv * (1.0 + math.Min(in.Volume/10000.0, 1.0))

	dailyRiskFree := e.RiskFreeRate(now) / 252.0
	sharpe := 0.0
	if volatility > 0 {
		sharpe = (expectedReturn - dailyRiskFree) / volatility
	}

	downside := e.downsideDeviation(volatility, expectedReturn, tte)
	sortino := 0.0
	if downside > 0 {
		sortino = (expectedReturn - dailyRiskFree) / downside
	}

	maxDrawdown := 0.3
	if tte > 0 {
		horizon := math.Min(tte/30.0, 1.0)
		maxDrawdown = (0.2 + iv*0.5) * (1.0 - horizon*0.3)
	}

	cagr := expectedReturn * 252.0
	calmar := 0.0
	if maxDrawdown > 0 {
		calmar = cagr / maxDrawdown
	}

	kelly := e.kellyFraction(moneyness, expectedReturn, in.Volume, tte, volatility, in.EntryPrice)
	composite := e.compositeScore(sharpe, sortino, calmar, volatility, tte)

	return Result{
		MeanReturn:        sanitize(expectedReturn),
		Volatility:        sanitize(volatility),
		DownsideDeviation: sanitize(volatility * 0.8),
		CAGR:              sanitize(cagr),
		MaxDrawdown:       sanitize(maxDrawdown),
		Sharpe:            sanitize(sharpe),
		Sortino:           sanitize(sortino),
		Calmar:            sanitize(calmar),
		KellyFraction:     sanitize(kelly),
		CompositeScore:    sanitize(composite),
	}, true
}

// kellyFraction applies the Kelly criterion with a moneyness-bucketed
// win probability, then damps by liquidity and horizon. Positive
// results are clamped to the configured position band.
func (e *Engine) kellyFraction(moneyness, expectedReturn, volume, tte, volatility, entryPrice float64) float64 {
	if volatility <= 0 || entryPrice <= 0 {
		return 0
	}

	var winProb float64
	switch {
	case moneyness > 0.95 && moneyness < 1.05:
		winProb = 0.60
	case moneyness > 0.85 && moneyness < 1.15:
		winProb = 0.50
	case moneyness > 0.7 && moneyness < 1.3:
		winProb = 0.40
	default:
		winProb = 0.25
	}

	var potentialWin float64
	if moneyness > 0.9 {
		potentialWin = expectedReturn*3.0 + 0.5
	} else {
		potentialWin = expectedReturn*5.0 + 0.2
	}
	const potentialLoss = 1.0 // max loss is the premium, normalized

	raw := (winProb*potentialWin - (1.0-winProb)*potentialLoss) / potentialWin

	liquidityFactor := 0.6
	switch {
	case volume > 1000:
		liquidityFactor = 1.0
	case volume > 500:
		liquidityFactor = 0.8
	}
	timeFactor := 1.0
	if tte <= 30 {
		timeFactor = 0.7
	}

	adjusted := raw * liquidityFactor * timeFactor
	if adjusted <= 0 {
		return 0
	}
	return clamp(adjusted, e.cfg.KellyFloor, e.cfg.KellyCeil)
}

// compositeScore blends capped Sharpe/Sortino/Calmar with weights that
// adapt to the volatility regime and time horizon.
func (e *Engine) compositeScore(sharpe, sortino, calmar, volatility, tte float64) float64 {
	cs := math.Min(sharpe, e.cfg.SharpeCap)
	cso := math.Min(sortino, e.cfg.SortinoCap)
	cc := math.Min(calmar, e.cfg.CalmarCap)

	sw := e.cfg.BaseSharpeWeight
	sow := e.cfg.BaseSortinoWeight
	cw := e.cfg.BaseCalmarWeight

	if volatility > e.cfg.HighVolThreshold {
		sow, sw, cw = 0.5, 0.3, 0.2
	} else if volatility < e.cfg.LowVolThreshold {
		sw, sow, cw = 0.5, 0.3, 0.2
	}
	if tte > e.cfg.LongHorizonDays {
		cw, sw, sow = 0.3, 0.35, 0.35
	}

	return math.Min(sw*cs+sow*cso+cw*cc, e.cfg.CompositeCap)
}

// downsideDeviation estimates the below-target share of volatility,
// 60-90% depending on expected return and stretched slightly for long
// horizons.
func (e *Engine) downsideDeviation(volatility, expectedReturn, tte float64) float64 {
	if volatility <= 0 {
		return 0
	}
	ratio := 0.6 + math.Min(expectedReturn*0.3, 0.3)
	timeFactor := 1.0 + math.Min(tte/365.0, 0.5)*0.2
	return volatility * ratio * timeFactor
}

// VaR95 estimates the 95% value at risk over the contract's remaining
// life as a non-negative loss fraction of the premium.
func (e *Engine) VaR95(volatility, meanReturn, tte float64) float64 {
	if volatility <= 0 || tte <= 0 {
		return 0
	}
	timeAdjusted := volatility * math.Sqrt(tte/365.0)
	if meanReturn <= 0 {
		return sanitize(2.0 * timeAdjusted)
	}
	v := meanReturn - 1.645*timeAdjusted
	return sanitize(math.Abs(math.Min(v, 0)))
}

// ExpectedShortfall scales VaR95 by a volatility-dependent multiplier
// in [1.0, 1.5].
func (e *Engine) ExpectedShortfall(volatility, meanReturn, tte float64) float64 {
	if volatility <= 0 || tte <= 0 {
		return 0
	}
	multiplier := 1.0 + math.Min(volatility*0.5, 0.5)
	return sanitize(e.VaR95(volatility, meanReturn, tte) * multiplier)
}

// ExpectedMoveReturn estimates the directional return of holding the
// contract, from moneyness distance in the favorable direction damped
// by time, liquidity, and the volatility regime. Clamped to [0, 1].
func (e *Engine) ExpectedMoveReturn(entryPrice, strike, spot, iv, tte float64, isCall bool, volume, openInterest float64) float64 {
	if entryPrice <= 0 || tte <= 0 || spot <= 0 {
		return 0
	}
	moneyness := 1.0
	if strike > 0 {
		moneyness = spot / strike
	}

	var base float64
	if isCall {
		base = math.Max(moneyness-0.8, 0) * 0.5
	} else {
		base = math.Max(0.8-moneyness, 0) * 0.5
	}

	timeFactor := math.Min(tte/30.0, 1.0)
	liquidity := (math.Min(volume/1000.0, 1.0) + math.Min(openInterest/1000.0, 1.0)) / 2.0
	volFactor := math.Min(iv/0.3, 2.0)

	return clamp(base*timeFactor*(0.5+0.5*liquidity)*volFactor, 0.0, 1.0)
}
