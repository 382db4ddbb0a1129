package quant

import "time"

// RiskFreeRate approximates the prevailing risk-free rate without a
// live feed: a fixed base plus a bounded intraday drift derived from
// the timestamp. Deterministic for a given instant and clamped to the
// configured band.
func (e *Engine) RiskFreeRate(now time.Time) float64 {
	drift := float64(now.Unix()%86400) / 86400.0 * 0.01
	return clamp(e.cfg.RiskFreeBase+drift, e.cfg.RiskFreeMin, e.cfg.RiskFreeMax)
}
