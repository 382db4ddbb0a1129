package quant

import (
	"math"

	"OptionFlow/internal/domain/models"
)

// ComputeGreeks evaluates single-point Black-Scholes sensitivities.
// Returns all zeros when time to expiry, implied volatility, or strike
// is non-positive rather than producing NaNs.
func ComputeGreeks(spot, strike, impliedVol, daysToExpiry float64, isCall bool) models.Greeks {
	if daysToExpiry <= 0 || impliedVol <= 0 || strike <= 0 || spot <= 0 {
		return models.Greeks{}
	}

	years := daysToExpiry / 365.0
	sqrtT := math.Sqrt(years)
	d1 := (math.Log(spot/strike) + 0.5*impliedVol*impliedVol*years) / (impliedVol * sqrtT)
	d2 := d1 - impliedVol*sqrtT

	nd1 := normCDF(d1)
	nd2 := normCDF(d2)
	phi := normPDF(d1)

	delta := nd1
	if !isCall {
		delta = nd1 - 1.0
	}
	gamma := phi / (spot * impliedVol * sqrtT)
	theta := -(spot*phi*impliedVol)/(2.0*sqrtT) - 0.01*strike*math.Exp(-0.05*years)*nd2
	vega := spot * phi * sqrtT / 100.0

	return models.Greeks{
		Delta: sanitize(delta),
		Gamma: sanitize(gamma),
		Theta: sanitize(theta),
		Vega:  sanitize(vega),
	}
}
