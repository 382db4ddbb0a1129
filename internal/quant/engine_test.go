package quant

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 9, 16, 12, 0, 0, 0, time.UTC)

func newTestEngine() *Engine {
	return NewEngine(DefaultScoring())
}

func TestComputeRejectsZeroPremium(t *testing.T) {
	e := newTestEngine()

	_, ok := e.Compute(Input{EntryPrice: 0, Strike: 150}, testNow)
	assert.False(t, ok)

	_, ok = e.Compute(Input{EntryPrice: -1.5, Strike: 150}, testNow)
	assert.False(t, ok)
}

func TestComputeAllFieldsFinite(t *testing.T) {
	e := newTestEngine()

	inputs := []Input{
		{EntryPrice: 2.5, Strike: 150, Spot: 148, Volume: 1200, ImpliedVol: 0.35, DaysToExpiry: 45},
		{EntryPrice: 0.01, Strike: 0, Spot: 0, Volume: 0, ImpliedVol: 0, DaysToExpiry: 0},
		{EntryPrice: 900, Strike: 5, Spot: 10000, Volume: 1e9, ImpliedVol: 12, DaysToExpiry: 1200},
	}
	for _, in := range inputs {
		r, ok := e.Compute(in, testNow)
		require.True(t, ok)

		fields := []float64{
			r.MeanReturn, r.Volatility, r.DownsideDeviation, r.CAGR,
			r.MaxDrawdown, r.Sharpe, r.Sortino, r.Calmar,
			r.KellyFraction, r.CompositeScore,
		}
		for i, f := range fields {
			assert.False(t, math.IsNaN(f) || math.IsInf(f, 0), "field %d not finite: %v", i, f)
		}
	}
}

func TestComputeKellyWithinBand(t *testing.T) {
	e := newTestEngine()

	r, ok := e.Compute(Input{
		EntryPrice: 1.2, Strike: 100, Spot: 99,
		Volume: 5000, ImpliedVol: 0.4, DaysToExpiry: 120,
	}, testNow)
	require.True(t, ok)

	assert.GreaterOrEqual(t, r.KellyFraction, 0.0)
	assert.LessOrEqual(t, r.KellyFraction, 0.25)
}

func TestComputeCompositeCapped(t *testing.T) {
	e := newTestEngine()

	r, ok := e.Compute(Input{
		EntryPrice: 0.5, Strike: 100, Spot: 100,
		Volume: 50000, ImpliedVol: 3.0, DaysToExpiry: 400,
	}, testNow)
	require.True(t, ok)

	assert.LessOrEqual(t, r.CompositeScore, 5.0)
}

func TestComputeHorizonRaisesExpectedReturn(t *testing.T) {
	e := newTestEngine()
	base := Input{EntryPrice: 2.0, Strike: 100, Spot: 100, Volume: 500, ImpliedVol: 0.3}

	short := base
	short.DaysToExpiry = 20
	long := base
	long.DaysToExpiry = 400

	rs, ok := e.Compute(short, testNow)
	require.True(t, ok)
	rl, ok := e.Compute(long, testNow)
	require.True(t, ok)

	assert.Greater(t, rl.MeanReturn, rs.MeanReturn)
}

func TestVaR95NonNegative(t *testing.T) {
	e := newTestEngine()

	cases := []struct{ vol, mean, tte float64 }{
		{0.3, 0.2, 30},
		{0.3, -0.5, 30},
		{0.3, 0.0, 365},
		{2.0, 0.01, 5},
		{0, 0.2, 30},
		{0.3, 0.2, 0},
	}
	for _, c := range cases {
		assert.GreaterOrEqual(t, e.VaR95(c.vol, c.mean, c.tte), 0.0)
	}
}

func TestExpectedShortfallScalesVaR(t *testing.T) {
	e := newTestEngine()

	v := e.VaR95(0.4, 0.0, 90)
	es := e.ExpectedShortfall(0.4, 0.0, 90)

	assert.GreaterOrEqual(t, es, v)
	assert.LessOrEqual(t, es, v*1.5+1e-9)
}

func TestRiskFreeRateBandAndDeterminism(t *testing.T) {
	e := newTestEngine()

	for _, ts := range []time.Time{
		time.Unix(0, 0),
		time.Unix(1_700_000_000, 0),
		time.Unix(1_700_086_399, 0),
	} {
		r := e.RiskFreeRate(ts)
		assert.GreaterOrEqual(t, r, 0.01)
		assert.LessOrEqual(t, r, 0.08)
		assert.Equal(t, r, e.RiskFreeRate(ts))
	}
}

func TestExpectedMoveReturnDirectionality(t *testing.T) {
	e := newTestEngine()

	// Deep in-the-money call should beat the matching put.
	call := e.ExpectedMoveReturn(2.0, 100, 120, 0.3, 60, true, 1000, 1000)
	put := e.ExpectedMoveReturn(2.0, 100, 120, 0.3, 60, false, 1000, 1000)
	assert.Greater(t, call, put)

	// Clamped to [0, 1].
	extreme := e.ExpectedMoveReturn(0.01, 10, 1000, 5.0, 700, true, 1e7, 1e7)
	assert.LessOrEqual(t, extreme, 1.0)

	assert.Equal(t, 0.0, e.ExpectedMoveReturn(0, 100, 100, 0.3, 30, true, 100, 100))
}

func TestComputeGreeksGuards(t *testing.T) {
	zero := ComputeGreeks(100, 100, 0.3, 0, true)
	assert.Zero(t, zero)

	zero = ComputeGreeks(100, 100, 0, 30, true)
	assert.Zero(t, zero)

	zero = ComputeGreeks(100, 0, 0.3, 30, true)
	assert.Zero(t, zero)
}

func TestComputeGreeksDeltaBounds(t *testing.T) {
	call := ComputeGreeks(100, 100, 0.3, 60, true)
	assert.Greater(t, call.Delta, 0.0)
	assert.Less(t, call.Delta, 1.0)
	assert.Greater(t, call.Gamma, 0.0)
	assert.Greater(t, call.Vega, 0.0)
	assert.Less(t, call.Theta, 0.0)

	put := ComputeGreeks(100, 100, 0.3, 60, false)
	assert.Less(t, put.Delta, 0.0)
	assert.Greater(t, put.Delta, -1.0)
	assert.InDelta(t, call.Delta-1.0, put.Delta, 1e-12)
}

func TestErfApproximationAccuracy(t *testing.T) {
	for _, x := range []float64{-3, -1.5, -0.5, 0, 0.5, 1.5, 3} {
		assert.InDelta(t, math.Erf(x), erfApprox(x), 1e-6, "x=%v", x)
	}
}
