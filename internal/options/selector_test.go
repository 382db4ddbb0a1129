package options

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"OptionFlow/internal/domain/models"
	"OptionFlow/internal/quant"
)

var testNow = time.Date(2025, 9, 16, 12, 0, 0, 0, time.UTC)

func newTestSelector() *Selector {
	return NewSelector(quant.NewEngine(quant.DefaultScoring()))
}

func snapshot(ask, askSize float64) models.OptionSnapshot {
	return models.OptionSnapshot{
		LatestQuote: models.OptionQuote{AskPrice: ask, AskSize: askSize},
	}
}

func TestRankByVolumeOrdersDescending(t *testing.T) {
	snaps := map[string]models.OptionSnapshot{
		"XYZ251219C00100000": snapshot(2.5, 300),
		"XYZ251219C00105000": snapshot(1.8, 1200),
		"XYZ251219C00110000": snapshot(0.9, 700),
	}

	ranked := RankByVolume(snaps)

	require.Len(t, ranked, 3)
	assert.Equal(t, "XYZ251219C00105000", ranked[0].Key)
	assert.Equal(t, "XYZ251219C00110000", ranked[1].Key)
	assert.Equal(t, "XYZ251219C00100000", ranked[2].Key)
}

func TestRankByVolumeTieBreaksOnKey(t *testing.T) {
	snaps := map[string]models.OptionSnapshot{
		"B": snapshot(1.0, 500),
		"A": snapshot(2.0, 500),
	}

	ranked := RankByVolume(snaps)

	require.Len(t, ranked, 2)
	assert.Equal(t, "A", ranked[0].Key)
}

func TestAnalyzePrefersHigherVolumeContract(t *testing.T) {
	s := newTestSelector()
	snaps := map[string]models.OptionSnapshot{
		"XYZ251219C00100000": snapshot(2.5, 1200),
		"XYZ251219C00105000": snapshot(2.5, 300),
	}

	out := s.Analyze(snaps, testNow)

	require.Len(t, out, 1)
	assert.Equal(t, "XYZ251219C00100000", out[0].Contract.Key)
	assert.Equal(t, models.ContractShortTerm, out[0].ContractType)
}

func TestAnalyzeSingleContract(t *testing.T) {
	s := newTestSelector()
	snaps := map[string]models.OptionSnapshot{
		"XYZ251219C00100000": snapshot(1.5, 200),
	}

	out := s.Analyze(snaps, testNow)

	require.Len(t, out, 1)
	assert.Equal(t, models.ContractShortTerm, out[0].ContractType)
}

func TestAnalyzeEmptySnapshot(t *testing.T) {
	s := newTestSelector()

	assert.Empty(t, s.Analyze(nil, testNow))
	assert.Empty(t, s.Analyze(map[string]models.OptionSnapshot{}, testNow))
}

func TestAnalyzeEmitsExactlyOneSlot(t *testing.T) {
	s := newTestSelector()
	snaps := map[string]models.OptionSnapshot{
		"XYZ251219C00100000": snapshot(2.5, 1200),
		"XYZ251219C00105000": snapshot(1.8, 900),
		"XYZ251219C00110000": snapshot(0.9, 700),
		"XYZ251219C00115000": snapshot(0.5, 600),
	}

	out := s.Analyze(snaps, testNow)

	assert.Len(t, out, 1)
}

func TestScoreRewardsVolume(t *testing.T) {
	s := newTestSelector()

	heavy := models.Contract{Key: "XYZ251219C00100000", Snapshot: snapshot(2.0, 5000)}
	thin := models.Contract{Key: "XYZ251219C00100000", Snapshot: snapshot(2.0, 50)}

	assert.Greater(t, s.Score(heavy, testNow), s.Score(thin, testNow))
}

func TestScorePenalizesImminentExpiry(t *testing.T) {
	s := newTestSelector()

	// 2025-09-26 is ten days out from the fixed test clock.
	near := models.Contract{Key: "XYZ250926C00100000", Snapshot: snapshot(2.0, 500)}
	// 2026-03-20 sits in the 30-365 day sweet spot.
	mid := models.Contract{Key: "XYZ260320C00100000", Snapshot: snapshot(2.0, 500)}

	assert.Greater(t, s.Score(mid, testNow), s.Score(near, testNow))
}

func TestExtractFallbacks(t *testing.T) {
	iv := 0.55
	oi := 4200.0
	spot := 101.5

	full := models.Contract{
		Key: "XYZ251219C00100000",
		Snapshot: models.OptionSnapshot{
			LatestQuote:       models.OptionQuote{AskPrice: 2.5, AskSize: 800},
			ImpliedVolatility: &iv,
			OpenInterest:      &oi,
			UnderlyingPrice:   &spot,
		},
	}
	f := Extract(full, testNow)
	assert.Equal(t, 0.55, f.ImpliedVol)
	assert.False(t, f.IVEstimated)
	assert.Equal(t, 4200.0, f.OpenInterest)
	assert.False(t, f.OIProxied)
	assert.Equal(t, 101.5, f.Spot)
	assert.True(t, f.DateKnown)
	assert.InDelta(t, 100.0, f.Strike, 0.001)

	bare := models.Contract{
		Key:      "XYZ251219C00100000",
		Snapshot: snapshot(2.5, 800),
	}
	f = Extract(bare, testNow)
	assert.True(t, f.IVEstimated)
	assert.Greater(t, f.ImpliedVol, 0.0)
	assert.True(t, f.OIProxied)
	assert.Equal(t, 800.0, f.OpenInterest)
	assert.InDelta(t, 95.0, f.Spot, 0.001) // strike * 0.95
}

func TestExtractUnparseableKeyUsesDefaults(t *testing.T) {
	c := models.Contract{Key: "JUNK", Snapshot: snapshot(2.5, 100)}

	f := Extract(c, testNow)

	assert.False(t, f.DateKnown)
	assert.Equal(t, 30.0, f.DaysToExpiry)
	assert.Equal(t, 0.0, f.Strike)
	assert.InDelta(t, 250.0, f.Spot, 0.001) // entry * 100
}

func TestIndicators(t *testing.T) {
	facts := Facts{Volume: 1500, EntryPrice: 0.8}

	out := indicators(facts, 0.9)

	assert.Contains(t, out, "High volume")
	assert.Contains(t, out, "Low cost entry")
	assert.Contains(t, out, "Strong sentiment")

	assert.Empty(t, indicators(Facts{Volume: 10, EntryPrice: 5}, 0.1))
}
