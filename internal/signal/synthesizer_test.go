package signal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"OptionFlow/internal/domain/models"
	"OptionFlow/internal/quant"
)

var testNow = time.Date(2025, 9, 16, 12, 0, 0, 0, time.UTC)

func newTestSynthesizer() *Synthesizer {
	return NewSynthesizer(quant.NewEngine(quant.DefaultScoring()))
}

func liquidAnalysis(key string) models.OptionAnalysis {
	return models.OptionAnalysis{
		ContractType: models.ContractShortTerm,
		Contract: models.Contract{
			Key: key,
			Snapshot: models.OptionSnapshot{
				LatestQuote: models.OptionQuote{AskPrice: 2.5, AskSize: 1200},
			},
		},
		OptionScore:           6.5,
		UndervaluedIndicators: []string{"High volume"},
	}
}

func TestSignalTypeThresholds(t *testing.T) {
	tests := []struct {
		sentiment float64
		overall   string
		want      string
	}{
		{0.95, DirectionPut, models.SignalBuyCall},
		{0.75, DirectionPut, models.SignalBuyCall},
		{0.15, DirectionCall, models.SignalBuyPut},
		{0.35, DirectionCall, models.SignalBuyPut},
		{0.55, DirectionCall, models.SignalBuyCall},
		{0.55, DirectionPut, models.SignalBuyPut},
		{0.55, "", models.SignalBuyCall},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, signalType(tt.sentiment, tt.overall),
			"sentiment=%v overall=%q", tt.sentiment, tt.overall)
	}
}

func TestBuildBounds(t *testing.T) {
	s := newTestSynthesizer()

	sig := s.Build("AAPL", liquidAnalysis("AAPL251219C00150000"), 0.85, DirectionCall, testNow)

	assert.GreaterOrEqual(t, sig.Confidence, 0.0)
	assert.LessOrEqual(t, sig.Confidence, 1.0)
	assert.GreaterOrEqual(t, sig.RiskScore, 0.0)
	assert.LessOrEqual(t, sig.RiskScore, 1.0)
	assert.GreaterOrEqual(t, sig.FinancialMetrics.KellyFraction, 0.0)
	assert.LessOrEqual(t, sig.FinancialMetrics.KellyFraction, 1.0)
	assert.GreaterOrEqual(t, sig.FinancialMetrics.VaR95, 0.0)
}

func TestBuildPopulatesContractFields(t *testing.T) {
	s := newTestSynthesizer()

	sig := s.Build("AAPL", liquidAnalysis("AAPL251219C00150000"), 0.85, DirectionCall, testNow)

	assert.Equal(t, "AAPL", sig.Symbol)
	assert.Equal(t, models.SignalBuyCall, sig.SignalType)
	assert.Equal(t, 2.5, sig.EntryPrice)
	assert.Equal(t, 2.5, sig.MaxLoss)
	assert.InDelta(t, 150.0, sig.StrikePrice, 0.001)
	assert.Equal(t, "2025-12-19", sig.ExpirationDate)
	assert.Equal(t, models.HorizonShortTerm, sig.TimeHorizon)
	assert.Equal(t, 1200.0, sig.Volume)
}

func TestBuildLeapHorizon(t *testing.T) {
	s := newTestSynthesizer()
	a := liquidAnalysis("AAPL270115C00200000")
	a.ContractType = models.ContractLeap

	sig := s.Build("AAPL", a, 0.85, DirectionCall, testNow)

	assert.Equal(t, models.HorizonLeap, sig.TimeHorizon)
}

func TestBuildFundamentalRiskPenalizesConfidence(t *testing.T) {
	s := newTestSynthesizer()

	risky := liquidAnalysis("ATYR251219C00001000")
	risky.Contract.Snapshot.LatestQuote = models.OptionQuote{AskPrice: 0.04, AskSize: 40}

	clean := s.Build("AAPL", liquidAnalysis("AAPL251219C00150000"), 0.85, DirectionCall, testNow)
	penalized := s.Build("ATYR", risky, 0.85, DirectionCall, testNow)

	assert.Less(t, penalized.Confidence, clean.Confidence)
	assert.Greater(t, penalized.RiskScore, clean.RiskScore)
}

func TestBuildReasoningOrder(t *testing.T) {
	s := newTestSynthesizer()

	sig := s.Build("AAPL", liquidAnalysis("AAPL251219C00150000"), 0.85, DirectionCall, testNow)

	assert.NotEmpty(t, sig.Reasoning)
	assert.Equal(t, "Sentiment: call (confidence: 0.85)", sig.Reasoning[0])
}

func TestAdmitGate(t *testing.T) {
	assert.True(t, Admit(models.TradingSignal{RiskScore: 0.5, Confidence: 0.5}))
	assert.False(t, Admit(models.TradingSignal{RiskScore: 0.9, Confidence: 0.5}))
	assert.False(t, Admit(models.TradingSignal{RiskScore: 0.95, Confidence: 0.5}))
	assert.False(t, Admit(models.TradingSignal{RiskScore: 0.5, Confidence: 0.1}))
	assert.False(t, Admit(models.TradingSignal{RiskScore: 0.5, Confidence: 0.05}))
}

func TestTechnicalRiskBounds(t *testing.T) {
	cases := []struct{ iv, dd, vol, oi, tte float64 }{
		{0.3, 0.3, 1000, 1000, 60},
		{5.0, 2.0, 0, 0, 0},
		{0, 0, 1e9, 1e9, 1e6},
	}
	for _, c := range cases {
		r := technicalRisk(c.iv, c.dd, c.vol, c.oi, c.tte)
		assert.GreaterOrEqual(t, r, 0.0)
		assert.LessOrEqual(t, r, 1.0)
	}
}

func TestBlendConfidenceWeights(t *testing.T) {
	// Everything maxed out sums to 1.
	assert.InDelta(t, 1.0, blendConfidence(1.0, 10, 5, 10000, 10000), 1e-9)
	// Nothing contributes.
	assert.Equal(t, 0.0, blendConfidence(0, 0, 0, 0, 0))
	// Sentiment alone carries 40%.
	assert.InDelta(t, 0.4, blendConfidence(1.0, 0, 0, 0, 0), 1e-9)
}
