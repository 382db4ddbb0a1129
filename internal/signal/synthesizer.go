// Package signal turns a selected option contract plus its sentiment
// and risk context into a trading signal, and gates which signals are
// admitted into the final batch.
package signal

import (
	"fmt"
	"math"
	"time"

	"OptionFlow/internal/domain/models"
	"OptionFlow/internal/options"
	"OptionFlow/internal/quant"
	"OptionFlow/internal/risk"
)

// Overall batch sentiment directions, as fed into Build.
const (
	DirectionCall = "call"
	DirectionPut  = "put"
)

// Admission gate bounds. Signals at or past either bound are dropped
// from the batch entirely rather than downweighted.
const (
	maxAdmittedRisk = 0.9
	minAdmittedConf = 0.1
)

// Synthesizer builds trading signals from selected contracts.
type Synthesizer struct {
	engine *quant.Engine
}

// NewSynthesizer creates a Synthesizer scoring with the given engine.
func NewSynthesizer(engine *quant.Engine) *Synthesizer {
	return &Synthesizer{engine: engine}
}

// Build assembles one trading signal. sentimentScore is the symbol's
// bullishness in [0,1]; overallSentiment is the batch direction used
// when the symbol itself is neutral.
func (s *Synthesizer) Build(symbol string, analysis models.OptionAnalysis, sentimentScore float64, overallSentiment string, now time.Time) models.TradingSignal {
	facts := options.Extract(analysis.Contract, now)
	fundamental := risk.Assess(symbol, facts)
	isCall := overallSentiment == DirectionCall

	fm := s.financialMetrics(facts, now)

	horizon := models.HorizonShortTerm
	if analysis.ContractType == models.ContractLeap {
		horizon = models.HorizonLeap
	}

	technical := technicalRisk(facts.ImpliedVol, fm.MaxDrawdown, facts.Volume, facts.OpenInterest, facts.DaysToExpiry)
	riskScore := math.Min(technical*0.6+fundamental.Score*0.4, 1.0)

	baseConfidence := blendConfidence(sentimentScore, analysis.OptionScore, fm.CompositeScore, facts.Volume, facts.OpenInterest)
	confidence := applyFundamentalPenalty(baseConfidence, fundamental.Score)

	reasoning := make([]string, 0, 4+len(analysis.UndervaluedIndicators))
	reasoning = append(reasoning, fmt.Sprintf("Sentiment: %s (confidence: %.2f)", overallSentiment, sentimentScore))
	reasoning = append(reasoning, analysis.UndervaluedIndicators...)
	for i, factor := range fundamental.Factors {
		if i == 2 {
			break
		}
		reasoning = append(reasoning, factor)
	}
	if fm.SharpeRatio > 1.0 {
		reasoning = append(reasoning, "Strong risk-adjusted returns")
	}
	if facts.Volume > 1000 {
		reasoning = append(reasoning, "High volume")
	}

	return models.TradingSignal{
		Symbol:            symbol,
		SignalType:        signalType(sentimentScore, overallSentiment),
		Confidence:        confidence,
		SentimentScore:    sentimentScore,
		RiskScore:         riskScore,
		ExpectedReturn:    s.engine.ExpectedMoveReturn(facts.EntryPrice, facts.Strike, facts.Spot, facts.ImpliedVol, facts.DaysToExpiry, isCall, facts.Volume, facts.OpenInterest),
		MaxLoss:           facts.EntryPrice,
		TimeHorizon:       horizon,
		EntryPrice:        facts.EntryPrice,
		StrikePrice:       facts.Strike,
		ExpirationDate:    facts.Expiration,
		Volume:            facts.Volume,
		OpenInterest:      facts.OpenInterest,
		ImpliedVolatility: facts.ImpliedVol,
		Greeks:            quant.ComputeGreeks(facts.Spot, facts.Strike, facts.ImpliedVol, facts.DaysToExpiry, isCall),
		FinancialMetrics:  fm,
		Reasoning:         reasoning,
	}
}

// Admit reports whether a signal passes the batch admission gate.
func Admit(sig models.TradingSignal) bool {
	return sig.RiskScore < maxAdmittedRisk && sig.Confidence > minAdmittedConf
}

func (s *Synthesizer) financialMetrics(facts options.Facts, now time.Time) models.FinancialMetrics {
	r, ok := s.engine.Compute(quant.Input{
		EntryPrice:   facts.EntryPrice,
		Strike:       facts.Strike,
		Spot:         facts.Spot,
		Volume:       facts.Volume,
		OpenInterest: facts.OpenInterest,
		ImpliedVol:   facts.ImpliedVol,
		DaysToExpiry: facts.DaysToExpiry,
	}, now)
	if !ok {
		return models.FinancialMetrics{}
	}
	return models.FinancialMetrics{
		SharpeRatio:       r.Sharpe,
		SortinoRatio:      r.Sortino,
		CalmarRatio:       r.Calmar,
		MaxDrawdown:       r.MaxDrawdown,
		Volatility:        r.Volatility,
		CompositeScore:    r.CompositeScore,
		KellyFraction:     r.KellyFraction,
		VaR95:             s.engine.VaR95(r.Volatility, r.MeanReturn, facts.DaysToExpiry),
		ExpectedShortfall: s.engine.ExpectedShortfall(r.Volatility, r.MeanReturn, facts.DaysToExpiry),
	}
}

// signalType maps symbol sentiment onto a direction, falling back to
// the batch-level direction in the neutral band.
func signalType(sentimentScore float64, overallSentiment string) string {
	switch {
	case sentimentScore > 0.9:
		return models.SignalBuyCall
	case sentimentScore < 0.2:
		return models.SignalBuyPut
	case sentimentScore > 0.7:
		return models.SignalBuyCall
	case sentimentScore < 0.4:
		return models.SignalBuyPut
	case overallSentiment == DirectionPut:
		return models.SignalBuyPut
	default:
		return models.SignalBuyCall
	}
}

// technicalRisk weighs volatility, drawdown, liquidity, and time decay
// into a [0,1] score.
func technicalRisk(impliedVol, maxDrawdown, volume, openInterest, tte float64) float64 {
	volRisk := math.Min(impliedVol/0.5, 1.0) * 0.4
	drawdownRisk := math.Min(maxDrawdown/0.5, 1.0) * 0.3
	liquidity := (math.Min(volume/10000.0, 1.0) + math.Min(openInterest/10000.0, 1.0)) / 2.0
	liquidityRisk := (1.0 - liquidity) * 0.2
	timeRisk := (1.0 - math.Min(tte/30.0, 1.0)) * 0.1
	return clamp01(volRisk + drawdownRisk + liquidityRisk + timeRisk)
}

// blendConfidence is the weighted mix of sentiment (40%), option score
// (30%), composite metrics (20%), and liquidity (10%).
func blendConfidence(sentimentScore, optionScore, compositeScore, volume, openInterest float64) float64 {
	sentiment := sentimentScore * 0.4
	option := math.Min(optionScore/10.0, 1.0) * 0.3
	financial := math.Min(compositeScore/5.0, 1.0) * 0.2
	liquidity := (math.Min(volume/10000.0, 1.0) + math.Min(openInterest/10000.0, 1.0)) / 2.0 * 0.1
	return clamp01(sentiment + option + financial + liquidity)
}

func applyFundamentalPenalty(confidence, fundamentalRisk float64) float64 {
	switch {
	case fundamentalRisk > 0.7:
		return confidence * 0.3
	case fundamentalRisk > 0.5:
		return confidence * 0.6
	case fundamentalRisk > 0.3:
		return confidence * 0.8
	default:
		return confidence
	}
}

func clamp01(x float64) float64 {
	return math.Min(math.Max(x, 0), 1)
}
