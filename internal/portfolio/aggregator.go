// Package portfolio reduces an admitted signal batch into the summary
// and portfolio-level risk views. Every function here is a pure
// reduction: identical input batches produce identical output aside
// from the embedded timestamp.
package portfolio

import (
	"math"
	"time"

	"gonum.org/v1/gonum/stat"

	"OptionFlow/internal/domain/models"
	"OptionFlow/internal/risk"
)

// Summarize reduces a signal batch to counts, confidence, risk tier,
// and a recommended position size.
func Summarize(signals []models.TradingSignal, now time.Time) models.MarketSummary {
	var bullish, bearish, highConfidence int
	confidences := make([]float64, 0, len(signals))
	risks := make([]float64, 0, len(signals))

	for _, s := range signals {
		switch s.SignalType {
		case models.SignalBuyCall:
			bullish++
		case models.SignalBuyPut:
			bearish++
		}
		if s.Confidence > 0.7 {
			highConfidence++
		}
		confidences = append(confidences, s.Confidence)
		risks = append(risks, s.RiskScore)
	}

	overallConfidence := 0.0
	avgRisk := 0.5
	if len(signals) > 0 {
		overallConfidence = stat.Mean(confidences, nil)
		avgRisk = stat.Mean(risks, nil)
	}

	sentiment := models.MarketNeutral
	if float64(bullish) > float64(bearish)*1.5 {
		sentiment = models.MarketBullish
	} else if float64(bearish) > float64(bullish)*1.5 {
		sentiment = models.MarketBearish
	}

	return models.MarketSummary{
		Timestamp:               now,
		TotalSignals:            len(signals),
		BullishSignals:          bullish,
		BearishSignals:          bearish,
		HighConfidenceSignals:   highConfidence,
		MarketSentiment:         sentiment,
		OverallConfidence:       overallConfidence,
		RiskLevel:               riskTier(avgRisk),
		RecommendedPositionSize: positionSize(overallConfidence, avgRisk, len(signals)),
	}
}

// ComputeRiskMetrics derives the portfolio risk view. An empty batch
// yields the zero view rather than dividing by zero.
func ComputeRiskMetrics(signals []models.TradingSignal) models.RiskMetrics {
	if len(signals) == 0 {
		return models.RiskMetrics{
			SectorExposure:   map[string]float64{},
			VolatilityRegime: models.TierLow,
		}
	}

	symbols := make([]string, 0, len(signals))
	weightedVaR := make([]float64, 0, len(signals))
	vols := make([]float64, 0, len(signals))
	maxDrawdown := 0.0
	for _, s := range signals {
		symbols = append(symbols, s.Symbol)
		weightedVaR = append(weightedVaR, s.FinancialMetrics.VaR95*s.ExpectedReturn)
		vols = append(vols, s.FinancialMetrics.Volatility)
		maxDrawdown = math.Max(maxDrawdown, s.FinancialMetrics.MaxDrawdown)
	}

	diversification := 0.0
	if len(symbols) > 1 {
		diversification = 1.0 - 1.0/float64(len(symbols))
	}

	return models.RiskMetrics{
		PortfolioVaR:         stat.Mean(weightedVaR, nil),
		MaxPortfolioDrawdown: maxDrawdown,
		DiversificationScore: diversification,
		SectorExposure:       SectorExposure(symbols),
		VolatilityRegime:     volatilityRegime(stat.Mean(vols, nil)),
	}
}

// SectorExposure builds a symbol-to-sector histogram normalized to
// fractions of the batch.
func SectorExposure(symbols []string) map[string]float64 {
	exposure := make(map[string]float64)
	if len(symbols) == 0 {
		return exposure
	}
	for _, sym := range symbols {
		exposure[risk.ClassifySector(sym)]++
	}
	total := float64(len(symbols))
	for sector := range exposure {
		exposure[sector] /= total
	}
	return exposure
}

// positionSize recommends a portfolio percentage: confidence and risk
// set the base, spread across signals with a 1/sqrt(n) diversification
// discount, capped by a risk-tiered ceiling.
func positionSize(confidence, riskScore float64, totalSignals int) float64 {
	base := confidence * (1.0 - riskScore) * 100.0

	diversification := 1.0
	if totalSignals > 0 {
		diversification = math.Min(1.0/math.Sqrt(float64(totalSignals)), 1.0)
	}

	ceiling := 10.0
	switch {
	case riskScore < 0.3:
		ceiling = 25.0
	case riskScore < 0.7:
		ceiling = 15.0
	}

	return math.Min(base*diversification, ceiling)
}

func riskTier(avgRisk float64) string {
	switch {
	case avgRisk < 0.3:
		return models.TierLow
	case avgRisk < 0.7:
		return models.TierMedium
	default:
		return models.TierHigh
	}
}

func volatilityRegime(avgVol float64) string {
	switch {
	case avgVol < 0.2:
		return models.TierLow
	case avgVol < 0.4:
		return models.TierNormal
	default:
		return models.TierHigh
	}
}
