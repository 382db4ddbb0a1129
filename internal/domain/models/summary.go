package models

import "time"

// Market sentiment classifications.
const (
	MarketBullish = "BULLISH"
	MarketBearish = "BEARISH"
	MarketNeutral = "NEUTRAL"
)

// Risk and volatility tiers.
const (
	TierLow    = "LOW"
	TierMedium = "MEDIUM"
	TierNormal = "NORMAL"
	TierHigh   = "HIGH"
)

// MarketSummary is a read-only reduction over a signal batch, computed
// once and never mutated.
type MarketSummary struct {
	Timestamp               time.Time `json:"timestamp"`
	TotalSignals            int       `json:"total_signals"`
	BullishSignals          int       `json:"bullish_signals"`
	BearishSignals          int       `json:"bearish_signals"`
	HighConfidenceSignals   int       `json:"high_confidence_signals"`
	MarketSentiment         string    `json:"market_sentiment"`
	OverallConfidence       float64   `json:"overall_confidence"`
	RiskLevel               string    `json:"risk_level"`
	RecommendedPositionSize float64   `json:"recommended_position_size"`
}

// RiskMetrics is the portfolio-level risk view of a signal batch.
type RiskMetrics struct {
	PortfolioVaR         float64            `json:"portfolio_var"`
	MaxPortfolioDrawdown float64            `json:"max_portfolio_drawdown"`
	DiversificationScore float64            `json:"diversification_score"`
	SectorExposure       map[string]float64 `json:"sector_exposure"`
	VolatilityRegime     string             `json:"volatility_regime"`
}

// SymbolAnalysis carries one symbol's selected contracts through the
// pipeline. A failed fetch degrades to an Error string; it never aborts
// sibling symbols.
type SymbolAnalysis struct {
	Symbol         string           `json:"symbol"`
	SentimentScore float64          `json:"sentiment_score"`
	Analyses       []OptionAnalysis `json:"options_analysis"`
	Error          string           `json:"error,omitempty"`
}

// ExecutionMetadata reports batch bookkeeping to the caller.
type ExecutionMetadata struct {
	ProcessingTimeMS      int64   `json:"processing_time_ms"`
	SymbolsAnalyzed       int     `json:"symbols_analyzed"`
	OptionsAnalyzed       int     `json:"options_analyzed"`
	CryptoSymbolsFiltered int     `json:"crypto_symbols_filtered"`
	APICallsMade          int     `json:"api_calls_made"`
	CacheHitRate          float64 `json:"cache_hit_rate"`
}

// MarketAnalysis is the aggregate object returned to the caller.
type MarketAnalysis struct {
	MarketSummary     MarketSummary       `json:"market_summary"`
	TradingSignals    []TradingSignal     `json:"trading_signals"`
	SentimentAnalysis []SentimentAnalysis `json:"sentiment_analysis"`
	RiskMetrics       RiskMetrics         `json:"risk_metrics"`
	ExecutionMetadata ExecutionMetadata   `json:"execution_metadata"`
}
