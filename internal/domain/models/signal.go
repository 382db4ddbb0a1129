package models

// Signal types. Only long option positions are synthesized.
const (
	SignalBuyCall = "BUY_CALL"
	SignalBuyPut  = "BUY_PUT"
)

// Time horizons attached to signals.
const (
	HorizonShortTerm = "SHORT_TERM"
	HorizonLeap      = "LEAP"
)

// Greeks are single-point Black-Scholes sensitivities. They are
// deliberately approximate and not pricing-grade.
type Greeks struct {
	Delta float64 `json:"delta"`
	Gamma float64 `json:"gamma"`
	Theta float64 `json:"theta"`
	Vega  float64 `json:"vega"`
}

// FinancialMetrics is the risk/return block embedded in a signal.
// Every field is finite; non-finite intermediate values are coerced to
// zero before the struct is built.
type FinancialMetrics struct {
	SharpeRatio       float64 `json:"sharpe_ratio"`
	SortinoRatio      float64 `json:"sortino_ratio"`
	CalmarRatio       float64 `json:"calmar_ratio"`
	MaxDrawdown       float64 `json:"max_drawdown"`
	Volatility        float64 `json:"volatility"`
	CompositeScore    float64 `json:"composite_score"`
	KellyFraction     float64 `json:"kelly_fraction"`
	VaR95             float64 `json:"var_95"`
	ExpectedShortfall float64 `json:"expected_shortfall"`
}

// TradingSignal is one actionable recommendation. Immutable once
// produced; confidence, risk score, and kelly fraction are in [0,1].
type TradingSignal struct {
	Symbol            string           `json:"symbol"`
	SignalType        string           `json:"signal_type"`
	Confidence        float64          `json:"confidence"`
	SentimentScore    float64          `json:"sentiment_score"`
	RiskScore         float64          `json:"risk_score"`
	ExpectedReturn    float64          `json:"expected_return"`
	MaxLoss           float64          `json:"max_loss"`
	TimeHorizon       string           `json:"time_horizon"`
	EntryPrice        float64          `json:"entry_price"`
	StrikePrice       float64          `json:"strike_price"`
	ExpirationDate    string           `json:"expiration_date"`
	Volume            float64          `json:"volume"`
	OpenInterest      float64          `json:"open_interest"`
	ImpliedVolatility float64          `json:"implied_volatility"`
	Greeks            Greeks           `json:"greeks"`
	FinancialMetrics  FinancialMetrics `json:"financial_metrics"`
	Reasoning         []string         `json:"reasoning"`
}
