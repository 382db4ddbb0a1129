package models

import "strings"

// NewsItem is one market headline with the tickers it mentions. Items
// are immutable once fetched; the symbol set may be empty.
type NewsItem struct {
	Headline string   `json:"headline"`
	Symbols  []string `json:"symbols"`
}

// NewsResponse mirrors the market-data news endpoint payload.
type NewsResponse struct {
	News []NewsItem `json:"news"`
}

// Sentiment labels produced by the inference service.
const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
)

// SentimentResult is the classification of a single headline.
type SentimentResult struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

// Score maps a labeled classification onto a single bullishness scale:
// 1.0 is maximally bullish, 0.0 maximally bearish, 0.5 neutral.
func (s SentimentResult) Score() float64 {
	switch strings.ToLower(s.Label) {
	case SentimentPositive:
		return s.Confidence
	case SentimentNegative:
		return 1 - s.Confidence
	default:
		return 0.5
	}
}

// SentimentAnalysis pairs a headline with its classification for the
// aggregate response.
type SentimentAnalysis struct {
	Headline   string   `json:"headline"`
	Symbols    []string `json:"symbols,omitempty"`
	Label      string   `json:"label"`
	Confidence float64  `json:"confidence"`
}
