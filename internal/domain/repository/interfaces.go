package repository

import (
	"context"

	"OptionFlow/internal/domain/models"
)

// MarketData is the external market-data source: one news feed plus one
// options-snapshot fetch per symbol. Implementations own auth, retry,
// and rate limiting; transport failures surface as errors, never panics.
type MarketData interface {
	FetchNews(ctx context.Context) ([]models.NewsItem, error)
	FetchOptions(ctx context.Context, symbol string, q models.OptionsQuery) (map[string]models.OptionSnapshot, error)
	IsCryptoSymbol(symbol string) bool
}

// Metrics records pipeline observability counters.
type Metrics interface {
	RecordAPICall(endpoint string)
	RecordCacheEvent(cache string, hit bool)
	RecordFetchLatency(op string, seconds float64)
	RecordSignal(signalType string)
	RecordError(kind string)
}
