//go:build wireinject
// +build wireinject

package di

import (
	"OptionFlow/pkg/config"
	"OptionFlow/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Ambient infrastructure
		ProvideLogger,
		ProvideMetrics,
		ProvideCache,

		// Upstream clients
		ProvideMarketData,
		ProvideSentimentClassifier,

		// Scoring pipeline
		ProvideQuantEngine,
		ProvideSelector,
		ProvideSynthesizer,
		ProvideAnalyzer,

		// HTTP surface and application server
		ProvideHTTPHandler,
		ProvideApp,
	)
	return &server.App{}, nil
}
