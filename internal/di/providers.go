package di

import (
	"fmt"

	"OptionFlow/internal/domain/repository"
	domainsvc "OptionFlow/internal/domain/service"
	"OptionFlow/internal/handler/api"
	"OptionFlow/internal/options"
	"OptionFlow/internal/quant"
	"OptionFlow/internal/service/alpaca"
	"OptionFlow/internal/service/sentiment"
	"OptionFlow/internal/signal"
	"OptionFlow/internal/usecase"
	"OptionFlow/pkg/cache"
	"OptionFlow/pkg/config"
	xhttp "OptionFlow/pkg/http"
	applogger "OptionFlow/pkg/logger"
	"OptionFlow/pkg/metrics"
	"OptionFlow/pkg/server"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	return applogger.New(&applogger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideCache creates the shared TTL cache. With Redis enabled the
// memory cache becomes an L1 in front of it; otherwise it stands alone.
func ProvideCache(cfg *config.Config) (cache.Service, error) {
	if cfg.Cache.Redis.Enabled {
		rc, err := cache.NewRedisCache(
			cache.WithRedisAddr(cfg.Cache.Redis.Addr),
			cache.WithRedisPassword(cfg.Cache.Redis.Password),
			cache.WithRedisDB(cfg.Cache.Redis.DB),
		)
		if err != nil {
			return nil, fmt.Errorf("redis cache: %w", err)
		}
		return cache.NewLayeredCache(rc, cache.WithSweepInterval(cfg.Cache.SweepInterval)), nil
	}
	return cache.NewMemoryCache(cache.WithSweepInterval(cfg.Cache.SweepInterval)), nil
}

// ProvideMarketData creates the Alpaca market-data client.
func ProvideMarketData(cfg *config.Config, m repository.Metrics, log *applogger.Logger) repository.MarketData {
	return alpaca.New(alpaca.Config{
		APIKey:         cfg.Alpaca.APIKey,
		APISecret:      cfg.Alpaca.APISecret,
		BaseURL:        cfg.Alpaca.BaseURL,
		Feed:           cfg.Alpaca.Feed,
		NewsLimit:      cfg.Alpaca.NewsLimit,
		SnapshotLimit:  cfg.Alpaca.SnapshotLimit,
		RequestTimeout: cfg.Alpaca.RequestTimeout,
		MaxAttempts:    cfg.Alpaca.MaxAttempts,
		RetryBackoff:   cfg.Alpaca.RetryBackoff,
		RateCapacity:   cfg.Alpaca.RateCapacity,
		RatePerSec:     cfg.Alpaca.RatePerSec,
	}, m, log)
}

// ProvideSentimentClassifier creates the sentiment sidecar client.
func ProvideSentimentClassifier(cfg *config.Config, log *applogger.Logger) domainsvc.SentimentClassifier {
	return sentiment.New(sentiment.Config{
		ServiceURL:    cfg.Sentiment.ServiceURL,
		Timeout:       cfg.Sentiment.Timeout,
		MaxTextLength: cfg.Sentiment.MaxTextLength,
	}, log)
}

// ProvideQuantEngine creates the scoring engine. Non-zero YAML values
// override the default tuning.
func ProvideQuantEngine(cfg *config.Config) *quant.Engine {
	sc := quant.DefaultScoring()
	if v := cfg.Scoring.CompositeCap; v > 0 {
		sc.CompositeCap = v
	}
	if v := cfg.Scoring.HighVolThreshold; v > 0 {
		sc.HighVolThreshold = v
	}
	if v := cfg.Scoring.LowVolThreshold; v > 0 {
		sc.LowVolThreshold = v
	}
	if v := cfg.Scoring.LongHorizonDays; v > 0 {
		sc.LongHorizonDays = v
	}
	if v := cfg.Scoring.KellyFloor; v > 0 {
		sc.KellyFloor = v
	}
	if v := cfg.Scoring.KellyCeil; v > 0 {
		sc.KellyCeil = v
	}
	return quant.NewEngine(sc)
}

// ProvideSelector creates the contract selector.
func ProvideSelector(engine *quant.Engine) *options.Selector {
	return options.NewSelector(engine)
}

// ProvideSynthesizer creates the signal synthesizer.
func ProvideSynthesizer(engine *quant.Engine) *signal.Synthesizer {
	return signal.NewSynthesizer(engine)
}

// ProvideAnalyzer creates the analysis use case.
func ProvideAnalyzer(
	market repository.MarketData,
	classifier domainsvc.SentimentClassifier,
	selector *options.Selector,
	synth *signal.Synthesizer,
	cacheSvc cache.Service,
	m repository.Metrics,
	log *applogger.Logger,
	cfg *config.Config,
) *usecase.Analyzer {
	return usecase.NewAnalyzer(market, classifier, selector, synth, cacheSvc, m, log, usecase.Config{
		Concurrency:  cfg.Analysis.Concurrency,
		SentimentTTL: cfg.Analysis.SentimentTTL,
		OptionsTTL:   cfg.Analysis.OptionsTTL,
	})
}

// ProvideHTTPHandler creates the Echo route handler.
func ProvideHTTPHandler(log *applogger.Logger, analyzer *usecase.Analyzer) xhttp.Handler {
	return api.NewAnalyzeHandler(log, analyzer)
}

// ProvideApp creates the application server and registers teardown of
// shared resources.
func ProvideApp(cfg *config.Config, log *applogger.Logger, handler xhttp.Handler, cacheSvc cache.Service) *server.App {
	app := server.New(cfg, log, handler)
	app.OnShutdown(cacheSvc.Close)
	return app
}
