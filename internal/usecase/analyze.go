// Package usecase drives the analysis batch: fetch news, score
// sentiment, fan out over symbols with bounded concurrency, and reduce
// admitted signals into the aggregate response. Per-symbol failures
// degrade to error entries and never abort the batch; only an
// unavailable sentiment backend is batch-fatal.
package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"OptionFlow/internal/domain/models"
	"OptionFlow/internal/domain/repository"
	domainsvc "OptionFlow/internal/domain/service"
	"OptionFlow/internal/options"
	"OptionFlow/internal/portfolio"
	"OptionFlow/internal/signal"
	"OptionFlow/pkg/cache"
	"OptionFlow/pkg/logger"
)

// AnalyzeOptions are per-request knobs; zero values fall back to the
// analyzer's configured defaults.
type AnalyzeOptions struct {
	Limit       int
	Concurrency int
	Feed        string
}

// Config holds analyzer defaults.
type Config struct {
	Concurrency  int
	SentimentTTL time.Duration
	OptionsTTL   time.Duration
}

// Analyzer owns the analysis pipeline and its shared TTL caches.
type Analyzer struct {
	market     repository.MarketData
	classifier domainsvc.SentimentClassifier
	selector   *options.Selector
	synth      *signal.Synthesizer
	cache      cache.Service
	metrics    repository.Metrics
	log        *logger.Logger
	cfg        Config

	now func() time.Time
}

// NewAnalyzer wires the pipeline together.
func NewAnalyzer(
	market repository.MarketData,
	classifier domainsvc.SentimentClassifier,
	selector *options.Selector,
	synth *signal.Synthesizer,
	cacheSvc cache.Service,
	metrics repository.Metrics,
	log *logger.Logger,
	cfg Config,
) *Analyzer {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 10
	}
	if cfg.SentimentTTL <= 0 {
		cfg.SentimentTTL = 300 * time.Second
	}
	if cfg.OptionsTTL <= 0 {
		cfg.OptionsTTL = 180 * time.Second
	}
	return &Analyzer{
		market:     market,
		classifier: classifier,
		selector:   selector,
		synth:      synth,
		cache:      cacheSvc,
		metrics:    metrics,
		log:        log,
		cfg:        cfg,
		now:        time.Now,
	}
}

type batchCounters struct {
	apiCalls    atomic.Int64
	cacheHits   atomic.Int64
	cacheLookup atomic.Int64
	optionsSeen atomic.Int64
}

func (c *batchCounters) hitRate() float64 {
	lookups := c.cacheLookup.Load()
	if lookups == 0 {
		return 0
	}
	return float64(c.cacheHits.Load()) / float64(lookups)
}

// Analyze runs one full batch and returns the aggregate view.
func (a *Analyzer) Analyze(ctx context.Context, opts AnalyzeOptions) (*models.MarketAnalysis, error) {
	start := a.now()
	var counters batchCounters

	news, err := a.market.FetchNews(ctx)
	if err != nil {
		return nil, fmt.Errorf("news: %w", err)
	}
	counters.apiCalls.Add(1)
	if opts.Limit > 0 && len(news) > opts.Limit {
		news = news[:opts.Limit]
	}

	sentiments, err := a.scoreHeadlines(ctx, news, &counters)
	if err != nil {
		return nil, err
	}

	symbolScores, direction, cryptoFiltered := a.aggregateSentiment(news, sentiments)

	symbols := make([]string, 0, len(symbolScores))
	for sym := range symbolScores {
		symbols = append(symbols, sym)
	}
	sort.Strings(symbols)

	a.log.Info("analysis batch",
		logger.Int("headlines", len(news)),
		logger.Int("symbols", len(symbols)),
		logger.String("direction", direction),
	)

	analyses := a.fanOut(ctx, symbols, symbolScores, opts, &counters)

	signals := a.synthesize(analyses, symbolScores, direction)

	sentimentAnalysis := make([]models.SentimentAnalysis, 0, len(news))
	for i, item := range news {
		sentimentAnalysis = append(sentimentAnalysis, models.SentimentAnalysis{
			Headline:   item.Headline,
			Symbols:    item.Symbols,
			Label:      sentiments[i].Label,
			Confidence: sentiments[i].Confidence,
		})
	}

	finish := a.now()
	return &models.MarketAnalysis{
		MarketSummary:     portfolio.Summarize(signals, finish),
		TradingSignals:    signals,
		SentimentAnalysis: sentimentAnalysis,
		RiskMetrics:       portfolio.ComputeRiskMetrics(signals),
		ExecutionMetadata: models.ExecutionMetadata{
			ProcessingTimeMS:      finish.Sub(start).Milliseconds(),
			SymbolsAnalyzed:       len(symbols),
			OptionsAnalyzed:       int(counters.optionsSeen.Load()),
			CryptoSymbolsFiltered: cryptoFiltered,
			APICallsMade:          int(counters.apiCalls.Load()),
			CacheHitRate:          counters.hitRate(),
		},
	}, nil
}

// scoreHeadlines resolves one SentimentResult per news item, going
// through the headline cache and batching the misses into a single
// classifier call.
func (a *Analyzer) scoreHeadlines(ctx context.Context, news []models.NewsItem, counters *batchCounters) ([]models.SentimentResult, error) {
	results := make([]models.SentimentResult, len(news))

	var missTexts []string
	var missIdx []int
	for i, item := range news {
		counters.cacheLookup.Add(1)
		var cached models.SentimentResult
		if err := a.cache.Get(ctx, sentimentKey(item.Headline), &cached); err == nil {
			counters.cacheHits.Add(1)
			a.metrics.RecordCacheEvent("sentiment", true)
			results[i] = cached
			continue
		}
		a.metrics.RecordCacheEvent("sentiment", false)
		missTexts = append(missTexts, item.Headline)
		missIdx = append(missIdx, i)
	}

	if len(missTexts) > 0 {
		predicted, err := a.classifier.PredictBatch(ctx, missTexts)
		if err != nil {
			a.metrics.RecordError("sentiment_backend")
			return nil, fmt.Errorf("sentiment: %w", err)
		}
		for j, i := range missIdx {
			results[i] = predicted[j]
			if err := a.cache.Set(ctx, sentimentKey(news[i].Headline), predicted[j], a.cfg.SentimentTTL); err != nil {
				a.log.Warn("sentiment cache write", logger.Error(err))
			}
		}
	}
	return results, nil
}

// aggregateSentiment reduces headline results to per-symbol bullishness
// means and the batch direction. Crypto tickers are dropped before
// fan-out since they have no listed options.
func (a *Analyzer) aggregateSentiment(news []models.NewsItem, sentiments []models.SentimentResult) (map[string]float64, string, int) {
	perSymbol := make(map[string][]float64)
	cryptoSeen := make(map[string]struct{})
	var posSum, negSum float64

	for i, item := range news {
		res := sentiments[i]
		switch res.Label {
		case models.SentimentPositive:
			posSum += res.Confidence
		case models.SentimentNegative:
			negSum += res.Confidence
		}

		seen := make(map[string]struct{}, len(item.Symbols))
		for _, sym := range item.Symbols {
			if _, dup := seen[sym]; dup {
				continue
			}
			seen[sym] = struct{}{}
			if a.market.IsCryptoSymbol(sym) {
				cryptoSeen[sym] = struct{}{}
				continue
			}
			perSymbol[sym] = append(perSymbol[sym], res.Score())
		}
	}

	scores := make(map[string]float64, len(perSymbol))
	for sym, vals := range perSymbol {
		var sum float64
		for _, v := range vals {
			sum += v
		}
		scores[sym] = sum / float64(len(vals))
	}

	// Weighted-sum direction with a 1.2x dominance threshold; anything
	// closer is neutral and resolved per symbol.
	direction := ""
	if posSum > negSum*1.2 {
		direction = signal.DirectionCall
	} else if negSum > posSum*1.2 {
		direction = signal.DirectionPut
	}

	return scores, direction, len(cryptoSeen)
}

// fanOut runs one task per symbol under a semaphore bounding in-flight
// fetches. Each task is isolated: a failure becomes that symbol's
// Error field.
func (a *Analyzer) fanOut(ctx context.Context, symbols []string, scores map[string]float64, opts AnalyzeOptions, counters *batchCounters) []models.SymbolAnalysis {
	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = a.cfg.Concurrency
	}

	results := make([]models.SymbolAnalysis, len(symbols))
	sem := make(chan struct{}, concurrency)
	var wg sync.WaitGroup

	for i, sym := range symbols {
		wg.Add(1)
		go func(i int, sym string) {
			defer wg.Done()
			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				results[i] = models.SymbolAnalysis{Symbol: sym, Error: ctx.Err().Error()}
				return
			}
			results[i] = a.analyzeSymbol(ctx, sym, scores[sym], opts, counters)
		}(i, sym)
	}
	wg.Wait()
	return results
}

func (a *Analyzer) analyzeSymbol(ctx context.Context, symbol string, score float64, opts AnalyzeOptions, counters *batchCounters) models.SymbolAnalysis {
	out := models.SymbolAnalysis{Symbol: symbol, SentimentScore: score}

	snapshots, err := a.fetchOptionsCached(ctx, symbol, opts, counters)
	if err != nil {
		a.log.Warn("symbol fetch failed", logger.String("symbol", symbol), logger.Error(err))
		a.metrics.RecordError("symbol_fetch")
		out.Error = err.Error()
		return out
	}
	counters.optionsSeen.Add(int64(len(snapshots)))

	out.Analyses = a.selector.Analyze(snapshots, a.now())
	return out
}

func (a *Analyzer) fetchOptionsCached(ctx context.Context, symbol string, opts AnalyzeOptions, counters *batchCounters) (map[string]models.OptionSnapshot, error) {
	key := optionsKey(opts.Feed, symbol)

	counters.cacheLookup.Add(1)
	var cached map[string]models.OptionSnapshot
	if err := a.cache.Get(ctx, key, &cached); err == nil {
		counters.cacheHits.Add(1)
		a.metrics.RecordCacheEvent("options", true)
		return cached, nil
	}
	a.metrics.RecordCacheEvent("options", false)

	snapshots, err := a.market.FetchOptions(ctx, symbol, models.OptionsQuery{Feed: opts.Feed})
	if err != nil {
		return nil, err
	}
	counters.apiCalls.Add(1)

	if err := a.cache.Set(ctx, key, snapshots, a.cfg.OptionsTTL); err != nil {
		a.log.Warn("options cache write", logger.String("symbol", symbol), logger.Error(err))
	}
	return snapshots, nil
}

// synthesize builds signals for every analyzed contract and applies
// the admission gate, returning the batch ordered by confidence.
func (a *Analyzer) synthesize(analyses []models.SymbolAnalysis, scores map[string]float64, direction string) []models.TradingSignal {
	now := a.now()
	var signals []models.TradingSignal
	for _, sa := range analyses {
		if sa.Error != "" {
			continue
		}
		for _, analysis := range sa.Analyses {
			sig := a.synth.Build(sa.Symbol, analysis, scores[sa.Symbol], direction, now)
			if !signal.Admit(sig) {
				continue
			}
			a.metrics.RecordSignal(sig.SignalType)
			signals = append(signals, sig)
		}
	}

	sort.SliceStable(signals, func(i, j int) bool {
		if signals[i].Confidence != signals[j].Confidence {
			return signals[i].Confidence > signals[j].Confidence
		}
		return signals[i].Symbol < signals[j].Symbol
	})
	return signals
}

func sentimentKey(headline string) string {
	return "sentiment:" + headline
}

func optionsKey(feed, symbol string) string {
	if feed == "" {
		feed = "default"
	}
	return "options:" + feed + ":" + symbol
}
