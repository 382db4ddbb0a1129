// Package alpaca implements the MarketData source against the Alpaca
// market-data REST API: the news feed and the per-symbol option
// snapshot endpoint. Requests are rate limited, time bounded, and
// retried with exponential backoff on retryable outcomes.
package alpaca

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"OptionFlow/internal/domain/models"
	"OptionFlow/internal/domain/repository"
	"OptionFlow/internal/service/ratelimit"
	pkghttp "OptionFlow/pkg/http"
	"OptionFlow/pkg/logger"
)

// Config holds client connection and retry settings.
type Config struct {
	APIKey         string
	APISecret      string
	BaseURL        string
	Feed           string
	NewsLimit      int
	SnapshotLimit  int
	RequestTimeout time.Duration
	MaxAttempts    int
	RetryBackoff   time.Duration
	RateCapacity   float64
	RatePerSec     float64
}

// Client is a rate-limited Alpaca market-data client.
type Client struct {
	cfg     Config
	http    *pkghttp.Client
	limiter *ratelimit.Limiter
	metrics repository.Metrics
	log     *logger.Logger
}

// New creates a Client implementing repository.MarketData.
func New(cfg Config, metrics repository.Metrics, log *logger.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://data.alpaca.markets"
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 60 * time.Second
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 3
	}
	if cfg.RetryBackoff <= 0 {
		cfg.RetryBackoff = 2 * time.Second
	}
	return &Client{
		cfg:     cfg,
		http:    pkghttp.NewClient(pkghttp.WithTimeout(cfg.RequestTimeout)),
		limiter: ratelimit.New(),
		metrics: metrics,
		log:     log,
	}
}

// FetchNews returns the latest market headlines, newest first.
func (c *Client) FetchNews(ctx context.Context) ([]models.NewsItem, error) {
	limit := c.cfg.NewsLimit
	if limit <= 0 {
		limit = 50
	}

	var resp models.NewsResponse
	err := c.doWithRetry(ctx, "news", func(ctx context.Context) error {
		return c.http.SendAndParse(ctx, &pkghttp.RequestOptions{
			Method:  pkghttp.MethodGet,
			URL:     c.cfg.BaseURL + "/v1beta1/news",
			Headers: c.authHeaders(),
			QueryParams: map[string]string{
				"sort":  "desc",
				"limit": strconv.Itoa(limit),
			},
		}, &resp)
	})
	if err != nil {
		return nil, fmt.Errorf("fetch news: %w", err)
	}
	return resp.News, nil
}

// FetchOptions returns the option snapshot map for one symbol.
func (c *Client) FetchOptions(ctx context.Context, symbol string, q models.OptionsQuery) (map[string]models.OptionSnapshot, error) {
	params := map[string]string{
		"feed":  c.cfg.Feed,
		"limit": strconv.Itoa(c.cfg.SnapshotLimit),
	}
	if q.Feed != "" {
		params["feed"] = q.Feed
	}
	if q.Limit > 0 {
		params["limit"] = strconv.Itoa(q.Limit)
	}
	if q.Type != "" {
		params["type"] = q.Type
	}
	if q.StrikePriceGTE > 0 {
		params["strike_price_gte"] = strconv.FormatFloat(q.StrikePriceGTE, 'f', -1, 64)
	}
	if q.StrikePriceLTE > 0 {
		params["strike_price_lte"] = strconv.FormatFloat(q.StrikePriceLTE, 'f', -1, 64)
	}
	if q.ExpirationDateGTE != "" {
		params["expiration_date_gte"] = q.ExpirationDateGTE
	}
	if q.ExpirationDateLTE != "" {
		params["expiration_date_lte"] = q.ExpirationDateLTE
	}
	if q.PageToken != "" {
		params["page_token"] = q.PageToken
	}

	var resp models.OptionsResponse
	err := c.doWithRetry(ctx, "options", func(ctx context.Context) error {
		return c.http.SendAndParse(ctx, &pkghttp.RequestOptions{
			Method:      pkghttp.MethodGet,
			URL:         c.cfg.BaseURL + "/v1beta1/options/snapshots/" + symbol,
			Headers:     c.authHeaders(),
			QueryParams: params,
		}, &resp)
	})
	if err != nil {
		return nil, fmt.Errorf("fetch options %s: %w", symbol, err)
	}
	return resp.Snapshots, nil
}

// doWithRetry paces one logical fetch through the rate limiter and
// retries retryable failures with exponential backoff (backoff, then
// 2x backoff, ...). Non-retryable HTTP statuses fail immediately.
func (c *Client) doWithRetry(ctx context.Context, endpoint string, fn func(ctx context.Context) error) error {
	var lastErr error
	for attempt := 0; attempt < c.cfg.MaxAttempts; attempt++ {
		if c.cfg.RateCapacity > 0 && c.cfg.RatePerSec > 0 {
			if err := c.limiter.Wait(ctx, endpoint, c.cfg.RateCapacity, c.cfg.RatePerSec); err != nil {
				return err
			}
		}

		start := time.Now()
		reqCtx, cancel := context.WithTimeout(ctx, c.cfg.RequestTimeout)
		err := fn(reqCtx)
		cancel()

		c.metrics.RecordAPICall(endpoint)
		c.metrics.RecordFetchLatency(endpoint, time.Since(start).Seconds())

		if err == nil {
			return nil
		}
		lastErr = err
		c.metrics.RecordError("fetch_" + endpoint)

		var statusErr *pkghttp.StatusError
		if errors.As(err, &statusErr) && !statusErr.Retryable() {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		if attempt < c.cfg.MaxAttempts-1 {
			delay := c.cfg.RetryBackoff << attempt
			c.log.Warn("retrying fetch",
				logger.String("endpoint", endpoint),
				logger.Int("attempt", attempt+1),
				logger.Duration("delay", delay),
				logger.Error(err),
			)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}
	return fmt.Errorf("all %d attempts failed: %w", c.cfg.MaxAttempts, lastErr)
}

func (c *Client) authHeaders() map[string]string {
	return map[string]string{
		"APCA-API-KEY-ID":     c.cfg.APIKey,
		"APCA-API-SECRET-KEY": c.cfg.APISecret,
		"accept":              "application/json",
	}
}
