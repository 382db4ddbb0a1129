// Package sentiment is the client for the headline classification
// sidecar, a FinBERT-style service scoring text into
// positive/negative/neutral. Invalid items (empty or oversized text)
// degrade to neutral results; an unreachable backend fails the batch.
package sentiment

import (
	"context"
	"fmt"
	"strings"
	"time"

	"OptionFlow/internal/domain/models"
	pkghttp "OptionFlow/pkg/http"
	"OptionFlow/pkg/logger"
)

// Config holds sidecar connection settings.
type Config struct {
	ServiceURL    string
	Timeout       time.Duration
	MaxTextLength int
}

// Client implements service.SentimentClassifier over HTTP.
type Client struct {
	cfg  Config
	http *pkghttp.Client
	log  *logger.Logger
}

// New creates a sentiment Client.
func New(cfg Config, log *logger.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.MaxTextLength <= 0 {
		cfg.MaxTextLength = 10000
	}
	return &Client{
		cfg:  cfg,
		http: pkghttp.NewClient(pkghttp.WithTimeout(cfg.Timeout)),
		log:  log,
	}
}

type predictRequest struct {
	Texts []string `json:"texts"`
}

type predictResponse struct {
	Results []models.SentimentResult `json:"results"`
}

// PredictBatch classifies a batch of texts in one request. The result
// slice is index-aligned with the input: items that fail validation
// come back as neutral with zero confidence instead of failing the
// batch.
func (c *Client) PredictBatch(ctx context.Context, texts []string) ([]models.SentimentResult, error) {
	results := make([]models.SentimentResult, len(texts))

	valid := make([]string, 0, len(texts))
	validIdx := make([]int, 0, len(texts))
	for i, text := range texts {
		if err := c.validate(text); err != nil {
			c.log.Debug("skipping text", logger.Int("index", i), logger.Error(err))
			results[i] = models.SentimentResult{Label: models.SentimentNeutral}
			continue
		}
		valid = append(valid, strings.TrimSpace(text))
		validIdx = append(validIdx, i)
	}
	if len(valid) == 0 {
		return results, nil
	}

	var resp predictResponse
	err := c.http.SendAndParse(ctx, &pkghttp.RequestOptions{
		Method: pkghttp.MethodPost,
		URL:    c.cfg.ServiceURL + "/predict/batch",
		Body:   predictRequest{Texts: valid},
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("sentiment predict: %w", err)
	}
	if len(resp.Results) != len(valid) {
		return nil, fmt.Errorf("sentiment predict: got %d results for %d texts", len(resp.Results), len(valid))
	}

	for j, i := range validIdx {
		results[i] = resp.Results[j]
	}
	return results, nil
}

func (c *Client) validate(text string) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("input text cannot be empty")
	}
	if len(text) > c.cfg.MaxTextLength {
		return fmt.Errorf("input text too long (max %d characters)", c.cfg.MaxTextLength)
	}
	return nil
}
