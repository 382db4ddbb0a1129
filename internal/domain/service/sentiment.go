package service

import (
	"context"

	"OptionFlow/internal/domain/models"
)

// SentimentClassifier scores headline text. Implementations must return
// one result per accepted input; per-item validation failures degrade to
// neutral entries, while an unavailable backend fails the whole batch.
type SentimentClassifier interface {
	PredictBatch(ctx context.Context, texts []string) ([]models.SentimentResult, error)
}
