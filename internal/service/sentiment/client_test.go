package sentiment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"OptionFlow/internal/domain/models"
	"OptionFlow/pkg/logger"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New(&logger.Config{Level: "error", Format: "json", Output: "stderr"})
	require.NoError(t, err)
	return log
}

func TestPredictBatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/predict/batch", r.URL.Path)
		var req predictRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, []string{"XYZ soars", "Markets tumble"}, req.Texts)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results":[{"label":"positive","confidence":0.95},{"label":"negative","confidence":0.80}]}`))
	}))
	defer srv.Close()

	c := New(Config{ServiceURL: srv.URL, Timeout: 2 * time.Second}, testLogger(t))

	out, err := c.PredictBatch(context.Background(), []string{"XYZ soars", "Markets tumble"})
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, models.SentimentResult{Label: "positive", Confidence: 0.95}, out[0])
	assert.Equal(t, models.SentimentResult{Label: "negative", Confidence: 0.80}, out[1])
}

func TestPredictBatchInvalidItemsDegradeToNeutral(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req predictRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Texts, 1)
		w.Write([]byte(`{"results":[{"label":"positive","confidence":0.9}]}`))
	}))
	defer srv.Close()

	c := New(Config{ServiceURL: srv.URL, MaxTextLength: 20}, testLogger(t))

	out, err := c.PredictBatch(context.Background(), []string{
		"",
		"short enough",
		strings.Repeat("x", 21),
	})
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.Equal(t, models.SentimentNeutral, out[0].Label)
	assert.Equal(t, 0.0, out[0].Confidence)
	assert.Equal(t, "positive", out[1].Label)
	assert.Equal(t, models.SentimentNeutral, out[2].Label)
}

func TestPredictBatchAllInvalidSkipsBackend(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	c := New(Config{ServiceURL: srv.URL}, testLogger(t))

	out, err := c.PredictBatch(context.Background(), []string{"", "   "})
	require.NoError(t, err)
	assert.Len(t, out, 2)
	assert.False(t, called)
}

func TestPredictBatchBackendErrorIsFatal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := New(Config{ServiceURL: srv.URL}, testLogger(t))

	_, err := c.PredictBatch(context.Background(), []string{"hello"})
	assert.Error(t, err)
}

func TestPredictBatchResultCountMismatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results":[]}`))
	}))
	defer srv.Close()

	c := New(Config{ServiceURL: srv.URL}, testLogger(t))

	_, err := c.PredictBatch(context.Background(), []string{"hello"})
	assert.Error(t, err)
}

func TestSentimentScoreMapping(t *testing.T) {
	assert.Equal(t, 0.95, models.SentimentResult{Label: "positive", Confidence: 0.95}.Score())
	assert.InDelta(t, 0.20, models.SentimentResult{Label: "negative", Confidence: 0.80}.Score(), 1e-9)
	assert.Equal(t, 0.5, models.SentimentResult{Label: "neutral", Confidence: 0.99}.Score())
	assert.Equal(t, 0.5, models.SentimentResult{Label: "unknown"}.Score())
}
