package api

import (
	"net/http"
	"time"

	"OptionFlow/internal/domain/models"
	"OptionFlow/internal/service/ratelimit"
	"OptionFlow/internal/usecase"
	xhttp "OptionFlow/pkg/http"
	xlogger "OptionFlow/pkg/logger"

	"github.com/labstack/echo/v4"
)

// AnalyzeHandler exposes the analysis pipeline over Echo.
type AnalyzeHandler struct {
	logger   *xlogger.Logger
	analyzer *usecase.Analyzer
	rl       *ratelimit.Limiter
	started  time.Time
}

func NewAnalyzeHandler(logger *xlogger.Logger, analyzer *usecase.Analyzer) *AnalyzeHandler {
	return &AnalyzeHandler{
		logger:   logger,
		analyzer: analyzer,
		rl:       ratelimit.New(),
		started:  time.Now(),
	}
}

func (h *AnalyzeHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/analyze", h.Analyze)
	g.GET("/health", h.Health)
}

// Analyze runs one full batch: news, sentiment, options, signals.
func (h *AnalyzeHandler) Analyze(c echo.Context) error {
	start := time.Now()
	req := &models.AnalyzeRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	if !h.rl.Allow(c.RealIP()+":analyze", 5, 1) {
		h.logger.Warn("analyze rate_limited", xlogger.String("remote", c.RealIP()))
		return xhttp.DataResponse(c, http.StatusTooManyRequests, "rate limited")
	}

	res, err := h.analyzer.Analyze(c.Request().Context(), usecase.AnalyzeOptions{
		Limit:       req.Limit,
		Concurrency: req.Concurrency,
		Feed:        req.Feed,
	})
	if err != nil {
		h.logger.Error("analyze usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}

	h.logger.Info("analyze done",
		xlogger.Int("signals", len(res.TradingSignals)),
		xlogger.Duration("took", time.Since(start)),
	)
	return xhttp.SuccessResponse(c, res)
}

// Health reports liveness and process uptime.
func (h *AnalyzeHandler) Health(c echo.Context) error {
	return xhttp.SuccessResponse(c, map[string]interface{}{
		"status":         "ok",
		"uptime_seconds": int64(time.Since(h.started).Seconds()),
	})
}
