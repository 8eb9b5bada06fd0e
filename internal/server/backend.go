package server

import (
	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"

	"github.com/desertthunder/followback/internal/services"
	"github.com/desertthunder/followback/internal/shared"
)

// NewBackendRouter assembles the reciprocity backend: CORS, access log, rate limit, optional bearer auth,
// then the upload and health handlers.
func NewBackendRouter(cfg shared.ServerConfig, logger *log.Logger, recorder AnalysisRecorder) *BasicRouter {
	router := NewBasicRouter()
	router.Use(
		WithCORS,
		WithLogger(logger),
		WithRateLimit(newLimiter(cfg.RateLimit, cfg.RateBurst)),
		WithBearerAuth(cfg.APIToken, services.HealthPath),
	)

	router.Handler(NewUploadHandler(logger, cfg.MaxUploadBytes(), recorder))
	router.Handler(HealthHandler{})

	return router
}

// newLimiter returns nil (unlimited) when perSecond is not positive.
func newLimiter(perSecond float64, burst int) *rate.Limiter {
	if perSecond <= 0 {
		return nil
	}
	if burst <= 0 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(perSecond), burst)
}
