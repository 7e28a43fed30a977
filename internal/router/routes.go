package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/leadscout/api/internal/auth"
	"github.com/leadscout/api/internal/config"
	"github.com/leadscout/api/internal/handler"
	middlewarepkg "github.com/leadscout/api/internal/middleware"
)

// Handlers aggregates HTTP handlers used by the router.
type Handlers struct {
	Auth         *handler.AuthHandler
	Search       *handler.SearchHandler
	Enrich       *handler.EnrichHandler
	Audit        *handler.AuditHandler
	Intelligence *handler.IntelligenceHandler
	Pitch        *handler.PitchHandler
}

// Register wires all HTTP routes for the API. The three pipeline triggers
// share one rate limiter so a burst of enrichment requests cannot exhaust
// the external provider quotas.
func Register(e *echo.Echo, cfg *config.Config, jwtManager *auth.JWTManager, handlers Handlers) {
	e.GET("/healthz", func(c echo.Context) error {
		return handler.Success(c, http.StatusOK, "service healthy", map[string]any{"status": "ok"})
	})

	e.POST("/auth/login", handlers.Auth.Login)

	secured := e.Group("")
	secured.Use(middlewarepkg.JWT(jwtManager))

	pipeline := middlewarepkg.PipelineRateLimiter(cfg.RateLimitPipeline)
	secured.POST("/leads/search", handlers.Search.Discover, pipeline)
	secured.POST("/leads/:id/enrich", handlers.Enrich.Trigger, pipeline)
	secured.POST("/leads/:id/intelligence", handlers.Intelligence.Trigger, pipeline)
	secured.POST("/audit", handlers.Audit.Trigger, pipeline)

	secured.PATCH("/pitches/:id/status", handlers.Pitch.UpdateStatus)
}
