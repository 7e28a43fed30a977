package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/leadscout/api/internal/adapter"
	"github.com/leadscout/api/internal/auth"
	"github.com/leadscout/api/internal/config"
	"github.com/leadscout/api/internal/database"
	"github.com/leadscout/api/internal/handler"
	middlewarepkg "github.com/leadscout/api/internal/middleware"
	"github.com/leadscout/api/internal/repository"
	"github.com/leadscout/api/internal/router"
	"github.com/leadscout/api/internal/service"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("failed to connect database", zap.Error(err))
	}
	defer pool.Close()

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)

	usersRepo := repository.NewPGXUsersRepository(pool)
	leadsRepo := repository.NewPGXLeadsRepository(pool)
	auditsRepo := repository.NewPGXAuditsRepository(pool)
	intelRepo := repository.NewPGXIntelligenceRepository(pool)
	pitchesRepo := repository.NewPGXPitchesRepository(pool)

	auditor, err := adapter.NewPageSpeedAuditor(ctx, cfg.PageSpeedKey)
	if err != nil {
		logger.Fatal("failed to build pagespeed client", zap.Error(err))
	}
	searcher, err := adapter.NewCustomSearchBusinessSearcher(ctx, cfg.SearchKey, cfg.SearchEngineID)
	if err != nil {
		logger.Fatal("failed to build search client", zap.Error(err))
	}
	scraper := adapter.NewRestyScraper(cfg.Scraper.BaseURL, cfg.Scraper.APIKey, cfg.AdapterTimeout)

	sources := service.EnrichmentSources{
		Tech:    adapter.NewRestyTechDetector(cfg.TechDetector.BaseURL, cfg.TechDetector.APIKey, cfg.AdapterTimeout),
		People:  adapter.NewRestyPeopleFinder(cfg.PeopleLookup.BaseURL, cfg.PeopleLookup.APIKey, cfg.AdapterTimeout),
		Perf:    auditor,
		Social:  scraper,
		Content: scraper,
	}
	narrator := adapter.NewClaudeNarrator(cfg.AnthropicKey, cfg.AnthropicModel, cfg.AnthropicMaxTokens)

	authService := service.NewAuthService(usersRepo, jwtManager)
	searchService := service.NewSearchService(leadsRepo, searcher, logger)
	enrichmentService := service.NewEnrichmentService(leadsRepo, sources, service.DefaultDecisionMakerVocabulary(), cfg.DefaultPhoneRegion, logger)
	auditService := service.NewAuditService(auditsRepo, auditor, service.DefaultScoringConfig(), logger)
	intelligenceService := service.NewIntelligenceService(leadsRepo, auditsRepo, intelRepo, narrator, logger)
	pitchService := service.NewPitchService(pitchesRepo)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middlewarepkg.RequestID())
	e.Use(middlewarepkg.Logging(logger))
	e.Use(echoMiddleware.Recover())

	router.Register(e, cfg, jwtManager, router.Handlers{
		Auth:         handler.NewAuthHandler(authService),
		Search:       handler.NewSearchHandler(searchService),
		Enrich:       handler.NewEnrichHandler(enrichmentService),
		Audit:        handler.NewAuditHandler(auditService),
		Intelligence: handler.NewIntelligenceHandler(intelligenceService),
		Pitch:        handler.NewPitchHandler(pitchService),
	})

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- e.Start(":" + cfg.Port)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		logger.Info("received signal, shutting down", zap.String("signal", sig.String()))
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
		return
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}
