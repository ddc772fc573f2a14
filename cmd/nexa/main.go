package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/nexa-app/nexa/internal/config"
	"github.com/nexa-app/nexa/internal/db/postgres"
	dbRedis "github.com/nexa-app/nexa/internal/db/redis"
	"github.com/nexa-app/nexa/internal/domain"
	"github.com/nexa-app/nexa/internal/domain/draft"
	"github.com/nexa-app/nexa/internal/domain/recommend"
	logpkg "github.com/nexa-app/nexa/internal/logger"
	"github.com/nexa-app/nexa/internal/metrics"
	catalogrepo "github.com/nexa-app/nexa/internal/repository/catalog"
	"github.com/nexa-app/nexa/internal/repository/suggestcache"
	chiTransport "github.com/nexa-app/nexa/internal/transport/chi"
	"github.com/nexa-app/nexa/internal/transport/openai"
	browseuc "github.com/nexa-app/nexa/internal/usecase/browse"
	contentuc "github.com/nexa-app/nexa/internal/usecase/content"
	discoveryuc "github.com/nexa-app/nexa/internal/usecase/discovery"
	draftuc "github.com/nexa-app/nexa/internal/usecase/draft"
	healthuc "github.com/nexa-app/nexa/internal/usecase/health"
	recommenduc "github.com/nexa-app/nexa/internal/usecase/recommend"
	searchuc "github.com/nexa-app/nexa/internal/usecase/search"
	"github.com/nexa-app/nexa/internal/version"
)

func main() {
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting nexa API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("build_date", version.Date),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Bool("cache_enabled", cfg.Redis.Enabled),
		zap.Bool("oracle_enabled", cfg.Oracle.Enabled()),
	)

	// Register metrics explicitly (no init())
	metrics.Register()

	ctx := context.Background()

	pg, err := postgres.Open(postgres.Config{
		DSN:             cfg.Postgres.DSN,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Postgres.ConnMaxLifetimeSec) * time.Second,
	})
	if err != nil {
		logger.Fatal("Failed to open catalog database", zap.Error(err))
	}
	defer func() { _ = pg.Close() }()

	if err := pg.WaitForReady(ctx, time.Duration(cfg.Postgres.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Catalog database not ready", zap.Error(err))
	}
	logger.Info("Connected to catalog database")

	// Content sources: one per kind, shared by discovery, search and browse.
	repo := catalogrepo.New(pg.DB(), time.Duration(cfg.Postgres.QueryTimeoutSec)*time.Second)
	now := time.Now
	listings := contentuc.NewListingSource(repo)
	events := contentuc.NewEventSource(repo, now)
	offers := contentuc.NewOfferSource(repo, now)
	registry := contentuc.NewRegistryFromSources(listings, events, offers)

	// Oracle chain: OpenAI -> Cached (suggestions only)
	var (
		suggester recommenduc.Suggester = unavailableOracle{}
		describer draftuc.Describer     = unavailableOracle{}
		oracleHC  healthuc.OracleChecker
	)
	if cfg.Oracle.Enabled() {
		oracle := openai.New(&openai.Config{
			APIKey:    cfg.Oracle.APIKey,
			BaseURL:   cfg.Oracle.BaseURL,
			Model:     cfg.Oracle.Model,
			MaxTokens: cfg.Oracle.MaxTokens,
			Breaker: openai.BreakerConfig{
				MaxRequests:         cfg.Oracle.Breaker.MaxRequests,
				Interval:            time.Duration(cfg.Oracle.Breaker.IntervalSec) * time.Second,
				Timeout:             time.Duration(cfg.Oracle.Breaker.OpenTimeoutSec) * time.Second,
				ConsecutiveFailures: cfg.Oracle.Breaker.ConsecutiveFailures,
			},
			Logger: logger,
		})
		suggester, describer, oracleHC = oracle, oracle, oracle
		logger.Info("Oracle configured", zap.String("model", cfg.Oracle.Model))
	} else {
		logger.Warn("Oracle API key not set, recommendations and drafts will use fallbacks")
	}

	// Pass nil interface (not typed nil pointer!) to health when the cache is disabled.
	var cachePinger healthuc.Pinger
	if cfg.Redis.Enabled {
		store, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:     cfg.Redis.Addrs,
			Password:  cfg.Redis.Password,
			KeyPrefix: cfg.Redis.KeyPrefix,
		})
		if err != nil {
			logger.Fatal("Failed to create cache store", zap.Error(err))
		}
		defer store.Close()

		if err := store.WaitForReady(ctx, time.Duration(cfg.Redis.ReadinessTimeout)*time.Second); err != nil {
			logger.Fatal("Cache not ready", zap.Error(err))
		}
		logger.Info("Connected to suggestion cache")

		suggester = suggestcache.New(
			suggester, store,
			time.Duration(cfg.Redis.SuggestionTTLSec)*time.Second,
			metrics.SuggestionCacheTotal, logger,
		)
		cachePinger = store
	}

	oracleTimeout := time.Duration(cfg.Oracle.TimeoutSec) * time.Second
	server := chiTransport.NewServer(chiTransport.Services{
		Discovery: discoveryuc.New(registry),
		Search:    searchuc.New(registry),
		Recommend: recommenduc.New(suggester, oracleTimeout),
		Draft:     draftuc.New(describer, oracleTimeout),
		Browse:    browseuc.New(listings, events, offers),
		Health:    healthuc.New(pg, cachePinger, oracleHC),
	}, chiTransport.Options{
		DefaultPageSize: cfg.Discovery.DefaultPageSize,
		MaxPageSize:     cfg.Discovery.MaxPageSize,
		DefaultRadiusKm: cfg.Discovery.DefaultRadiusKm,
		MaxBodyBytes:    int64(cfg.HTTP.MaxBodyBytes),
		OracleRateLimit: cfg.HTTP.OracleRateLimitPerMin,
	})

	r := chi.NewRouter()
	r.Use(chiTransport.JSONRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(chiTransport.WideEvent(logger))
	r.Use(metrics.Middleware())
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	server.Register(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// unavailableOracle stands in when no API key is configured. Every call
// fails, so the use cases serve their fallbacks.
type unavailableOracle struct{}

func (unavailableOracle) Suggest(context.Context, recommend.Prompt) ([]recommend.Suggestion, error) {
	return nil, fmt.Errorf("%w: not configured", domain.ErrOracle)
}

func (unavailableOracle) Describe(context.Context, string) (draft.Draft, error) {
	return draft.Draft{}, fmt.Errorf("%w: not configured", domain.ErrOracle)
}
