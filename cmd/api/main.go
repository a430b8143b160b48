package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/medvoice/medvoice-ai-platform/internal/api/router"
	appconfig "github.com/medvoice/medvoice-ai-platform/internal/config"
	"github.com/medvoice/medvoice-ai-platform/internal/doctors"
	"github.com/medvoice/medvoice-ai-platform/internal/extract"
	"github.com/medvoice/medvoice-ai-platform/internal/llm"
	"github.com/medvoice/medvoice-ai-platform/internal/observability/metrics"
	"github.com/medvoice/medvoice-ai-platform/internal/report"
	"github.com/medvoice/medvoice-ai-platform/internal/session"
	"github.com/medvoice/medvoice-ai-platform/internal/users"
	"github.com/medvoice/medvoice-ai-platform/pkg/logging"
)

func main() {
	// .env is optional; real deployments use the environment directly.
	_ = godotenv.Load()

	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting medvoice-ai-platform API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	ctx := context.Background()

	// Storage: Postgres when configured, in-memory otherwise (demo mode).
	var sessionRepo session.Repository = session.NewInMemoryRepository()
	var usersRepo users.Repository = users.NewInMemoryRepository()
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Error("failed to create pgx pool", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		if err := pool.Ping(ctx); err != nil {
			logger.Error("failed to reach database", "error", err)
			os.Exit(1)
		}
		sessionRepo = session.NewPostgresRepository(pool)
		usersRepo = users.NewPostgresRepository(pool)
		logger.Info("using postgres storage")
	} else {
		logger.Warn("DATABASE_URL not set, using in-memory storage")
	}

	// LLM providers: OpenRouter primary, Gemini fallback when configured.
	openrouter, err := llm.NewOpenRouterClient(llm.OpenRouterConfig{
		APIKey:         cfg.OpenRouterAPIKey,
		BaseURL:        cfg.OpenRouterBaseURL,
		EmbeddingModel: cfg.EmbeddingModel,
		Timeout:        cfg.ProviderTimeout,
	})
	if err != nil {
		logger.Error("failed to init openrouter client", "error", err)
		os.Exit(1)
	}
	var chat llm.ChatClient = openrouter
	if cfg.GeminiAPIKey != "" {
		gemini, err := llm.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			logger.Error("failed to init gemini client", "error", err)
			os.Exit(1)
		}
		defer gemini.Close()
		chat = llm.NewFallbackChatClient(openrouter, gemini, logger)
		logger.Info("gemini fallback enabled", "model", cfg.GeminiModel)
	}

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	reportMetrics := metrics.NewReportMetrics(registry)

	// Comparison cache (optional)
	var compareCache *report.CompareCache
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		defer redisClient.Close()
		compareCache = report.NewCompareCache(redisClient, cfg.CompareTTL, logger)
		logger.Info("comparison cache enabled", "addr", cfg.RedisAddr)
	}

	// Core services
	comparator := report.NewComparator(openrouter, chat, cfg.SummaryModel, compareCache, reportMetrics, logger)
	synthesizer := report.NewSynthesizer(chat, sessionRepo, cfg.ChatModel, reportMetrics, logger)
	suggester := doctors.NewSuggester(chat, cfg.ChatModel, logger)

	var ocr extract.TextSource
	if cfg.ExtractorBaseURL != "" {
		client, err := extract.NewOCRClient(extract.Config{
			BaseURL: cfg.ExtractorBaseURL,
			Timeout: cfg.ProviderTimeout,
		})
		if err != nil {
			logger.Error("failed to init extractor client", "error", err)
			os.Exit(1)
		}
		ocr = client
	}

	// Setup router
	routerCfg := &router.Config{
		Logger:             logger,
		ReportHandler:      report.NewHandler(comparator, synthesizer, logger),
		SessionHandler:     session.NewHandler(sessionRepo, logger),
		UsersHandler:       users.NewHandler(usersRepo, logger),
		DoctorsHandler:     doctors.NewHandler(suggester, logger),
		ExtractHandler:     extract.NewHandler(extract.NewExtractor(ocr), cfg.MaxUploadBytes, logger),
		MetricsHandler:     promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		AuthJWTSecret:      cfg.AuthJWTSecret,
		CORSAllowedOrigins: cfg.CORSOrigins,
		RateLimitRPS:       cfg.RateLimitRPS,
		RateLimitBurst:     cfg.RateLimitBurst,
	}
	r := router.New(routerCfg)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
	fmt.Println("Server exited gracefully")
}
