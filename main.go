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

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/aubri61/inventoria-ai/internal/assistant"
	"github.com/aubri61/inventoria-ai/internal/core"
	"github.com/aubri61/inventoria-ai/internal/dashboard"
	"github.com/aubri61/inventoria-ai/internal/httpapi"
	"github.com/aubri61/inventoria-ai/internal/products"
	"github.com/aubri61/inventoria-ai/internal/shopify"
	"github.com/aubri61/inventoria-ai/internal/shopify/session"
	logx "github.com/aubri61/inventoria-ai/pkg/logger"
	pkgredis "github.com/aubri61/inventoria-ai/pkg/redis"
)

// AppConfig defines all configurable parameters for the service, sourced from
// environment variables (loaded from .env for local runs).
type AppConfig struct {
	Environment string `envconfig:"APP_ENV" default:"development"`
	HTTPAddr    string `envconfig:"HTTP_ADDR" default:":8080"`

	// Infrastructure
	Redis pkgredis.Config

	// Shopify
	ShopifyAPISecret  string `envconfig:"SHOPIFY_API_SECRET" required:"true"`
	ShopifyAPIVersion string `envconfig:"SHOPIFY_API_VERSION" default:"2025-01"`

	// Assistant
	Gemini      assistant.GeneratorConfig
	OnSaleLimit int `envconfig:"ONSALE_LIMIT" default:"20"`
}

func main() {
	ctx := context.Background()

	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		log.Fatalf("Failed to process environment config: %v", err)
	}

	logx.Init(logx.LoggerOpts{Environment: core.ParseEnvironment(cfg.Environment)})

	rdb, err := cfg.Redis.New()
	if err != nil {
		logx.Fatal().Err(err).Msg("Failed to initialise Redis client")
	}
	defer rdb.Close()

	sessions := session.NewRedisStore(rdb)
	admin := shopify.NewClient(cfg.ShopifyAPIVersion)

	// Without an API key the assistant runs in demo mode.
	var gen assistant.Generator
	if cfg.Gemini.APIKey != "" {
		g, err := assistant.NewGeminiGenerator(ctx, cfg.Gemini)
		if err != nil {
			logx.Fatal().Err(err).Msg("Failed to initialise Gemini generator")
		}
		gen = g
	} else {
		logx.Warn().Msg("GEMINI_API_KEY not set, assistant answers in demo mode")
	}

	srv := httpapi.NewServer(
		sessions,
		assistant.NewService(admin, gen, cfg.OnSaleLimit),
		products.NewService(admin),
		dashboard.NewService(admin),
		cfg.ShopifyAPISecret,
	)

	httpServer := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: httpapi.NewRouter(srv),
	}

	go func() {
		logx.Info().Str("addr", cfg.HTTPAddr).Msg("HTTP server listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logx.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	stop, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()
	<-stop.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logx.Error().Err(err).Msg("Shutdown did not complete cleanly")
	}
	logx.Info().Msg("Server stopped")
}
