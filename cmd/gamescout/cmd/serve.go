package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humaecho"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/gamescout/gamescout/internal/agg"
	"github.com/gamescout/gamescout/internal/api/handlers"
	"github.com/gamescout/gamescout/internal/api/middleware"
	"github.com/gamescout/gamescout/internal/cheapshark"
	"github.com/gamescout/gamescout/internal/config"
	"github.com/gamescout/gamescout/internal/igdb"
	"github.com/gamescout/gamescout/internal/janitor"
	"github.com/gamescout/gamescout/pkg/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server and cache janitor",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)

	// Upstream clients.
	tokens := igdb.NewClientCredentialsProvider(
		cfg.Catalog.ClientID,
		cfg.Catalog.ClientSecret,
		igdb.WithTokenURL(cfg.Catalog.TokenURL),
	)
	catalog := igdb.NewClient(
		tokens,
		cfg.Catalog.ClientID,
		igdb.WithAPIURL(cfg.Catalog.APIURL),
		igdb.WithCallTimeout(cfg.Catalog.CallTimeout),
		igdb.WithRateLimiter(igdb.NewRateLimiter(
			cfg.Catalog.RateLimit.PerSecond,
			cfg.Catalog.RateLimit.Burst,
		)),
	)
	pricing := cheapshark.NewClient(
		cheapshark.WithBaseURL(cfg.Pricing.BaseURL),
		cheapshark.WithCallTimeout(cfg.Pricing.CallTimeout),
	)

	aggregator := agg.New(catalog, pricing, log)

	sweeper, err := janitor.New(aggregator, cfg.Cache.CleanupInterval, log)
	if err != nil {
		return fmt.Errorf("creating cache janitor: %w", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	e.Use(middleware.Recovery(log))
	e.Use(middleware.RequestLog(log))
	e.Use(middleware.Metrics())

	health := handlers.NewHealthHandler()
	e.GET("/healthz", health.Healthz)
	e.GET("/readyz", health.Readyz)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := humaecho.New(e, huma.DefaultConfig("Gamescout API", Version))
	handlers.RegisterGameRoutes(api, handlers.NewGamesHandler(aggregator))
	handlers.RegisterPlatformRoutes(api, handlers.NewPlatformsHandler(aggregator))
	handlers.RegisterStoreRoutes(api, handlers.NewStoresHandler(aggregator))
	handlers.RegisterAdminRoutes(api, handlers.NewAdminHandler(aggregator))

	sweeper.Start()

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Info("starting server", "addr", addr)

	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
		}
	}()

	health.SetReady(true)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
	health.SetReady(false)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Wait for an in-flight sweep before stopping the HTTP server.
	select {
	case <-sweeper.Stop().Done():
	case <-ctx.Done():
	}

	if err := e.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}

	log.Info("server stopped")
	return nil
}
