package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"company-news-agent/internal/agent/config"
	delivery "company-news-agent/internal/agent/delivery/http"
	"company-news-agent/internal/agent/repository"
	"company-news-agent/internal/agent/sec"
	"company-news-agent/internal/agent/service"
	"company-news-agent/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"
)

var configPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the news agent API",
	Run:   runServe,
}

func runServe(cmd *cobra.Command, args []string) {
	// Create a context that is canceled on interrupt signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	appLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	appLogger.Info("Starting News Agent API", logger.Field("name", cfg.App.Name))

	// Assemble providers in priority order: paid/authoritative sources first.
	providers := buildProviders(cfg, appLogger)

	newsSvc, err := service.NewNewsService(providers, service.Options{
		DefaultLimit:   cfg.Agent.DefaultLimit,
		PerSourceLimit: cfg.Agent.PerSourceLimit,
		AllowedDomains: cfg.Agent.AllowedDomains,
	}, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize news service", logger.ErrorField(err))
	}

	// Initialize Echo server
	e := echo.New()
	e.HideBanner = true

	// Initialize handlers and routes
	newsHandler := delivery.NewNewsHandler(newsSvc, appLogger)
	apiV1 := e.Group("/api/v1")
	newsHandler.RegisterRoutes(apiV1)
	e.GET("/health", newsHandler.Health)

	// Start server
	go func() {
		addr := fmt.Sprintf(":%d", cfg.API.Port)
		appLogger.Info("HTTP server starting", logger.Field("address", addr))
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			appLogger.Error("HTTP server failed to start", logger.ErrorField(err))
			stop() // trigger shutdown
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()

	appLogger.Info("Shutting down server...")

	// Gracefully shutdown the server
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		appLogger.Fatal("Server forced to shutdown", logger.ErrorField(err))
	}

	appLogger.Info("Server exiting")
}

// buildProviders assembles the configured sources. The news API is enabled
// only when a key is present; the SEC engine only when a contact user agent
// is configured. A malformed SEC user agent is fatal at startup, not at call
// time.
func buildProviders(cfg *config.Config, appLogger *logger.Logger) []repository.ArticleProvider {
	var providers []repository.ArticleProvider

	if cfg.Agent.UseMock {
		appLogger.Warn("Mock provider enabled, live sources disabled")
		return []repository.ArticleProvider{repository.NewMockRepository()}
	}

	if cfg.NewsAPI.APIKey != "" {
		newsAPI, err := repository.NewNewsAPIRepository(cfg.NewsAPI.APIKey, cfg.NewsAPI.BaseURL, appLogger)
		if err != nil {
			appLogger.Fatal("Failed to initialize NewsAPI provider", logger.ErrorField(err))
		}
		providers = append(providers, newsAPI)
	} else {
		appLogger.Warn("NewsAPI key not configured, provider disabled")
	}

	providers = append(providers, repository.NewRSSRepository(cfg.RSS.Sections, appLogger))

	if cfg.SEC.UserAgent != "" {
		secClient, err := sec.NewClient(cfg.SEC.UserAgent, cfg.SEC.BaseURL, cfg.SEC.TickerMapURL, appLogger)
		if err != nil {
			appLogger.Fatal("Failed to initialize SEC client", logger.ErrorField(err))
		}
		providers = append(providers, sec.NewProvider(secClient, appLogger, cfg.SEC.MaxYears))
	} else {
		appLogger.Warn("SEC user agent not configured, provider disabled")
	}

	return providers
}

func main() {
	rootCmd := &cobra.Command{Use: "news-agent-api"}

	serveCmd.Flags().StringVarP(&configPath, "config", "c", "configs/config-api.yaml", "Path to the configuration file")

	rootCmd.AddCommand(serveCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing news-agent-api CLI: %s\n", err)
		os.Exit(1)
	}
}
