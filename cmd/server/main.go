package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/pep299/company-news-api/internal/config"
	"github.com/pep299/company-news-api/internal/handlers"
	"github.com/pep299/company-news-api/internal/telemetry"
)

var (
	Version   string = "dev"
	Commit    string = "unknown"
	BuildTime string = "unknown"
)

func main() {
	var (
		showHelp    = flag.Bool("help", false, "Show help message")
		showVersion = flag.Bool("version", false, "Show version information")
	)
	flag.Parse()

	if *showHelp {
		fmt.Printf("Company News API Server\n\n")
		fmt.Printf("Usage: %s [options]\n\n", os.Args[0])
		fmt.Printf("Options:\n")
		flag.PrintDefaults()
		fmt.Printf("\nEnvironment Variables:\n")
		fmt.Printf("  NAVER_CLIENT_ID           Naver API client ID (required for Naver searches)\n")
		fmt.Printf("  NAVER_CLIENT_SECRET       Naver API client secret (required for Naver searches)\n")
		fmt.Printf("  DEEPSEARCH_API_KEY        DeepSearch API key (mock data when unset)\n")
		fmt.Printf("  PORT                      Server port (default: 8000)\n")
		fmt.Printf("  HOST                      Server host (default: 0.0.0.0)\n")
		fmt.Printf("  UPSTREAM_TIMEOUT_SECONDS  Provider request timeout (default: 5)\n")
		fmt.Printf("  CORS_ORIGINS              Allowed CORS origins (default: *)\n")
		fmt.Printf("  WATCHLIST                 Comma-separated companies for the scheduled digest\n")
		fmt.Printf("  WATCHLIST_SCHEDULE        Cron expression for the digest (default: 0 8 * * *)\n")
		fmt.Printf("  SLACK_WEBHOOK_URL         Slack incoming webhook for the digest\n")
		fmt.Printf("  OTEL_TRACES_EXPORTER      Trace exporter: none or stdout (default: none)\n")
		os.Exit(0)
	}

	if *showVersion {
		fmt.Printf("Company News API Server\n")
		fmt.Printf("Version: %s\n", Version)
		fmt.Printf("Commit: %s\n", Commit)
		fmt.Printf("Build Time: %s\n", BuildTime)
		os.Exit(0)
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if cfg.NaverClientID == "" || cfg.NaverClientSecret == "" {
		log.Println("⚠️ Naver credentials not set, Naver and combined searches will fail")
	}
	if cfg.DeepSearchAPIKey == "" {
		log.Println("⚠️ DeepSearch API key not set, serving mock DeepSearch articles")
	}

	// Setup tracing
	shutdownTracing, err := telemetry.Setup(cfg.TelemetryConfig())
	if err != nil {
		log.Fatalf("Failed to set up tracing: %v", err)
	}

	// Create server
	server := handlers.NewServer(cfg)

	// Setup routes
	router := server.Handler()

	// Create HTTP server
	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Create cron scheduler
	c := cron.New()

	if len(cfg.Watchlist) > 0 {
		_, err := c.AddFunc(cfg.WatchlistSchedule, func() {
			log.Printf("🕐 Scheduled watchlist run starting for %d companies", len(cfg.Watchlist))
			if err := server.RunWatchlist(ctx); err != nil {
				log.Printf("❌ Scheduled watchlist run failed: %v", err)
			} else {
				log.Printf("✅ Scheduled watchlist run completed")
			}
		})

		if err != nil {
			log.Printf("❌ Failed to schedule watchlist: %v", err)
		} else {
			log.Printf("📅 Scheduled watchlist %v with cron: %s", cfg.Watchlist, cfg.WatchlistSchedule)
		}
	} else {
		log.Println("Watchlist is empty, scheduled digest disabled")
	}

	// Start cron scheduler
	c.Start()
	defer c.Stop()

	// Setup graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Start server
	go func() {
		log.Printf("🚀 Starting %s %s on %s:%s", cfg.AppName, cfg.AppVersion, cfg.Host, cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for shutdown signal
	<-sigChan
	log.Println("🛑 Shutting down server...")

	// Cancel background tasks
	cancel()

	// Stop cron scheduler and wait for a running job
	<-c.Stop().Done()

	// Shutdown HTTP server
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Printf("Tracer shutdown error: %v", err)
	}

	log.Println("✅ Server stopped")
}
