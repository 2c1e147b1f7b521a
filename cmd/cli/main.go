package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/pep299/company-news-api/internal/config"
	"github.com/pep299/company-news-api/internal/handlers"
	"github.com/pep299/company-news-api/internal/news"
	"github.com/pep299/company-news-api/internal/telemetry"
)

func main() {
	var (
		company         = flag.String("company", "", "Company to search; runs the watchlist when empty")
		naverLimit      = flag.Int("naver-limit", news.DefaultCombinedNaverLimit, "Naver articles to fetch")
		deepSearchLimit = flag.Int("deepsearch-limit", news.DefaultCombinedDeepLimit, "DeepSearch articles to fetch")
		daysBack        = flag.Int("days-back", news.DefaultCombinedDaysBack, "DeepSearch look-back window in days")
	)
	flag.Parse()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	shutdownTracing, err := telemetry.Setup(cfg.TelemetryConfig())
	if err != nil {
		log.Fatalf("Failed to set up tracing: %v", err)
	}
	defer shutdownTracing(context.Background())

	// Create server instance (contains all the clients)
	server := handlers.NewServer(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *company != "" {
		report, err := server.Aggregator().FetchCombined(ctx, *company, *naverLimit, *deepSearchLimit, *daysBack)
		if err != nil {
			log.Fatalf("Combined search failed: %v", err)
		}
		printJSON(report)
		return
	}

	// Run the watchlist once
	runner := server.Watchlist()
	if len(runner.Companies()) == 0 {
		log.Fatal("No -company given and WATCHLIST is empty")
	}
	log.Printf("Running watchlist for %v", runner.Companies())

	entries, err := runner.Run(ctx)
	results := make([]watchlistResult, 0, len(entries))
	for _, entry := range entries {
		result := watchlistResult{Company: entry.Company, Report: entry.Report}
		if entry.Err != nil {
			result.Error = entry.Err.Error()
		}
		results = append(results, result)
	}
	printJSON(results)

	if err != nil {
		log.Fatalf("Watchlist run failed: %v", err)
	}
}

// watchlistResult is the printed outcome for one watched company
type watchlistResult struct {
	Company string               `json:"company"`
	Report  *news.CombinedReport `json:"report,omitempty"`
	Error   string               `json:"error,omitempty"`
}

func printJSON(v interface{}) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		log.Fatalf("Failed to encode output: %v", err)
	}
}
