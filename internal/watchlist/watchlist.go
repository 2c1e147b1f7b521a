package watchlist

import (
	"context"
	"fmt"
	"log"

	"github.com/pep299/company-news-api/internal/news"
	"github.com/pep299/company-news-api/internal/slack"
)

// Fetcher runs a combined news search for one company
type Fetcher interface {
	FetchCombined(ctx context.Context, company string, naverLimit, deepSearchLimit, daysBack int) (*news.CombinedReport, error)
}

// Notifier delivers a finished digest
type Notifier interface {
	SendDigest(ctx context.Context, entries []slack.DigestEntry) error
}

// Runner fetches combined news for every watched company
type Runner struct {
	fetcher   Fetcher
	notifier  Notifier
	companies []string
}

// NewRunner creates a watchlist runner. notifier may be nil to only log results.
func NewRunner(fetcher Fetcher, notifier Notifier, companies []string) *Runner {
	return &Runner{
		fetcher:   fetcher,
		notifier:  notifier,
		companies: companies,
	}
}

// Companies returns the watched company names
func (r *Runner) Companies() []string {
	return r.companies
}

// Run fetches each company in order. A failing company is recorded in its
// entry and does not stop the run. The returned error only reports a failed
// notification.
func (r *Runner) Run(ctx context.Context) ([]slack.DigestEntry, error) {
	if len(r.companies) == 0 {
		log.Println("Watchlist is empty, nothing to fetch")
		return nil, nil
	}

	log.Printf("Starting watchlist run for %d companies...", len(r.companies))

	entries := make([]slack.DigestEntry, 0, len(r.companies))
	failed := 0
	for _, company := range r.companies {
		report, err := r.fetcher.FetchCombined(ctx, company,
			news.DefaultCombinedNaverLimit, news.DefaultCombinedDeepLimit, news.DefaultCombinedDaysBack)
		if err != nil {
			log.Printf("Error fetching news for %s: %v", company, err)
			entries = append(entries, slack.DigestEntry{Company: company, Err: err})
			failed++
			continue
		}

		log.Printf("%s: %d articles (naver %d, deepsearch %d)",
			company, report.CombinedTotal, report.Naver.Total, report.DeepSearch.Total)
		entries = append(entries, slack.DigestEntry{Company: company, Report: report})
	}

	log.Printf("Watchlist run complete: %d successful, %d errors", len(entries)-failed, failed)

	if r.notifier != nil {
		if err := r.notifier.SendDigest(ctx, entries); err != nil {
			return entries, fmt.Errorf("sending digest: %w", err)
		}
		log.Printf("Sent watchlist digest for %d companies", len(entries))
	}

	return entries, nil
}
