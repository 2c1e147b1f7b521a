package aggregator

import (
	"context"
	"fmt"
	"log"

	"golang.org/x/sync/errgroup"

	"github.com/pep299/company-news-api/internal/news"
)

// Aggregator dispatches queries to registered news providers
type Aggregator struct {
	providers map[string]news.Provider
}

// New creates an aggregator over the Naver and DeepSearch providers
func New(naverProvider, deepSearchProvider news.Provider) *Aggregator {
	a := &Aggregator{providers: make(map[string]news.Provider)}
	a.register(naverProvider)
	a.register(deepSearchProvider)
	return a
}

func (a *Aggregator) register(p news.Provider) {
	a.providers[p.Name()] = p
}

// Provider looks up a registered provider by name
func (a *Aggregator) Provider(name string) (news.Provider, bool) {
	p, ok := a.providers[name]
	return p, ok
}

// FetchSingle runs q against one provider and returns its result unchanged
func (a *Aggregator) FetchSingle(ctx context.Context, providerName string, q news.Query) (*news.Result, error) {
	p, ok := a.Provider(providerName)
	if !ok {
		return nil, &news.InternalError{
			Provider: providerName,
			Err:      fmt.Errorf("unknown provider %q", providerName),
		}
	}
	return p.Search(ctx, q)
}

// FetchCombined queries both providers concurrently. Either failure fails the
// whole call with an *news.AggregationError and no partial report.
func (a *Aggregator) FetchCombined(ctx context.Context, company string, naverLimit, deepSearchLimit, daysBack int) (*news.CombinedReport, error) {
	naverQuery, err := news.NewNaverQuery(company, naverLimit, news.DefaultNaverStart)
	if err != nil {
		return nil, &news.AggregationError{Err: err}
	}
	deepQuery, err := news.NewDeepSearchQuery(company, deepSearchLimit, daysBack)
	if err != nil {
		return nil, &news.AggregationError{Err: err}
	}

	var naverResult, deepResult *news.Result

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(2)
	g.Go(func() error {
		result, err := a.FetchSingle(gctx, news.ProviderNaver, naverQuery)
		if err != nil {
			return err
		}
		naverResult = result
		return nil
	})
	g.Go(func() error {
		result, err := a.FetchSingle(gctx, news.ProviderDeepSearch, deepQuery)
		if err != nil {
			return err
		}
		deepResult = result
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Printf("Combined news search failed for %q: %v", naverQuery.CompanyName, err)
		return nil, &news.AggregationError{Err: err}
	}

	return news.NewCombinedReport(naverQuery.CompanyName, naverResult, deepResult), nil
}
