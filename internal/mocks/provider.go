package mocks

import (
	"context"
	"sync/atomic"

	"github.com/pep299/company-news-api/internal/news"
)

// Mock news provider
type MockProvider struct {
	ProviderName string
	Result       *news.Result
	Err          error

	calls atomic.Int32
}

func (m *MockProvider) Name() string {
	return m.ProviderName
}

func (m *MockProvider) Search(ctx context.Context, q news.Query) (*news.Result, error) {
	m.calls.Add(1)
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Result != nil {
		return m.Result, nil
	}
	return &news.Result{Company: q.CompanyName, Items: []news.Article{}}, nil
}

// Calls reports how many times Search was invoked
func (m *MockProvider) Calls() int {
	return int(m.calls.Load())
}

// NewMockResult builds a result with total articles, of which the first n are returned
func NewMockResult(company, source string, total, n int) *news.Result {
	items := make([]news.Article, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, news.Article{
			Title:  company + " headline",
			URL:    "https://example.com/" + company,
			Source: source,
		})
	}
	return &news.Result{Company: company, Total: total, Items: items}
}
