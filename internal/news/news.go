package news

import (
	"context"
	"encoding/json"
	"strings"
)

// Source labels attached to every Article
const (
	SourceNaver          = "naver"
	SourceDeepSearch     = "deepsearch"
	SourceDeepSearchMock = "deepsearch (mock)"
)

// Provider names used by the aggregator registry
const (
	ProviderNaver      = "naver"
	ProviderDeepSearch = "deepsearch"
)

// Provider is a news source that can be searched by company name
type Provider interface {
	// Name returns the provider identifier (e.g., "naver", "deepsearch")
	Name() string

	// Search fetches news for the query and returns it in canonical form
	Search(ctx context.Context, q Query) (*Result, error)
}

// Article represents a news article in canonical form
type Article struct {
	Title           string   `json:"title"`
	URL             string   `json:"url"`
	OriginalURL     string   `json:"original_url,omitempty"`
	Description     string   `json:"description"`
	PublishedAt     string   `json:"published_at"` // provider's native format
	Source          string   `json:"source"`
	CompanyMentions []string `json:"company_mentions,omitempty"`
	Sentiment       string   `json:"sentiment,omitempty"`
}

// MarshalJSON always writes company_mentions and sentiment for DeepSearch
// articles, as an empty list and empty string when the provider omitted them.
// Naver articles never carry these keys.
func (a Article) MarshalJSON() ([]byte, error) {
	type plain Article
	if a.Source == SourceNaver {
		return json.Marshal(plain(a))
	}

	mentions := a.CompanyMentions
	if mentions == nil {
		mentions = []string{}
	}
	return json.Marshal(struct {
		plain
		CompanyMentions []string `json:"company_mentions"`
		Sentiment       string   `json:"sentiment"`
	}{plain(a), mentions, a.Sentiment})
}

// Result is the response of a single provider search
type Result struct {
	Company string    `json:"company"`
	Total   int       `json:"total"`
	Start   int       `json:"start,omitempty"`
	Display int       `json:"display,omitempty"`
	Items   []Article `json:"items"`
}

// SourceSummary is the per-provider part of a CombinedReport
type SourceSummary struct {
	Total int       `json:"total"`
	Items []Article `json:"items"`
}

// CombinedReport reports both providers side by side.
// CombinedTotal is a plain sum; articles found by both providers count twice.
type CombinedReport struct {
	Company       string        `json:"company"`
	Naver         SourceSummary `json:"naver_news"`
	DeepSearch    SourceSummary `json:"deepsearch_news"`
	CombinedTotal int           `json:"combined_total"`
}

// NewCombinedReport builds a report from two successful results
func NewCombinedReport(company string, naver, deepSearch *Result) *CombinedReport {
	return &CombinedReport{
		Company:       company,
		Naver:         SourceSummary{Total: naver.Total, Items: naver.Items},
		DeepSearch:    SourceSummary{Total: deepSearch.Total, Items: deepSearch.Items},
		CombinedTotal: naver.Total + deepSearch.Total,
	}
}

// IsSynthetic reports whether a source label marks generated placeholder data
func IsSynthetic(source string) bool {
	return source == SourceDeepSearchMock
}

// StripEmphasis removes the <b> and </b> highlight tags Naver wraps around matched terms.
// Removal repeats until nothing changes so that nested input like "<<b>b>" cannot
// leave a tag behind.
func StripEmphasis(text string) string {
	for {
		stripped := emphasisReplacer.Replace(text)
		if stripped == text {
			return stripped
		}
		text = stripped
	}
}

var emphasisReplacer = strings.NewReplacer("<b>", "", "</b>", "")
