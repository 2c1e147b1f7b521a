package deepsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/pep299/company-news-api/internal/news"
)

// DefaultAPIURL is the DeepSearch news search endpoint
const DefaultAPIURL = "https://api.deepsearch.com/v1/news/search"

// Config holds the settings for the DeepSearch client
type Config struct {
	BaseURL string
	APIKey  string // optional; mock articles are served when empty
	Timeout time.Duration
}

// Client searches DeepSearch news, falling back to generated articles
// when no API key is configured
type Client struct {
	config     Config
	httpClient *http.Client
	generator  *Generator
}

// NewClient creates a new DeepSearch client. A nil generator uses NewGenerator(nil, nil).
func NewClient(cfg Config, generator *Generator) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultAPIURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	if generator == nil {
		generator = NewGenerator(nil, nil)
	}
	return &Client{
		config:    cfg,
		generator: generator,
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

// searchRequest is the DeepSearch request payload
type searchRequest struct {
	Query                  string `json:"query"`
	Limit                  int    `json:"limit"`
	DaysBack               int    `json:"days_back"`
	IncludeCompanyMentions bool   `json:"include_company_mentions"`
	IncludeSentiment       bool   `json:"include_sentiment"`
}

type searchResponse struct {
	Articles []searchArticle `json:"articles"`
}

type searchArticle struct {
	Title           string   `json:"title"`
	URL             string   `json:"url"`
	Description     string   `json:"description"`
	PublishedAt     string   `json:"published_at"`
	CompanyMentions []string `json:"company_mentions"`
	Sentiment       string   `json:"sentiment"`
}

// Name returns the provider identifier
func (c *Client) Name() string {
	return news.ProviderDeepSearch
}

// Search fetches news about q.CompanyName from the last q.DaysBack days.
// Without an API key it returns generated articles instead of failing.
func (c *Client) Search(ctx context.Context, q news.Query) (*news.Result, error) {
	var items []news.Article

	if c.config.APIKey == "" {
		log.Printf("DeepSearch API key not configured, returning mock data for %q", q.CompanyName)
		items = c.generator.Generate(q)
	} else {
		fetched, err := c.fetch(ctx, q)
		if err != nil {
			return nil, err
		}
		items = fetched
	}

	return &news.Result{
		Company: q.CompanyName,
		Total:   len(items),
		Items:   items,
	}, nil
}

func (c *Client) fetch(ctx context.Context, q news.Query) ([]news.Article, error) {
	payload := searchRequest{
		Query:                  q.CompanyName,
		Limit:                  q.Limit,
		DaysBack:               q.DaysBack,
		IncludeCompanyMentions: true,
		IncludeSentiment:       true,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, &news.InternalError{Provider: c.Name(), Err: fmt.Errorf("marshaling request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL, bytes.NewReader(body))
	if err != nil {
		return nil, &news.InternalError{Provider: c.Name(), Err: fmt.Errorf("creating request: %w", err)}
	}

	req.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Printf("DeepSearch search failed for %q: %v", q.CompanyName, err)
		return nil, &news.UpstreamError{Provider: c.Name(), Message: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		log.Printf("DeepSearch search for %q returned status %d", q.CompanyName, resp.StatusCode)
		return nil, &news.UpstreamError{Provider: c.Name(), StatusCode: resp.StatusCode, Message: string(bodyBytes)}
	}

	var raw searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, &news.InternalError{Provider: c.Name(), Err: fmt.Errorf("decoding response: %w", err)}
	}

	items := make([]news.Article, 0, len(raw.Articles))
	for _, article := range raw.Articles {
		mentions := article.CompanyMentions
		if mentions == nil {
			mentions = []string{}
		}
		items = append(items, news.Article{
			Title:           article.Title,
			URL:             article.URL,
			Description:     article.Description,
			PublishedAt:     article.PublishedAt,
			Source:          news.SourceDeepSearch,
			CompanyMentions: mentions,
			Sentiment:       article.Sentiment,
		})
	}

	return items, nil
}
