package naver

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/pep299/company-news-api/internal/news"
)

// DefaultAPIURL is the Naver news search endpoint
const DefaultAPIURL = "https://openapi.naver.com/v1/search/news.json"

// Config holds the settings for the Naver client
type Config struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
	Timeout      time.Duration
}

// Client searches Naver news. Both credentials are required; there is no fallback.
type Client struct {
	config     Config
	httpClient *http.Client
}

// NewClient creates a new Naver news client
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultAPIURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	return &Client{
		config: cfg,
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

// searchResponse is the Naver search API body. Pagination fields are
// pointers so that absent values can fall back to their defaults.
type searchResponse struct {
	Total   *int         `json:"total"`
	Start   *int         `json:"start"`
	Display *int         `json:"display"`
	Items   []searchItem `json:"items"`
}

type searchItem struct {
	Title        string `json:"title"`
	OriginalLink string `json:"originallink"`
	Link         string `json:"link"`
	Description  string `json:"description"`
	PubDate      string `json:"pubDate"`
}

// Name returns the provider identifier
func (c *Client) Name() string {
	return news.ProviderNaver
}

// Search fetches the latest news about q.CompanyName, newest first
func (c *Client) Search(ctx context.Context, q news.Query) (*news.Result, error) {
	if err := c.validateCredentials(); err != nil {
		return nil, err
	}

	body, err := c.fetch(ctx, q)
	if err != nil {
		return nil, err
	}

	var raw searchResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, &news.InternalError{Provider: c.Name(), Err: fmt.Errorf("decoding response: %w", err)}
	}

	items := make([]news.Article, 0, len(raw.Items))
	for _, item := range raw.Items {
		items = append(items, news.Article{
			Title:       news.StripEmphasis(item.Title),
			URL:         item.Link,
			OriginalURL: item.OriginalLink,
			Description: news.StripEmphasis(item.Description),
			PublishedAt: item.PubDate,
			Source:      news.SourceNaver,
		})
	}

	return &news.Result{
		Company: q.CompanyName,
		Total:   intOrDefault(raw.Total, 0),
		Start:   intOrDefault(raw.Start, 1),
		Display: intOrDefault(raw.Display, 10),
		Items:   items,
	}, nil
}

func (c *Client) validateCredentials() error {
	if c.config.ClientID == "" || c.config.ClientSecret == "" {
		return &news.ConfigurationError{
			Provider: c.Name(),
			Message:  "Naver API credentials are not configured; set NAVER_CLIENT_ID and NAVER_CLIENT_SECRET",
		}
	}
	return nil
}

// fetch performs the search request and returns the raw body of a 2xx response
func (c *Client) fetch(ctx context.Context, q news.Query) ([]byte, error) {
	params := url.Values{}
	params.Set("query", q.CompanyName)
	params.Set("display", strconv.Itoa(q.Limit))
	params.Set("start", strconv.Itoa(q.Start))
	params.Set("sort", "date")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, &news.InternalError{Provider: c.Name(), Err: fmt.Errorf("creating request: %w", err)}
	}

	req.Header.Set("X-Naver-Client-Id", c.config.ClientID)
	req.Header.Set("X-Naver-Client-Secret", c.config.ClientSecret)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Printf("Naver search failed for %q: %v", q.CompanyName, err)
		return nil, &news.UpstreamError{Provider: c.Name(), Message: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &news.UpstreamError{Provider: c.Name(), StatusCode: resp.StatusCode, Message: "reading response body", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Printf("Naver search for %q returned status %d", q.CompanyName, resp.StatusCode)
		return nil, &news.UpstreamError{Provider: c.Name(), StatusCode: resp.StatusCode, Message: string(body)}
	}

	return body, nil
}

func intOrDefault(value *int, defaultValue int) int {
	if value == nil {
		return defaultValue
	}
	return *value
}
