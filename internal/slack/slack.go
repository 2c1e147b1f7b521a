package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/pep299/company-news-api/internal/news"
)

// maxHeadlines caps the headlines listed per company in a digest
const maxHeadlines = 3

// Client posts watchlist digests to a Slack incoming webhook
type Client struct {
	webhookURL string
	channel    string
	httpClient *http.Client
}

// NewClient creates a new Slack client
func NewClient(webhookURL, channel string) *Client {
	return &Client{
		webhookURL: webhookURL,
		channel:    channel,
		httpClient: &http.Client{
			Timeout:   30 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

// DigestEntry is the outcome of one company's combined fetch
type DigestEntry struct {
	Company string
	Report  *news.CombinedReport
	Err     error
}

// WebhookMessage represents an incoming webhook payload
type WebhookMessage struct {
	Channel   string `json:"channel,omitempty"`
	Text      string `json:"text"`
	Username  string `json:"username,omitempty"`
	IconEmoji string `json:"icon_emoji,omitempty"`
}

// SendDigest posts one message summarizing every watchlist entry
func (c *Client) SendDigest(ctx context.Context, entries []DigestEntry) error {
	if len(entries) == 0 {
		return nil
	}
	return c.sendMessage(ctx, formatDigest(entries, time.Now()))
}

func formatDigest(entries []DigestEntry, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📰 *Company news digest* (%s)\n", now.UTC().Format("2006-01-02 15:04 UTC"))

	for _, entry := range entries {
		b.WriteString("\n")
		if entry.Err != nil {
			fmt.Fprintf(&b, "⚠️ *%s*: fetch failed: %v\n", entry.Company, entry.Err)
			continue
		}

		report := entry.Report
		fmt.Fprintf(&b, "*%s*: %d articles (naver %d, deepsearch %d)\n",
			entry.Company, report.CombinedTotal, report.Naver.Total, report.DeepSearch.Total)

		headlines := append(append([]news.Article{}, report.Naver.Items...), report.DeepSearch.Items...)
		for i, article := range headlines {
			if i == maxHeadlines {
				break
			}
			marker := ""
			if news.IsSynthetic(article.Source) {
				marker = " _(mock)_"
			}
			if article.URL != "" {
				fmt.Fprintf(&b, "• <%s|%s>%s\n", article.URL, article.Title, marker)
			} else {
				fmt.Fprintf(&b, "• %s%s\n", article.Title, marker)
			}
		}
	}

	return b.String()
}

func (c *Client) sendMessage(ctx context.Context, text string) error {
	msg := WebhookMessage{
		Channel:   c.channel,
		Text:      text,
		Username:  "Company News",
		IconEmoji: ":newspaper:",
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshaling message: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("unexpected status code: %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	return nil
}
