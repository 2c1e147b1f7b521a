package deepsearch

import (
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"github.com/pep299/company-news-api/internal/news"
)

var fixedNow = time.Date(2025, 10, 15, 12, 0, 0, 0, time.UTC)

func newTestGenerator(seed uint64) *Generator {
	return NewGenerator(rand.NewPCG(seed, seed+1), func() time.Time { return fixedNow })
}

func TestGenerateCount(t *testing.T) {
	tests := []struct {
		limit    int
		expected int
	}{
		{1, 1},
		{3, 3},
		{5, 5},
		{10, 5},
		{100, 5},
	}

	gen := newTestGenerator(1)
	for _, test := range tests {
		q, err := news.NewDeepSearchQuery("Acme", test.limit, 30)
		if err != nil {
			t.Fatalf("Failed to build query: %v", err)
		}

		items := gen.Generate(q)
		if len(items) != test.expected {
			t.Errorf("For limit %d, expected %d items, got %d", test.limit, test.expected, len(items))
		}
	}
}

func TestGenerateItems(t *testing.T) {
	q, _ := news.NewDeepSearchQuery("Acme", 3, 14)
	items := newTestGenerator(42).Generate(q)

	if len(items) != 3 {
		t.Fatalf("Expected 3 items, got %d", len(items))
	}

	oldest := fixedNow.AddDate(0, 0, -14)
	for i, item := range items {
		if !news.IsSynthetic(item.Source) {
			t.Errorf("Item %d: expected synthetic source, got '%s'", i, item.Source)
		}

		if !strings.Contains(item.Title, "Acme") || !strings.Contains(item.Description, "Acme") {
			t.Errorf("Item %d: expected company name in title and description", i)
		}

		expectedURL := "https://mock-news.com/Acme/news-" + string(rune('1'+i))
		if item.URL != expectedURL {
			t.Errorf("Item %d: expected URL '%s', got '%s'", i, expectedURL, item.URL)
		}

		if len(item.CompanyMentions) != 2 || item.CompanyMentions[0] != "Acme" || item.CompanyMentions[1] != "Ac" {
			t.Errorf("Item %d: expected mentions [Acme Ac], got %v", i, item.CompanyMentions)
		}

		if item.Sentiment == "" {
			t.Errorf("Item %d: expected a sentiment tag", i)
		}

		published, err := time.Parse(mockTimeFormat, item.PublishedAt)
		if err != nil {
			t.Fatalf("Item %d: unparseable published_at '%s': %v", i, item.PublishedAt, err)
		}
		if published.Before(oldest) || published.After(fixedNow) {
			t.Errorf("Item %d: published_at %s outside [%s, %s]", i, published, oldest, fixedNow)
		}
		if published.Hour() != fixedNow.Hour() || published.Minute() != fixedNow.Minute() {
			t.Errorf("Item %d: expected a whole-day offset from now, got %s", i, published)
		}
	}
}

func TestGenerateDayOffsetsCoverRange(t *testing.T) {
	q, _ := news.NewDeepSearchQuery("Acme", 5, 1)
	gen := newTestGenerator(7)

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		for _, item := range gen.Generate(q) {
			seen[item.PublishedAt] = true
		}
	}

	today := fixedNow.Format(mockTimeFormat)
	yesterday := fixedNow.AddDate(0, 0, -1).Format(mockTimeFormat)
	if len(seen) != 2 || !seen[today] || !seen[yesterday] {
		t.Errorf("Expected offsets of exactly 0 and 1 day, got %v", seen)
	}
}

func TestGenerateDeterministicWithSeed(t *testing.T) {
	q, _ := news.NewDeepSearchQuery("Acme", 5, 365)

	first := newTestGenerator(99).Generate(q)
	second := newTestGenerator(99).Generate(q)

	for i := range first {
		if first[i].PublishedAt != second[i].PublishedAt {
			t.Errorf("Item %d: expected same timestamps for same seed, got '%s' and '%s'", i, first[i].PublishedAt, second[i].PublishedAt)
		}
	}
}

func TestGenerateMultibyteCompany(t *testing.T) {
	q, _ := news.NewDeepSearchQuery("삼성전자", 1, 30)
	items := newTestGenerator(3).Generate(q)

	if items[0].CompanyMentions[1] != "삼성" {
		t.Errorf("Expected first two characters '삼성', got '%s'", items[0].CompanyMentions[1])
	}
	if items[0].Title != "삼성전자, 새로운 기술 혁신 발표" {
		t.Errorf("Unexpected title '%s'", items[0].Title)
	}
}

func TestFirstRunes(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Acme", "Ac"},
		{"A", "A"},
		{"", ""},
		{"LG전자", "LG"},
	}

	for _, test := range tests {
		if result := firstRunes(test.input, 2); result != test.expected {
			t.Errorf("For input '%s', expected '%s', got '%s'", test.input, test.expected, result)
		}
	}
}
