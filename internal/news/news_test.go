package news

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestStripEmphasis(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"no tags", "Acme reports earnings", "Acme reports earnings"},
		{"single highlight", "<b>Acme</b> reports earnings", "Acme reports earnings"},
		{"multiple highlights", "<b>Acme</b> and <b>Acme</b> Labs", "Acme and Acme Labs"},
		{"nested tokens", "<<b>b>Acme<</b>/b>", "Acme"},
		{"other markup kept", "<i>Acme</i> &amp; co", "<i>Acme</i> &amp; co"},
		{"empty", "", ""},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			once := StripEmphasis(test.input)
			if once != test.expected {
				t.Errorf("Expected '%s', got '%s'", test.expected, once)
			}

			twice := StripEmphasis(once)
			if twice != once {
				t.Errorf("Expected stripping to be idempotent, got '%s' then '%s'", once, twice)
			}

			if strings.Contains(once, "<b>") || strings.Contains(once, "</b>") {
				t.Errorf("Expected no emphasis tags to remain, got '%s'", once)
			}
		})
	}
}

func TestIsSynthetic(t *testing.T) {
	if !IsSynthetic(SourceDeepSearchMock) {
		t.Error("Expected mock label to be synthetic")
	}
	if IsSynthetic(SourceDeepSearch) {
		t.Error("Expected live DeepSearch label to not be synthetic")
	}
	if IsSynthetic(SourceNaver) {
		t.Error("Expected Naver label to not be synthetic")
	}
}

func TestNewCombinedReport(t *testing.T) {
	naver := &Result{Company: "Acme", Total: 7, Items: make([]Article, 2)}
	deepSearch := &Result{Company: "Acme", Total: 2, Items: make([]Article, 2)}

	report := NewCombinedReport("Acme", naver, deepSearch)

	if report.CombinedTotal != 9 {
		t.Errorf("Expected combined total 9, got %d", report.CombinedTotal)
	}
	if report.Naver.Total != 7 || len(report.Naver.Items) != 2 {
		t.Errorf("Unexpected Naver summary: %+v", report.Naver)
	}
	if report.DeepSearch.Total != 2 || len(report.DeepSearch.Items) != 2 {
		t.Errorf("Unexpected DeepSearch summary: %+v", report.DeepSearch)
	}
}

func TestNewNaverQuery(t *testing.T) {
	tests := []struct {
		name       string
		company    string
		display    int
		start      int
		errorField string
	}{
		{"valid", "Acme", 10, 1, ""},
		{"max display", "Acme", 100, 1, ""},
		{"blank company", "  ", 10, 1, "company_name"},
		{"display too small", "Acme", 0, 1, "display"},
		{"display too large", "Acme", 101, 1, "display"},
		{"start too small", "Acme", 10, 0, "start"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			q, err := NewNaverQuery(test.company, test.display, test.start)
			if test.errorField == "" {
				if err != nil {
					t.Fatalf("Unexpected error: %v", err)
				}
				if q.CompanyName != test.company || q.Limit != test.display || q.Start != test.start {
					t.Errorf("Unexpected query: %+v", q)
				}
				if q.DaysBack != 0 {
					t.Errorf("Expected no lookback on a Naver query, got %d", q.DaysBack)
				}
				return
			}

			var validationErr *ValidationError
			if !errors.As(err, &validationErr) {
				t.Fatalf("Expected ValidationError, got %T", err)
			}
			if validationErr.Field != test.errorField {
				t.Errorf("Expected error field '%s', got '%s'", test.errorField, validationErr.Field)
			}
		})
	}
}

func TestNewDeepSearchQuery(t *testing.T) {
	tests := []struct {
		name       string
		limit      int
		daysBack   int
		errorField string
	}{
		{"valid", 10, 30, ""},
		{"bounds", 100, 365, ""},
		{"limit too small", 0, 30, "limit"},
		{"days too small", 10, 0, "days_back"},
		{"days too large", 10, 366, "days_back"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			q, err := NewDeepSearchQuery("Acme", test.limit, test.daysBack)
			if test.errorField == "" {
				if err != nil {
					t.Fatalf("Unexpected error: %v", err)
				}
				if q.Start != 0 {
					t.Errorf("Expected no start offset on a DeepSearch query, got %d", q.Start)
				}
				return
			}

			var validationErr *ValidationError
			if !errors.As(err, &validationErr) || validationErr.Field != test.errorField {
				t.Errorf("Expected ValidationError on '%s', got %v", test.errorField, err)
			}
		})
	}
}

func TestErrorUnwrapping(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	upstream := &UpstreamError{Provider: "naver", Message: cause.Error(), Err: cause}
	agg := &AggregationError{Err: upstream}

	var target *UpstreamError
	if !errors.As(agg, &target) {
		t.Fatal("Expected AggregationError to unwrap to UpstreamError")
	}
	if !errors.Is(agg, cause) {
		t.Error("Expected AggregationError to reach the transport cause")
	}
	if !strings.Contains(agg.Error(), "connection refused") {
		t.Errorf("Expected wrapped message to include cause, got '%s'", agg.Error())
	}

	withStatus := &UpstreamError{Provider: "deepsearch", StatusCode: 503, Message: "unavailable"}
	if !strings.Contains(withStatus.Error(), "503") {
		t.Errorf("Expected status code in message, got '%s'", withStatus.Error())
	}
}

func TestArticleJSONKeys(t *testing.T) {
	tests := []struct {
		name        string
		article     Article
		expectKeys  bool
		expectEmpty bool
	}{
		{"naver", Article{Title: "t", Source: SourceNaver}, false, false},
		{"deepsearch without extras", Article{Title: "t", Source: SourceDeepSearch}, true, true},
		{"deepsearch mock", Article{Title: "t", Source: SourceDeepSearchMock, CompanyMentions: []string{"Acme", "Ac"}, Sentiment: "positive"}, true, false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			data, err := json.Marshal(test.article)
			if err != nil {
				t.Fatalf("Marshal failed: %v", err)
			}

			var fields map[string]json.RawMessage
			if err := json.Unmarshal(data, &fields); err != nil {
				t.Fatalf("Unmarshal failed: %v", err)
			}

			_, hasMentions := fields["company_mentions"]
			_, hasSentiment := fields["sentiment"]
			if hasMentions != test.expectKeys || hasSentiment != test.expectKeys {
				t.Errorf("Expected keys present=%v, got %s", test.expectKeys, data)
			}

			if test.expectEmpty {
				if string(fields["company_mentions"]) != "[]" || string(fields["sentiment"]) != `""` {
					t.Errorf("Expected empty mentions and sentiment, got %s", data)
				}
			}

			if string(fields["source"]) != `"`+test.article.Source+`"` {
				t.Errorf("Expected source %q, got %s", test.article.Source, fields["source"])
			}
		})
	}
}
