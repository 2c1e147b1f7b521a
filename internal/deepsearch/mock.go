package deepsearch

import (
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/pep299/company-news-api/internal/news"
)

// mockTimeFormat matches the UTC timestamps DeepSearch returns
const mockTimeFormat = "2006-01-02T15:04:05Z"

type mockTemplate struct {
	title       string // %[1]s is the company name
	description string
	sentiment   string
}

var mockTemplates = []mockTemplate{
	{
		title:       "%[1]s, 새로운 기술 혁신 발표",
		description: "%[1]s이 혁신적인 기술을 발표하여 업계의 주목을 받고 있습니다. 이번 발표는 회사의 미래 전략에 중요한 의미를 가집니다.",
		sentiment:   "positive",
	},
	{
		title:       "%[1]s 실적 전망 긍정적",
		description: "분석가들은 %[1]s의 실적 전망을 긍정적으로 평가하고 있습니다. 시장에서의 경쟁력이 지속적으로 향상되고 있다고 분석됩니다.",
		sentiment:   "positive",
	},
	{
		title:       "%[1]s, 글로벌 시장 진출 확대",
		description: "%[1]s이 글로벌 시장 진출을 확대하고 있습니다. 해외 시장에서의 성과가 기대되고 있습니다.",
		sentiment:   "neutral",
	},
	{
		title:       "%[1]s 신제품 출시 예정",
		description: "%[1]s이 곧 새로운 제품을 출시할 예정입니다. 소비자들의 관심이 집중되고 있습니다.",
		sentiment:   "positive",
	},
	{
		title:       "%[1]s, 지속가능 경영 강화",
		description: "%[1]s이 지속가능 경영을 강화하고 있습니다. ESG 경영에 대한 투자가 확대되고 있습니다.",
		sentiment:   "neutral",
	},
}

// Generator produces placeholder articles when no DeepSearch key is configured.
// It is safe for concurrent use.
type Generator struct {
	mu  sync.Mutex
	rng *rand.Rand
	now func() time.Time
}

// NewGenerator creates a mock article generator. A nil src uses a time-seeded
// source and a nil now uses time.Now.
func NewGenerator(src rand.Source, now func() time.Time) *Generator {
	if src == nil {
		seed := uint64(time.Now().UnixNano())
		src = rand.NewPCG(seed, seed>>1)
	}
	if now == nil {
		now = time.Now
	}
	return &Generator{rng: rand.New(src), now: now}
}

// Generate returns min(q.Limit, 5) articles about q.CompanyName published
// within the last q.DaysBack days
func (g *Generator) Generate(q news.Query) []news.Article {
	count := min(q.Limit, len(mockTemplates))
	if count < 0 {
		count = 0
	}

	now := g.now().UTC()
	mentions := []string{q.CompanyName, firstRunes(q.CompanyName, 2)}

	items := make([]news.Article, 0, count)
	for i := 0; i < count; i++ {
		template := mockTemplates[i]
		daysAgo := g.daysAgo(q.DaysBack)

		items = append(items, news.Article{
			Title:           fmt.Sprintf(template.title, q.CompanyName),
			URL:             fmt.Sprintf("https://mock-news.com/%s/news-%d", q.CompanyName, i+1),
			Description:     fmt.Sprintf(template.description, q.CompanyName),
			PublishedAt:     now.AddDate(0, 0, -daysAgo).Format(mockTimeFormat),
			Source:          news.SourceDeepSearchMock,
			CompanyMentions: append([]string(nil), mentions...),
			Sentiment:       template.sentiment,
		})
	}
	return items
}

// daysAgo draws a uniform day offset in [0, maxDays]
func (g *Generator) daysAgo(maxDays int) int {
	if maxDays <= 0 {
		return 0
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rng.IntN(maxDays + 1)
}

func firstRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
