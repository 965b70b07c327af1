package news

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"StockPulse/internal/model"
	"StockPulse/internal/textgen"
)

// Source is the attribution on every generated article.
const Source = "StockPulse AI News"

// Limits on the number of articles per request.
const (
	DefaultCount         = 5
	MaxCount             = 10
	DefaultCategoryCount = 3
	MaxCategoryCount     = 5
	BreakingCount        = 3
)

var errNoArticleJSON = errors.New("no JSON found in response")

// Service writes news articles with a text model and substitutes a static
// article per category when the model cannot deliver one.
type Service struct {
	gen     textgen.Generator
	timeout time.Duration
	now     func() time.Time
}

// NewService creates a Service. A nil gen serves only fallback articles.
func NewService(gen textgen.Generator, timeout time.Duration) *Service {
	if gen == nil {
		gen = textgen.Unavailable{}
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Service{gen: gen, timeout: timeout, now: time.Now}
}

// Generate returns count articles for category in a stable order.
func (s *Service) Generate(ctx context.Context, category model.Category, count int) ([]model.Article, error) {
	if !category.Valid() {
		return nil, fmt.Errorf("invalid category %q", category)
	}
	if count <= 0 {
		return []model.Article{}, nil
	}

	articles := make([]model.Article, count)
	var wg sync.WaitGroup
	for i := 0; i < count; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			a, err := s.generateOne(ctx, category)
			if err != nil {
				if !errors.Is(err, textgen.ErrUnavailable) {
					log.Printf("[WARN] generate %s news: %v", category, err)
				}
				a = s.fallback(category)
			}
			articles[i] = a
		}(i)
	}
	wg.Wait()
	return articles, nil
}

type rawArticle struct {
	Headline       string   `json:"headline"`
	Summary        string   `json:"summary"`
	Content        string   `json:"content"`
	Sentiment      string   `json:"sentiment"`
	Impact         string   `json:"impact"`
	RelatedSymbols []string `json:"relatedSymbols"`
}

func (s *Service) generateOne(ctx context.Context, category model.Category) (model.Article, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	resp, err := s.gen.Generate(ctx, buildPrompt(category))
	if err != nil {
		return model.Article{}, err
	}
	block, ok := textgen.ExtractJSON(resp)
	if !ok {
		return model.Article{}, errNoArticleJSON
	}
	var raw rawArticle
	if err := json.Unmarshal([]byte(block), &raw); err != nil {
		return model.Article{}, fmt.Errorf("decode article JSON: %w", err)
	}

	symbols := make([]string, 0, len(raw.RelatedSymbols))
	for _, sym := range raw.RelatedSymbols {
		if sym = strings.ToUpper(strings.TrimSpace(sym)); sym != "" {
			symbols = append(symbols, sym)
		}
	}
	return model.Article{
		ID:             uuid.NewString(),
		Headline:       orDefault(raw.Headline, "Market Update"),
		Summary:        orDefault(raw.Summary, "Market news summary"),
		Content:        orDefault(raw.Content, "Market news content"),
		Category:       category,
		Sentiment:      pick(raw.Sentiment, model.SentimentNeutral, model.SentimentPositive, model.SentimentNegative),
		Timestamp:      s.now().UTC().Format(time.RFC3339),
		Source:         Source,
		Impact:         pick(raw.Impact, model.ArticleImpactMedium, model.ArticleImpactHigh, model.ArticleImpactLow),
		RelatedSymbols: symbols,
	}, nil
}

func (s *Service) fallback(category model.Category) model.Article {
	f := fallbacks[category]
	symbols := make([]string, len(f.Symbols))
	copy(symbols, f.Symbols)
	return model.Article{
		ID:             uuid.NewString(),
		Headline:       f.Headline,
		Summary:        f.Summary,
		Content:        f.Content,
		Category:       category,
		Sentiment:      model.SentimentNeutral,
		Timestamp:      s.now().UTC().Format(time.RFC3339),
		Source:         Source,
		Impact:         model.ArticleImpactMedium,
		RelatedSymbols: symbols,
	}
}

func buildPrompt(category model.Category) string {
	return prompts[category] + `

Please format your response as a JSON object with the following structure:
{
  "headline": "Clear, engaging headline (60-80 characters)",
  "summary": "Brief 2-3 sentence summary",
  "content": "Full article content (200-300 words)",
  "sentiment": "positive|negative|neutral",
  "impact": "high|medium|low",
  "relatedSymbols": ["SYMBOL1", "SYMBOL2"]
}

Requirements:
- Make it realistic and current
- Include specific numbers, percentages, or data points
- Mention relevant companies or economic indicators
- Keep it professional and news-like in tone`
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

// pick returns v when it is one of allowed, else def. def itself is allowed.
func pick(v, def string, allowed ...string) string {
	if v == def {
		return v
	}
	for _, a := range allowed {
		if v == a {
			return v
		}
	}
	return def
}
