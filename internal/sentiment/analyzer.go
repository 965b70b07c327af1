package sentiment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"strconv"
	"strings"
	"time"

	"StockPulse/internal/model"
	"StockPulse/internal/textgen"
)

const maxModelKeywords = 7

// DefaultTimeout bounds a single model call.
const DefaultTimeout = 30 * time.Second

var errNoJSON = errors.New("no JSON found in response")

// Analyzer classifies text with a text model and falls back to Classify
// whenever the model fails or answers with something unusable.
type Analyzer struct {
	gen     textgen.Generator
	timeout time.Duration
}

// NewAnalyzer creates an Analyzer. A nil gen behaves as an unavailable model.
func NewAnalyzer(gen textgen.Generator, timeout time.Duration) *Analyzer {
	if gen == nil {
		gen = textgen.Unavailable{}
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Analyzer{gen: gen, timeout: timeout}
}

// Model returns the name of the underlying generator.
func (a *Analyzer) Model() string { return a.gen.Name() }

// Analyze classifies text, optionally in the context of a ticker symbol.
func (a *Analyzer) Analyze(ctx context.Context, text, symbol string) model.SentimentResult {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	resp, err := a.gen.Generate(ctx, buildPrompt(text, symbol))
	if err != nil {
		if !errors.Is(err, textgen.ErrUnavailable) {
			log.Printf("[WARN] sentiment model %s failed, using keyword fallback: %v", a.gen.Name(), err)
		}
		return Classify(text)
	}
	r, err := ParseResponse(resp)
	if err != nil {
		log.Printf("[WARN] sentiment response unusable, using keyword fallback: %v", err)
		return Classify(text)
	}
	return r
}

// Ping reports whether the model answers a trivial prompt.
func (a *Analyzer) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()
	_, err := a.gen.Generate(ctx, "Test message")
	return err
}

func buildPrompt(text, symbol string) string {
	symbolContext := ""
	if symbol != "" {
		symbolContext = "related to stock symbol " + strings.ToUpper(symbol)
	}
	return fmt.Sprintf(`You are a financial sentiment analysis expert. Analyze the following text %s and provide a JSON response with the following structure:

{
  "sentiment": "positive|negative|neutral",
  "confidence": 0.0-1.0,
  "reasoning": "brief explanation of the sentiment",
  "keywords": ["key", "words", "that", "influenced", "sentiment"],
  "marketImpact": "bullish|bearish|neutral",
  "timeframe": "short-term|medium-term|long-term"
}

Guidelines:
- keywords: 3-7 key words that influenced the sentiment
- timeframe: short-term is days, medium-term is weeks, long-term is months

Text to analyze:
%s

Respond only with valid JSON, no additional text.
`, symbolContext, strconv.Quote(text))
}

type rawResult struct {
	Sentiment    interface{}   `json:"sentiment"`
	Confidence   interface{}   `json:"confidence"`
	Reasoning    interface{}   `json:"reasoning"`
	Keywords     []interface{} `json:"keywords"`
	MarketImpact interface{}   `json:"marketImpact"`
	Timeframe    interface{}   `json:"timeframe"`
}

// ParseResponse extracts and validates the JSON block in a model answer.
// Out-of-domain fields are replaced with safe defaults.
func ParseResponse(resp string) (model.SentimentResult, error) {
	block, ok := textgen.ExtractJSON(resp)
	if !ok {
		return model.SentimentResult{}, errNoJSON
	}
	var raw rawResult
	if err := json.Unmarshal([]byte(block), &raw); err != nil {
		return model.SentimentResult{}, fmt.Errorf("decode sentiment JSON: %w", err)
	}

	reasoning, _ := raw.Reasoning.(string)
	if strings.TrimSpace(reasoning) == "" {
		reasoning = "No reasoning provided"
	}
	keywords := make([]string, 0, maxModelKeywords)
	for _, k := range raw.Keywords {
		if len(keywords) == maxModelKeywords {
			break
		}
		if s, ok := k.(string); ok && s != "" {
			keywords = append(keywords, s)
		}
	}

	return model.SentimentResult{
		Sentiment:    oneOf(raw.Sentiment, model.SentimentNeutral, model.SentimentPositive, model.SentimentNegative, model.SentimentNeutral),
		Confidence:   validConfidence(raw.Confidence),
		Reasoning:    reasoning,
		Keywords:     keywords,
		MarketImpact: oneOf(raw.MarketImpact, model.ImpactNeutral, model.ImpactBullish, model.ImpactBearish, model.ImpactNeutral),
		Timeframe:    oneOf(raw.Timeframe, model.TimeframeShort, model.TimeframeShort, model.TimeframeMedium, model.TimeframeLong),
	}, nil
}

func oneOf(v interface{}, def string, allowed ...string) string {
	s, ok := v.(string)
	if !ok {
		return def
	}
	for _, a := range allowed {
		if s == a {
			return s
		}
	}
	return def
}

// validConfidence clamps to [0,1]; anything non-numeric becomes 0.5.
func validConfidence(v interface{}) float64 {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0.5
		}
		f = parsed
	default:
		return 0.5
	}
	if math.IsNaN(f) {
		return 0.5
	}
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
