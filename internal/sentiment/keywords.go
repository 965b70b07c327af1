package sentiment

import (
	"fmt"
	"math"
	"strings"

	"StockPulse/internal/model"
)

var positiveWords = []string{
	"good", "great", "excellent", "positive", "growth", "profit", "gain", "rise", "up",
	"increase", "strong", "bullish", "optimistic", "success", "outperform", "beat",
	"exceed", "revenue", "earnings", "dividend", "buy", "upgrade", "target",
}

var negativeWords = []string{
	"bad", "poor", "negative", "loss", "decline", "fall", "down", "decrease", "weak",
	"bearish", "pessimistic", "failure", "underperform", "miss", "below", "cut",
	"downgrade", "sell", "concern", "risk", "warning", "debt", "bankruptcy",
}

const maxFallbackKeywords = 5

// Classify scores text by counting keyword occurrences. Matching is
// case-insensitive and substring based, so "upgrade" also counts "up".
// Each keyword's occurrences are counted without overlap, as strings.Count does.
func Classify(text string) model.SentimentResult {
	lower := strings.ToLower(text)
	found := make([]string, 0, maxFallbackKeywords)

	count := func(words []string) int {
		total := 0
		for _, w := range words {
			if n := strings.Count(lower, w); n > 0 {
				total += n
				if len(found) < maxFallbackKeywords {
					found = append(found, w)
				}
			}
		}
		return total
	}
	pos := count(positiveWords)
	neg := count(negativeWords)

	r := model.SentimentResult{
		Reasoning: fmt.Sprintf("Fallback analysis based on keyword count: %d positive, %d negative", pos, neg),
		Keywords:  found,
		Timeframe: model.TimeframeShort,
	}
	switch {
	case pos > neg:
		r.Sentiment = model.SentimentPositive
		r.MarketImpact = model.ImpactBullish
		r.Confidence = scoreConfidence(pos - neg)
	case neg > pos:
		r.Sentiment = model.SentimentNegative
		r.MarketImpact = model.ImpactBearish
		r.Confidence = scoreConfidence(neg - pos)
	default:
		r.Sentiment = model.SentimentNeutral
		r.MarketImpact = model.ImpactNeutral
		r.Confidence = 0.3
	}
	return r
}

// scoreConfidence is min(0.8, 0.5 + 0.1*margin), rounded to avoid float noise.
func scoreConfidence(margin int) float64 {
	c := math.Min(0.8, 0.5+0.1*float64(margin))
	return math.Round(c*100) / 100
}
