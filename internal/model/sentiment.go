package model

// Sentiment labels.
const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
)

// Market impact labels.
const (
	ImpactBullish = "bullish"
	ImpactBearish = "bearish"
	ImpactNeutral = "neutral"
)

// Timeframes.
const (
	TimeframeShort  = "short-term"
	TimeframeMedium = "medium-term"
	TimeframeLong   = "long-term"
)

// SentimentResult is the classification of a piece of text.
// Every field always carries a value from its domain.
type SentimentResult struct {
	Sentiment    string   `json:"sentiment"`
	Confidence   float64  `json:"confidence"`
	Reasoning    string   `json:"reasoning"`
	Keywords     []string `json:"keywords"`
	MarketImpact string   `json:"marketImpact"`
	Timeframe    string   `json:"timeframe"`
}

// BatchResult is one entry of a batch analysis response.
type BatchResult struct {
	Index int `json:"index"`
	SentimentResult
	Cached bool   `json:"cached"`
	Error  string `json:"error,omitempty"`
}

// FailedBatchResult is the entry reported for an item whose analysis failed.
func FailedBatchResult(index int) BatchResult {
	return BatchResult{
		Index: index,
		SentimentResult: SentimentResult{
			Sentiment:    SentimentNeutral,
			Confidence:   0,
			Reasoning:    "Failed to analyze",
			Keywords:     []string{},
			MarketImpact: ImpactNeutral,
			Timeframe:    TimeframeShort,
		},
		Error: "Analysis failed",
	}
}
