package sentiment

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"

	"StockPulse/internal/model"
	"StockPulse/internal/textgen"
)

type fakeGen struct {
	resp  string
	err   error
	calls atomic.Int32
}

func (f *fakeGen) Name() string { return "fake" }

func (f *fakeGen) Generate(_ context.Context, prompt string) (string, error) {
	f.calls.Add(1)
	if strings.Contains(prompt, "PANIC") {
		panic("generator exploded")
	}
	return f.resp, f.err
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		sentiment  string
		impact     string
		confidence float64
	}{
		{"three positives", "Excellent growth and profit", model.SentimentPositive, model.ImpactBullish, 0.8},
		{"one positive", "a good day", model.SentimentPositive, model.ImpactBullish, 0.6},
		{"two negatives", "debt and weak sales", model.SentimentNegative, model.ImpactBearish, 0.7},
		{"many negatives capped", "bad poor weak loss debt risk", model.SentimentNegative, model.ImpactBearish, 0.8},
		{"empty", "", model.SentimentNeutral, model.ImpactNeutral, 0.3},
		{"no keywords", "the company held a meeting", model.SentimentNeutral, model.ImpactNeutral, 0.3},
		{"tie", "good but bad", model.SentimentNeutral, model.ImpactNeutral, 0.3},
		{"case insensitive", "GREAT results", model.SentimentPositive, model.ImpactBullish, 0.6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Classify(tt.text)
			if r.Sentiment != tt.sentiment || r.MarketImpact != tt.impact {
				t.Errorf("expected %s/%s, got %s/%s (%s)", tt.sentiment, tt.impact, r.Sentiment, r.MarketImpact, r.Reasoning)
			}
			if r.Confidence != tt.confidence {
				t.Errorf("expected confidence %.2f, got %.2f", tt.confidence, r.Confidence)
			}
			if r.Timeframe != model.TimeframeShort {
				t.Errorf("expected short-term, got %s", r.Timeframe)
			}
			if r.Keywords == nil || len(r.Keywords) > 5 {
				t.Errorf("expected at most 5 keywords, got %v", r.Keywords)
			}
		})
	}
}

func TestClassify_SubstringCounts(t *testing.T) {
	// "upgrade" matches both "up" and "upgrade".
	r := Classify("analyst upgrade")
	if !strings.Contains(r.Reasoning, "2 positive, 0 negative") {
		t.Errorf("unexpected reasoning: %s", r.Reasoning)
	}
	if len(r.Keywords) != 2 || r.Keywords[0] != "up" || r.Keywords[1] != "upgrade" {
		t.Errorf("unexpected keywords: %v", r.Keywords)
	}
}

func TestClassify_RepeatedKeywordCounts(t *testing.T) {
	r := Classify("gain, gain and another gain")
	if !strings.Contains(r.Reasoning, "3 positive, 0 negative") {
		t.Errorf("expected each occurrence counted once, got %s", r.Reasoning)
	}
	if len(r.Keywords) != 1 || r.Keywords[0] != "gain" {
		t.Errorf("expected keyword listed once, got %v", r.Keywords)
	}
}

func TestClassify_KeywordsCapped(t *testing.T) {
	r := Classify("good great excellent positive growth profit gain")
	if len(r.Keywords) != 5 {
		t.Errorf("expected 5 keywords, got %d", len(r.Keywords))
	}
}

func TestParseResponse(t *testing.T) {
	r, err := ParseResponse("```json\n" + `{"sentiment":"negative","confidence":0.9,"reasoning":"weak guidance",
		"keywords":["a","b","c","d","e","f","g","h"],"marketImpact":"bearish","timeframe":"medium-term"}` + "\n```")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Sentiment != "negative" || r.MarketImpact != "bearish" || r.Timeframe != "medium-term" {
		t.Errorf("unexpected labels: %+v", r)
	}
	if r.Confidence != 0.9 || r.Reasoning != "weak guidance" {
		t.Errorf("unexpected confidence/reasoning: %+v", r)
	}
	if len(r.Keywords) != 7 {
		t.Errorf("expected keywords capped at 7, got %d", len(r.Keywords))
	}
}

func TestParseResponse_Validation(t *testing.T) {
	tests := []struct {
		name string
		body string
		want model.SentimentResult
	}{
		{
			"invalid enums",
			`{"sentiment":"ecstatic","confidence":0.4,"marketImpact":"sideways","timeframe":"forever"}`,
			model.SentimentResult{Sentiment: "neutral", Confidence: 0.4, MarketImpact: "neutral", Timeframe: "short-term"},
		},
		{
			"confidence above range",
			`{"sentiment":"positive","confidence":7}`,
			model.SentimentResult{Sentiment: "positive", Confidence: 1, MarketImpact: "neutral", Timeframe: "short-term"},
		},
		{
			"confidence below range",
			`{"sentiment":"positive","confidence":-2}`,
			model.SentimentResult{Sentiment: "positive", Confidence: 0, MarketImpact: "neutral", Timeframe: "short-term"},
		},
		{
			"confidence string",
			`{"confidence":"0.25"}`,
			model.SentimentResult{Sentiment: "neutral", Confidence: 0.25, MarketImpact: "neutral", Timeframe: "short-term"},
		},
		{
			"confidence garbage",
			`{"confidence":"high"}`,
			model.SentimentResult{Sentiment: "neutral", Confidence: 0.5, MarketImpact: "neutral", Timeframe: "short-term"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := ParseResponse(tt.body)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if r.Sentiment != tt.want.Sentiment || r.Confidence != tt.want.Confidence ||
				r.MarketImpact != tt.want.MarketImpact || r.Timeframe != tt.want.Timeframe {
				t.Errorf("expected %+v, got %+v", tt.want, r)
			}
			if r.Reasoning != "No reasoning provided" {
				t.Errorf("expected default reasoning, got %q", r.Reasoning)
			}
			if r.Keywords == nil {
				t.Error("expected non-nil keywords")
			}
		})
	}
}

func TestParseResponse_Errors(t *testing.T) {
	if _, err := ParseResponse("I think it's positive."); !errors.Is(err, errNoJSON) {
		t.Errorf("expected errNoJSON, got %v", err)
	}
	if _, err := ParseResponse("{not: valid}"); err == nil {
		t.Error("expected decode error")
	}
}

func TestAnalyze_ModelResult(t *testing.T) {
	gen := &fakeGen{resp: `{"sentiment":"negative","confidence":0.7,"reasoning":"r","keywords":["x"],"marketImpact":"bearish","timeframe":"long-term"}`}
	a := NewAnalyzer(gen, 0)
	r := a.Analyze(context.Background(), "Company reports strong profit growth", "aapl")
	if r.Sentiment != "negative" || r.Timeframe != "long-term" {
		t.Errorf("expected model result to win, got %+v", r)
	}
}

func TestAnalyze_FallbackOnUnavailable(t *testing.T) {
	a := NewAnalyzer(nil, 0)
	r := a.Analyze(context.Background(), "Company reports strong profit growth and beats earnings expectations", "")
	if r.Sentiment != "positive" || r.MarketImpact != "bullish" {
		t.Errorf("expected positive/bullish, got %s/%s", r.Sentiment, r.MarketImpact)
	}
	if !strings.HasPrefix(r.Reasoning, "Fallback analysis") {
		t.Errorf("expected fallback reasoning, got %q", r.Reasoning)
	}
}

func TestAnalyze_FallbackOnErrorAndGarbage(t *testing.T) {
	for _, gen := range []*fakeGen{
		{err: errors.New("quota exceeded")},
		{resp: "Sorry, I cannot help with that."},
	} {
		a := NewAnalyzer(gen, 0)
		r := a.Analyze(context.Background(), "shares fall on weak outlook", "")
		if r.Sentiment != "negative" || r.MarketImpact != "bearish" {
			t.Errorf("expected keyword fallback on input text, got %+v", r)
		}
	}
}

func TestPing(t *testing.T) {
	if err := NewAnalyzer(&fakeGen{resp: "ok"}, 0).Ping(context.Background()); err != nil {
		t.Errorf("expected healthy ping, got %v", err)
	}
	if err := NewAnalyzer(nil, 0).Ping(context.Background()); !errors.Is(err, textgen.ErrUnavailable) {
		t.Errorf("expected ErrUnavailable, got %v", err)
	}
}

func TestRunBatch_Isolation(t *testing.T) {
	items := []Item{{Text: "good"}, {Text: "boom"}, {Text: "bad"}, {Text: "panic"}}
	results := RunBatch(context.Background(), items, func(_ context.Context, it Item) (model.SentimentResult, bool, error) {
		switch it.Text {
		case "boom":
			return model.SentimentResult{}, false, errors.New("parse failure")
		case "panic":
			panic("unexpected")
		}
		return Classify(it.Text), it.Text == "bad", nil
	})

	if len(results) != 4 {
		t.Fatalf("expected 4 results, got %d", len(results))
	}
	for i, r := range results {
		if r.Index != i {
			t.Errorf("result %d has index %d", i, r.Index)
		}
	}
	for _, i := range []int{1, 3} {
		r := results[i]
		if r.Error != "Analysis failed" || r.Sentiment != "neutral" || r.Confidence != 0 || r.Reasoning != "Failed to analyze" {
			t.Errorf("expected failed entry at %d, got %+v", i, r)
		}
	}
	if results[0].Sentiment != "positive" || results[0].Error != "" {
		t.Errorf("unexpected first result: %+v", results[0])
	}
	if results[2].Sentiment != "negative" || !results[2].Cached {
		t.Errorf("unexpected third result: %+v", results[2])
	}
	if n := Successful(results); n != 2 {
		t.Errorf("expected 2 successful, got %d", n)
	}
}

func TestAnalyzeBatch_PanickingModel(t *testing.T) {
	gen := &fakeGen{resp: `{"sentiment":"positive","confidence":0.9}`}
	a := NewAnalyzer(gen, 0)
	results, err := a.AnalyzeBatch(context.Background(), []Item{{Text: "one"}, {Text: "PANIC"}, {Text: "three"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if results[1].Error == "" || results[1].Confidence != 0 {
		t.Errorf("expected failed middle entry, got %+v", results[1])
	}
	if results[0].Sentiment != "positive" || results[2].Sentiment != "positive" {
		t.Errorf("expected other entries to succeed: %+v %+v", results[0], results[2])
	}

	if _, err := a.AnalyzeBatch(context.Background(), make([]Item, MaxBatchSize+1)); err == nil {
		t.Error("expected oversized batch to be rejected")
	}
}
