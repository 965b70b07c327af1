package sentiment

import (
	"context"
	"fmt"
	"log"
	"sync"

	"StockPulse/internal/model"
)

// MaxBatchSize is the largest batch accepted by the route layer.
const MaxBatchSize = 10

// batchWorkers bounds concurrent model calls within one batch.
const batchWorkers = 4

// Item is one text submitted for batch analysis.
type Item struct {
	Text   string `json:"text"`
	Symbol string `json:"symbol,omitempty"`
}

// ItemFunc analyzes a single item and reports whether the result was cached.
type ItemFunc func(ctx context.Context, item Item) (model.SentimentResult, bool, error)

// RunBatch fans items out to fn and collects results in input order. A
// failing item, whether by error or panic, yields a failed entry without
// affecting the others.
func RunBatch(ctx context.Context, items []Item, fn ItemFunc) []model.BatchResult {
	results := make([]model.BatchResult, len(items))
	sem := make(chan struct{}, batchWorkers)
	var wg sync.WaitGroup

	for i, item := range items {
		wg.Add(1)
		go func(i int, item Item) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			results[i] = runItem(ctx, i, item, fn)
		}(i, item)
	}
	wg.Wait()
	return results
}

func runItem(ctx context.Context, index int, item Item, fn ItemFunc) (out model.BatchResult) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[ERROR] sentiment analysis failed for article %d: panic: %v", index, r)
			out = model.FailedBatchResult(index)
		}
	}()
	res, cached, err := fn(ctx, item)
	if err != nil {
		log.Printf("[ERROR] sentiment analysis failed for article %d: %v", index, err)
		return model.FailedBatchResult(index)
	}
	return model.BatchResult{Index: index, SentimentResult: res, Cached: cached}
}

// Successful counts entries without an error.
func Successful(results []model.BatchResult) int {
	n := 0
	for _, r := range results {
		if r.Error == "" {
			n++
		}
	}
	return n
}

// AnalyzeBatch runs Analyze over items without any caching.
func (a *Analyzer) AnalyzeBatch(ctx context.Context, items []Item) ([]model.BatchResult, error) {
	if len(items) > MaxBatchSize {
		return nil, fmt.Errorf("batch of %d exceeds limit of %d", len(items), MaxBatchSize)
	}
	return RunBatch(ctx, items, func(ctx context.Context, it Item) (model.SentimentResult, bool, error) {
		return a.Analyze(ctx, it.Text, it.Symbol), false, nil
	}), nil
}
