package server

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"StockPulse/internal/cache"
	"StockPulse/internal/model"
	"StockPulse/internal/sentiment"
)

type analyzeRequest struct {
	Text   any    `json:"text"`
	Symbol string `json:"symbol"`
}

type batchRequest struct {
	Articles []analyzeRequest `json:"articles"`
}

type analyzeResponse struct {
	model.SentimentResult
	Cached    bool   `json:"cached"`
	Timestamp string `json:"timestamp"`
}

// sentimentKey identifies a text and symbol pair in the cache.
func sentimentKey(text, symbol string) string {
	sum := sha256.Sum256([]byte(strings.ToUpper(symbol) + "\x00" + text))
	return "sentiment_" + hex.EncodeToString(sum[:16])
}

// analyzeCached returns the cached result for text or analyzes and stores it.
func (s *Server) analyzeCached(ctx context.Context, text, symbol string) (model.SentimentResult, bool) {
	key := sentimentKey(text, symbol)
	var res model.SentimentResult
	if cache.GetJSON(s.deps.Cache, key, &res) {
		return res, true
	}
	res = s.deps.Analyzer.Analyze(ctx, text, symbol)
	cache.SetJSON(s.deps.Cache, key, res, s.cfg.Cache.SentimentTTL)
	return res, false
}

func (s *Server) analyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	text, ok := req.Text.(string)
	if !ok || text == "" {
		badRequest(c, "Invalid input", "Text is required and must be a string")
		return
	}
	if textLength(text) > maxTextLength {
		badRequest(c, "Text too long", fmt.Sprintf("Text must be less than %d characters", maxTextLength))
		return
	}

	res, cached := s.analyzeCached(c.Request.Context(), text, req.Symbol)
	c.JSON(http.StatusOK, analyzeResponse{SentimentResult: res, Cached: cached, Timestamp: s.timestamp()})
}

func (s *Server) batch(c *gin.Context) {
	var req batchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	if len(req.Articles) == 0 {
		badRequest(c, "Invalid input", "Articles must be a non-empty array")
		return
	}
	if len(req.Articles) > sentiment.MaxBatchSize {
		badRequest(c, "Too many articles", fmt.Sprintf("Maximum %d articles per batch request", sentiment.MaxBatchSize))
		return
	}

	items := make([]sentiment.Item, len(req.Articles))
	for i, a := range req.Articles {
		text, ok := a.Text.(string)
		if !ok || text == "" {
			badRequest(c, "Invalid article", "Each article must have a text field")
			return
		}
		if textLength(text) > maxBatchTextLength {
			badRequest(c, "Article too long", fmt.Sprintf("Each article text must be less than %d characters", maxBatchTextLength))
			return
		}
		items[i] = sentiment.Item{Text: text, Symbol: a.Symbol}
	}

	results := sentiment.RunBatch(c.Request.Context(), items,
		func(ctx context.Context, it sentiment.Item) (model.SentimentResult, bool, error) {
			res, cached := s.analyzeCached(ctx, it.Text, it.Symbol)
			return res, cached, nil
		})

	c.JSON(http.StatusOK, gin.H{
		"results":    results,
		"total":      len(items),
		"successful": sentiment.Successful(results),
		"timestamp":  s.timestamp(),
	})
}

func (s *Server) sentimentHealth(c *gin.Context) {
	body := gin.H{
		"service":   "sentiment-analysis",
		"model":     s.deps.Analyzer.Model(),
		"timestamp": s.timestamp(),
	}
	if err := s.deps.Analyzer.Ping(c.Request.Context()); err != nil {
		body["status"] = "unhealthy"
		body["model_api"] = "disconnected"
		body["error"] = err.Error()
		c.JSON(http.StatusServiceUnavailable, body)
		return
	}
	body["status"] = "healthy"
	body["model_api"] = "connected"
	c.JSON(http.StatusOK, body)
}
