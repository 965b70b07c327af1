package server

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"

	"StockPulse/internal/cache"
	"StockPulse/internal/chart"
	"StockPulse/internal/market"
	"StockPulse/internal/model"
)

// mockNote is attached to responses that contain generated data.
const mockNote = "Displaying mock data due to API limitations"

const sourceMixed = "mixed"

type stockResponse struct {
	Symbol    string                `json:"symbol"`
	Price     float64               `json:"price"`
	Quote     model.Quote           `json:"quote"`
	Overview  model.CompanyOverview `json:"overview"`
	ChartData []model.ChartPoint    `json:"chartData"`
	Source    string                `json:"source"`
	Note      string                `json:"note,omitempty"`
	Cached    bool                  `json:"cached"`
	Timestamp string                `json:"timestamp"`
}

type chartResponse struct {
	Symbol    string             `json:"symbol"`
	Interval  string             `json:"interval"`
	Data      []model.ChartPoint `json:"data"`
	Source    string             `json:"source"`
	Note      string             `json:"note,omitempty"`
	Cached    bool               `json:"cached"`
	Timestamp string             `json:"timestamp"`
}

type moversResponse struct {
	model.MarketMovers
	Source    string `json:"source"`
	Note      string `json:"note,omitempty"`
	Cached    bool   `json:"cached"`
	Timestamp string `json:"timestamp"`
}

// symbolParam validates and normalizes :symbol, answering 400 when invalid.
func symbolParam(c *gin.Context) (string, bool) {
	symbol := c.Param("symbol")
	if !validSymbol(symbol) {
		badRequest(c, "Invalid stock symbol",
			fmt.Sprintf("Symbol must be 1-%d characters of letters, digits, '.', '-', '^' or '='", maxSymbolLength))
		return "", false
	}
	return strings.ToUpper(symbol), true
}

func intervalParam(c *gin.Context) (string, bool) {
	interval := c.Param("interval")
	if !market.ValidInterval(interval) {
		badRequest(c, "Invalid interval", intervalMessage)
		return "", false
	}
	return interval, true
}

func (s *Server) stock(c *gin.Context) {
	symbol, ok := symbolParam(c)
	if !ok {
		return
	}
	key := "stock_" + symbol

	var resp stockResponse
	if cache.GetJSON(s.deps.Cache, key, &resp) {
		resp.Cached = true
		resp.Timestamp = s.timestamp()
		c.JSON(http.StatusOK, resp)
		return
	}

	ctx := c.Request.Context()
	var (
		wg       sync.WaitGroup
		quote    market.Result[model.Quote]
		overview market.Result[model.CompanyOverview]
		intraday market.Result[[]model.ChartPoint]
	)
	wg.Add(3)
	go func() { defer wg.Done(); quote = s.deps.Market.Quote(ctx, symbol) }()
	go func() { defer wg.Done(); overview = s.deps.Market.Overview(ctx, symbol) }()
	go func() { defer wg.Done(); intraday = s.deps.Market.Intraday(ctx, symbol, market.DefaultInterval) }()
	wg.Wait()

	resp = stockResponse{
		Symbol:    symbol,
		Price:     quote.Value.Price,
		Quote:     quote.Value,
		Overview:  overview.Value,
		ChartData: intraday.Value,
		Source:    combineSources(quote.Source, overview.Source, intraday.Source),
		Note:      note(quote.Fallback || overview.Fallback || intraday.Fallback),
		Timestamp: s.timestamp(),
	}
	cache.SetJSON(s.deps.Cache, key, resp, s.cfg.Cache.StockTTL)
	c.JSON(http.StatusOK, resp)
}

func (s *Server) chart(c *gin.Context) {
	symbol, ok := symbolParam(c)
	if !ok {
		return
	}
	interval, ok := intervalParam(c)
	if !ok {
		return
	}
	resp := s.chartData(c, symbol, interval)
	c.JSON(http.StatusOK, resp)
}

// chartData serves an intraday series from cache or the market client.
func (s *Server) chartData(c *gin.Context, symbol, interval string) chartResponse {
	key := fmt.Sprintf("chart_%s_%s", symbol, interval)

	var resp chartResponse
	if cache.GetJSON(s.deps.Cache, key, &resp) {
		resp.Cached = true
		resp.Timestamp = s.timestamp()
		return resp
	}
	res := s.deps.Market.Intraday(c.Request.Context(), symbol, interval)
	resp = chartResponse{
		Symbol:    symbol,
		Interval:  interval,
		Data:      res.Value,
		Source:    res.Source,
		Note:      note(res.Fallback),
		Timestamp: s.timestamp(),
	}
	cache.SetJSON(s.deps.Cache, key, resp, s.cfg.Cache.ChartTTL)
	return resp
}

func (s *Server) chartImage(c *gin.Context) {
	symbol, ok := symbolParam(c)
	if !ok {
		return
	}
	interval, ok := intervalParam(c)
	if !ok {
		return
	}

	key := fmt.Sprintf("chartimg_%s_%s", symbol, interval)
	if img, ok := s.deps.Cache.Get(key); ok {
		c.Data(http.StatusOK, "image/png", img)
		return
	}
	data := s.chartData(c, symbol, interval)
	img, err := chart.RenderLine(symbol, interval, data.Data)
	if err != nil {
		log.Printf("[ERROR] render chart %s %s: %v", symbol, interval, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal server error",
			"message": "Failed to render chart",
		})
		return
	}
	s.deps.Cache.Set(key, img, s.cfg.Cache.ChartTTL)
	c.Data(http.StatusOK, "image/png", img)
}

func (s *Server) movers(c *gin.Context) {
	const key = "market_movers"

	var resp moversResponse
	if cache.GetJSON(s.deps.Cache, key, &resp) {
		resp.Cached = true
		resp.Timestamp = s.timestamp()
		c.JSON(http.StatusOK, resp)
		return
	}
	res := s.deps.Market.Movers(c.Request.Context())
	resp = moversResponse{
		MarketMovers: res.Value,
		Source:       res.Source,
		Note:         note(res.Fallback),
		Timestamp:    s.timestamp(),
	}
	cache.SetJSON(s.deps.Cache, key, resp, s.cfg.Cache.MoversTTL)
	c.JSON(http.StatusOK, resp)
}

func note(fallback bool) string {
	if fallback {
		return mockNote
	}
	return ""
}

func combineSources(sources ...string) string {
	for _, src := range sources[1:] {
		if src != sources[0] {
			return sourceMixed
		}
	}
	return sources[0]
}
