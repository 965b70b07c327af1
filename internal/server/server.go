// Package server exposes market data, sentiment analysis and news over HTTP.
package server

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"

	"StockPulse/internal/cache"
	"StockPulse/internal/config"
	"StockPulse/internal/market"
	"StockPulse/internal/news"
	"StockPulse/internal/ratelimit"
	"StockPulse/internal/sentiment"
)

// Version is reported by the health endpoint.
const Version = "1.0.0"

// timestampLayout matches millisecond ISO-8601 timestamps in UTC.
const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Deps are the services the routes are built on.
type Deps struct {
	Market   *market.Client
	Analyzer *sentiment.Analyzer
	News     *news.Service
	Cache    *cache.Cache
}

// Server owns the gin engine and the inbound rate limiter.
type Server struct {
	cfg     *config.Config
	deps    Deps
	engine  *gin.Engine
	limiter *ratelimit.WindowLimiter
	now     func() time.Time
}

// New builds the router for cfg on top of deps.
func New(cfg *config.Config, deps Deps) *Server {
	if deps.Cache == nil {
		deps.Cache = cache.New(cfg.Cache.DefaultTTL)
	}
	if deps.Market == nil {
		deps.Market = market.NewClient(nil, nil)
	}
	if deps.Analyzer == nil {
		deps.Analyzer = sentiment.NewAnalyzer(nil, cfg.TextModel.Timeout)
	}
	if deps.News == nil {
		deps.News = news.NewService(nil, cfg.TextModel.Timeout)
	}
	s := &Server{
		cfg:     cfg,
		deps:    deps,
		limiter: ratelimit.NewWindow(cfg.Server.RateLimitWindow, cfg.Server.RateLimitMax),
		now:     time.Now,
	}
	s.engine = s.routes()
	return s
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	// Forwarding headers are honoured only from listed proxies; with none,
	// ClientIP is the connection's remote address.
	if err := r.SetTrustedProxies(s.cfg.Server.TrustedProxies); err != nil {
		log.Printf("[WARN] invalid trusted proxies %v, ignoring forwarding headers: %v", s.cfg.Server.TrustedProxies, err)
		_ = r.SetTrustedProxies(nil)
	}
	r.Use(s.recovery(), requestLogger(), securityHeaders(), bodyLimit(maxBodyBytes))

	api := r.Group("/api")
	api.Use(s.rateLimit())
	{
		api.GET("/health", s.health)

		api.GET("/stock/market/movers", s.movers)
		api.GET("/stock/:symbol", s.stock)
		api.GET("/stock/:symbol/chart/:interval", s.chart)
		api.GET("/stock/:symbol/chart/:interval/image", s.chartImage)

		api.POST("/sentiment/analyze", s.analyze)
		api.POST("/sentiment/batch", s.batch)
		api.GET("/sentiment/health", s.sentimentHealth)

		api.GET("/news", s.newsList)
		api.GET("/news/category/:category", s.newsByCategory)
		api.GET("/news/breaking", s.breakingNews)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Endpoint not found",
			"path":  c.Request.URL.RequestURI(),
		})
	})
	return r
}

// Handler returns the router wrapped with CORS.
func (s *Server) Handler() http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:   s.cfg.Server.AllowedOrigins,
		AllowCredentials: true,
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
	})
	return c.Handler(s.engine)
}

// SweepRateLimits drops expired per-client windows.
func (s *Server) SweepRateLimits() int {
	return s.limiter.Sweep()
}

func (s *Server) timestamp() string {
	return s.now().UTC().Format(timestampLayout)
}
