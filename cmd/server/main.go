package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"StockPulse/internal/cache"
	"StockPulse/internal/config"
	"StockPulse/internal/market"
	"StockPulse/internal/news"
	"StockPulse/internal/ratelimit"
	"StockPulse/internal/scheduler"
	"StockPulse/internal/sentiment"
	"StockPulse/internal/server"
	"StockPulse/internal/textgen"
)

const shutdownTimeout = 10 * time.Second

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] StockPulse Pro API starting...")

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("[WARN] load .env: %v", err)
	}

	// Load config
	cfg, err := config.Load(config.Path())
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}
	switch cfg.Server.Mode {
	case config.ModeDevelopment:
		gin.SetMode(gin.DebugMode)
	case config.ModeTest:
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init market data
	var primary market.Fetcher
	if cfg.AlphaVantage.APIKey != "" {
		limiter := ratelimit.New(cfg.AlphaVantage.MinInterval)
		primary = market.NewAlphaVantageFetcher(cfg.AlphaVantage.BaseURL, cfg.AlphaVantage.APIKey,
			cfg.Proxy, cfg.AlphaVantage.Timeout, limiter)
		log.Printf("[INFO] data source: %s (min interval %v)", primary.Name(), limiter.Interval())
	} else {
		log.Println("[WARN] ALPHA_VANTAGE_API_KEY not set, serving mock market data")
	}
	client := market.NewClient(primary, market.NewMockFetcher(0))

	// Init text model
	gen, err := textgen.New(ctx, cfg.TextModel.Provider, cfg.TextModel.APIKey, cfg.TextModel.Model)
	if err != nil {
		log.Printf("[WARN] init text model failed, using keyword fallback: %v", err)
		gen = textgen.Unavailable{}
	}
	if _, ok := gen.(textgen.Unavailable); ok {
		log.Println("[WARN] no text model configured, sentiment and news use fallbacks")
	} else {
		log.Printf("[INFO] text model: %s", gen.Name())
	}

	// Init cache and scheduler
	c := cache.New(cfg.Cache.DefaultTTL)
	sched := scheduler.NewScheduler(c)
	if err := sched.RegisterCacheJobs(cfg.Cache.StatsInterval); err != nil {
		log.Fatalf("[FATAL] register cache jobs: %v", err)
	}

	srv := server.New(cfg, server.Deps{
		Market:   client,
		Analyzer: sentiment.NewAnalyzer(gen, cfg.TextModel.Timeout),
		News:     news.NewService(gen, cfg.TextModel.Timeout),
		Cache:    c,
	})
	if err := sched.AddJob("@every 1m", "rate limit sweep", func() { srv.SweepRateLimits() }); err != nil {
		log.Fatalf("[FATAL] register rate limit sweep: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	httpSrv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Printf("[INFO] listening on %s (%s)", httpSrv.Addr, cfg.Server.Mode)
		log.Printf("[INFO] CORS enabled for: %v", cfg.Server.AllowedOrigins)
		log.Printf("[INFO] rate limit: %d requests per %v", cfg.Server.RateLimitMax, cfg.Server.RateLimitWindow)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("[FATAL] http server: %v", err)
		}
	}()

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	shutdownCtx, done := context.WithTimeout(context.Background(), shutdownTimeout)
	defer done()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[ERROR] http shutdown: %v", err)
	}
	log.Println("[INFO] StockPulse Pro API stopped")
}
