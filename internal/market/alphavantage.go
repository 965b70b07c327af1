package market

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"StockPulse/internal/model"
	"StockPulse/internal/ratelimit"
)

// DefaultBaseURL is the Alpha Vantage query endpoint.
const DefaultBaseURL = "https://www.alphavantage.co/query"

const userAgent = "StockPulse-Pro/1.0.0"

// AlphaVantageFetcher implements Fetcher using the Alpha Vantage query API.
// Every request waits on the shared limiter first.
type AlphaVantageFetcher struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
	Limiter *ratelimit.Limiter
	now     func() time.Time
}

// NewAlphaVantageFetcher creates a fetcher with optional proxy support.
func NewAlphaVantageFetcher(baseURL, apiKey, proxyURL string, timeout time.Duration, limiter *ratelimit.Limiter) *AlphaVantageFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if limiter == nil {
		limiter = ratelimit.New(ratelimit.DefaultInterval)
	}
	return &AlphaVantageFetcher{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
		Limiter: limiter,
		now:     time.Now,
	}
}

func (f *AlphaVantageFetcher) Name() string { return "alpha_vantage" }

func (f *AlphaVantageFetcher) query(ctx context.Context, params url.Values) (map[string]interface{}, error) {
	if err := f.Limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("alpha vantage wait: %w", err)
	}

	params.Set("apikey", f.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("alpha vantage fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("alpha vantage read body: %w", err)
	}
	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, fmt.Errorf("%w: status %d", ErrRateLimited, resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d, body: %s", ErrProvider, resp.StatusCode, truncate(string(body), 200))
	}

	var data map[string]interface{}
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("alpha vantage decode: %w", err)
	}
	if err := checkEnvelope(data); err != nil {
		return nil, err
	}
	return data, nil
}

func (f *AlphaVantageFetcher) FetchQuote(ctx context.Context, symbol string) (model.Quote, error) {
	data, err := f.query(ctx, url.Values{
		"function": {"GLOBAL_QUOTE"},
		"symbol":   {strings.ToUpper(symbol)},
	})
	if err != nil {
		return model.Quote{}, err
	}
	return parseQuote(data, f.now())
}

func (f *AlphaVantageFetcher) FetchOverview(ctx context.Context, symbol string) (model.CompanyOverview, error) {
	data, err := f.query(ctx, url.Values{
		"function": {"OVERVIEW"},
		"symbol":   {strings.ToUpper(symbol)},
	})
	if err != nil {
		return model.CompanyOverview{}, err
	}
	return parseOverview(data)
}

func (f *AlphaVantageFetcher) FetchIntraday(ctx context.Context, symbol, interval string) ([]model.ChartPoint, error) {
	if !ValidInterval(interval) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidInterval, interval)
	}
	data, err := f.query(ctx, url.Values{
		"function":   {"TIME_SERIES_INTRADAY"},
		"symbol":     {strings.ToUpper(symbol)},
		"interval":   {interval},
		"outputsize": {"compact"},
	})
	if err != nil {
		return nil, err
	}
	return parseIntraday(data, interval)
}

func (f *AlphaVantageFetcher) FetchMovers(ctx context.Context) (model.MarketMovers, error) {
	data, err := f.query(ctx, url.Values{
		"function": {"TOP_GAINERS_LOSERS"},
	})
	if err != nil {
		return model.MarketMovers{}, err
	}
	return parseMovers(data)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
