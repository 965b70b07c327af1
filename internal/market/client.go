package market

import (
	"context"
	"log"
	"strings"

	"StockPulse/internal/model"
)

// Result carries a value together with where it came from. Provider failures
// are folded into a synthetic Value with Fallback set and Reason explaining why.
type Result[T any] struct {
	Value    T
	Source   string
	Fallback bool
	Reason   error
}

// Client exposes market data that is always available. Live data comes from
// the primary fetcher; anything it cannot serve is generated by the mock.
type Client struct {
	primary Fetcher
	mock    *MockFetcher
}

// NewClient creates a Client. A nil primary serves every call from mock.
func NewClient(primary Fetcher, mock *MockFetcher) *Client {
	if mock == nil {
		mock = NewMockFetcher(0)
	}
	return &Client{primary: primary, mock: mock}
}

// Live reports whether a primary provider is configured.
func (c *Client) Live() bool { return c.primary != nil }

// Quote returns the latest quote for symbol.
func (c *Client) Quote(ctx context.Context, symbol string) Result[model.Quote] {
	symbol = strings.ToUpper(symbol)
	return withFallback(c, "quote", symbol,
		func(f Fetcher) (model.Quote, error) { return f.FetchQuote(ctx, symbol) },
		func() model.Quote { return c.mock.GenerateQuote(symbol) },
	)
}

// Overview returns company fundamentals for symbol.
func (c *Client) Overview(ctx context.Context, symbol string) Result[model.CompanyOverview] {
	symbol = strings.ToUpper(symbol)
	return withFallback(c, "overview", symbol,
		func(f Fetcher) (model.CompanyOverview, error) { return f.FetchOverview(ctx, symbol) },
		func() model.CompanyOverview { return c.mock.GenerateOverview(symbol) },
	)
}

// Intraday returns bars for symbol at interval, most recent first.
func (c *Client) Intraday(ctx context.Context, symbol, interval string) Result[[]model.ChartPoint] {
	symbol = strings.ToUpper(symbol)
	if interval == "" {
		interval = DefaultInterval
	}
	return withFallback(c, "intraday", symbol,
		func(f Fetcher) ([]model.ChartPoint, error) {
			points, err := f.FetchIntraday(ctx, symbol, interval)
			if err != nil {
				return nil, err
			}
			SortDescending(points)
			return points, nil
		},
		func() []model.ChartPoint { return c.mock.GenerateIntraday(symbol, interval) },
	)
}

// Movers returns the top gainers, losers and most active symbols.
func (c *Client) Movers(ctx context.Context) Result[model.MarketMovers] {
	return withFallback(c, "movers", "",
		func(f Fetcher) (model.MarketMovers, error) { return f.FetchMovers(ctx) },
		func() model.MarketMovers { return c.mock.GenerateMovers() },
	)
}

// withFallback runs live against the primary fetcher and substitutes the
// generated value on any error.
func withFallback[T any](c *Client, op, symbol string, live func(Fetcher) (T, error), generate func() T) Result[T] {
	if c.primary == nil {
		return Result[T]{Value: generate(), Source: c.mock.Name(), Fallback: true, Reason: ErrNotConfigured}
	}
	v, err := live(c.primary)
	if err == nil {
		return Result[T]{Value: v, Source: c.primary.Name()}
	}
	if symbol != "" {
		log.Printf("[WARN] %s %s from %s failed, using mock data: %v", op, symbol, c.primary.Name(), err)
	} else {
		log.Printf("[WARN] %s from %s failed, using mock data: %v", op, c.primary.Name(), err)
	}
	return Result[T]{Value: generate(), Source: c.mock.Name(), Fallback: true, Reason: err}
}
