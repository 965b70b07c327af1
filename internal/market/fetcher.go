package market

import (
	"context"
	"errors"

	"StockPulse/internal/model"
)

// Fetcher defines the interface for fetching market data.
type Fetcher interface {
	FetchQuote(ctx context.Context, symbol string) (model.Quote, error)
	FetchOverview(ctx context.Context, symbol string) (model.CompanyOverview, error)
	FetchIntraday(ctx context.Context, symbol, interval string) ([]model.ChartPoint, error)
	FetchMovers(ctx context.Context) (model.MarketMovers, error)
	Name() string
}

var (
	// ErrRateLimited means the provider refused the call because of its quota.
	ErrRateLimited = errors.New("provider rate limit exceeded")
	// ErrProvider means the provider reported an explicit error.
	ErrProvider = errors.New("provider error")
	// ErrNoData means the provider answered without usable data.
	ErrNoData = errors.New("no data returned")
	// ErrInvalidInterval means the intraday interval is not supported.
	ErrInvalidInterval = errors.New("invalid interval")
	// ErrNotConfigured means no live provider is wired in.
	ErrNotConfigured = errors.New("live provider not configured")
)

// DefaultInterval is used when a caller does not pick an intraday interval.
const DefaultInterval = "5min"

// Intervals lists the supported intraday intervals.
var Intervals = []string{"1min", "5min", "15min", "30min", "60min"}

// ValidInterval reports whether interval is supported.
func ValidInterval(interval string) bool {
	for _, v := range Intervals {
		if v == interval {
			return true
		}
	}
	return false
}
