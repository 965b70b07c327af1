package market

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"StockPulse/internal/calculator"
	"StockPulse/internal/model"
)

type profile struct {
	Name      string
	Price     float64
	Volume    int64
	MarketCap float64
	Sector    string
	Industry  string
}

var profiles = map[string]profile{
	"AAPL":  {"Apple Inc.", 178.45, 48392847, 2.8e12, "Technology", "Consumer Electronics"},
	"GOOGL": {"Alphabet Inc.", 138.21, 24589756, 1.75e12, "Technology", "Internet Content & Information"},
	"TSLA":  {"Tesla, Inc.", 248.98, 89472658, 7.95e11, "Consumer Cyclical", "Auto Manufacturers"},
	"MSFT":  {"Microsoft Corporation", 416.89, 18472839, 3.1e12, "Technology", "Software-Infrastructure"},
	"AMZN":  {"Amazon.com, Inc.", 189.32, 32847291, 1.98e12, "Consumer Cyclical", "Internet Retail"},
	"NVDA":  {"NVIDIA Corporation", 875.28, 42183920, 2.15e12, "Technology", "Semiconductors"},
	"META":  {"Meta Platforms, Inc.", 484.10, 15392011, 1.23e12, "Communication Services", "Internet Content & Information"},
	"NFLX":  {"Netflix, Inc.", 628.50, 3518204, 2.72e11, "Communication Services", "Entertainment"},
	"AMD":   {"Advanced Micro Devices, Inc.", 162.35, 55210394, 2.62e11, "Technology", "Semiconductors"},
	"INTC":  {"Intel Corporation", 31.42, 38102745, 1.34e11, "Technology", "Semiconductors"},
}

// profileFor returns the baseline for symbol. Unknown symbols get a generic
// large-cap technology profile under their own name.
func profileFor(symbol string) profile {
	if p, ok := profiles[symbol]; ok {
		return p
	}
	generic := profiles["AAPL"]
	generic.Name = symbol
	generic.Industry = "Diversified Technology"
	return generic
}

// MockFetcher produces synthetic market data keyed by symbol. Each call
// jitters around the symbol's baseline.
type MockFetcher struct {
	mu  sync.Mutex
	rnd *rand.Rand
	now func() time.Time
}

// NewMockFetcher creates a generator. A zero seed draws one from the clock.
func NewMockFetcher(seed int64) *MockFetcher {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &MockFetcher{
		rnd: rand.New(rand.NewSource(seed)),
		now: time.Now,
	}
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchQuote(_ context.Context, symbol string) (model.Quote, error) {
	return m.GenerateQuote(symbol), nil
}

func (m *MockFetcher) FetchOverview(_ context.Context, symbol string) (model.CompanyOverview, error) {
	return m.GenerateOverview(symbol), nil
}

func (m *MockFetcher) FetchIntraday(_ context.Context, symbol, interval string) ([]model.ChartPoint, error) {
	return m.GenerateIntraday(symbol, interval), nil
}

func (m *MockFetcher) FetchMovers(_ context.Context) (model.MarketMovers, error) {
	return m.GenerateMovers(), nil
}

// uniform returns a value in [lo, hi).
func (m *MockFetcher) uniform(lo, hi float64) float64 {
	m.mu.Lock()
	r := m.rnd.Float64()
	m.mu.Unlock()
	return lo + r*(hi-lo)
}

// GenerateQuote returns a quote within ±5% of the baseline price.
func (m *MockFetcher) GenerateQuote(symbol string) model.Quote {
	symbol = strings.ToUpper(symbol)
	base := profileFor(symbol)

	price := round2(base.Price * (1 + m.uniform(-0.05, 0.05)))
	change := round2(price - base.Price)
	return model.Quote{
		Symbol:        symbol,
		Price:         price,
		Change:        change,
		ChangePercent: round2(change / base.Price * 100),
		Volume:        int64(float64(base.Volume) * m.uniform(0.8, 1.2)),
		High:          round2(price * 1.015),
		Low:           round2(price * 0.985),
		Open:          round2(price * 0.995),
		PreviousClose: base.Price,
		Timestamp:     m.now().UTC().Format(time.RFC3339),
	}
}

// GenerateOverview returns fundamentals drawn from plausible ranges. The
// 52-week range and moving averages come from a synthetic year of closes.
func (m *MockFetcher) GenerateOverview(symbol string) model.CompanyOverview {
	symbol = strings.ToUpper(symbol)
	base := profileFor(symbol)
	daily := m.dailySeries(base.Price, calculator.TradingDaysPerYear)

	high52, low52, err := calculator.Calculate52WeekRange(daily)
	if err != nil {
		high52, low52 = base.Price*1.2, base.Price*0.8
	}
	ma50, err := calculator.MovingAverage(daily, 50)
	if err != nil {
		ma50 = base.Price
	}
	ma200, err := calculator.MovingAverage(daily, 200)
	if err != nil {
		ma200 = base.Price
	}

	return model.CompanyOverview{
		Symbol:      symbol,
		Name:        base.Name,
		Description: fmt.Sprintf("%s is a leading company in the %s sector, specializing in %s.", base.Name, base.Sector, base.Industry),
		Sector:      base.Sector,
		Industry:    base.Industry,

		MarketCap:                  base.MarketCap,
		PERatio:                    round2(m.uniform(15, 50)),
		PEGRatio:                   round2(m.uniform(0.5, 2.5)),
		BookValue:                  round2(m.uniform(10, 60)),
		DividendPerShare:           round2(m.uniform(0, 5)),
		DividendYield:              round2(m.uniform(0, 3)),
		EPS:                        round2(m.uniform(5, 25)),
		RevenuePerShareTTM:         round2(m.uniform(50, 250)),
		ProfitMargin:               round2(m.uniform(0.1, 0.4)),
		OperatingMarginTTM:         round2(m.uniform(0.15, 0.4)),
		ReturnOnAssetsTTM:          round2(m.uniform(0.05, 0.25)),
		ReturnOnEquityTTM:          round2(m.uniform(0.1, 0.5)),
		RevenueTTM:                 math.Round(m.uniform(1e11, 3e11)),
		GrossProfitTTM:             math.Round(m.uniform(5e10, 1.5e11)),
		DilutedEPSTTM:              round2(m.uniform(5, 20)),
		QuarterlyEarningsGrowthYOY: round2(m.uniform(-0.1, 0.4)),
		QuarterlyRevenueGrowthYOY:  round2(m.uniform(-0.05, 0.25)),
		AnalystTargetPrice:         round2(base.Price * m.uniform(0.9, 1.1)),
		TrailingPE:                 round2(m.uniform(15, 50)),
		ForwardPE:                  round2(m.uniform(12, 40)),
		PriceToSalesRatioTTM:       round2(m.uniform(2, 10)),
		PriceToBookRatio:           round2(m.uniform(1, 11)),
		EVToRevenue:                round2(m.uniform(3, 15)),
		EVToEBITDA:                 round2(m.uniform(8, 33)),
		Beta:                       round2(m.uniform(0.5, 2)),
		Week52High:                 round2(high52),
		Week52Low:                  round2(low52),
		Day50MovingAverage:         round2(ma50),
		Day200MovingAverage:        round2(ma200),
		SharesOutstanding:          math.Round(m.uniform(1e9, 1.6e10)),
		SharesFloat:                math.Round(m.uniform(8e8, 1.28e10)),
		SharesShort:                math.Round(m.uniform(5e7, 2.5e8)),
		SharesShortPriorMonth:      math.Round(m.uniform(4.5e7, 2.25e8)),
		ShortRatio:                 round2(m.uniform(1, 6)),
		ShortPercentOutstanding:    round2(m.uniform(0, 10)),
		ShortPercentFloat:          round2(m.uniform(0, 15)),
		PercentInsiders:            round2(m.uniform(0, 30)),
		PercentInstitutions:        round2(m.uniform(60, 90)),
		ForwardAnnualDividendRate:  round2(m.uniform(0, 8)),
		ForwardAnnualDividendYield: round2(m.uniform(0, 4)),
		PayoutRatio:                round2(m.uniform(0, 60)),

		DividendDate:    "2024-11-15",
		ExDividendDate:  "2024-11-08",
		LastSplitFactor: "4:1",
		LastSplitDate:   "2020-08-31",
	}
}

// dailySeries builds a mean-reverting walk around base in chronological order.
func (m *MockFetcher) dailySeries(base float64, days int) []model.ChartPoint {
	points := make([]model.ChartPoint, days)
	start := m.now().AddDate(0, 0, -days)
	prev := base * m.uniform(0.8, 1.0)
	for i := 0; i < days; i++ {
		c := prev + (base-prev)*0.02 + prev*m.uniform(-0.015, 0.015)
		if c <= 0 {
			c = base
		}
		points[i] = model.ChartPoint{
			Timestamp: start.AddDate(0, 0, i).UTC().Format(model.SeriesTimeLayout),
			Open:      prev,
			High:      math.Max(prev, c) * (1 + m.uniform(0, 0.01)),
			Low:       math.Min(prev, c) * (1 - m.uniform(0, 0.01)),
			Close:     c,
		}
		prev = c
	}
	return points
}

// GenerateIntraday returns 50 bars at the requested spacing, most recent first.
func (m *MockFetcher) GenerateIntraday(symbol, interval string) []model.ChartPoint {
	base := profileFor(strings.ToUpper(symbol))
	step := intervalDuration(interval)
	end := m.now().UTC().Truncate(step)

	const n = 50
	points := make([]model.ChartPoint, 0, n)
	prevClose := 0.0
	for i := n - 1; i >= 0; i-- {
		c := base.Price * (1 + m.uniform(-0.01, 0.01))
		o := prevClose
		if o == 0 {
			o = c
		}
		points = append(points, model.ChartPoint{
			Timestamp: end.Add(-time.Duration(i) * step).Format(model.SeriesTimeLayout),
			Open:      round2(o),
			High:      round2(math.Max(o, c) * (1 + m.uniform(0, 0.005))),
			Low:       round2(math.Min(o, c) * (1 - m.uniform(0, 0.005))),
			Close:     round2(c),
			Volume:    int64(float64(base.Volume) / 100 * m.uniform(0.5, 1.5)),
		})
		prevClose = c
	}
	SortDescending(points)
	return points
}

// GenerateMovers ranks fresh quotes for every known symbol.
func (m *MockFetcher) GenerateMovers() model.MarketMovers {
	symbols := make([]string, 0, len(profiles))
	for s := range profiles {
		symbols = append(symbols, s)
	}
	sort.Strings(symbols)

	movers := make([]model.Mover, 0, len(symbols))
	for _, s := range symbols {
		q := m.GenerateQuote(s)
		movers = append(movers, model.Mover{
			Ticker:           q.Symbol,
			Price:            q.Price,
			ChangeAmount:     q.Change,
			ChangePercentage: q.ChangePercent,
			Volume:           q.Volume,
		})
	}

	half := len(movers) / 2
	gainers := rankMovers(movers, func(a, b model.Mover) bool { return a.ChangePercentage > b.ChangePercentage }, half)
	losers := rankMovers(movers, func(a, b model.Mover) bool { return a.ChangePercentage < b.ChangePercentage }, half)
	active := rankMovers(movers, func(a, b model.Mover) bool { return a.Volume > b.Volume }, model.MaxMovers)
	return model.MarketMovers{
		TopGainers:         gainers,
		TopLosers:          losers,
		MostActivelyTraded: active,
	}
}

func rankMovers(in []model.Mover, less func(a, b model.Mover) bool, limit int) []model.Mover {
	out := make([]model.Mover, len(in))
	copy(out, in)
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	if limit > model.MaxMovers {
		limit = model.MaxMovers
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// intervalDuration maps an interval such as "15min" to its spacing.
// Unsupported values fall back to five minutes.
func intervalDuration(interval string) time.Duration {
	switch interval {
	case "1min":
		return time.Minute
	case "15min":
		return 15 * time.Minute
	case "30min":
		return 30 * time.Minute
	case "60min":
		return time.Hour
	default:
		return 5 * time.Minute
	}
}

func round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
