package market

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"StockPulse/internal/model"
)

// Alpha Vantage response keys. Nothing outside this file should know them.
const (
	keyErrorMessage = "Error Message"
	keyNote         = "Note"
	keyInformation  = "Information"
	keyGlobalQuote  = "Global Quote"
	keyOverviewSym  = "Symbol"
	keyGainers      = "top_gainers"
	keyLosers       = "top_losers"
	keyMostActive   = "most_actively_traded"
)

func seriesKey(interval string) string {
	return fmt.Sprintf("Time Series (%s)", interval)
}

var quoteFields = struct {
	Symbol, Open, High, Low, Price, Volume, PreviousClose, Change, ChangePercent string
}{
	Symbol:        "01. symbol",
	Open:          "02. open",
	High:          "03. high",
	Low:           "04. low",
	Price:         "05. price",
	Volume:        "06. volume",
	PreviousClose: "08. previous close",
	Change:        "09. change",
	ChangePercent: "10. change percent",
}

var barFields = struct {
	Open, High, Low, Close, Volume string
}{
	Open:   "1. open",
	High:   "2. high",
	Low:    "3. low",
	Close:  "4. close",
	Volume: "5. volume",
}

var overviewStrings = []struct {
	key   string
	field func(*model.CompanyOverview) *string
}{
	{"Name", func(o *model.CompanyOverview) *string { return &o.Name }},
	{"Description", func(o *model.CompanyOverview) *string { return &o.Description }},
	{"Sector", func(o *model.CompanyOverview) *string { return &o.Sector }},
	{"Industry", func(o *model.CompanyOverview) *string { return &o.Industry }},
	{"DividendDate", func(o *model.CompanyOverview) *string { return &o.DividendDate }},
	{"ExDividendDate", func(o *model.CompanyOverview) *string { return &o.ExDividendDate }},
	{"LastSplitFactor", func(o *model.CompanyOverview) *string { return &o.LastSplitFactor }},
	{"LastSplitDate", func(o *model.CompanyOverview) *string { return &o.LastSplitDate }},
}

var overviewNumbers = []struct {
	key   string
	field func(*model.CompanyOverview) *float64
}{
	{"MarketCapitalization", func(o *model.CompanyOverview) *float64 { return &o.MarketCap }},
	{"PERatio", func(o *model.CompanyOverview) *float64 { return &o.PERatio }},
	{"PEGRatio", func(o *model.CompanyOverview) *float64 { return &o.PEGRatio }},
	{"BookValue", func(o *model.CompanyOverview) *float64 { return &o.BookValue }},
	{"DividendPerShare", func(o *model.CompanyOverview) *float64 { return &o.DividendPerShare }},
	{"DividendYield", func(o *model.CompanyOverview) *float64 { return &o.DividendYield }},
	{"EPS", func(o *model.CompanyOverview) *float64 { return &o.EPS }},
	{"RevenuePerShareTTM", func(o *model.CompanyOverview) *float64 { return &o.RevenuePerShareTTM }},
	{"ProfitMargin", func(o *model.CompanyOverview) *float64 { return &o.ProfitMargin }},
	{"OperatingMarginTTM", func(o *model.CompanyOverview) *float64 { return &o.OperatingMarginTTM }},
	{"ReturnOnAssetsTTM", func(o *model.CompanyOverview) *float64 { return &o.ReturnOnAssetsTTM }},
	{"ReturnOnEquityTTM", func(o *model.CompanyOverview) *float64 { return &o.ReturnOnEquityTTM }},
	{"RevenueTTM", func(o *model.CompanyOverview) *float64 { return &o.RevenueTTM }},
	{"GrossProfitTTM", func(o *model.CompanyOverview) *float64 { return &o.GrossProfitTTM }},
	{"DilutedEPSTTM", func(o *model.CompanyOverview) *float64 { return &o.DilutedEPSTTM }},
	{"QuarterlyEarningsGrowthYOY", func(o *model.CompanyOverview) *float64 { return &o.QuarterlyEarningsGrowthYOY }},
	{"QuarterlyRevenueGrowthYOY", func(o *model.CompanyOverview) *float64 { return &o.QuarterlyRevenueGrowthYOY }},
	{"AnalystTargetPrice", func(o *model.CompanyOverview) *float64 { return &o.AnalystTargetPrice }},
	{"TrailingPE", func(o *model.CompanyOverview) *float64 { return &o.TrailingPE }},
	{"ForwardPE", func(o *model.CompanyOverview) *float64 { return &o.ForwardPE }},
	{"PriceToSalesRatioTTM", func(o *model.CompanyOverview) *float64 { return &o.PriceToSalesRatioTTM }},
	{"PriceToBookRatio", func(o *model.CompanyOverview) *float64 { return &o.PriceToBookRatio }},
	{"EVToRevenue", func(o *model.CompanyOverview) *float64 { return &o.EVToRevenue }},
	{"EVToEBITDA", func(o *model.CompanyOverview) *float64 { return &o.EVToEBITDA }},
	{"Beta", func(o *model.CompanyOverview) *float64 { return &o.Beta }},
	{"52WeekHigh", func(o *model.CompanyOverview) *float64 { return &o.Week52High }},
	{"52WeekLow", func(o *model.CompanyOverview) *float64 { return &o.Week52Low }},
	{"50DayMovingAverage", func(o *model.CompanyOverview) *float64 { return &o.Day50MovingAverage }},
	{"200DayMovingAverage", func(o *model.CompanyOverview) *float64 { return &o.Day200MovingAverage }},
	{"SharesOutstanding", func(o *model.CompanyOverview) *float64 { return &o.SharesOutstanding }},
	{"SharesFloat", func(o *model.CompanyOverview) *float64 { return &o.SharesFloat }},
	{"SharesShort", func(o *model.CompanyOverview) *float64 { return &o.SharesShort }},
	{"SharesShortPriorMonth", func(o *model.CompanyOverview) *float64 { return &o.SharesShortPriorMonth }},
	{"ShortRatio", func(o *model.CompanyOverview) *float64 { return &o.ShortRatio }},
	{"ShortPercentOutstanding", func(o *model.CompanyOverview) *float64 { return &o.ShortPercentOutstanding }},
	{"ShortPercentFloat", func(o *model.CompanyOverview) *float64 { return &o.ShortPercentFloat }},
	{"PercentInsiders", func(o *model.CompanyOverview) *float64 { return &o.PercentInsiders }},
	{"PercentInstitutions", func(o *model.CompanyOverview) *float64 { return &o.PercentInstitutions }},
	{"ForwardAnnualDividendRate", func(o *model.CompanyOverview) *float64 { return &o.ForwardAnnualDividendRate }},
	{"ForwardAnnualDividendYield", func(o *model.CompanyOverview) *float64 { return &o.ForwardAnnualDividendYield }},
	{"PayoutRatio", func(o *model.CompanyOverview) *float64 { return &o.PayoutRatio }},
}

var moverFields = struct {
	Ticker, Price, ChangeAmount, ChangePercentage, Volume string
}{
	Ticker:           "ticker",
	Price:            "price",
	ChangeAmount:     "change_amount",
	ChangePercentage: "change_percentage",
	Volume:           "volume",
}

// checkEnvelope maps the provider's in-band failure signals to errors.
func checkEnvelope(body map[string]interface{}) error {
	if msg, ok := body[keyErrorMessage]; ok {
		return fmt.Errorf("%w: %s", ErrProvider, toString(msg))
	}
	if msg, ok := body[keyNote]; ok {
		return fmt.Errorf("%w: %s", ErrRateLimited, toString(msg))
	}
	if msg, ok := body[keyInformation]; ok {
		s := toString(msg)
		lower := strings.ToLower(s)
		if strings.Contains(lower, "rate limit") || strings.Contains(lower, "call frequency") {
			return fmt.Errorf("%w: %s", ErrRateLimited, s)
		}
	}
	return nil
}

func parseQuote(body map[string]interface{}, now time.Time) (model.Quote, error) {
	raw, _ := body[keyGlobalQuote].(map[string]interface{})
	if len(raw) == 0 {
		return model.Quote{}, fmt.Errorf("%w: empty global quote", ErrNoData)
	}
	price := toFloat(raw[quoteFields.Price])
	if price <= 0 {
		return model.Quote{}, fmt.Errorf("%w: global quote has no price", ErrNoData)
	}
	return model.Quote{
		Symbol:        strings.ToUpper(toString(raw[quoteFields.Symbol])),
		Price:         price,
		Change:        toFloat(raw[quoteFields.Change]),
		ChangePercent: toFloat(raw[quoteFields.ChangePercent]),
		Volume:        toInt(raw[quoteFields.Volume]),
		High:          toFloat(raw[quoteFields.High]),
		Low:           toFloat(raw[quoteFields.Low]),
		Open:          toFloat(raw[quoteFields.Open]),
		PreviousClose: toFloat(raw[quoteFields.PreviousClose]),
		Timestamp:     now.UTC().Format(time.RFC3339),
	}, nil
}

func parseOverview(body map[string]interface{}) (model.CompanyOverview, error) {
	sym := toString(body[keyOverviewSym])
	if sym == "" {
		return model.CompanyOverview{}, fmt.Errorf("%w: overview has no symbol", ErrNoData)
	}
	o := model.CompanyOverview{Symbol: strings.ToUpper(sym)}
	for _, f := range overviewStrings {
		*f.field(&o) = toString(body[f.key])
	}
	for _, f := range overviewNumbers {
		*f.field(&o) = toFloat(body[f.key])
	}
	return o, nil
}

func parseIntraday(body map[string]interface{}, interval string) ([]model.ChartPoint, error) {
	series, ok := body[seriesKey(interval)].(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("%w: missing %s", ErrNoData, seriesKey(interval))
	}
	points := make([]model.ChartPoint, 0, len(series))
	for ts, v := range series {
		bar, ok := v.(map[string]interface{})
		if !ok {
			continue
		}
		points = append(points, model.ChartPoint{
			Timestamp: ts,
			Open:      toFloat(bar[barFields.Open]),
			High:      toFloat(bar[barFields.High]),
			Low:       toFloat(bar[barFields.Low]),
			Close:     toFloat(bar[barFields.Close]),
			Volume:    toInt(bar[barFields.Volume]),
		})
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("%w: empty %s", ErrNoData, seriesKey(interval))
	}
	SortDescending(points)
	return points, nil
}

func parseMovers(body map[string]interface{}) (model.MarketMovers, error) {
	gainers, ok1 := body[keyGainers].([]interface{})
	losers, ok2 := body[keyLosers].([]interface{})
	active, ok3 := body[keyMostActive].([]interface{})
	if !ok1 || !ok2 || !ok3 {
		return model.MarketMovers{}, fmt.Errorf("%w: invalid market movers format", ErrNoData)
	}
	m := model.MarketMovers{
		TopGainers:         parseMoverList(gainers),
		TopLosers:          parseMoverList(losers),
		MostActivelyTraded: parseMoverList(active),
	}
	if len(m.TopGainers)+len(m.TopLosers)+len(m.MostActivelyTraded) == 0 {
		return model.MarketMovers{}, fmt.Errorf("%w: market movers lists are empty", ErrNoData)
	}
	return m, nil
}

func parseMoverList(list []interface{}) []model.Mover {
	out := make([]model.Mover, 0, model.MaxMovers)
	for _, item := range list {
		if len(out) == model.MaxMovers {
			break
		}
		m, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		out = append(out, model.Mover{
			Ticker:           toString(m[moverFields.Ticker]),
			Price:            toFloat(m[moverFields.Price]),
			ChangeAmount:     toFloat(m[moverFields.ChangeAmount]),
			ChangePercentage: toFloat(m[moverFields.ChangePercentage]),
			Volume:           toInt(m[moverFields.Volume]),
		})
	}
	return out
}

// SortDescending orders points most recent first. Points whose timestamps do
// not parse are compared as strings.
func SortDescending(points []model.ChartPoint) {
	sort.SliceStable(points, func(i, j int) bool {
		ti, tj := points[i].Time(), points[j].Time()
		if ti.IsZero() || tj.IsZero() {
			return points[i].Timestamp > points[j].Timestamp
		}
		return ti.After(tj)
	})
}

func toString(v interface{}) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(s)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	default:
		return fmt.Sprint(s)
	}
}

// toFloat coerces provider values to float64. Anything that does not parse
// to a finite number becomes 0.
func toFloat(v interface{}) float64 {
	var f float64
	switch n := v.(type) {
	case nil:
		return 0
	case float64:
		f = n
	case int:
		f = float64(n)
	case string:
		s := strings.TrimSuffix(strings.TrimSpace(n), "%")
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0
		}
		f = parsed
	default:
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// toInt coerces volume-like values. Negative results become 0.
func toInt(v interface{}) int64 {
	if s, ok := v.(string); ok {
		if n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64); err == nil {
			if n < 0 {
				return 0
			}
			return n
		}
	}
	f := toFloat(v)
	if f <= 0 || f > math.MaxInt64 {
		return 0
	}
	return int64(f)
}
