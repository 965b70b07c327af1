package model

import "time"

// Quote is the latest trade snapshot for a symbol.
type Quote struct {
	Symbol        string  `json:"symbol"`
	Price         float64 `json:"price"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"changePercent"`
	Volume        int64   `json:"volume"`
	High          float64 `json:"high"`
	Low           float64 `json:"low"`
	Open          float64 `json:"open"`
	PreviousClose float64 `json:"previousClose"`
	Timestamp     string  `json:"timestamp"`
}

// CompanyOverview holds descriptive fields and fundamentals for a symbol.
// Numeric fields are 0 when the source omits them.
type CompanyOverview struct {
	Symbol      string `json:"symbol"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Sector      string `json:"sector"`
	Industry    string `json:"industry"`

	MarketCap                  float64 `json:"marketCap"`
	PERatio                    float64 `json:"peRatio"`
	PEGRatio                   float64 `json:"pegRatio"`
	BookValue                  float64 `json:"bookValue"`
	DividendPerShare           float64 `json:"dividendPerShare"`
	DividendYield              float64 `json:"dividendYield"`
	EPS                        float64 `json:"eps"`
	RevenuePerShareTTM         float64 `json:"revenuePerShareTTM"`
	ProfitMargin               float64 `json:"profitMargin"`
	OperatingMarginTTM         float64 `json:"operatingMarginTTM"`
	ReturnOnAssetsTTM          float64 `json:"returnOnAssetsTTM"`
	ReturnOnEquityTTM          float64 `json:"returnOnEquityTTM"`
	RevenueTTM                 float64 `json:"revenueTTM"`
	GrossProfitTTM             float64 `json:"grossProfitTTM"`
	DilutedEPSTTM              float64 `json:"dilutedEPSTTM"`
	QuarterlyEarningsGrowthYOY float64 `json:"quarterlyEarningsGrowthYOY"`
	QuarterlyRevenueGrowthYOY  float64 `json:"quarterlyRevenueGrowthYOY"`
	AnalystTargetPrice         float64 `json:"analystTargetPrice"`
	TrailingPE                 float64 `json:"trailingPE"`
	ForwardPE                  float64 `json:"forwardPE"`
	PriceToSalesRatioTTM       float64 `json:"priceToSalesRatioTTM"`
	PriceToBookRatio           float64 `json:"priceToBookRatio"`
	EVToRevenue                float64 `json:"evToRevenue"`
	EVToEBITDA                 float64 `json:"evToEbitda"`
	Beta                       float64 `json:"beta"`
	Week52High                 float64 `json:"week52High"`
	Week52Low                  float64 `json:"week52Low"`
	Day50MovingAverage         float64 `json:"day50MovingAverage"`
	Day200MovingAverage        float64 `json:"day200MovingAverage"`
	SharesOutstanding          float64 `json:"sharesOutstanding"`
	SharesFloat                float64 `json:"sharesFloat"`
	SharesShort                float64 `json:"sharesShort"`
	SharesShortPriorMonth      float64 `json:"sharesShortPriorMonth"`
	ShortRatio                 float64 `json:"shortRatio"`
	ShortPercentOutstanding    float64 `json:"shortPercentOutstanding"`
	ShortPercentFloat          float64 `json:"shortPercentFloat"`
	PercentInsiders            float64 `json:"percentInsiders"`
	PercentInstitutions        float64 `json:"percentInstitutions"`
	ForwardAnnualDividendRate  float64 `json:"forwardAnnualDividendRate"`
	ForwardAnnualDividendYield float64 `json:"forwardAnnualDividendYield"`
	PayoutRatio                float64 `json:"payoutRatio"`

	DividendDate    string `json:"dividendDate"`
	ExDividendDate  string `json:"exDividendDate"`
	LastSplitFactor string `json:"lastSplitFactor"`
	LastSplitDate   string `json:"lastSplitDate"`
}

// ChartPoint is a single intraday candlestick.
type ChartPoint struct {
	Timestamp string  `json:"timestamp"`
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
	Volume    int64   `json:"volume"`
}

// SeriesTimeLayout is the timestamp layout used by intraday series.
const SeriesTimeLayout = "2006-01-02 15:04:05"

// Time parses the point's timestamp. The zero time is returned when the
// timestamp is in neither the series layout nor RFC 3339.
func (p ChartPoint) Time() time.Time {
	if t, err := time.Parse(SeriesTimeLayout, p.Timestamp); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, p.Timestamp); err == nil {
		return t
	}
	return time.Time{}
}

// Mover is a simplified quote used in market mover lists.
type Mover struct {
	Ticker           string  `json:"ticker"`
	Price            float64 `json:"price"`
	ChangeAmount     float64 `json:"change_amount"`
	ChangePercentage float64 `json:"change_percentage"`
	Volume           int64   `json:"volume"`
}

// MaxMovers bounds each MarketMovers list.
const MaxMovers = 10

// MarketMovers holds the day's top gainers, losers and most traded symbols.
type MarketMovers struct {
	TopGainers         []Mover `json:"top_gainers"`
	TopLosers          []Mover `json:"top_losers"`
	MostActivelyTraded []Mover `json:"most_actively_traded"`
}
