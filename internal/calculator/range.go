package calculator

import (
	"errors"
	"math"

	"StockPulse/internal/model"
)

// TradingDaysPerYear is the window used for 52-week statistics.
const TradingDaysPerYear = 252

// CalculateRange scans the most recent window points and returns the high and low.
// points must be in chronological order.
func CalculateRange(points []model.ChartPoint, window int) (high, low float64, err error) {
	if len(points) == 0 {
		return 0, 0, errors.New("no points provided")
	}
	if window <= 0 {
		return 0, 0, errors.New("window must be positive")
	}
	n := len(points)
	start := n - window
	if start < 0 {
		start = 0
	}
	high = math.Inf(-1)
	low = math.Inf(1)
	for i := start; i < n; i++ {
		if points[i].High > high {
			high = points[i].High
		}
		if points[i].Low < low {
			low = points[i].Low
		}
	}
	return high, low, nil
}

// Calculate52WeekRange is CalculateRange over one year of daily points.
func Calculate52WeekRange(daily []model.ChartPoint) (high, low float64, err error) {
	return CalculateRange(daily, TradingDaysPerYear)
}
