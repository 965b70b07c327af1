package calculator

import (
	"errors"
	"fmt"

	"StockPulse/internal/model"
)

var (
	// ErrInvalidPeriod is returned for a non-positive averaging period.
	ErrInvalidPeriod = errors.New("period must be positive")
	// ErrInsufficientData is returned when fewer points than the period are given.
	ErrInsufficientData = errors.New("insufficient data")
)

// MovingAverage returns the mean close of the trailing period points.
// points must be in chronological order.
func MovingAverage(points []model.ChartPoint, period int) (float64, error) {
	if period <= 0 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidPeriod, period)
	}
	if len(points) < period {
		return 0, fmt.Errorf("%w: moving average over %d points, got %d", ErrInsufficientData, period, len(points))
	}
	var sum float64
	for _, p := range points[len(points)-period:] {
		sum += p.Close
	}
	return sum / float64(period), nil
}
