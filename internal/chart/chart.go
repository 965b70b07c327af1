// Package chart renders intraday series as PNG images.
package chart

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/vicanso/go-charts/v2"

	"StockPulse/internal/model"
)

// ErrNotEnoughData is returned for series with fewer than two points.
var ErrNotEnoughData = errors.New("not enough data points")

// RenderLine draws the closing prices of points as a line chart. points may
// arrive in any order; the chart is always drawn oldest to newest.
func RenderLine(symbol, interval string, points []model.ChartPoint) ([]byte, error) {
	if len(points) < 2 {
		return nil, ErrNotEnoughData
	}

	ordered := make([]model.ChartPoint, len(points))
	copy(ordered, points)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Time().Before(ordered[j].Time())
	})

	x := make([]string, len(ordered))
	closes := make([]float64, len(ordered))
	yMin, yMax := ordered[0].Close, ordered[0].Close
	for i, p := range ordered {
		x[i] = label(p)
		closes[i] = p.Close
		if p.Close < yMin {
			yMin = p.Close
		}
		if p.Close > yMax {
			yMax = p.Close
		}
	}
	yMin, yMax = pad(yMin, yMax)

	split := 10
	if len(ordered) < split {
		split = len(ordered)
	}
	painter, err := charts.LineRender([][]float64{closes},
		charts.TitleTextOptionFunc(strings.ToUpper(symbol)+" • "+interval),
		charts.XAxisOptionFunc(charts.XAxisOption{Data: x, BoundaryGap: charts.FalseFlag(), SplitNumber: split}),
		charts.YAxisOptionFunc(charts.YAxisOption{Min: &yMin, Max: &yMax, DivideCount: 5}),
		charts.ThemeOptionFunc(charts.ThemeLight),
	)
	if err != nil {
		return nil, fmt.Errorf("render %s chart: %w", symbol, err)
	}
	return painter.Bytes()
}

func label(p model.ChartPoint) string {
	t := p.Time()
	if t.IsZero() {
		return p.Timestamp
	}
	return t.Format("15:04")
}

// pad widens [lo, hi] by 5% of the span, at least 0.2% of hi, never below 0.
func pad(lo, hi float64) (float64, float64) {
	d := (hi - lo) * 0.05
	if d < hi*0.002 {
		d = hi * 0.002
	}
	if d == 0 {
		d = 1
	}
	lo -= d
	if lo < 0 {
		lo = 0
	}
	return lo, hi + d
}
