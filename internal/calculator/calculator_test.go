package calculator

import (
	"errors"
	"testing"

	"StockPulse/internal/model"
)

func points(closes ...float64) []model.ChartPoint {
	out := make([]model.ChartPoint, len(closes))
	for i, c := range closes {
		out[i] = model.ChartPoint{Open: c, High: c + 1, Low: c - 1, Close: c}
	}
	return out
}

func TestMovingAverage(t *testing.T) {
	tests := []struct {
		name    string
		closes  []float64
		period  int
		want    float64
		wantErr error
	}{
		{"trailing window", []float64{10, 20, 30, 40}, 2, 35, nil},
		{"last three", []float64{1, 2, 3, 4, 5}, 3, 4, nil},
		{"full series", []float64{2, 4}, 2, 3, nil},
		{"not enough points", []float64{1}, 2, 0, ErrInsufficientData},
		{"empty series", nil, 1, 0, ErrInsufficientData},
		{"zero period", []float64{1, 2}, 0, 0, ErrInvalidPeriod},
		{"negative period", []float64{1, 2}, -3, 0, ErrInvalidPeriod},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MovingAverage(points(tt.closes...), tt.period)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected error %v, got %v", tt.wantErr, err)
			}
			if got != tt.want {
				t.Errorf("expected %.2f, got %.2f", tt.want, got)
			}
		})
	}
}

func TestCalculateRange(t *testing.T) {
	high, low, err := CalculateRange(points(50, 10, 30, 20), 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if high != 31 || low != 9 {
		t.Errorf("expected high 31 low 9, got %.0f %.0f", high, low)
	}

	if _, _, err := CalculateRange(nil, 3); err == nil {
		t.Error("expected error for empty input")
	}
}

func TestCalculate52WeekRange_ShortSeries(t *testing.T) {
	high, low, err := Calculate52WeekRange(points(5, 7, 6))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if high != 8 || low != 4 {
		t.Errorf("expected high 8 low 4, got %.0f %.0f", high, low)
	}
}
