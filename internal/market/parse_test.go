package market

import (
	"math"
	"testing"

	"StockPulse/internal/model"
)

func TestToFloat(t *testing.T) {
	tests := []struct {
		in   interface{}
		want float64
	}{
		{"178.45", 178.45},
		{" 12 ", 12},
		{"1.33%", 1.33},
		{"-0.5", -0.5},
		{"None", 0},
		{"-", 0},
		{"", 0},
		{"NaN", 0},
		{"Inf", 0},
		{nil, 0},
		{42.0, 42},
		{true, 0},
	}
	for _, tt := range tests {
		if got := toFloat(tt.in); got != tt.want {
			t.Errorf("toFloat(%v): expected %v, got %v", tt.in, tt.want, got)
		}
	}
}

func TestToInt(t *testing.T) {
	tests := []struct {
		in   interface{}
		want int64
	}{
		{"48392847", 48392847},
		{"1.5e3", 1500},
		{"-10", 0},
		{"x", 0},
		{nil, 0},
		{math.Inf(1), 0},
	}
	for _, tt := range tests {
		if got := toInt(tt.in); got != tt.want {
			t.Errorf("toInt(%v): expected %d, got %d", tt.in, tt.want, got)
		}
	}
}

func TestSortDescending(t *testing.T) {
	points := []model.ChartPoint{
		{Timestamp: "2024-01-02 10:00:00"},
		{Timestamp: "2024-01-02T11:00:00Z"},
		{Timestamp: "2024-01-01 23:55:00"},
		{Timestamp: "2024-01-02 10:30:00"},
	}
	SortDescending(points)
	want := []string{"2024-01-02T11:00:00Z", "2024-01-02 10:30:00", "2024-01-02 10:00:00", "2024-01-01 23:55:00"}
	for i, w := range want {
		if points[i].Timestamp != w {
			t.Errorf("position %d: expected %s, got %s", i, w, points[i].Timestamp)
		}
	}
}

func TestCheckEnvelope_InformationWithoutLimit(t *testing.T) {
	body := map[string]interface{}{"Information": "The demo API key is for demo purposes only."}
	if err := checkEnvelope(body); err != nil {
		t.Errorf("expected informational notice to pass through, got %v", err)
	}
}
