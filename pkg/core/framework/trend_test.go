package framework

import (
	"math"
	"testing"
)

func TestCalculateTrendTooShort(t *testing.T) {
	if got := CalculateTrend(nil, nil); got != nil {
		t.Errorf("Empty series should yield nil")
	}
	if got := CalculateTrend([]float64{100}, []string{"FY1"}); got != nil {
		t.Errorf("Single-point series should yield nil")
	}
}

func TestCalculateTrendTwoPoints(t *testing.T) {
	// 100 -> 121 over one step: growth = 121/100 - 1 = 0.21.
	trend := CalculateTrend([]float64{100, 121}, []string{"FY1", "FY2"})
	if trend == nil {
		t.Fatalf("Expected a trend for two points")
	}
	if trend.GrowthRate == nil || math.Abs(*trend.GrowthRate-0.21) > 1e-9 {
		t.Errorf("Expected growth 0.21, got %v", trend.GrowthRate)
	}
	if trend.Trend != TrendImproving {
		t.Errorf("Expected %q, got %q", TrendImproving, trend.Trend)
	}

	down := CalculateTrend([]float64{121, 100}, []string{"FY1", "FY2"})
	if down.Trend != TrendDeclining {
		t.Errorf("Expected %q, got %q", TrendDeclining, down.Trend)
	}
}

func TestCalculateTrendCAGR(t *testing.T) {
	// 100 -> 110 -> 121 is exactly 10% compounded:
	// (121/100)^(1/2) - 1 = 1.1 - 1 = 0.10.
	trend := CalculateTrend([]float64{100, 110, 121}, []string{"FY1", "FY2", "FY3"})
	if trend == nil {
		t.Fatalf("Expected a trend")
	}
	if trend.GrowthRate == nil || math.Abs(*trend.GrowthRate-0.10) > 1e-6 {
		t.Errorf("Expected CAGR 0.10, got %v", trend.GrowthRate)
	}
	// Least-squares slope here is 10.5, well above 5% of the mean
	// (0.05 * 110.33 = 5.52), so the direction is strongly upward.
	if trend.Trend != TrendStrongUpward {
		t.Errorf("Expected %q, got %q", TrendStrongUpward, trend.Trend)
	}
	if trend.Volatility <= 0 {
		t.Errorf("Expected positive volatility, got %f", trend.Volatility)
	}
}

func TestCalculateTrendZeroBase(t *testing.T) {
	// Growth from a zero base is undefined, not infinite.
	trend := CalculateTrend([]float64{0, 50, 100}, []string{"FY1", "FY2", "FY3"})
	if trend == nil {
		t.Fatalf("Expected a trend")
	}
	if trend.GrowthRate != nil {
		t.Errorf("Growth from zero base should be nil, got %f", *trend.GrowthRate)
	}
}

func TestCalculateTrendStable(t *testing.T) {
	trend := CalculateTrend([]float64{100, 100, 100}, []string{"FY1", "FY2", "FY3"})
	if trend == nil {
		t.Fatalf("Expected a trend")
	}
	if trend.Trend != TrendStable {
		t.Errorf("Flat series should be stable, got %q", trend.Trend)
	}
	if trend.GrowthRate == nil || *trend.GrowthRate != 0 {
		t.Errorf("Flat series should have zero growth, got %v", trend.GrowthRate)
	}
	if trend.Volatility != 0 {
		t.Errorf("Flat series should have zero volatility, got %f", trend.Volatility)
	}
}

func TestCalculateTrendDeterministic(t *testing.T) {
	values := []float64{80, 95, 90, 120}
	periods := []string{"FY1", "FY2", "FY3", "FY4"}

	a := CalculateTrend(values, periods)
	b := CalculateTrend(values, periods)
	if a == nil || b == nil {
		t.Fatalf("Expected trends")
	}
	if a.Trend != b.Trend || a.Volatility != b.Volatility {
		t.Errorf("Repeated calls diverged: %+v vs %+v", a, b)
	}
	if a.GrowthRate == nil || b.GrowthRate == nil || *a.GrowthRate != *b.GrowthRate {
		t.Errorf("Growth rates diverged")
	}
	// Inputs must not be mutated.
	if values[0] != 80 || values[3] != 120 {
		t.Errorf("Input slice was mutated: %v", values)
	}
}
