package framework

import (
	"testing"

	"finstat_engine/pkg/models"
)

func TestSafeDivide(t *testing.T) {
	if got := SafeDivide(10, 4, 0); got != 2.5 {
		t.Errorf("Expected 2.5, got %f", got)
	}
	if got := SafeDivide(10, 0, 0); got != 0 {
		t.Errorf("Zero denominator should return default 0, got %f", got)
	}
	if got := SafeDivide(10, 0, -1); got != -1 {
		t.Errorf("Zero denominator should return default -1, got %f", got)
	}
	if got := SafeDivide(-10, 4, 0); got != -2.5 {
		t.Errorf("Expected -2.5, got %f", got)
	}
}

func TestAssessRiskLevelHigherIsBetter(t *testing.T) {
	// Current-ratio style benchmark.
	b := Benchmark{Excellent: 2.0, Good: 1.5, Adequate: 1.2, Poor: 1.0}

	if got := AssessRiskLevel(2.5, b, true); got != models.RiskLow {
		t.Errorf("2.5 vs excellent 2.0 should be low, got %s", got)
	}
	if got := AssessRiskLevel(1.6, b, true); got != models.RiskLow {
		t.Errorf("1.6 clears good 1.5, should be low, got %s", got)
	}
	if got := AssessRiskLevel(1.3, b, true); got != models.RiskModerate {
		t.Errorf("1.3 clears only adequate 1.2, should be moderate, got %s", got)
	}
	if got := AssessRiskLevel(0.5, b, true); got != models.RiskHigh {
		t.Errorf("0.5 clears nothing, should be high, got %s", got)
	}
	// Boundary: exactly at the adequate threshold still counts.
	if got := AssessRiskLevel(1.2, b, true); got != models.RiskModerate {
		t.Errorf("1.2 at adequate boundary should be moderate, got %s", got)
	}
}

func TestAssessRiskLevelLowerIsBetter(t *testing.T) {
	// Debt-to-equity style benchmark: smaller is safer.
	b := Benchmark{Excellent: 0.3, Good: 0.5, Adequate: 1.0, Poor: 2.0}

	if got := AssessRiskLevel(0.2, b, false); got != models.RiskLow {
		t.Errorf("0.2 under excellent 0.3 should be low, got %s", got)
	}
	if got := AssessRiskLevel(0.8, b, false); got != models.RiskModerate {
		t.Errorf("0.8 under adequate 1.0 should be moderate, got %s", got)
	}
	if got := AssessRiskLevel(6.0, b, false); got != models.RiskHigh {
		t.Errorf("6.0 over everything should be high, got %s", got)
	}
}

func TestPercentileRank(t *testing.T) {
	if got := PercentileRank(5, nil); got != nil {
		t.Errorf("Empty peer set should yield nil, got %f", *got)
	}

	// 3 of 4 peers below 5 => 75.
	peers := []float64{1, 2, 3, 10}
	got := PercentileRank(5, peers)
	if got == nil || *got != 75 {
		t.Errorf("Expected percentile 75, got %v", got)
	}

	// Nothing below => 0; everything below => 100.
	if got := PercentileRank(0, peers); got == nil || *got != 0 {
		t.Errorf("Expected percentile 0, got %v", got)
	}
	if got := PercentileRank(11, peers); got == nil || *got != 100 {
		t.Errorf("Expected percentile 100, got %v", got)
	}

	// Ties do not count as "below".
	if got := PercentileRank(3, peers); got == nil || *got != 50 {
		t.Errorf("Expected percentile 50 with a tie at 3, got %v", got)
	}
}

func TestIndustryComparison(t *testing.T) {
	industry := map[string]models.IndustryStats{
		"net_margin": {Median: 0.08, Q1: 0.04, Q3: 0.12},
	}

	if got := IndustryComparison("unknown_metric", 1.0, industry); got != "" {
		t.Errorf("Unknown metric should yield empty string, got %q", got)
	}
	if got := IndustryComparison("net_margin", 0.15, industry); got != "top quartile vs industry (median 0.08)" {
		t.Errorf("Unexpected top-quartile text: %q", got)
	}
	if got := IndustryComparison("net_margin", 0.02, industry); got != "bottom quartile vs industry (median 0.08)" {
		t.Errorf("Unexpected bottom-quartile text: %q", got)
	}
}
