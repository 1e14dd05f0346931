// Package framework is the shared base every specialized analyzer builds
// on: benchmark-driven risk classification, trend and volatility math,
// percentile ranking, data quality assessment, and the numeric-stability
// helpers that keep missing fields from becoming fatal.
//
// Nothing in this package returns an error for bad inputs; routines
// degrade to defaults and let downstream interpretation describe the
// degraded state.
package framework

import (
	"fmt"

	"finstat_engine/pkg/models"
)

// Benchmark holds named thresholds for one metric.
type Benchmark struct {
	Excellent float64
	Good      float64
	Adequate  float64
	Poor      float64
}

// SafeDivide returns numerator/denominator, or def when the denominator
// is zero. Every ratio computation in the system routes through this.
func SafeDivide(numerator, denominator, def float64) float64 {
	if denominator == 0 {
		return def
	}
	return numerator / denominator
}

// AssessRiskLevel classifies a metric value against a benchmark.
// Thresholds compare in excellent -> good -> adequate order; clearing
// excellent or good yields low risk, adequate yields moderate, anything
// else high. When higherIsBetter is false the comparisons flip to <=.
func AssessRiskLevel(value float64, b Benchmark, higherIsBetter bool) models.RiskLevel {
	if higherIsBetter {
		switch {
		case value >= b.Excellent, value >= b.Good:
			return models.RiskLow
		case value >= b.Adequate:
			return models.RiskModerate
		default:
			return models.RiskHigh
		}
	}
	switch {
	case value <= b.Excellent, value <= b.Good:
		return models.RiskLow
	case value <= b.Adequate:
		return models.RiskModerate
	default:
		return models.RiskHigh
	}
}

// PercentileRank ranks a value against a peer set as
// 100 * count(peer < value) / count(peers). Nil for an empty peer set.
func PercentileRank(value float64, peers []float64) *float64 {
	if len(peers) == 0 {
		return nil
	}
	below := 0
	for _, p := range peers {
		if p < value {
			below++
		}
	}
	rank := 100 * float64(below) / float64(len(peers))
	return &rank
}

// Interpret produces the short templated interpretation string attached
// to an AnalysisResult.
func Interpret(metric string, value float64, risk models.RiskLevel) string {
	switch risk {
	case models.RiskLow:
		return fmt.Sprintf("%s of %.2f is healthy", metric, value)
	case models.RiskModerate:
		return fmt.Sprintf("%s of %.2f is adequate but worth monitoring", metric, value)
	case models.RiskHigh:
		return fmt.Sprintf("%s of %.2f signals elevated risk", metric, value)
	default:
		return fmt.Sprintf("%s of %.2f signals severe risk", metric, value)
	}
}

// BenchmarkComparison renders the threshold context for a classified value.
func BenchmarkComparison(value float64, b Benchmark, higherIsBetter bool) string {
	direction := "above"
	if !higherIsBetter {
		direction = "below"
	}
	return fmt.Sprintf("%.2f vs benchmarks excellent %s %.2f, good %s %.2f, adequate %s %.2f",
		value, direction, b.Excellent, direction, b.Good, direction, b.Adequate)
}

// IndustryComparison places a value against external quartile stats.
// Empty string when the metric has no industry data.
func IndustryComparison(metric string, value float64, industry map[string]models.IndustryStats) string {
	stats, ok := industry[metric]
	if !ok {
		return ""
	}
	switch {
	case value >= stats.Q3:
		return fmt.Sprintf("top quartile vs industry (median %.2f)", stats.Median)
	case value >= stats.Median:
		return fmt.Sprintf("above industry median of %.2f", stats.Median)
	case value >= stats.Q1:
		return fmt.Sprintf("below industry median of %.2f", stats.Median)
	default:
		return fmt.Sprintf("bottom quartile vs industry (median %.2f)", stats.Median)
	}
}
