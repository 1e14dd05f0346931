package framework

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"finstat_engine/pkg/models"
)

// Trend labels produced by CalculateTrend.
const (
	TrendStrongUpward     = "strong upward"
	TrendModerateUpward   = "moderate upward"
	TrendStable           = "stable"
	TrendModerateDownward = "moderate downward"
	TrendStrongDownward   = "strong downward"
	TrendImproving        = "improving"
	TrendDeclining        = "declining"
)

// CalculateTrend computes growth, volatility and direction over a series.
// Requires at least two values; returns nil otherwise. The inputs are
// never mutated, so repeated calls on the same series yield identical
// results.
//
// CAGR: two points use the simple ratio minus one; three or more use
// (last/first)^(1/(n-1)) - 1. Undefined (nil) when the first value is zero.
// Volatility is the population standard deviation over the mean, zero when
// the mean is zero. Direction for three or more points comes from a
// degree-1 least-squares fit; for exactly two points, last vs first.
func CalculateTrend(values []float64, periods []string) *models.ComparativeAnalysis {
	n := len(values)
	if n < 2 {
		return nil
	}

	out := &models.ComparativeAnalysis{
		Periods: append([]string(nil), periods...),
		Values:  append([]float64(nil), values...),
	}

	first, last := values[0], values[n-1]
	if first != 0 {
		var growth float64
		if n == 2 {
			growth = last/first - 1
		} else {
			growth = math.Pow(last/first, 1/float64(n-1)) - 1
		}
		out.GrowthRate = &growth
	}

	mean := stat.Mean(values, nil)
	if mean != 0 {
		out.Volatility = stat.PopStdDev(values, nil) / mean
	}

	if n == 2 {
		switch {
		case last > first:
			out.Trend = TrendImproving
		case last < first:
			out.Trend = TrendDeclining
		default:
			out.Trend = TrendStable
		}
		return out
	}

	xs := make([]float64, n)
	for i := range xs {
		xs[i] = float64(i)
	}
	_, slope := stat.LinearRegression(xs, values, nil, false)

	base := math.Abs(mean)
	switch {
	case slope > 0.05*base:
		out.Trend = TrendStrongUpward
	case slope > 0.02*base:
		out.Trend = TrendModerateUpward
	case slope < -0.05*base:
		out.Trend = TrendStrongDownward
	case slope < -0.02*base:
		out.Trend = TrendModerateDownward
	default:
		out.Trend = TrendStable
	}
	return out
}
