// Package analyzers defines the contract every specialized analyzer
// implements plus the reference analyzers that ship with the engine:
// income statement, balance sheet, cash flow, and efficiency.
//
// Analyzers are pure functions of their inputs. Missing optional fields
// degrade to zero via SafeDivide; an analyzer that cannot compute a
// metric simply omits that result rather than failing.
package analyzers

import (
	"finstat_engine/pkg/core/framework"
	"finstat_engine/pkg/models"
)

// Analyzer is the capability set the integrated engine consumes.
// Comparative data arrives ordered oldest to most recent; the element at
// the tail is the immediately preceding period.
type Analyzer interface {
	Name() string
	Analyze(stmts *models.FinancialStatements, comparative []*models.FinancialStatements, industry map[string]models.IndustryStats) []models.AnalysisResult
	KeyMetrics(stmts *models.FinancialStatements) map[string]float64
}

// Defaults returns the reference analyzer set in registration order.
func Defaults() []Analyzer {
	return []Analyzer{
		NewIncomeStatementAnalyzer(),
		NewBalanceSheetAnalyzer(),
		NewCashFlowAnalyzer(),
		NewEfficiencyAnalyzer(),
	}
}

// classify builds a fully-populated result for a benchmark-classified
// metric. Shared by all reference analyzers.
func classify(category models.Category, metric string, value float64, b framework.Benchmark, higherIsBetter bool, methodology string) models.AnalysisResult {
	risk := framework.AssessRiskLevel(value, b, higherIsBetter)
	return models.AnalysisResult{
		Category:            category,
		Metric:              metric,
		Value:               value,
		Risk:                risk,
		Interpretation:      framework.Interpret(metric, value, risk),
		BenchmarkComparison: framework.BenchmarkComparison(value, b, higherIsBetter),
		Methodology:         methodology,
	}
}

// applyIndustry annotates a result with industry context when quartile
// stats exist for the metric.
func applyIndustry(r *models.AnalysisResult, industry map[string]models.IndustryStats) {
	if len(industry) == 0 {
		return
	}
	if text := framework.IndustryComparison(r.Metric, r.Value, industry); text != "" {
		comparison := text
		if r.BenchmarkComparison != "" {
			comparison = r.BenchmarkComparison + "; " + text
		}
		r.BenchmarkComparison = comparison
	}
}

// seriesOf collects one metric across comparative periods plus the
// current one, oldest first, using the provided extractor.
func seriesOf(stmts *models.FinancialStatements, comparative []*models.FinancialStatements, extract func(*models.FinancialStatements) float64) (values []float64, periods []string) {
	for _, prior := range comparative {
		values = append(values, extract(prior))
		periods = append(periods, prior.Period.Label)
	}
	values = append(values, extract(stmts))
	periods = append(periods, stmts.Period.Label)
	return values, periods
}
