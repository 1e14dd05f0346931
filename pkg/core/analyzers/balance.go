package analyzers

import (
	"math"

	"finstat_engine/pkg/core/framework"
	"finstat_engine/pkg/models"
)

// BalanceSheetAnalyzer covers the liquidity and solvency axes: short-term
// coverage ratios and the leverage structure.
type BalanceSheetAnalyzer struct {
	currentRatio     framework.Benchmark
	quickRatio       framework.Benchmark
	debtToEquity     framework.Benchmark
	debtRatio        framework.Benchmark
	interestCoverage framework.Benchmark
}

func NewBalanceSheetAnalyzer() *BalanceSheetAnalyzer {
	return &BalanceSheetAnalyzer{
		currentRatio:     framework.Benchmark{Excellent: 2.0, Good: 1.5, Adequate: 1.2, Poor: 1.0},
		quickRatio:       framework.Benchmark{Excellent: 1.5, Good: 1.0, Adequate: 0.8, Poor: 0.5},
		debtToEquity:     framework.Benchmark{Excellent: 0.3, Good: 0.5, Adequate: 1.0, Poor: 2.0},
		debtRatio:        framework.Benchmark{Excellent: 0.3, Good: 0.4, Adequate: 0.5, Poor: 0.6},
		interestCoverage: framework.Benchmark{Excellent: 8.0, Good: 5.0, Adequate: 3.0, Poor: 1.5},
	}
}

func (a *BalanceSheetAnalyzer) Name() string { return "balance_sheet" }

func (a *BalanceSheetAnalyzer) Analyze(stmts *models.FinancialStatements, comparative []*models.FinancialStatements, industry map[string]models.IndustryStats) []models.AnalysisResult {
	if stmts == nil || len(stmts.BalanceSheet) == 0 {
		return nil
	}

	metrics := a.KeyMetrics(stmts)
	var results []models.AnalysisResult

	add := func(category models.Category, metric string, b framework.Benchmark, higher bool, methodology string) *models.AnalysisResult {
		value, ok := metrics[metric]
		if !ok {
			return nil
		}
		r := classify(category, metric, value, b, higher, methodology)
		applyIndustry(&r, industry)
		results = append(results, r)
		return &results[len(results)-1]
	}

	if stmts.HasBS("current_assets") && stmts.HasBS("current_liabilities") {
		if r := add(models.CategoryLiquidity, "current_ratio", a.currentRatio, true, "current assets / current liabilities"); r != nil {
			if metrics["working_capital"] < 0 {
				r.Limitations = append(r.Limitations, "negative working capital")
			}
		}
		add(models.CategoryLiquidity, "quick_ratio", a.quickRatio, true, "(current assets - inventory) / current liabilities")
	}

	if stmts.HasBS("total_equity") {
		if stmts.BS("total_equity") <= 0 {
			results = append(results, models.AnalysisResult{
				Category:       models.CategorySolvency,
				Metric:         "debt_to_equity",
				Value:          metrics["debt_to_equity"],
				Risk:           models.RiskVeryHigh,
				Interpretation: "total equity is zero or negative; the capital structure is impaired",
				Methodology:    "total debt / total equity",
			})
		} else {
			add(models.CategorySolvency, "debt_to_equity", a.debtToEquity, false, "total debt / total equity")
		}
	}
	if stmts.HasBS("total_assets") && stmts.HasBS("total_liabilities") {
		add(models.CategorySolvency, "debt_ratio", a.debtRatio, false, "total liabilities / total assets")
	}
	if stmts.HasIS("interest_expense") && stmts.IS("interest_expense") != 0 {
		add(models.CategorySolvency, "interest_coverage", a.interestCoverage, true, "operating income / interest expense")
	}

	return results
}

func (a *BalanceSheetAnalyzer) KeyMetrics(stmts *models.FinancialStatements) map[string]float64 {
	if stmts == nil {
		return map[string]float64{}
	}
	ca := stmts.BS("current_assets")
	cl := stmts.BS("current_liabilities")
	debt := stmts.BS("total_debt")
	if debt == 0 {
		debt = stmts.BS("short_term_debt") + stmts.BS("long_term_debt")
	}
	return map[string]float64{
		"current_ratio":     framework.SafeDivide(ca, cl, 0),
		"quick_ratio":       framework.SafeDivide(ca-stmts.BS("inventory"), cl, 0),
		"working_capital":   ca - cl,
		"debt_to_equity":    framework.SafeDivide(debt, stmts.BS("total_equity"), 0),
		"debt_ratio":        framework.SafeDivide(stmts.BS("total_liabilities"), stmts.BS("total_assets"), 0),
		"interest_coverage": framework.SafeDivide(stmts.IS("operating_income"), math.Abs(stmts.IS("interest_expense")), 0),
	}
}
