package analyzers

import (
	"finstat_engine/pkg/core/framework"
	"finstat_engine/pkg/models"
)

// CashFlowAnalyzer measures how well reported earnings convert to cash
// and how much operating cash covers short-term obligations.
type CashFlowAnalyzer struct {
	ocfToNetIncome framework.Benchmark
	ocfRatio       framework.Benchmark
	fcfMargin      framework.Benchmark
}

func NewCashFlowAnalyzer() *CashFlowAnalyzer {
	return &CashFlowAnalyzer{
		ocfToNetIncome: framework.Benchmark{Excellent: 1.2, Good: 1.0, Adequate: 0.8, Poor: 0.5},
		ocfRatio:       framework.Benchmark{Excellent: 0.4, Good: 0.3, Adequate: 0.2, Poor: 0.1},
		fcfMargin:      framework.Benchmark{Excellent: 0.15, Good: 0.10, Adequate: 0.05, Poor: 0.0},
	}
}

func (a *CashFlowAnalyzer) Name() string { return "cash_flow" }

func (a *CashFlowAnalyzer) Analyze(stmts *models.FinancialStatements, comparative []*models.FinancialStatements, industry map[string]models.IndustryStats) []models.AnalysisResult {
	if stmts == nil || !stmts.HasCF("operating_cash_flow") {
		return nil
	}

	metrics := a.KeyMetrics(stmts)
	var results []models.AnalysisResult

	if stmts.HasIS("net_income") && stmts.IS("net_income") != 0 {
		r := classify(models.CategoryQuality, "ocf_to_net_income", metrics["ocf_to_net_income"],
			a.ocfToNetIncome, true, "operating cash flow / net income")
		if stmts.IS("net_income") > 0 && stmts.CF("operating_cash_flow") < 0 {
			r.Risk = models.RiskVeryHigh
			r.Interpretation = "positive earnings with negative operating cash flow"
			r.Recommendations = append(r.Recommendations, "Investigate accrual composition of reported earnings")
		}
		applyIndustry(&r, industry)
		results = append(results, r)
	}

	if stmts.HasBS("current_liabilities") && stmts.BS("current_liabilities") != 0 {
		r := classify(models.CategoryLiquidity, "ocf_ratio", metrics["ocf_ratio"],
			a.ocfRatio, true, "operating cash flow / current liabilities")
		applyIndustry(&r, industry)
		results = append(results, r)
	}

	if stmts.HasIS("revenue") && stmts.IS("revenue") != 0 {
		r := classify(models.CategoryQuality, "fcf_margin", metrics["fcf_margin"],
			a.fcfMargin, true, "(operating cash flow - capex) / revenue")
		applyIndustry(&r, industry)
		results = append(results, r)
	}

	if len(comparative) > 0 {
		series, periods := seriesOf(stmts, comparative, func(fs *models.FinancialStatements) float64 {
			return fs.CF("operating_cash_flow")
		})
		if trend := framework.CalculateTrend(series, periods); trend != nil {
			for i := range results {
				if results[i].Metric == "ocf_to_net_income" {
					results[i].Trend = trend.Trend
				}
			}
		}
	}

	return results
}

func (a *CashFlowAnalyzer) KeyMetrics(stmts *models.FinancialStatements) map[string]float64 {
	if stmts == nil {
		return map[string]float64{}
	}
	ocf := stmts.CF("operating_cash_flow")
	fcf := ocf - stmts.CF("capital_expenditures")
	return map[string]float64{
		"ocf_to_net_income": framework.SafeDivide(ocf, stmts.IS("net_income"), 0),
		"ocf_ratio":         framework.SafeDivide(ocf, stmts.BS("current_liabilities"), 0),
		"free_cash_flow":    fcf,
		"fcf_margin":        framework.SafeDivide(fcf, stmts.IS("revenue"), 0),
	}
}
