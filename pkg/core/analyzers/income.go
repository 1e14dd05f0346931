package analyzers

import (
	"finstat_engine/pkg/core/framework"
	"finstat_engine/pkg/models"
)

// IncomeStatementAnalyzer measures profitability: margins and returns on
// assets and equity, with trend context when comparatives exist.
type IncomeStatementAnalyzer struct {
	grossMargin     framework.Benchmark
	operatingMargin framework.Benchmark
	netMargin       framework.Benchmark
	returnOnAssets  framework.Benchmark
	returnOnEquity  framework.Benchmark
}

func NewIncomeStatementAnalyzer() *IncomeStatementAnalyzer {
	return &IncomeStatementAnalyzer{
		grossMargin:     framework.Benchmark{Excellent: 0.40, Good: 0.30, Adequate: 0.20, Poor: 0.10},
		operatingMargin: framework.Benchmark{Excellent: 0.20, Good: 0.15, Adequate: 0.10, Poor: 0.05},
		netMargin:       framework.Benchmark{Excellent: 0.15, Good: 0.10, Adequate: 0.05, Poor: 0.02},
		returnOnAssets:  framework.Benchmark{Excellent: 0.10, Good: 0.07, Adequate: 0.04, Poor: 0.02},
		returnOnEquity:  framework.Benchmark{Excellent: 0.20, Good: 0.15, Adequate: 0.10, Poor: 0.05},
	}
}

func (a *IncomeStatementAnalyzer) Name() string { return "income_statement" }

func (a *IncomeStatementAnalyzer) Analyze(stmts *models.FinancialStatements, comparative []*models.FinancialStatements, industry map[string]models.IndustryStats) []models.AnalysisResult {
	if stmts == nil || !stmts.HasIS("revenue") {
		return nil
	}

	metrics := a.KeyMetrics(stmts)
	var results []models.AnalysisResult

	add := func(metric string, b framework.Benchmark, methodology string) {
		value, ok := metrics[metric]
		if !ok {
			return
		}
		r := classify(models.CategoryProfitability, metric, value, b, true, methodology)
		if stmts.IS("revenue") <= 0 {
			r.Limitations = append(r.Limitations, "revenue is zero or negative; margin is not meaningful")
		}
		applyIndustry(&r, industry)
		results = append(results, r)
	}

	add("gross_margin", a.grossMargin, "gross profit / revenue")
	add("operating_margin", a.operatingMargin, "operating income / revenue")
	add("net_margin", a.netMargin, "net income / revenue")
	add("return_on_assets", a.returnOnAssets, "net income / total assets")
	add("return_on_equity", a.returnOnEquity, "net income / total equity")

	if len(comparative) > 0 {
		revSeries, periods := seriesOf(stmts, comparative, func(fs *models.FinancialStatements) float64 {
			return fs.IS("revenue")
		})
		if trend := framework.CalculateTrend(revSeries, periods); trend != nil {
			for i := range results {
				if results[i].Metric == "net_margin" || results[i].Metric == "gross_margin" {
					results[i].Trend = trend.Trend
				}
			}
		}
	}

	return results
}

func (a *IncomeStatementAnalyzer) KeyMetrics(stmts *models.FinancialStatements) map[string]float64 {
	if stmts == nil {
		return map[string]float64{}
	}
	rev := stmts.IS("revenue")
	return map[string]float64{
		"gross_margin":     framework.SafeDivide(stmts.IS("gross_profit"), rev, 0),
		"operating_margin": framework.SafeDivide(stmts.IS("operating_income"), rev, 0),
		"net_margin":       framework.SafeDivide(stmts.IS("net_income"), rev, 0),
		"return_on_assets": framework.SafeDivide(stmts.IS("net_income"), stmts.BS("total_assets"), 0),
		"return_on_equity": framework.SafeDivide(stmts.IS("net_income"), stmts.BS("total_equity"), 0),
	}
}
