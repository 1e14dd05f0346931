package analyzers

import (
	"finstat_engine/pkg/core/framework"
	"finstat_engine/pkg/models"
)

// EfficiencyAnalyzer covers the activity axis: how hard assets,
// receivables and inventory work relative to revenue.
type EfficiencyAnalyzer struct {
	assetTurnover       framework.Benchmark
	receivablesTurnover framework.Benchmark
	inventoryTurnover   framework.Benchmark
}

func NewEfficiencyAnalyzer() *EfficiencyAnalyzer {
	return &EfficiencyAnalyzer{
		assetTurnover:       framework.Benchmark{Excellent: 1.5, Good: 1.0, Adequate: 0.7, Poor: 0.4},
		receivablesTurnover: framework.Benchmark{Excellent: 12, Good: 8, Adequate: 6, Poor: 4},
		inventoryTurnover:   framework.Benchmark{Excellent: 8, Good: 6, Adequate: 4, Poor: 2},
	}
}

func (a *EfficiencyAnalyzer) Name() string { return "efficiency" }

func (a *EfficiencyAnalyzer) Analyze(stmts *models.FinancialStatements, comparative []*models.FinancialStatements, industry map[string]models.IndustryStats) []models.AnalysisResult {
	if stmts == nil || !stmts.HasIS("revenue") {
		return nil
	}

	metrics := a.KeyMetrics(stmts)
	var results []models.AnalysisResult

	add := func(metric string, b framework.Benchmark, methodology string, applicable bool) {
		if !applicable {
			return
		}
		r := classify(models.CategoryActivity, metric, metrics[metric], b, true, methodology)
		applyIndustry(&r, industry)
		results = append(results, r)
	}

	add("asset_turnover", a.assetTurnover, "revenue / total assets", stmts.HasBS("total_assets"))
	add("receivables_turnover", a.receivablesTurnover, "revenue / accounts receivable",
		stmts.HasBS("accounts_receivable") && stmts.BS("accounts_receivable") != 0)
	add("inventory_turnover", a.inventoryTurnover, "cost of sales / inventory",
		stmts.HasBS("inventory") && stmts.BS("inventory") != 0)

	if len(comparative) > 0 {
		series, periods := seriesOf(stmts, comparative, func(fs *models.FinancialStatements) float64 {
			return framework.SafeDivide(fs.IS("revenue"), fs.BS("total_assets"), 0)
		})
		if trend := framework.CalculateTrend(series, periods); trend != nil {
			for i := range results {
				if results[i].Metric == "asset_turnover" {
					results[i].Trend = trend.Trend
				}
			}
		}
	}

	return results
}

func (a *EfficiencyAnalyzer) KeyMetrics(stmts *models.FinancialStatements) map[string]float64 {
	if stmts == nil {
		return map[string]float64{}
	}
	rev := stmts.IS("revenue")
	return map[string]float64{
		"asset_turnover":       framework.SafeDivide(rev, stmts.BS("total_assets"), 0),
		"receivables_turnover": framework.SafeDivide(rev, stmts.BS("accounts_receivable"), 0),
		"inventory_turnover":   framework.SafeDivide(stmts.IS("cost_of_sales"), stmts.BS("inventory"), 0),
	}
}
