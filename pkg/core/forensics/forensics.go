package forensics

import (
	"fmt"

	"finstat_engine/pkg/core/framework"
	"finstat_engine/pkg/models"
)

// Detector packages the quality and manipulation checks behind the
// standard analyzer contract so the integrated engine can consume them
// like any other analyzer. Detections that need comparative data skip
// silently when none is supplied.
type Detector struct{}

func NewDetector() *Detector {
	return &Detector{}
}

func (d *Detector) Name() string { return "forensics" }

func (d *Detector) Analyze(stmts *models.FinancialStatements, comparative []*models.FinancialStatements, industry map[string]models.IndustryStats) []models.AnalysisResult {
	if stmts == nil {
		return nil
	}

	var results []models.AnalysisResult

	ratio := CashFlowAccrualRatio(stmts)
	label, risk := ClassifyAccrualRatio(ratio)
	results = append(results, models.AnalysisResult{
		Category:       models.CategoryQuality,
		Metric:         "accrual_ratio",
		Value:          ratio,
		Risk:           risk,
		Interpretation: fmt.Sprintf("accrual ratio of %.3f is %s", ratio, label),
		Methodology:    "(net income - operating cash flow) / total assets",
	})

	var prior *models.FinancialStatements
	if len(comparative) > 0 {
		prior = comparative[len(comparative)-1]
	}

	if prior != nil {
		bsRatio := BalanceSheetAccrualRatio(stmts, prior)
		bsLabel, bsRisk := ClassifyAccrualRatio(bsRatio)
		results = append(results, models.AnalysisResult{
			Category:       models.CategoryQuality,
			Metric:         "balance_sheet_accrual_ratio",
			Value:          bsRatio,
			Risk:           bsRisk,
			Interpretation: fmt.Sprintf("balance sheet accrual ratio of %.3f is %s", bsRatio, bsLabel),
			Methodology:    "change in net operating assets / average net operating assets",
		})
	}

	if m := ComputeBeneish(stmts, prior); m != nil {
		results = append(results, models.AnalysisResult{
			Category:       models.CategoryQuality,
			Metric:         "beneish_m_score",
			Value:          m.Score,
			Risk:           m.Risk,
			Interpretation: fmt.Sprintf("M-Score of %.2f indicates %s manipulation risk", m.Score, string(m.Risk)),
			Methodology:    "8-factor Beneish discriminant over two consecutive periods",
			Limitations:    []string{"components with undefined denominators default to neutral values"},
		})
	}

	series := netIncomeSeries(stmts, comparative)
	if p := EarningsPersistence(series); p != nil {
		risk := models.RiskLow
		if *p < 0.3 {
			risk = models.RiskModerate
		}
		if *p < 0 {
			risk = models.RiskHigh
		}
		results = append(results, models.AnalysisResult{
			Category:       models.CategoryQuality,
			Metric:         "earnings_persistence",
			Value:          *p,
			Risk:           risk,
			Interpretation: fmt.Sprintf("lag-1 earnings autocorrelation of %.2f", *p),
			Methodology:    "Pearson autocorrelation of net income at lag 1",
		})
	}

	if prior != nil {
		flags := EvaluateRedFlags(stmts, prior)
		severity, risk := ClassifyRedFlags(len(flags))
		r := models.AnalysisResult{
			Category:       models.CategoryQuality,
			Metric:         "red_flag_count",
			Value:          float64(len(flags)),
			Risk:           risk,
			Interpretation: fmt.Sprintf("%d red flags triggered (%s)", len(flags), severity),
			Methodology:    "fixed heuristic rule set over current and prior period",
		}
		for _, f := range flags {
			r.Limitations = append(r.Limitations, f.Description)
		}
		if len(flags) >= 2 {
			r.Recommendations = append(r.Recommendations, "Review footnotes and audit history before relying on reported earnings")
		}
		results = append(results, r)
	}

	return results
}

func (d *Detector) KeyMetrics(stmts *models.FinancialStatements) map[string]float64 {
	if stmts == nil {
		return map[string]float64{}
	}
	return map[string]float64{
		"accrual_ratio": CashFlowAccrualRatio(stmts),
		"cash_conversion": framework.SafeDivide(
			stmts.CF("operating_cash_flow"), stmts.IS("net_income"), 0),
	}
}

func netIncomeSeries(stmts *models.FinancialStatements, comparative []*models.FinancialStatements) []float64 {
	var series []float64
	for _, prior := range comparative {
		series = append(series, prior.IS("net_income"))
	}
	return append(series, stmts.IS("net_income"))
}
