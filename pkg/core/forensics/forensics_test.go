package forensics

import (
	"math"
	"testing"

	"finstat_engine/pkg/models"
)

func statements(fill func(fs *models.FinancialStatements)) *models.FinancialStatements {
	fs := models.NewFinancialStatements(
		models.CompanyInfo{Ticker: "TST"},
		models.FinancialPeriod{FiscalYear: 2025},
	)
	if fill != nil {
		fill(fs)
	}
	return fs
}

func TestCashFlowAccrualRatio(t *testing.T) {
	fs := statements(func(fs *models.FinancialStatements) {
		fs.IncomeStatement["net_income"] = 20
		fs.CashFlow["operating_cash_flow"] = 5
		fs.BalanceSheet["total_assets"] = 200
	})
	// (20 - 5) / 200 = 0.075.
	if got := CashFlowAccrualRatio(fs); math.Abs(got-0.075) > 1e-9 {
		t.Errorf("Expected accrual ratio 0.075, got %f", got)
	}
	// No assets: defaults to zero, never divides by zero.
	if got := CashFlowAccrualRatio(statements(nil)); got != 0 {
		t.Errorf("Expected 0 without total assets, got %f", got)
	}
}

func TestClassifyAccrualRatio(t *testing.T) {
	cases := []struct {
		ratio float64
		label string
		risk  models.RiskLevel
	}{
		{0.02, AccrualLow, models.RiskLow},
		{-0.04, AccrualLow, models.RiskLow}, // magnitude matters, not sign
		{0.07, AccrualModerate, models.RiskModerate},
		{0.12, AccrualHigh, models.RiskHigh},
		{0.20, AccrualHigh, models.RiskHigh}, // above the red-flag line but below extreme
		{0.25, AccrualConcerning, models.RiskVeryHigh},
		{-0.30, AccrualConcerning, models.RiskVeryHigh},
	}
	for _, c := range cases {
		label, risk := ClassifyAccrualRatio(c.ratio)
		if label != c.label || risk != c.risk {
			t.Errorf("ClassifyAccrualRatio(%f): expected %s/%s, got %s/%s",
				c.ratio, c.label, c.risk, label, risk)
		}
	}
}

func TestBalanceSheetAccrualRatio(t *testing.T) {
	prior := statements(func(fs *models.FinancialStatements) {
		fs.BalanceSheet["total_assets"] = 1000
		fs.BalanceSheet["cash_and_equivalents"] = 100
		fs.BalanceSheet["total_liabilities"] = 600
		fs.BalanceSheet["total_debt"] = 400
	})
	current := statements(func(fs *models.FinancialStatements) {
		fs.BalanceSheet["total_assets"] = 1200
		fs.BalanceSheet["cash_and_equivalents"] = 100
		fs.BalanceSheet["total_liabilities"] = 700
		fs.BalanceSheet["total_debt"] = 400
	})

	// Prior NOA: (1000-100) - (600-400) = 700.
	// Current NOA: (1200-100) - (700-400) = 800.
	// Ratio: (800-700) / 750 = 0.1333.
	got := BalanceSheetAccrualRatio(current, prior)
	if math.Abs(got-100.0/750.0) > 1e-9 {
		t.Errorf("Expected 0.1333, got %f", got)
	}

	if got := BalanceSheetAccrualRatio(current, nil); got != 0 {
		t.Errorf("Expected 0 without a prior period, got %f", got)
	}
}

func TestEarningsPersistence(t *testing.T) {
	if got := EarningsPersistence([]float64{10, 20}); got != nil {
		t.Errorf("Two periods are not enough, expected nil")
	}
	// Constant series has no variance to correlate.
	if got := EarningsPersistence([]float64{10, 10, 10, 10}); got != nil {
		t.Errorf("Constant series should yield nil, got %f", *got)
	}
	// A strictly linear series is perfectly persistent.
	got := EarningsPersistence([]float64{10, 20, 30, 40})
	if got == nil || math.Abs(*got-1.0) > 1e-9 {
		t.Errorf("Expected lag-1 autocorrelation 1.0, got %v", got)
	}
	// A perfectly alternating series is perfectly anti-persistent.
	got = EarningsPersistence([]float64{10, -10, 10, -10})
	if got == nil || math.Abs(*got+1.0) > 1e-9 {
		t.Errorf("Expected lag-1 autocorrelation -1.0, got %v", got)
	}
}

func TestComputeBeneishRequiresPrior(t *testing.T) {
	if got := ComputeBeneish(statements(nil), nil); got != nil {
		t.Errorf("M-Score without a prior period should be nil")
	}
}

func TestComputeBeneishNeutralDefaults(t *testing.T) {
	// Empty statements: every index denominator is zero, so every
	// component defaults to 1 except TATA which defaults to 0.
	res := ComputeBeneish(statements(nil), statements(nil))
	if res == nil {
		t.Fatalf("Expected a result")
	}
	for name, v := range map[string]float64{
		"DSRI": res.DSRI, "GMI": res.GMI, "AQI": res.AQI, "SGI": res.SGI,
		"DEPI": res.DEPI, "SGAI": res.SGAI, "LVGI": res.LVGI,
	} {
		if v != 1 {
			t.Errorf("%s should default to neutral 1, got %f", name, v)
		}
	}
	if res.TATA != 0 {
		t.Errorf("TATA should default to 0, got %f", res.TATA)
	}
	// All-neutral score:
	// -4.84 + 0.920 + 0.528 + 0.404 + 0.892 + 0.115 - 0.172 + 0.327 = -1.826.
	if math.Abs(res.Score-(-1.826)) > 1e-9 {
		t.Errorf("Expected all-neutral score -1.826, got %f", res.Score)
	}
	if res.Risk != models.RiskModerate {
		t.Errorf("-1.826 sits in the moderate band, got %s", res.Risk)
	}
}

func TestComputeBeneishGrowthWithAccruals(t *testing.T) {
	prior := statements(func(fs *models.FinancialStatements) {
		fs.IncomeStatement["revenue"] = 100
		fs.BalanceSheet["accounts_receivable"] = 10
	})
	current := statements(func(fs *models.FinancialStatements) {
		fs.IncomeStatement["revenue"] = 150
		fs.IncomeStatement["net_income"] = 20
		fs.CashFlow["operating_cash_flow"] = 5
		fs.BalanceSheet["accounts_receivable"] = 25
		fs.BalanceSheet["total_assets"] = 200
	})

	res := ComputeBeneish(current, prior)
	if res == nil {
		t.Fatalf("Expected a result")
	}

	// DSRI: (25/150) / (10/100) = 5/3.
	if math.Abs(res.DSRI-5.0/3.0) > 1e-9 {
		t.Errorf("Expected DSRI 1.6667, got %f", res.DSRI)
	}
	if res.SGI != 1.5 {
		t.Errorf("Expected SGI 1.5, got %f", res.SGI)
	}
	if math.Abs(res.TATA-0.075) > 1e-9 {
		t.Errorf("Expected TATA 0.075, got %f", res.TATA)
	}

	// M = -4.84 + 0.920*(5/3) + 0.528 + 0.404 + 0.892*1.5 + 0.115
	//     - 0.172 + 0.327 + 4.679*0.075 = -0.4157.
	if math.Abs(res.Score-(-0.415742)) > 1e-4 {
		t.Errorf("Expected score about -0.4157, got %f", res.Score)
	}
	if res.Score < -1.78 {
		t.Errorf("Aggressive growth with accruals must land above the moderate cutoff")
	}
	if res.Risk != models.RiskVeryHigh {
		t.Errorf("Score above -1.00 should be very high risk, got %s", res.Risk)
	}
}

func TestClassifyMScoreBands(t *testing.T) {
	cases := []struct {
		score float64
		risk  models.RiskLevel
	}{
		{-3.0, models.RiskLow},
		{-2.0, models.RiskModerate},
		{-1.5, models.RiskHigh},
		{-0.5, models.RiskVeryHigh},
		{1.0, models.RiskVeryHigh},
	}
	for _, c := range cases {
		if got := classifyMScore(c.score); got != c.risk {
			t.Errorf("classifyMScore(%f): expected %s, got %s", c.score, c.risk, got)
		}
	}
}

func TestEvaluateRedFlags(t *testing.T) {
	prior := statements(func(fs *models.FinancialStatements) {
		fs.IncomeStatement["revenue"] = 100
		fs.BalanceSheet["accounts_receivable"] = 10
		fs.BalanceSheet["inventory"] = 10
	})
	current := statements(func(fs *models.FinancialStatements) {
		fs.IncomeStatement["revenue"] = 160 // +60% growth
		fs.IncomeStatement["net_income"] = 10
		fs.CashFlow["operating_cash_flow"] = -5 // earnings without cash
		fs.BalanceSheet["accounts_receivable"] = 20
		fs.BalanceSheet["inventory"] = 10
		fs.Notes["q4_revenue_share"] = 0.40
		fs.Notes["auditor_change"] = 1.0
	})

	flags := EvaluateRedFlags(current, prior)
	codes := make(map[string]bool)
	for _, f := range flags {
		codes[f.Code] = true
	}
	for _, want := range []string{"earnings_without_cash", "extreme_revenue_growth", "q4_concentration", "auditor_change"} {
		if !codes[want] {
			t.Errorf("Expected flag %s, got %v", want, flags)
		}
	}
	// AR grew 100% vs revenue 60%: gap 40pts exceeds 25pts.
	if !codes["receivables_outpace_revenue"] {
		t.Errorf("Expected receivables_outpace_revenue, got %v", flags)
	}
	// Inventory is flat: no buildup flag.
	if codes["inventory_buildup"] {
		t.Errorf("Flat inventory must not flag, got %v", flags)
	}
}

func TestEvaluateRedFlagsNeedsPrior(t *testing.T) {
	if flags := EvaluateRedFlags(statements(nil), nil); flags != nil {
		t.Errorf("Rule set without a prior period should be skipped")
	}
}

func TestClassifyRedFlags(t *testing.T) {
	cases := []struct {
		count    int
		severity string
		risk     models.RiskLevel
	}{
		{0, SeverityClean, models.RiskLow},
		{1, SeverityMinor, models.RiskModerate},
		{2, SeverityModerate, models.RiskHigh},
		{3, SeverityModerate, models.RiskHigh},
		{4, SeverityHigh, models.RiskVeryHigh},
		{7, SeverityHigh, models.RiskVeryHigh},
	}
	for _, c := range cases {
		severity, risk := ClassifyRedFlags(c.count)
		if severity != c.severity || risk != c.risk {
			t.Errorf("ClassifyRedFlags(%d): expected %s/%s, got %s/%s",
				c.count, c.severity, c.risk, severity, risk)
		}
	}
}

func TestDetectorAnalyze(t *testing.T) {
	prior2 := statements(func(fs *models.FinancialStatements) {
		fs.IncomeStatement["net_income"] = 80
		fs.IncomeStatement["revenue"] = 900
	})
	prior1 := statements(func(fs *models.FinancialStatements) {
		fs.IncomeStatement["net_income"] = 90
		fs.IncomeStatement["revenue"] = 950
	})
	current := statements(func(fs *models.FinancialStatements) {
		fs.IncomeStatement["net_income"] = 100
		fs.IncomeStatement["revenue"] = 1000
		fs.CashFlow["operating_cash_flow"] = 110
		fs.BalanceSheet["total_assets"] = 2000
	})

	results := NewDetector().Analyze(current, []*models.FinancialStatements{prior2, prior1}, nil)

	metrics := make(map[string]models.AnalysisResult)
	for _, r := range results {
		metrics[r.Metric] = r
		if r.Category != models.CategoryQuality {
			t.Errorf("Forensic results belong to the quality category, got %s for %s", r.Category, r.Metric)
		}
	}

	// (100-110)/2000 = -0.005: low accruals.
	ar, ok := metrics["accrual_ratio"]
	if !ok || ar.Risk != models.RiskLow {
		t.Errorf("Expected low-risk accrual ratio, got %+v", ar)
	}
	if _, ok := metrics["beneish_m_score"]; !ok {
		t.Errorf("Expected an M-Score result with a prior period")
	}
	// Three periods of steadily rising income: perfect persistence.
	ep, ok := metrics["earnings_persistence"]
	if !ok || ep.Risk != models.RiskLow || math.Abs(ep.Value-1.0) > 1e-9 {
		t.Errorf("Expected persistence 1.0 at low risk, got %+v", ep)
	}
	if _, ok := metrics["red_flag_count"]; !ok {
		t.Errorf("Expected a red flag count with a prior period")
	}
}

func TestDetectorWithoutComparatives(t *testing.T) {
	current := statements(func(fs *models.FinancialStatements) {
		fs.IncomeStatement["net_income"] = 100
		fs.CashFlow["operating_cash_flow"] = 110
		fs.BalanceSheet["total_assets"] = 2000
	})
	results := NewDetector().Analyze(current, nil, nil)

	if len(results) != 1 {
		t.Fatalf("Without comparatives only the accrual ratio applies, got %d results", len(results))
	}
	if results[0].Metric != "accrual_ratio" {
		t.Errorf("Expected accrual_ratio, got %s", results[0].Metric)
	}
}
