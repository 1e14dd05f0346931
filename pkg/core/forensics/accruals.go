// Package forensics implements the earnings-quality and manipulation
// detection subsystem: accrual analysis, earnings persistence, the
// Beneish M-Score, and the red-flag rule set.
package forensics

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"finstat_engine/pkg/core/framework"
	"finstat_engine/pkg/models"
)

// Accrual classification labels.
const (
	AccrualLow        = "low"
	AccrualModerate   = "moderate"
	AccrualHigh       = "high"
	AccrualConcerning = "concerning"
)

// Fixed accrual ratio thresholds.
const (
	accrualLowMax      = 0.05
	accrualModerateMax = 0.10
	accrualHighMax     = 0.15
	accrualExtremeMin  = 0.25
)

// CashFlowAccrualRatio computes (net income - operating cash flow) /
// total assets for the current period.
func CashFlowAccrualRatio(fs *models.FinancialStatements) float64 {
	if fs == nil {
		return 0
	}
	return framework.SafeDivide(fs.IS("net_income")-fs.CF("operating_cash_flow"), fs.BS("total_assets"), 0)
}

// BalanceSheetAccrualRatio computes the change in net operating assets
// scaled by their average, the balance-sheet approach to total accruals.
// Zero when no prior period is supplied.
func BalanceSheetAccrualRatio(current, prior *models.FinancialStatements) float64 {
	if current == nil || prior == nil {
		return 0
	}
	noaCurr := netOperatingAssets(current)
	noaPrior := netOperatingAssets(prior)
	avg := (noaCurr + noaPrior) / 2
	return framework.SafeDivide(noaCurr-noaPrior, avg, 0)
}

func netOperatingAssets(fs *models.FinancialStatements) float64 {
	debt := fs.BS("total_debt")
	if debt == 0 {
		debt = fs.BS("short_term_debt") + fs.BS("long_term_debt")
	}
	operatingAssets := fs.BS("total_assets") - fs.BS("cash_and_equivalents") - fs.BS("short_term_investments")
	operatingLiabs := fs.BS("total_liabilities") - debt
	return operatingAssets - operatingLiabs
}

// ClassifyAccrualRatio maps the magnitude of an accrual ratio onto the
// fixed classification bands and an equivalent risk level. The high band
// runs up to the extreme threshold; 0.15 is the red-flag trigger, not a
// band boundary.
func ClassifyAccrualRatio(ratio float64) (string, models.RiskLevel) {
	abs := math.Abs(ratio)
	switch {
	case abs < accrualLowMax:
		return AccrualLow, models.RiskLow
	case abs < accrualModerateMax:
		return AccrualModerate, models.RiskModerate
	case abs < accrualExtremeMin:
		return AccrualHigh, models.RiskHigh
	default:
		return AccrualConcerning, models.RiskVeryHigh
	}
}

// EarningsPersistence measures lag-1 Pearson autocorrelation of a
// net-income series. Requires at least three periods; nil when the
// series is too short or has no variance.
func EarningsPersistence(netIncomes []float64) *float64 {
	n := len(netIncomes)
	if n < 3 {
		return nil
	}
	x := netIncomes[:n-1]
	y := netIncomes[1:]
	if stat.Variance(x, nil) == 0 || stat.Variance(y, nil) == 0 {
		return nil
	}
	r := stat.Correlation(x, y, nil)
	return &r
}
