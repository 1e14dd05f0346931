package forensics

import (
	"finstat_engine/pkg/core/framework"
	"finstat_engine/pkg/models"
)

// BeneishResult holds the eight component indexes and the final M-Score.
type BeneishResult struct {
	DSRI  float64          `json:"dsri"`  // Days Sales in Receivables Index
	GMI   float64          `json:"gmi"`   // Gross Margin Index
	AQI   float64          `json:"aqi"`   // Asset Quality Index
	SGI   float64          `json:"sgi"`   // Sales Growth Index
	DEPI  float64          `json:"depi"`  // Depreciation Index
	SGAI  float64          `json:"sgai"`  // SG&A Expenses Index
	LVGI  float64          `json:"lvgi"`  // Leverage Index
	TATA  float64          `json:"tata"`  // Total Accruals to Total Assets
	Score float64          `json:"score"`
	Risk  models.RiskLevel `json:"risk"`
}

// M-Score risk band cutoffs.
const (
	beneishLowMax      = -2.22
	beneishModerateMax = -1.78
	beneishElevatedMax = -1.00
)

// ComputeBeneish calculates the 8-variable M-Score from two consecutive
// periods. Each component is a ratio of per-period ratios; a component
// whose denominator is zero defaults to the neutral value 1, except TATA
// which defaults to 0. Returns nil without a prior period.
func ComputeBeneish(current, prior *models.FinancialStatements) *BeneishResult {
	if current == nil || prior == nil {
		return nil
	}

	// DSRI: days sales in receivables, current over prior.
	dso := func(fs *models.FinancialStatements) float64 {
		return framework.SafeDivide(fs.BS("accounts_receivable"), fs.IS("revenue"), 0) * 365
	}
	dsri := index(dso(current), dso(prior))

	// GMI: prior gross margin over current; deterioration pushes it above 1.
	grossMargin := func(fs *models.FinancialStatements) float64 {
		return framework.SafeDivide(fs.IS("gross_profit"), fs.IS("revenue"), 0)
	}
	gmi := index(grossMargin(prior), grossMargin(current))

	// AQI: share of soft assets (everything outside current assets and
	// net PP&E), current over prior.
	softAssets := func(fs *models.FinancialStatements) float64 {
		ta := fs.BS("total_assets")
		if ta == 0 {
			return 0
		}
		return 1 - (fs.BS("current_assets")+fs.BS("ppe_net"))/ta
	}
	aqi := index(softAssets(current), softAssets(prior))

	// SGI: plain sales growth index.
	sgi := index(current.IS("revenue"), prior.IS("revenue"))

	// DEPI: prior depreciation rate over current; a slowdown inflates income.
	depRate := func(fs *models.FinancialStatements) float64 {
		dep := depreciation(fs)
		return framework.SafeDivide(dep, fs.BS("ppe_net")+dep, 0)
	}
	depi := index(depRate(prior), depRate(current))

	// SGAI: SG&A share of revenue, current over prior.
	sgaShare := func(fs *models.FinancialStatements) float64 {
		return framework.SafeDivide(fs.IS("selling_general_admin"), fs.IS("revenue"), 0)
	}
	sgai := index(sgaShare(current), sgaShare(prior))

	// LVGI: liabilities-to-assets leverage, current over prior.
	leverage := func(fs *models.FinancialStatements) float64 {
		return framework.SafeDivide(fs.BS("total_liabilities"), fs.BS("total_assets"), 0)
	}
	lvgi := index(leverage(current), leverage(prior))

	// TATA: total accruals scaled by assets, current period only.
	tata := framework.SafeDivide(current.IS("net_income")-current.CF("operating_cash_flow"), current.BS("total_assets"), 0)

	score := -4.84 +
		0.920*dsri +
		0.528*gmi +
		0.404*aqi +
		0.892*sgi +
		0.115*depi -
		0.172*sgai +
		0.327*lvgi +
		4.679*tata

	return &BeneishResult{
		DSRI: dsri, GMI: gmi, AQI: aqi, SGI: sgi,
		DEPI: depi, SGAI: sgai, LVGI: lvgi, TATA: tata,
		Score: score,
		Risk:  classifyMScore(score),
	}
}

func classifyMScore(score float64) models.RiskLevel {
	switch {
	case score < beneishLowMax:
		return models.RiskLow
	case score < beneishModerateMax:
		return models.RiskModerate
	case score < beneishElevatedMax:
		return models.RiskHigh
	default:
		return models.RiskVeryHigh
	}
}

// index forms a ratio-of-ratios component, defaulting to the neutral 1
// when the denominator is zero or undefined.
func index(curr, prior float64) float64 {
	if prior == 0 {
		return 1
	}
	return curr / prior
}

// depreciation reads D&A from the income statement first, falling back
// to the cash flow statement.
func depreciation(fs *models.FinancialStatements) float64 {
	if v := fs.IS("depreciation_amortization"); v != 0 {
		return v
	}
	return fs.CF("depreciation_amortization")
}
