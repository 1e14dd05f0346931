package framework

import (
	"fmt"

	"finstat_engine/pkg/models"
)

// Per-statement penalty weights for the data quality sub-scores.
const (
	earningsIssueWeight   = 20
	earningsWarningWeight = 10
	balanceIssueWeight    = 15
	balanceWarningWeight  = 8
	cashFlowIssueWeight   = 25
	cashFlowWarningWeight = 12
)

// AssessDataQuality combines missing-field detection, negative-value
// checks, the balance sheet equation, and audit status into three weighted
// sub-scores and an overall mean. It never fails: thin data just scores
// low.
func AssessDataQuality(fs *models.FinancialStatements, requiredFields []string) models.QualityAssessment {
	qa := models.QualityAssessment{}
	if fs == nil {
		return qa
	}

	var earningsIssues, earningsWarnings int
	var balanceIssues, balanceWarnings int
	var cashIssues, cashWarnings int

	has := func(field string) bool {
		return fs.HasIS(field) || fs.HasBS(field) || fs.HasCF(field)
	}

	for _, field := range requiredFields {
		if has(field) {
			continue
		}
		qa.RedFlags = append(qa.RedFlags, "missing required field: "+field)
		switch {
		case isIncomeField(field):
			earningsIssues++
		case isCashFlowField(field):
			cashIssues++
		default:
			balanceIssues++
		}
	}

	if fs.HasIS("revenue") && fs.IS("revenue") < 0 {
		earningsIssues++
		qa.RedFlags = append(qa.RedFlags, "negative revenue")
	}
	if fs.HasBS("total_assets") && fs.BS("total_assets") < 0 {
		balanceIssues++
		qa.RedFlags = append(qa.RedFlags, "negative total assets")
	}
	if fs.HasBS("cash_and_equivalents") && fs.BS("cash_and_equivalents") < 0 {
		cashIssues++
		qa.RedFlags = append(qa.RedFlags, "negative cash balance")
	}

	if fs.HasBS("total_assets") && fs.HasBS("total_liabilities") && fs.HasBS("total_equity") {
		diff := fs.BS("total_assets") - fs.BS("total_liabilities") - fs.BS("total_equity")
		if diff > 0.01 || diff < -0.01 {
			balanceIssues++
			qa.RedFlags = append(qa.RedFlags, fmt.Sprintf("balance sheet equation off by %.2f", diff))
		} else {
			qa.QualityDrivers = append(qa.QualityDrivers, "balance sheet equation holds")
		}
	}

	if fs.HasBS("current_assets") && fs.HasBS("total_assets") && fs.BS("current_assets") > fs.BS("total_assets") {
		balanceWarnings++
		qa.Warnings = append(qa.Warnings, "current assets exceed total assets")
	}

	switch fs.Period.AuditStatus {
	case models.AuditStatusAudited:
		qa.QualityDrivers = append(qa.QualityDrivers, "audited financial statements")
	case models.AuditStatusReviewed:
		earningsWarnings++
		qa.Warnings = append(qa.Warnings, "statements reviewed but not audited")
	default:
		earningsWarnings++
		cashWarnings++
		qa.Warnings = append(qa.Warnings, "unaudited financial statements")
	}

	qa.EarningsQuality = floorAtZero(100 - earningsIssueWeight*float64(earningsIssues) - earningsWarningWeight*float64(earningsWarnings))
	qa.BalanceSheetQuality = floorAtZero(100 - balanceIssueWeight*float64(balanceIssues) - balanceWarningWeight*float64(balanceWarnings))
	qa.CashFlowQuality = floorAtZero(100 - cashFlowIssueWeight*float64(cashIssues) - cashFlowWarningWeight*float64(cashWarnings))
	qa.OverallScore = (qa.EarningsQuality + qa.BalanceSheetQuality + qa.CashFlowQuality) / 3

	return qa
}

func floorAtZero(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

func isIncomeField(field string) bool {
	switch field {
	case "revenue", "cost_of_sales", "gross_profit", "operating_income", "net_income",
		"operating_expenses", "income_tax_expense", "eps_basic", "eps_diluted":
		return true
	}
	return false
}

func isCashFlowField(field string) bool {
	switch field {
	case "operating_cash_flow", "investing_cash_flow", "financing_cash_flow",
		"capital_expenditures", "net_change_in_cash", "beginning_cash", "ending_cash":
		return true
	}
	return false
}
