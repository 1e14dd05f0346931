package forensics

import (
	"fmt"

	"finstat_engine/pkg/core/framework"
	"finstat_engine/pkg/models"
)

// RedFlag is one triggered heuristic.
type RedFlag struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// Red-flag severity labels derived from the triggered-flag count.
const (
	SeverityClean    = "clean"
	SeverityMinor    = "minor"
	SeverityModerate = "moderate"
	SeverityHigh     = "high_scrutiny"
)

// Notes keys the rule set recognizes. Values come through the processor's
// pass-through path, so they keep whatever type the source supplied.
const (
	noteQ4RevenueShare          = "q4_revenue_share"
	noteAccountingPolicyChanges = "accounting_policy_changes"
	noteAuditorChange           = "auditor_change"
	noteRelatedPartyTxns        = "related_party_transactions"
	noteAuditFees               = "audit_fees"
)

// EvaluateRedFlags runs the fixed heuristic list against the current and
// immediately prior period. The rule set needs a prior period; without
// one it is skipped entirely and returns nil.
func EvaluateRedFlags(current, prior *models.FinancialStatements) []RedFlag {
	if current == nil || prior == nil {
		return nil
	}

	var flags []RedFlag
	add := func(code, description string) {
		flags = append(flags, RedFlag{Code: code, Description: description})
	}

	ni := current.IS("net_income")
	ocf := current.CF("operating_cash_flow")
	if ni > 0 && ocf < 0 {
		add("earnings_without_cash", "positive net income with negative operating cash flow")
	}

	revGrowth := framework.SafeDivide(current.IS("revenue")-prior.IS("revenue"), prior.IS("revenue"), 0)
	if revGrowth > 0.50 {
		add("extreme_revenue_growth", fmt.Sprintf("revenue grew %.0f%% year over year", revGrowth*100))
	}

	arGrowth := framework.SafeDivide(current.BS("accounts_receivable")-prior.BS("accounts_receivable"), prior.BS("accounts_receivable"), 0)
	if arGrowth-revGrowth > 0.25 {
		add("receivables_outpace_revenue", "receivables growing much faster than revenue")
	}

	invGrowth := framework.SafeDivide(current.BS("inventory")-prior.BS("inventory"), prior.BS("inventory"), 0)
	if invGrowth-revGrowth > 0.25 {
		add("inventory_buildup", "inventory growing much faster than revenue")
	}

	if CashFlowAccrualRatio(current) > accrualHighMax {
		add("high_accruals", "accrual ratio above the high threshold")
	}

	if share, ok := current.NoteNumber(noteQ4RevenueShare); ok && share > 0.35 {
		add("q4_concentration", fmt.Sprintf("%.0f%% of revenue booked in Q4", share*100))
	}

	if changes, ok := current.NoteNumber(noteAccountingPolicyChanges); ok && changes >= 2 {
		add("policy_churn", fmt.Sprintf("%d accounting policy changes in the period", int(changes)))
	}

	if changed, ok := current.NoteNumber(noteAuditorChange); ok && changed != 0 {
		add("auditor_change", "auditor changed during the period")
	}

	if rpt, ok := current.NoteNumber(noteRelatedPartyTxns); ok {
		if framework.SafeDivide(rpt, current.IS("revenue"), 0) > 0.10 {
			add("related_party_volume", "related-party transactions exceed 10% of revenue")
		}
	}

	if fees, ok := current.NoteNumber(noteAuditFees); ok {
		if priorFees, okPrior := prior.NoteNumber(noteAuditFees); okPrior && fees < priorFees {
			add("declining_audit_fees", "audit fees declined versus the prior period")
		}
	}

	return flags
}

// ClassifyRedFlags maps a triggered-flag count onto the count-based
// severity bands.
func ClassifyRedFlags(count int) (string, models.RiskLevel) {
	switch {
	case count == 0:
		return SeverityClean, models.RiskLow
	case count == 1:
		return SeverityMinor, models.RiskModerate
	case count <= 3:
		return SeverityModerate, models.RiskHigh
	default:
		return SeverityHigh, models.RiskVeryHigh
	}
}
