package processor

import (
	"fmt"
	"math"

	"finstat_engine/pkg/models"
)

// BalanceCheck reports whether Assets = Liabilities + Equity holds.
type BalanceCheck struct {
	TotalAssets      float64
	TotalLiabilities float64
	TotalEquity      float64
	Difference       float64
	IsBalanced       bool
	Tolerance        float64
}

// CheckBalanceEquation validates A = L + E within tolerance.
func CheckBalanceEquation(assets, liabilities, equity, tolerance float64) BalanceCheck {
	diff := assets - (liabilities + equity)
	return BalanceCheck{
		TotalAssets:      assets,
		TotalLiabilities: liabilities,
		TotalEquity:      equity,
		Difference:       diff,
		IsBalanced:       math.Abs(diff) <= tolerance,
		Tolerance:        tolerance,
	}
}

// CashRollCheck reports whether beginning cash + net change = ending cash.
type CashRollCheck struct {
	BeginningCash float64
	NetChange     float64
	EndingCash    float64
	Difference    float64
	IsConsistent  bool
	Tolerance     float64
}

// CheckCashRollForward validates beginning + net change = ending within
// tolerance.
func CheckCashRollForward(beginning, netChange, ending, tolerance float64) CashRollCheck {
	diff := ending - (beginning + netChange)
	return CashRollCheck{
		BeginningCash: beginning,
		NetChange:     netChange,
		EndingCash:    ending,
		Difference:    diff,
		IsConsistent:  math.Abs(diff) <= tolerance,
		Tolerance:     tolerance,
	}
}

// validate runs the post-standardization integrity checks. The balance
// sheet equation is always a hard failure; cash roll-forward and EPS
// consistency record warnings on the DataQuality block, promoted to hard
// failures under strict validation.
func (p *Processor) validate(fs *models.FinancialStatements) error {
	bs := fs.BalanceSheet

	ta, hasTA := bs["total_assets"]
	tl, hasTL := bs["total_liabilities"]
	te, hasTE := bs["total_equity"]
	if hasTA && hasTL && hasTE {
		check := CheckBalanceEquation(ta, tl, te, p.balanceTolerance)
		if !check.IsBalanced {
			return &DataError{Reason: fmt.Sprintf(
				"balance sheet does not balance: assets %.2f vs liabilities+equity %.2f (diff %.2f, tolerance %.2f)",
				ta, tl+te, check.Difference, p.balanceTolerance)}
		}
	}

	cf := fs.CashFlow
	begin, hasBegin := cf["beginning_cash"]
	change, hasChange := cf["net_change_in_cash"]
	end, hasEnd := cf["ending_cash"]
	if hasBegin && hasChange && hasEnd {
		check := CheckCashRollForward(begin, change, end, p.cashFlowTolerance)
		if !check.IsConsistent {
			msg := fmt.Sprintf("cash roll-forward mismatch: beginning %.2f + change %.2f != ending %.2f",
				begin, change, end)
			if p.strict {
				return &DataError{Reason: msg}
			}
			fs.DataQuality.ValidationWarnings = append(fs.DataQuality.ValidationWarnings, msg)
		}
	}

	eps, hasEPS := fs.IncomeStatement["eps_basic"]
	ni, hasNI := fs.IncomeStatement["net_income"]
	shares, hasShares := bs["shares_outstanding"]
	if hasEPS && hasNI && hasShares && shares != 0 {
		implied := ni / shares
		if math.Abs(implied-eps) > epsTolerance {
			msg := fmt.Sprintf("eps inconsistency: reported %.4f vs implied %.4f", eps, implied)
			if p.strict {
				return &DataError{Reason: msg}
			}
			fs.DataQuality.ValidationWarnings = append(fs.DataQuality.ValidationWarnings, msg)
		}
	}

	return nil
}
