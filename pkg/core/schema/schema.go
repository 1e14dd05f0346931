// Package schema defines the canonical statement schema and the ordered
// synonym tables that map raw vendor field names onto it. The tables are
// immutable configuration owned by the data processor; resolution is
// first-match-wins over lists stored in priority order, most specific
// synonym first.
package schema

// Statement identifies which canonical section a field belongs to.
type Statement string

const (
	StatementIncome   Statement = "income_statement"
	StatementBalance  Statement = "balance_sheet"
	StatementCashFlow Statement = "cash_flow"
	StatementEquity   Statement = "equity"
	StatementNotes    Statement = "notes"
)

// Field couples a canonical name with its ordered synonym list.
type Field struct {
	Canonical string
	Synonyms  []string
}

// Schema holds the per-statement field tables in declaration order.
type Schema struct {
	Income   []Field
	Balance  []Field
	CashFlow []Field
	Equity   []Field
}

// Default returns the built-in canonical schema. The synonym order is
// load-bearing: the processor takes the first raw key that matches.
func Default() *Schema {
	return &Schema{
		Income: []Field{
			{"revenue", []string{"revenue", "total_revenue", "net_sales", "net_revenue", "sales", "turnover", "operating_revenue"}},
			{"cost_of_sales", []string{"cost_of_sales", "cost_of_goods_sold", "cost_of_revenue", "cogs", "cost_of_products_sold"}},
			{"gross_profit", []string{"gross_profit", "gross_income", "gross_margin_amount"}},
			{"operating_expenses", []string{"operating_expenses", "total_operating_expenses", "opex"}},
			{"selling_general_admin", []string{"selling_general_admin", "selling_general_and_administrative", "sga_expenses", "sga", "sg_a"}},
			{"research_development", []string{"research_development", "research_and_development", "rd_expenses", "r_d"}},
			{"depreciation_amortization", []string{"depreciation_amortization", "depreciation_and_amortization", "depreciation_expense", "depreciation"}},
			{"operating_income", []string{"operating_income", "operating_profit", "income_from_operations", "ebit"}},
			{"interest_income", []string{"interest_income", "finance_income"}},
			{"interest_expense", []string{"interest_expense", "finance_costs", "interest_charges"}},
			{"income_before_tax", []string{"income_before_tax", "pretax_income", "profit_before_tax", "earnings_before_tax"}},
			{"income_tax_expense", []string{"income_tax_expense", "provision_for_income_taxes", "income_taxes", "tax_expense"}},
			{"net_income", []string{"net_income", "net_profit", "profit_for_the_year", "net_earnings", "profit_attributable_to_owners"}},
			{"eps_basic", []string{"eps_basic", "basic_eps", "basic_earnings_per_share", "earnings_per_share"}},
			{"eps_diluted", []string{"eps_diluted", "diluted_eps", "diluted_earnings_per_share"}},
		},
		Balance: []Field{
			{"cash_and_equivalents", []string{"cash_and_equivalents", "cash_and_cash_equivalents", "cash_equivalents", "cash"}},
			{"short_term_investments", []string{"short_term_investments", "marketable_securities", "st_investments"}},
			{"accounts_receivable", []string{"accounts_receivable", "trade_receivables", "receivables_net", "receivables"}},
			{"inventory", []string{"inventory", "inventories", "stock_in_trade"}},
			{"prepaid_expenses", []string{"prepaid_expenses", "prepayments"}},
			{"current_assets", []string{"current_assets", "total_current_assets"}},
			{"ppe_gross", []string{"ppe_gross", "property_plant_equipment_gross", "gross_ppe"}},
			{"accumulated_depreciation", []string{"accumulated_depreciation", "accum_depreciation"}},
			{"ppe_net", []string{"ppe_net", "property_plant_equipment_net", "property_plant_and_equipment", "net_ppe", "fixed_assets"}},
			{"goodwill", []string{"goodwill"}},
			{"intangible_assets", []string{"intangible_assets", "intangibles", "other_intangible_assets"}},
			{"total_assets", []string{"total_assets", "assets_total", "assets"}},
			{"accounts_payable", []string{"accounts_payable", "trade_payables", "payables"}},
			{"short_term_debt", []string{"short_term_debt", "current_debt", "notes_payable", "current_portion_long_term_debt"}},
			{"accrued_liabilities", []string{"accrued_liabilities", "accrued_expenses"}},
			{"current_liabilities", []string{"current_liabilities", "total_current_liabilities"}},
			{"long_term_debt", []string{"long_term_debt", "lt_debt", "noncurrent_debt", "long_term_borrowings"}},
			{"deferred_tax_liabilities", []string{"deferred_tax_liabilities", "deferred_taxes"}},
			{"total_liabilities", []string{"total_liabilities", "liabilities_total", "liabilities"}},
			{"total_debt", []string{"total_debt", "total_borrowings"}},
			{"common_stock", []string{"common_stock", "share_capital", "paid_in_capital"}},
			{"retained_earnings", []string{"retained_earnings", "accumulated_deficit", "retained_profits"}},
			{"total_equity", []string{"total_equity", "shareholders_equity", "stockholders_equity", "total_shareholders_equity", "equity"}},
			{"shares_outstanding", []string{"shares_outstanding", "common_shares_outstanding", "weighted_average_shares"}},
		},
		CashFlow: []Field{
			{"operating_cash_flow", []string{"operating_cash_flow", "cash_from_operations", "net_cash_from_operating_activities", "cash_flow_from_operations", "cfo"}},
			{"depreciation_amortization", []string{"depreciation_amortization_addback", "depreciation_addback", "non_cash_depreciation"}},
			{"capital_expenditures", []string{"capital_expenditures", "capex", "purchases_of_ppe", "payments_for_ppe"}},
			{"acquisitions", []string{"acquisitions", "acquisitions_net", "business_combinations"}},
			{"investing_cash_flow", []string{"investing_cash_flow", "cash_from_investing", "net_cash_from_investing_activities", "cfi"}},
			{"debt_issued", []string{"debt_issued", "proceeds_from_debt", "borrowings_raised"}},
			{"debt_repaid", []string{"debt_repaid", "repayment_of_debt", "debt_repayments"}},
			{"dividends_paid", []string{"dividends_paid", "dividend_payments"}},
			{"share_buybacks", []string{"share_buybacks", "share_repurchases", "treasury_purchases"}},
			{"financing_cash_flow", []string{"financing_cash_flow", "cash_from_financing", "net_cash_from_financing_activities", "cff"}},
			{"net_change_in_cash", []string{"net_change_in_cash", "change_in_cash", "net_increase_in_cash", "net_decrease_in_cash"}},
			{"beginning_cash", []string{"beginning_cash", "cash_at_beginning", "cash_beginning_of_period"}},
			{"ending_cash", []string{"ending_cash", "cash_at_end", "cash_end_of_period"}},
		},
		Equity: []Field{
			{"beginning_equity", []string{"beginning_equity", "equity_at_beginning"}},
			{"ending_equity", []string{"ending_equity", "equity_at_end"}},
			{"dividends_declared", []string{"dividends_declared", "declared_dividends"}},
			{"shares_issued", []string{"shares_issued", "share_issuance"}},
		},
	}
}

// CanonicalSet returns the canonical field names for one statement.
func (s *Schema) CanonicalSet(st Statement) map[string]bool {
	set := make(map[string]bool)
	for _, f := range s.fields(st) {
		set[f.Canonical] = true
	}
	return set
}

func (s *Schema) fields(st Statement) []Field {
	switch st {
	case StatementIncome:
		return s.Income
	case StatementBalance:
		return s.Balance
	case StatementCashFlow:
		return s.CashFlow
	case StatementEquity:
		return s.Equity
	default:
		return nil
	}
}

// Sections lists the statement sections in resolution order.
func Sections() []Statement {
	return []Statement{StatementIncome, StatementBalance, StatementCashFlow, StatementEquity}
}

// FieldsFor exposes the ordered field table for one statement.
func (s *Schema) FieldsFor(st Statement) []Field {
	return s.fields(st)
}
