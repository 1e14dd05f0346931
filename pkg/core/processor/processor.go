// Package processor standardizes heterogeneous raw statement records into
// the canonical FinancialStatements schema, derives missing line items,
// scores data quality, and validates statement integrity.
package processor

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
	"github.com/rs/zerolog"

	"finstat_engine/pkg/core/config"
	"finstat_engine/pkg/core/schema"
	"finstat_engine/pkg/models"
)

// SourceKind identifies the shape of the raw input handed to Process.
type SourceKind string

const (
	SourceMap   SourceKind = "map"   // map[string]any
	SourceTable SourceKind = "table" // []map[string]any (one or many rows)
	SourceJSON  SourceKind = "json"  // string or []byte of JSON text
)

// DataError is the hard-failure type raised by the processor. Only empty
// input and an unbalanced balance sheet surface this way; everything else
// degrades into DataQuality warnings.
type DataError struct {
	Reason string
}

func (e *DataError) Error() string {
	return "data error: " + e.Reason
}

// Fields whose absence is flagged in DataQuality.MissingCriticalFields.
var criticalFields = []struct {
	statement schema.Statement
	field     string
}{
	{schema.StatementIncome, "revenue"},
	{schema.StatementIncome, "net_income"},
	{schema.StatementBalance, "total_assets"},
	{schema.StatementBalance, "total_equity"},
	{schema.StatementCashFlow, "operating_cash_flow"},
}

// Fields counted toward the completeness score.
var expectedFields = []struct {
	statement schema.Statement
	field     string
}{
	{schema.StatementIncome, "revenue"},
	{schema.StatementIncome, "cost_of_sales"},
	{schema.StatementIncome, "gross_profit"},
	{schema.StatementIncome, "operating_income"},
	{schema.StatementIncome, "net_income"},
	{schema.StatementIncome, "income_tax_expense"},
	{schema.StatementBalance, "cash_and_equivalents"},
	{schema.StatementBalance, "accounts_receivable"},
	{schema.StatementBalance, "inventory"},
	{schema.StatementBalance, "current_assets"},
	{schema.StatementBalance, "total_assets"},
	{schema.StatementBalance, "current_liabilities"},
	{schema.StatementBalance, "total_liabilities"},
	{schema.StatementBalance, "total_equity"},
	{schema.StatementCashFlow, "operating_cash_flow"},
	{schema.StatementCashFlow, "capital_expenditures"},
	{schema.StatementCashFlow, "investing_cash_flow"},
	{schema.StatementCashFlow, "financing_cash_flow"},
	{schema.StatementCashFlow, "net_change_in_cash"},
	{schema.StatementCashFlow, "ending_cash"},
}

// epsTolerance bounds the gap between reported and implied basic EPS.
const epsTolerance = 0.01

// Processor maps raw records onto the canonical schema. It holds no
// mutable state across calls beyond its static synonym tables, so a single
// instance is safe for concurrent use.
type Processor struct {
	schema *schema.Schema
	log    zerolog.Logger

	balanceTolerance  float64
	cashFlowTolerance float64
	strict            bool
}

// New creates a processor around the given schema and engine config.
// A nil schema selects the built-in canonical tables; non-positive
// tolerances fall back to the config defaults. With StrictValidation
// set, the soft consistency checks become hard failures.
func New(s *schema.Schema, cfg config.EngineConfig, log zerolog.Logger) *Processor {
	if s == nil {
		s = schema.Default()
	}
	defaults := config.Default()
	if cfg.BalanceSheetTolerance <= 0 {
		cfg.BalanceSheetTolerance = defaults.BalanceSheetTolerance
	}
	if cfg.CashFlowTolerance <= 0 {
		cfg.CashFlowTolerance = defaults.CashFlowTolerance
	}
	return &Processor{
		schema:            s,
		log:               log.With().Str("module", "processor").Logger(),
		balanceTolerance:  cfg.BalanceSheetTolerance,
		cashFlowTolerance: cfg.CashFlowTolerance,
		strict:            cfg.StrictValidation,
	}
}

// Process standardizes one raw record into a canonical FinancialStatements.
// It fails with *DataError when the input is empty or the balance sheet
// equation is violated beyond tolerance; all other findings are recorded
// as warnings on the returned record.
func (p *Processor) Process(raw any, kind SourceKind, company models.CompanyInfo, period models.FinancialPeriod) (*models.FinancialStatements, error) {
	flat, err := p.flatten(raw, kind)
	if err != nil {
		return nil, err
	}
	if len(flat) == 0 {
		return nil, &DataError{Reason: "raw input is empty"}
	}

	normalized := make(map[string]any, len(flat))
	for k, v := range flat {
		normalized[schema.NormalizeKey(k)] = v
	}

	fs := models.NewFinancialStatements(company, period)
	p.standardize(normalized, fs)
	p.deriveMissing(fs)
	p.scoreQuality(fs)

	if err := p.validate(fs); err != nil {
		return nil, err
	}

	p.log.Debug().
		Str("ticker", company.Ticker).
		Int("fiscal_year", period.FiscalYear).
		Float64("completeness", fs.DataQuality.CompletenessScore).
		Int("warnings", len(fs.DataQuality.ValidationWarnings)).
		Msg("standardized statements")

	return fs, nil
}

// flatten loads any supported source kind into a flat key -> value map.
// Multi-row tables collapse column-wise into lists; coercion later takes
// the most recent (last) element of such a list.
func (p *Processor) flatten(raw any, kind SourceKind) (map[string]any, error) {
	switch kind {
	case SourceMap:
		m, ok := raw.(map[string]any)
		if !ok {
			return nil, &DataError{Reason: fmt.Sprintf("map source requires map[string]any, got %T", raw)}
		}
		return m, nil

	case SourceTable:
		rows, ok := raw.([]map[string]any)
		if !ok {
			return nil, &DataError{Reason: fmt.Sprintf("table source requires []map[string]any, got %T", raw)}
		}
		if len(rows) == 0 {
			return nil, &DataError{Reason: "raw input is empty"}
		}
		if len(rows) == 1 {
			return rows[0], nil
		}
		columns := make(map[string]any)
		for _, row := range rows {
			for k, v := range row {
				list, _ := columns[k].([]any)
				columns[k] = append(list, v)
			}
		}
		return columns, nil

	case SourceJSON:
		var text string
		switch v := raw.(type) {
		case string:
			text = v
		case []byte:
			text = string(v)
		default:
			return nil, &DataError{Reason: fmt.Sprintf("json source requires string or []byte, got %T", raw)}
		}
		if strings.TrimSpace(text) == "" {
			return nil, &DataError{Reason: "raw input is empty"}
		}
		var m map[string]any
		if err := json.Unmarshal([]byte(text), &m); err != nil {
			// Vendor feeds ship broken JSON often enough that a repair
			// pass is worth one retry before giving up.
			repaired, repErr := jsonrepair.RepairJSON(text)
			if repErr != nil {
				return nil, &DataError{Reason: "unparseable json input: " + err.Error()}
			}
			if err := json.Unmarshal([]byte(repaired), &m); err != nil {
				return nil, &DataError{Reason: "unparseable json input after repair: " + err.Error()}
			}
			p.log.Warn().Msg("json input required repair before parsing")
		}
		return m, nil

	default:
		return nil, &DataError{Reason: "unknown source kind: " + string(kind)}
	}
}

// standardize resolves synonyms section by section (first match wins) and
// routes every raw key: matched keys into their canonical section, the
// rest untouched into notes so nothing is silently dropped.
func (p *Processor) standardize(raw map[string]any, fs *models.FinancialStatements) {
	used := make(map[string]bool, len(raw))

	for _, st := range schema.Sections() {
		section := sectionFor(fs, st)
		for _, field := range p.schema.FieldsFor(st) {
			for _, syn := range field.Synonyms {
				v, present := raw[syn]
				if !present || used[syn] {
					continue
				}
				used[syn] = true
				section[field.Canonical] = coerceFloat(v)
				break
			}
		}
	}

	for k, v := range raw {
		if !used[k] {
			fs.Notes[k] = v
		}
	}
}

// deriveMissing fills gross_profit and operating_income when the inputs
// to derive them are present.
func (p *Processor) deriveMissing(fs *models.FinancialStatements) {
	is := fs.IncomeStatement
	if _, ok := is["gross_profit"]; !ok {
		rev, hasRev := is["revenue"]
		cogs, hasCogs := is["cost_of_sales"]
		if hasRev && hasCogs {
			is["gross_profit"] = rev - cogs
		}
	}
	if _, ok := is["operating_income"]; !ok {
		gp, hasGP := is["gross_profit"]
		opex, hasOpex := is["operating_expenses"]
		if hasGP && hasOpex {
			is["operating_income"] = gp - opex
		}
	}
}

// scoreQuality computes the completeness and consistency scores plus the
// list of missing critical fields.
func (p *Processor) scoreQuality(fs *models.FinancialStatements) {
	present := 0
	for _, ef := range expectedFields {
		if _, ok := sectionFor(fs, ef.statement)[ef.field]; ok {
			present++
		}
	}
	completeness := float64(present) / float64(len(expectedFields))
	if completeness > 1.0 {
		completeness = 1.0
	}

	var missing []string
	for _, cf := range criticalFields {
		if _, ok := sectionFor(fs, cf.statement)[cf.field]; !ok {
			missing = append(missing, cf.field)
		}
	}

	checks, passed := 2, 0
	ca, hasCA := fs.BalanceSheet["current_assets"]
	ta, hasTA := fs.BalanceSheet["total_assets"]
	if !hasCA || !hasTA || ca <= ta {
		passed++
	}
	if fs.IS("revenue") > 0 {
		passed++
	}

	fs.DataQuality.CompletenessScore = completeness
	fs.DataQuality.ConsistencyScore = float64(passed) / float64(checks)
	fs.DataQuality.MissingCriticalFields = missing
}

// sectionFor maps a schema statement onto the matching canonical section.
func sectionFor(fs *models.FinancialStatements, st schema.Statement) map[string]float64 {
	switch st {
	case schema.StatementIncome:
		return fs.IncomeStatement
	case schema.StatementBalance:
		return fs.BalanceSheet
	case schema.StatementCashFlow:
		return fs.CashFlow
	case schema.StatementEquity:
		return fs.Equity
	default:
		return nil
	}
}

// coerceFloat converts a raw value into a float64 line item. Null and
// unconvertible values become 0.0; multi-row column lists collapse to
// their most recent element.
func coerceFloat(v any) float64 {
	switch t := v.(type) {
	case nil:
		return 0
	case float64:
		return t
	case float32:
		return float64(t)
	case int:
		return float64(t)
	case int64:
		return float64(t)
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return 0
		}
		return f
	case bool:
		if t {
			return 1
		}
		return 0
	case string:
		return parseNumericString(t)
	case []any:
		if len(t) == 0 {
			return 0
		}
		return coerceFloat(t[len(t)-1])
	default:
		return 0
	}
}

// parseNumericString accepts common report formats: thousands separators,
// currency symbols, and parenthesized negatives.
func parseNumericString(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}
	s = strings.NewReplacer(",", "", "$", "", "%", "", " ", "").Replace(s)
	s = strings.TrimSpace(s)
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	if negative {
		return -f
	}
	return f
}
