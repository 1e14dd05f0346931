// Package models defines the canonical data structures shared by the
// standardization and analysis layers: company identity, reporting periods,
// the canonical FinancialStatements record, and the result types produced
// by the analyzers.
package models

import "time"

// =============================================================================
// COMPANY & PERIOD IDENTITY
// =============================================================================

// ReportingStandard identifies the accounting framework of a filing.
type ReportingStandard string

const (
	StandardIFRS      ReportingStandard = "ifrs"
	StandardUSGAAP    ReportingStandard = "us_gaap"
	StandardLocalGAAP ReportingStandard = "local_gaap"
)

// PeriodType distinguishes annual, quarterly and interim reporting periods.
type PeriodType string

const (
	PeriodAnnual    PeriodType = "annual"
	PeriodQuarterly PeriodType = "quarterly"
	PeriodInterim   PeriodType = "interim"
)

// AuditStatus records the assurance level attached to a set of statements.
type AuditStatus string

const (
	AuditStatusAudited   AuditStatus = "audited"
	AuditStatusReviewed  AuditStatus = "reviewed"
	AuditStatusUnaudited AuditStatus = "unaudited"
)

// CompanyInfo carries the identity of a reporting entity.
// It is immutable once created and attached 1:1 to a FinancialStatements.
type CompanyInfo struct {
	Ticker            string            `json:"ticker"`
	Name              string            `json:"name"`
	Sector            string            `json:"sector"`
	Industry          string            `json:"industry"`
	Country           string            `json:"country"`
	ReportingStandard ReportingStandard `json:"reporting_standard"`
	FiscalYearEnd     string            `json:"fiscal_year_end"`
	Currency          string            `json:"currency"`
}

// FinancialPeriod describes a single reporting period. Immutable.
type FinancialPeriod struct {
	EndDate     time.Time   `json:"end_date"`
	Type        PeriodType  `json:"period_type"`
	FiscalYear  int         `json:"fiscal_year"`
	Label       string      `json:"label"`
	AuditStatus AuditStatus `json:"audit_status"`
}

// =============================================================================
// CANONICAL STATEMENTS
// =============================================================================

// DataQuality is populated by the data processor while standardizing a
// raw record. Soft validation findings land in ValidationWarnings; hard
// failures abort processing and never produce a FinancialStatements.
type DataQuality struct {
	CompletenessScore     float64  `json:"completeness_score"`
	ConsistencyScore      float64  `json:"consistency_score"`
	MissingCriticalFields []string `json:"missing_critical_fields"`
	ValidationWarnings    []string `json:"validation_warnings"`
}

// FinancialStatements is the canonical unit of work: one company, one
// period, five statement sections keyed by canonical field name.
// The processor populates the sections and DataQuality; analyzers may add
// derived ratios to Ratios. Prior periods are passed around read-only as
// comparative data, ordered oldest to most recent.
type FinancialStatements struct {
	Company CompanyInfo     `json:"company"`
	Period  FinancialPeriod `json:"period"`

	IncomeStatement map[string]float64 `json:"income_statement"`
	BalanceSheet    map[string]float64 `json:"balance_sheet"`
	CashFlow        map[string]float64 `json:"cash_flow"`
	Equity          map[string]float64 `json:"equity"`
	Notes           map[string]any     `json:"notes"`

	Ratios      map[string]float64 `json:"ratios"`
	DataQuality DataQuality        `json:"data_quality"`
}

// NewFinancialStatements returns an empty canonical record with all
// sections allocated.
func NewFinancialStatements(company CompanyInfo, period FinancialPeriod) *FinancialStatements {
	return &FinancialStatements{
		Company:         company,
		Period:          period,
		IncomeStatement: make(map[string]float64),
		BalanceSheet:    make(map[string]float64),
		CashFlow:        make(map[string]float64),
		Equity:          make(map[string]float64),
		Notes:           make(map[string]any),
		Ratios:          make(map[string]float64),
	}
}

// IS returns an income statement line item, zero when absent.
func (fs *FinancialStatements) IS(field string) float64 {
	if fs == nil {
		return 0
	}
	return fs.IncomeStatement[field]
}

// BS returns a balance sheet line item, zero when absent.
func (fs *FinancialStatements) BS(field string) float64 {
	if fs == nil {
		return 0
	}
	return fs.BalanceSheet[field]
}

// CF returns a cash flow line item, zero when absent.
func (fs *FinancialStatements) CF(field string) float64 {
	if fs == nil {
		return 0
	}
	return fs.CashFlow[field]
}

// HasIS reports whether the income statement carries the field.
func (fs *FinancialStatements) HasIS(field string) bool {
	if fs == nil {
		return false
	}
	_, ok := fs.IncomeStatement[field]
	return ok
}

// HasBS reports whether the balance sheet carries the field.
func (fs *FinancialStatements) HasBS(field string) bool {
	if fs == nil {
		return false
	}
	_, ok := fs.BalanceSheet[field]
	return ok
}

// HasCF reports whether the cash flow statement carries the field.
func (fs *FinancialStatements) HasCF(field string) bool {
	if fs == nil {
		return false
	}
	_, ok := fs.CashFlow[field]
	return ok
}

// NoteNumber coerces a notes entry to a float64 where possible.
// Notes keep their raw values, so numeric reads go through here.
func (fs *FinancialStatements) NoteNumber(key string) (float64, bool) {
	if fs == nil {
		return 0, false
	}
	switch v := fs.Notes[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case bool:
		if v {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}

// =============================================================================
// ANALYSIS RESULT TYPES
// =============================================================================

// Category groups analysis results along the classic ratio-analysis axes.
type Category string

const (
	CategoryLiquidity     Category = "liquidity"
	CategoryActivity      Category = "activity"
	CategorySolvency      Category = "solvency"
	CategoryProfitability Category = "profitability"
	CategoryValuation     Category = "valuation"
	CategoryQuality       Category = "quality"
	CategoryTechnical     Category = "technical"
	CategoryFundamental   Category = "fundamental"
)

// RiskLevel is the bounded classification attached to each measured metric.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskModerate RiskLevel = "moderate"
	RiskHigh     RiskLevel = "high"
	RiskVeryHigh RiskLevel = "very_high"
)

// AnalysisResult is one measured fact: a metric, its value, and the
// classification and context around it. Immutable once produced.
type AnalysisResult struct {
	Category       Category  `json:"category"`
	Metric         string    `json:"metric"`
	Value          float64   `json:"value"`
	Interpretation string    `json:"interpretation"`
	Risk           RiskLevel `json:"risk_level"`

	Trend               string   `json:"trend,omitempty"`
	BenchmarkComparison string   `json:"benchmark_comparison,omitempty"`
	IndustryPercentile  *float64 `json:"industry_percentile,omitempty"`
	QualityScore        *float64 `json:"quality_score,omitempty"`

	Methodology     string   `json:"methodology"`
	Limitations     []string `json:"limitations,omitempty"`
	Recommendations []string `json:"recommendations,omitempty"`
}

// ComparativeAnalysis is the output of the shared trend routine:
// a series, its direction, volatility as coefficient of variation, and
// CAGR when defined. Not persisted, produced on demand.
type ComparativeAnalysis struct {
	Periods        []string           `json:"periods"`
	Values         []float64          `json:"values"`
	Trend          string             `json:"trend"`
	Volatility     float64            `json:"volatility"`
	GrowthRate     *float64           `json:"growth_rate,omitempty"`
	PeerComparison map[string]float64 `json:"peer_comparison,omitempty"`
}

// QualityAssessment holds the 0-100 data quality sub-scores produced by
// the framework's quality routine.
type QualityAssessment struct {
	OverallScore        float64  `json:"overall_score"`
	EarningsQuality     float64  `json:"earnings_quality"`
	BalanceSheetQuality float64  `json:"balance_sheet_quality"`
	CashFlowQuality     float64  `json:"cash_flow_quality"`
	RedFlags            []string `json:"red_flags"`
	Warnings            []string `json:"warnings"`
	QualityDrivers      []string `json:"quality_drivers"`
}

// IndustryStats carries the recognized external benchmark keys for one
// metric: median, first and third quartile.
type IndustryStats struct {
	Median float64 `json:"median"`
	Q1     float64 `json:"q1"`
	Q3     float64 `json:"q3"`
}

// =============================================================================
// INTEGRATED ANALYSIS
// =============================================================================

// HealthRating is the overall financial-health classification.
type HealthRating string

const (
	HealthExcellent  HealthRating = "excellent"
	HealthGood       HealthRating = "good"
	HealthFair       HealthRating = "fair"
	HealthPoor       HealthRating = "poor"
	HealthDistressed HealthRating = "distressed"
)

// BusinessModel classifies the shape of the business.
type BusinessModel string

const (
	ModelAssetHeavy BusinessModel = "asset_heavy"
	ModelAssetLight BusinessModel = "asset_light"
	ModelGrowth     BusinessModel = "growth"
	ModelMature     BusinessModel = "mature"
	ModelTurnaround BusinessModel = "turnaround"
	ModelCyclical   BusinessModel = "cyclical"
)

// Component score keys in IntegratedAnalysis.ComponentScores.
const (
	ComponentLiquidity     = "liquidity"
	ComponentProfitability = "profitability"
	ComponentEfficiency    = "efficiency"
	ComponentLeverage      = "leverage"
	ComponentGrowth        = "growth"
	ComponentQuality       = "quality"
)

// IntegratedAnalysis is the final composite assessment: six component
// scores on a 0-100 scale, their weighted composite, and the derived
// classifications. Stateless, recomputed on every run.
type IntegratedAnalysis struct {
	Health          HealthRating       `json:"financial_health"`
	Model           BusinessModel      `json:"business_model"`
	ComponentScores map[string]float64 `json:"component_scores"`
	CompositeScore  float64            `json:"composite_score"`
	Strengths       []string           `json:"strengths"`
	Weaknesses      []string           `json:"weaknesses"`
	CriticalRisks   []string           `json:"critical_risks"`
	Recommendations []string           `json:"recommendations"`
}
