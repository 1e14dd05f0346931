// Package analysis hosts the integrated analyzer: it runs the registered
// specialized analyzers, aggregates their results into six component
// scores, and classifies financial health and business model.
package analysis

import (
	"sort"

	"github.com/rs/zerolog"

	"finstat_engine/pkg/core/analyzers"
	"finstat_engine/pkg/core/config"
	"finstat_engine/pkg/core/forensics"
	"finstat_engine/pkg/core/framework"
	"finstat_engine/pkg/models"
)

// Risk level to component-score points.
var riskScores = map[models.RiskLevel]float64{
	models.RiskLow:      100,
	models.RiskModerate: 70,
	models.RiskHigh:     40,
	models.RiskVeryHigh: 20,
}

// Growth-score scaling per growth metric.
const (
	revenueGrowthScale   = 200
	netIncomeGrowthScale = 200
	assetGrowthScale     = 150
	neutralScore         = 50
)

// Engine is the comprehensive analyzer. It holds only read-only
// configuration and its analyzer registry, so one instance is safe for
// concurrent analysis runs.
type Engine struct {
	registry []analyzers.Analyzer
	cfg      config.EngineConfig
	log      zerolog.Logger
}

// NewEngine builds an engine with the reference analyzer set plus the
// forensics detector registered in order.
func NewEngine(cfg config.EngineConfig, log zerolog.Logger) *Engine {
	e := &Engine{
		cfg: cfg,
		log: log.With().Str("module", "analysis").Logger(),
	}
	for _, a := range analyzers.Defaults() {
		e.Register(a)
	}
	e.Register(forensics.NewDetector())
	return e
}

// Register appends an analyzer to the registry. Order is preserved;
// swapping analyzers never requires engine changes.
func (e *Engine) Register(a analyzers.Analyzer) {
	e.registry = append(e.registry, a)
}

// Analyze runs a full single-pass analysis: every registered analyzer,
// component scoring, composite weighting, and classification. The inputs
// are never mutated. Comparative data must be ordered oldest to most
// recent.
func (e *Engine) Analyze(stmts *models.FinancialStatements, comparative []*models.FinancialStatements, industry map[string]models.IndustryStats) (*models.IntegratedAnalysis, []models.AnalysisResult) {
	var results []models.AnalysisResult
	for _, a := range e.registry {
		out := a.Analyze(stmts, comparative, industry)
		e.log.Debug().Str("analyzer", a.Name()).Int("results", len(out)).Msg("analyzer finished")
		results = append(results, out...)
	}

	components := e.componentScores(results)
	components[models.ComponentGrowth] = growthScore(stmts, comparative)

	composite := e.cfg.Weights.Liquidity*components[models.ComponentLiquidity] +
		e.cfg.Weights.Profitability*components[models.ComponentProfitability] +
		e.cfg.Weights.Efficiency*components[models.ComponentEfficiency] +
		e.cfg.Weights.Leverage*components[models.ComponentLeverage] +
		e.cfg.Weights.Growth*components[models.ComponentGrowth] +
		e.cfg.Weights.Quality*components[models.ComponentQuality]

	integrated := &models.IntegratedAnalysis{
		ComponentScores: components,
		CompositeScore:  composite,
		Health:          classifyHealth(composite, results),
		Model:           classifyBusinessModel(stmts, comparative),
	}
	e.deriveFindings(integrated, results)

	ticker := ""
	if stmts != nil {
		ticker = stmts.Company.Ticker
	}
	e.log.Info().
		Str("ticker", ticker).
		Float64("composite", composite).
		Str("health", string(integrated.Health)).
		Str("model", string(integrated.Model)).
		Msg("integrated analysis complete")

	return integrated, results
}

// componentScores averages the risk-mapped scores of each category's
// results. Categories with no results stay at the neutral midpoint.
func (e *Engine) componentScores(results []models.AnalysisResult) map[string]float64 {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, r := range results {
		component, ok := componentFor(r.Category)
		if !ok {
			continue
		}
		sums[component] += riskScores[r.Risk]
		counts[component]++
	}

	components := map[string]float64{
		models.ComponentLiquidity:     neutralScore,
		models.ComponentProfitability: neutralScore,
		models.ComponentEfficiency:    neutralScore,
		models.ComponentLeverage:      neutralScore,
		models.ComponentQuality:       neutralScore,
	}
	for component, sum := range sums {
		components[component] = sum / float64(counts[component])
	}
	return components
}

// componentFor maps result categories onto the six component axes.
func componentFor(c models.Category) (string, bool) {
	switch c {
	case models.CategoryLiquidity:
		return models.ComponentLiquidity, true
	case models.CategoryProfitability:
		return models.ComponentProfitability, true
	case models.CategoryActivity:
		return models.ComponentEfficiency, true
	case models.CategorySolvency:
		return models.ComponentLeverage, true
	case models.CategoryQuality:
		return models.ComponentQuality, true
	default:
		return "", false
	}
}

// growthScore maps period-over-period growth in revenue, net income and
// total assets onto a 0-100 scale. Neutral 50 without comparatives.
func growthScore(stmts *models.FinancialStatements, comparative []*models.FinancialStatements) float64 {
	if stmts == nil || len(comparative) == 0 {
		return neutralScore
	}
	prior := comparative[len(comparative)-1]

	scores := []float64{
		scaledGrowth(stmts.IS("revenue"), prior.IS("revenue"), revenueGrowthScale),
		scaledGrowth(stmts.IS("net_income"), prior.IS("net_income"), netIncomeGrowthScale),
		scaledGrowth(stmts.BS("total_assets"), prior.BS("total_assets"), assetGrowthScale),
	}

	total := 0.0
	for _, s := range scores {
		total += s
	}
	return total / float64(len(scores))
}

func scaledGrowth(current, prior, scale float64) float64 {
	growth := framework.SafeDivide(current-prior, prior, 0)
	score := neutralScore + growth*scale
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// classifyHealth applies the score bands with the distressed override:
// three very-high-risk results or six high-risk results force distressed
// regardless of the composite.
func classifyHealth(composite float64, results []models.AnalysisResult) models.HealthRating {
	veryHigh, high := 0, 0
	for _, r := range results {
		switch r.Risk {
		case models.RiskVeryHigh:
			veryHigh++
		case models.RiskHigh:
			high++
		}
	}
	if veryHigh >= 3 || high >= 6 {
		return models.HealthDistressed
	}

	switch {
	case composite >= 85:
		return models.HealthExcellent
	case composite >= 70:
		return models.HealthGood
	case composite >= 55:
		return models.HealthFair
	case composite >= 40:
		return models.HealthPoor
	default:
		return models.HealthDistressed
	}
}

// classifyBusinessModel walks the fixed decision order: asset-heavy,
// asset-light, growth, turnaround, mature, cyclical.
func classifyBusinessModel(stmts *models.FinancialStatements, comparative []*models.FinancialStatements) models.BusinessModel {
	if stmts == nil {
		return models.ModelCyclical
	}

	assetToRevenue := framework.SafeDivide(stmts.BS("total_assets"), stmts.IS("revenue"), 0)
	ppeShare := framework.SafeDivide(stmts.BS("ppe_net"), stmts.BS("total_assets"), 0)
	netMargin := framework.SafeDivide(stmts.IS("net_income"), stmts.IS("revenue"), 0)

	if assetToRevenue > 2.0 || ppeShare > 0.4 {
		return models.ModelAssetHeavy
	}
	if assetToRevenue != 0 && assetToRevenue < 0.8 && ppeShare < 0.2 {
		return models.ModelAssetLight
	}

	if len(comparative) > 0 {
		prior := comparative[len(comparative)-1]
		revGrowth := framework.SafeDivide(stmts.IS("revenue")-prior.IS("revenue"), prior.IS("revenue"), 0)
		if revGrowth > 0.10 && netMargin > 0 {
			return models.ModelGrowth
		}
	}

	lossYears := 0
	start := len(comparative) - 3
	if start < 0 {
		start = 0
	}
	for _, prior := range comparative[start:] {
		if prior.IS("net_income") < 0 {
			lossYears++
		}
	}
	if lossYears >= 2 {
		return models.ModelTurnaround
	}

	if netMargin > 0 {
		return models.ModelMature
	}
	return models.ModelCyclical
}

// deriveFindings extracts strengths, weaknesses, critical risks and
// recommendations from the flat result list.
func (e *Engine) deriveFindings(ia *models.IntegratedAnalysis, results []models.AnalysisResult) {
	type tally struct {
		total, low, high, veryHigh int
	}
	byCategory := make(map[models.Category]*tally)
	for _, r := range results {
		t := byCategory[r.Category]
		if t == nil {
			t = &tally{}
			byCategory[r.Category] = t
		}
		t.total++
		switch r.Risk {
		case models.RiskLow:
			t.low++
		case models.RiskHigh:
			t.high++
		case models.RiskVeryHigh:
			t.veryHigh++
		}
	}

	categories := make([]models.Category, 0, len(byCategory))
	for c := range byCategory {
		categories = append(categories, c)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i] < categories[j] })

	for _, c := range categories {
		t := byCategory[c]
		if t.total < 2 {
			continue
		}
		elevated := t.high + t.veryHigh
		if t.low*3 >= t.total*2 {
			ia.Strengths = append(ia.Strengths, "Strong "+string(c)+" profile across multiple metrics")
		}
		if elevated*3 >= t.total*2 {
			ia.Weaknesses = append(ia.Weaknesses, "Broad "+string(c)+" weakness across multiple metrics")
		}
		if t.high >= 2 {
			ia.CriticalRisks = append(ia.CriticalRisks, "Multiple high-risk "+string(c)+" indicators")
		}
	}

	for _, r := range results {
		if r.Risk == models.RiskVeryHigh {
			ia.CriticalRisks = append(ia.CriticalRisks, "Severe risk in "+r.Metric+": "+r.Interpretation)
		}
		ia.Recommendations = append(ia.Recommendations, r.Recommendations...)
	}

	if hasRiskAtLeastHigh(results, models.CategoryLiquidity) && hasRiskAtLeastHigh(results, models.CategorySolvency) {
		ia.CriticalRisks = append(ia.CriticalRisks,
			"Combined liquidity and solvency risks create financial distress potential")
		ia.Recommendations = append(ia.Recommendations,
			"Prioritize liquidity preservation and debt restructuring options")
	}

	if len(ia.Recommendations) == 0 && len(ia.Weaknesses) > 0 {
		ia.Recommendations = append(ia.Recommendations, "Address the weakest component scores before expanding")
	}
	ia.Recommendations = dedupe(ia.Recommendations)
}

func hasRiskAtLeastHigh(results []models.AnalysisResult, category models.Category) bool {
	for _, r := range results {
		if r.Category == category && (r.Risk == models.RiskHigh || r.Risk == models.RiskVeryHigh) {
			return true
		}
	}
	return false
}

func dedupe(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := items[:0]
	for _, s := range items {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
