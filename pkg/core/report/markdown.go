// Package report renders an integrated analysis into a Markdown document
// for whatever presentation layer sits on top.
package report

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/text"

	"finstat_engine/pkg/models"
)

// BuildMarkdown renders the full analysis payload as Markdown.
func BuildMarkdown(company models.CompanyInfo, period models.FinancialPeriod, ia *models.IntegratedAnalysis, results []models.AnalysisResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Financial Analysis: %s (%s)\n\n", company.Name, company.Ticker)
	fmt.Fprintf(&b, "Period: %s | Fiscal year %d | %s\n\n", period.Label, period.FiscalYear, period.AuditStatus)

	fmt.Fprintf(&b, "## Overall Assessment\n\n")
	fmt.Fprintf(&b, "- Financial health: **%s**\n", ia.Health)
	fmt.Fprintf(&b, "- Business model: **%s**\n", ia.Model)
	fmt.Fprintf(&b, "- Composite score: **%.1f / 100**\n\n", ia.CompositeScore)

	fmt.Fprintf(&b, "## Component Scores\n\n")
	fmt.Fprintf(&b, "| Component | Score |\n|---|---|\n")
	components := make([]string, 0, len(ia.ComponentScores))
	for c := range ia.ComponentScores {
		components = append(components, c)
	}
	sort.Strings(components)
	for _, c := range components {
		fmt.Fprintf(&b, "| %s | %.1f |\n", c, ia.ComponentScores[c])
	}
	b.WriteString("\n")

	writeList(&b, "Strengths", ia.Strengths)
	writeList(&b, "Weaknesses", ia.Weaknesses)
	writeList(&b, "Critical Risks", ia.CriticalRisks)
	writeList(&b, "Recommendations", ia.Recommendations)

	fmt.Fprintf(&b, "## Metrics\n\n")
	fmt.Fprintf(&b, "| Category | Metric | Value | Risk | Interpretation |\n|---|---|---|---|---|\n")
	for _, r := range results {
		fmt.Fprintf(&b, "| %s | %s | %.3f | %s | %s |\n",
			r.Category, r.Metric, r.Value, r.Risk, r.Interpretation)
	}

	return b.String()
}

func writeList(b *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "## %s\n\n", title)
	for _, item := range items {
		fmt.Fprintf(b, "- %s\n", item)
	}
	b.WriteString("\n")
}

// Validate checks that a document parses as Markdown. Goldmark is very
// permissive, so this is a structural sanity check, not a lint.
func Validate(markdown string) bool {
	parser := goldmark.DefaultParser()
	doc := parser.Parse(text.NewReader([]byte(markdown)))
	return doc != nil
}

// RenderHTML converts a Markdown report to HTML.
func RenderHTML(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return buf.String(), nil
}
