// Command analyze runs the full standardization and analysis pipeline
// over one or more raw statement files (JSON, oldest first) and emits a
// Markdown report.
//
// Usage:
//
//	analyze -ticker F -name "Ford Motor Company" -fy 2023 data/f_2021.json data/f_2022.json data/f_2023.json
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"finstat_engine/pkg/core/analysis"
	"finstat_engine/pkg/core/config"
	"finstat_engine/pkg/core/ingest"
	"finstat_engine/pkg/core/processor"
	"finstat_engine/pkg/core/report"
	"finstat_engine/pkg/core/schema"
	"finstat_engine/pkg/core/store"
	"finstat_engine/pkg/models"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run() error {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	var (
		ticker     = flag.String("ticker", "", "company ticker symbol")
		name       = flag.String("name", "", "company name")
		sector     = flag.String("sector", "", "company sector")
		fiscalYear = flag.Int("fy", time.Now().Year()-1, "fiscal year of the most recent file")
		audit      = flag.String("audit", "audited", "audit status: audited, reviewed, unaudited")
		configPath = flag.String("config", "", "optional HJSON engine config")
		synonyms   = flag.String("synonyms", "", "optional YAML synonym override file")
		outPath    = flag.String("out", "", "write the Markdown report to this file instead of stdout")
		asHTML     = flag.Bool("html", false, "render the report as HTML")
		save       = flag.Bool("save", false, "persist the run to Postgres (DATABASE_URL)")
		verbose    = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	if *verbose {
		log = log.Level(zerolog.DebugLevel)
	} else {
		log = log.Level(zerolog.InfoLevel)
	}

	files := flag.Args()
	if len(files) == 0 {
		return fmt.Errorf("no input files; pass raw statement JSON files oldest first")
	}
	if *ticker == "" {
		return fmt.Errorf("the -ticker flag is required")
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			return err
		}
	}

	sch := schema.Default()
	if *synonyms != "" {
		var err error
		sch, err = schema.LoadOverrides(*synonyms)
		if err != nil {
			return err
		}
	}

	company := models.CompanyInfo{
		Ticker: *ticker,
		Name:   *name,
		Sector: *sector,
	}

	proc := processor.New(sch, cfg, log)
	var statements []*models.FinancialStatements
	baseYear := *fiscalYear - len(files) + 1
	for i, path := range files {
		raw, err := ingest.ReadJSONFile(path)
		if err != nil {
			return err
		}
		fy := baseYear + i
		period := models.FinancialPeriod{
			Type:        models.PeriodAnnual,
			FiscalYear:  fy,
			Label:       fmt.Sprintf("FY%d", fy),
			AuditStatus: models.AuditStatus(*audit),
		}
		fs, err := proc.Process(raw, processor.SourceMap, company, period)
		if err != nil {
			return fmt.Errorf("processing %s: %w", path, err)
		}
		statements = append(statements, fs)
	}

	current := statements[len(statements)-1]
	comparative := statements[:len(statements)-1]

	engine := analysis.NewEngine(cfg, log)
	integrated, results := engine.Analyze(current, comparative, nil)

	doc := report.BuildMarkdown(company, current.Period, integrated, results)
	if !report.Validate(doc) {
		log.Warn().Msg("generated report failed markdown validation")
	}
	if *asHTML {
		html, err := report.RenderHTML(doc)
		if err != nil {
			return err
		}
		doc = html
	}

	if *outPath != "" {
		if err := os.WriteFile(*outPath, []byte(doc), 0o644); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		log.Info().Str("path", *outPath).Msg("report written")
	} else {
		fmt.Println(doc)
	}

	if *save {
		ctx := context.Background()
		if err := store.InitDB(ctx); err != nil {
			return err
		}
		defer store.Close()

		repo := store.NewAnalysisRepo()
		if err := repo.EnsureSchema(ctx); err != nil {
			return err
		}
		run := &store.AnalysisRun{
			Ticker:     company.Ticker,
			FiscalYear: current.Period.FiscalYear,
			Integrated: integrated,
			Results:    results,
		}
		if err := repo.Save(ctx, run); err != nil {
			return err
		}
		log.Info().Str("run_id", run.ID).Msg("analysis run saved")
	}

	return nil
}
