package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"finstat_engine/pkg/models"
)

// AnalysisRun couples one integrated assessment with the flat result list
// it was aggregated from.
type AnalysisRun struct {
	ID         string                     `json:"id"`
	Ticker     string                     `json:"ticker"`
	FiscalYear int                        `json:"fiscal_year"`
	CreatedAt  time.Time                  `json:"created_at"`
	Integrated *models.IntegratedAnalysis `json:"integrated"`
	Results    []models.AnalysisResult    `json:"results"`
}

// AnalysisRepository stores and retrieves analysis runs.
type AnalysisRepository interface {
	Save(ctx context.Context, run *AnalysisRun) error
	Load(ctx context.Context, id string) (*AnalysisRun, error)
	Latest(ctx context.Context, ticker string) (*AnalysisRun, error)
}

// PGAnalysisRepo is the Postgres-backed repository.
type PGAnalysisRepo struct{}

func NewAnalysisRepo() *PGAnalysisRepo {
	return &PGAnalysisRepo{}
}

// EnsureSchema creates the backing table when it does not exist yet.
func (r *PGAnalysisRepo) EnsureSchema(ctx context.Context) error {
	pool := GetPool()
	if pool == nil {
		return fmt.Errorf("database pool not initialized")
	}
	statements := []string{
		`CREATE TABLE IF NOT EXISTS analysis_runs (
			id UUID PRIMARY KEY,
			ticker TEXT NOT NULL,
			fiscal_year INT NOT NULL,
			payload JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS analysis_runs_ticker_idx ON analysis_runs (ticker, created_at DESC)`,
	}
	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
	}
	return nil
}

// Save persists a run, assigning a fresh UUID when none is set.
func (r *PGAnalysisRepo) Save(ctx context.Context, run *AnalysisRun) error {
	pool := GetPool()
	if pool == nil {
		return fmt.Errorf("database pool not initialized")
	}
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}

	payload, err := json.Marshal(run)
	if err != nil {
		return fmt.Errorf("failed to marshal run: %w", err)
	}

	_, err = pool.Exec(ctx, `
		INSERT INTO analysis_runs (id, ticker, fiscal_year, payload, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, run.ID, run.Ticker, run.FiscalYear, payload, run.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save analysis run: %w", err)
	}
	return nil
}

// Load retrieves one run by ID.
func (r *PGAnalysisRepo) Load(ctx context.Context, id string) (*AnalysisRun, error) {
	return r.queryOne(ctx, `SELECT payload FROM analysis_runs WHERE id = $1`, id)
}

// Latest retrieves the most recent run for a ticker.
func (r *PGAnalysisRepo) Latest(ctx context.Context, ticker string) (*AnalysisRun, error) {
	return r.queryOne(ctx, `
		SELECT payload FROM analysis_runs
		WHERE ticker = $1
		ORDER BY created_at DESC
		LIMIT 1
	`, ticker)
}

func (r *PGAnalysisRepo) queryOne(ctx context.Context, query string, arg any) (*AnalysisRun, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	var payload []byte
	err := pool.QueryRow(ctx, query, arg).Scan(&payload)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load analysis run: %w", err)
	}

	var run AnalysisRun
	if err := json.Unmarshal(payload, &run); err != nil {
		return nil, fmt.Errorf("failed to unmarshal run: %w", err)
	}
	return &run, nil
}
