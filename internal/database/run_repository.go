package database

import (
	"context"
	"encoding/json"
	"fmt"
)

// RunRepository persists pipeline run summaries.
type RunRepository struct {
	db *DB
}

func NewRunRepository(db *DB) *RunRepository {
	return &RunRepository{db: db}
}

// Record writes one pipeline_runs audit row. Failures here are reported
// but must not fail an otherwise successful run; the caller decides.
func (r *RunRepository) Record(ctx context.Context, run RunRecord) error {
	dropped, err := json.Marshal(run.Dropped)
	if err != nil {
		return fmt.Errorf("failed to marshal dropped counts: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO pipeline_runs (
			id, input_path, input_count, cleaned, dropped,
			loaded, skipped, load_failed, started_at, finished_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, run.ID, run.InputPath, run.InputCount, run.Cleaned, dropped,
		run.Loaded, run.Skipped, run.LoadFailed, run.StartedAt, run.FinishedAt)

	if err != nil {
		return fmt.Errorf("failed to record pipeline run: %w", err)
	}

	return nil
}
