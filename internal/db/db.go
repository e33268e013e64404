// Package db provides optional PostgreSQL persistence for prep runs and
// their JSON artifacts. Persistence is best-effort: the pipeline runs fine
// without a database.
package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// CreateRun records a new prep run and returns its ID.
func (db *DB) CreateRun(ctx context.Context, runID uuid.UUID, company, userID, mode string) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO prep_runs (id, company, user_id, mode, status)
		 VALUES ($1, $2, $3, $4, 'running')`,
		runID, company, userID, mode,
	)
	if err != nil {
		return fmt.Errorf("failed to create run: %w", err)
	}
	return nil
}

// CompleteRun marks a prep run as completed or failed.
func (db *DB) CompleteRun(ctx context.Context, runID uuid.UUID, status string) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE prep_runs SET status = $1, completed_at = NOW() WHERE id = $2`,
		status, runID,
	)
	if err != nil {
		return fmt.Errorf("failed to complete run: %w", err)
	}
	return nil
}

// SaveArtifact stores a JSON artifact (email insight, discovery result,
// research artifact) for a run, replacing any prior artifact for the step.
func (db *DB) SaveArtifact(ctx context.Context, runID uuid.UUID, step string, content any) error {
	jsonBytes, err := json.Marshal(content)
	if err != nil {
		return fmt.Errorf("failed to marshal artifact: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO prep_artifacts (run_id, step, content)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (run_id, step) DO UPDATE SET content = $3, created_at = NOW()`,
		runID, step, jsonBytes,
	)
	if err != nil {
		return fmt.Errorf("failed to save artifact %s: %w", step, err)
	}
	return nil
}

// SaveReportPath records where the rendered report was written.
func (db *DB) SaveReportPath(ctx context.Context, runID uuid.UUID, path string) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE prep_runs SET report_path = $1 WHERE id = $2`,
		path, runID,
	)
	if err != nil {
		return fmt.Errorf("failed to save report path: %w", err)
	}
	return nil
}
