package report

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/skyroutes/airnet/pkg/attack"
	"github.com/skyroutes/airnet/pkg/logging"
)

// PGStore persists run results in PostgreSQL for cross-run comparison.
type PGStore struct {
	pool   *pgxpool.Pool
	logger logging.Logger
}

// NewPGStore connects, verifies the connection, and creates the schema.
func NewPGStore(ctx context.Context, databaseURL string, maxConns int32, logger logging.Logger) (*PGStore, error) {
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}
	if maxConns > 0 {
		config.MaxConns = maxConns
	}
	config.MaxConnLifetime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("database unreachable: %w", err)
	}

	s := &PGStore{pool: pool, logger: logger.With(logging.Component("report"))}
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}
	return s, nil
}

// Close releases the connection pool.
func (s *PGStore) Close() error {
	s.pool.Close()
	return nil
}

// migrate creates the result tables.
func (s *PGStore) migrate(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS airnet_runs (
		run_id TEXT PRIMARY KEY,
		started_at TIMESTAMPTZ NOT NULL,
		finished_at TIMESTAMPTZ NOT NULL,
		airports INT NOT NULL,
		routes INT NOT NULL,
		giant_size INT NOT NULL,
		seed BIGINT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS airnet_centrality (
		run_id TEXT NOT NULL REFERENCES airnet_runs(run_id),
		airport_id BIGINT NOT NULL,
		iata TEXT,
		name TEXT,
		country TEXT,
		degree INT NOT NULL,
		closeness DOUBLE PRECISION,
		betweenness DOUBLE PRECISION,
		eigenvector DOUBLE PRECISION,
		PRIMARY KEY (run_id, airport_id)
	);

	CREATE TABLE IF NOT EXISTS airnet_robustness (
		run_id TEXT NOT NULL REFERENCES airnet_runs(run_id),
		strategy TEXT NOT NULL,
		removed_count INT NOT NULL,
		removed_fraction DOUBLE PRECISION NOT NULL,
		giant_fraction DOUBLE PRECISION NOT NULL,
		efficiency DOUBLE PRECISION,
		component_count INT NOT NULL,
		PRIMARY KEY (run_id, strategy, removed_count)
	);

	CREATE INDEX IF NOT EXISTS idx_airnet_centrality_country ON airnet_centrality(country);
	CREATE INDEX IF NOT EXISTS idx_airnet_robustness_strategy ON airnet_robustness(strategy);
	`

	_, err := s.pool.Exec(ctx, schema)
	return err
}

// SaveRun records the run header.
func (s *PGStore) SaveRun(ctx context.Context, meta RunMeta) error {
	query := `
		INSERT INTO airnet_runs (run_id, started_at, finished_at, airports, routes, giant_size, seed)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (run_id) DO NOTHING
	`
	_, err := s.pool.Exec(ctx, query,
		meta.RunID, meta.StartedAt, meta.FinishedAt,
		meta.Airports, meta.Routes, meta.GiantSize, meta.Seed)
	if err != nil {
		return fmt.Errorf("save run: %w", err)
	}
	return nil
}

// SaveCentrality bulk-inserts the centrality table for one run.
func (s *PGStore) SaveCentrality(ctx context.Context, runID string, rows []CentralityRow) error {
	batch := &pgx.Batch{}
	query := `
		INSERT INTO airnet_centrality
			(run_id, airport_id, iata, name, country, degree, closeness, betweenness, eigenvector)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (run_id, airport_id) DO NOTHING
	`
	for _, r := range rows {
		batch.Queue(query, runID, int64(r.NodeID), r.IATA, r.Name, r.Country,
			r.Degree, r.Closeness, r.Betweenness, r.Eigenvector)
	}

	results := s.pool.SendBatch(ctx, batch)
	defer results.Close()
	for range rows {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("save centrality: %w", err)
		}
	}
	s.logger.Info("centrality rows persisted", logging.Count(len(rows)))
	return nil
}

// SaveRobustness bulk-inserts one strategy's checkpoint series.
func (s *PGStore) SaveRobustness(ctx context.Context, runID string, strategy attack.Strategy, cps []attack.Checkpoint) error {
	batch := &pgx.Batch{}
	query := `
		INSERT INTO airnet_robustness
			(run_id, strategy, removed_count, removed_fraction, giant_fraction, efficiency, component_count)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (run_id, strategy, removed_count) DO NOTHING
	`
	for _, cp := range cps {
		batch.Queue(query, runID, string(strategy), cp.RemovedCount,
			cp.RemovedFraction, cp.GiantFraction, cp.Efficiency, cp.ComponentCount)
	}

	results := s.pool.SendBatch(ctx, batch)
	defer results.Close()
	for range cps {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("save robustness: %w", err)
		}
	}
	s.logger.Info("robustness rows persisted",
		logging.Strategy(string(strategy)), logging.Count(len(cps)))
	return nil
}
