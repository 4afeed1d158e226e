package db

import (
	"context"
	_ "embed"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/loadbay/pallet-engine/pkg/models"
)

// schemaSQL is compiled into the binary at build time.
// This ensures schema init works inside the Docker runtime image which
// does not copy internal/db/schema.sql into the final stage.
//
//go:embed schema.sql
var schemaSQL string

type PostgresStore struct {
	pool *pgxpool.Pool
}

// Connect initializes the connection pool to PostgreSQL using pgx
func Connect(connStr string) (*PostgresStore, error) {
	pool, err := pgxpool.New(context.Background(), connStr)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %v", err)
	}

	if err := pool.Ping(context.Background()); err != nil {
		return nil, fmt.Errorf("ping failed: %v", err)
	}

	log.Println("Successfully connected to PostgreSQL for Pallet Engine")
	return &PostgresStore{pool: pool}, nil
}

// Close gracefully closes the connection pool
func (s *PostgresStore) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// InitSchema executes the embedded schema.sql DDL statements.
func (s *PostgresStore) InitSchema() error {
	_, err := s.pool.Exec(context.Background(), schemaSQL)
	if err != nil {
		return fmt.Errorf("failed to execute schema migrations: %v", err)
	}

	log.Println("Pallet Engine schema initialized")
	return nil
}

// SaveRun persists one completed solve.
func (s *PostgresStore) SaveRun(ctx context.Context, rec models.RunRecord) error {
	sql := `
		INSERT INTO solve_runs
			(run_id, algorithm, dataset, pallets, capacity, profit, weight, selected_ids, elapsed_ms)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := s.pool.Exec(ctx, sql,
		rec.RunID,
		rec.Algorithm,
		rec.Dataset,
		rec.Pallets,
		rec.Capacity,
		rec.Solution.TotalProfit,
		rec.Solution.TotalWeight,
		rec.Solution.SelectedIDs,
		rec.ElapsedMS,
	)
	if err != nil {
		return fmt.Errorf("failed to insert solve run: %v", err)
	}
	return nil
}

// GetRuns returns past solves newest first, optionally filtered by
// algorithm, with the unpaginated total for the API's pagination header.
func (s *PostgresStore) GetRuns(ctx context.Context, algorithm string, page, limit int) ([]models.RunRecord, int, error) {
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * limit

	var totalCount int
	countSQL := `SELECT COUNT(*) FROM solve_runs WHERE ($1 = '' OR algorithm = $1)`
	if err := s.pool.QueryRow(ctx, countSQL, algorithm).Scan(&totalCount); err != nil {
		return nil, 0, err
	}

	dataSQL := `
		SELECT run_id, algorithm, dataset, pallets, capacity, profit, weight, selected_ids, elapsed_ms, created_at
		FROM solve_runs
		WHERE ($1 = '' OR algorithm = $1)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := s.pool.Query(ctx, dataSQL, algorithm, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	runs := make([]models.RunRecord, 0)
	for rows.Next() {
		var rec models.RunRecord
		err := rows.Scan(
			&rec.RunID,
			&rec.Algorithm,
			&rec.Dataset,
			&rec.Pallets,
			&rec.Capacity,
			&rec.Solution.TotalProfit,
			&rec.Solution.TotalWeight,
			&rec.Solution.SelectedIDs,
			&rec.ElapsedMS,
			&rec.CreatedAt,
		)
		if err != nil {
			return nil, 0, err
		}
		if rec.Solution.SelectedIDs == nil {
			rec.Solution.SelectedIDs = []int{}
		}
		runs = append(runs, rec)
	}
	if rows.Err() != nil {
		return nil, 0, rows.Err()
	}
	return runs, totalCount, nil
}

// SaveDivergence upserts the latest greedy-vs-optimal gap for a dataset.
func (s *PostgresStore) SaveDivergence(ctx context.Context, d models.Divergence) error {
	sql := `
		INSERT INTO divergences (dataset, optimal_profit, greedy_profit, accuracy)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (dataset) DO UPDATE SET
			optimal_profit = EXCLUDED.optimal_profit,
			greedy_profit = EXCLUDED.greedy_profit,
			accuracy = EXCLUDED.accuracy,
			observed_at = NOW();
	`
	_, err := s.pool.Exec(ctx, sql, d.Dataset, d.OptimalProfit, d.GreedyProfit, d.Accuracy)
	return err
}

// GetDivergences lists datasets where greedy fell short, worst first.
func (s *PostgresStore) GetDivergences(ctx context.Context) ([]models.Divergence, error) {
	sql := `
		SELECT dataset, optimal_profit, greedy_profit, accuracy
		FROM divergences
		WHERE greedy_profit < optimal_profit
		ORDER BY accuracy ASC;
	`
	rows, err := s.pool.Query(ctx, sql)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	divs := make([]models.Divergence, 0)
	for rows.Next() {
		var d models.Divergence
		if err := rows.Scan(&d.Dataset, &d.OptimalProfit, &d.GreedyProfit, &d.Accuracy); err != nil {
			return nil, err
		}
		divs = append(divs, d)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return divs, nil
}

// GetPool exposes the connection pool for other subsystems
func (s *PostgresStore) GetPool() *pgxpool.Pool {
	return s.pool
}
