package analytics

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
)

func TestScoresFallBackOnJoinError(t *testing.T) {
	joined := func(ctx context.Context, period string) ([]DepartmentScore, error) {
		return nil, errors.New("relation departments does not exist")
	}
	overall := func(ctx context.Context, period string) ([]DepartmentScore, error) {
		return []DepartmentScore{{Department: "All Employees", AvgScore: 85, EmployeeCount: 2}}, nil
	}

	scores, err := scoresWithFallback(context.Background(), "2024-05", joined, overall)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(scores) != 1 || scores[0].Department != "All Employees" {
		t.Fatalf("expected overall average fallback, got %+v", scores)
	}
}

func TestScoresSkipOverallOnJoinSuccess(t *testing.T) {
	joined := func(ctx context.Context, period string) ([]DepartmentScore, error) {
		return []DepartmentScore{
			{Department: "Engineering", AvgScore: 90, EmployeeCount: 3},
			{Department: "Sales", AvgScore: 80, EmployeeCount: 2},
		}, nil
	}
	overall := func(ctx context.Context, period string) ([]DepartmentScore, error) {
		t.Fatal("overall average must not run when the department join succeeds")
		return nil, nil
	}

	scores, err := scoresWithFallback(context.Background(), "2024-05", joined, overall)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(scores) != 2 || scores[0].Department != "Engineering" {
		t.Fatalf("expected joined scores, got %+v", scores)
	}
}

func TestScoresSurfaceOverallError(t *testing.T) {
	failure := errors.New("connection refused")
	joined := func(ctx context.Context, period string) ([]DepartmentScore, error) {
		return nil, errors.New("relation departments does not exist")
	}
	overall := func(ctx context.Context, period string) ([]DepartmentScore, error) {
		return nil, failure
	}

	_, err := scoresWithFallback(context.Background(), "2024-05", joined, overall)
	if !errors.Is(err, failure) {
		t.Fatalf("expected overall error, got %v", err)
	}
}

// TestDepartmentScoresLegacySchema runs the real queries against a scratch
// schema with no departments table and no department_id column, so the
// joined query fails, rolls back, and the overall average must cover the
// whole cohort.
func TestDepartmentScoresLegacySchema(t *testing.T) {
	pool := scratchSchemaPool(t, "analytics_legacy_test", []string{
		`CREATE TABLE employees (
      id BIGSERIAL PRIMARY KEY,
      employee_code TEXT,
      full_name TEXT NOT NULL
    )`,
		`CREATE TABLE performance_summary (
      id BIGSERIAL PRIMARY KEY,
      employee_id BIGINT NOT NULL,
      period TEXT NOT NULL,
      total_score NUMERIC(5,2),
      performance_category TEXT
    )`,
	})

	ctx := context.Background()
	if _, err := pool.Exec(ctx, `
    INSERT INTO employees (employee_code, full_name) VALUES ('EMP-0001', 'Budi'), ('EMP-0002', 'Sari')
  `); err != nil {
		t.Fatalf("insert employees: %v", err)
	}
	if _, err := pool.Exec(ctx, `
    INSERT INTO performance_summary (employee_id, period, total_score, performance_category)
    VALUES (1, '2024-05', 80, 'Good'), (2, '2024-05', 90, 'Excellent')
  `); err != nil {
		t.Fatalf("insert summaries: %v", err)
	}

	store := NewStore(pool)
	scores, err := store.DepartmentScores(ctx, "2024-05")
	if err != nil {
		t.Fatalf("scores against legacy schema failed: %v", err)
	}
	if len(scores) != 1 {
		t.Fatalf("expected single overall row, got %+v", scores)
	}
	if scores[0].Department != "All Employees" || scores[0].AvgScore != 85 || scores[0].EmployeeCount != 2 {
		t.Fatalf("unexpected overall average: %+v", scores[0])
	}

	empty, err := store.DepartmentScores(ctx, "2024-06")
	if err != nil {
		t.Fatalf("scores for empty period failed: %v", err)
	}
	if empty != nil {
		t.Fatalf("expected no rows for empty period, got %+v", empty)
	}
}

func scratchSchemaPool(t *testing.T, schema string, ddl []string) *pgxpool.Pool {
	t.Helper()
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	cfg, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		t.Fatalf("parse database url: %v", err)
	}
	cfg.ConnConfig.RuntimeParams["search_path"] = schema

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() {
		_, _ = pool.Exec(context.Background(), "DROP SCHEMA IF EXISTS "+schema+" CASCADE")
		pool.Close()
	})

	if _, err := pool.Exec(ctx, "DROP SCHEMA IF EXISTS "+schema+" CASCADE"); err != nil {
		t.Fatalf("reset schema: %v", err)
	}
	if _, err := pool.Exec(ctx, "CREATE SCHEMA "+schema); err != nil {
		t.Fatalf("create schema: %v", err)
	}
	for _, stmt := range ddl {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			t.Fatalf("create legacy table: %v", err)
		}
	}
	return pool
}
