package db

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"perfai/internal/auth"
	"perfai/internal/platform/config"
)

// Seed is idempotent: it provisions the admin user and, when enabled, a
// small demo employee with KPI data so the AI pipeline can be exercised on
// a fresh database.
func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	if cfg.SeedAdminUsername == "" || cfg.SeedAdminPassword == "" {
		return nil
	}

	var employeeID *int64
	if cfg.SeedDemoData {
		id, err := ensureDemoEmployee(ctx, pool)
		if err != nil {
			return err
		}
		employeeID = &id
	}

	if err := ensureAdminUser(ctx, pool, cfg.SeedAdminUsername, cfg.SeedAdminPassword, employeeID); err != nil {
		return err
	}
	return nil
}

func ensureAdminUser(ctx context.Context, pool *pgxpool.Pool, username, password string, employeeID *int64) error {
	var id int64
	err := pool.QueryRow(ctx, "SELECT id FROM users WHERE username = $1", username).Scan(&id)
	if err == nil {
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	_, err = pool.Exec(ctx, `
    INSERT INTO users (username, password_hash, full_name, role_id, employee_id, is_active)
    VALUES ($1, $2, 'Administrator', 1, $3, TRUE)
  `, username, hash, employeeID)
	return err
}

func ensureDemoEmployee(ctx context.Context, pool *pgxpool.Pool) (int64, error) {
	var employeeID int64
	err := pool.QueryRow(ctx, "SELECT id FROM employees WHERE employee_code = 'EMP-0001'").Scan(&employeeID)
	if errors.Is(err, pgx.ErrNoRows) {
		err = pool.QueryRow(ctx, `
      INSERT INTO employees (employee_code, full_name, email)
      VALUES ('EMP-0001', 'Budi Santoso', 'budi@example.com')
      RETURNING id
    `).Scan(&employeeID)
	}
	if err != nil {
		return 0, err
	}

	kpis := []struct {
		name        string
		target      float64
		actual      float64
		achievement float64
	}{
		{"Attendance Rate", 95, 92, 96.84},
		{"Task Completion Rate", 90, 85, 94.44},
		{"Quality Score", 85, 88, 103.53},
	}
	for _, kpi := range kpis {
		var kpiID int64
		err := pool.QueryRow(ctx, "SELECT id FROM kpi_master WHERE kpi_name = $1", kpi.name).Scan(&kpiID)
		if errors.Is(err, pgx.ErrNoRows) {
			err = pool.QueryRow(ctx, "INSERT INTO kpi_master (kpi_name) VALUES ($1) RETURNING id", kpi.name).Scan(&kpiID)
		}
		if err != nil {
			return 0, err
		}

		var assignmentID int64
		err = pool.QueryRow(ctx, `
      INSERT INTO kpi_assignment (employee_id, kpi_id, period, target_value)
      VALUES ($1, $2, '2024-05', $3)
      ON CONFLICT (employee_id, kpi_id, period) DO UPDATE SET target_value = EXCLUDED.target_value
      RETURNING id
    `, employeeID, kpiID, kpi.target).Scan(&assignmentID)
		if err != nil {
			return 0, err
		}

		var count int
		if err := pool.QueryRow(ctx, "SELECT COUNT(1) FROM kpi_realization WHERE assignment_id = $1", assignmentID).Scan(&count); err != nil {
			return 0, err
		}
		if count == 0 {
			if _, err := pool.Exec(ctx, `
        INSERT INTO kpi_realization (assignment_id, actual_value, achievement_percentage)
        VALUES ($1, $2, $3)
      `, assignmentID, kpi.actual, kpi.achievement); err != nil {
				return 0, err
			}
		}
	}
	return employeeID, nil
}
