package performance

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{DB: pool}
}

// KPIData joins assignment, master, and realization rows for one employee
// and period. The employee name rides along on every row; the first one is
// used for the prompt.
func (s *Store) KPIData(ctx context.Context, employeeID int64, period string) (string, []KPIRow, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT e.full_name, k.kpi_name,
           COALESCE(a.target_value, 0), COALESCE(r.actual_value, 0),
           r.achievement_percentage
    FROM kpi_assignment a
    JOIN employees e ON e.id = a.employee_id
    JOIN kpi_master k ON k.id = a.kpi_id
    JOIN kpi_realization r ON r.assignment_id = a.id
    WHERE a.employee_id = $1 AND a.period = $2
    ORDER BY k.kpi_name
  `, employeeID, period)
	if err != nil {
		return "", nil, err
	}
	defer rows.Close()

	var employeeName string
	var kpiRows []KPIRow
	for rows.Next() {
		var row KPIRow
		if err := rows.Scan(&employeeName, &row.KPIName, &row.TargetValue, &row.ActualValue, &row.Achievement); err != nil {
			return "", nil, err
		}
		kpiRows = append(kpiRows, row)
	}
	if err := rows.Err(); err != nil {
		return "", nil, err
	}
	return employeeName, kpiRows, nil
}

// UpsertSummary writes the record for (employee, period), replacing any
// prior generation for the same key.
func (s *Store) UpsertSummary(ctx context.Context, summary Summary) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO performance_summary
      (employee_id, period, ai_summary, total_score, performance_category,
       ai_recommendation, ai_motivation, generated_at)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
    ON CONFLICT (employee_id, period)
    DO UPDATE SET
      ai_summary = EXCLUDED.ai_summary,
      total_score = EXCLUDED.total_score,
      performance_category = EXCLUDED.performance_category,
      ai_recommendation = EXCLUDED.ai_recommendation,
      ai_motivation = EXCLUDED.ai_motivation,
      generated_at = EXCLUDED.generated_at,
      updated_at = now()
  `, summary.EmployeeID, summary.Period, summary.AISummary, summary.TotalScore,
		summary.Category, summary.Recommendation, summary.Motivation, summary.GeneratedAt)
	return err
}

func (s *Store) Summary(ctx context.Context, employeeID int64, period string) (Summary, error) {
	var summary Summary
	err := s.DB.QueryRow(ctx, `
    SELECT ps.id, ps.employee_id, COALESCE(e.employee_code, ''), e.full_name,
           ps.period, ps.ai_summary, COALESCE(ps.total_score, 0),
           COALESCE(ps.performance_category, ''),
           ps.ai_recommendation, ps.ai_motivation, ps.generated_at
    FROM performance_summary ps
    JOIN employees e ON e.id = ps.employee_id
    WHERE ps.employee_id = $1 AND ps.period = $2
  `, employeeID, period).Scan(
		&summary.ID, &summary.EmployeeID, &summary.EmployeeCode, &summary.EmployeeName,
		&summary.Period, &summary.AISummary, &summary.TotalScore, &summary.Category,
		&summary.Recommendation, &summary.Motivation, &summary.GeneratedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Summary{}, ErrSummaryNotFound
	}
	if err != nil {
		return Summary{}, err
	}
	return summary, nil
}
