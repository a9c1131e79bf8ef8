package analytics

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{DB: pool}
}

type scoresFunc func(ctx context.Context, period string) ([]DepartmentScore, error)

// DepartmentScores averages scores per department. The department join is
// speculative: legacy databases may lack the departments table or the
// department_id column, so the query runs in its own transaction and a
// failure rolls back and falls through to the overall average.
func (s *Store) DepartmentScores(ctx context.Context, period string) ([]DepartmentScore, error) {
	return scoresWithFallback(ctx, period, s.departmentScoresJoined, s.overallScore)
}

func scoresWithFallback(ctx context.Context, period string, joined, overall scoresFunc) ([]DepartmentScore, error) {
	scores, err := joined(ctx, period)
	if err == nil {
		return scores, nil
	}
	return overall(ctx, period)
}

func (s *Store) departmentScoresJoined(ctx context.Context, period string) ([]DepartmentScore, error) {
	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	rows, err := tx.Query(ctx, `
    SELECT COALESCE(d.name, 'Unassigned') AS department_name,
           ROUND(AVG(ps.total_score)::numeric, 2) AS avg_score,
           COUNT(ps.employee_id) AS employee_count
    FROM performance_summary ps
    JOIN employees e ON e.id = ps.employee_id
    LEFT JOIN departments d ON d.id = e.department_id
    WHERE ps.period = $1 AND ps.total_score IS NOT NULL
    GROUP BY d.id, d.name
    ORDER BY avg_score DESC
  `, period)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var scores []DepartmentScore
	for rows.Next() {
		var score DepartmentScore
		if err := rows.Scan(&score.Department, &score.AvgScore, &score.EmployeeCount); err != nil {
			return nil, err
		}
		scores = append(scores, score)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return scores, nil
}

func (s *Store) overallScore(ctx context.Context, period string) ([]DepartmentScore, error) {
	var score DepartmentScore
	var count int
	err := s.DB.QueryRow(ctx, `
    SELECT ROUND(COALESCE(AVG(total_score), 0)::numeric, 2) AS avg_score,
           COUNT(employee_id) AS employee_count
    FROM performance_summary
    WHERE period = $1 AND total_score IS NOT NULL
  `, period).Scan(&score.AvgScore, &count)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, nil
	}
	score.Department = "All Employees"
	score.EmployeeCount = count
	return []DepartmentScore{score}, nil
}

func (s *Store) TopPerformers(ctx context.Context, period string, limit int) ([]Performer, error) {
	return s.performers(ctx, period, limit, "DESC")
}

func (s *Store) Underperformers(ctx context.Context, period string, limit int) ([]Performer, error) {
	return s.performers(ctx, period, limit, "ASC")
}

func (s *Store) performers(ctx context.Context, period string, limit int, direction string) ([]Performer, error) {
	order := "ps.total_score DESC"
	if direction == "ASC" {
		order = "ps.total_score ASC"
	}
	rows, err := s.DB.Query(ctx, `
    SELECT e.id, COALESCE(e.employee_code, ''), e.full_name,
           COALESCE(ps.total_score, 0), COALESCE(ps.performance_category, 'N/A')
    FROM performance_summary ps
    JOIN employees e ON e.id = ps.employee_id
    WHERE ps.period = $1 AND ps.total_score IS NOT NULL
    ORDER BY `+order+`
    LIMIT $2
  `, period, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var performers []Performer
	for rows.Next() {
		var p Performer
		if err := rows.Scan(&p.EmployeeID, &p.EmployeeCode, &p.FullName, &p.TotalScore, &p.Category); err != nil {
			return nil, err
		}
		performers = append(performers, p)
	}
	return performers, rows.Err()
}

func (s *Store) CategoryDistribution(ctx context.Context, period string) ([]CategoryCount, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT performance_category, COUNT(*) AS count
    FROM performance_summary
    WHERE period = $1 AND performance_category IS NOT NULL
    GROUP BY performance_category
    ORDER BY count DESC
  `, period)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []CategoryCount
	for rows.Next() {
		var c CategoryCount
		if err := rows.Scan(&c.Category, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}
