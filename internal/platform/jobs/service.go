package jobs

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const JobDailyMotivation = "daily_motivation"

// Service runs background work on a single worker goroutine. The only
// scheduled job today is the daily motivation warm-up, which pre-generates
// the day's entry so the first user request does not pay the model latency.
type Service struct {
	DB    *pgxpool.Pool
	queue chan job

	motivationInterval time.Duration
	generateMotivation func(context.Context) (any, error)
}

type job struct {
	Type string
	Run  func(context.Context) (any, error)
}

func New(db *pgxpool.Pool, motivationInterval time.Duration, generateMotivation func(context.Context) (any, error)) *Service {
	return &Service{
		DB:                 db,
		queue:              make(chan job, 16),
		motivationInterval: motivationInterval,
		generateMotivation: generateMotivation,
	}
}

func (s *Service) Start(ctx context.Context) {
	go s.worker(ctx)
	if s.motivationInterval > 0 && s.generateMotivation != nil {
		go s.scheduleMotivation(ctx, s.motivationInterval)
	}
}

func (s *Service) Enqueue(jobType string, run func(context.Context) (any, error)) {
	select {
	case s.queue <- job{Type: jobType, Run: run}:
	default:
		slog.Warn("job queue full", "jobType", jobType)
	}
}

func (s *Service) worker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case j := <-s.queue:
			if _, err := s.runJob(ctx, j); err != nil {
				slog.Warn("job run failed", "jobType", j.Type, "err", err)
			}
		}
	}
}

// runJob records the attempt in job_runs regardless of outcome. Bookkeeping
// failures are logged and do not fail the job itself.
func (s *Service) runJob(ctx context.Context, j job) (any, error) {
	var runID int64
	if err := s.DB.QueryRow(ctx, `
    INSERT INTO job_runs (job_type, status)
    VALUES ($1, 'running')
    RETURNING id
  `, j.Type).Scan(&runID); err != nil {
		slog.Warn("job run insert failed", "err", err)
	}

	details, err := j.Run(ctx)
	status := "completed"
	if err != nil {
		status = "failed"
	}
	detailsJSON, marshalErr := json.Marshal(details)
	if marshalErr != nil {
		slog.Warn("job details marshal failed", "err", marshalErr)
		detailsJSON = []byte("{}")
	}
	if runID != 0 {
		if _, updErr := s.DB.Exec(ctx, `
      UPDATE job_runs
      SET status = $1, details_json = $2, completed_at = now()
      WHERE id = $3
    `, status, detailsJSON, runID); updErr != nil {
			slog.Warn("job run update failed", "err", updErr)
		}
	}
	return details, err
}

// scheduleMotivation enqueues a warm-up immediately and then on every tick.
// Generation holds an advisory lock, so concurrent instances stay safe.
func (s *Service) scheduleMotivation(ctx context.Context, interval time.Duration) {
	s.Enqueue(JobDailyMotivation, s.generateMotivation)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Enqueue(JobDailyMotivation, s.generateMotivation)
		}
	}
}
