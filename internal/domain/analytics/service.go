package analytics

import (
	"context"
	"fmt"
)

const performerLimit = 5

type StoreAPI interface {
	DepartmentScores(ctx context.Context, period string) ([]DepartmentScore, error)
	TopPerformers(ctx context.Context, period string, limit int) ([]Performer, error)
	Underperformers(ctx context.Context, period string, limit int) ([]Performer, error)
	CategoryDistribution(ctx context.Context, period string) ([]CategoryCount, error)
}

type Service struct {
	store StoreAPI
}

func NewService(store StoreAPI) *Service {
	return &Service{store: store}
}

func (s *Service) Report(ctx context.Context, period string) (Report, error) {
	departments, err := s.store.DepartmentScores(ctx, period)
	if err != nil {
		return Report{}, fmt.Errorf("department scores: %w", err)
	}
	top, err := s.store.TopPerformers(ctx, period, performerLimit)
	if err != nil {
		return Report{}, fmt.Errorf("top performers: %w", err)
	}
	bottom, err := s.store.Underperformers(ctx, period, performerLimit)
	if err != nil {
		return Report{}, fmt.Errorf("underperformers: %w", err)
	}
	distribution, err := s.store.CategoryDistribution(ctx, period)
	if err != nil {
		return Report{}, fmt.Errorf("category distribution: %w", err)
	}
	return Report{
		Period:                period,
		AvgScorePerDepartment: departments,
		TopPerformers:         top,
		Underperformers:       bottom,
		CategoryDistribution:  distribution,
	}, nil
}
