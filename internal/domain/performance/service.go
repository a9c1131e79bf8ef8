package performance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"perfai/internal/ai"
)

// TextGenerator is the slice of the AI client this domain needs.
type TextGenerator interface {
	Complete(ctx context.Context, prompt string, numPredict int) (string, error)
}

type Service struct {
	store StoreAPI
	ai    TextGenerator
}

func NewService(store StoreAPI, generator TextGenerator) *Service {
	return &Service{store: store, ai: generator}
}

// Generate produces and persists the performance summary for one employee
// and period, replacing any earlier record for the same key. The AI call is
// fatal on failure: nothing is persisted. Structured-field extraction is
// best effort and never blocks a successful generation.
func (s *Service) Generate(ctx context.Context, employeeID int64, period string) (string, error) {
	employeeName, rows, err := s.store.KPIData(ctx, employeeID, period)
	if err != nil {
		return "", fmt.Errorf("load kpi data: %w", err)
	}
	if len(rows) == 0 {
		return "", ErrKPIDataNotFound
	}

	prompt := ai.BuildPerformancePrompt(employeeName, toPromptLines(rows), period)

	rawText, err := s.ai.Complete(ctx, prompt, summaryNumPredict)
	if err != nil {
		return "", fmt.Errorf("generate summary: %w", err)
	}

	recommendation, motivation := ExtractInsights(rawText)
	if recommendation == nil && motivation == nil {
		slog.Warn("no structured fields extracted from model output",
			"employeeID", employeeID, "period", period)
	}

	totalScore := TotalScore(rows)
	summary := Summary{
		EmployeeID:     employeeID,
		Period:         period,
		AISummary:      rawText,
		TotalScore:     totalScore,
		Category:       Categorize(totalScore),
		Recommendation: recommendation,
		Motivation:     motivation,
		GeneratedAt:    time.Now(),
	}
	if err := s.store.UpsertSummary(ctx, summary); err != nil {
		return "", fmt.Errorf("persist summary: %w", err)
	}
	return rawText, nil
}

// GetSummary is a pure read. Display-time repair of the stored raw text is
// the caller's concern (RepairForDisplay), so old records stored before
// reconciliation existed render the same way as fresh ones.
func (s *Service) GetSummary(ctx context.Context, employeeID int64, period string) (Summary, error) {
	return s.store.Summary(ctx, employeeID, period)
}

func toPromptLines(rows []KPIRow) []ai.KPILine {
	lines := make([]ai.KPILine, 0, len(rows))
	for _, row := range rows {
		var achievement float64
		if row.Achievement != nil {
			achievement = *row.Achievement
		}
		lines = append(lines, ai.KPILine{
			Name:        row.KPIName,
			Target:      row.TargetValue,
			Actual:      row.ActualValue,
			Achievement: achievement,
		})
	}
	return lines
}
