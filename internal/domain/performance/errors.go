package performance

import "errors"

var (
	ErrKPIDataNotFound = errors.New("no KPI data for employee and period")
	ErrSummaryNotFound = errors.New("performance summary not found")
)
