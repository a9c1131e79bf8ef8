package performance

import "context"

type StoreAPI interface {
	KPIData(ctx context.Context, employeeID int64, period string) (employeeName string, rows []KPIRow, err error)
	UpsertSummary(ctx context.Context, summary Summary) error
	Summary(ctx context.Context, employeeID int64, period string) (Summary, error)
}
