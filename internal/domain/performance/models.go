package performance

import "time"

// KPIRow is one row of the assignment/master/realization join for an
// employee and period. Achievement is nil when no realization value was
// recorded; scoring treats that as zero.
type KPIRow struct {
	KPIName     string
	TargetValue float64
	ActualValue float64
	Achievement *float64
}

// Summary is the stored performance record, unique per (employee, period).
// AISummary keeps the raw model output verbatim; Recommendation and
// Motivation are best-effort structured extractions and may be nil.
type Summary struct {
	ID             int64     `json:"id"`
	EmployeeID     int64     `json:"employee_id"`
	EmployeeCode   string    `json:"employee_code,omitempty"`
	EmployeeName   string    `json:"employee_name,omitempty"`
	Period         string    `json:"period"`
	AISummary      string    `json:"ai_summary"`
	TotalScore     float64   `json:"total_score"`
	Category       string    `json:"performance_category"`
	Recommendation *string   `json:"ai_recommendation"`
	Motivation     *string   `json:"ai_motivation"`
	GeneratedAt    time.Time `json:"generated_at"`
}
