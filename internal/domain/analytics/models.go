package analytics

type DepartmentScore struct {
	Department    string  `json:"department"`
	AvgScore      float64 `json:"avg_score"`
	EmployeeCount int     `json:"employee_count"`
}

type Performer struct {
	EmployeeID   int64   `json:"employee_id"`
	EmployeeCode string  `json:"employee_code"`
	FullName     string  `json:"full_name"`
	TotalScore   float64 `json:"total_score"`
	Category     string  `json:"performance_category"`
}

type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// Report is the decision-support view over one period.
type Report struct {
	Period                string            `json:"period"`
	AvgScorePerDepartment []DepartmentScore `json:"avg_score_per_department"`
	TopPerformers         []Performer       `json:"top_performers"`
	Underperformers       []Performer       `json:"underperformers"`
	CategoryDistribution  []CategoryCount   `json:"category_distribution"`
}
