package performance

import "math"

// TotalScore is the unweighted mean of the per-KPI achievement percentages,
// rounded to two decimals. A missing achievement counts as zero; an empty
// row set scores zero. No KPI weighting exists in this business rule.
func TotalScore(rows []KPIRow) float64 {
	if len(rows) == 0 {
		return 0
	}
	var sum float64
	for _, row := range rows {
		if row.Achievement != nil {
			sum += *row.Achievement
		}
	}
	return math.Round(sum/float64(len(rows))*100) / 100
}

// Categorize maps a total score to its performance category. Boundaries are
// closed on the lower end: 90 is Excellent, 89.99 is Good.
func Categorize(totalScore float64) string {
	switch {
	case totalScore >= 90:
		return CategoryExcellent
	case totalScore >= 75:
		return CategoryGood
	case totalScore >= 60:
		return CategoryAverage
	default:
		return CategoryNeedsImprovement
	}
}
