package performance

const (
	CategoryExcellent        = "Excellent"
	CategoryGood             = "Good"
	CategoryAverage          = "Average"
	CategoryNeedsImprovement = "Needs Improvement"
)

// summaryNumPredict bounds the generated token count for summary prompts.
const summaryNumPredict = 400
