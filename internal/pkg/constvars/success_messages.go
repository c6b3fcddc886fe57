package constvars

const (
	ResponseUnknown = "unknown"

	// Assessment messages
	FindTemplateSuccessMessage       = "assessment template retrieved successfully"
	EvaluateAssessmentSuccessMessage = "assessment evaluated successfully"
	FindEvaluationSuccessMessage     = "evaluation retrieved successfully"
	HealthCheckSuccessMessage        = "service is healthy"
)
