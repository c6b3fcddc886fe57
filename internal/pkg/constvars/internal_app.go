package constvars

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
)

const (
	ResourceTemplates   = "templates"
	ResourceVersions    = "versions"
	ResourceEvaluations = "evaluations"
)

const (
	CollectionAssessmentTemplates   = "assessment_templates"
	CollectionAssessmentEvaluations = "assessment_evaluations"
)

const (
	RedisKeyPrefixAssessmentTemplate = "assessment_template:"
	RedisKeyPrefixSeedLock           = "assessment_template_seed_lock:"
	ReportObjectPrefix               = "reports/"
	EventTypeAssessmentEvaluated     = "assessment.evaluated"
)
