package constvars

const (
	URLParamTemplateID      = "template_id"
	URLParamTemplateVersion = "template_version"
	URLParamEvaluationID    = "evaluation_id"
)
