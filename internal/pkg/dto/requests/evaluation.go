package requests

import "konsulin-assessment-engine/internal/app/models"

type EvaluateAssessment struct {
	TemplateID      string             `json:"-" validate:"template_key_part"`
	TemplateVersion string             `json:"-" validate:"template_key_part"`
	PatientID       string             `json:"patient_id" validate:"omitempty,max=128"`
	Answers         []AssessmentAnswer `json:"answers" validate:"dive"`
	Context         *EvaluationContext `json:"context" validate:"omitempty"`
}

// AssessmentAnswer carries either an option value, a score, or both. When only
// the value is given the score is looked up from the item's options.
type AssessmentAnswer struct {
	ItemNumber     int                `json:"item_number" validate:"gte=1"`
	Value          models.OptionValue `json:"value"`
	Score          *float64           `json:"score"`
	Skipped        bool               `json:"skipped"`
	ResponseTimeMs *float64           `json:"response_time_ms" validate:"omitempty,gte=0"`
}

type EvaluationContext struct {
	Age    *int   `json:"age" validate:"omitempty,gte=0,lte=130"`
	Gender string `json:"gender" validate:"omitempty,max=32"`
}

type FindAssessmentTemplate struct {
	TemplateID      string `validate:"template_key_part"`
	TemplateVersion string `validate:"template_key_part"`
}

type FindEvaluation struct {
	EvaluationID string `validate:"uuid"`
}
