package responses

import (
	"konsulin-assessment-engine/internal/app/models"
	"time"
)

type Evaluation struct {
	EvaluationID string                  `json:"evaluation_id"`
	PatientID    string                  `json:"patient_id,omitempty"`
	TemplateKey  string                  `json:"template_key"`
	ReportPath   string                  `json:"report_path,omitempty"`
	CreatedAt    time.Time               `json:"created_at"`
	Result       models.AssessmentResult `json:"result"`
}

type AssessmentTemplate struct {
	TemplateKey    string                    `json:"template_key"`
	Maturity       models.TemplateMaturity   `json:"maturity"`
	MaturityWeight float64                   `json:"maturity_weight"`
	ItemCount      int                       `json:"item_count"`
	Definition     models.TemplateDefinition `json:"definition"`
}
