package utils

import (
	"konsulin-assessment-engine/internal/app/models"
	"konsulin-assessment-engine/internal/pkg/dto/requests"
	"strings"
)

func SanitizeEvaluateAssessmentRequest(input *requests.EvaluateAssessment) {
	input.TemplateID = strings.TrimSpace(input.TemplateID)
	input.TemplateVersion = strings.TrimSpace(input.TemplateVersion)
	input.PatientID = strings.TrimSpace(input.PatientID)

	for i := range input.Answers {
		input.Answers[i].Value = models.OptionValue(strings.TrimSpace(string(input.Answers[i].Value)))
	}

	if input.Context != nil {
		input.Context.Gender = strings.ToLower(strings.TrimSpace(input.Context.Gender))
	}
}
