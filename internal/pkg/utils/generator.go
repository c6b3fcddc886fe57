package utils

import (
	"fmt"
	"konsulin-assessment-engine/internal/pkg/constvars"

	"github.com/google/uuid"
)

func GenerateRequestID() string {
	return uuid.New().String()
}

func GenerateEvaluationID() string {
	return uuid.New().String()
}

func GenerateReportObjectName(evaluationID string) string {
	return fmt.Sprintf("%s%s.json", constvars.ReportObjectPrefix, evaluationID)
}
