package contracts

import (
	"context"
	"konsulin-assessment-engine/internal/app/models"
	"konsulin-assessment-engine/internal/pkg/dto/requests"
	"konsulin-assessment-engine/internal/pkg/dto/responses"
)

type AssessmentResponseUsecase interface {
	EvaluateAssessment(ctx context.Context, request *requests.EvaluateAssessment) (*responses.Evaluation, error)
	FindEvaluationByID(ctx context.Context, evaluationID string) (*responses.Evaluation, error)
}

// EvaluationRepository returns nil without error when an evaluation does not exist.
type EvaluationRepository interface {
	CreateEvaluation(ctx context.Context, record *models.EvaluationRecord) error
	FindEvaluationByID(ctx context.Context, evaluationID string) (*models.EvaluationRecord, error)
}

type EvaluationEventPublisher interface {
	PublishEvaluationEvent(ctx context.Context, event *models.EvaluationEvent) error
}
