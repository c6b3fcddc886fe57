package contracts

import (
	"context"
	"konsulin-assessment-engine/internal/app/models"
	"konsulin-assessment-engine/internal/app/services/core/templates"
)

type AssessmentUsecase interface {
	GetTemplate(ctx context.Context, templateID, templateVersion string) (*templates.Template, error)
	SeedTemplate(ctx context.Context, definition models.TemplateDefinition) error
}

// AssessmentTemplateRepository returns nil without error when a template
// version does not exist.
type AssessmentTemplateRepository interface {
	FindTemplate(ctx context.Context, templateID, templateVersion string) (*models.TemplateDefinition, error)
	UpsertTemplate(ctx context.Context, definition *models.TemplateDefinition) error
	EnsureIndexes(ctx context.Context) error
}

// AssessmentTemplateCache returns nil without error on a cache miss.
type AssessmentTemplateCache interface {
	GetTemplateDefinition(ctx context.Context, templateKey string) (*models.TemplateDefinition, error)
	SetTemplateDefinition(ctx context.Context, definition *models.TemplateDefinition) error
	DeleteTemplateDefinition(ctx context.Context, templateKey string) error
}
