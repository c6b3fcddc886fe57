package controllers

import (
	"context"
	"sync"

	"konsulin-assessment-engine/internal/app/config"
	"konsulin-assessment-engine/internal/app/contracts"
	"konsulin-assessment-engine/internal/app/models"
	assessmentResponses "konsulin-assessment-engine/internal/app/services/core/assessment_responses"
	"konsulin-assessment-engine/internal/app/services/core/assessments"
	"konsulin-assessment-engine/internal/app/services/core/evaluations"
	"konsulin-assessment-engine/internal/app/services/core/templates"

	"go.uber.org/zap"
)

func gad7Definition() models.TemplateDefinition {
	def := models.TemplateDefinition{
		ID:       "gad-7",
		Version:  "1.0.0",
		Name:     "GAD-7",
		Category: models.CategoryAnxiety,
		ResponseOptions: []models.ResponseOption{
			{Value: "0", Label: "Not at all", Score: 0},
			{Value: "1", Label: "Several days", Score: 1},
			{Value: "2", Label: "More than half the days", Score: 2},
			{Value: "3", Label: "Nearly every day", Score: 3},
		},
		Scoring: models.Scoring{Method: models.ScoringMethodSum, TotalScoreRange: models.ScoreRange{Min: 0, Max: 21}},
		InterpretationRules: []models.InterpretationRule{
			{MinScore: 0, MaxScore: 4, Severity: models.SeverityMinimal, Label: "Minimal"},
			{MinScore: 5, MaxScore: 9, Severity: models.SeverityMild, Label: "Mild"},
			{MinScore: 10, MaxScore: 21, Severity: models.SeverityModerate, Label: "Moderate"},
		},
	}
	for i := 1; i <= 7; i++ {
		def.Items = append(def.Items, models.Item{Number: i, Text: "item"})
	}
	return def
}

type memoryTemplateRepository struct {
	definitions map[string]models.TemplateDefinition
}

func (m *memoryTemplateRepository) FindTemplate(ctx context.Context, templateID, templateVersion string) (*models.TemplateDefinition, error) {
	def, ok := m.definitions[templates.Key(templateID, templateVersion)]
	if !ok {
		return nil, nil
	}
	return &def, nil
}

func (m *memoryTemplateRepository) UpsertTemplate(ctx context.Context, definition *models.TemplateDefinition) error {
	m.definitions[templates.Key(definition.ID, definition.Version)] = *definition
	return nil
}

func (m *memoryTemplateRepository) EnsureIndexes(ctx context.Context) error { return nil }

type memoryEvaluationRepository struct {
	mu      sync.Mutex
	records map[string]models.EvaluationRecord
}

func (m *memoryEvaluationRepository) CreateEvaluation(ctx context.Context, record *models.EvaluationRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[record.ID] = *record
	return nil
}

func (m *memoryEvaluationRepository) FindEvaluationByID(ctx context.Context, evaluationID string) (*models.EvaluationRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	record, ok := m.records[evaluationID]
	if !ok {
		return nil, nil
	}
	return &record, nil
}

func newTestUsecases() (contracts.AssessmentUsecase, contracts.AssessmentResponseUsecase) {
	log := zap.NewNop()
	templateRepository := &memoryTemplateRepository{definitions: map[string]models.TemplateDefinition{
		templates.Key("gad-7", "1.0.0"): gad7Definition(),
	}}
	assessmentUsecase := assessments.NewAssessmentUsecase(templateRepository, nil, templates.NewCache(), nil, log)
	assessmentResponseUsecase := assessmentResponses.NewAssessmentResponseUsecase(
		assessmentUsecase,
		&memoryEvaluationRepository{records: map[string]models.EvaluationRecord{}},
		nil,
		nil,
		evaluations.NewEvaluator(log, nil, nil),
		&config.InternalConfig{},
		log,
	)
	return assessmentUsecase, assessmentResponseUsecase
}
