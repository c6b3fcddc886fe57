package assessmentResponses

import (
	"context"
	"errors"
	"sync"

	"konsulin-assessment-engine/internal/app/config"
	"konsulin-assessment-engine/internal/app/models"
	"konsulin-assessment-engine/internal/app/services/core/templates"
)

func phq9Definition() models.TemplateDefinition {
	def := models.TemplateDefinition{
		ID:       "phq-9",
		Version:  "1.0.0",
		Name:     "PHQ-9",
		Category: models.CategoryDepression,
		ResponseOptions: []models.ResponseOption{
			{Value: "0", Label: "Not at all", Score: 0},
			{Value: "1", Label: "Several days", Score: 1},
			{Value: "2", Label: "More than half the days", Score: 2},
			{Value: "3", Label: "Nearly every day", Score: 3},
		},
		Scoring: models.Scoring{Method: models.ScoringMethodSum, TotalScoreRange: models.ScoreRange{Min: 0, Max: 27}},
		InterpretationRules: []models.InterpretationRule{
			{MinScore: 0, MaxScore: 4, Severity: models.SeverityMinimal, Label: "Minimal"},
			{MinScore: 5, MaxScore: 9, Severity: models.SeverityMild, Label: "Mild"},
			{MinScore: 10, MaxScore: 14, Severity: models.SeverityModerate, Label: "Moderate"},
			{MinScore: 15, MaxScore: 19, Severity: models.SeverityModerate, Label: "Moderately severe"},
			{MinScore: 20, MaxScore: 27, Severity: models.SeveritySevere, Label: "Severe",
				WarningFlags: []models.WarningFlagRule{
					{Condition: "totalScore >= 20", Message: "Severe symptoms reported", Type: models.FlagTypeCritical},
				}},
		},
	}
	for i := 1; i <= 9; i++ {
		def.Items = append(def.Items, models.Item{Number: i, Text: "item"})
	}
	return def
}

func testInternalConfig() *config.InternalConfig {
	return &config.InternalConfig{
		Minio:    config.AppMinio{ReportBucketName: "assessment-reports", ReportArchivingOn: true},
		RabbitMQ: config.AppRabbitMQ{EvaluationEventQueue: "assessment.evaluated", EventPublishingOn: true},
	}
}

type fakeAssessmentUsecase struct {
	template *templates.Template
	err      error
}

func (f *fakeAssessmentUsecase) GetTemplate(ctx context.Context, templateID, templateVersion string) (*templates.Template, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.template, nil
}

func (f *fakeAssessmentUsecase) SeedTemplate(ctx context.Context, definition models.TemplateDefinition) error {
	return errors.New("not supported")
}

type fakeEvaluationRepository struct {
	mu        sync.Mutex
	records   map[string]models.EvaluationRecord
	createErr error
}

func newFakeEvaluationRepository() *fakeEvaluationRepository {
	return &fakeEvaluationRepository{records: map[string]models.EvaluationRecord{}}
}

func (f *fakeEvaluationRepository) CreateEvaluation(ctx context.Context, record *models.EvaluationRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	f.records[record.ID] = *record
	return nil
}

func (f *fakeEvaluationRepository) FindEvaluationByID(ctx context.Context, evaluationID string) (*models.EvaluationRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	record, ok := f.records[evaluationID]
	if !ok {
		return nil, nil
	}
	return &record, nil
}

type fakeStorage struct {
	objects map[string]interface{}
	err     error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: map[string]interface{}{}}
}

func (f *fakeStorage) UploadJSON(ctx context.Context, bucketName, objectName string, value interface{}) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	path := bucketName + "/" + objectName
	f.objects[path] = value
	return path, nil
}

type fakePublisher struct {
	events []*models.EvaluationEvent
	err    error
}

func (f *fakePublisher) PublishEvaluationEvent(ctx context.Context, event *models.EvaluationEvent) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, event)
	return nil
}
