package assessmentResponses

import (
	"context"
	"errors"
	"testing"
	"time"

	"konsulin-assessment-engine/internal/app/models"
	"konsulin-assessment-engine/internal/app/services/core/evaluations"
	"konsulin-assessment-engine/internal/app/services/core/templates"
	"konsulin-assessment-engine/internal/pkg/constvars"
	"konsulin-assessment-engine/internal/pkg/dto/requests"
	"konsulin-assessment-engine/internal/pkg/exceptions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type usecaseFixture struct {
	usecase    *assessmentResponseUsecase
	repository *fakeEvaluationRepository
	storage    *fakeStorage
	publisher  *fakePublisher
}

func newUsecaseFixture(t *testing.T, logger *zap.Logger) *usecaseFixture {
	t.Helper()
	tmpl, err := templates.NewTemplate(phq9Definition())
	require.NoError(t, err)

	f := &usecaseFixture{
		repository: newFakeEvaluationRepository(),
		storage:    newFakeStorage(),
		publisher:  &fakePublisher{},
	}
	uc := NewAssessmentResponseUsecase(
		&fakeAssessmentUsecase{template: tmpl},
		f.repository,
		f.storage,
		f.publisher,
		evaluations.NewEvaluator(logger, nil, nil),
		testInternalConfig(),
		logger,
	).(*assessmentResponseUsecase)
	uc.now = func() time.Time { return time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC) }
	f.usecase = uc
	return f
}

func answersFor(values ...string) []requests.AssessmentAnswer {
	answers := make([]requests.AssessmentAnswer, 0, len(values))
	for i, value := range values {
		answers = append(answers, requests.AssessmentAnswer{ItemNumber: i + 1, Value: models.OptionValue(value)})
	}
	return answers
}

func TestEvaluateAssessment(t *testing.T) {
	ctx := context.WithValue(context.Background(), constvars.CONTEXT_REQUEST_ID_KEY, "req-42")

	t.Run("Stores Archives And Publishes", func(t *testing.T) {
		f := newUsecaseFixture(t, zap.NewNop())
		age := 70

		response, err := f.usecase.EvaluateAssessment(ctx, &requests.EvaluateAssessment{
			TemplateID:      "phq-9",
			TemplateVersion: "1.0.0",
			PatientID:       "patient-1",
			Answers:         answersFor("3", "3", "3", "3", "2", "2", "2", "2", "2"),
			Context:         &requests.EvaluationContext{Age: &age},
		})
		require.NoError(t, err)

		assert.NotEmpty(t, response.EvaluationID)
		assert.Equal(t, "phq-9@1.0.0", response.TemplateKey)
		assert.Equal(t, 22.0, response.Result.TotalScore)
		assert.Equal(t, models.SeveritySevere, response.Result.Interpretation.Severity)
		assert.Equal(t, "assessment-reports/reports/"+response.EvaluationID+".json", response.ReportPath)
		assert.Contains(t, response.Result.Interpretation.ContextualRecommendations,
			"Account for age-related medical comorbidities and medication interactions in older adults.")

		stored, ok := f.repository.records[response.EvaluationID]
		require.True(t, ok)
		assert.Equal(t, "patient-1", stored.PatientID)
		assert.Len(t, stored.Responses, 9)
		assert.Equal(t, 70, *stored.Context.Demographics.Age)

		require.Len(t, f.publisher.events, 1)
		event := f.publisher.events[0]
		assert.Equal(t, constvars.EventTypeAssessmentEvaluated, event.EventType)
		assert.Equal(t, response.EvaluationID, event.EvaluationID)
		assert.Equal(t, 1, event.CriticalFlags)
		assert.Equal(t, response.CreatedAt, event.OccurredAt)
	})

	t.Run("Archiving Disabled", func(t *testing.T) {
		f := newUsecaseFixture(t, zap.NewNop())
		f.usecase.InternalConfig.Minio.ReportArchivingOn = false

		response, err := f.usecase.EvaluateAssessment(ctx, &requests.EvaluateAssessment{
			TemplateID: "phq-9", TemplateVersion: "1.0.0",
			Answers: answersFor("0", "0", "1"),
		})
		require.NoError(t, err)
		assert.Empty(t, response.ReportPath)
		assert.Empty(t, f.storage.objects)
	})

	t.Run("Publish Failure Is Logged Only", func(t *testing.T) {
		core, logs := observer.New(zap.WarnLevel)
		f := newUsecaseFixture(t, zap.New(core))
		f.publisher.err = errors.New("channel closed")

		response, err := f.usecase.EvaluateAssessment(ctx, &requests.EvaluateAssessment{
			TemplateID: "phq-9", TemplateVersion: "1.0.0",
			Answers: answersFor("1", "1", "1", "1"),
		})
		require.NoError(t, err)
		assert.Contains(t, f.repository.records, response.EvaluationID)
		assert.Equal(t, 1, logs.FilterMessage("assessmentResponseUsecase.publishEvaluated error publishing event").Len())
	})

	t.Run("Archive Failure Aborts", func(t *testing.T) {
		f := newUsecaseFixture(t, zap.NewNop())
		f.storage.err = exceptions.ErrMinioCreateObject(errors.New("bucket missing"), "assessment-reports")

		response, err := f.usecase.EvaluateAssessment(ctx, &requests.EvaluateAssessment{
			TemplateID: "phq-9", TemplateVersion: "1.0.0",
			Answers: answersFor("1"),
		})
		assert.Nil(t, response)
		assert.Error(t, err)
		assert.Empty(t, f.repository.records)
		assert.Empty(t, f.publisher.events)
	})

	t.Run("Repository Failure Skips Publishing", func(t *testing.T) {
		f := newUsecaseFixture(t, zap.NewNop())
		f.repository.createErr = exceptions.ErrMongoDBInsertDocument(errors.New("duplicate key"))

		_, err := f.usecase.EvaluateAssessment(ctx, &requests.EvaluateAssessment{
			TemplateID: "phq-9", TemplateVersion: "1.0.0",
			Answers: answersFor("1"),
		})
		assert.Error(t, err)
		assert.Empty(t, f.publisher.events)
	})

	t.Run("Unknown Template", func(t *testing.T) {
		f := newUsecaseFixture(t, zap.NewNop())
		f.usecase.AssessmentUsecase = &fakeAssessmentUsecase{err: exceptions.ErrTemplateNotFound(nil, "phq-9@2.0.0")}

		_, err := f.usecase.EvaluateAssessment(ctx, &requests.EvaluateAssessment{
			TemplateID: "phq-9", TemplateVersion: "2.0.0",
		})

		var customErr *exceptions.CustomError
		require.True(t, errors.As(err, &customErr))
		assert.Equal(t, constvars.StatusNotFound, customErr.StatusCode)
	})

	t.Run("Invalid Answer", func(t *testing.T) {
		f := newUsecaseFixture(t, zap.NewNop())

		_, err := f.usecase.EvaluateAssessment(ctx, &requests.EvaluateAssessment{
			TemplateID: "phq-9", TemplateVersion: "1.0.0",
			Answers: []requests.AssessmentAnswer{{ItemNumber: 12, Value: "1"}},
		})

		var customErr *exceptions.CustomError
		require.True(t, errors.As(err, &customErr))
		assert.Equal(t, constvars.StatusBadRequest, customErr.StatusCode)
		assert.Empty(t, f.repository.records)
	})
}

func TestFindEvaluationByID(t *testing.T) {
	ctx := context.Background()
	f := newUsecaseFixture(t, zap.NewNop())

	created, err := f.usecase.EvaluateAssessment(ctx, &requests.EvaluateAssessment{
		TemplateID: "phq-9", TemplateVersion: "1.0.0",
		Answers: answersFor("2", "2"),
	})
	require.NoError(t, err)

	t.Run("Found", func(t *testing.T) {
		found, err := f.usecase.FindEvaluationByID(ctx, created.EvaluationID)
		require.NoError(t, err)
		assert.Equal(t, created.Result.TotalScore, found.Result.TotalScore)
		assert.Equal(t, created.CreatedAt, found.CreatedAt)
	})

	t.Run("Missing", func(t *testing.T) {
		found, err := f.usecase.FindEvaluationByID(ctx, "6f1c2a8e-0000-4000-8000-000000000000")
		assert.Nil(t, found)

		var customErr *exceptions.CustomError
		require.True(t, errors.As(err, &customErr))
		assert.Equal(t, constvars.StatusNotFound, customErr.StatusCode)
	})
}

func TestNewEvaluationEvent(t *testing.T) {
	record := &models.EvaluationRecord{
		ID:        "e1",
		PatientID: "p1",
		Result: models.AssessmentResult{
			TemplateID:      "gad-7",
			TemplateVersion: "1.0.0",
			TotalScore:      9,
			Interpretation: models.Interpretation{
				Severity: models.SeverityMild,
				WarningFlags: []models.WarningFlag{
					{Type: models.FlagTypeWarning, Message: "w"},
					{Type: models.FlagTypeCritical, Message: "c1"},
					{Type: models.FlagTypeCritical, Message: "c2"},
				},
			},
			ValidityIndicators: models.ValidityIndicators{ValidityLevel: models.ValidityHigh},
		},
	}

	event := NewEvaluationEvent(record)

	assert.Equal(t, "gad-7", event.TemplateID)
	assert.Equal(t, 2, event.CriticalFlags)
	assert.Equal(t, models.SeverityMild, event.Severity)
	assert.Equal(t, models.ValidityHigh, event.ValidityLevel)
}
