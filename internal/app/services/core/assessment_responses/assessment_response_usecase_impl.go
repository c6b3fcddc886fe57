package assessmentResponses

import (
	"context"
	"konsulin-assessment-engine/internal/app/config"
	"konsulin-assessment-engine/internal/app/contracts"
	"konsulin-assessment-engine/internal/app/models"
	"konsulin-assessment-engine/internal/app/services/core/evaluations"
	"konsulin-assessment-engine/internal/pkg/constvars"
	"konsulin-assessment-engine/internal/pkg/dto/requests"
	"konsulin-assessment-engine/internal/pkg/dto/responses"
	"konsulin-assessment-engine/internal/pkg/exceptions"
	"konsulin-assessment-engine/internal/pkg/utils"
	"time"

	"go.uber.org/zap"
)

type assessmentResponseUsecase struct {
	AssessmentUsecase    contracts.AssessmentUsecase
	EvaluationRepository contracts.EvaluationRepository
	Storage              contracts.Storage
	EventPublisher       contracts.EvaluationEventPublisher
	Evaluator            *evaluations.Evaluator
	InternalConfig       *config.InternalConfig
	Log                  *zap.Logger
	now                  func() time.Time
}

// NewAssessmentResponseUsecase wires the evaluation flow. storage and
// eventPublisher are optional; a nil value disables report archiving or event
// publishing respectively.
func NewAssessmentResponseUsecase(
	assessmentUsecase contracts.AssessmentUsecase,
	evaluationRepository contracts.EvaluationRepository,
	storage contracts.Storage,
	eventPublisher contracts.EvaluationEventPublisher,
	evaluator *evaluations.Evaluator,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.AssessmentResponseUsecase {
	return &assessmentResponseUsecase{
		AssessmentUsecase:    assessmentUsecase,
		EvaluationRepository: evaluationRepository,
		Storage:              storage,
		EventPublisher:       eventPublisher,
		Evaluator:            evaluator,
		InternalConfig:       internalConfig,
		Log:                  logger,
		now:                  time.Now,
	}
}

func (uc *assessmentResponseUsecase) EvaluateAssessment(ctx context.Context, request *requests.EvaluateAssessment) (*responses.Evaluation, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("assessmentResponseUsecase.EvaluateAssessment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingTemplateIDKey, request.TemplateID),
		zap.String(constvars.LoggingTemplateVersionKey, request.TemplateVersion),
	)

	template, err := uc.AssessmentUsecase.GetTemplate(ctx, request.TemplateID, request.TemplateVersion)
	if err != nil {
		return nil, err
	}

	responseSet, err := ResolveResponses(template, request.Answers)
	if err != nil {
		uc.Log.Error("assessmentResponseUsecase.EvaluateAssessment error resolving answers",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingTemplateKey, template.Key()),
			zap.Error(err),
		)
		return nil, err
	}

	evaluationContext := NewEvaluationContext(request.Context)
	result := uc.Evaluator.Evaluate(template, responseSet, evaluationContext)

	record := &models.EvaluationRecord{
		ID:          utils.GenerateEvaluationID(),
		PatientID:   request.PatientID,
		TemplateKey: template.Key(),
		Responses:   responseSet,
		Context:     evaluationContext,
		Result:      result,
		CreatedAt:   uc.now().UTC(),
	}

	record.ReportPath, err = uc.archiveReport(ctx, record)
	if err != nil {
		return nil, err
	}

	err = uc.EvaluationRepository.CreateEvaluation(ctx, record)
	if err != nil {
		uc.Log.Error("assessmentResponseUsecase.EvaluateAssessment error saving evaluation",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingEvaluationIDKey, record.ID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.publishEvaluated(ctx, record)

	uc.Log.Info("assessmentResponseUsecase.EvaluateAssessment succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEvaluationIDKey, record.ID),
		zap.String(constvars.LoggingTemplateKey, record.TemplateKey),
		zap.Float64(constvars.LoggingTotalScoreKey, result.TotalScore),
		zap.String(constvars.LoggingSeverityKey, string(result.Interpretation.Severity)),
		zap.String(constvars.LoggingValidityLevelKey, string(result.ValidityIndicators.ValidityLevel)),
	)
	return toEvaluationResponse(record), nil
}

func (uc *assessmentResponseUsecase) archiveReport(ctx context.Context, record *models.EvaluationRecord) (string, error) {
	if uc.Storage == nil || !uc.InternalConfig.Minio.ReportArchivingOn {
		return "", nil
	}
	objectName := utils.GenerateReportObjectName(record.ID)
	reportPath, err := uc.Storage.UploadJSON(ctx, uc.InternalConfig.Minio.ReportBucketName, objectName, record)
	if err != nil {
		uc.Log.Error("assessmentResponseUsecase.archiveReport error uploading report",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingEvaluationIDKey, record.ID),
			zap.String(constvars.LoggingBucketNameKey, uc.InternalConfig.Minio.ReportBucketName),
			zap.String(constvars.LoggingObjectNameKey, objectName),
			zap.Error(err),
		)
		return "", err
	}
	return reportPath, nil
}

// publishEvaluated never fails the request. The evaluation is already stored
// and can be replayed from MongoDB.
func (uc *assessmentResponseUsecase) publishEvaluated(ctx context.Context, record *models.EvaluationRecord) {
	if uc.EventPublisher == nil || !uc.InternalConfig.RabbitMQ.EventPublishingOn {
		return
	}
	event := NewEvaluationEvent(record)
	err := uc.EventPublisher.PublishEvaluationEvent(ctx, event)
	if err != nil {
		uc.Log.Warn("assessmentResponseUsecase.publishEvaluated error publishing event",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingEvaluationIDKey, record.ID),
			zap.String(constvars.LoggingQueueNameKey, uc.InternalConfig.RabbitMQ.EvaluationEventQueue),
			zap.Error(err),
		)
	}
}

func (uc *assessmentResponseUsecase) FindEvaluationByID(ctx context.Context, evaluationID string) (*responses.Evaluation, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("assessmentResponseUsecase.FindEvaluationByID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEvaluationIDKey, evaluationID),
	)

	record, err := uc.EvaluationRepository.FindEvaluationByID(ctx, evaluationID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, exceptions.ErrEvaluationNotFound(nil, evaluationID)
	}

	uc.Log.Info("assessmentResponseUsecase.FindEvaluationByID succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEvaluationIDKey, evaluationID),
	)
	return toEvaluationResponse(record), nil
}

// NewEvaluationEvent summarises a stored evaluation for downstream consumers.
func NewEvaluationEvent(record *models.EvaluationRecord) *models.EvaluationEvent {
	criticalFlags := 0
	for _, flag := range record.Result.Interpretation.WarningFlags {
		if flag.Type == models.FlagTypeCritical {
			criticalFlags++
		}
	}
	return &models.EvaluationEvent{
		EventType:       constvars.EventTypeAssessmentEvaluated,
		EvaluationID:    record.ID,
		PatientID:       record.PatientID,
		TemplateID:      record.Result.TemplateID,
		TemplateVersion: record.Result.TemplateVersion,
		TotalScore:      record.Result.TotalScore,
		Severity:        record.Result.Interpretation.Severity,
		ValidityLevel:   record.Result.ValidityIndicators.ValidityLevel,
		CriticalFlags:   criticalFlags,
		ReportPath:      record.ReportPath,
		OccurredAt:      record.CreatedAt,
	}
}

func toEvaluationResponse(record *models.EvaluationRecord) *responses.Evaluation {
	return &responses.Evaluation{
		EvaluationID: record.ID,
		PatientID:    record.PatientID,
		TemplateKey:  record.TemplateKey,
		ReportPath:   record.ReportPath,
		CreatedAt:    record.CreatedAt,
		Result:       record.Result,
	}
}
