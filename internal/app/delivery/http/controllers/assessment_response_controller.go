package controllers

import (
	"context"
	"errors"
	"konsulin-assessment-engine/internal/app/contracts"
	"konsulin-assessment-engine/internal/pkg/constvars"
	"konsulin-assessment-engine/internal/pkg/dto/requests"
	"konsulin-assessment-engine/internal/pkg/exceptions"
	"konsulin-assessment-engine/internal/pkg/utils"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type AssessmentResponseController struct {
	Log                       *zap.Logger
	AssessmentResponseUsecase contracts.AssessmentResponseUsecase
	RequestTimeout            time.Duration
}

func NewAssessmentResponseController(logger *zap.Logger, assessmentResponseUsecase contracts.AssessmentResponseUsecase, requestTimeout time.Duration) *AssessmentResponseController {
	if requestTimeout <= 0 {
		requestTimeout = 10 * time.Second
	}
	return &AssessmentResponseController{
		Log:                       logger,
		AssessmentResponseUsecase: assessmentResponseUsecase,
		RequestTimeout:            requestTimeout,
	}
}

func (ctrl *AssessmentResponseController) EvaluateAssessment(w http.ResponseWriter, r *http.Request) {
	// Bind body to request
	request := new(requests.EvaluateAssessment)
	err := json.NewDecoder(r.Body).Decode(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	request.TemplateID = chi.URLParam(r, constvars.URLParamTemplateID)
	request.TemplateVersion = chi.URLParam(r, constvars.URLParamTemplateVersion)
	utils.SanitizeEvaluateAssessmentRequest(request)

	err = utils.ValidateStruct(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.RequestTimeout)
	defer cancel()

	response, err := ctrl.AssessmentResponseUsecase.EvaluateAssessment(ctx, request)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.EvaluateAssessmentSuccessMessage, response)
}

func (ctrl *AssessmentResponseController) FindEvaluationByID(w http.ResponseWriter, r *http.Request) {
	request := &requests.FindEvaluation{
		EvaluationID: chi.URLParam(r, constvars.URLParamEvaluationID),
	}

	err := utils.ValidateStruct(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamValidation(err, constvars.URLParamEvaluationID))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.RequestTimeout)
	defer cancel()

	response, err := ctrl.AssessmentResponseUsecase.FindEvaluationByID(ctx, request.EvaluationID)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.FindEvaluationSuccessMessage, response)
}
