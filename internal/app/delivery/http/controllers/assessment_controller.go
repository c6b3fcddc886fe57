package controllers

import (
	"context"
	"errors"
	"konsulin-assessment-engine/internal/app/contracts"
	"konsulin-assessment-engine/internal/pkg/constvars"
	"konsulin-assessment-engine/internal/pkg/dto/requests"
	"konsulin-assessment-engine/internal/pkg/dto/responses"
	"konsulin-assessment-engine/internal/pkg/exceptions"
	"konsulin-assessment-engine/internal/pkg/utils"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type AssessmentController struct {
	Log               *zap.Logger
	AssessmentUsecase contracts.AssessmentUsecase
	RequestTimeout    time.Duration
}

func NewAssessmentController(logger *zap.Logger, assessmentUsecase contracts.AssessmentUsecase, requestTimeout time.Duration) *AssessmentController {
	if requestTimeout <= 0 {
		requestTimeout = 10 * time.Second
	}
	return &AssessmentController{
		Log:               logger,
		AssessmentUsecase: assessmentUsecase,
		RequestTimeout:    requestTimeout,
	}
}

func (ctrl *AssessmentController) FindTemplate(w http.ResponseWriter, r *http.Request) {
	request := &requests.FindAssessmentTemplate{
		TemplateID:      chi.URLParam(r, constvars.URLParamTemplateID),
		TemplateVersion: chi.URLParam(r, constvars.URLParamTemplateVersion),
	}

	err := utils.ValidateStruct(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.RequestTimeout)
	defer cancel()

	template, err := ctrl.AssessmentUsecase.GetTemplate(ctx, request.TemplateID, request.TemplateVersion)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	response := responses.AssessmentTemplate{
		TemplateKey:    template.Key(),
		Maturity:       template.Maturity(),
		MaturityWeight: template.MaturityWeight(),
		ItemCount:      template.ItemCount(),
		Definition:     template.Definition(),
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.FindTemplateSuccessMessage, response)
}
