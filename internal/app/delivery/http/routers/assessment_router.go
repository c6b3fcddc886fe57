package routers

import (
	"fmt"
	"konsulin-assessment-engine/internal/app/delivery/http/controllers"
	"konsulin-assessment-engine/internal/app/delivery/http/middlewares"
	"konsulin-assessment-engine/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
)

var templateVersionPath = fmt.Sprintf("/{%s}/%s/{%s}", constvars.URLParamTemplateID, constvars.ResourceVersions, constvars.URLParamTemplateVersion)

func attachAssessmentRoutes(
	router chi.Router,
	evaluationLimiter *middlewares.RateLimiter,
	assessmentController *controllers.AssessmentController,
	assessmentResponseController *controllers.AssessmentResponseController,
) {
	router.Get(templateVersionPath, assessmentController.FindTemplate)
	router.With(evaluationLimiter.Limit).Post(templateVersionPath+"/"+constvars.ResourceEvaluations, assessmentResponseController.EvaluateAssessment)
}
