package routers

import (
	"fmt"
	"konsulin-assessment-engine/internal/app/delivery/http/controllers"
	"konsulin-assessment-engine/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
)

func attachEvaluationRoutes(router chi.Router, assessmentResponseController *controllers.AssessmentResponseController) {
	router.Get(fmt.Sprintf("/{%s}", constvars.URLParamEvaluationID), assessmentResponseController.FindEvaluationByID)
}
