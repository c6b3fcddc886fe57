package routers

import (
	"fmt"
	"konsulin-assessment-engine/internal/app/config"
	"konsulin-assessment-engine/internal/app/delivery/http/controllers"
	"konsulin-assessment-engine/internal/app/delivery/http/middlewares"
	"konsulin-assessment-engine/internal/pkg/constvars"
	"konsulin-assessment-engine/internal/pkg/utils"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/sirupsen/logrus"
)

func SetupRoutes(
	router *chi.Mux,
	internalConfig *config.InternalConfig,
	middlewares *middlewares.Middlewares,
	accessLog *logrus.Logger,
	assessmentController *controllers.AssessmentController,
	assessmentResponseController *controllers.AssessmentResponseController,
) {

	corsOptions := cors.Options{
		AllowedOrigins:   internalConfig.App.AllowedOrigins,
		AllowedMethods:   []string{constvars.MethodGet, constvars.MethodPost, constvars.MethodOptions},
		AllowedHeaders:   []string{constvars.HeaderAccept, constvars.HeaderContentType, constvars.HeaderXRequestID},
		ExposedHeaders:   []string{constvars.HeaderLink, constvars.HeaderXRequestID},
		AllowCredentials: true,
		MaxAge:           300,
	}
	router.Use(cors.Handler(corsOptions))

	router.Use(middlewares.RequestIDMiddleware)
	router.Use(middlewares.Logging)
	if accessLog != nil {
		router.Use(middlewares.RequestLogger(accessLog))
	}
	router.Use(middlewares.ErrorHandler)

	rateWindow := time.Duration(internalConfig.App.MaxTimeRequestsPerSeconds) * time.Second
	if rateWindow <= 0 {
		rateWindow = time.Second
	}
	rateLimiter := httprate.LimitByIP(internalConfig.App.MaxRequests, rateWindow)
	router.Use(rateLimiter)

	router.Use(middlewares.BodyLimit)
	router.Use(middlewares.RequestTimeout)

	router.Get("/healthz", healthCheck(internalConfig))

	evaluationLimiter := middlewares.NewEvaluationRateLimiter()

	endpointPrefix := fmt.Sprintf("/%s", internalConfig.App.EndpointPrefix)
	versionPrefix := fmt.Sprintf("/%s", internalConfig.App.Version)

	router.Route(endpointPrefix, func(r chi.Router) {
		r.Route(versionPrefix, func(r chi.Router) {
			r.Route("/"+constvars.ResourceTemplates, func(r chi.Router) {
				attachAssessmentRoutes(r, evaluationLimiter, assessmentController, assessmentResponseController)
			})

			r.Route("/"+constvars.ResourceEvaluations, func(r chi.Router) {
				attachEvaluationRoutes(r, assessmentResponseController)
			})
		})
	})
}

func healthCheck(internalConfig *config.InternalConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.HealthCheckSuccessMessage, map[string]string{
			"version":     internalConfig.App.Version,
			"environment": internalConfig.App.Env,
		})
	}
}
