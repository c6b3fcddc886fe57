package main

import (
	"context"
	"konsulin-assessment-engine/internal/app/config"
	"konsulin-assessment-engine/internal/app/contracts"
	"konsulin-assessment-engine/internal/app/delivery/http/controllers"
	"konsulin-assessment-engine/internal/app/delivery/http/middlewares"
	"konsulin-assessment-engine/internal/app/delivery/http/routers"
	"konsulin-assessment-engine/internal/app/drivers/database"
	"konsulin-assessment-engine/internal/app/drivers/logger"
	"konsulin-assessment-engine/internal/app/drivers/messaging"
	"konsulin-assessment-engine/internal/app/drivers/storage"
	assessmentResponses "konsulin-assessment-engine/internal/app/services/core/assessment_responses"
	"konsulin-assessment-engine/internal/app/services/core/assessments"
	"konsulin-assessment-engine/internal/app/services/core/evaluations"
	"konsulin-assessment-engine/internal/app/services/core/interpretation"
	"konsulin-assessment-engine/internal/app/services/core/templates"
	"konsulin-assessment-engine/internal/app/services/core/validity"
	"konsulin-assessment-engine/internal/app/services/shared/eventqueue"
	"konsulin-assessment-engine/internal/app/services/shared/locker"
	"konsulin-assessment-engine/internal/app/services/shared/redis"
	minioStorage "konsulin-assessment-engine/internal/app/services/shared/storage"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Version sets the default build version
var Version = "develop"

// Tag sets the default latest commit tag
var Tag = "0.0.1-rc"

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		log.Fatalf("Error loading location: %v", err)
	}
	time.Local = location

	zapLogger := logger.NewZapLogger(driverConfig, internalConfig)
	zapLogger.Info("Starting assessment engine",
		zap.String("version", Version),
		zap.String("tag", Tag),
	)

	bootstrap := &config.Bootstrap{
		Router:         chi.NewRouter(),
		MongoDB:        database.NewMongoDB(driverConfig),
		Redis:          database.NewRedisClient(driverConfig),
		Logger:         zapLogger,
		InternalConfig: internalConfig,
		DriverConfig:   driverConfig,
	}
	if internalConfig.Minio.ReportArchivingOn {
		bootstrap.Minio = storage.NewMinio(driverConfig)
	}
	if internalConfig.RabbitMQ.EventPublishingOn {
		bootstrap.RabbitMQ = messaging.NewRabbitMQ(driverConfig)
	}

	bootstrapingTheApp(bootstrap)

	server := &http.Server{
		Addr:              ":" + internalConfig.App.Port,
		Handler:           bootstrap.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zapLogger.Info("Server listening", zap.String("address", server.Addr))
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	log.Println("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeoutInSeconds),
	)
	defer cancel()

	err = server.Shutdown(shutdownCtx)
	if err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	err = bootstrap.Shutdown(shutdownCtx)
	if err != nil {
		log.Fatalf("Failed to release resources: %v", err)
	}

	log.Println("Server exiting")
}

func bootstrapingTheApp(bootstrap *config.Bootstrap) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Redis
	redisRepository := redis.NewRedisRepository(bootstrap.Redis)
	lockService := locker.NewLockService(redisRepository, bootstrap.Logger)

	// Middlewares
	middlewareInstance := middlewares.NewMiddlewares(bootstrap.Logger, bootstrap.InternalConfig)

	// Assessment templates
	templateRepository := assessments.NewAssessmentTemplateMongoRepository(bootstrap.MongoDB, bootstrap.DriverConfig.MongoDB.DbName)
	err := templateRepository.EnsureIndexes(ctx)
	if err != nil {
		log.Fatalf("Error creating template indexes: %v", err)
	}
	templateCache := assessments.NewAssessmentTemplateRedisCache(redisRepository, bootstrap.InternalConfig.Template.CacheTTL)
	assessmentUsecase := assessments.NewAssessmentUsecase(templateRepository, templateCache, templates.NewCache(), lockService, bootstrap.Logger)

	// Evaluation engine
	evaluator := evaluations.NewEvaluator(
		bootstrap.Logger,
		validity.NewAnalyzer(bootstrap.InternalConfig.ValidityConfig()),
		interpretation.NewEngine(bootstrap.Logger),
	)

	// Report archive
	var reportStorage contracts.Storage
	if bootstrap.Minio != nil {
		err := minioStorage.EnsureBucket(ctx, bootstrap.Minio, bootstrap.InternalConfig.Minio.ReportBucketName)
		if err != nil {
			log.Fatalf("Error preparing report bucket: %v", err)
		}
		reportStorage = minioStorage.NewMinioStorage(bootstrap.Minio)
	}

	// Evaluation events
	var eventPublisher contracts.EvaluationEventPublisher
	if bootstrap.RabbitMQ != nil {
		publisher, err := eventqueue.NewPublisher(bootstrap.RabbitMQ, bootstrap.Logger, bootstrap.InternalConfig.RabbitMQ.EvaluationEventQueue)
		if err != nil {
			log.Fatalf("Error creating evaluation event publisher: %v", err)
		}
		bootstrap.PublisherStop = publisher.Close
		eventPublisher = publisher
	}

	// Evaluations
	evaluationRepository := assessmentResponses.NewEvaluationMongoRepository(bootstrap.MongoDB, bootstrap.DriverConfig.MongoDB.DbName)
	assessmentResponseUsecase := assessmentResponses.NewAssessmentResponseUsecase(
		assessmentUsecase,
		evaluationRepository,
		reportStorage,
		eventPublisher,
		evaluator,
		bootstrap.InternalConfig,
		bootstrap.Logger,
	)

	requestTimeout := time.Duration(bootstrap.InternalConfig.App.RequestTimeoutInSeconds) * time.Second
	assessmentController := controllers.NewAssessmentController(bootstrap.Logger, assessmentUsecase, requestTimeout)
	assessmentResponseController := controllers.NewAssessmentResponseController(bootstrap.Logger, assessmentResponseUsecase, requestTimeout)

	routers.SetupRoutes(
		bootstrap.Router,
		bootstrap.InternalConfig,
		middlewareInstance,
		logger.NewLogrusLogger(bootstrap.DriverConfig, bootstrap.InternalConfig),
		assessmentController,
		assessmentResponseController,
	)
}
