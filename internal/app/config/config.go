package config

import (
	"konsulin-assessment-engine/internal/app/services/core/validity"
	"konsulin-assessment-engine/internal/pkg/utils"
	"time"

	"github.com/joho/godotenv"
)

func init() {
	godotenv.Load()
}

func NewDriverConfig() *DriverConfig {
	return &DriverConfig{
		MongoDB: MongoDB{
			Port:     utils.GetEnvString("MONGODB_PORT", "27017"),
			Host:     utils.GetEnvString("MONGODB_HOST", "localhost"),
			Username: utils.GetEnvString("MONGODB_USERNAME", ""),
			Password: utils.GetEnvString("MONGODB_PASSWORD", ""),
			DbName:   utils.GetEnvString("MONGODB_DB_NAME", "assessment_engine"),

			ConnectTimeout: utils.GetEnvDuration("MONGODB_CONNECT_TIMEOUT", 10*time.Second),
			MaxPoolSize:    uint64(utils.GetEnvInt("MONGODB_MAX_POOL_SIZE", 50)),
		},
		Redis: Redis{
			Host:     utils.GetEnvString("REDIS_HOST", "localhost"),
			Port:     utils.GetEnvString("REDIS_PORT", "6379"),
			Password: utils.GetEnvString("REDIS_PASSWORD", ""),
			Database: utils.GetEnvInt("REDIS_DATABASE", 0),
			PoolSize: utils.GetEnvInt("REDIS_POOL_SIZE", 20),
		},
		Logger: Logger{
			Level:               utils.GetEnvString("LOGGER_LEVEL", "debug"),
			OutputFileName:      utils.GetEnvString("LOGGER_OUTPUT_FILENAME", "logger.log"),
			OutputErrorFileName: utils.GetEnvString("LOGGER_OUTPUT_ERROR_FILENAME", "logger_error.log"),
			AccessLogFileName:   utils.GetEnvString("LOGGER_ACCESS_LOG_FILENAME", "access.log"),
		},
		RabbitMQ: RabbitMQ{
			Port:     utils.GetEnvString("RABBITMQ_PORT", "5672"),
			Host:     utils.GetEnvString("RABBITMQ_HOST", "localhost"),
			Username: utils.GetEnvString("RABBITMQ_USERNAME", "guest"),
			Password: utils.GetEnvString("RABBITMQ_PASSWORD", "guest"),
			VHost:    utils.GetEnvString("RABBITMQ_VHOST", "/"),
		},
		Minio: Minio{
			Port:     utils.GetEnvString("MINIO_PORT", "9000"),
			Host:     utils.GetEnvString("MINIO_HOST", "localhost"),
			Username: utils.GetEnvString("MINIO_USERNAME", "minioadmin"),
			Password: utils.GetEnvString("MINIO_PASSWORD", "minioadmin"),
			Region:   utils.GetEnvString("MINIO_REGION", ""),
			UseSSL:   utils.GetEnvBool("MINIO_USE_SSL", false),
		},
	}
}

func NewInternalConfig() *InternalConfig {
	defaults := validity.DefaultConfig()
	return &InternalConfig{
		App: App{
			Env:                          utils.GetEnvString("APP_ENV", "development"),
			Port:                         utils.GetEnvString("APP_PORT", "8080"),
			Version:                      utils.GetEnvString("APP_VERSION", "v1"),
			Address:                      utils.GetEnvString("APP_ADDRESS", "localhost"),
			Timezone:                     utils.GetEnvString("APP_TIMEZONE", "UTC"),
			EndpointPrefix:               utils.GetEnvString("APP_ENDPOINT_PREFIX", "api"),
			AllowedOrigins:               utils.GetEnvCSV("APP_ALLOWED_ORIGINS", []string{"*"}),
			MaxRequests:                  utils.GetEnvInt("APP_MAX_REQUEST", 100),
			MaxTimeRequestsPerSeconds:    utils.GetEnvInt("APP_MAX_TIME_REQUESTS_PER_SECONDS", 60),
			EvaluationBurst:              utils.GetEnvInt("APP_EVALUATION_BURST", 20),
			EvaluationRefillInSeconds:    utils.GetEnvInt("APP_EVALUATION_REFILL_IN_SECONDS", 3),
			EvaluationBlockTimeInSeconds: utils.GetEnvInt("APP_EVALUATION_BLOCK_TIME_IN_SECONDS", 60),
			ShutdownTimeoutInSeconds:     utils.GetEnvInt("APP_SHUTDOWN_TIMEOUT_IN_SECONDS", 10),
			RequestTimeoutInSeconds:      utils.GetEnvInt("APP_REQUEST_TIMEOUT_IN_SECONDS", 10),
			RequestBodyLimitInMegabyte:   utils.GetEnvInt("APP_REQUEST_BODY_LIMIT_IN_MEGABYTE", 2),
		},
		Template: AppTemplate{
			CacheTTL: utils.GetEnvDuration("TEMPLATE_CACHE_TTL", 24*time.Hour),
		},
		Validity: AppValidity{
			StraightLiningThreshold: utils.GetEnvFloat("VALIDITY_STRAIGHT_LINING_THRESHOLD", defaults.StraightLiningThreshold),
			AlternatingThreshold:    utils.GetEnvFloat("VALIDITY_ALTERNATING_THRESHOLD", defaults.AlternatingThreshold),
			MinCompletionPercentage: utils.GetEnvFloat("VALIDITY_MIN_COMPLETION_PERCENTAGE", defaults.MinCompletionPercentage),
			RapidResponseFloorMs:    utils.GetEnvFloat("VALIDITY_RAPID_RESPONSE_FLOOR_MS", defaults.RapidResponseFloorMs),
			MinAnsweredForPatterns:  utils.GetEnvInt("VALIDITY_MIN_ANSWERED_FOR_PATTERNS", defaults.MinAnsweredForPatterns),
		},
		Minio: AppMinio{
			ReportBucketName:  utils.GetEnvString("MINIO_REPORT_BUCKET_NAME", "assessment-reports"),
			ReportArchivingOn: utils.GetEnvBool("MINIO_REPORT_ARCHIVING_ON", true),
		},
		RabbitMQ: AppRabbitMQ{
			EvaluationEventQueue: utils.GetEnvString("RABBITMQ_EVALUATION_EVENT_QUEUE", "assessment_evaluated_queue"),
			EventPublishingOn:    utils.GetEnvBool("RABBITMQ_EVENT_PUBLISHING_ON", true),
		},
	}
}

// ValidityConfig converts the env driven thresholds into analyzer config.
func (c *InternalConfig) ValidityConfig() validity.Config {
	return validity.Config{
		StraightLiningThreshold: c.Validity.StraightLiningThreshold,
		AlternatingThreshold:    c.Validity.AlternatingThreshold,
		MinCompletionPercentage: c.Validity.MinCompletionPercentage,
		RapidResponseFloorMs:    c.Validity.RapidResponseFloorMs,
		MinAnsweredForPatterns:  c.Validity.MinAnsweredForPatterns,
	}
}
