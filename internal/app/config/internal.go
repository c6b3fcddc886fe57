package config

import "time"

type InternalConfig struct {
	App      App
	Template AppTemplate
	Validity AppValidity
	Minio    AppMinio
	RabbitMQ AppRabbitMQ
}

type App struct {
	Env                          string
	Port                         string
	Version                      string
	Address                      string
	Timezone                     string
	EndpointPrefix               string
	AllowedOrigins               []string
	MaxRequests                  int
	MaxTimeRequestsPerSeconds    int
	EvaluationBurst              int
	EvaluationRefillInSeconds    int
	EvaluationBlockTimeInSeconds int
	ShutdownTimeoutInSeconds     int
	RequestTimeoutInSeconds      int
	RequestBodyLimitInMegabyte   int
}

// AppTemplate controls how template definitions are cached.
type AppTemplate struct {
	CacheTTL time.Duration
}

// AppValidity holds the thresholds used by the validity analysis.
type AppValidity struct {
	StraightLiningThreshold float64
	AlternatingThreshold    float64
	MinCompletionPercentage float64
	RapidResponseFloorMs    float64
	MinAnsweredForPatterns  int
}

type AppMinio struct {
	ReportBucketName  string
	ReportArchivingOn bool
}

type AppRabbitMQ struct {
	EvaluationEventQueue string
	EventPublishingOn    bool
}
