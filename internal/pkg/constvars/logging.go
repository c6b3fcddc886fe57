package constvars

const (
	LoggingRequestIDKey          = "request_id"
	LoggingMethodKey             = "method"
	LoggingEndpointKey           = "endpoint"
	LoggingRemoteAddrKey         = "remote_addr"
	LoggingUserAgentKey          = "user_agent"
	LoggingQueryKey              = "query"
	LoggingStatusCodeKey         = "status_code"
	LoggingDurationKey           = "duration"
	LoggingSuccessKey            = "success"
	LoggingTemplateKey           = "template_key"
	LoggingTemplateIDKey         = "template_id"
	LoggingTemplateVersionKey    = "template_version"
	LoggingEvaluationIDKey       = "evaluation_id"
	LoggingCacheLayerKey         = "cache_layer"
	LoggingConditionKey          = "condition"
	LoggingSeverityKey           = "severity"
	LoggingTotalScoreKey         = "total_score"
	LoggingValidityLevelKey      = "validity_level"
	LoggingQueueNameKey          = "queue_name"
	LoggingBucketNameKey         = "bucket_name"
	LoggingObjectNameKey         = "object_name"
	LoggingRedisKey              = "redis_key"
	LoggingLockExpirationTimeKey = "lock_expiration_time"
	LoggingTrackedClientsKey     = "tracked_clients"
	LoggingBlockedClientsKey     = "blocked_clients"
)
