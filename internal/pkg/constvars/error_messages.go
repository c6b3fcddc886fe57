package constvars

// Validation messages mapper
var CustomValidationErrorMessages = map[string]string{
	"required":          "is required",
	"min":               "must be at least %s",
	"max":               "must be at most %s",
	"gt":                "must be greater than %s",
	"gte":               "must be greater than or equal to %s",
	"lte":               "must be less than or equal to %s",
	"oneof":             "must be one of [%s]",
	"dive":              "contains an invalid entry",
	"uuid":              "must be a valid UUID",
	"template_key_part": "must not be empty or contain @, / or spaces",
}

// Tags that require parameter substitution
var TagsWithParams = map[string]bool{
	"min":   true,
	"max":   true,
	"gt":    true,
	"gte":   true,
	"lte":   true,
	"oneof": true,
}

// Error messages for clients
const (
	ErrClientCannotProcessRequest          = "failed to process your request"
	ErrClientSomethingWrongWithApplication = "there is something wrong with the application"
	ErrClientServerLongRespond             = "the app taking too long to respond"
	ErrClientTemplateNotFound              = "assessment template not found"
	ErrClientTemplateInvalid               = "assessment template is not usable"
	ErrClientEvaluationNotFound            = "evaluation not found"
	ErrClientUnknownItem                   = "response refers to an item that is not part of the assessment"
	ErrClientUnknownOptionValue            = "response value is not a valid option for the item"
	ErrClientDuplicateAnswer               = "an item was answered more than once"
	ErrClientTooManyRequests               = "too many requests, you are temporarily blocked"
	ErrClientTemplateSeedInProgress        = "assessment template is being updated, try again later"
)

// Error messages for developers
const (
	ErrDevInvalidInput                = "invalid input"
	ErrDevValidationFailed            = "validation failed"
	ErrDevCannotParseJSON             = "cannot parse JSON"
	ErrDevCannotParseYAML             = "cannot parse YAML"
	ErrDevCannotMarshalJSON           = "cannot marshal JSON"
	ErrDevCannotReadFile              = "cannot read file %s"
	ErrDevServerDeadlineExceeded      = "server deadline exceeded"
	ErrDevServerProcess               = "server failed to process the request"
	ErrDevURLParamValidationFailed    = "URL param %s validation failed"
	ErrDevTemplateInvalid             = "template %s is structurally invalid"
	ErrDevTemplateNotFound            = "template %s not found"
	ErrDevEvaluationNotFound          = "evaluation %s not found"
	ErrDevUnknownItem                 = "item number %d does not exist in template"
	ErrDevUnknownOptionValue          = "value %q is not an option of item %d"
	ErrDevDuplicateAnswer             = "item number %d appears more than once in answers"
	ErrDevDBFailedToFindDocument      = "failed to find document in database"
	ErrDevDBFailedToInsertDocument    = "failed to insert document into database"
	ErrDevDBFailedToUpdateDocument    = "failed to update document in database"
	ErrDevRedisGetData                = "failed to get data from redis"
	ErrDevRedisSetData                = "failed to set data to redis"
	ErrDevRedisDeleteData             = "failed to delete data from redis"
	ErrDevMinioFailedToCreateObject   = "failed to create object in bucket %s"
	ErrDevRabbitMQFailedToPublish     = "failed to publish message to queue %s"
	ErrDevRabbitMQPublishNotConfirmed = "message to queue %s was not confirmed"
	ErrDevConditionEvaluationFailed   = "warning flag condition could not be evaluated"
	ErrDevUnsupportedDefinitionFormat = "unsupported definition file extension %s"
	ErrDevRateLimitExceeded           = "rate limit exceeded for %s"
	ErrDevTemplateSeedLocked          = "template %s is locked by another seeder"
	ErrDevRedisUnlock                 = "failed to release redis lock"
)
