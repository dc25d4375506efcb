package constvars

// Validation messages mapper
var CustomValidationErrorMessages = map[string]string{
	"required": "is required",
	"datetime": "must match the layout %s",
	"oneof":    "must be one of [%s]",
}

// Client messages
const (
	ErrClientCannotProcessRequest          = "cannot process your request, please try again later"
	ErrClientSomethingWrongWithApplication = "something went wrong, please try again later"
	ErrClientNotAuthorized                 = "you are not authorized to perform this action"
	ErrClientTooManyRequests               = "too many requests, please slow down"
	ErrClientScheduleUnavailable           = "schedule data is currently unavailable"
	ErrClientServerLongRespond             = "the server took too long to respond"
)

// Dev messages
const (
	ErrDevCannotMarshalJSON       = "failed to marshal JSON"
	ErrDevCannotParseJSON         = "failed to parse JSON"
	ErrDevInvalidAPIKey           = "invalid API key"
	ErrDevRedisSet                = "failed to set redis value"
	ErrDevRedisGet                = "failed to get redis value"
	ErrDevRedisDelete             = "failed to delete redis value"
	ErrDevRedisExpire             = "failed to refresh redis key expiry"
	ErrDevRedisUnlock             = "failed to release redis lock"
	ErrDevMinioGetObject          = "failed to get object %s from bucket %s"
	ErrDevScheduleDocumentInvalid = "schedule document is invalid"
	ErrDevRabbitMQDeclareExchange = "failed to declare exchange %s"
	ErrDevRabbitMQPublishMessage  = "failed to publish message to exchange %s"
	ErrDevServerDeadlineExceeded  = "server deadline exceeded"
	ErrDevPanicRecovered          = "recovered from panic"
)
