package constvars

const (
	LoggingRequestIDKey          = "request_id"
	LoggingOperationKey          = "operation"
	LoggingDurationKey           = "duration"
	LoggingSuccessKey            = "success"
	LoggingErrorCodeKey          = "error_code"
	LoggingErrorMessageKey       = "error_message"
	LoggingRedisKey              = "redis_key"
	LoggingLockValueKey          = "lock_value"
	LoggingLockExpirationTimeKey = "lock_expiration_time"
	LoggingLockStoredValueKey    = "lock_stored_value"
	LoggingLockExpectedValueKey  = "lock_expected_value"
	LoggingBucketKey             = "bucket"
	LoggingObjectKey             = "object_key"
	LoggingExchangeKey           = "exchange"
	LoggingTargetDateKey         = "target_date"
	LoggingPageCountKey          = "page_count"
	LoggingAPIKeyAuthKey         = "api_key_auth"
	LoggingUnassignedCountKey    = "unassigned_count"
	LoggingDebugModeKey          = "debug_mode"
	LoggingGeneratedAtKey        = "generated_at"
)
