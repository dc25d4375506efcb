package constvars

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY ContextKey = "request_id"
	CONTEXT_API_KEY_AUTH   ContextKey = "api_key_auth"
)

const (
	ResourceDisplay = "display"
)

const (
	AppEnvProduction  = "production"
	AppEnvDevelopment = "development"
)

const (
	RedisKeyScheduleDocument = "display:schedule"
	RedisKeySnapshot         = "display:snapshot"
	RedisKeyScheduleLeader   = "display:schedule:leader"
)
