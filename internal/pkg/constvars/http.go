package constvars

const (
	MIMEApplicationJSON = "application/json"
)

const (
	StatusOK                  = 200
	StatusAccepted            = 202
	StatusBadRequest          = 400
	StatusUnauthorized        = 401
	StatusTooManyRequests     = 429
	StatusInternalServerError = 500
	StatusBadGateway          = 502
	StatusServiceUnavailable  = 503
	StatusGatewayTimeout      = 504
)

const (
	HeaderContentType  = "Content-Type"
	HeaderRequestID    = "X-Request-ID"
	HeaderAPIKey       = "X-API-Key"
	HeaderCacheControl = "Cache-Control"
)
