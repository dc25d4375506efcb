package middlewares

import (
	"time"

	"lesson-display-service/internal/app/config"

	"go.uber.org/zap"
)

type Middlewares struct {
	Log            *zap.Logger
	InternalConfig *config.InternalConfig
	controlLimiter *RateLimiter
}

func NewMiddlewares(log *zap.Logger, internalConfig *config.InternalConfig) *Middlewares {
	perMinute := internalConfig.App.ControlRequestsPerMinute
	if perMinute <= 0 {
		perMinute = 60
	}
	return &Middlewares{
		Log:            log,
		InternalConfig: internalConfig,
		controlLimiter: NewRateLimiter(log, perMinute, time.Minute, 30*time.Second),
	}
}
