package utils

import (
	"context"
	"time"

	"lesson-display-service/internal/pkg/constvars"

	"go.uber.org/zap"
)

func LogOperation(logger *zap.Logger, operation string, requestID string, fn func() error) error {
	start := time.Now()

	logger.Debug("Operation started",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingOperationKey, operation),
	)

	err := fn()
	duration := time.Since(start)

	if err != nil {
		logger.Error("Operation failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingOperationKey, operation),
			zap.Duration(constvars.LoggingDurationKey, duration),
			zap.Bool(constvars.LoggingSuccessKey, false),
			zap.Error(err),
		)
		return err
	}

	logger.Info("Operation completed",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingOperationKey, operation),
		zap.Duration(constvars.LoggingDurationKey, duration),
		zap.Bool(constvars.LoggingSuccessKey, true),
	)
	return nil
}

func GetRequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if requestID, ok := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string); ok {
		return requestID
	}
	return ""
}

// IsAPIKeyAuthenticated reports whether the control API key middleware accepted
// the request. It is false when no key is configured.
func IsAPIKeyAuthenticated(ctx context.Context) bool {
	if ctx == nil {
		return false
	}
	authenticated, _ := ctx.Value(constvars.CONTEXT_API_KEY_AUTH).(bool)
	return authenticated
}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, constvars.CONTEXT_REQUEST_ID_KEY, requestID)
}
