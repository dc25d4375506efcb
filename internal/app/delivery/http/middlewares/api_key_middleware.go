package middlewares

import (
	"context"
	"crypto/subtle"
	"net/http"

	"lesson-display-service/internal/pkg/constvars"
	"lesson-display-service/internal/pkg/exceptions"
	"lesson-display-service/internal/pkg/utils"

	"go.uber.org/zap"
)

// RequireControlAPIKey guards the control routes. When no key is configured the
// routes are open.
func (m *Middlewares) RequireControlAPIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		expected := m.InternalConfig.App.ControlAPIKey
		if expected == "" {
			next.ServeHTTP(w, r)
			return
		}

		apiKey := r.Header.Get(constvars.HeaderAPIKey)
		if apiKey == "" || subtle.ConstantTimeCompare([]byte(apiKey), []byte(expected)) != 1 {
			m.Log.Warn("Control API key rejected",
				zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(r.Context())),
				zap.String("ip", r.RemoteAddr),
				zap.String("endpoint", r.URL.Path),
				zap.String("method", r.Method),
				zap.Bool("key_present", apiKey != ""),
			)
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrInvalidAPIKey(nil))
			return
		}

		ctx := context.WithValue(r.Context(), constvars.CONTEXT_API_KEY_AUTH, true)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
