package middlewares

import (
	"net/http"
	"time"

	"lesson-display-service/internal/pkg/constvars"
	"lesson-display-service/internal/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type responseRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (rec *responseRecorder) WriteHeader(code int) {
	rec.statusCode = code
	rec.ResponseWriter.WriteHeader(code)
}

func (m *Middlewares) Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := utils.GetRequestID(r.Context())

		rec := &responseRecorder{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rec, r)

		fields := []zap.Field{
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int("status_code", rec.statusCode),
			zap.String("method", r.Method),
			zap.String("endpoint", r.URL.Path),
			zap.String("remote_addr", r.RemoteAddr),
			zap.String("query", r.URL.RawQuery),
			zap.Duration(constvars.LoggingDurationKey, time.Since(start)),
			zap.Bool(constvars.LoggingSuccessKey, rec.statusCode < 400),
		}
		// The kiosk polls GET /display constantly; keep those at debug.
		if r.Method == http.MethodGet && rec.statusCode < 400 {
			m.Log.Debug("API request completed", fields...)
			return
		}
		m.Log.Info("API request completed", fields...)
	})
}

// RequestIDMiddleware reuses a client supplied X-Request-ID or generates one.
func (m *Middlewares) RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(constvars.HeaderRequestID)
		if requestID == "" || len(requestID) > 128 {
			requestID = uuid.NewString()
		}

		w.Header().Set(constvars.HeaderRequestID, requestID)
		next.ServeHTTP(w, r.WithContext(utils.WithRequestID(r.Context(), requestID)))
	})
}
