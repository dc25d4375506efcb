package middlewares

import (
	"net/http"
	"time"

	"lesson-display-service/internal/pkg/exceptions"
	"lesson-display-service/internal/pkg/utils"

	"github.com/go-chi/httprate"
)

// GlobalRateLimit caps requests per client IP per second across every route.
func (m *Middlewares) GlobalRateLimit() func(next http.Handler) http.Handler {
	maxRequests := m.InternalConfig.App.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 20
	}
	return httprate.Limit(
		maxRequests,
		time.Second,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTooManyRequests(nil))
		}),
	)
}

// ControlRateLimit applies the per-IP token bucket to the control routes.
func (m *Middlewares) ControlRateLimit(next http.Handler) http.Handler {
	return m.controlLimiter.Limit(next)
}
