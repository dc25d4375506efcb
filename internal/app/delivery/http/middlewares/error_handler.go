package middlewares

import (
	"errors"
	"fmt"
	"net/http"

	"lesson-display-service/internal/pkg/constvars"
	"lesson-display-service/internal/pkg/exceptions"
	"lesson-display-service/internal/pkg/utils"

	"go.uber.org/zap"
)

func (m *Middlewares) ErrorHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			var err error
			switch x := rec.(type) {
			case string:
				err = errors.New(x)
			case error:
				err = x
			default:
				err = fmt.Errorf("%v", x)
			}

			m.Log.Error("ErrorHandler recovered from panic",
				zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(r.Context())),
				zap.String("endpoint", r.URL.Path),
				zap.Error(err),
				zap.Stack("stack"),
			)
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrPanicRecovered(err))
		}()
		next.ServeHTTP(w, r)
	})
}
