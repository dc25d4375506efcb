package utils

import (
	"errors"
	"net/http"

	"lesson-display-service/internal/pkg/constvars"
	"lesson-display-service/internal/pkg/dto/responses"
	"lesson-display-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

func BuildSuccessResponse(w http.ResponseWriter, code int, message string, data interface{}) {
	response := responses.ResponseDTO{
		Success: true,
		Message: message,
		Data:    data,
	}
	w.Header().Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
	w.Header().Set(constvars.HeaderCacheControl, "no-store")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(response)
}

// BuildErrorResponse writes the error envelope. Dev messages and locations are only
// exposed outside production.
func BuildErrorResponse(log *zap.Logger, w http.ResponseWriter, err error) {
	code := constvars.StatusInternalServerError
	clientMessage := constvars.ErrClientSomethingWrongWithApplication

	var customErr *exceptions.CustomError
	if errors.As(err, &customErr) {
		code = customErr.StatusCode
		clientMessage = customErr.ClientMessage
		log.Error(customErr.DevMessage,
			zap.Int(constvars.LoggingErrorCodeKey, code),
			zap.String(constvars.LoggingErrorMessageKey, clientMessage),
			zap.Any("locations", customErr.Locations),
		)
	} else if err != nil {
		log.Error(err.Error(), zap.Int(constvars.LoggingErrorCodeKey, code))
	}

	response := exceptions.CustomError{
		StatusCode:    code,
		Success:       false,
		ClientMessage: clientMessage,
	}
	if customErr != nil && GetEnvString("APP_ENV", constvars.AppEnvDevelopment) != constvars.AppEnvProduction {
		response.DevMessage = customErr.DevMessage
		response.Locations = customErr.Locations
	}

	w.Header().Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(response)
}
