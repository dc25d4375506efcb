package exceptions

import (
	"errors"
	"fmt"
	"runtime"

	"lesson-display-service/internal/pkg/constvars"
)

type CustomError struct {
	StatusCode    int        `json:"status_code"`
	Success       bool       `json:"success"`
	ClientMessage string     `json:"message"`
	DevMessage    string     `json:"dev_message,omitempty"`
	Locations     []Location `json:"locations,omitempty"`
	Err           error      `json:"-"`
}

type Location struct {
	File         string `json:"file"`
	Line         int    `json:"line"`
	FunctionName string `json:"function_name"`
}

func (e *CustomError) Error() string {
	return e.DevMessage
}

func (e *CustomError) Unwrap() error {
	return e.Err
}

// BuildNewCustomError wraps err with a status code and the client and dev messages.
// When err is already a CustomError its locations are carried over and the caller
// location is appended.
func BuildNewCustomError(err error, statusCode int, clientMessage, devMessage string) *CustomError {
	location := getLocation(2)

	var existing *CustomError
	if errors.As(err, &existing) {
		locations := append([]Location{}, existing.Locations...)
		return &CustomError{
			StatusCode:    statusCode,
			ClientMessage: clientMessage,
			DevMessage:    fmt.Sprintf("%s: %s", devMessage, existing.DevMessage),
			Locations:     append(locations, location),
			Err:           err,
		}
	}

	message := devMessage
	if err != nil {
		message = fmt.Sprintf("%s: %s", devMessage, err.Error())
	}
	return &CustomError{
		StatusCode:    statusCode,
		ClientMessage: clientMessage,
		DevMessage:    message,
		Locations:     []Location{location},
		Err:           err,
	}
}

func getLocation(skip int) Location {
	pc, file, line, ok := runtime.Caller(skip)
	if !ok {
		return Location{
			File:         constvars.ResponseUnknown,
			Line:         0,
			FunctionName: constvars.ResponseUnknown,
		}
	}
	return Location{
		File:         file,
		Line:         line,
		FunctionName: runtime.FuncForPC(pc).Name(),
	}
}
