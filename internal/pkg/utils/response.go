package utils

import (
	"errors"
	"konsulin-assessment-engine/internal/pkg/constvars"
	"konsulin-assessment-engine/internal/pkg/dto/responses"
	"konsulin-assessment-engine/internal/pkg/exceptions"
	"net/http"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

func BuildSuccessResponse(w http.ResponseWriter, code int, message string, data interface{}) {
	writeJSON(w, code, responses.ResponseDTO{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// BuildErrorResponse maps err onto its CustomError status. Anything else is
// reported as a 500. Developer details are hidden in production.
func BuildErrorResponse(log *zap.Logger, w http.ResponseWriter, err error) {
	var customErr *exceptions.CustomError
	if !errors.As(err, &customErr) {
		log.Error(err.Error(), zap.Int(constvars.LoggingStatusCodeKey, constvars.StatusInternalServerError))
		writeJSON(w, constvars.StatusInternalServerError, exceptions.CustomError{
			StatusCode:    constvars.StatusInternalServerError,
			ClientMessage: constvars.ErrClientSomethingWrongWithApplication,
		})
		return
	}

	fields := []zap.Field{
		zap.Int(constvars.LoggingStatusCodeKey, customErr.StatusCode),
		zap.String("file", customErr.Location.File),
		zap.Int("line", customErr.Location.Line),
		zap.String("function_name", customErr.Location.FunctionName),
	}
	if customErr.StatusCode >= constvars.StatusInternalServerError {
		log.Error(customErr.DevMessage, fields...)
	} else {
		log.Warn(customErr.DevMessage, fields...)
	}

	response := exceptions.CustomError{
		StatusCode:    customErr.StatusCode,
		ClientMessage: customErr.ClientMessage,
	}
	if GetEnvString("APP_ENV", "development") != "production" {
		response.DevMessage = customErr.DevMessage
		response.Location = customErr.Location
	}
	writeJSON(w, customErr.StatusCode, response)
}

func writeJSON(w http.ResponseWriter, code int, body interface{}) {
	w.Header().Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(body)
}
