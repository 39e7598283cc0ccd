package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/turtacn/FragSAR/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/FragSAR/internal/interfaces/http/middleware"
	"github.com/turtacn/FragSAR/pkg/errors"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// writeAppError maps err to its HTTP status and writes {"detail": ...}.
// Client errors report the AppError message, which is written for end
// users. Server errors report the full error text.
func writeAppError(w http.ResponseWriter, r *http.Request, logger logging.Logger, err error) {
	status := http.StatusInternalServerError
	detail := err.Error()
	if ae, ok := errors.AsAppError(err); ok {
		status = errors.HTTPStatusForCode(ae.Code)
		if status < http.StatusInternalServerError {
			detail = ae.Message
		}
	}
	if status >= http.StatusInternalServerError {
		logger.WithContext(r.Context()).WithError(err).Error("request failed",
			logging.String("path", r.URL.Path))
	}
	middleware.WriteDetail(w, status, detail)
}

//Personal.AI order the ending
