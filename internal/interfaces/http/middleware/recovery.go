package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/turtacn/FragSAR/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/FragSAR/pkg/errors"
	"github.com/turtacn/FragSAR/pkg/types/common"
)

// Recovery turns a panic in a handler into a 500 {"detail": ...} response.
// http.ErrAbortHandler is re-raised so net/http can abort the connection.
func Recovery(logger logging.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				detail := fmt.Sprint(rec)
				logger.WithContext(r.Context()).Error("panic recovered",
					logging.String("panic", detail),
					logging.String("method", r.Method),
					logging.String("path", r.URL.Path),
					logging.String("stack", string(debug.Stack())))
				ae := errors.Internal(detail)
				WriteDetail(w, errors.HTTPStatusForCode(ae.Code), ae.Message)
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// WriteDetail writes {"detail": detail} with the given status.
func WriteDetail(w http.ResponseWriter, status int, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(common.ErrorResponse{Detail: detail})
}

// WriteCode writes the default message and status registered for code.
func WriteCode(w http.ResponseWriter, code errors.ErrorCode) {
	WriteDetail(w, errors.HTTPStatusForCode(code), errors.DefaultMessageForCode(code))
}

//Personal.AI order the ending
