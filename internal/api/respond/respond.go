// Package respond writes JSON bodies and the shared error envelope.
package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/hugh/orgroster/internal/api/dto"
	"github.com/hugh/orgroster/internal/apperr"
)

func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Error maps err to its status code and envelope. Internal failures are
// logged with the request context and reach the client only as a generic
// message.
func Error(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	e := apperr.As(err)
	if e.Kind == apperr.KindInternal {
		logger.ErrorContext(r.Context(), "request failed",
			"op", e.Op,
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", middleware.GetReqID(r.Context()),
			"error", e.Err,
		)
	}

	JSON(w, e.HTTPStatus(), dto.ErrorResponse{
		Error:   e.Message,
		Code:    e.Code(),
		Details: e.Details,
	})
}
