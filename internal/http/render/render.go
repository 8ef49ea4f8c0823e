// Package render writes JSON responses and maps ledger error kinds to HTTP statuses.
package render

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/MrJamesThe3rd/marketplace/internal/ledger"
)

// KindUnauthorized is reported when the caller cannot be resolved to a profile.
const KindUnauthorized ledger.Kind = "unauthorized"

type ErrorResponse struct {
	Kind       ledger.Kind `json:"kind"`
	Error      string      `json:"error"`
	MaxAllowed string      `json:"max_allowed,omitempty"`
	Shortfall  *int64      `json:"shortfall,omitempty"`
}

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func StatusOf(kind ledger.Kind) int {
	switch kind {
	case ledger.KindInvalidArgument, ledger.KindLimitExceeded, ledger.KindInsufficientFunds:
		return http.StatusBadRequest
	case ledger.KindForbidden:
		return http.StatusForbidden
	case ledger.KindNotFound:
		return http.StatusNotFound
	case ledger.KindConcurrentModification:
		return http.StatusConflict
	case KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// Error writes err with the status of its kind. Internal errors are logged and
// replaced by a generic message.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	kind := ledger.KindOf(err)
	resp := ErrorResponse{Kind: kind, Error: err.Error()}

	if kind == ledger.KindInternal {
		slog.Error("request failed",
			"error", err,
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", middleware.GetReqID(r.Context()),
		)

		resp.Error = "an unexpected error occurred, please try again later"
	}

	var limitErr *ledger.LimitExceededError
	if errors.As(err, &limitErr) {
		resp.MaxAllowed = limitErr.MaxAllowed.String()
	}

	var fundsErr *ledger.InsufficientFundsError
	if errors.As(err, &fundsErr) {
		resp.Shortfall = new(fundsErr.Shortfall)
	}

	JSON(w, StatusOf(kind), resp)
}

func Unauthorized(w http.ResponseWriter, msg string) {
	JSON(w, http.StatusUnauthorized, ErrorResponse{Kind: KindUnauthorized, Error: msg})
}
