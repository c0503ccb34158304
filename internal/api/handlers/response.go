package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/progate-hackathon-strawberry-flavor/leaderboard-backend/internal/apperrors"
)

// WriteJSONResponse writes data as a JSON response body.
func WriteJSONResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// WriteErrorResponse writes a JSON error body with the given message.
func WriteErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	WriteJSONResponse(w, statusCode, map[string]string{"message": message})
}

// WriteError maps a service error onto an HTTP response. Client faults keep
// their message; store and unexpected failures are logged and answered with
// a generic message so provider internals never leak to callers.
func WriteError(w http.ResponseWriter, logger *slog.Logger, err error) {
	var validationErr *apperrors.ValidationError
	if errors.As(err, &validationErr) {
		WriteErrorResponse(w, http.StatusBadRequest, validationErr.Message)
		return
	}

	var identityErr *apperrors.IdentityError
	if errors.As(err, &identityErr) {
		WriteErrorResponse(w, http.StatusUnauthorized, identityErr.Message)
		return
	}

	var storageErr *apperrors.StorageError
	if errors.As(err, &storageErr) {
		logger.Error("score store failure", "op", storageErr.Op, "error", storageErr.Err)
		WriteErrorResponse(w, http.StatusInternalServerError, "Internal storage error")
		return
	}

	logger.Error("request failed", "error", err)
	WriteErrorResponse(w, http.StatusInternalServerError, "Internal server error")
}
