package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/tasklist/internal/api/shared"
	"github.com/phrazzld/tasklist/internal/domain"
)

// getPathUUID extracts and parses a UUID path parameter. A missing or
// malformed value is a domain validation error.
func getPathUUID(r *http.Request, paramName string) (uuid.UUID, error) {
	return domain.ParseID(paramName, chi.URLParam(r, paramName))
}

// getCompletedFilter parses the optional completed query parameter.
func getCompletedFilter(r *http.Request) (*bool, error) {
	raw := r.URL.Query().Get("completed")
	if raw == "" {
		return nil, nil
	}
	completed, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, domain.NewValidationError("completed", "must be true or false", err)
	}
	return &completed, nil
}

// decodeRequest decodes and validates the body into dst, writing a 422
// response and returning false when either step fails.
func decodeRequest(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := shared.DecodeJSON(r, dst); err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			HandleAPIError(w, r, verr, "")
			return false
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusUnprocessableEntity, "Invalid request body", err)
		return false
	}
	if err := shared.ValidateRequest(dst); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusUnprocessableEntity, SanitizeValidationError(err), err)
		return false
	}
	return true
}
