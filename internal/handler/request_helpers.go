package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/tubehub/tubehub-api/internal/auth"
	"github.com/tubehub/tubehub-api/internal/domain"
	"github.com/tubehub/tubehub-api/internal/logger"
)

// DecodeAndValidateRequest decodes a JSON request body and validates it.
// On failure the error envelope has already been written and the handler should return.
//
// Example usage:
//
//	var req CommentRequest
//	if err := DecodeAndValidateRequest(r, w, &req, "Add comment"); err != nil {
//	    return
//	}
func DecodeAndValidateRequest(r *http.Request, w http.ResponseWriter, req any, actionName string) error {
	log := logger.FromContext(r.Context())

	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		log.Debug(LogMsgDecodeFailed, "action", actionName, "error", err)
		respondFailure(w, http.StatusBadRequest, ErrMsgInvalidRequest, nil)
		return err
	}

	return validateRequest(w, req)
}

// validateRequest runs struct tags on req and writes the field errors on failure
func validateRequest(w http.ResponseWriter, req any) error {
	if err := GetValidator().ValidateStruct(req); err != nil {
		respondFailure(w, http.StatusBadRequest, ErrMsgInvalidRequestSummary, sortedFieldErrors(FormatValidationError(err)))
		return err
	}
	return nil
}

// requireIdentity fetches the identity placed by the access gate middleware
func requireIdentity(w http.ResponseWriter, r *http.Request) (*domain.Identity, bool) {
	identity := auth.IdentityFromContext(r.Context())
	if identity == nil {
		respondServiceError(w, r, domain.ErrMissingIdentity)
		return nil, false
	}
	return identity, true
}

// pathParam returns a chi route parameter
func pathParam(r *http.Request, name string) string {
	return chi.URLParam(r, name)
}

// queryInt parses a positive integer query parameter. Missing or malformed
// values yield 0 so the callee applies its default.
func queryInt(r *http.Request, key string) int {
	v, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil || v < 0 {
		return 0
	}
	return v
}
