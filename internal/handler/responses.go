package handler

import (
	"errors"
	"net/http"
	"sort"

	"github.com/goccy/go-json"

	"github.com/tubehub/tubehub-api/internal/domain"
	"github.com/tubehub/tubehub-api/internal/logger"
)

// SuccessResponse is the envelope of every 2xx response
type SuccessResponse struct {
	Success    bool   `json:"success"`
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Data       any    `json:"data"`
}

// FieldError describes one rejected request field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ErrorResponse is the envelope of every 4xx and 5xx response
type ErrorResponse struct {
	Success    bool         `json:"success"`
	StatusCode int          `json:"statusCode"`
	Message    string       `json:"message"`
	Errors     []FieldError `json:"errors"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload any) {
	buf := getBuffer()
	defer putBuffer(buf)

	// Encode first so an encoding failure can still become a 500
	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		logger.Error(LogMsgEncodeFailed, "error", err)
		http.Error(w, ErrMsgGenericServerError, http.StatusInternalServerError)
		return
	}

	w.Header().Set(HeaderContentType, ContentTypeJSON)
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		logger.Error(LogMsgWriteFailed, "error", err)
	}
}

// respondSuccess wraps data in the success envelope
func respondSuccess(w http.ResponseWriter, status int, message string, data any) {
	respondJSON(w, status, SuccessResponse{
		Success:    true,
		StatusCode: status,
		Message:    message,
		Data:       data,
	})
}

// respondFailure sends the error envelope. fields may be nil.
func respondFailure(w http.ResponseWriter, status int, message string, fields []FieldError) {
	if fields == nil {
		fields = []FieldError{}
	}
	respondJSON(w, status, ErrorResponse{
		Success:    false,
		StatusCode: status,
		Message:    message,
		Errors:     fields,
	})
}

// respondServiceError maps err onto the error envelope. Server-side failures are
// logged with the request id and answered with a generic message.
func respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status, message := mapServiceError(err)
	log := logger.FromContext(r.Context())
	if status >= http.StatusInternalServerError {
		log.Error(LogMsgRequestFailed, "status", status, "path", r.URL.Path, "error", err)
	} else {
		log.Debug(LogMsgRequestRejected, "status", status, "path", r.URL.Path, "error", err)
	}
	respondFailure(w, status, message, nil)
}

// statusByCategory is checked in order; the first category err belongs to wins
var statusByCategory = []struct {
	category error
	status   int
}{
	{domain.ErrInvalidInput, http.StatusBadRequest},
	{domain.ErrUnauthorized, http.StatusUnauthorized},
	{domain.ErrForbidden, http.StatusForbidden},
	{domain.ErrNotFound, http.StatusNotFound},
	{domain.ErrConflict, http.StatusConflict},
	{domain.ErrMediaUnavailable, http.StatusServiceUnavailable},
	{domain.ErrInternal, http.StatusInternalServerError},
}

// mapServiceError converts a service error into a status code and a client-safe message
func mapServiceError(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgGenericServerError
	}

	for _, entry := range statusByCategory {
		if !errors.Is(err, entry.category) {
			continue
		}
		if entry.status == http.StatusServiceUnavailable {
			return entry.status, ErrMsgUnavailable
		}
		var de *domain.Error
		if errors.As(err, &de) {
			return entry.status, de.Msg
		}
		return entry.status, entry.category.Error()
	}

	// Anything without a category is a store or programming failure
	return http.StatusInternalServerError, ErrMsgGenericServerError
}

// sortedFieldErrors flattens a field -> message map in a stable order
func sortedFieldErrors(fields map[string]string) []FieldError {
	out := make([]FieldError, 0, len(fields))
	for field, msg := range fields {
		out = append(out, FieldError{Field: field, Message: msg})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Field < out[j].Field })
	return out
}

// RespondError writes err in the error envelope. Middleware outside this
// package uses it so every rejection has the same shape.
func RespondError(w http.ResponseWriter, r *http.Request, err error) {
	respondServiceError(w, r, err)
}

// RespondStatus writes a bare error envelope with status and message
func RespondStatus(w http.ResponseWriter, status int, message string) {
	respondFailure(w, status, message, nil)
}
