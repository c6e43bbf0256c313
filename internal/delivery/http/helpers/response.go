package helpers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"goonj/internal/domain"
)

// Error codes for API error responses. Use these with WriteJSONError.
const (
	ErrCodeBadRequest       = "bad_request"
	ErrCodeValidation       = "validation_failed"
	ErrCodeUnauthorized     = "unauthorized"
	ErrCodeNotFound         = "not_found"
	ErrCodeConflict         = "conflict"
	ErrCodePayment          = "payment_error"
	ErrCodeStoreUnavailable = "store_unavailable"
	ErrCodeInternalError    = "internal_error"
)

// APIError is the error object in the standardized API response envelope.
// Fields is only set for validation_failed and maps form field names to messages.
// swagger:model APIError
type APIError struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// APIResponse is the standardized envelope for all API responses.
// On success: Data is set, Error is nil. On error: Data is nil, Error is set.
// swagger:model APIResponse
type APIResponse struct {
	Data  any       `json:"data"`
	Error *APIError `json:"error"`
}

// WriteJSONSuccess sets Content-Type to application/json, writes statusCode, and
// encodes an APIResponse with the given data and error set to nil.
func WriteJSONSuccess(w http.ResponseWriter, statusCode int, data any) {
	writeJSON(w, statusCode, APIResponse{Data: data})
}

// WriteJSONError sets Content-Type to application/json, writes statusCode, and
// encodes an APIResponse with data nil and the given error code and message.
func WriteJSONError(w http.ResponseWriter, statusCode int, code, message string) {
	writeJSON(w, statusCode, APIResponse{Error: &APIError{Code: code, Message: message}})
}

// WriteValidationError writes a 422 carrying the per-field messages.
func WriteValidationError(w http.ResponseWriter, fields domain.FieldErrors) {
	writeJSON(w, http.StatusUnprocessableEntity, APIResponse{Error: &APIError{
		Code:    ErrCodeValidation,
		Message: "please correct the highlighted fields",
		Fields:  fields,
	}})
}

func writeJSON(w http.ResponseWriter, statusCode int, body APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}

// StatusFor maps a service error to its HTTP status and error code.
func StatusFor(err error) (int, string) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusUnprocessableEntity, ErrCodeValidation
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, ErrCodeUnauthorized
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, ErrCodeNotFound
	case errors.Is(err, domain.ErrDuplicateSubmission),
		errors.Is(err, domain.ErrSubmissionInProgress),
		errors.Is(err, domain.ErrDuplicateEmail):
		return http.StatusConflict, ErrCodeConflict
	case errors.Is(err, domain.ErrPaymentGateway),
		errors.Is(err, domain.ErrPaymentUnavailable),
		errors.Is(err, domain.ErrPaymentNotConfirmed),
		errors.Is(err, domain.ErrAmountMismatch):
		return http.StatusPaymentRequired, ErrCodePayment
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrCodeBadRequest
	case errors.Is(err, domain.ErrStoreUnavailable):
		return http.StatusServiceUnavailable, ErrCodeStoreUnavailable
	default:
		return http.StatusInternalServerError, ErrCodeInternalError
	}
}

// WriteServiceError converts err into the error envelope. Server-side failures are logged
// and their detail is not echoed to the client.
func WriteServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		WriteValidationError(w, verr.Fields)
		return
	}
	status, code := StatusFor(err)
	message := err.Error()
	switch status {
	case http.StatusInternalServerError:
		message = "something went wrong, please try again"
	case http.StatusServiceUnavailable:
		message = "registrations are temporarily unavailable, please try again"
	}
	if status >= http.StatusInternalServerError && logger != nil {
		logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
	}
	WriteJSONError(w, status, code, message)
}
