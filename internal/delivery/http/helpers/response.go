package helpers

import (
	"encoding/json"
	"net/http"

	"codedcode/internal/domain"
)

// Error codes for API error responses. Use these with WriteJSONError.
const (
	ErrCodeBadRequest         = "bad_request"
	ErrCodeValidation         = "validation_error"
	ErrCodeNotFound           = "not_found"
	ErrCodeConflict           = "conflict"
	ErrCodeRateLimited        = "rate_limited"
	ErrCodeServiceUnavailable = "service_unavailable"
	ErrCodeInternalError      = "internal_error"
)

// APIError is the error object in the standardized API response envelope.
// swagger:model APIError
type APIError struct {
	Code    string              `json:"code"`
	Message string              `json:"message"`
	Fields  []domain.FieldError `json:"fields,omitempty"`
	Detail  string              `json:"detail,omitempty"`
}

// APIResponse is the standardized envelope for all API responses.
// On success: Success is true and Data is set. On error: Success is false and Error is set;
// Message repeats the error message for clients that only read the top level.
// swagger:model APIResponse
type APIResponse struct {
	Success bool      `json:"success"`
	Message string    `json:"message,omitempty"`
	Data    any       `json:"data,omitempty"`
	Error   *APIError `json:"error,omitempty"`
}

// WriteJSON writes v as JSON with statusCode.
func WriteJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteJSONSuccess encodes a successful APIResponse with an optional message.
func WriteJSONSuccess(w http.ResponseWriter, statusCode int, message string, data any) {
	WriteJSON(w, statusCode, APIResponse{Success: true, Message: message, Data: data})
}

// WriteJSONError encodes a failed APIResponse with the given error code and message.
func WriteJSONError(w http.ResponseWriter, statusCode int, code, message string) {
	WriteAPIError(w, statusCode, &APIError{Code: code, Message: message})
}

// WriteAPIError encodes a failed APIResponse carrying apiErr.
func WriteAPIError(w http.ResponseWriter, statusCode int, apiErr *APIError) {
	WriteJSON(w, statusCode, APIResponse{Success: false, Message: apiErr.Message, Error: apiErr})
}
