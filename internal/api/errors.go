package api

import (
	"encoding/json"
	"net/http"

	"bigo/internal/errors"
)

// ErrorResponse represents an HTTP error response
type ErrorResponse struct {
	Error          string             `json:"error"`
	Code           string             `json:"code"`
	Details        interface{}        `json:"details,omitempty"`
	SuggestedFixes []errors.FixAction `json:"suggestedFixes,omitempty"`
	Drilldowns     []errors.Drilldown `json:"drilldowns,omitempty"`
}

// WriteError writes an error response to the HTTP response writer
func WriteError(w http.ResponseWriter, err error, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := ErrorResponse{
		Error: err.Error(),
	}

	// If it's a BigoError, include additional information
	if bigoErr, ok := err.(*errors.BigoError); ok {
		resp.Code = string(bigoErr.Code)
		resp.Details = bigoErr.Details
		resp.SuggestedFixes = bigoErr.SuggestedFixes
		resp.Drilldowns = bigoErr.Drilldowns
	} else {
		resp.Code = string(errors.InternalError)
	}

	json.NewEncoder(w).Encode(resp)
}

// WriteBigoError writes a BigoError with automatic status code mapping
func WriteBigoError(w http.ResponseWriter, err *errors.BigoError) {
	WriteError(w, err, MapErrorToStatus(err.Code))
}

// MapErrorToStatus maps analyzer error codes to HTTP status codes
func MapErrorToStatus(code errors.ErrorCode) int {
	switch code {
	case errors.SpanInvalid, errors.PathOutsideRepo, errors.ConfigInvalid,
		errors.LanguagesInvalid, errors.PolicyInvalid:
		return http.StatusBadRequest // 400
	case errors.Unauthorized:
		return http.StatusUnauthorized // 401
	case errors.FileUnreadable, errors.RecordNotFound:
		return http.StatusNotFound // 404
	case errors.PolicyViolation:
		return http.StatusUnprocessableEntity // 422
	case errors.StoreUnavailable:
		return http.StatusServiceUnavailable // 503
	case errors.Timeout:
		return http.StatusGatewayTimeout // 504
	default:
		return http.StatusInternalServerError // 500
	}
}

// WriteJSON writes a JSON response
func WriteJSON(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// BadRequest writes a 400 Bad Request error
func BadRequest(w http.ResponseWriter, message string) {
	WriteError(w, &errors.BigoError{
		Code:    errors.SpanInvalid,
		Message: message,
	}, http.StatusBadRequest)
}

// NotFound writes a 404 Not Found error
func NotFound(w http.ResponseWriter, message string) {
	WriteError(w, &errors.BigoError{
		Code:    errors.FileUnreadable,
		Message: message,
	}, http.StatusNotFound)
}

// UnauthorizedError writes a 401 Unauthorized error
func UnauthorizedError(w http.ResponseWriter, message string) {
	WriteError(w, &errors.BigoError{
		Code:    errors.Unauthorized,
		Message: message,
	}, http.StatusUnauthorized)
}

// InternalServerError writes a 500 Internal Server Error
func InternalServerError(w http.ResponseWriter, message string, err error) {
	WriteError(w, &errors.BigoError{
		Code:    errors.InternalError,
		Message: message,
	}, http.StatusInternalServerError)
}
