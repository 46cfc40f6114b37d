package httpx

import (
	"encoding/json"
	"net/http"

	"libraryapi/internal/usecase"
)

type SuccessResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
	Meta    interface{} `json:"meta,omitempty"`
}

type ErrorResponse struct {
	Success bool              `json:"success"`
	Error   ErrorResponseBody `json:"error"`
}

type ErrorResponseBody struct {
	Code    string        `json:"code"`
	Message string        `json:"message"`
	Details []ErrorDetail `json:"details,omitempty"`
}

type ErrorDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func JSONSuccess(w http.ResponseWriter, data interface{}, meta interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(SuccessResponse{
		Success: true,
		Data:    data,
		Meta:    meta,
	})
}

func JSONSuccessCreated(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(SuccessResponse{
		Success: true,
		Data:    data,
	})
}

func JSONError(w http.ResponseWriter, statusCode int, code string, message string, details []ErrorDetail) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{
		Success: false,
		Error: ErrorResponseBody{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// JSONTaxonomyError renders a taxonomy error with its HTTP status.
// Anything outside the taxonomy is sanitized to INTERNAL so raw store
// detail never reaches the client.
func JSONTaxonomyError(w http.ResponseWriter, err error) {
	e := usecase.AsError(err)

	var details []ErrorDetail
	if e.Field != "" {
		details = []ErrorDetail{{Field: e.Field, Message: e.Message}}
	}
	JSONError(w, statusFor(e.Code), string(e.Code), e.Message, details)
}

func statusFor(code usecase.Code) int {
	switch code {
	case usecase.CodeUnauthenticated, usecase.CodeInvalidCredentials:
		return http.StatusUnauthorized
	case usecase.CodeUnauthorized:
		return http.StatusForbidden
	case usecase.CodeValidationFailed:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
