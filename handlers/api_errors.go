package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/camden-git/policeportal/validation"
)

// APIErrorDetail represents a single error in the standardized error response.
type APIErrorDetail struct {
	Code   string `json:"code"`
	Status string `json:"status"`
	Detail string `json:"detail"`
}

// APIErrorResponse represents the standardized error response body.
type APIErrorResponse struct {
	Errors []APIErrorDetail `json:"errors"`
}

// WriteAPIError writes a standardized error response with the given HTTP status, code, and detail.
func WriteAPIError(w http.ResponseWriter, httpStatus int, code string, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatus)

	resp := APIErrorResponse{
		Errors: []APIErrorDetail{
			{
				Code:   code,
				Status: strconv.Itoa(httpStatus),
				Detail: detail,
			},
		},
	}

	_ = json.NewEncoder(w).Encode(resp)
}

// ValidationErrorResponse carries field level violations back to the form.
type ValidationErrorResponse struct {
	Message string            `json:"message"`
	Errors  validation.Errors `json:"errors"`
}

func writeValidationError(w http.ResponseWriter, errs validation.Errors) {
	writeJSON(w, http.StatusUnprocessableEntity, ValidationErrorResponse{
		Message: "The given data was invalid.",
		Errors:  errs,
	})
}

// writeError maps an error from validation or storage onto a response.
// Anything unexpected is logged and reported as a 500.
func writeError(w http.ResponseWriter, log *zap.Logger, err error, what string) {
	var verrs validation.Errors
	switch {
	case errors.As(err, &verrs):
		writeValidationError(w, verrs)
	case errors.Is(err, gorm.ErrRecordNotFound):
		WriteAPIError(w, http.StatusNotFound, "not_found", what+" not found")
	case errors.Is(err, gorm.ErrDuplicatedKey):
		WriteAPIError(w, http.StatusConflict, "conflict", what+" conflicts with an existing record")
	default:
		log.Error("request failed", zap.String("resource", what), zap.Error(err))
		WriteAPIError(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
	}
}
