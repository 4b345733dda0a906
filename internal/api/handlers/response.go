package handlers

import (
	"encoding/json"
	"net/http"

	apperrors "github.com/sevacare/caregiver-match/pkg/errors"
)

func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{
		"error": message,
	})
}

// respondWithAppError maps the application error taxonomy onto HTTP
// status codes. Internal detail never leaks past a 5xx boundary.
func respondWithAppError(w http.ResponseWriter, err error) {
	if appErr, ok := err.(*apperrors.AppError); ok {
		switch appErr.Type {
		case apperrors.ErrorTypeValidation:
			respondWithError(w, http.StatusBadRequest, appErr.Message)
			return
		case apperrors.ErrorTypeNotFound:
			respondWithError(w, http.StatusNotFound, appErr.Message)
			return
		case apperrors.ErrorTypeUnavailable:
			respondWithError(w, http.StatusInternalServerError, "service temporarily unavailable")
			return
		}
	}
	respondWithError(w, http.StatusInternalServerError, "internal server error")
}
