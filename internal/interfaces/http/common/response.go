package common

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	admindomain "github.com/sngm3741/ugym-konect/api/internal/admin/domain"
	publicdomain "github.com/sngm3741/ugym-konect/api/internal/public/domain"
)

// WriteJSON serializes payload to JSON with status and logs on failure.
func WriteJSON(logger *log.Logger, w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil && logger != nil {
		logger.Printf("JSON エンコードに失敗: %v", err)
	}
}

// WriteError answers {"error": message}.
func WriteError(logger *log.Logger, w http.ResponseWriter, status int, message string) {
	WriteJSON(logger, w, status, map[string]string{"error": message})
}

// StatusFor maps domain sentinel errors onto HTTP status codes.
func StatusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, publicdomain.ErrInvalidArgument), errors.Is(err, admindomain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, publicdomain.ErrNotFound), errors.Is(err, admindomain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, publicdomain.ErrEmptyCart), errors.Is(err, admindomain.ErrDuplicate):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// WriteDomainError answers with the status StatusFor picks.
// Internal errors are logged and replaced by fallback so driver messages never leak.
func WriteDomainError(logger *log.Logger, w http.ResponseWriter, err error, fallback string) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		if logger != nil {
			logger.Printf("%s: %v", fallback, err)
		}
		WriteError(logger, w, status, fallback)
		return
	}
	WriteError(logger, w, status, err.Error())
}
