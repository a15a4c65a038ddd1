package handlers

import (
	"EmployeeManager/internal/service"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"
)

// ErrorResponse — тело ответа при ошибке.
type ErrorResponse struct {
	Error   string   `json:"error"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, kind, message string, details ...string) {
	writeJSON(w, status, ErrorResponse{Error: kind, Message: message, Details: details})
}

func badRequest(w http.ResponseWriter, message string) {
	writeError(w, http.StatusBadRequest, "validation_error", message)
}

// writeServiceError переводит ошибку сервиса в HTTP-ответ.
// Неожиданные ошибки логируются, клиенту уходит только "internal error".
func writeServiceError(w http.ResponseWriter, logger *zap.SugaredLogger, op string, err error) {
	var ve *service.ValidationError
	switch {
	case errors.Is(err, service.ErrEmployeeExists):
		writeError(w, http.StatusBadRequest, "conflict", err.Error())
	case errors.Is(err, service.ErrEmployeeNotFound), errors.Is(err, service.ErrFileNotFound):
		writeError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, service.ErrUserDisabled):
		w.Header().Set("WWW-Authenticate", "Bearer")
		writeError(w, http.StatusUnauthorized, "unauthorized", service.ErrInvalidCredentials.Error())
	case errors.As(err, &ve):
		var details []string
		if len(ve.Messages) > 1 {
			details = ve.Messages
		}
		writeError(w, http.StatusBadRequest, "validation_error", err.Error(), details...)
	default:
		logger.Errorw(op+": service error", "error", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
	}
}
