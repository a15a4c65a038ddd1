package handlers

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// HealthHandler сообщает о состоянии сервиса без авторизации.
type HealthHandler struct {
	Check  func(ctx context.Context) error
	Logger *zap.SugaredLogger
}

type HealthResponse struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	Database string `json:"database"`
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	db := "connected"
	if err := h.Check(ctx); err != nil {
		h.Logger.Warnw("Health: database unavailable", "error", err)
		db = "disconnected"
	}
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:   "healthy",
		Message:  "Employee Management System API is running",
		Database: db,
	})
}
