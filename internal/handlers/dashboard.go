package handlers

import (
	"EmployeeManager/internal/service"
	"net/http"

	"go.uber.org/zap"
)

type DashboardHandler struct {
	Service *service.DashboardService
	Logger  *zap.SugaredLogger
}

func NewDashboardHandler(s *service.DashboardService, logger *zap.SugaredLogger) *DashboardHandler {
	return &DashboardHandler{Service: s, Logger: logger}
}

// Stats отдаёт сводную статистику, посчитанную на момент запроса.
func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	st, err := h.Service.Stats(r.Context())
	if err != nil {
		writeServiceError(w, h.Logger, "Stats", err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}
