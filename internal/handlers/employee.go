package handlers

import (
	"EmployeeManager/internal/config"
	"EmployeeManager/internal/service"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// EmployeeHandler — CRUD сотрудников.
type EmployeeHandler struct {
	Service *service.EmployeeService
	Logger  *zap.SugaredLogger
	Config  *config.Config
}

func NewEmployeeHandler(s *service.EmployeeService, logger *zap.SugaredLogger, cfg *config.Config) *EmployeeHandler {
	return &EmployeeHandler{Service: s, Logger: logger, Config: cfg}
}

// Create создаёт сотрудника: 201 с записью.
func (h *EmployeeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in service.EmployeeInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		h.Logger.Warnw("Create: invalid request body", "error", err)
		badRequest(w, "invalid request body")
		return
	}

	e, err := h.Service.Create(r.Context(), in)
	if err != nil {
		writeServiceError(w, h.Logger, "Create", err)
		return
	}
	writeJSON(w, http.StatusCreated, e)
}

// List отдаёт страницу сотрудников: ?skip=&limit=&department=&status=
func (h *EmployeeHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	skip, err := intParam(q.Get("skip"), 0)
	if err != nil {
		badRequest(w, "skip must be an integer")
		return
	}
	limit, err := intParam(q.Get("limit"), service.DefaultListLimit)
	if err != nil {
		badRequest(w, "limit must be an integer")
		return
	}

	list, err := h.Service.List(r.Context(), service.ListParams{
		Skip:       skip,
		Limit:      limit,
		Department: q.Get("department"),
		Status:     q.Get("status"),
	})
	if err != nil {
		writeServiceError(w, h.Logger, "List", err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *EmployeeHandler) Get(w http.ResponseWriter, r *http.Request) {
	e, err := h.Service.Get(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		writeServiceError(w, h.Logger, "Get", err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

// Update применяет частичное обновление; null и отсутствующие поля не меняются.
func (h *EmployeeHandler) Update(w http.ResponseWriter, r *http.Request) {
	var p service.EmployeePatch
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		h.Logger.Warnw("Update: invalid request body", "error", err)
		badRequest(w, "invalid request body")
		return
	}

	e, err := h.Service.Update(r.Context(), chi.URLParam(r, "employeeID"), p)
	if err != nil {
		writeServiceError(w, h.Logger, "Update", err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (h *EmployeeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := service.NormalizeEmployeeID(chi.URLParam(r, "employeeID"))
	if err := h.Service.Delete(r.Context(), id); err != nil {
		writeServiceError(w, h.Logger, "Delete", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Employee %s deleted successfully", id),
	})
}

func intParam(v string, def int) (int, error) {
	if v == "" {
		return def, nil
	}
	return strconv.Atoi(v)
}

func optionalIntParam(v string) (*int, error) {
	if v == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil, err
	}
	return &n, nil
}
