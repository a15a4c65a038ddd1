package handlers

import (
	"EmployeeManager/internal/model"
	"EmployeeManager/internal/repo"
	"EmployeeManager/internal/service"
	"bytes"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler выгружает отфильтрованный список сотрудников файлом.
type ExportHandler struct {
	Service *service.EmployeeService
	Logger  *zap.SugaredLogger
}

func NewExportHandler(s *service.EmployeeService, logger *zap.SugaredLogger) *ExportHandler {
	return &ExportHandler{Service: s, Logger: logger}
}

func (h *ExportHandler) CSV(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, "csv", "text/csv; charset=utf-8", service.WriteCSV)
}

func (h *ExportHandler) XLSX(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, "xlsx", xlsxContentType, service.WriteXLSX)
}

func (h *ExportHandler) export(
	w http.ResponseWriter,
	r *http.Request,
	ext, contentType string,
	write func(io.Writer, []model.Employee) error,
) {
	f, msg := parseExportFilter(r.URL.Query())
	if msg != "" {
		badRequest(w, msg)
		return
	}

	list, err := h.Service.Export(r.Context(), f)
	if err != nil {
		writeServiceError(w, h.Logger, "Export", err)
		return
	}

	// файл собирается целиком до отправки заголовков
	var buf bytes.Buffer
	if err := write(&buf, list); err != nil {
		h.Logger.Errorw("Export: write failed", "format", ext, "error", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	name := service.ExportFileName(time.Now(), ext)
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)

	h.Logger.Infow("employees exported", "format", ext, "rows", len(list))
}

// parseExportFilter возвращает текст ошибки для некорректного числового параметра.
func parseExportFilter(q url.Values) (repo.EmployeeFilter, string) {
	f := repo.EmployeeFilter{
		Department: q.Get("department"),
		Status:     q.Get("status"),
		Search:     q.Get("search"),
	}
	ints := []struct {
		name string
		dst  **int
	}{
		{"min_salary", &f.MinSalary},
		{"max_salary", &f.MaxSalary},
		{"min_age", &f.MinAge},
		{"max_age", &f.MaxAge},
	}
	for _, p := range ints {
		v, err := optionalIntParam(q.Get(p.name))
		if err != nil {
			return f, p.name + " must be an integer"
		}
		*p.dst = v
	}
	return f, ""
}
