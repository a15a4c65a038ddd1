package handlers

import (
	"EmployeeManager/internal/config"
	"EmployeeManager/internal/service"
	"errors"
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// FileHandler — вложения сотрудников.
type FileHandler struct {
	Service *service.FileService
	Logger  *zap.SugaredLogger
	Config  *config.Config
}

func NewFileHandler(s *service.FileService, logger *zap.SugaredLogger, cfg *config.Config) *FileHandler {
	return &FileHandler{Service: s, Logger: logger, Config: cfg}
}

// Upload принимает multipart/form-data с полем file.
func (h *FileHandler) Upload(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	limit := h.Service.MaxSize()

	// Лимит общего тела запроса: файл плюс служебные части multipart
	r.Body = http.MaxBytesReader(w, r.Body, limit+1<<20)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			h.Logger.Warnw("Upload: request too large", "employee_id", employeeID, "limit", limit)
			writeServiceError(w, h.Logger, "Upload", service.ErrFileTooLarge)
			return
		}
		h.Logger.Warnw("Upload: invalid multipart form", "error", err)
		badRequest(w, "invalid multipart form")
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		h.Logger.Warnw("Upload: missing file", "error", err)
		badRequest(w, "missing file")
		return
	}
	defer file.Close()

	// limit+1 байт: превышение лимита определяет сервис
	data, err := io.ReadAll(io.LimitReader(file, limit+1))
	if err != nil {
		h.Logger.Warnw("Upload: failed to read file", "error", err)
		badRequest(w, "failed to read file")
		return
	}

	a, err := h.Service.Upload(r.Context(), service.UploadInput{
		EmployeeID: employeeID,
		FileName:   header.Filename,
		MimeType:   header.Header.Get("Content-Type"),
		Data:       data,
	})
	if err != nil {
		writeServiceError(w, h.Logger, "Upload", err)
		return
	}
	writeJSON(w, http.StatusCreated, a)
}

func (h *FileHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.List(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		writeServiceError(w, h.Logger, "ListFiles", err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// Download отдаёт файл вложением.
func (h *FileHandler) Download(w http.ResponseWriter, r *http.Request) {
	fc, err := h.Service.Download(r.Context(), chi.URLParam(r, "fileID"))
	if err != nil {
		writeServiceError(w, h.Logger, "Download", err)
		return
	}
	writeFile(w, fc, "attachment")
}

// Preview отдаёт файл для показа в браузере.
func (h *FileHandler) Preview(w http.ResponseWriter, r *http.Request) {
	fc, err := h.Service.Preview(r.Context(), chi.URLParam(r, "fileID"))
	if err != nil {
		writeServiceError(w, h.Logger, "Preview", err)
		return
	}
	writeFile(w, fc, "inline")
}

func (h *FileHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Delete(r.Context(), chi.URLParam(r, "fileID")); err != nil {
		writeServiceError(w, h.Logger, "DeleteFile", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "File deleted successfully"})
}

func writeFile(w http.ResponseWriter, fc *service.FileContent, disposition string) {
	w.Header().Set("Content-Type", fc.Attachment.MimeType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType(disposition, map[string]string{
		"filename": fc.Attachment.OriginalName,
	}))
	w.Header().Set("Content-Length", strconv.Itoa(len(fc.Data)))
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(fc.Data)
}
