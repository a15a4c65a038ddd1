package service

import (
	"EmployeeManager/internal/model"
	"EmployeeManager/internal/repo"
	"context"
	"errors"
	"fmt"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var allowedMimeTypes = map[string]bool{
	"application/pdf": true,
	"image/jpeg":      true,
	"image/png":       true,
	"image/gif":       true,
	"text/plain":      true,

	"application/msword": true,

	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
}

var previewableMimeTypes = map[string]bool{
	"application/pdf": true,
	"image/jpeg":      true,
	"image/png":       true,
	"image/gif":       true,
}

// UploadInput — загружаемый файл как он пришёл от клиента.
type UploadInput struct {
	EmployeeID string
	FileName   string
	MimeType   string
	Data       []byte
}

// FileContent — метаданные вместе с содержимым.
type FileContent struct {
	Attachment model.Attachment
	Data       []byte
}

// FileService — вложения сотрудников: метаданные в attachments, байты в blobs.
type FileService struct {
	employees   repo.EmployeeRepository
	attachments repo.AttachmentRepository
	blobs       repo.BlobRepository
	maxSize     int64
	logger      *zap.SugaredLogger
	now         func() time.Time
}

func NewFileService(e repo.EmployeeRepository, a repo.AttachmentRepository, b repo.BlobRepository, maxSizeMB int, logger *zap.SugaredLogger) *FileService {
	return &FileService{
		employees:   e,
		attachments: a,
		blobs:       b,
		maxSize:     int64(maxSizeMB) << 20,
		logger:      logger,
		now:         utcNow,
	}
}

// MaxSize — лимит размера одного файла в байтах.
func (s *FileService) MaxSize() int64 {
	return s.maxSize
}

// Upload сохраняет файл сотрудника: сначала содержимое, затем метаданные.
func (s *FileService) Upload(ctx context.Context, in UploadInput) (*model.Attachment, error) {
	empID := NormalizeEmployeeID(in.EmployeeID)
	exists, err := s.employees.Exists(ctx, empID)
	if err != nil {
		return nil, fmt.Errorf("check employee: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrEmployeeNotFound, empID)
	}

	if len(in.Data) == 0 {
		return nil, ErrEmptyFile
	}
	if int64(len(in.Data)) > s.maxSize {
		return nil, fmt.Errorf("%w: limit is %d MB", ErrFileTooLarge, s.maxSize>>20)
	}
	mt := resolveMimeType(in.MimeType, in.Data)
	if !allowedMimeTypes[mt] {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedMediaType, mt)
	}

	original := filepath.Base(strings.TrimSpace(in.FileName))
	if original == "." || original == string(filepath.Separator) {
		original = "file"
	}

	blob := &model.Blob{Data: in.Data}
	if err := s.blobs.Put(ctx, blob); err != nil {
		return nil, fmt.Errorf("store file content: %w", err)
	}

	a := &model.Attachment{
		ID:           uuid.NewString(),
		EmployeeID:   empID,
		FileName:     fmt.Sprintf("%s_%s%s", empID, uuid.NewString(), strings.ToLower(filepath.Ext(original))),
		OriginalName: original,
		Size:         int64(len(in.Data)),
		MimeType:     mt,
		BlobID:       blob.ID,
		UploadedAt:   s.now(),
	}
	if err := s.attachments.Create(ctx, a); err != nil {
		// без метаданных содержимое недостижимо
		if derr := s.blobs.Delete(ctx, blob.ID); derr != nil {
			s.logger.Warnw("orphan blob left after failed upload", "blob_id", blob.ID, "error", derr)
		}
		return nil, fmt.Errorf("store file metadata: %w", err)
	}

	s.logger.Infow("file uploaded", "employee_id", empID, "file_id", a.ID, "size", a.Size, "mime", mt)
	return a, nil
}

// List возвращает метаданные файлов сотрудника.
func (s *FileService) List(ctx context.Context, employeeID string) ([]model.Attachment, error) {
	list, err := s.attachments.ListByEmployee(ctx, NormalizeEmployeeID(employeeID))
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}
	return list, nil
}

func (s *FileService) Download(ctx context.Context, fileID string) (*FileContent, error) {
	return s.load(ctx, fileID, false)
}

// Preview как Download, но только для типов, которые браузер показывает сам.
func (s *FileService) Preview(ctx context.Context, fileID string) (*FileContent, error) {
	return s.load(ctx, fileID, true)
}

// Delete удаляет содержимое и метаданные файла.
func (s *FileService) Delete(ctx context.Context, fileID string) error {
	a, err := s.attachment(ctx, fileID)
	if err != nil {
		return err
	}
	if err := s.blobs.Delete(ctx, a.BlobID); err != nil {
		return fmt.Errorf("delete file content: %w", err)
	}
	n, err := s.attachments.Delete(ctx, a.ID)
	if err != nil {
		return fmt.Errorf("delete file metadata: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrFileNotFound, fileID)
	}
	s.logger.Infow("file deleted", "employee_id", a.EmployeeID, "file_id", a.ID)
	return nil
}

func (s *FileService) load(ctx context.Context, fileID string, preview bool) (*FileContent, error) {
	a, err := s.attachment(ctx, fileID)
	if err != nil {
		return nil, err
	}
	if preview && !previewableMimeTypes[a.MimeType] {
		return nil, fmt.Errorf("%w: %s", ErrNotPreviewable, a.MimeType)
	}
	b, err := s.blobs.Get(ctx, a.BlobID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: content of %s is missing", ErrFileNotFound, a.ID)
	}
	if err != nil {
		return nil, fmt.Errorf("get file content: %w", err)
	}
	return &FileContent{Attachment: *a, Data: b.Data}, nil
}

func (s *FileService) attachment(ctx context.Context, fileID string) (*model.Attachment, error) {
	id := strings.TrimSpace(fileID)
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, fileID)
	}
	a, err := s.attachments.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("get file: %w", err)
	}
	return a, nil
}

// resolveMimeType берёт тип из заголовка части, а при его отсутствии определяет по содержимому.
func resolveMimeType(header string, data []byte) string {
	mt := baseMediaType(header)
	if mt == "" || mt == "application/octet-stream" {
		mt = baseMediaType(mimetype.Detect(data).String())
	}
	return mt
}

func baseMediaType(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return ""
	}
	mt, _, err := mime.ParseMediaType(v)
	if err != nil {
		return strings.ToLower(v)
	}
	return mt
}
