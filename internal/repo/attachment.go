package repo

import (
	"EmployeeManager/internal/model"
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AttachmentRepository — метаданные вложений сотрудников.
type AttachmentRepository interface {
	Create(ctx context.Context, a *model.Attachment) error
	ListByEmployee(ctx context.Context, employeeID string) ([]model.Attachment, error)
	// ListByEmployees группирует вложения нескольких сотрудников одним запросом.
	ListByEmployees(ctx context.Context, employeeIDs []string) (map[string][]model.Attachment, error)
	GetByID(ctx context.Context, id string) (*model.Attachment, error)
	// Delete возвращает число удалённых записей.
	Delete(ctx context.Context, id string) (int64, error)
}

type attachmentRepo struct {
	db *gorm.DB
}

func NewAttachmentRepository(db *gorm.DB) AttachmentRepository {
	return &attachmentRepo{db: db}
}

func (r *attachmentRepo) Create(ctx context.Context, a *model.Attachment) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *attachmentRepo) ListByEmployee(ctx context.Context, employeeID string) ([]model.Attachment, error) {
	out := []model.Attachment{}
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("uploaded_at ASC").
		Find(&out).Error
	return out, err
}

func (r *attachmentRepo) ListByEmployees(ctx context.Context, employeeIDs []string) (map[string][]model.Attachment, error) {
	out := make(map[string][]model.Attachment, len(employeeIDs))
	if len(employeeIDs) == 0 {
		return out, nil
	}
	var rows []model.Attachment
	err := r.db.WithContext(ctx).
		Where("employee_id IN ?", employeeIDs).
		Order("uploaded_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, a := range rows {
		out[a.EmployeeID] = append(out[a.EmployeeID], a)
	}
	return out, nil
}

func (r *attachmentRepo) GetByID(ctx context.Context, id string) (*model.Attachment, error) {
	var a model.Attachment
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *attachmentRepo) Delete(ctx context.Context, id string) (int64, error) {
	tx := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Attachment{})
	return tx.RowsAffected, tx.Error
}
