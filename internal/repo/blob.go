package repo

import (
	"EmployeeManager/internal/model"
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BlobRepository минимальный контракт доступа к Blob.
type BlobRepository interface {
	// Put сохраняет содержимое; пустой ID заполняется новым UUID.
	Put(ctx context.Context, b *model.Blob) error
	Get(ctx context.Context, id string) (*model.Blob, error)
	// Delete удаляет содержимое; отсутствие записи ошибкой не считается.
	Delete(ctx context.Context, id string) error
}

type blobRepo struct {
	db *gorm.DB
}

// NewBlobRepository создаёт реализацию репозитория для Blob.
func NewBlobRepository(db *gorm.DB) BlobRepository {
	return &blobRepo{db: db}
}

func (r *blobRepo) Put(ctx context.Context, b *model.Blob) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	b.Size = int64(len(b.Data))
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *blobRepo) Get(ctx context.Context, id string) (*model.Blob, error) {
	var b model.Blob
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&b).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *blobRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Blob{}).Error
}
