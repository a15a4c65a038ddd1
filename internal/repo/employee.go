package repo

import (
	"EmployeeManager/internal/model"
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EmployeeFilter — необязательные условия выборки. Пустые поля не участвуют.
type EmployeeFilter struct {
	Department string
	Status     string
	MinSalary  *int
	MaxSalary  *int
	MinAge     *int
	MaxAge     *int
	// Search ищет подстроку без учёта регистра в имени, employee_id и отделе.
	Search string
}

// EmployeeRepository — доступ к коллекции сотрудников.
type EmployeeRepository interface {
	Create(ctx context.Context, e *model.Employee) error
	GetByEmployeeID(ctx context.Context, employeeID string) (*model.Employee, error)
	Exists(ctx context.Context, employeeID string) (bool, error)

	// List возвращает записи по created_at DESC. limit <= 0 — без ограничения.
	List(ctx context.Context, f EmployeeFilter, offset, limit int) ([]model.Employee, error)

	// Update применяет updates и возвращает число найденных записей.
	Update(ctx context.Context, employeeID string, updates map[string]any) (int64, error)
	// Delete возвращает число удалённых записей.
	Delete(ctx context.Context, employeeID string) (int64, error)
}

type employeeRepo struct {
	db *gorm.DB
}

// NewEmployeeRepository создаёт реализацию репозитория сотрудников.
func NewEmployeeRepository(db *gorm.DB) EmployeeRepository {
	return &employeeRepo{db: db}
}

func (r *employeeRepo) Create(ctx context.Context, e *model.Employee) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *employeeRepo) GetByEmployeeID(ctx context.Context, employeeID string) (*model.Employee, error) {
	var e model.Employee
	if err := r.db.WithContext(ctx).Where("employee_id = ?", employeeID).Take(&e).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *employeeRepo) Exists(ctx context.Context, employeeID string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Employee{}).Where("employee_id = ?", employeeID).Count(&n).Error
	return n > 0, err
}

func (r *employeeRepo) List(ctx context.Context, f EmployeeFilter, offset, limit int) ([]model.Employee, error) {
	tx := applyFilter(r.db.WithContext(ctx).Model(&model.Employee{}), f).
		Order("created_at DESC").Order("employee_id ASC")
	if offset > 0 {
		tx = tx.Offset(offset)
	}
	if limit > 0 {
		tx = tx.Limit(limit)
	}
	var out []model.Employee
	if err := tx.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *employeeRepo) Update(ctx context.Context, employeeID string, updates map[string]any) (int64, error) {
	tx := r.db.WithContext(ctx).Model(&model.Employee{}).Where("employee_id = ?", employeeID).Updates(updates)
	return tx.RowsAffected, tx.Error
}

func (r *employeeRepo) Delete(ctx context.Context, employeeID string) (int64, error) {
	tx := r.db.WithContext(ctx).Where("employee_id = ?", employeeID).Delete(&model.Employee{})
	return tx.RowsAffected, tx.Error
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func applyFilter(tx *gorm.DB, f EmployeeFilter) *gorm.DB {
	if f.Department != "" {
		tx = tx.Where("department = ?", f.Department)
	}
	if f.Status != "" {
		tx = tx.Where("status = ?", f.Status)
	}
	if f.MinSalary != nil {
		tx = tx.Where("salary >= ?", *f.MinSalary)
	}
	if f.MaxSalary != nil {
		tx = tx.Where("salary <= ?", *f.MaxSalary)
	}
	if f.MinAge != nil {
		tx = tx.Where("age >= ?", *f.MinAge)
	}
	if f.MaxAge != nil {
		tx = tx.Where("age <= ?", *f.MaxAge)
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		p := "%" + likeEscaper.Replace(strings.ToLower(s)) + "%"
		tx = tx.Where(
			`LOWER(name) LIKE ? ESCAPE '\' OR LOWER(employee_id) LIKE ? ESCAPE '\' OR LOWER(department) LIKE ? ESCAPE '\'`,
			p, p, p,
		)
	}
	return tx
}
