package repo

import (
	"EmployeeManager/internal/model"
	"context"
	"time"

	"gorm.io/gorm"
)

// GroupCount — строка группировки "значение → количество".
type GroupCount struct {
	Key   string `gorm:"column:grp"`
	Count int64  `gorm:"column:cnt"`
}

// SalaryAggregate — агрегаты по заполненным зарплатам.
type SalaryAggregate struct {
	Count int64   `gorm:"column:cnt"`
	Avg   float64 `gorm:"column:avg_salary"`
	Min   int64   `gorm:"column:min_salary"`
	Max   int64   `gorm:"column:max_salary"`
	Total int64   `gorm:"column:total_payroll"`
}

// AgeSalary — проекция для возрастных корзин.
type AgeSalary struct {
	Age    int
	Salary *int
}

// DashboardRepository — read-only запросы для сводной статистики.
type DashboardRepository interface {
	Count(ctx context.Context) (int64, error)
	CountCreatedSince(ctx context.Context, since time.Time) (int64, error)
	CountByDepartment(ctx context.Context) ([]GroupCount, error)
	CountByStatus(ctx context.Context) ([]GroupCount, error)
	SalaryStats(ctx context.Context) (SalaryAggregate, error)
	AgeSalaries(ctx context.Context) ([]AgeSalary, error)
	CreatedSince(ctx context.Context, since time.Time) ([]time.Time, error)
}

type dashboardRepo struct {
	db *gorm.DB
}

// NewDashboardRepository создаёт репозиторий агрегатов поверх таблицы сотрудников.
func NewDashboardRepository(db *gorm.DB) DashboardRepository {
	return &dashboardRepo{db: db}
}

func (r *dashboardRepo) employees(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&model.Employee{})
}

func (r *dashboardRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.employees(ctx).Count(&n).Error
	return n, err
}

func (r *dashboardRepo) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	var n int64
	err := r.employees(ctx).Where("created_at >= ?", since).Count(&n).Error
	return n, err
}

func (r *dashboardRepo) CountByDepartment(ctx context.Context) ([]GroupCount, error) {
	var rows []GroupCount
	err := r.employees(ctx).
		Select("department AS grp, COUNT(*) AS cnt").
		Group("department").
		Order("cnt DESC, grp ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *dashboardRepo) CountByStatus(ctx context.Context) ([]GroupCount, error) {
	var rows []GroupCount
	err := r.employees(ctx).
		Select("COALESCE(status, '') AS grp, COUNT(*) AS cnt").
		Group("COALESCE(status, '')").
		Order("grp ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *dashboardRepo) SalaryStats(ctx context.Context) (SalaryAggregate, error) {
	var agg SalaryAggregate
	err := r.employees(ctx).
		Select(`COUNT(salary) AS cnt,
			COALESCE(AVG(salary), 0) AS avg_salary,
			COALESCE(MIN(salary), 0) AS min_salary,
			COALESCE(MAX(salary), 0) AS max_salary,
			COALESCE(SUM(salary), 0) AS total_payroll`).
		Where("salary IS NOT NULL").
		Scan(&agg).Error
	return agg, err
}

func (r *dashboardRepo) AgeSalaries(ctx context.Context) ([]AgeSalary, error) {
	var rows []AgeSalary
	err := r.employees(ctx).Select("age", "salary").Scan(&rows).Error
	return rows, err
}

func (r *dashboardRepo) CreatedSince(ctx context.Context, since time.Time) ([]time.Time, error) {
	var out []time.Time
	err := r.employees(ctx).Where("created_at >= ?", since).Order("created_at ASC").Pluck("created_at", &out).Error
	return out, err
}
