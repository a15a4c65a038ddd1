package service

import (
	"EmployeeManager/internal/model"
	"EmployeeManager/internal/repo"
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

// мок для repo.EmployeeRepository
type mockEmployeeRepo struct{ mock.Mock }

func (m *mockEmployeeRepo) Create(ctx context.Context, e *model.Employee) error {
	return m.Called(ctx, e).Error(0)
}
func (m *mockEmployeeRepo) GetByEmployeeID(ctx context.Context, employeeID string) (*model.Employee, error) {
	args := m.Called(ctx, employeeID)
	if v, ok := args.Get(0).(*model.Employee); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockEmployeeRepo) Exists(ctx context.Context, employeeID string) (bool, error) {
	args := m.Called(ctx, employeeID)
	return args.Bool(0), args.Error(1)
}
func (m *mockEmployeeRepo) List(ctx context.Context, f repo.EmployeeFilter, offset, limit int) ([]model.Employee, error) {
	args := m.Called(ctx, f, offset, limit)
	if v, ok := args.Get(0).([]model.Employee); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockEmployeeRepo) Update(ctx context.Context, employeeID string, updates map[string]any) (int64, error) {
	args := m.Called(ctx, employeeID, updates)
	return args.Get(0).(int64), args.Error(1)
}
func (m *mockEmployeeRepo) Delete(ctx context.Context, employeeID string) (int64, error) {
	args := m.Called(ctx, employeeID)
	return args.Get(0).(int64), args.Error(1)
}

var _ repo.EmployeeRepository = (*mockEmployeeRepo)(nil)

// мок для repo.AttachmentRepository
type mockAttachmentRepo struct{ mock.Mock }

func (m *mockAttachmentRepo) Create(ctx context.Context, a *model.Attachment) error {
	return m.Called(ctx, a).Error(0)
}
func (m *mockAttachmentRepo) ListByEmployee(ctx context.Context, employeeID string) ([]model.Attachment, error) {
	args := m.Called(ctx, employeeID)
	if v, ok := args.Get(0).([]model.Attachment); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockAttachmentRepo) ListByEmployees(ctx context.Context, employeeIDs []string) (map[string][]model.Attachment, error) {
	args := m.Called(ctx, employeeIDs)
	if v, ok := args.Get(0).(map[string][]model.Attachment); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockAttachmentRepo) GetByID(ctx context.Context, id string) (*model.Attachment, error) {
	args := m.Called(ctx, id)
	if v, ok := args.Get(0).(*model.Attachment); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockAttachmentRepo) Delete(ctx context.Context, id string) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

var _ repo.AttachmentRepository = (*mockAttachmentRepo)(nil)

// мок для repo.BlobRepository
type mockBlobRepo struct{ mock.Mock }

func (m *mockBlobRepo) Put(ctx context.Context, b *model.Blob) error {
	return m.Called(ctx, b).Error(0)
}
func (m *mockBlobRepo) Get(ctx context.Context, id string) (*model.Blob, error) {
	args := m.Called(ctx, id)
	if v, ok := args.Get(0).(*model.Blob); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockBlobRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

var _ repo.BlobRepository = (*mockBlobRepo)(nil)

// мок для repo.UserRepository
type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	args := m.Called(ctx, user)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockUserRepo) GetUserByLogin(ctx context.Context, login string) (*model.User, error) {
	args := m.Called(ctx, login)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

var _ repo.UserRepository = (*mockUserRepo)(nil)

// мок для repo.DashboardRepository
type mockDashboardRepo struct{ mock.Mock }

func (m *mockDashboardRepo) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}
func (m *mockDashboardRepo) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	args := m.Called(ctx, since)
	return args.Get(0).(int64), args.Error(1)
}
func (m *mockDashboardRepo) CountByDepartment(ctx context.Context) ([]repo.GroupCount, error) {
	args := m.Called(ctx)
	if v, ok := args.Get(0).([]repo.GroupCount); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockDashboardRepo) CountByStatus(ctx context.Context) ([]repo.GroupCount, error) {
	args := m.Called(ctx)
	if v, ok := args.Get(0).([]repo.GroupCount); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockDashboardRepo) SalaryStats(ctx context.Context) (repo.SalaryAggregate, error) {
	args := m.Called(ctx)
	return args.Get(0).(repo.SalaryAggregate), args.Error(1)
}
func (m *mockDashboardRepo) AgeSalaries(ctx context.Context) ([]repo.AgeSalary, error) {
	args := m.Called(ctx)
	if v, ok := args.Get(0).([]repo.AgeSalary); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockDashboardRepo) CreatedSince(ctx context.Context, since time.Time) ([]time.Time, error) {
	args := m.Called(ctx, since)
	if v, ok := args.Get(0).([]time.Time); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

var _ repo.DashboardRepository = (*mockDashboardRepo)(nil)

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }
