package service

import (
	"EmployeeManager/internal/model"
	"EmployeeManager/internal/repo"
	"EmployeeManager/internal/validation"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	DefaultListLimit = 100
	MaxListLimit     = 1000
)

// EmployeeInput — тело запроса на создание сотрудника.
type EmployeeInput struct {
	EmployeeID string   `json:"employee_id" validate:"required,max=20,employee_id"`
	Name       string   `json:"name" validate:"required,min=2,max=100,person_name"`
	Age        int      `json:"age" validate:"gte=18,lte=100"`
	Department string   `json:"department" validate:"not_blank,max=50"`
	Salary     *int     `json:"salary" validate:"omitnil,gte=0,lte=1000000"`
	HireDate   *string  `json:"hire_date" validate:"omitnil,datetime=2006-01-02"`
	Status     string   `json:"status" validate:"omitempty,oneof=active on_leave inactive"`
	Skills     []string `json:"skills" validate:"omitempty,dive,max=50"`
}

func (in *EmployeeInput) normalize() {
	in.EmployeeID = NormalizeEmployeeID(in.EmployeeID)
	in.Name = strings.TrimSpace(in.Name)
	in.Department = strings.TrimSpace(in.Department)
	in.Status = strings.TrimSpace(in.Status)
	in.HireDate = trimOptional(in.HireDate)
	in.Skills = cleanSkills(in.Skills)
}

// EmployeePatch — частичное обновление: nil означает "поле не передано".
type EmployeePatch struct {
	Name       *string   `json:"name" validate:"omitnil,min=2,max=100,person_name"`
	Age        *int      `json:"age" validate:"omitnil,gte=18,lte=100"`
	Department *string   `json:"department" validate:"omitnil,not_blank,max=50"`
	Salary     *int      `json:"salary" validate:"omitnil,gte=0,lte=1000000"`
	HireDate   *string   `json:"hire_date" validate:"omitnil,datetime=2006-01-02"`
	Status     *string   `json:"status" validate:"omitnil,oneof=active on_leave inactive"`
	Skills     *[]string `json:"skills" validate:"omitnil,dive,max=50"`

	// пустая hire_date стирает дату, как и при создании
	clearHireDate bool
}

func (p *EmployeePatch) normalize() {
	if p.Name != nil {
		v := strings.TrimSpace(*p.Name)
		p.Name = &v
	}
	if p.Department != nil {
		v := strings.TrimSpace(*p.Department)
		p.Department = &v
	}
	if p.Status != nil {
		v := strings.TrimSpace(*p.Status)
		p.Status = &v
	}
	if p.HireDate != nil {
		p.HireDate = trimOptional(p.HireDate)
		p.clearHireDate = p.HireDate == nil
	}
	if p.Skills != nil {
		v := cleanSkills(*p.Skills)
		p.Skills = &v
	}
}

// IsEmpty — ни одно поле не передано.
func (p EmployeePatch) IsEmpty() bool {
	return p.Name == nil && p.Age == nil && p.Department == nil && p.Salary == nil &&
		p.HireDate == nil && !p.clearHireDate && p.Status == nil && p.Skills == nil
}

func (p EmployeePatch) updates() map[string]any {
	u := map[string]any{}
	if p.Name != nil {
		u["name"] = *p.Name
	}
	if p.Age != nil {
		u["age"] = *p.Age
	}
	if p.Department != nil {
		u["department"] = *p.Department
	}
	if p.Salary != nil {
		u["salary"] = *p.Salary
	}
	switch {
	case p.HireDate != nil:
		u["hire_date"] = *p.HireDate
	case p.clearHireDate:
		u["hire_date"] = nil
	}
	if p.Status != nil {
		u["status"] = *p.Status
	}
	if p.Skills != nil {
		u["skills"] = model.StringList(*p.Skills)
	}
	return u
}

// ListParams — пагинация и фильтры списка.
type ListParams struct {
	Skip       int
	Limit      int
	Department string
	Status     string
}

// EmployeeView — запись сотрудника вместе с метаданными его файлов.
type EmployeeView struct {
	model.Employee
	Files []model.Attachment `json:"files"`
}

// EmployeeService — бизнес-логика CRUD сотрудников.
type EmployeeService struct {
	repo      repo.EmployeeRepository
	files     repo.AttachmentRepository
	validator *validation.Validator
	logger    *zap.SugaredLogger
	now       func() time.Time
}

func NewEmployeeService(r repo.EmployeeRepository, files repo.AttachmentRepository, v *validation.Validator, logger *zap.SugaredLogger) *EmployeeService {
	return &EmployeeService{repo: r, files: files, validator: v, logger: logger, now: utcNow}
}

// Create валидирует вход и сохраняет нового сотрудника.
func (s *EmployeeService) Create(ctx context.Context, in EmployeeInput) (*EmployeeView, error) {
	in.normalize()
	if msgs := s.validator.Struct(in); len(msgs) > 0 {
		return nil, newValidationError(msgs...)
	}

	exists, err := s.repo.Exists(ctx, in.EmployeeID)
	if err != nil {
		return nil, fmt.Errorf("check employee: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("%w: %s", ErrEmployeeExists, in.EmployeeID)
	}

	status := in.Status
	if status == "" {
		status = model.StatusActive
	}
	now := s.now()
	e := &model.Employee{
		EmployeeID: in.EmployeeID,
		Name:       in.Name,
		Age:        in.Age,
		Department: in.Department,
		Salary:     in.Salary,
		HireDate:   in.HireDate,
		Status:     status,
		Skills:     model.StringList(in.Skills),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.repo.Create(ctx, e); err != nil {
		// гонка двух одновременных созданий: проверка прошла у обоих
		if repo.IsDuplicateKey(err) {
			return nil, fmt.Errorf("%w: %s", ErrEmployeeExists, in.EmployeeID)
		}
		return nil, fmt.Errorf("create employee: %w", err)
	}

	s.logger.Infow("employee created", "employee_id", e.EmployeeID)
	return &EmployeeView{Employee: *e, Files: []model.Attachment{}}, nil
}

// List возвращает страницу сотрудников, новые первыми.
func (s *EmployeeService) List(ctx context.Context, p ListParams) ([]EmployeeView, error) {
	if p.Skip < 0 {
		return nil, newValidationError("skip must be 0 or greater")
	}
	if p.Limit < 1 || p.Limit > MaxListLimit {
		return nil, newValidationError(fmt.Sprintf("limit must be between 1 and %d", MaxListLimit))
	}

	f := repo.EmployeeFilter{
		Department: strings.TrimSpace(p.Department),
		Status:     strings.TrimSpace(p.Status),
	}
	list, err := s.repo.List(ctx, f, p.Skip, p.Limit)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}

	ids := make([]string, 0, len(list))
	for _, e := range list {
		ids = append(ids, e.EmployeeID)
	}
	files, err := s.files.ListByEmployees(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}

	out := make([]EmployeeView, 0, len(list))
	for _, e := range list {
		fs := files[e.EmployeeID]
		if fs == nil {
			fs = []model.Attachment{}
		}
		out = append(out, EmployeeView{Employee: e, Files: fs})
	}
	return out, nil
}

// Export возвращает все записи, подходящие под фильтр, без пагинации.
func (s *EmployeeService) Export(ctx context.Context, f repo.EmployeeFilter) ([]model.Employee, error) {
	f.Department = strings.TrimSpace(f.Department)
	f.Status = strings.TrimSpace(f.Status)
	list, err := s.repo.List(ctx, f, 0, 0)
	if err != nil {
		return nil, fmt.Errorf("export employees: %w", err)
	}
	return list, nil
}

func (s *EmployeeService) Get(ctx context.Context, employeeID string) (*EmployeeView, error) {
	id := NormalizeEmployeeID(employeeID)
	e, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	files, err := s.files.ListByEmployee(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}
	return &EmployeeView{Employee: *e, Files: files}, nil
}

// Exists — есть ли сотрудник с таким идентификатором.
func (s *EmployeeService) Exists(ctx context.Context, employeeID string) (bool, error) {
	return s.repo.Exists(ctx, NormalizeEmployeeID(employeeID))
}

// Update применяет только переданные поля и обновляет updated_at.
func (s *EmployeeService) Update(ctx context.Context, employeeID string, p EmployeePatch) (*EmployeeView, error) {
	id := NormalizeEmployeeID(employeeID)
	p.normalize()
	if p.IsEmpty() {
		return nil, ErrEmptyUpdate
	}
	if msgs := s.validator.Struct(p); len(msgs) > 0 {
		return nil, newValidationError(msgs...)
	}

	current, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := p.updates()
	now := s.now()
	if now.Before(current.CreatedAt) {
		now = current.CreatedAt
	}
	updates["updated_at"] = now

	n, err := s.repo.Update(ctx, id, updates)
	if err != nil {
		return nil, fmt.Errorf("update employee: %w", err)
	}
	if n == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmployeeNotFound, id)
	}

	s.logger.Infow("employee updated", "employee_id", id, "fields", len(updates)-1)
	return s.Get(ctx, id)
}

// Delete удаляет сотрудника. Вложения не удаляются.
func (s *EmployeeService) Delete(ctx context.Context, employeeID string) error {
	id := NormalizeEmployeeID(employeeID)
	n, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete employee: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrEmployeeNotFound, id)
	}
	s.logger.Infow("employee deleted", "employee_id", id)
	return nil
}

func (s *EmployeeService) get(ctx context.Context, id string) (*model.Employee, error) {
	e, err := s.repo.GetByEmployeeID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrEmployeeNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("get employee: %w", err)
	}
	return e, nil
}

// NormalizeEmployeeID приводит идентификатор к каноническому виду: без пробелов, в верхнем регистре.
func NormalizeEmployeeID(id string) string {
	return strings.ToUpper(strings.TrimSpace(id))
}

func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func cleanSkills(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func utcNow() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
