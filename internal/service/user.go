package service

import (
	"EmployeeManager/internal/model"
	"EmployeeManager/internal/repo"
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserService — вход по логину и паролю.
type UserService struct {
	repo repo.UserRepository
}

func NewUserService(r repo.UserRepository) *UserService {
	return &UserService{repo: r}
}

// Login проверяет пароль. Неизвестный логин и неверный пароль неразличимы для клиента.
func (s *UserService) Login(ctx context.Context, login, password string) (*model.User, error) {
	u, err := s.repo.GetUserByLogin(ctx, strings.TrimSpace(login))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if u.Disabled {
		return nil, ErrUserDisabled
	}
	return u, nil
}

// GetActive возвращает включённого пользователя по логину из токена.
func (s *UserService) GetActive(ctx context.Context, login string) (*model.User, error) {
	u, err := s.repo.GetUserByLogin(ctx, login)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if u.Disabled {
		return nil, ErrUserDisabled
	}
	return u, nil
}

// EnsureUser создаёт пользователя, если его ещё нет. Существующий пароль не меняется.
func (s *UserService) EnsureUser(ctx context.Context, login, password, fullName, email string) (bool, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return false, newValidationError("login and password are required")
	}

	_, err := s.repo.GetUserByLogin(ctx, login)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, fmt.Errorf("get user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return false, fmt.Errorf("hash password: %w", err)
	}
	_, err = s.repo.CreateUser(ctx, &model.User{
		Login:    login,
		FullName: fullName,
		Email:    email,
		Password: string(hash),
	})
	if repo.IsDuplicateKey(err) {
		// создан параллельно другим процессом
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("create user: %w", err)
	}
	return true, nil
}
