package service

import (
	"errors"
	"strings"
)

var (
	ErrEmployeeNotFound   = errors.New("employee not found")
	ErrEmployeeExists     = errors.New("employee already exists")
	ErrFileNotFound       = errors.New("file not found")
	ErrInvalidCredentials = errors.New("incorrect username or password")
	ErrUserDisabled       = errors.New("user is disabled")
)

// ValidationError — входные данные нарушают правила; хранилище не затрагивалось.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, "; ")
}

func newValidationError(msgs ...string) *ValidationError {
	return &ValidationError{Messages: msgs}
}

// Ошибки валидации с фиксированным текстом; сравниваются через errors.Is.
var (
	ErrEmptyUpdate          = newValidationError("no valid fields provided for update")
	ErrFileTooLarge         = newValidationError("file is too large")
	ErrEmptyFile            = newValidationError("file is empty")
	ErrUnsupportedMediaType = newValidationError("file type is not allowed")
	ErrNotPreviewable       = newValidationError("file type cannot be previewed")
)

// IsValidation сообщает, что err — ошибка валидации.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
