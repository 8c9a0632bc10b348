package models

import (
	"github.com/pkg/errors"
)

// ErrorKind - класс ошибки бизнес-логики, по нему контроллер
// выбирает HTTP статус ответа.
type ErrorKind string

const (
	ErrKindNotFound   ErrorKind = "not_found"
	ErrKindForbidden  ErrorKind = "forbidden"
	ErrKindConflict   ErrorKind = "conflict"
	ErrKindValidation ErrorKind = "validation"
)

type AppError struct {
	Kind    ErrorKind
	Message string
}

func (e *AppError) Error() string {
	return e.Message
}

func NotFoundError(message string) error {
	return &AppError{Kind: ErrKindNotFound, Message: message}
}

func ForbiddenError(message string) error {
	return &AppError{Kind: ErrKindForbidden, Message: message}
}

func ConflictError(message string) error {
	return &AppError{Kind: ErrKindConflict, Message: message}
}

func ValidationError(message string) error {
	return &AppError{Kind: ErrKindValidation, Message: message}
}

// GetErrorKind возвращает класс ошибки, если она (или её причина)
// является AppError.
func GetErrorKind(err error) (ErrorKind, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind, true
	}
	return "", false
}
