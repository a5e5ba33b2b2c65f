package service

import (
	"errors"
	"fmt"
)

// Поля формы, которые называет ValidationError
const (
	FieldDate        = "date"
	FieldStudentName = "student_name"
	FieldTopic       = "topic"
	FieldDuration    = "duration"
	FieldFee         = "fee"
)

var (
	// ErrNotAuthenticated операция без установленной личности владельца
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrNoPendingDelete подтверждение удаления без запроса на удаление
	ErrNoPendingDelete = errors.New("no delete pending confirmation")

	// ErrSessionNotFound запись отсутствует в текущем списке
	ErrSessionNotFound = errors.New("session not found")
)

// ValidationError ввод не прошёл проверку; до хранилища такой ввод не доходит
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// PersistenceError ошибка хранилища при записи или подписке
type PersistenceError struct {
	Op    string
	Cause error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Cause)
}

func (e *PersistenceError) Unwrap() error {
	return e.Cause
}

// IsValidation возвращает поле, если err содержит ValidationError
func IsValidation(err error) (string, bool) {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return vErr.Field, true
	}
	return "", false
}

// IsPersistence true если err содержит PersistenceError
func IsPersistence(err error) bool {
	var pErr *PersistenceError
	return errors.As(err, &pErr)
}

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

func persistence(op string, err error) error {
	return &PersistenceError{Op: op, Cause: err}
}
