package userdict

import (
	"errors"
	"fmt"
	"strings"

	"yomi-engine/internal/store"
)

// Сигнальные ошибки словаря
var (
	ErrValidation   = errors.New("validation error")
	ErrWordNotFound = store.ErrWordNotFound
)

// FieldError ошибка проверки конкретного поля
type FieldError struct {
	Field   string `json:"field"`
	Value   string `json:"value"`
	Message string `json:"message"`
}

// ValidationError содержит все ошибки проверки слова
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors (%s)", len(e.Errors), strings.Join(e.Fields(), ", "))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// Fields возвращает имена полей с ошибками
func (e *ValidationError) Fields() []string {
	fields := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		fields[i] = fe.Field
	}
	return fields
}

// fieldErrors накапливает ошибки полей
type fieldErrors []FieldError

func (f *fieldErrors) add(field, value, message string) {
	*f = append(*f, FieldError{Field: field, Value: value, Message: message})
}

// prefixed возвращает ошибку с полями, привязанными к слову id
func (e *ValidationError) prefixed(prefix string) *ValidationError {
	out := &ValidationError{Errors: make([]FieldError, len(e.Errors))}
	for i, fe := range e.Errors {
		fe.Field = prefix + "." + fe.Field
		out.Errors[i] = fe
	}
	return out
}

func (f fieldErrors) err() error {
	if len(f) == 0 {
		return nil
	}
	return &ValidationError{Errors: f}
}
