package entities

import (
	"errors"
	"fmt"
)

// Причины отклонения входных данных подписчика.
var (
	ErrNameEmpty             = errors.New("name is empty")
	ErrNameTooLong           = errors.New("name is too long")
	ErrNameIllegalCharacters = errors.New("name contains illegal characters")
	ErrInvalidEmail          = errors.New("email is not valid")
)

// Поля формы подписки.
const (
	FieldName  = "name"
	FieldEmail = "email"
)

// maxDisplayValue ограничивает длину значения, попадающего в текст ошибки.
const maxDisplayValue = 64

// ValidationError описывает отклонение одного поля.
type ValidationError struct {
	Field  string
	Value  string
	Reason error
}

func newValidationError(field, value string, reason error) *ValidationError {
	return &ValidationError{Field: field, Value: value, Reason: reason}
}

func (e *ValidationError) Error() string {
	if len(e.Value) > maxDisplayValue {
		return fmt.Sprintf("invalid %s: %v", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid %s %q: %v", e.Field, e.Value, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return e.Reason
}

// IsValidationError сообщает, является ли err отклонением входных данных.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
