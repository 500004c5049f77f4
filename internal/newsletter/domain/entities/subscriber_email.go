package entities

import (
	"github.com/go-playground/validator/v10"
)

var emailValidator = validator.New()

// SubscriberEmail - адрес электронной почты, прошедший проверку формата.
type SubscriberEmail struct {
	value string
}

// ParseSubscriberEmail проверяет адрес по грамматике RFC 5322.
func ParseSubscriberEmail(raw string) (SubscriberEmail, error) {
	if err := emailValidator.Var(raw, "required,email"); err != nil {
		return SubscriberEmail{}, newValidationError(FieldEmail, raw, ErrInvalidEmail)
	}
	return SubscriberEmail{value: raw}, nil
}

func (e SubscriberEmail) String() string {
	return e.value
}

// MarshalText позволяет сериализовать значение как строку.
func (e SubscriberEmail) MarshalText() ([]byte, error) {
	return []byte(e.value), nil
}
