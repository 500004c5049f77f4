package entities

import (
	"strings"
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// MaxNameLength - максимальная длина имени в графемных кластерах.
const MaxNameLength = 256

// ForbiddenNameCharacters перечисляет символы, недопустимые в имени.
const ForbiddenNameCharacters = `/()"<>\{}`

// SubscriberName - проверенное имя подписчика.
type SubscriberName struct {
	value string
}

// ParseSubscriberName проверяет имя. Значение сохраняется как есть, без обрезки пробелов.
func ParseSubscriberName(raw string) (SubscriberName, error) {
	if strings.TrimSpace(raw) == "" {
		return SubscriberName{}, newValidationError(FieldName, raw, ErrNameEmpty)
	}

	if !utf8.ValidString(raw) {
		return SubscriberName{}, newValidationError(FieldName, raw, ErrNameIllegalCharacters)
	}

	if uniseg.GraphemeClusterCount(raw) > MaxNameLength {
		return SubscriberName{}, newValidationError(FieldName, raw, ErrNameTooLong)
	}

	if strings.ContainsAny(raw, ForbiddenNameCharacters) {
		return SubscriberName{}, newValidationError(FieldName, raw, ErrNameIllegalCharacters)
	}

	return SubscriberName{value: raw}, nil
}

func (n SubscriberName) String() string {
	return n.value
}

// MarshalText позволяет сериализовать значение как строку.
func (n SubscriberName) MarshalText() ([]byte, error) {
	return []byte(n.value), nil
}
