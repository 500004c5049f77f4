// Package secret хранит чувствительные строки (пароли, ключи) так,
// чтобы они не попадали в журналы и сообщения об ошибках.
package secret

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Redacted - то, как секрет выглядит при любом неявном выводе.
const Redacted = "[REDACTED]"

// Secret - строка, раскрываемая только через Expose.
type Secret struct {
	value string
}

// New оборачивает значение в Secret.
func New(value string) Secret {
	return Secret{value: value}
}

// Expose возвращает исходное значение. Вызывать только в месте использования,
// например при сборке строки подключения.
func (s Secret) Expose() string {
	return s.value
}

// IsZero сообщает, что секрет не задан.
func (s Secret) IsZero() bool {
	return s.value == ""
}

func (s Secret) String() string {
	return Redacted
}

func (s Secret) GoString() string {
	return "secret.Secret{" + Redacted + "}"
}

// Format перекрывает все глаголы fmt, включая %#v и %x.
func (s Secret) Format(f fmt.State, _ rune) {
	_, _ = f.Write([]byte(Redacted))
}

func (s Secret) MarshalText() ([]byte, error) {
	return []byte(Redacted), nil
}

func (s Secret) MarshalJSON() ([]byte, error) {
	return []byte(`"` + Redacted + `"`), nil
}

func (s Secret) MarshalYAML() (any, error) {
	return Redacted, nil
}

// UnmarshalYAML читает секрет из скалярного узла YAML.
func (s *Secret) UnmarshalYAML(node *yaml.Node) error {
	var raw string
	if err := node.Decode(&raw); err != nil {
		return fmt.Errorf("secret must be a string scalar: %w", err)
	}
	s.value = raw
	return nil
}
