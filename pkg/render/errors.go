package render

import (
	"strings"

	"github.com/goliatone/go-joinform/pkg/validation"
)

// ErrorMapping splits feedback into field-level messages keyed by wire key and
// form-level messages that apply to the whole form.
type ErrorMapping struct {
	Fields map[string][]string
	Form   []string
}

// Empty reports whether the mapping carries no messages.
func (m ErrorMapping) Empty() bool {
	return len(m.Fields) == 0 && len(m.Form) == 0
}

// FieldMessages returns the messages recorded for name.
func (m ErrorMapping) FieldMessages(name string) []string {
	if m.Fields == nil {
		return nil
	}
	return m.Fields[name]
}

// FromValidation maps a validation result into an ErrorMapping.
func FromValidation(result validation.Result) ErrorMapping {
	if result.Valid {
		return ErrorMapping{}
	}
	mapping := ErrorMapping{
		Fields: result.FieldErrors(),
		Form:   normalizeMessages(result.FormErrors()),
	}
	for name, messages := range mapping.Fields {
		mapping.Fields[name] = normalizeMessages(messages)
	}
	return mapping
}

// MergeFormErrors concatenates form-level messages, trimming whitespace and
// dropping duplicates while preserving order.
func MergeFormErrors(existing []string, extras ...string) []string {
	combined := make([]string, 0, len(existing)+len(extras))
	combined = append(combined, existing...)
	combined = append(combined, extras...)
	return normalizeMessages(combined)
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}

	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))
	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}

	if len(out) == 0 {
		return nil
	}
	return out
}
