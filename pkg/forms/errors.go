package forms

import (
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// Messages shown to editors, worded like the host's form layer.
const (
	MessageRequired     = "This field is required."
	MessageWholeNumber  = "Enter a whole number."
	MessageInvalidValue = "Enter a valid value."
)

// MessageMinValue formats the lower-bound violation message.
func MessageMinValue(limit int) string {
	return fmt.Sprintf("Ensure this value is greater than or equal to %d.", limit)
}

// MessageInvalidChoice formats the unknown choice message.
func MessageInvalidChoice(value any) string {
	return fmt.Sprintf("Select a valid choice. %v is not one of the available choices.", value)
}

// ValidationError carries per-field and form-level messages for a rejected
// submission.
type ValidationError struct {
	Component string              `json:"component"`
	Fields    map[string][]string `json:"fields,omitempty"`
	Form      []string            `json:"form,omitempty"`
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "forms: validation failed"
	}
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	if len(names) == 0 {
		return fmt.Sprintf("forms: %s: %s", e.Component, strings.Join(e.Form, "; "))
	}
	return fmt.Sprintf("forms: %s: invalid fields: %s", e.Component, strings.Join(names, ", "))
}

// StatusCode maps validation failures to 422 for HTTP handlers.
func (e *ValidationError) StatusCode() int {
	return http.StatusUnprocessableEntity
}

func (e *ValidationError) add(field, message string) {
	if field == "" {
		e.Form = append(e.Form, message)
		return
	}
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[field] = append(e.Fields[field], message)
}

func (e *ValidationError) empty() bool {
	return len(e.Fields) == 0 && len(e.Form) == 0
}

func (e *ValidationError) normalize() {
	for name, messages := range e.Fields {
		e.Fields[name] = normalizeMessages(messages)
	}
	e.Form = normalizeMessages(e.Form)
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
