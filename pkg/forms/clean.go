// Package forms cleans editor submissions for component forms: values are
// coerced to their declared types, omitted fields fall back to declared
// defaults, markup is sanitized, and the result is checked against the
// component's OpenAPI schema (minimums, choices, required fields).
package forms

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-cmstheme/pkg/model"
	"github.com/goliatone/go-cmstheme/pkg/schema"
)

var (
	attributeNamePattern = regexp.MustCompile(`^[A-Za-z_:][-A-Za-z0-9_:.]*$`)
	missingPropertyRe    = regexp.MustCompile(`property "([^"]+)" is missing`)
)

// Clean validates submitted values against form and returns the cleaned
// settings. Unknown keys are ignored. A *ValidationError is returned when any
// field is rejected.
func Clean(form model.Form, submitted map[string]any) (map[string]any, error) {
	cleaned := make(map[string]any, len(form.Fields))
	payload := make(map[string]any, len(form.Fields))
	verr := &ValidationError{Component: form.Component}

	for _, field := range form.Fields {
		raw, present := submitted[field.Name]
		if !present {
			if field.Default != nil {
				value, _, err := coerce(field, field.Default)
				if err == nil {
					cleaned[field.Name] = value
					payload[field.Name] = schemaValue(value)
					continue
				}
			}
			if field.Required {
				verr.add(field.Name, MessageRequired)
				continue
			}
			cleaned[field.Name] = emptyValue(field)
			continue
		}

		value, isEmpty, err := coerce(field, raw)
		if err != nil {
			verr.add(field.Name, err.Error())
			continue
		}
		if isEmpty {
			if field.Required {
				verr.add(field.Name, MessageRequired)
				continue
			}
			cleaned[field.Name] = emptyValue(field)
			continue
		}
		cleaned[field.Name] = value
		payload[field.Name] = schemaValue(value)
	}

	if err := schema.ForForm(form).VisitJSON(payload, openapi3.MultiErrors()); err != nil {
		collectSchemaErrors(err, form, verr)
	}

	if !verr.empty() {
		verr.normalize()
		return nil, verr
	}
	return cleaned, nil
}

func coerce(field model.Field, raw any) (any, bool, error) {
	if raw == nil {
		return nil, true, nil
	}
	switch field.Type {
	case model.FieldTypeBoolean:
		return coerceBool(raw)
	case model.FieldTypeInteger:
		return coerceInt(raw)
	case model.FieldTypeChoice:
		value, ok := raw.(string)
		if !ok {
			return nil, false, fmt.Errorf("%s", MessageInvalidChoice(raw))
		}
		value = strings.TrimSpace(value)
		return value, value == "", nil
	case model.FieldTypeRichText:
		value, ok := raw.(string)
		if !ok {
			return nil, false, fmt.Errorf("%s", MessageInvalidValue)
		}
		value = SanitizeRichText(value)
		return value, value == "", nil
	case model.FieldTypeIcon:
		value, ok := raw.(string)
		if !ok {
			return nil, false, fmt.Errorf("%s", MessageInvalidValue)
		}
		value = SanitizeIcon(value)
		return value, value == "", nil
	case model.FieldTypeAttributes:
		return coerceAttributes(raw)
	default:
		value, ok := raw.(string)
		if !ok {
			return nil, false, fmt.Errorf("%s", MessageInvalidValue)
		}
		value = strings.TrimSpace(value)
		return value, value == "", nil
	}
}

func coerceBool(raw any) (any, bool, error) {
	switch v := raw.(type) {
	case bool:
		return v, false, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "on", "1", "yes":
			return true, false, nil
		case "", "false", "off", "0", "no":
			return false, false, nil
		}
	}
	return nil, false, fmt.Errorf("%s", MessageInvalidValue)
}

func coerceInt(raw any) (any, bool, error) {
	switch v := raw.(type) {
	case int:
		return v, false, nil
	case int64:
		return int(v), false, nil
	case float64:
		if v != math.Trunc(v) || math.Abs(v) >= math.MaxInt64 {
			return nil, false, fmt.Errorf("%s", MessageWholeNumber)
		}
		return int(v), false, nil
	case json.Number:
		n, err := strconv.Atoi(v.String())
		if err != nil {
			return nil, false, fmt.Errorf("%s", MessageWholeNumber)
		}
		return n, false, nil
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return nil, true, nil
		}
		n, err := strconv.Atoi(trimmed)
		if err != nil {
			return nil, false, fmt.Errorf("%s", MessageWholeNumber)
		}
		return n, false, nil
	}
	return nil, false, fmt.Errorf("%s", MessageWholeNumber)
}

func coerceAttributes(raw any) (any, bool, error) {
	out := map[string]string{}
	switch v := raw.(type) {
	case map[string]string:
		for key, value := range v {
			out[key] = value
		}
	case map[string]any:
		for key, value := range v {
			if value == nil {
				out[key] = ""
				continue
			}
			out[key] = fmt.Sprint(value)
		}
	default:
		return nil, false, fmt.Errorf("%s", MessageInvalidValue)
	}

	for key := range out {
		if !attributeNamePattern.MatchString(key) {
			return nil, false, fmt.Errorf("Enter a valid attribute name: %q.", key)
		}
		if strings.HasPrefix(strings.ToLower(key), "on") {
			return nil, false, fmt.Errorf("Event handler attributes are not allowed: %q.", key)
		}
	}
	return out, len(out) == 0, nil
}

func emptyValue(field model.Field) any {
	switch field.Type {
	case model.FieldTypeBoolean:
		return false
	case model.FieldTypeInteger:
		return nil
	case model.FieldTypeAttributes:
		return map[string]string{}
	default:
		return ""
	}
}

// schemaValue converts cleaned values into the JSON shapes the schema
// validator expects.
func schemaValue(value any) any {
	switch v := value.(type) {
	case int:
		return float64(v)
	case map[string]string:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[key] = item
		}
		return out
	}
	return value
}

func collectSchemaErrors(err error, form model.Form, verr *ValidationError) {
	switch e := err.(type) {
	case openapi3.MultiError:
		for _, item := range e {
			collectSchemaErrors(item, form, verr)
		}
	case *openapi3.SchemaError:
		name := ""
		if pointer := e.JSONPointer(); len(pointer) > 0 {
			name = pointer[0]
		}
		if name == "" && e.SchemaField == "required" {
			if match := missingPropertyRe.FindStringSubmatch(e.Reason); len(match) == 2 {
				name = match[1]
			}
		}
		field, known := form.Field(name)
		if !known {
			verr.add("", e.Reason)
			return
		}
		verr.add(field.Name, schemaMessage(field, e))
	default:
		verr.add("", err.Error())
	}
}

func schemaMessage(field model.Field, e *openapi3.SchemaError) string {
	switch e.SchemaField {
	case "minimum":
		if limit, ok := field.Min(); ok {
			return MessageMinValue(limit)
		}
	case "enum":
		return MessageInvalidChoice(e.Value)
	case "required":
		return MessageRequired
	case "type":
		if field.Type == model.FieldTypeInteger {
			return MessageWholeNumber
		}
		return MessageInvalidValue
	}
	if e.Reason != "" {
		return e.Reason
	}
	return MessageInvalidValue
}
