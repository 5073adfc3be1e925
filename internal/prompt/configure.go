// Package prompt walks a component's editor form on the terminal and returns
// the cleaned settings, the command-line counterpart of the page builder's
// plugin edit dialog.
package prompt

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/goliatone/go-cmstheme/pkg/forms"
	"github.com/goliatone/go-cmstheme/pkg/model"
)

// Configure asks for every field of form and cleans the answers. Validation
// failures are reported through driver.Info and returned.
func Configure(ctx context.Context, driver Driver, form model.Form) (map[string]any, error) {
	if driver == nil {
		return nil, errors.New("prompt: missing driver")
	}
	if err := driver.Info(ctx, form.Label); err != nil {
		return nil, err
	}

	answers := make(map[string]any, len(form.Fields))
	for _, field := range form.Fields {
		value, ok, err := ask(ctx, driver, field)
		if err != nil {
			return nil, fmt.Errorf("prompt: %s: %w", field.Name, err)
		}
		if ok {
			answers[field.Name] = value
		}
	}

	cleaned, err := forms.Clean(form, answers)
	if err != nil {
		var verr *forms.ValidationError
		if errors.As(err, &verr) {
			for _, name := range sortedKeys(verr.Fields) {
				for _, msg := range verr.Fields[name] {
					_ = driver.Info(ctx, fmt.Sprintf("%s: %s", name, msg))
				}
			}
		}
		return nil, err
	}
	return cleaned, nil
}

// ask returns ok=false when the answer is blank, leaving the field to its
// declared default.
func ask(ctx context.Context, driver Driver, field model.Field) (any, bool, error) {
	message := field.Label
	if message == "" {
		message = field.Name
	}

	switch field.Type {
	case model.FieldTypeBoolean:
		def, _ := field.Default.(bool)
		v, err := driver.Confirm(ctx, ConfirmConfig{Message: message, Default: def, Help: field.HelpText})
		return v, err == nil, err

	case model.FieldTypeChoice:
		if len(field.Choices) == 0 {
			return nil, false, nil
		}
		options := make([]string, len(field.Choices))
		defaultIndex := 0
		for i, choice := range field.Choices {
			options[i] = choiceLabel(choice)
			if fmt.Sprint(field.Default) == choice.Value {
				defaultIndex = i
			}
		}
		idx, err := driver.Select(ctx, SelectConfig{
			Message:      message,
			Options:      options,
			DefaultIndex: defaultIndex,
			Help:         field.HelpText,
		})
		if err != nil {
			return nil, false, err
		}
		if idx < 0 || idx >= len(field.Choices) {
			return nil, false, nil
		}
		return field.Choices[idx].Value, true, nil

	case model.FieldTypeInteger:
		cfg := InputConfig{Message: message, Help: field.HelpText, Validator: integerValidator(field)}
		if field.Default != nil {
			cfg.Default = fmt.Sprint(field.Default)
		}
		v, err := driver.Input(ctx, cfg)
		if err != nil || strings.TrimSpace(v) == "" {
			return nil, false, err
		}
		return strings.TrimSpace(v), true, nil

	case model.FieldTypeRichText:
		v, err := driver.TextArea(ctx, TextAreaConfig{Message: message, Help: field.HelpText, Default: defaultString(field)})
		if err != nil || strings.TrimSpace(v) == "" {
			return nil, false, err
		}
		return v, true, nil

	case model.FieldTypeAttributes:
		v, err := driver.Input(ctx, InputConfig{Message: message, Help: "key=value pairs separated by commas"})
		if err != nil || strings.TrimSpace(v) == "" {
			return nil, false, err
		}
		return parseAttributes(v), true, nil

	default:
		v, err := driver.Input(ctx, InputConfig{Message: message, Help: field.HelpText, Default: defaultString(field)})
		if err != nil || v == "" {
			return nil, false, err
		}
		return v, true, nil
	}
}

func integerValidator(field model.Field) func(string) error {
	limit, hasMin := field.Min()
	return func(raw string) error {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			return nil
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return errors.New(forms.MessageWholeNumber)
		}
		if hasMin && n < limit {
			return errors.New(forms.MessageMinValue(limit))
		}
		return nil
	}
}

func choiceLabel(choice model.Choice) string {
	if choice.Label == "" || choice.Label == choice.Value {
		return choice.Value
	}
	return choice.Label + " (" + choice.Value + ")"
}

func defaultString(field model.Field) string {
	if s, ok := field.Default.(string); ok {
		return s
	}
	return ""
}

func parseAttributes(raw string) map[string]any {
	out := map[string]any{}
	for _, pair := range strings.Split(raw, ",") {
		key, value, _ := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		out[key] = strings.TrimSpace(value)
	}
	return out
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
