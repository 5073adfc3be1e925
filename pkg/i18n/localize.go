package i18n

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-cmstheme/pkg/model"
)

// LocalizeForm translates the form label, field labels, help texts and
// choice labels in place. Source strings double as keys; missing messages
// leave the English text untouched.
func LocalizeForm(form *model.Form, locale string, t Translator) {
	if form == nil || t == nil {
		return
	}
	form.Label = Translate(t, locale, form.Label, form.Label)
	for i := range form.Fields {
		field := &form.Fields[i]
		field.Label = Translate(t, locale, field.Label, field.Label)
		if field.HelpText != "" {
			field.HelpText = Translate(t, locale, field.HelpText, field.HelpText)
		}
		if len(field.Choices) == 0 {
			continue
		}
		choices := make([]model.Choice, len(field.Choices))
		for j, choice := range field.Choices {
			choices[j] = model.Choice{Value: choice.Value, Label: Translate(t, locale, choice.Label, choice.Label)}
		}
		field.Choices = choices
	}
}

// TemplateFuncs returns template helpers bound to t:
//
//	translate(localeSrc, key, ...args)
//	current_locale(localeSrc)
//
// localeSrc is a locale string or a map carrying one under "locale".
func TemplateFuncs(t Translator, onMissing MissingHandler) map[string]any {
	if onMissing == nil {
		onMissing = MissingFallback
	}
	return map[string]any{
		"translate": func(localeSrc any, key string, args ...any) string {
			key = strings.TrimSpace(key)
			if key == "" {
				return ""
			}
			locale := resolveLocale(localeSrc)
			if t == nil {
				return onMissing(locale, key, args, ErrMissingTranslator)
			}
			msg, err := t.Translate(locale, key, args...)
			if err != nil || strings.TrimSpace(msg) == "" {
				return onMissing(locale, key, args, err)
			}
			return msg
		},
		"current_locale": func(localeSrc any) string {
			return resolveLocale(localeSrc)
		},
	}
}

func resolveLocale(src any) string {
	switch data := src.(type) {
	case nil:
		return ""
	case string:
		return data
	case map[string]any:
		if v, ok := data["locale"]; ok && v != nil {
			return strings.TrimSpace(fmt.Sprint(v))
		}
	case map[string]string:
		return data["locale"]
	}
	return ""
}
