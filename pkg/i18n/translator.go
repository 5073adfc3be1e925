// Package i18n resolves editor labels and template strings per locale. Message
// keys are the English source strings, so an untranslated key renders as
// readable English.
package i18n

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMissingTranslator is reported when no translator is configured.
	ErrMissingTranslator = errors.New("i18n: translator not configured")
	// ErrMissingMessage is reported when a key has no translation for a locale.
	ErrMissingMessage = errors.New("i18n: missing translation")
)

// Translator resolves a message key for a locale.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

// TranslatorFunc adapts a function into a Translator.
type TranslatorFunc func(locale, key string, args ...any) (string, error)

func (fn TranslatorFunc) Translate(locale, key string, args ...any) (string, error) {
	return fn(locale, key, args...)
}

// MissingHandler decides what to render when a translation fails.
type MissingHandler func(locale, key string, args []any, err error) string

// MissingFallback renders the key itself, formatting args into it.
func MissingFallback(_ string, key string, args []any, _ error) string {
	if len(args) > 0 {
		return fmt.Sprintf(key, args...)
	}
	return key
}

// Translate resolves key through t, returning fallback (or the key when the
// fallback is blank) when the translator is absent or has no message.
func Translate(t Translator, locale, key, fallback string) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return fallback
	}
	if t != nil {
		result, err := t.Translate(locale, key)
		if err == nil && strings.TrimSpace(result) != "" {
			return result
		}
	}
	if strings.TrimSpace(fallback) != "" {
		return fallback
	}
	return key
}
