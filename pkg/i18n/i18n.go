// Package i18n resolves the user-facing messages formkit renders. Messages
// live in YAML catalogs keyed by locale; each message is a pongo2 template so
// parameterised text (numeric bounds, sizes) can be phrased naturally.
package i18n

import (
	"errors"
	"strings"
)

var (
	// ErrMissingTranslator is reported to MissingTranslationHandler when no
	// translator was configured.
	ErrMissingTranslator = errors.New("i18n: translator is not configured")
	// ErrMissingTranslation is returned when a key is unknown for a locale and
	// its fallbacks.
	ErrMissingTranslation = errors.New("i18n: missing translation")
)

// DefaultLocale is the display locale formkit ships messages for.
const DefaultLocale = "pt-BR"

// Translator resolves a message key for a locale. Args are merged into the
// template context; map[string]any and map[string]string values contribute
// their entries.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

// TranslatorFunc adapts a function into a Translator.
type TranslatorFunc func(locale, key string, args ...any) (string, error)

// Translate delegates to the underlying function.
func (fn TranslatorFunc) Translate(locale, key string, args ...any) (string, error) {
	return fn(locale, key, args...)
}

// MissingTranslationHandler decides the text used when a translation fails.
type MissingTranslationHandler func(locale, key string, args []any, err error) string

// Localizer binds a locale and translator so components can ask for messages
// with a fallback text.
type Localizer struct {
	Locale     string
	Translator Translator
	OnMissing  MissingTranslationHandler
}

// NewLocalizer returns a Localizer for locale backed by the embedded catalog.
func NewLocalizer(locale string) Localizer {
	if strings.TrimSpace(locale) == "" {
		locale = DefaultLocale
	}
	return Localizer{Locale: locale, Translator: Default()}
}

// Message translates key with params, returning fallback when the key cannot
// be resolved. Translation failures never surface as errors.
func (l Localizer) Message(key, fallback string, params map[string]any) string {
	onMissing := l.OnMissing
	if onMissing == nil {
		onMissing = missingTranslationDefault
	}

	key = strings.TrimSpace(key)
	if key == "" {
		return fallback
	}

	args := []any{withDefault(params, fallback)}
	if l.Translator == nil {
		return onMissing(l.Locale, key, args, ErrMissingTranslator)
	}

	result, err := l.Translator.Translate(l.Locale, key, params)
	if err == nil && strings.TrimSpace(result) != "" {
		return result
	}
	if err == nil {
		err = ErrMissingTranslation
	}
	return onMissing(l.Locale, key, args, err)
}

func withDefault(params map[string]any, fallback string) map[string]any {
	out := make(map[string]any, len(params)+1)
	for k, v := range params {
		out[k] = v
	}
	out["default"] = fallback
	return out
}

// missingTranslationDefault returns the "default" argument when present and
// the key otherwise.
func missingTranslationDefault(_ string, key string, args []any, _ error) string {
	for _, arg := range args {
		values, ok := arg.(map[string]any)
		if !ok {
			continue
		}
		if fallback, ok := values["default"].(string); ok && strings.TrimSpace(fallback) != "" {
			return fallback
		}
	}
	return key
}
