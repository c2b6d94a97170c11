// Package mask rewrites telephone inputs into the (DD) DDDDD-DDDD display
// format while the user types.
package mask

import (
	"strings"

	"github.com/goliatone/go-formkit/pkg/dom"
	"github.com/goliatone/go-formkit/pkg/i18n"
)

const (
	// PhonePlaceholder is set on every masked input unless the catalog
	// overrides it.
	PhonePlaceholder = "(XX) XXXXX-XXXX"
	// PlaceholderKey is the catalog key of the placeholder text.
	PlaceholderKey = "phone.placeholder"
	// MaxPhoneDigits caps the digits kept by Phone: two for the area code and
	// up to nine for the subscriber number.
	MaxPhoneDigits = 11
)

// PhoneInputs matches input[type="tel"], input[name="phone"] and
// input.phone-mask.
var PhoneInputs = dom.All(
	dom.Tag("input"),
	dom.Any(dom.Type("tel"), dom.Name("phone"), dom.Class("phone-mask")),
)

// Digits strips every character that is not an ASCII digit.
func Digits(value string) string {
	var b strings.Builder
	b.Grow(len(value))
	for i := 0; i < len(value); i++ {
		if c := value[i]; c >= '0' && c <= '9' {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// Phone formats raw input as (DD) DDDDD-DDDD. Extra digits are dropped and a
// partial number yields the prefix reached so far: "(1", "(11", "(11) 9",
// "(11) 98765-4".
func Phone(raw string) string {
	digits := Digits(raw)
	if len(digits) > MaxPhoneDigits {
		digits = digits[:MaxPhoneDigits]
	}
	if digits == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(digits) + 4)
	b.WriteByte('(')
	for i := 0; i < len(digits); i++ {
		switch i {
		case 2:
			b.WriteString(") ")
		case 7:
			b.WriteByte('-')
		}
		b.WriteByte(digits[i])
	}
	return b.String()
}

// Option configures Bind.
type Option func(*binder)

type binder struct {
	localizer *i18n.Localizer
}

// WithLocalizer resolves the placeholder through the "phone.placeholder"
// catalog key, falling back to PhonePlaceholder.
func WithLocalizer(l i18n.Localizer) Option {
	return func(b *binder) {
		b.localizer = &l
	}
}

func (b binder) placeholder() string {
	if b.localizer == nil {
		return PhonePlaceholder
	}
	return b.localizer.Message(PlaceholderKey, PhonePlaceholder, nil)
}

// Bind masks every phone input in doc: the placeholder is set once and each
// input event rewrites the value through Phone. The caret position is not
// preserved. The returned functions remove the listeners.
func Bind(doc *dom.Document, opts ...Option) []func() {
	if doc == nil {
		return nil
	}

	var b binder
	for _, opt := range opts {
		if opt != nil {
			opt(&b)
		}
	}
	placeholder := b.placeholder()

	var disposers []func()
	for _, input := range doc.QueryAll(PhoneInputs) {
		input.SetPlaceholder(placeholder)
		disposers = append(disposers, doc.AddEventListener(input, dom.EventInput, func(evt *dom.Event) {
			evt.Target.SetValue(Phone(evt.Target.Value()))
		}))
	}
	return disposers
}
