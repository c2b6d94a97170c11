package mask_test

import (
	"regexp"
	"strings"
	"testing"

	"github.com/goliatone/go-formkit/pkg/dom"
	"github.com/goliatone/go-formkit/pkg/i18n"
	"github.com/goliatone/go-formkit/pkg/mask"
)

func TestPhonePrefixes(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: ""},
		{in: "abc", want: ""},
		{in: "1", want: "(1"},
		{in: "11", want: "(11"},
		{in: "119", want: "(11) 9"},
		{in: "1198765", want: "(11) 98765"},
		{in: "11987654", want: "(11) 98765-4"},
		{in: "1198765432", want: "(11) 98765-432"},
		{in: "11987654321", want: "(11) 98765-4321"},
		{in: "11987654321999", want: "(11) 98765-4321"},
		{in: "(11) 98765-4321", want: "(11) 98765-4321"},
		{in: "+55 11 9", want: "(55) 119"},
	}
	for _, tt := range tests {
		if got := mask.Phone(tt.in); got != tt.want {
			t.Fatalf("Phone(%q): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}

func TestPhoneKeystrokesStayWithinPattern(t *testing.T) {
	full := regexp.MustCompile(`^\(\d{2}\) \d{5}-\d{4}$`)
	const template = "(DD) DDDDD-DDDD"

	typed := ""
	value := ""
	for i, ch := range "98765432101234" {
		typed += string(ch)
		value = mask.Phone(value + string(ch))

		if got := len(mask.Digits(value)); got > mask.MaxPhoneDigits {
			t.Fatalf("keystroke %d kept %d digits", i, got)
		}
		n := len(mask.Digits(typed))
		if n >= mask.MaxPhoneDigits {
			if !full.MatchString(value) {
				t.Fatalf("keystroke %d: %q does not match the full pattern", i, value)
			}
			continue
		}
		if !isPatternPrefix(value, template) {
			t.Fatalf("keystroke %d: %q is not a prefix of %s", i, value, template)
		}
	}
}

func isPatternPrefix(value, template string) bool {
	if len(value) >= len(template) {
		return false
	}
	for i := 0; i < len(value); i++ {
		want := template[i]
		got := value[i]
		if want == 'D' {
			if got < '0' || got > '9' {
				return false
			}
			continue
		}
		if got != want {
			return false
		}
	}
	return !strings.HasSuffix(value, " ") && !strings.HasSuffix(value, "-")
}

func TestBindMasksInputEvents(t *testing.T) {
	doc := dom.MustParseString(`<form>
  <input type="tel" name="mobile">
  <input name="phone">
  <input class="phone-mask" name="other">
  <input name="email" type="email">
</form>`)

	disposers := mask.Bind(doc)
	if len(disposers) != 3 {
		t.Fatalf("expected 3 masked inputs, got %d", len(disposers))
	}

	mobile, _ := doc.Query(dom.Name("mobile"))
	if got := mobile.Placeholder(); got != mask.PhonePlaceholder {
		t.Fatalf("expected placeholder, got %q", got)
	}
	email, _ := doc.Query(dom.Name("email"))
	if email.HasAttr("placeholder") {
		t.Fatal("expected email input to be left alone")
	}

	doc.Input(mobile, "11a98765x4321")
	if got := mobile.Value(); got != "(11) 98765-4321" {
		t.Fatalf("expected masked value, got %q", got)
	}

	for _, dispose := range disposers {
		dispose()
	}
	doc.Input(mobile, "119")
	if got := mobile.Value(); got != "119" {
		t.Fatalf("expected raw value after dispose, got %q", got)
	}
}

func TestBindResolvesPlaceholderThroughLocalizer(t *testing.T) {
	doc := dom.MustParseString(`<form><input type="tel" name="mobile"><input name="phone"></form>`)
	localizer := i18n.Localizer{
		Locale: "pt-BR",
		Translator: i18n.TranslatorFunc(func(_, key string, _ ...any) (string, error) {
			if key == mask.PlaceholderKey {
				return "DDD + número", nil
			}
			return "", i18n.ErrMissingTranslation
		}),
	}

	mask.Bind(doc, mask.WithLocalizer(localizer))
	for _, name := range []string{"mobile", "phone"} {
		input, _ := doc.Query(dom.Name(name))
		if got := input.Placeholder(); got != "DDD + número" {
			t.Fatalf("%s: expected catalog placeholder, got %q", name, got)
		}
	}

	doc = dom.MustParseString(`<input type="tel" name="mobile">`)
	mask.Bind(doc, mask.WithLocalizer(i18n.NewLocalizer("en")))
	input, _ := doc.Query(dom.Name("mobile"))
	if got := input.Placeholder(); got != "(XX) XXXXX-XXXX" {
		t.Fatalf("expected embedded catalog placeholder, got %q", got)
	}

	empty := i18n.Localizer{Locale: "pt-BR"}
	doc = dom.MustParseString(`<input type="tel" name="mobile">`)
	mask.Bind(doc, mask.WithLocalizer(empty))
	input, _ = doc.Query(dom.Name("mobile"))
	if got := input.Placeholder(); got != mask.PhonePlaceholder {
		t.Fatalf("expected fallback placeholder, got %q", got)
	}
}
