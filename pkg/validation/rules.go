package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/goliatone/go-formkit/pkg/dom"
	"github.com/goliatone/go-formkit/pkg/mask"
)

// emailPattern is a UX-level check (local@domain.tld), not an RFC validator.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const (
	// MinPasswordLength is the minimum password length, in characters.
	MinPasswordLength = 8
	// PasswordSymbols lists the characters accepted as password symbols.
	PasswordSymbols = `!@#$%^&*(),.?":{}|<>`
)

// IsValidEmail reports whether email looks like local@domain.tld.
func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// IsValidPassword requires MinPasswordLength characters including an ASCII
// letter, a digit and one of PasswordSymbols.
func IsValidPassword(password string) bool {
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return false
	}
	var letter, digit, symbol bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
			letter = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(PasswordSymbols, r):
			symbol = true
		}
	}
	return letter && digit && symbol
}

// IsValidPhone accepts values holding 10 or 11 digits once punctuation is
// stripped.
func IsValidPhone(phone string) bool {
	n := len(mask.Digits(phone))
	return n == 10 || n == 11
}

// Bounds holds the declared min/max of a number input. Malformed attributes
// leave the bound undeclared.
type Bounds struct {
	Min, Max       int64
	HasMin, HasMax bool
}

// ParseBounds reads min and max attribute values.
func ParseBounds(min, max string) Bounds {
	var b Bounds
	b.Min, b.HasMin = ParseInt(min)
	b.Max, b.HasMax = ParseInt(max)
	return b
}

// Declared reports whether either bound is present.
func (b Bounds) Declared() bool {
	return b.HasMin || b.HasMax
}

// Contains reports whether v respects the declared bounds.
func (b Bounds) Contains(v int64) bool {
	if b.HasMin && v < b.Min {
		return false
	}
	if b.HasMax && v > b.Max {
		return false
	}
	return true
}

// Params returns the bounds as template parameters; undeclared bounds are
// empty strings.
func (b Bounds) Params() map[string]any {
	params := map[string]any{"min": "", "max": ""}
	if b.HasMin {
		params["min"] = strconv.FormatInt(b.Min, 10)
	}
	if b.HasMax {
		params["max"] = strconv.FormatInt(b.Max, 10)
	}
	return params
}

// ParseInt reads the leading integer of value: surrounding whitespace and a
// sign are accepted and parsing stops at the first non-digit, so "3.7" is 3
// and "12abc" is 12. Values without leading digits, or out of int64 range, do
// not parse.
func ParseInt(value string) (int64, bool) {
	s := strings.TrimLeft(value, " \t\n\r\f\v")
	sign := ""
	if s != "" && (s[0] == '+' || s[0] == '-') {
		sign, s = s[:1], s[1:]
	}
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.ParseInt(sign+s[:end], 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// CheckNumber reports whether value parses as an integer within b.
func CheckNumber(value string, b Bounds) bool {
	n, ok := ParseInt(value)
	return ok && b.Contains(n)
}

// ImagePolicy constrains files selected on image inputs.
type ImagePolicy struct {
	AllowedTypes []string
	MaxBytes     int64
}

// DefaultImagePolicy accepts JPEG, PNG, GIF and WebP files up to 5 MiB.
var DefaultImagePolicy = ImagePolicy{
	AllowedTypes: []string{"image/jpeg", "image/png", "image/gif", "image/webp"},
	MaxBytes:     5 * 1024 * 1024,
}

// Allows reports whether contentType is on the allow-list.
func (p ImagePolicy) Allows(contentType string) bool {
	contentType = strings.ToLower(strings.TrimSpace(contentType))
	for _, allowed := range p.AllowedTypes {
		if contentType == allowed {
			return true
		}
	}
	return false
}

// CheckImage runs the type and size checks independently and returns the
// failing codes in that order.
func CheckImage(file dom.File, policy ImagePolicy) []Code {
	var codes []Code
	if !policy.Allows(file.Type) {
		codes = append(codes, CodeImageType)
	}
	if policy.MaxBytes > 0 && file.Size > policy.MaxBytes {
		codes = append(codes, CodeImageSize)
	}
	return codes
}

var typeLabels = map[string]string{
	"image/jpeg": "JPEG",
	"image/png":  "PNG",
	"image/gif":  "GIF",
	"image/webp": "WebP",
}

func (p ImagePolicy) typeLabels() []string {
	out := make([]string, 0, len(p.AllowedTypes))
	for _, allowed := range p.AllowedTypes {
		if label, ok := typeLabels[allowed]; ok {
			out = append(out, label)
			continue
		}
		_, sub, _ := strings.Cut(allowed, "/")
		out = append(out, strings.ToUpper(sub))
	}
	return out
}

func (p ImagePolicy) sizeLabel() string {
	const mib = 1024 * 1024
	switch {
	case p.MaxBytes >= mib && p.MaxBytes%mib == 0:
		return fmt.Sprintf("%dMB", p.MaxBytes/mib)
	case p.MaxBytes >= 1024 && p.MaxBytes%1024 == 0:
		return fmt.Sprintf("%dKB", p.MaxBytes/1024)
	default:
		return fmt.Sprintf("%d bytes", p.MaxBytes)
	}
}
