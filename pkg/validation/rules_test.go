package validation_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formkit/pkg/dom"
	"github.com/goliatone/go-formkit/pkg/validation"
)

func TestIsValidEmail(t *testing.T) {
	tests := map[string]bool{
		"a@b.co":            true,
		"ana.souza@ufc.br":  true,
		"a@b":               false,
		"a b@c.com":         false,
		"@b.co":             false,
		"a@@b.co":           false,
		"":                  false,
		"user@sub.domain.x": true,
	}
	for in, want := range tests {
		if got := validation.IsValidEmail(in); got != want {
			t.Fatalf("IsValidEmail(%q): expected %v, got %v", in, want, got)
		}
	}
}

func TestIsValidPassword(t *testing.T) {
	tests := map[string]bool{
		"abc12345":   false,
		"abc123!@":   true,
		"abc!@#$%":   false,
		"1234567!":   false,
		"ab1!":       false,
		"Senha#2026": true,
		"abc123_-+":  false,
	}
	for in, want := range tests {
		if got := validation.IsValidPassword(in); got != want {
			t.Fatalf("IsValidPassword(%q): expected %v, got %v", in, want, got)
		}
	}
}

func TestIsValidPhone(t *testing.T) {
	tests := map[string]bool{
		"(11) 9876-543":   false,
		"(11) 9876-5432":  true,
		"(11) 98765-4321": true,
		"119876543210":    false,
		"":                false,
	}
	for in, want := range tests {
		if got := validation.IsValidPhone(in); got != want {
			t.Fatalf("IsValidPhone(%q): expected %v, got %v", in, want, got)
		}
	}
}

func TestParseIntAndBounds(t *testing.T) {
	tests := []struct {
		in   string
		want int64
		ok   bool
	}{
		{in: "42", want: 42, ok: true},
		{in: " -7", want: -7, ok: true},
		{in: "3.7", want: 3, ok: true},
		{in: "12abc", want: 12, ok: true},
		{in: "abc", ok: false},
		{in: "", ok: false},
		{in: "-", ok: false},
		{in: "99999999999999999999", ok: false},
	}
	for _, tt := range tests {
		got, ok := validation.ParseInt(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Fatalf("ParseInt(%q): expected (%d, %v), got (%d, %v)", tt.in, tt.want, tt.ok, got, ok)
		}
	}

	bounds := validation.ParseBounds("0", "abc")
	if diff := cmp.Diff(validation.Bounds{Min: 0, HasMin: true}, bounds); diff != "" {
		t.Fatalf("bounds mismatch (-want +got):\n%s", diff)
	}
	if validation.CheckNumber("-1", bounds) {
		t.Fatal("expected a declared zero minimum to be enforced")
	}
	if !validation.CheckNumber("1000", bounds) {
		t.Fatal("expected a malformed maximum to be ignored")
	}
	if validation.CheckNumber("x", validation.Bounds{}) {
		t.Fatal("expected unparsable values to fail")
	}
}

func TestCheckImage(t *testing.T) {
	policy := validation.DefaultImagePolicy
	tests := []struct {
		name string
		file dom.File
		want []validation.Code
	}{
		{name: "valid jpeg", file: dom.File{Type: "image/jpeg", Size: 1024}},
		{name: "exactly at limit", file: dom.File{Type: "image/webp", Size: 5 * 1024 * 1024}},
		{name: "oversized", file: dom.File{Type: "image/png", Size: 5*1024*1024 + 1}, want: []validation.Code{validation.CodeImageSize}},
		{name: "wrong type", file: dom.File{Type: "image/bmp", Size: 10}, want: []validation.Code{validation.CodeImageType}},
		{name: "both", file: dom.File{Type: "application/pdf", Size: 6 * 1024 * 1024}, want: []validation.Code{validation.CodeImageType, validation.CodeImageSize}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, validation.CheckImage(tt.file, policy)); diff != "" {
				t.Fatalf("codes mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
