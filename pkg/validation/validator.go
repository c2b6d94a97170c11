// Package validation runs the client-side checks of opted-in forms: required
// fields, email format, password pair, phone digits, numeric bounds and image
// uploads. Failures are returned as data; rendering them is left to
// pkg/render.
package validation

import (
	"strings"

	"github.com/goliatone/go-formkit/pkg/dom"
	"github.com/goliatone/go-formkit/pkg/i18n"
)

// Code identifies a failed check. Codes double as catalog keys.
type Code string

const (
	CodeRequired         Code = "required"
	CodeEmail            Code = "email"
	CodePasswordMismatch Code = "password.mismatch"
	CodePasswordWeak     Code = "password.weak"
	CodePhone            Code = "phone"
	CodeNumberRange      Code = "number.range"
	CodeNumberInvalid    Code = "number.invalid"
	CodeImageType        Code = "image.type"
	CodeImageSize        Code = "image.size"
)

const (
	PasswordName        = "password"
	PasswordConfirmName = "password_confirm"
	PhoneName           = "phone"
)

// fallbackMessages are used when the configured translator has no entry.
var fallbackMessages = map[Code]string{
	CodeRequired:         "Este campo é obrigatório",
	CodeEmail:            "Por favor, insira um e-mail válido",
	CodePasswordMismatch: "As senhas não coincidem",
	CodePasswordWeak:     "A senha deve ter no mínimo 8 caracteres, incluindo letras, números e caracteres especiais",
	CodePhone:            "Telefone no formato (XX) XXXXX-XXXX",
	CodeNumberRange:      "Valor fora do intervalo permitido",
	CodeNumberInvalid:    "Por favor, insira um número inteiro válido",
	CodeImageType:        "Por favor, selecione uma imagem válida (JPEG, PNG, GIF ou WebP)",
	CodeImageSize:        "A imagem deve ter no máximo 5MB",
}

// Issue is a single failed check on a field.
type Issue struct {
	Field   dom.Element
	Name    string
	Code    Code
	Message string
}

// Result is the outcome of a validation pass.
type Result struct {
	Valid  bool
	Issues []Issue
}

// Validator runs the fixed battery of checks. The zero value is not usable;
// construct with New.
type Validator struct {
	localizer i18n.Localizer
	images    ImagePolicy
	reporters []func(form dom.Element, result Result)
}

// Option configures a Validator.
type Option func(*Validator)

// WithLocalizer overrides the message localizer.
func WithLocalizer(l i18n.Localizer) Option {
	return func(v *Validator) {
		v.localizer = l
	}
}

// WithImagePolicy overrides the image allow-list and size limit.
func WithImagePolicy(p ImagePolicy) Option {
	return func(v *Validator) {
		if len(p.AllowedTypes) > 0 {
			v.images.AllowedTypes = append([]string(nil), p.AllowedTypes...)
		}
		if p.MaxBytes > 0 {
			v.images.MaxBytes = p.MaxBytes
		}
	}
}

// WithReporter registers a callback invoked after every submit-triggered
// validation pass.
func WithReporter(fn func(form dom.Element, result Result)) Option {
	return func(v *Validator) {
		if fn != nil {
			v.reporters = append(v.reporters, fn)
		}
	}
}

// New builds a Validator using the embedded pt-BR catalog by default.
func New(opts ...Option) *Validator {
	v := &Validator{
		localizer: i18n.NewLocalizer(i18n.DefaultLocale),
		images: ImagePolicy{
			AllowedTypes: append([]string(nil), DefaultImagePolicy.AllowedTypes...),
			MaxBytes:     DefaultImagePolicy.MaxBytes,
		},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(v)
		}
	}
	return v
}

// Validate runs every check against form, in a fixed order, without stopping
// at the first failure. The form is not modified.
func (v *Validator) Validate(form dom.Element) Result {
	p := pass{v: v}

	p.required(form)
	p.emails(form)
	p.passwords(form)
	p.phones(form)
	p.numbers(form)
	p.images(form)

	return Result{Valid: len(p.issues) == 0, Issues: p.issues}
}

type pass struct {
	v      *Validator
	issues []Issue
}

func (p *pass) fail(field dom.Element, code Code, params map[string]any) {
	p.issues = append(p.issues, Issue{
		Field:   field,
		Name:    field.Name(),
		Code:    code,
		Message: p.v.message(code, params),
	})
}

func (p *pass) required(form dom.Element) {
	for _, field := range form.QueryAll(dom.HasAttr("required")) {
		if strings.TrimSpace(field.Value()) == "" {
			p.fail(field, CodeRequired, nil)
		}
	}
}

func (p *pass) emails(form dom.Element) {
	for _, field := range form.QueryAll(dom.Input("email")) {
		if value := field.Value(); value != "" && !IsValidEmail(value) {
			p.fail(field, CodeEmail, nil)
		}
	}
}

func (p *pass) passwords(form dom.Element) {
	password, okPassword := form.Query(dom.All(dom.Tag("input"), dom.Name(PasswordName)))
	confirm, okConfirm := form.Query(dom.All(dom.Tag("input"), dom.Name(PasswordConfirmName)))
	if !okPassword || !okConfirm {
		return
	}
	if password.Value() != confirm.Value() {
		p.fail(confirm, CodePasswordMismatch, nil)
	}
	if !IsValidPassword(password.Value()) {
		p.fail(password, CodePasswordWeak, nil)
	}
}

func (p *pass) phones(form dom.Element) {
	for _, field := range form.QueryAll(dom.All(dom.Tag("input"), dom.Name(PhoneName))) {
		if value := field.Value(); value != "" && !IsValidPhone(value) {
			p.fail(field, CodePhone, nil)
		}
	}
}

func (p *pass) numbers(form dom.Element) {
	for _, field := range form.QueryAll(dom.Input("number")) {
		value := field.Value()
		if value == "" {
			continue
		}
		bounds := ParseBounds(field.AttrOr("min", ""), field.AttrOr("max", ""))
		if CheckNumber(value, bounds) {
			continue
		}
		if bounds.Declared() {
			p.fail(field, CodeNumberRange, bounds.Params())
			continue
		}
		p.fail(field, CodeNumberInvalid, nil)
	}
}

func (p *pass) images(form dom.Element) {
	matcher := dom.All(dom.Input("file"), dom.AttrContains("accept", "image"))
	for _, field := range form.QueryAll(matcher) {
		files := field.Files()
		if len(files) == 0 {
			continue
		}
		for _, code := range CheckImage(files[0], p.v.images) {
			p.fail(field, code, p.v.imageParams())
		}
	}
}

func (v *Validator) imageParams() map[string]any {
	return map[string]any{
		"types": v.images.typeLabels(),
		"limit": v.images.sizeLabel(),
	}
}

func (v *Validator) message(code Code, params map[string]any) string {
	return v.localizer.Message(string(code), fallbackMessages[code], params)
}
