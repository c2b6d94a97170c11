package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/goliatone/go-formkit/pkg/dom"
)

// HiddenField is a name/value pair carried by an <input type="hidden">.
type HiddenField struct {
	Name  string
	Value string
}

// Hidden returns a HiddenField for an arbitrary name/value pair.
func Hidden(name string, value any) HiddenField {
	return HiddenField{
		Name:  strings.TrimSpace(name),
		Value: fmt.Sprint(value),
	}
}

// CSRFToken returns the hidden field a server expects its anti-forgery token
// in, e.g. "csrfmiddlewaretoken".
func CSRFToken(name, token string) HiddenField {
	return Hidden(name, token)
}

// SortedHiddenFields normalises and sorts hidden fields for deterministic
// output. Empty names are dropped; later duplicates win.
func SortedHiddenFields(fields ...HiddenField) []HiddenField {
	clean := make(map[string]string, len(fields))
	for _, field := range fields {
		if name := strings.TrimSpace(field.Name); name != "" {
			clean[name] = field.Value
		}
	}
	if len(clean) == 0 {
		return nil
	}

	names := make([]string, 0, len(clean))
	for name := range clean {
		names = append(names, name)
	}
	sort.Strings(names)

	result := make([]HiddenField, 0, len(names))
	for _, name := range names {
		result = append(result, HiddenField{Name: name, Value: clean[name]})
	}
	return result
}

// ApplyHiddenFields writes fields into form. An existing hidden input with the
// same name is updated in place; otherwise a new one is appended to the form.
func ApplyHiddenFields(form dom.Element, fields ...HiddenField) int {
	doc := form.Document()
	if doc == nil {
		return 0
	}
	sorted := SortedHiddenFields(fields...)
	for _, field := range sorted {
		if existing, ok := form.Query(dom.All(dom.Input("hidden"), dom.Name(field.Name))); ok {
			existing.SetValue(field.Value)
			continue
		}
		input := doc.CreateElement("input")
		input.SetAttr("type", "hidden")
		input.SetAttr("name", field.Name)
		input.SetValue(field.Value)
		form.AppendChild(input)
	}
	return len(sorted)
}

// SubmittedValue is one entry of the payload a form submit would send.
type SubmittedValue struct {
	Name  string
	Value string
}

// Submission lists the values form would submit, in document order. Disabled
// controls, unchecked checkboxes and radios, buttons and file inputs are
// skipped; selected files travel separately from the text payload.
func Submission(form dom.Element) []SubmittedValue {
	var out []SubmittedValue
	for _, control := range form.QueryAll(controlMatcher) {
		if control.HasAttr("disabled") {
			continue
		}
		switch control.Type() {
		case "checkbox", "radio":
			if !control.HasAttr("checked") {
				continue
			}
			out = append(out, SubmittedValue{Name: control.Name(), Value: control.Value()})
		case "file", "submit", "button", "reset", "image":
			continue
		default:
			out = append(out, SubmittedValue{Name: control.Name(), Value: control.Value()})
		}
	}
	return out
}
