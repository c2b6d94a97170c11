package render

import (
	"sort"
	"strconv"
	"strings"

	"github.com/goliatone/go-formkit/pkg/dom"
)

// ErrorMapping splits a server error payload into field-level messages keyed
// by control name and form-level messages.
type ErrorMapping struct {
	Fields map[string][]string
	Form   []string
}

// MergeFormErrors concatenates form-level message slices, trimming whitespace
// and removing duplicates while preserving order.
func MergeFormErrors(existing []string, extras ...string) []string {
	combined := make([]string, 0, len(existing)+len(extras))
	combined = append(combined, existing...)
	combined = append(combined, extras...)
	return normalizeMessages(combined)
}

// MapErrorPayload maps a server payload (Django style field keys, __all__ and
// non_field_errors, or JSON pointer paths) onto the names of the controls in
// form. Unknown paths become form-level errors so messages are not lost.
// Paths are visited in sorted order so the rendered messages are stable.
func MapErrorPayload(form dom.Element, payload map[string][]string) ErrorMapping {
	mapping := ErrorMapping{
		Fields: make(map[string][]string),
	}
	if len(payload) == 0 {
		return mapping
	}

	paths := make([]string, 0, len(payload))
	for rawPath := range payload {
		paths = append(paths, rawPath)
	}
	sort.Strings(paths)

	names := controlNames(form)
	for _, rawPath := range paths {
		normalized := normalizeMessages(payload[rawPath])
		if len(normalized) == 0 {
			continue
		}

		name, formLevel := mapErrorPath(rawPath, names)
		if formLevel {
			mapping.Form = append(mapping.Form, normalized...)
			continue
		}
		mapping.Fields[name] = append(mapping.Fields[name], normalized...)
	}

	if len(mapping.Fields) == 0 {
		mapping.Fields = nil
	}
	mapping.Form = normalizeMessages(mapping.Form)
	return mapping
}

// ApplyErrorPayload renders a server payload into form the same way client
// validation failures are rendered. Existing errors are cleared first. It
// returns the mapping that was applied.
func ApplyErrorPayload(form dom.Element, payload map[string][]string) ErrorMapping {
	ClearErrors(form)
	mapping := MapErrorPayload(form, payload)

	shown := make(map[string]struct{}, len(mapping.Fields))
	for _, control := range form.QueryAll(controlMatcher) {
		name := control.Name()
		if _, done := shown[name]; done {
			continue
		}
		messages, ok := mapping.Fields[name]
		if !ok {
			continue
		}
		shown[name] = struct{}{}
		for _, message := range messages {
			ShowFieldError(control, message)
		}
	}
	ShowFormErrors(form, mapping.Form)

	return mapping
}

var (
	fieldMatcher   = dom.Any(dom.Tag("input"), dom.Tag("select"), dom.Tag("textarea"))
	controlMatcher = dom.All(fieldMatcher, dom.HasAttr("name"))
)

func controlNames(form dom.Element) map[string]struct{} {
	names := make(map[string]struct{})
	for _, control := range form.QueryAll(controlMatcher) {
		if name := strings.TrimSpace(control.Name()); name != "" {
			names[name] = struct{}{}
		}
	}
	return names
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}

	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))
	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}

	if len(out) == 0 {
		return nil
	}
	return out
}

// mapErrorPath resolves raw to a control name. The full dotted path is tried
// first (names like "items.0.title" are legal), then the path without wrapper
// or index segments, then its last segment.
func mapErrorPath(raw string, names map[string]struct{}) (string, bool) {
	trimmed := strings.TrimSpace(raw)
	if isFormLevelKey(trimmed) {
		return "", true
	}
	if _, ok := names[trimmed]; ok {
		return trimmed, false
	}

	segments := parsePathSegments(trimmed)
	if len(segments) == 0 {
		return "", true
	}

	for _, variant := range [][]string{
		segments,
		dropWrapperSegments(segments),
		stripNumericSegments(dropWrapperSegments(segments)),
	} {
		if len(variant) == 0 {
			continue
		}
		if _, ok := names[strings.Join(variant, ".")]; ok {
			return strings.Join(variant, "."), false
		}
		if last := variant[len(variant)-1]; last != "" {
			if _, ok := names[last]; ok {
				return last, false
			}
		}
	}
	return "", true
}

func parsePathSegments(path string) []string {
	clean := strings.TrimSpace(path)
	for _, prefix := range []string{"#/", "$/", "$."} {
		clean = strings.TrimPrefix(clean, prefix)
	}
	clean = strings.NewReplacer("[", ".", "]", "").Replace(clean)
	clean = strings.Trim(clean, "#$./")
	if clean == "" {
		return nil
	}

	parts := strings.FieldsFunc(clean, func(r rune) bool {
		return r == '.' || r == '/'
	})
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		segment := strings.TrimSpace(part)
		if segment == "" {
			continue
		}
		segment = strings.ReplaceAll(segment, "~1", "/")
		segment = strings.ReplaceAll(segment, "~0", "~")
		out = append(out, segment)
	}
	return out
}

func dropWrapperSegments(segments []string) []string {
	out := segments
	for len(out) > 0 {
		switch strings.ToLower(out[0]) {
		case "body", "request", "payload", "data", "attributes", "errors", "fields":
			out = out[1:]
			continue
		}
		break
	}
	return out
}

func stripNumericSegments(segments []string) []string {
	out := make([]string, 0, len(segments))
	for _, segment := range segments {
		if _, err := strconv.Atoi(segment); err == nil {
			continue
		}
		out = append(out, segment)
	}
	return out
}

func isFormLevelKey(key string) bool {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "", ".", "/", "#", "$", "form", "__all__", "non_field_errors", "non-field-errors", "detail":
		return true
	default:
		return false
	}
}
