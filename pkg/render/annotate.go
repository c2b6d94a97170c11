package render

import (
	"strings"

	"github.com/goliatone/go-formkit/pkg/dom"
)

const (
	// ErrorClass marks a field that failed validation.
	ErrorClass = "error"
	// ErrorNodeClass marks the node carrying an inline error message.
	ErrorNodeClass = "form-error"
	// FormLevelClass marks error nodes not tied to a single field.
	FormLevelClass = "form-level"
)

// ClearErrors removes every error node inside form and drops the error class
// from its input, select and textarea controls. Other markup keeps its
// classes. It returns the number of nodes removed.
func ClearErrors(form dom.Element) int {
	nodes := form.QueryAll(dom.Class(ErrorNodeClass))
	for _, node := range nodes {
		node.Remove()
	}
	for _, field := range form.QueryAll(dom.All(fieldMatcher, dom.Class(ErrorClass))) {
		field.RemoveClass(ErrorClass)
	}
	return len(nodes)
}

// ShowFieldError marks field as failing and appends an error node holding
// message to the field's parent. Repeated calls append further nodes.
func ShowFieldError(field dom.Element, message string) dom.Element {
	field.AddClass(ErrorClass)

	doc := field.Document()
	if doc == nil {
		return dom.Element{}
	}
	node := doc.CreateElement("div")
	node.AddClass(ErrorNodeClass)
	node.SetText(message)

	if parent, ok := field.Parent(); ok {
		parent.AppendChild(node)
	}
	return node
}

// ShowFormErrors prepends a single node listing form-level messages.
func ShowFormErrors(form dom.Element, messages []string) dom.Element {
	messages = normalizeMessages(messages)
	doc := form.Document()
	if len(messages) == 0 || doc == nil {
		return dom.Element{}
	}
	node := doc.CreateElement("div")
	node.AddClass(ErrorNodeClass)
	node.AddClass(FormLevelClass)
	node.SetText(strings.Join(messages, " "))
	form.PrependChild(node)
	return node
}

// FirstErrored returns the first control in document order carrying the error
// class.
func FirstErrored(form dom.Element) (dom.Element, bool) {
	return form.Query(dom.All(fieldMatcher, dom.Class(ErrorClass)))
}

// RevealFirstError scrolls the first errored field into centered view and
// focuses it. It reports whether a field was found.
func RevealFirstError(form dom.Element) bool {
	field, ok := FirstErrored(form)
	if !ok {
		return false
	}
	field.ScrollIntoView(dom.ScrollOptions{Behavior: "smooth", Block: "center"})
	field.Focus()
	return true
}
