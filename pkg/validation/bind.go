package validation

import (
	"github.com/goliatone/go-formkit/pkg/dom"
	"github.com/goliatone/go-formkit/pkg/render"
)

// ValidatedForms matches forms opted in with the data-validate attribute.
var ValidatedForms = dom.All(dom.Tag("form"), dom.HasAttr("data-validate"))

// Bind attaches v to the submit event of every opted-in form in doc.
func Bind(doc *dom.Document, v *Validator) []func() {
	if doc == nil || v == nil {
		return nil
	}

	var disposers []func()
	for _, form := range doc.QueryAll(ValidatedForms) {
		disposers = append(disposers, doc.AddEventListener(form, dom.EventSubmit, func(evt *dom.Event) {
			v.HandleSubmit(evt)
		}))
	}
	return disposers
}

// HandleSubmit clears the previous annotations, validates the submitted form
// and renders every issue. An invalid form has its submit cancelled and the
// first errored field scrolled into view and focused; a valid one is left
// untouched so the native submit proceeds.
func (v *Validator) HandleSubmit(evt *dom.Event) Result {
	form := evt.Target
	render.ClearErrors(form)

	result := v.Validate(form)
	for _, issue := range result.Issues {
		render.ShowFieldError(issue.Field, issue.Message)
	}

	if !result.Valid {
		evt.PreventDefault()
		render.RevealFirstError(form)
	}

	for _, report := range v.reporters {
		report(form, result)
	}
	return result
}
