// Package dates applies bounds to HTML date inputs: future-only fields get
// today's date as their minimum and paired start/end fields keep the end date
// from preceding the start date.
package dates

import (
	"strings"
	"time"

	"github.com/goliatone/go-formkit/pkg/dom"
)

// ISODate is the layout used by <input type="date"> values.
const ISODate = "2006-01-02"

const (
	StartDateName = "start_date"
	EndDateName   = "end_date"
)

// FutureOnlyInputs matches date inputs flagged with the future-only class or
// whose name contains "start".
var FutureOnlyInputs = dom.All(
	dom.Input("date"),
	dom.Any(dom.Class("future-only"), dom.NameContains("start")),
)

// Today formats now in loc as an ISO date. A nil loc means UTC.
func Today(now time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return now.In(loc).Format(ISODate)
}

// ApplyFutureOnly sets min=today on every future-only date input. The bound is
// evaluated once and not refreshed afterwards.
func ApplyFutureOnly(doc *dom.Document, today string) int {
	if doc == nil || strings.TrimSpace(today) == "" {
		return 0
	}
	inputs := doc.QueryAll(FutureOnlyInputs)
	for _, input := range inputs {
		input.SetAttr("min", today)
	}
	return len(inputs)
}

// Clamp returns the end value after a start change: an end date earlier than
// start is moved forward to start. Empty values are left untouched. ISO dates
// compare chronologically as strings.
func Clamp(start, end string) string {
	if start == "" || end == "" {
		return end
	}
	if end < start {
		return start
	}
	return end
}

// Sync copies the start value into the end minimum and clamps the end value.
// An empty start removes the minimum.
func Sync(start, end dom.Element) {
	value := start.Value()
	if value == "" {
		end.RemoveAttr("min")
	} else {
		end.SetAttr("min", value)
	}
	if clamped := Clamp(value, end.Value()); clamped != end.Value() {
		end.SetValue(clamped)
	}
}

// BindRanges pairs start_date/end_date inputs inside every form currently in
// doc. Forms added later are not covered.
func BindRanges(doc *dom.Document) []func() {
	if doc == nil {
		return nil
	}

	var disposers []func()
	for _, form := range doc.Forms() {
		start, okStart := form.Query(dom.All(dom.Tag("input"), dom.Name(StartDateName)))
		end, okEnd := form.Query(dom.All(dom.Tag("input"), dom.Name(EndDateName)))
		if !okStart || !okEnd {
			continue
		}
		disposers = append(disposers, doc.AddEventListener(start, dom.EventChange, func(*dom.Event) {
			Sync(start, end)
		}))
	}
	return disposers
}
