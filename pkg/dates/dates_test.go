package dates_test

import (
	"testing"
	"time"

	"github.com/goliatone/go-formkit/pkg/dates"
	"github.com/goliatone/go-formkit/pkg/dom"
)

const eventForm = `<form id="event">
  <input type="date" name="start_date">
  <input type="date" name="end_date" value="2026-10-20">
  <input type="date" name="deadline" class="future-only">
  <input type="date" name="birthday">
  <input type="text" name="start_note">
</form>
<form id="partial"><input type="date" name="end_date"></form>`

func TestToday(t *testing.T) {
	now := time.Date(2026, 10, 19, 1, 30, 0, 0, time.UTC)
	if got := dates.Today(now, nil); got != "2026-10-19" {
		t.Fatalf("expected UTC date, got %q", got)
	}
	saoPaulo := time.FixedZone("BRT", -3*60*60)
	if got := dates.Today(now, saoPaulo); got != "2026-10-18" {
		t.Fatalf("expected local date, got %q", got)
	}
}

func TestApplyFutureOnly(t *testing.T) {
	doc := dom.MustParseString(eventForm)

	if got := dates.ApplyFutureOnly(doc, "2026-10-18"); got != 2 {
		t.Fatalf("expected 2 inputs bounded, got %d", got)
	}
	for name, want := range map[string]string{
		"start_date": "2026-10-18",
		"deadline":   "2026-10-18",
		"birthday":   "",
		"start_note": "",
	} {
		el, _ := doc.Query(dom.Name(name))
		if got := el.AttrOr("min", ""); got != want {
			t.Fatalf("%s: expected min %q, got %q", name, want, got)
		}
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		start, end, want string
	}{
		{start: "2026-10-21", end: "2026-10-20", want: "2026-10-21"},
		{start: "2026-10-19", end: "2026-10-20", want: "2026-10-20"},
		{start: "2026-10-20", end: "", want: ""},
		{start: "", end: "2026-10-20", want: "2026-10-20"},
	}
	for _, tt := range tests {
		if got := dates.Clamp(tt.start, tt.end); got != tt.want {
			t.Fatalf("Clamp(%q, %q): expected %q, got %q", tt.start, tt.end, tt.want, got)
		}
	}
}

func TestBindRangesSynchronisesEndDate(t *testing.T) {
	doc := dom.MustParseString(eventForm)

	disposers := dates.BindRanges(doc)
	if len(disposers) != 1 {
		t.Fatalf("expected only the complete form to be bound, got %d", len(disposers))
	}

	start, _ := doc.Query(dom.Name("start_date"))
	end, _ := doc.Query(dom.Name("end_date"))

	doc.Change(start, "2026-10-19")
	if got := end.AttrOr("min", ""); got != "2026-10-19" {
		t.Fatalf("expected end min to follow start, got %q", got)
	}
	if got := end.Value(); got != "2026-10-20" {
		t.Fatalf("expected later end date to be kept, got %q", got)
	}

	doc.Change(start, "2026-10-25")
	if got := end.Value(); got != "2026-10-25" {
		t.Fatalf("expected end date to be clamped, got %q", got)
	}

	doc.Change(start, "")
	if end.HasAttr("min") {
		t.Fatal("expected min to be removed for an empty start")
	}

	disposers[0]()
	doc.Change(start, "2026-11-01")
	if got := end.Value(); got != "2026-10-25" {
		t.Fatalf("expected no sync after dispose, got %q", got)
	}
}
