// Package visibility reveals card-like elements the first time they scroll
// into view. The platform intersection primitive is replaced by Entries the
// host pushes into a Tracker, so the pending→revealed transition can be driven
// and asserted without a rendering engine.
package visibility

import (
	"github.com/goliatone/go-formkit/pkg/dom"
)

const (
	// DefaultThreshold is the visible fraction required to reveal an element.
	DefaultThreshold = 0.1
	// RevealClass is added once an element is revealed; a CSS transition on it
	// performs the fade.
	RevealClass = "fade-in"
)

// Cards matches .card, .menu-card and .event-card.
var Cards = dom.Any(dom.Class("card"), dom.Class("menu-card"), dom.Class("event-card"))

// State is the lifecycle of an observed element.
type State int

const (
	Pending State = iota + 1
	Revealed
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Revealed:
		return "revealed"
	default:
		return "unknown"
	}
}

// Entry reports how much of an element is visible, as a fraction in [0, 1].
type Entry struct {
	Target dom.Element
	Ratio  float64
}

// Tracker holds the per-element reveal state. It is not safe for concurrent
// use.
type Tracker struct {
	threshold float64
	states    map[dom.Element]State
	order     []dom.Element
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithThreshold overrides DefaultThreshold. Values outside [0, 1] are ignored.
func WithThreshold(threshold float64) Option {
	return func(t *Tracker) {
		if threshold >= 0 && threshold <= 1 {
			t.threshold = threshold
		}
	}
}

// NewTracker returns an empty tracker.
func NewTracker(opts ...Option) *Tracker {
	t := &Tracker{
		threshold: DefaultThreshold,
		states:    make(map[dom.Element]State),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(t)
		}
	}
	return t
}

// Threshold returns the configured threshold.
func (t *Tracker) Threshold() float64 {
	return t.threshold
}

// Observe hides el (opacity 0) and registers it as pending. Elements already
// known to the tracker are left alone.
func (t *Tracker) Observe(el dom.Element) {
	if el.IsZero() {
		return
	}
	if _, known := t.states[el]; known {
		return
	}
	el.SetStyle("opacity", "0")
	t.states[el] = Pending
	t.order = append(t.order, el)
}

// Unobserve stops watching el without revealing it.
func (t *Tracker) Unobserve(el dom.Element) {
	if t.states[el] != Pending {
		return
	}
	delete(t.states, el)
	t.dropFromOrder(el)
}

// Notify applies intersection entries. A pending element whose ratio reaches
// the threshold gains RevealClass and is no longer watched; entries for other
// elements are ignored. It returns the elements revealed by this call.
func (t *Tracker) Notify(entries ...Entry) []dom.Element {
	var revealed []dom.Element
	for _, entry := range entries {
		if t.states[entry.Target] != Pending || !t.intersecting(entry.Ratio) {
			continue
		}
		entry.Target.AddClass(RevealClass)
		t.states[entry.Target] = Revealed
		t.dropFromOrder(entry.Target)
		revealed = append(revealed, entry.Target)
	}
	return revealed
}

func (t *Tracker) intersecting(ratio float64) bool {
	return ratio > 0 && ratio >= t.threshold
}

// State returns the state of el. Elements never observed report false.
func (t *Tracker) State(el dom.Element) (State, bool) {
	state, ok := t.states[el]
	return state, ok
}

// Pending returns the elements still watched, in observation order.
func (t *Tracker) Pending() []dom.Element {
	if len(t.order) == 0 {
		return nil
	}
	return append([]dom.Element(nil), t.order...)
}

// Disconnect stops watching every pending element. Revealed state is kept.
func (t *Tracker) Disconnect() {
	for _, el := range t.order {
		delete(t.states, el)
	}
	t.order = nil
}

func (t *Tracker) dropFromOrder(el dom.Element) {
	for i, candidate := range t.order {
		if candidate == el {
			t.order = append(t.order[:i], t.order[i+1:]...)
			return
		}
	}
}

// Bind observes every card-like element in doc and returns the number of
// elements registered.
func Bind(doc *dom.Document, t *Tracker) int {
	if doc == nil || t == nil {
		return 0
	}
	cards := doc.QueryAll(Cards)
	for _, card := range cards {
		t.Observe(card)
	}
	return len(cards)
}
