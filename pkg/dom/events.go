package dom

// EventType names a DOM event.
type EventType string

const (
	EventInput  EventType = "input"
	EventChange EventType = "change"
	EventSubmit EventType = "submit"
)

// Event is delivered to listeners registered on its target.
type Event struct {
	Type   EventType
	Target Element

	defaultPrevented bool
}

// PreventDefault cancels the default action (native submit for forms).
func (e *Event) PreventDefault() {
	e.defaultPrevented = true
}

// DefaultPrevented reports whether a listener cancelled the default action.
func (e *Event) DefaultPrevented() bool {
	return e.defaultPrevented
}

// Listener handles an event.
type Listener func(*Event)

type listener struct {
	typ     EventType
	fn      Listener
	removed bool
}

// AddEventListener registers fn for events of typ dispatched on target. The
// returned function removes the registration; calling it more than once is a
// no-op.
func (d *Document) AddEventListener(target Element, typ EventType, fn Listener) func() {
	if d == nil || target.node == nil || fn == nil {
		return func() {}
	}
	l := &listener{typ: typ, fn: fn}
	d.listeners[target.node] = append(d.listeners[target.node], l)

	return func() {
		if l.removed {
			return
		}
		l.removed = true
		registered := d.listeners[target.node]
		kept := registered[:0]
		for _, candidate := range registered {
			if candidate != l {
				kept = append(kept, candidate)
			}
		}
		if len(kept) == 0 {
			delete(d.listeners, target.node)
			return
		}
		d.listeners[target.node] = kept
	}
}

// ListenerCount reports how many listeners are registered on target.
func (d *Document) ListenerCount(target Element) int {
	if d == nil || target.node == nil {
		return 0
	}
	return len(d.listeners[target.node])
}

// Dispatch delivers an event of typ to the listeners registered on target, in
// registration order. Events do not bubble.
func (d *Document) Dispatch(target Element, typ EventType) *Event {
	evt := &Event{Type: typ, Target: target}
	if d == nil || target.node == nil {
		return evt
	}
	snapshot := append([]*listener(nil), d.listeners[target.node]...)
	for _, l := range snapshot {
		if l.removed || l.typ != typ {
			continue
		}
		l.fn(evt)
	}
	return evt
}

// Input sets the value of el and dispatches an input event, the way a
// keystroke would.
func (d *Document) Input(el Element, value string) *Event {
	el.SetValue(value)
	return d.Dispatch(el, EventInput)
}

// Change sets the value of el and dispatches a change event.
func (d *Document) Change(el Element, value string) *Event {
	el.SetValue(value)
	return d.Dispatch(el, EventChange)
}

// Submit dispatches a submit event on form. The native submit proceeds when
// the returned event is not DefaultPrevented.
func (d *Document) Submit(form Element) *Event {
	return d.Dispatch(form, EventSubmit)
}
