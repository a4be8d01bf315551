package page

import "strings"

// Event types
const (
	EventClick   = "click"
	EventKeyDown = "keydown"
	EventScroll  = "scroll"
	EventLoad    = "load"
	EventError   = "error"
)

// Event is a user or resource event delivered to handlers
type Event struct {
	Type string
	// Target is the id of the element the event happened on
	Target string
	// Ancestors lists the ids enclosing Target, innermost first
	Ancestors []string
	Key       string
	// InLink is set when the event originated inside a nested link
	InLink bool

	defaultPrevented bool
}

// Within reports whether id is the target or one of its ancestors
func (e *Event) Within(id string) bool {
	if e.Target == id {
		return true
	}
	for _, a := range e.Ancestors {
		if a == id {
			return true
		}
	}
	return false
}

// Closest returns the innermost id on the event path that starts with prefix
func (e *Event) Closest(prefix string) (string, bool) {
	if strings.HasPrefix(e.Target, prefix) {
		return e.Target, true
	}
	for _, a := range e.Ancestors {
		if strings.HasPrefix(a, prefix) {
			return a, true
		}
	}
	return "", false
}

// PreventDefault marks the event's default action as cancelled
func (e *Event) PreventDefault() { e.defaultPrevented = true }

// DefaultPrevented reports whether a handler cancelled the default action
func (e *Event) DefaultPrevented() bool { return e.defaultPrevented }

// Handler reacts to an event
type Handler func(*Event)

type binding struct {
	target  string
	handler Handler
}

// Dispatcher routes events to registered handlers. Handlers bound to an
// element run when the event is within it; handlers bound to "" always run.
type Dispatcher struct {
	bindings map[string][]binding
}

// NewDispatcher creates an empty dispatcher
func NewDispatcher() *Dispatcher {
	return &Dispatcher{bindings: make(map[string][]binding)}
}

// On registers a document-level handler
func (d *Dispatcher) On(eventType string, handler Handler) {
	d.OnElement("", eventType, handler)
}

// OnElement registers a handler for events within the element with id target
func (d *Dispatcher) OnElement(target, eventType string, handler Handler) {
	d.bindings[eventType] = append(d.bindings[eventType], binding{target: target, handler: handler})
}

// Dispatch delivers ev to matching handlers in registration order,
// element handlers before document handlers
func (d *Dispatcher) Dispatch(ev *Event) {
	bindings := d.bindings[ev.Type]
	for _, b := range bindings {
		if b.target != "" && ev.Within(b.target) {
			b.handler(ev)
		}
	}
	for _, b := range bindings {
		if b.target == "" {
			b.handler(ev)
		}
	}
}

// Click dispatches a click on target
func (d *Dispatcher) Click(target string, ancestors ...string) *Event {
	ev := &Event{Type: EventClick, Target: target, Ancestors: ancestors}
	d.Dispatch(ev)
	return ev
}

// KeyDown dispatches a key press on target
func (d *Dispatcher) KeyDown(target, key string) *Event {
	ev := &Event{Type: EventKeyDown, Target: target, Key: key}
	d.Dispatch(ev)
	return ev
}

// Scroll dispatches a scroll event
func (d *Dispatcher) Scroll() {
	d.Dispatch(&Event{Type: EventScroll})
}
