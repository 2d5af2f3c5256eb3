package eventdispatcher

import (
	"maps"
	"reflect"
)

// Named is implemented by values that carry their own event name. Dispatching a
// Named value uses Name() as the event name and the value itself as the payload.
//
// A Named value that reports an empty name is dispatched under its type name
// (see [TypeName]). This lets custom event types embed [Event] without having to
// repeat their own name.
type Named interface {
	Name() string
}

// PropagationStopper is implemented by payloads that can halt a dispatch from
// inside a listener. The dispatcher checks it after every listener invocation.
type PropagationStopper interface {
	IsPropagationStopped() bool
}

// Event is the default event implementation: an immutable name, a mutable
// key/value payload and a propagation-stop flag.
//
// # Creating Events
//
//	event := eventdispatcher.NewEvent("user.created", map[string]any{
//	    "id": 42,
//	})
//	result, err := d.Dispatch(event, nil)
//
// # Custom Events
//
// Embed Event to get data access and propagation control for free:
//
//	type OrderPlaced struct {
//	    eventdispatcher.Event
//	    OrderID string
//	}
//
//	// Dispatched as "shop.OrderPlaced" because the embedded name is empty.
//	d.Dispatch(&OrderPlaced{OrderID: "A-1"}, nil)
//
// Event is NOT thread-safe. It is meant to live for the duration of a single
// dispatch.
type Event struct {
	name    string
	data    map[string]any
	stopped bool
}

// NewEvent creates an Event with the given name and initial data. The data map
// is copied. An empty name defaults to the type name of Event itself.
func NewEvent(name string, data map[string]any) *Event {
	e := &Event{
		name: name,
		data: make(map[string]any, len(data)),
	}
	if e.name == "" {
		e.name = TypeName(e)
	}
	maps.Copy(e.data, data)
	return e
}

// Name returns the event name.
func (e *Event) Name() string {
	return e.name
}

// Data returns a copy of the whole data mapping.
func (e *Event) Data() map[string]any {
	return maps.Clone(e.dataMap())
}

// Get returns the value stored under key, or nil if it is absent.
func (e *Event) Get(key string) any {
	return e.GetOr(key, nil)
}

// GetOr returns the value stored under key, or def if the key is absent or
// holds nil.
func (e *Event) GetOr(key string, def any) any {
	if v, ok := e.data[key]; ok && v != nil {
		return v
	}
	return def
}

// Set stores value under key, overwriting any previous value.
func (e *Event) Set(key string, value any) *Event {
	e.dataMap()[key] = value
	return e
}

// Has reports whether key is present with a non-nil value.
func (e *Event) Has(key string) bool {
	v, ok := e.data[key]
	return ok && v != nil
}

// StopPropagation prevents listeners after the current one from running.
// Calling it more than once has no further effect.
func (e *Event) StopPropagation() *Event {
	e.stopped = true
	return e
}

// IsPropagationStopped reports whether StopPropagation has been called.
func (e *Event) IsPropagationStopped() bool {
	return e.stopped
}

// dataMap lazily allocates the map so a zero Event (e.g. embedded) is usable.
func (e *Event) dataMap() map[string]any {
	if e.data == nil {
		e.data = make(map[string]any)
	}
	return e.data
}

// TypeName returns the package-qualified type name of v with pointer
// indirections removed, e.g. "eventdispatcher.Event" for *Event. It is the
// event name used when dispatching values that do not carry a name.
func TypeName(v any) string {
	if v == nil {
		return "<nil>"
	}
	t := reflect.TypeOf(v)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.String()
}
