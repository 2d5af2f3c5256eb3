package eventdispatcher

import (
	"slices"
)

// Subscriber declares a batch of its own methods as listeners across one or more
// event names.
//
// # Example
//
//	type UserSubscriber struct {
//	    mailer *Mailer
//	}
//
//	func (s *UserSubscriber) SubscribedEvents() eventdispatcher.Subscriptions {
//	    return eventdispatcher.Subscriptions{
//	        "user.created": eventdispatcher.Method("OnCreated"),
//	        "user.updated": eventdispatcher.MethodSpec{Method: "OnUpdated", Priority: 10},
//	        "user.deleted": eventdispatcher.Methods{
//	            eventdispatcher.MethodSpec{Method: "OnDeleted", Priority: 5},
//	            eventdispatcher.Method("LogDeletion"),
//	        },
//	    }
//	}
//
//	func (s *UserSubscriber) OnCreated(payload any) (any, error) { ... }
//
// Methods named in the declaration must be exported and take a single payload
// argument. They are looked up when the event is dispatched, not when the
// subscriber is registered.
type Subscriber interface {
	SubscribedEvents() Subscriptions
}

// Subscriptions maps event names to the methods that listen to them.
type Subscriptions map[string]Declaration

// Declaration is one of [Method], [MethodSpec] or [Methods].
type Declaration interface {
	specs() []MethodSpec
}

// Method names a single listener method registered at priority 0.
type Method string

func (m Method) specs() []MethodSpec {
	if m == "" {
		return nil
	}
	return []MethodSpec{{Method: string(m)}}
}

// MethodSpec names a listener method with an explicit priority. A spec without
// a method name is skipped.
type MethodSpec struct {
	Method   string
	Priority int
}

func (m MethodSpec) specs() []MethodSpec {
	if m.Method == "" {
		return nil
	}
	return []MethodSpec{m}
}

// Methods registers several methods against one event name, in order. Elements
// other than Method and MethodSpec, and entries without a method name, are
// skipped.
type Methods []Declaration

func (ms Methods) specs() []MethodSpec {
	out := make([]MethodSpec, 0, len(ms))
	for _, d := range ms {
		switch v := d.(type) {
		case Method, MethodSpec:
			out = append(out, v.specs()...)
		}
	}
	return out
}

// Binding is a normalized subscriber declaration entry.
type Binding struct {
	EventName string
	Method    string
	Priority  int
}

// Expand flattens subscriptions into bindings. Event names are visited in
// sorted order so registration is deterministic; the order of a Methods
// sequence is preserved. Nil declarations are skipped.
func Expand(subs Subscriptions) []Binding {
	names := make([]string, 0, len(subs))
	for name := range subs {
		names = append(names, name)
	}
	slices.Sort(names)

	var bindings []Binding
	for _, name := range names {
		decl := subs[name]
		if decl == nil {
			continue
		}
		for _, spec := range decl.specs() {
			bindings = append(bindings, Binding{
				EventName: name,
				Method:    spec.Method,
				Priority:  spec.Priority,
			})
		}
	}
	return bindings
}

// MethodListener is the listener entry created for a subscriber method. Target
// is the subscriber instance and Method the exported method name, resolved by
// reflection when the listener runs.
//
// MethodListener is comparable when Target is, so it can be passed to Forget:
//
//	d.Forget("user.created", eventdispatcher.MethodListener{Target: sub, Method: "OnCreated"})
type MethodListener struct {
	Target any
	Method string
}
