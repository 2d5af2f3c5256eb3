package hooks

import (
	ed "github.com/rickchristie/eventdispatcher"
)

// Registry manages a collection of dispatch hooks and fires events to them.
//
// # Overview
//
// Registry is the coordination point between a Dispatcher and its observers. It:
//   - Stores registered hooks in order
//   - Fires lifecycle events to hooks that implement the relevant interface
//
// Hooks can implement any combination of hook interfaces - they only receive
// events for the interfaces they implement.
//
// # Creating and Using
//
//	registry := hooks.NewRegistry()
//	registry.Register(loggers.NewZapHook(logger))
//	registry.Register(&MetricsHook{})
//
//	d := dispatcher.New(dispatcher.Config{Hooks: registry})
//
// # Thread Safety
//
// Registry is NOT thread-safe. Register all hooks before dispatching.
// Fire methods should only be called by the Dispatcher.
type Registry struct {
	hooks []any
}

// NewRegistry creates a new empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		hooks: make([]any, 0),
	}
}

// Register adds a hook to the registry. The hook can implement any combination
// of BeforeDispatchHook, AfterListenerHook and AfterDispatchHook.
//
// Hooks are called in the order they are registered.
func (r *Registry) Register(hook any) *Registry {
	r.hooks = append(r.hooks, hook)
	return r
}

// FireBeforeDispatch dispatches a BeforeDispatchEvent to all registered
// BeforeDispatchHook implementations.
func (r *Registry) FireBeforeDispatch(event ed.BeforeDispatchEvent) {
	if r == nil {
		return
	}
	for _, h := range r.hooks {
		if hook, ok := h.(ed.BeforeDispatchHook); ok {
			hook.OnBeforeDispatch(event)
		}
	}
}

// FireAfterListener dispatches an AfterListenerEvent to all registered
// AfterListenerHook implementations.
func (r *Registry) FireAfterListener(event ed.AfterListenerEvent) {
	if r == nil {
		return
	}
	for _, h := range r.hooks {
		if hook, ok := h.(ed.AfterListenerHook); ok {
			hook.OnAfterListener(event)
		}
	}
}

// FireAfterDispatch dispatches an AfterDispatchEvent to all registered
// AfterDispatchHook implementations.
func (r *Registry) FireAfterDispatch(event ed.AfterDispatchEvent) {
	if r == nil {
		return
	}
	for _, h := range r.hooks {
		if hook, ok := h.(ed.AfterDispatchHook); ok {
			hook.OnAfterDispatch(event)
		}
	}
}

// Len returns the number of registered hooks.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.hooks)
}

// Clear removes all registered hooks.
func (r *Registry) Clear() {
	r.hooks = make([]any, 0)
}
