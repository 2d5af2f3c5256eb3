// Package hooks provides a registry for dispatcher lifecycle hooks.
//
// Hooks observe dispatches without influencing them: they cannot transform the
// payload or stop propagation. Each hook interface corresponds to a specific
// lifecycle point - implement only the interfaces you need.
//
// # Hook Interfaces
//
//   - [eventdispatcher.BeforeDispatchHook] - Called once before the first listener runs
//   - [eventdispatcher.AfterListenerHook] - Called after every listener invocation
//   - [eventdispatcher.AfterDispatchHook] - Called once with the final outcome
//
// # Creating a Hook
//
//	type CountingHook struct {
//	    stops int
//	}
//
//	func (h *CountingHook) OnAfterDispatch(e eventdispatcher.AfterDispatchEvent) {
//	    if e.Stopped != eventdispatcher.StopReasonNone {
//	        h.stops++
//	    }
//	}
//
//	// Compile-time check
//	var _ eventdispatcher.AfterDispatchHook = (*CountingHook)(nil)
//
// # Registering Hooks
//
//	registry := hooks.NewRegistry()
//	registry.Register(&CountingHook{})
//	d := dispatcher.New(dispatcher.Config{Hooks: registry})
//
// The loggers package ships ready-made hooks for zap, YAML dumps and Sentry.
package hooks
