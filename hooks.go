package eventdispatcher

// -----------------------------------------------------------------------------
// Dispatch Hook Interfaces
// -----------------------------------------------------------------------------
//
// Hooks observe the dispatcher without taking part in propagation. To use hooks:
//
//  1. Implement the desired hook interface(s)
//  2. Register with hooks.Registry
//  3. Pass the registry to dispatcher.Config
//
// Example:
//
//	type TimingHook struct {
//	    logger *zap.Logger
//	}
//
//	func (h *TimingHook) OnAfterDispatch(e AfterDispatchEvent) {
//	    h.logger.Info("dispatched", zap.String("event", e.EventName), zap.Duration("took", e.Duration))
//	}
//
//	registry := hooks.NewRegistry()
//	registry.Register(&TimingHook{logger: logger})
//	d := dispatcher.New(dispatcher.Config{Hooks: registry})
//
// # Hook Execution Order
//
// Hooks are called in registration order. AfterDispatch is always called if
// BeforeDispatch was called, even when a listener fails.
//
// # Error Handling
//
// Hooks do not return errors and cannot change the dispatch outcome. A panic in
// a hook propagates to the Dispatch caller.
// -----------------------------------------------------------------------------

// BeforeDispatchHook is notified once per Dispatch call, after the event name
// and listeners are resolved and before any listener runs. It is also called
// for dispatches with zero listeners.
type BeforeDispatchHook interface {
	OnBeforeDispatch(event BeforeDispatchEvent)
}

// AfterListenerHook is notified after every listener invocation, including the
// one that stopped propagation or failed.
type AfterListenerHook interface {
	OnAfterListener(event AfterListenerEvent)
}

// AfterDispatchHook is notified once per Dispatch call with the final outcome.
type AfterDispatchHook interface {
	OnAfterDispatch(event AfterDispatchEvent)
}
