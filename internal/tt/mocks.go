// Package tt provides test helpers for the eventdispatcher packages.
package tt

import (
	ed "github.com/rickchristie/eventdispatcher"
)

// -----------------------------------------------------------------------------
// Recorder - builds listeners that record their invocation order
// -----------------------------------------------------------------------------

// Recorder hands out listeners that append their name to a shared call log.
type Recorder struct {
	calls    []string
	payloads []any
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Listener returns an invocable listener that records name and returns result.
func (r *Recorder) Listener(name string, result any) ed.ListenerFunc {
	return func(payload any) (any, error) {
		r.record(name, payload)
		return result, nil
	}
}

// Failing returns an invocable listener that records name and returns err.
func (r *Recorder) Failing(name string, err error) ed.ListenerFunc {
	return func(payload any) (any, error) {
		r.record(name, payload)
		return nil, err
	}
}

// Handler returns a Handler that records name. When stop is set and the
// payload is an *ed.Event, the handler stops propagation.
func (r *Recorder) Handler(name string, stop bool) *MockHandler {
	return &MockHandler{name: name, stop: stop, recorder: r}
}

// Calls returns the recorded listener names in invocation order.
func (r *Recorder) Calls() []string {
	return r.calls
}

// Payloads returns the payload each recorded listener received.
func (r *Recorder) Payloads() []any {
	return r.payloads
}

func (r *Recorder) record(name string, payload any) {
	r.calls = append(r.calls, name)
	r.payloads = append(r.payloads, payload)
}

// MockHandler is a Handler that records its calls. Its identity is its
// pointer, so it can be removed with Forget.
type MockHandler struct {
	name     string
	stop     bool
	recorder *Recorder
	Result   error
}

// Handle implements ed.Handler.
func (h *MockHandler) Handle(payload any) error {
	h.recorder.record(h.name, payload)
	if e, ok := payload.(*ed.Event); ok && h.stop {
		e.StopPropagation()
	}
	return h.Result
}

// -----------------------------------------------------------------------------
// HookRecorder - captures dispatch lifecycle events
// -----------------------------------------------------------------------------

// HookRecorder implements every hook interface and keeps the events it sees.
type HookRecorder struct {
	Before    []ed.BeforeDispatchEvent
	Listeners []ed.AfterListenerEvent
	After     []ed.AfterDispatchEvent
}

var (
	_ ed.BeforeDispatchHook = (*HookRecorder)(nil)
	_ ed.AfterListenerHook  = (*HookRecorder)(nil)
	_ ed.AfterDispatchHook  = (*HookRecorder)(nil)
)

// OnBeforeDispatch implements ed.BeforeDispatchHook.
func (h *HookRecorder) OnBeforeDispatch(e ed.BeforeDispatchEvent) {
	h.Before = append(h.Before, e)
}

// OnAfterListener implements ed.AfterListenerHook.
func (h *HookRecorder) OnAfterListener(e ed.AfterListenerEvent) {
	h.Listeners = append(h.Listeners, e)
}

// OnAfterDispatch implements ed.AfterDispatchHook.
func (h *HookRecorder) OnAfterDispatch(e ed.AfterDispatchEvent) {
	h.After = append(h.After, e)
}
