package eventdispatcher

import "time"

// ListenerKind describes how a listener entry is invoked.
type ListenerKind string

const (
	// ListenerKindInvocable is a function or Invoker whose result can
	// transform the payload or stop propagation.
	ListenerKindInvocable ListenerKind = "invocable"

	// ListenerKindHandler is a Handler; its result is ignored.
	ListenerKindHandler ListenerKind = "handler"

	// ListenerKindMethod is a subscriber method bound by Subscribe.
	ListenerKindMethod ListenerKind = "method"

	// ListenerKindDeferred is an identifier resolved at invocation time.
	ListenerKindDeferred ListenerKind = "deferred"

	// ListenerKindInvalid is a listener that cannot be invoked.
	ListenerKindInvalid ListenerKind = "invalid"
)

// StopReason explains why a dispatch ended before running every listener.
type StopReason string

const (
	// StopReasonNone means every listener ran (or the dispatch failed).
	StopReasonNone StopReason = ""

	// StopReasonResult means a listener returned [Stop].
	StopReasonResult StopReason = "result"

	// StopReasonFlag means the payload reported IsPropagationStopped.
	StopReasonFlag StopReason = "flag"
)

// BeforeDispatchEvent is emitted before the first listener runs.
type BeforeDispatchEvent struct {
	// EventName is the resolved event name.
	EventName string

	// Payload is the initial payload.
	Payload any

	// Listeners is the number of listeners that will be considered.
	Listeners int

	// Depth is the nesting level of this dispatch (1 for a top-level call).
	Depth int
}

// AfterListenerEvent is emitted after each listener invocation.
type AfterListenerEvent struct {
	EventName string

	// Index is the position of the listener in the sorted list.
	Index int

	// Kind is how the listener was invoked.
	Kind ListenerKind

	// Payload is the payload after this listener ran.
	Payload any

	// Stopped is set when this listener ended propagation.
	Stopped StopReason

	// Duration is how long the listener took.
	Duration time.Duration

	// Error is the listener error, if any.
	Error error

	Depth int
}

// AfterDispatchEvent is emitted once the dispatch returns.
type AfterDispatchEvent struct {
	EventName string

	// Result is the payload returned to the caller.
	Result any

	// Invoked is how many listeners actually ran.
	Invoked int

	// Stopped tells whether and how propagation was halted early.
	Stopped StopReason

	// Duration is the wall time of the whole dispatch.
	Duration time.Duration

	// Error is the error returned to the caller, if any.
	Error error

	Depth int
}
