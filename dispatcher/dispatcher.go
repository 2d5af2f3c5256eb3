package dispatcher

import (
	"fmt"
	"reflect"
	"slices"
	"time"

	ed "github.com/rickchristie/eventdispatcher"
	"github.com/rickchristie/eventdispatcher/hooks"
	"go.uber.org/zap"
)

// Config holds configuration options for the Dispatcher.
type Config struct {
	// Resolver turns deferred identifiers (string listeners and subscribers)
	// into instances. Defaults to an empty Container.
	Resolver ed.Resolver

	// Hooks receives dispatch lifecycle events. Optional.
	Hooks *hooks.Registry

	// Logger receives Debug logs for registrations and propagation decisions.
	// Defaults to zap.NewNop().
	Logger *zap.Logger

	// MaxRecursion bounds nested dispatches. Zero or a negative value means
	// no limit.
	MaxRecursion int
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Resolver: ed.NewContainer(),
		Logger:   zap.NewNop(),
	}
}

// Dispatcher keeps a registry of listeners keyed by event name and priority, and
// runs them in descending priority order when an event is dispatched.
//
// # Overview
//
// The Dispatcher is responsible for:
//   - Storing listeners per event name and priority, preserving insertion order
//   - Caching the flattened, priority-sorted listener list per event name
//   - Expanding subscribers into individual method listeners
//   - Threading a payload through listeners and honoring stop signals
//
// # Listener Shapes
//
// Listen accepts any value; the shape is checked when the listener runs:
//   - [ed.Handler]: result ignored, propagation only via the payload's flag
//   - [ed.Invoker], [ed.ListenerFunc] and single-argument funcs: the result
//     replaces the payload unless it is nil or [ed.Stop]
//   - string: a deferred identifier resolved through the Resolver on every call
//   - [ed.MethodListener]: a subscriber method, registered by Subscribe
//
// # Propagation
//
// A dispatch stops early when an invocable listener returns [ed.Stop], or when
// the current payload implements [ed.PropagationStopper] and reports stopped.
// A listener error aborts the chain and is returned as-is.
//
// # Thread Safety
//
// Dispatcher is NOT thread-safe. Nested dispatches from inside listeners are
// supported: each Dispatch call iterates over its own snapshot of the listener
// list, so registrations made during a dispatch only affect later dispatches.
type Dispatcher struct {
	listeners map[string]map[int][]any
	sorted    map[string][]any
	events    []string

	resolver     ed.Resolver
	hooks        *hooks.Registry
	logger       *zap.Logger
	maxRecursion int
	depth        int
}

// New creates a new Dispatcher with the given configuration.
func New(cfg Config) *Dispatcher {
	d := &Dispatcher{
		listeners:    make(map[string]map[int][]any),
		sorted:       make(map[string][]any),
		events:       make([]string, 0),
		resolver:     cfg.Resolver,
		hooks:        cfg.Hooks,
		logger:       cfg.Logger,
		maxRecursion: cfg.MaxRecursion,
	}
	if d.resolver == nil {
		d.resolver = ed.NewContainer()
	}
	if d.hooks == nil {
		d.hooks = hooks.NewRegistry()
	}
	if d.logger == nil {
		d.logger = zap.NewNop()
	}
	return d
}

// WithHooks replaces the dispatcher's hook registry with the provided one.
// Returns the dispatcher for chaining.
func (d *Dispatcher) WithHooks(h *hooks.Registry) *Dispatcher {
	d.hooks = h
	return d
}

// RegisterHook adds a hook to the dispatcher's existing hook registry.
// Returns the dispatcher for chaining.
func (d *Dispatcher) RegisterHook(hook any) *Dispatcher {
	d.hooks.Register(hook)
	return d
}

// SetMaxRecursion sets the maximum nested dispatch depth. A value <= 0 removes
// the limit. Returns the dispatcher for chaining.
func (d *Dispatcher) SetMaxRecursion(max int) *Dispatcher {
	d.maxRecursion = max
	return d
}

// MaxRecursion returns the configured maximum nested dispatch depth.
func (d *Dispatcher) MaxRecursion() int {
	return d.maxRecursion
}

// Resolver returns the resolver used for deferred identifiers.
func (d *Dispatcher) Resolver() ed.Resolver {
	return d.resolver
}

// -----------------------------------------------------------------------------
// Registration
// -----------------------------------------------------------------------------

// Listen registers listener for eventName. Higher priorities run first;
// listeners with equal priority run in registration order.
func (d *Dispatcher) Listen(eventName string, listener any, priority int) {
	buckets, ok := d.listeners[eventName]
	if !ok {
		buckets = make(map[int][]any)
		d.listeners[eventName] = buckets
		d.events = append(d.events, eventName)
	}
	buckets[priority] = append(buckets[priority], listener)
	delete(d.sorted, eventName)

	d.logger.Debug("listener registered",
		zap.String("event", eventName),
		zap.Int("priority", priority),
		zap.String("kind", string(kindOf(listener))),
	)
}

// Subscribe registers every method declared by subscriber. A string is treated
// as a deferred identifier and resolved first. Returns an error wrapping
// [ed.ErrInvalidArgument] if the result does not implement [ed.Subscriber].
func (d *Dispatcher) Subscribe(subscriber any) error {
	if id, ok := subscriber.(string); ok {
		resolved, err := d.resolver.Resolve(id)
		if err != nil {
			return fmt.Errorf("%w: resolve subscriber %q: %w", ed.ErrInvalidArgument, id, err)
		}
		subscriber = resolved
	}

	sub, ok := subscriber.(ed.Subscriber)
	if !ok {
		return fmt.Errorf("%w: %T does not implement Subscriber", ed.ErrInvalidArgument, subscriber)
	}

	bindings := ed.Expand(sub.SubscribedEvents())
	for _, b := range bindings {
		d.Listen(b.EventName, ed.MethodListener{Target: sub, Method: b.Method}, b.Priority)
	}

	d.logger.Debug("subscriber registered",
		zap.String("subscriber", ed.TypeName(sub)),
		zap.Int("bindings", len(bindings)),
	)
	return nil
}

// Forget removes listeners. With a nil listener every registration for
// eventName is dropped. Otherwise every entry identical to listener is removed
// from all priorities of eventName.
//
// Top-level functions are matched by code pointer. Closures and method values
// (such as a.OnCreated) never match: every instance of one shares the same
// code, so matching them could remove another component's listener. Remove
// those with Forget(eventName, nil), or register a pointer Invoker or Handler
// when individual instances must be removable.
func (d *Dispatcher) Forget(eventName string, listener any) {
	if listener == nil {
		d.removeEvent(eventName)
		d.logger.Debug("event forgotten", zap.String("event", eventName))
		return
	}

	buckets, ok := d.listeners[eventName]
	if !ok {
		return
	}

	removed := 0
	for priority, entries := range buckets {
		before := len(entries)
		entries = slices.DeleteFunc(entries, func(e any) bool {
			return sameListener(e, listener)
		})
		removed += before - len(entries)

		if len(entries) == 0 {
			delete(buckets, priority)
		} else {
			buckets[priority] = entries
		}
	}
	delete(d.sorted, eventName)

	if len(buckets) == 0 {
		d.removeEvent(eventName)
	}

	d.logger.Debug("listener forgotten",
		zap.String("event", eventName),
		zap.Int("removed", removed),
	)
}

// Clear removes all registrations and cached orderings.
func (d *Dispatcher) Clear() {
	d.listeners = make(map[string]map[int][]any)
	d.sorted = make(map[string][]any)
	d.events = make([]string, 0)
}

func (d *Dispatcher) removeEvent(eventName string) {
	delete(d.listeners, eventName)
	delete(d.sorted, eventName)
	d.events = slices.DeleteFunc(d.events, func(name string) bool {
		return name == eventName
	})
}

// -----------------------------------------------------------------------------
// Queries
// -----------------------------------------------------------------------------

// HasListeners reports whether at least one listener is registered for eventName.
func (d *Dispatcher) HasListeners(eventName string) bool {
	return len(d.listeners[eventName]) > 0
}

// Listeners returns the listeners of eventName in invocation order. The
// ordering is computed once and cached until the event's registrations change.
// The returned slice is a copy.
func (d *Dispatcher) Listeners(eventName string) []any {
	buckets, ok := d.listeners[eventName]
	if !ok {
		return []any{}
	}

	sorted, ok := d.sorted[eventName]
	if !ok {
		sorted = flatten(buckets)
		d.sorted[eventName] = sorted
	}
	return slices.Clone(sorted)
}

// Len returns the number of listeners registered for eventName.
func (d *Dispatcher) Len(eventName string) int {
	n := 0
	for _, entries := range d.listeners[eventName] {
		n += len(entries)
	}
	return n
}

// Events returns the names that currently have listeners, in the order they
// were first registered.
func (d *Dispatcher) Events() []string {
	return slices.Clone(d.events)
}

// flatten orders buckets by descending priority and concatenates them.
func flatten(buckets map[int][]any) []any {
	priorities := make([]int, 0, len(buckets))
	total := 0
	for p, entries := range buckets {
		priorities = append(priorities, p)
		total += len(entries)
	}
	slices.Sort(priorities)
	slices.Reverse(priorities)

	out := make([]any, 0, total)
	for _, p := range priorities {
		out = append(out, buckets[p]...)
	}
	return out
}

// -----------------------------------------------------------------------------
// Dispatch
// -----------------------------------------------------------------------------

// Dispatch runs the listeners of an event and returns the final payload.
//
// event selects the name and payload:
//   - string: event is the name, payload is used as given
//   - [ed.Named]: Name() is the name (its type name when empty), event is the payload
//   - any other value: its type name is the name, event is the payload
//
// With no listeners the payload is returned unchanged. Otherwise each listener
// receives the current payload; see [Dispatcher] for how results and stop
// signals are applied. On error the payload as of the failing listener is
// returned together with the error.
func (d *Dispatcher) Dispatch(event any, payload any) (any, error) {
	if isNil(event) {
		return payload, fmt.Errorf("%w: nil event %T", ed.ErrInvalidArgument, event)
	}

	var name string
	switch e := event.(type) {
	case string:
		name = e
	case ed.Named:
		name = e.Name()
		if name == "" {
			name = ed.TypeName(e)
		}
		payload = e
	default:
		name = ed.TypeName(e)
		payload = e
	}

	if d.maxRecursion > 0 && d.depth >= d.maxRecursion {
		return payload, fmt.Errorf("%w: %q at depth %d", ed.ErrMaxRecursion, name, d.depth+1)
	}
	d.depth++
	defer func() { d.depth-- }()

	listeners := d.Listeners(name)
	start := time.Now()
	d.hooks.FireBeforeDispatch(ed.BeforeDispatchEvent{
		EventName: name,
		Payload:   payload,
		Listeners: len(listeners),
		Depth:     d.depth,
	})

	result, invoked, stopped, err := d.run(name, listeners, payload)

	d.hooks.FireAfterDispatch(ed.AfterDispatchEvent{
		EventName: name,
		Result:    result,
		Invoked:   invoked,
		Stopped:   stopped,
		Duration:  time.Since(start),
		Error:     err,
		Depth:     d.depth,
	})
	return result, err
}

// run invokes listeners in order and reports the final payload, how many
// listeners ran and why iteration ended.
func (d *Dispatcher) run(
	name string,
	listeners []any,
	payload any,
) (any, int, ed.StopReason, error) {
	invoked := 0
	for i, listener := range listeners {
		start := time.Now()
		result, kind, err := d.call(listener, payload)
		invoked++

		stopped := ed.StopReasonNone
		if err == nil {
			switch {
			case isStop(result):
				stopped = ed.StopReasonResult
			case result != nil:
				payload = result
			}
			if stopped == ed.StopReasonNone && propagationStopped(payload) {
				stopped = ed.StopReasonFlag
			}
		}

		d.hooks.FireAfterListener(ed.AfterListenerEvent{
			EventName: name,
			Index:     i,
			Kind:      kind,
			Payload:   payload,
			Stopped:   stopped,
			Duration:  time.Since(start),
			Error:     err,
			Depth:     d.depth,
		})

		if err != nil {
			return payload, invoked, ed.StopReasonNone, err
		}
		if stopped != ed.StopReasonNone {
			d.logger.Debug("propagation stopped",
				zap.String("event", name),
				zap.Int("index", i),
				zap.String("reason", string(stopped)),
			)
			return payload, invoked, stopped, nil
		}
	}
	return payload, invoked, ed.StopReasonNone, nil
}

// isNil reports whether v is nil or a nil pointer.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}

func isStop(result any) bool {
	b, ok := result.(bool)
	return ok && b == ed.Stop
}

func propagationStopped(payload any) bool {
	s, ok := payload.(ed.PropagationStopper)
	return ok && s.IsPropagationStopped()
}
