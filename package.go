// Package eventdispatcher provides the contracts of an in-process,
// priority-ordered publish/subscribe event dispatcher.
//
// Listeners are registered against event names with an integer priority and
// run in descending priority order when the event is dispatched. Each listener
// receives the current payload and may replace it, leave it unchanged, or halt
// propagation.
//
// # Quick Start
//
//	package main
//
//	import (
//	    "fmt"
//
//	    "github.com/rickchristie/eventdispatcher"
//	    "github.com/rickchristie/eventdispatcher/dispatcher"
//	)
//
//	func main() {
//	    d := dispatcher.New(dispatcher.DefaultConfig())
//
//	    d.Listen("greet", eventdispatcher.ListenerFunc(func(p any) (any, error) {
//	        return fmt.Sprintf("hello, %s", p), nil
//	    }), 10)
//
//	    d.Listen("greet", eventdispatcher.ListenerFunc(func(p any) (any, error) {
//	        return p.(string) + "!", nil
//	    }), 0)
//
//	    result, _ := d.Dispatch("greet", "world")
//	    fmt.Println(result) // hello, world!
//	}
//
// # Packages
//
//   - eventdispatcher: Event, listener and subscriber contracts, resolver, hook interfaces
//   - dispatcher: the Dispatcher (registry, priority sort, dispatch loop)
//   - hooks: registry for dispatch lifecycle hooks
//   - loggers: zap, YAML and Sentry hooks
//   - config: startup configuration and subscriber bootstrapping
//   - schema: JSON Schema builders used to validate configuration
//
// # Listener Kinds
//
// A listener is one of:
//
//   - Invocable: [ListenerFunc], an [Invoker], or any single-argument func.
//     A non-nil result replaces the payload; [Stop] halts propagation.
//   - [Handler]: its result is ignored. It stops propagation only by calling
//     StopPropagation on an [Event] payload.
//   - Deferred identifier: a string resolved through a [Resolver] each time
//     the listener runs.
//   - [MethodListener]: a subscriber method registered by Subscribe.
//
// # Events
//
// [Event] carries a name, a key/value payload and a propagation flag. Any value
// implementing [Named] is dispatched under its own name; other values are
// dispatched under their type name (see [TypeName]).
//
// # Subscribers
//
// A [Subscriber] declares its methods per event name with [Method],
// [MethodSpec] and [Methods]. See [Subscriber] for an example.
package eventdispatcher
