package eventdispatcher

import "errors"

// Sentinel errors returned by the dispatcher. Callers should match them with
// errors.Is since they are usually wrapped with context.
var (
	// ErrInvalidArgument is returned when a subscriber does not implement
	// Subscriber, or when a listener is neither invocable, a Handler, nor a
	// deferred identifier the resolver can turn into one of those.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrUnknownIdentifier is returned by a Resolver that has nothing
	// registered under the requested identifier.
	ErrUnknownIdentifier = errors.New("unknown identifier")

	// ErrMaxRecursion is returned when nested dispatches exceed the configured
	// recursion depth.
	ErrMaxRecursion = errors.New("max dispatch recursion exceeded")
)
