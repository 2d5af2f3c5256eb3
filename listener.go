package eventdispatcher

// Stop is the result a listener returns to halt propagation. It is the boolean
// false: any invocable listener returning false stops the chain, and the payload
// handed to that listener becomes the dispatch result.
//
//	d.Listen("order.placed", eventdispatcher.ListenerFunc(
//	    func(payload any) (any, error) {
//	        if !authorized(payload) {
//	            return eventdispatcher.Stop, nil
//	        }
//	        return nil, nil
//	    },
//	), 10)
//
// A consequence is that false can never be used as a replacement payload.
const Stop = false

// ListenerFunc is the canonical invocable listener. The returned value replaces
// the payload for later listeners unless it is nil (payload unchanged) or [Stop]
// (halt). A non-nil error aborts the dispatch and is returned to the caller.
type ListenerFunc func(payload any) (any, error)

// Invoke calls f.
func (f ListenerFunc) Invoke(payload any) (any, error) {
	return f(payload)
}

// Invoker is implemented by invokable objects. They follow the same result
// rules as [ListenerFunc].
type Invoker interface {
	Invoke(payload any) (any, error)
}

// Handler is the single-method listener contract. Its return value never
// transforms the payload or signals a stop; a Handler controls propagation
// only through the payload's own [PropagationStopper] flag. A non-nil error
// aborts the dispatch.
//
// Handler takes precedence over [Invoker] when a value implements both.
type Handler interface {
	Handle(payload any) error
}

// HandlerFunc adapts a plain function to Handler.
type HandlerFunc func(payload any) error

// Handle calls f.
func (f HandlerFunc) Handle(payload any) error {
	return f(payload)
}
