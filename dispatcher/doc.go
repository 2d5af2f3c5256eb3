// Package dispatcher implements the priority-ordered event dispatcher.
//
// # Quick Start
//
//	d := dispatcher.New(dispatcher.DefaultConfig())
//
//	d.Listen("order.placed", eventdispatcher.ListenerFunc(
//	    func(payload any) (any, error) {
//	        order := payload.(*Order)
//	        order.Total = applyDiscount(order.Total)
//	        return order, nil
//	    },
//	), 10)
//
//	d.Listen("order.placed", eventdispatcher.HandlerFunc(func(payload any) error {
//	    return audit.Record(payload)
//	}), 0)
//
//	result, err := d.Dispatch("order.placed", &Order{Total: 100})
//
// # Subscribers
//
// A subscriber registers several of its methods at once:
//
//	if err := d.Subscribe(&UserSubscriber{}); err != nil {
//	    return err
//	}
//
// Subscribers and listeners may also be given as deferred identifiers that the
// configured Resolver turns into instances:
//
//	c := eventdispatcher.NewContainer()
//	eventdispatcher.RegisterType[UserSubscriber](c, "users")
//	d := dispatcher.New(dispatcher.Config{Resolver: c})
//	err := d.Subscribe("users")
//
// # Priorities
//
// Higher priorities run first. Listeners with the same priority run in the
// order they were registered. The flattened order is cached per event name and
// invalidated by Listen and Forget.
//
// # Stopping Propagation
//
// Invocable listeners return [eventdispatcher.Stop] to halt the chain; the
// payload they received becomes the result. Handlers, whose results are
// ignored, call StopPropagation on an [eventdispatcher.Event] payload instead.
// A Handler listening to a dispatch whose payload is not a
// [eventdispatcher.PropagationStopper] has no way to stop propagation.
package dispatcher
