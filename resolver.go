package eventdispatcher

import (
	"fmt"
	"slices"
)

// Resolver turns a deferred identifier into a live listener or subscriber
// instance. The dispatcher calls it lazily: for subscribers at Subscribe time,
// for listeners every time the listener runs.
type Resolver interface {
	Resolve(id string) (any, error)
}

// ResolverFunc adapts a function to Resolver.
type ResolverFunc func(id string) (any, error)

// Resolve calls f.
func (f ResolverFunc) Resolve(id string) (any, error) {
	return f(id)
}

// Container is the default Resolver. It maps identifiers to zero-argument
// factories, so resolving an identifier constructs a fresh instance each time.
//
//	c := eventdispatcher.NewContainer()
//	eventdispatcher.RegisterType[AuditListener](c)            // "app.AuditListener"
//	c.Register("mailer", func() any { return NewMailer(cfg) }) // custom factory
//
//	d := dispatcher.New(dispatcher.Config{Resolver: c})
//	d.Listen("user.created", "app.AuditListener", 0)
//
// Container is NOT thread-safe. Register everything before dispatching.
type Container struct {
	factories map[string]func() any
}

// NewContainer creates an empty Container.
func NewContainer() *Container {
	return &Container{
		factories: make(map[string]func() any),
	}
}

// Register binds id to factory, replacing any previous binding.
func (c *Container) Register(id string, factory func() any) *Container {
	c.factories[id] = factory
	return c
}

// RegisterType binds *T, constructed with new(T), under the given identifiers.
// With no identifiers the type name of T is used (see [TypeName]).
func RegisterType[T any](c *Container, ids ...string) *Container {
	if len(ids) == 0 {
		ids = []string{TypeName(new(T))}
	}
	for _, id := range ids {
		c.Register(id, func() any { return new(T) })
	}
	return c
}

// Has reports whether id is registered.
func (c *Container) Has(id string) bool {
	_, ok := c.factories[id]
	return ok
}

// IDs returns the registered identifiers in sorted order.
func (c *Container) IDs() []string {
	ids := make([]string, 0, len(c.factories))
	for id := range c.factories {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Resolve constructs the instance registered under id.
func (c *Container) Resolve(id string) (any, error) {
	factory, ok := c.factories[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownIdentifier, id)
	}
	return factory(), nil
}
