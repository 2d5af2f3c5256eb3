package eventdispatcher

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type auditListener struct {
	seen int
}

func (a *auditListener) Handle(any) error {
	a.seen++
	return nil
}

func TestContainer_RegisterType_DefaultID(t *testing.T) {
	c := NewContainer()
	RegisterType[auditListener](c)

	assert.True(t, c.Has("eventdispatcher.auditListener"))

	first, err := c.Resolve("eventdispatcher.auditListener")
	require.NoError(t, err)
	second, err := c.Resolve("eventdispatcher.auditListener")
	require.NoError(t, err)

	assert.IsType(t, &auditListener{}, first)
	assert.NotSame(t, first, second, "each resolution constructs a new instance")
}

func TestContainer_RegisterType_CustomIDs(t *testing.T) {
	c := NewContainer()
	RegisterType[auditListener](c, "audit", "audit.v2")

	assert.Equal(t, []string{"audit", "audit.v2"}, c.IDs())
}

func TestContainer_Register_Factory(t *testing.T) {
	shared := &auditListener{}
	c := NewContainer().Register("shared", func() any { return shared })

	got, err := c.Resolve("shared")

	require.NoError(t, err)
	assert.Same(t, shared, got)
}

func TestContainer_Resolve_Unknown(t *testing.T) {
	c := NewContainer()

	_, err := c.Resolve("missing")

	assert.True(t, errors.Is(err, ErrUnknownIdentifier))
	assert.Contains(t, err.Error(), `"missing"`)
}

func TestResolverFunc(t *testing.T) {
	var r Resolver = ResolverFunc(func(id string) (any, error) {
		return id + "!", nil
	})

	got, err := r.Resolve("x")

	require.NoError(t, err)
	assert.Equal(t, "x!", got)
}
