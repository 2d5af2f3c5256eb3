package hooks

import (
	"testing"

	ed "github.com/rickchristie/eventdispatcher"
	"github.com/stretchr/testify/assert"
)

// -----------------------------------------------------------------------------
// Test Hooks
// -----------------------------------------------------------------------------

type mockBeforeHook struct {
	called bool
	event  ed.BeforeDispatchEvent
}

func (h *mockBeforeHook) OnBeforeDispatch(e ed.BeforeDispatchEvent) {
	h.called = true
	h.event = e
}

type mockAfterListenerHook struct {
	called bool
	event  ed.AfterListenerEvent
}

func (h *mockAfterListenerHook) OnAfterListener(e ed.AfterListenerEvent) {
	h.called = true
	h.event = e
}

type mockAfterHook struct {
	called bool
	event  ed.AfterDispatchEvent
}

func (h *mockAfterHook) OnAfterDispatch(e ed.AfterDispatchEvent) {
	h.called = true
	h.event = e
}

type orderHook struct {
	name string
	log  *[]string
}

func (h *orderHook) OnBeforeDispatch(ed.BeforeDispatchEvent) {
	*h.log = append(*h.log, h.name)
}

// -----------------------------------------------------------------------------
// Tests
// -----------------------------------------------------------------------------

func TestRegistry_Register_Chaining(t *testing.T) {
	r := NewRegistry()

	result := r.Register(&mockBeforeHook{}).Register(&mockAfterHook{})

	assert.Same(t, r, result)
	assert.Equal(t, 2, r.Len())
}

func TestRegistry_Fire_OnlyMatchingInterfaces(t *testing.T) {
	before := &mockBeforeHook{}
	listener := &mockAfterListenerHook{}
	after := &mockAfterHook{}
	r := NewRegistry().Register(before).Register(listener).Register(after).Register("not a hook")

	r.FireBeforeDispatch(ed.BeforeDispatchEvent{EventName: "E", Listeners: 2, Depth: 1})

	assert.True(t, before.called)
	assert.False(t, listener.called)
	assert.False(t, after.called)
	assert.Equal(t, "E", before.event.EventName)
	assert.Equal(t, 2, before.event.Listeners)

	r.FireAfterListener(ed.AfterListenerEvent{EventName: "E", Index: 1, Kind: ed.ListenerKindHandler})

	assert.True(t, listener.called)
	assert.Equal(t, 1, listener.event.Index)
	assert.Equal(t, ed.ListenerKindHandler, listener.event.Kind)
	assert.False(t, after.called)

	r.FireAfterDispatch(ed.AfterDispatchEvent{EventName: "E", Invoked: 2, Stopped: ed.StopReasonResult})

	assert.True(t, after.called)
	assert.Equal(t, 2, after.event.Invoked)
	assert.Equal(t, ed.StopReasonResult, after.event.Stopped)
}

func TestRegistry_Fire_RegistrationOrder(t *testing.T) {
	var log []string
	r := NewRegistry().
		Register(&orderHook{name: "first", log: &log}).
		Register(&orderHook{name: "second", log: &log})

	r.FireBeforeDispatch(ed.BeforeDispatchEvent{})

	assert.Equal(t, []string{"first", "second"}, log)
}

func TestRegistry_NilReceiver(t *testing.T) {
	var r *Registry

	assert.NotPanics(t, func() {
		r.FireBeforeDispatch(ed.BeforeDispatchEvent{})
		r.FireAfterListener(ed.AfterListenerEvent{})
		r.FireAfterDispatch(ed.AfterDispatchEvent{})
	})
	assert.Equal(t, 0, r.Len())
}

func TestRegistry_Clear(t *testing.T) {
	hook := &mockBeforeHook{}
	r := NewRegistry().Register(hook)

	r.Clear()
	r.FireBeforeDispatch(ed.BeforeDispatchEvent{})

	assert.Equal(t, 0, r.Len())
	assert.False(t, hook.called)
}
