package dispatcher

import (
	"fmt"
	"reflect"
	"regexp"
	"runtime"

	ed "github.com/rickchristie/eventdispatcher"
)

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// sharedCode matches the runtime names of closures ("pkg.F.func1",
// "pkg.F.func1.2") and method values ("pkg.(*T).M-fm"). Every instance of
// those shares one code pointer.
var sharedCode = regexp.MustCompile(`(\.func\d+(\.\d+)*|-fm)$`)

// call invokes a single listener entry with payload. Handler results are always
// reported as nil so they can never transform the payload or stop propagation.
func (d *Dispatcher) call(listener any, payload any) (any, ed.ListenerKind, error) {
	switch l := listener.(type) {
	case ed.Handler:
		return nil, ed.ListenerKindHandler, l.Handle(payload)

	case ed.MethodListener:
		result, err := callMethod(l, payload)
		return result, ed.ListenerKindMethod, err

	case string:
		resolved, err := d.resolver.Resolve(l)
		if err != nil {
			return nil, ed.ListenerKindDeferred, fmt.Errorf("%w: resolve listener %q: %w", ed.ErrInvalidArgument, l, err)
		}
		if h, ok := resolved.(ed.Handler); ok {
			return nil, ed.ListenerKindDeferred, h.Handle(payload)
		}
		result, err := invoke(resolved, payload)
		return result, ed.ListenerKindDeferred, err
	}

	result, err := invoke(listener, payload)
	if err != nil && !isInvocable(listener) {
		return nil, ed.ListenerKindInvalid, err
	}
	return result, ed.ListenerKindInvocable, err
}

// callMethod looks up the exported method by name on the subscriber instance.
func callMethod(l ed.MethodListener, payload any) (any, error) {
	if l.Target == nil {
		return nil, fmt.Errorf("%w: method listener %q has no target", ed.ErrInvalidArgument, l.Method)
	}
	m := reflect.ValueOf(l.Target).MethodByName(l.Method)
	if !m.IsValid() {
		return nil, fmt.Errorf("%w: %T has no exported method %q", ed.ErrInvalidArgument, l.Target, l.Method)
	}
	return invoke(m.Interface(), payload)
}

// invoke calls an invocable listener. Common function shapes are called
// directly; anything else goes through reflection.
func invoke(listener any, payload any) (any, error) {
	switch f := listener.(type) {
	case ed.Invoker:
		return f.Invoke(payload)
	case func(any) (any, error):
		return f(payload)
	case func(any) any:
		return f(payload), nil
	case func(any) error:
		return nil, f(payload)
	case func(any):
		f(payload)
		return nil, nil
	}

	v := reflect.ValueOf(listener)
	if v.Kind() != reflect.Func || v.IsNil() {
		return nil, fmt.Errorf("%w: listener %T is not invocable", ed.ErrInvalidArgument, listener)
	}
	return invokeReflect(v, payload)
}

// invokeReflect calls a single-argument function returning nothing, a value,
// an error, or (value, error).
func invokeReflect(fn reflect.Value, payload any) (any, error) {
	t := fn.Type()
	if t.NumIn() != 1 || t.IsVariadic() {
		return nil, fmt.Errorf("%w: listener %s must take exactly one argument", ed.ErrInvalidArgument, t)
	}
	if t.NumOut() > 2 || (t.NumOut() == 2 && t.Out(1) != errorType) {
		return nil, fmt.Errorf("%w: listener %s has unsupported results", ed.ErrInvalidArgument, t)
	}

	in := reflect.Zero(t.In(0))
	if payload != nil {
		pv := reflect.ValueOf(payload)
		if !pv.Type().AssignableTo(t.In(0)) {
			return nil, fmt.Errorf("%w: payload %T is not assignable to %s", ed.ErrInvalidArgument, payload, t.In(0))
		}
		in = pv
	}

	out := fn.Call([]reflect.Value{in})
	switch len(out) {
	case 0:
		return nil, nil
	case 1:
		if t.Out(0) == errorType {
			return nil, asError(out[0])
		}
		return asValue(out[0]), nil
	default:
		return asValue(out[0]), asError(out[1])
	}
}

// asValue converts a reflected result, collapsing typed nils to nil so they do
// not replace the payload.
func asValue(v reflect.Value) any {
	switch v.Kind() {
	case reflect.Interface, reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		if v.IsNil() {
			return nil
		}
	}
	return v.Interface()
}

func asError(v reflect.Value) error {
	if v.IsNil() {
		return nil
	}
	return v.Interface().(error)
}

func isInvocable(listener any) bool {
	if _, ok := listener.(ed.Invoker); ok {
		return true
	}
	return reflect.ValueOf(listener).Kind() == reflect.Func
}

// kindOf classifies a listener at registration time, for logging.
func kindOf(listener any) ed.ListenerKind {
	switch listener.(type) {
	case ed.Handler:
		return ed.ListenerKindHandler
	case ed.MethodListener:
		return ed.ListenerKindMethod
	case string:
		return ed.ListenerKindDeferred
	}
	if isInvocable(listener) {
		return ed.ListenerKindInvocable
	}
	return ed.ListenerKindInvalid
}

// sameListener reports whether two registrations refer to the same listener.
func sameListener(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta := reflect.TypeOf(a)
	if ta != reflect.TypeOf(b) {
		return false
	}

	switch {
	case ta.Kind() == reflect.Func:
		return sameFunc(reflect.ValueOf(a), reflect.ValueOf(b))
	case ta == reflect.TypeOf((*ed.MethodListener)(nil)).Elem():
		ma, mb := a.(ed.MethodListener), b.(ed.MethodListener)
		return ma.Method == mb.Method && sameListener(ma.Target, mb.Target)
	case !ta.Comparable():
		return false
	}
	return safeEqual(a, b)
}

// sameFunc matches functions by code pointer. Closures and method values are
// never matched because their code pointer does not identify an instance.
func sameFunc(a, b reflect.Value) bool {
	if a.IsNil() || b.IsNil() {
		return a.IsNil() && b.IsNil()
	}
	pc := a.Pointer()
	if pc != b.Pointer() {
		return false
	}
	fn := runtime.FuncForPC(pc)
	return fn != nil && !sharedCode.MatchString(fn.Name())
}

// safeEqual compares two values of a comparable type whose fields may still
// hold non-comparable dynamic values.
func safeEqual(a, b any) (eq bool) {
	defer func() {
		if recover() != nil {
			eq = false
		}
	}()
	return a == b
}
