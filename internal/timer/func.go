package timer

type none struct{}

func mustFunc(isNil bool) {
	if isNil {
		panic("timer: nil function")
	}
}

type pair[A, B any] struct {
	a A
	b B
}

// Func0 returns a timed function with fn's signature
func Func0[R any](name string, fn func() R, opts ...Option) func() R {
	mustFunc(fn == nil)
	if name == "" {
		name = FuncName(fn)
	}
	t := New(name, func(none) (R, error) { return fn(), nil }, opts...)
	return func() R {
		r, _ := t.Call(none{})
		return r
	}
}

// Func1 returns a timed function with fn's signature
func Func1[A, R any](name string, fn func(A) R, opts ...Option) func(A) R {
	mustFunc(fn == nil)
	if name == "" {
		name = FuncName(fn)
	}
	t := New(name, func(a A) (R, error) { return fn(a), nil }, opts...)
	return func(a A) R {
		r, _ := t.Call(a)
		return r
	}
}

// Func2 returns a timed function with fn's signature
func Func2[A, B, R any](name string, fn func(A, B) R, opts ...Option) func(A, B) R {
	mustFunc(fn == nil)
	if name == "" {
		name = FuncName(fn)
	}
	t := New(name, func(p pair[A, B]) (R, error) { return fn(p.a, p.b), nil }, opts...)
	return func(a A, b B) R {
		r, _ := t.Call(pair[A, B]{a, b})
		return r
	}
}

// Func0E is Func0 for functions that can fail
func Func0E[R any](name string, fn func() (R, error), opts ...Option) func() (R, error) {
	mustFunc(fn == nil)
	if name == "" {
		name = FuncName(fn)
	}
	t := New(name, func(none) (R, error) { return fn() }, opts...)
	return func() (R, error) {
		return t.Call(none{})
	}
}

// Func1E is Func1 for functions that can fail
func Func1E[A, R any](name string, fn func(A) (R, error), opts ...Option) func(A) (R, error) {
	return New(name, fn, opts...).Call
}

// Func2E is Func2 for functions that can fail
func Func2E[A, B, R any](name string, fn func(A, B) (R, error), opts ...Option) func(A, B) (R, error) {
	mustFunc(fn == nil)
	if name == "" {
		name = FuncName(fn)
	}
	t := New(name, func(p pair[A, B]) (R, error) { return fn(p.a, p.b) }, opts...)
	return func(a A, b B) (R, error) {
		return t.Call(pair[A, B]{a, b})
	}
}
