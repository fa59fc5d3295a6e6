package timer

import (
	"reflect"
	"runtime"
	"strings"

	"github.com/zgpcy/calltimer/internal/clock"
	"github.com/zgpcy/calltimer/internal/report"
)

// Option configures a Timed function
type Option func(*options)

type options struct {
	clock    clock.Clock
	reporter report.Reporter
}

// WithClock sets the time source. Defaults to clock.RealClock.
func WithClock(c clock.Clock) Option {
	return func(o *options) {
		if c != nil {
			o.clock = c
		}
	}
}

// WithReporter sets the report sink. Defaults to a Console on stdout.
func WithReporter(r report.Reporter) Option {
	return func(o *options) {
		if r != nil {
			o.reporter = r
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{clock: clock.RealClock{}}
	for _, opt := range opts {
		opt(&o)
	}
	if o.reporter == nil {
		o.reporter = report.NewConsole(nil)
	}
	return o
}

// Timed wraps a function of one argument and reports how long each
// successful call took. Multi-argument functions are packed into A by the
// FuncN adapters.
type Timed[A, R any] struct {
	name     string
	invoke   func(A) (R, error)
	clock    clock.Clock
	reporter report.Reporter
}

// New wraps fn under name. An empty name is derived from fn with FuncName.
// New panics if fn is nil.
func New[A, R any](name string, fn func(A) (R, error), opts ...Option) *Timed[A, R] {
	mustFunc(fn == nil)
	if name == "" {
		name = FuncName(fn)
	}
	o := buildOptions(opts)
	return &Timed[A, R]{
		name:     name,
		invoke:   fn,
		clock:    o.clock,
		reporter: o.reporter,
	}
}

// Name returns the wrapped function's name
func (t *Timed[A, R]) Name() string {
	return t.name
}

// Call invokes the wrapped function with arg. On success the elapsed time is
// reported and the result returned unchanged. A returned error or a panic
// passes through untouched and nothing is reported.
func (t *Timed[A, R]) Call(arg A) (R, error) {
	start := t.clock.Now()
	result, err := t.invoke(arg)
	if err != nil {
		return result, err
	}
	end := t.clock.Now()

	t.reporter.Report(report.Invocation{
		Name:  t.name,
		Start: start,
		End:   end,
	})
	return result, nil
}

// FuncName returns the short declared name of fn, e.g. "ProcessData" for
// github.com/x/demo.ProcessData or "Add" for the method value (*Calc).Add.
// Type arguments of generic functions and receivers are dropped, so
// identity[int] yields "identity". Anonymous functions yield their compiler name ("func1"). It returns ""
// if fn is not a function.
func FuncName(fn any) string {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func || v.IsNil() {
		return ""
	}
	f := runtime.FuncForPC(v.Pointer())
	if f == nil {
		return ""
	}
	name := stripTypeArgs(strings.TrimSuffix(f.Name(), "-fm"))
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	return name
}

// stripTypeArgs removes every bracketed type-argument list from a runtime
// symbol. The lists may nest and contain package paths with dots.
func stripTypeArgs(name string) string {
	if !strings.Contains(name, "[") {
		return name
	}
	var b strings.Builder
	depth := 0
	for _, r := range name {
		switch {
		case r == '[':
			depth++
		case r == ']':
			if depth > 0 {
				depth--
			}
		case depth == 0:
			b.WriteRune(r)
		}
	}
	return b.String()
}
