package report

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// Invocation describes one completed call of a timed function.
// It lives only until every reporter has seen it.
type Invocation struct {
	Name  string
	Start time.Time
	End   time.Time
}

// Elapsed returns End - Start, never negative
func (i Invocation) Elapsed() time.Duration {
	d := i.End.Sub(i.Start)
	if d < 0 {
		return 0
	}
	return d
}

// Reporter receives one Invocation per successful timed call.
// Implementations must be safe for concurrent use.
type Reporter interface {
	Report(inv Invocation)
}

// ReporterFunc adapts an ordinary function to the Reporter interface
type ReporterFunc func(inv Invocation)

// Report calls f(inv)
func (f ReporterFunc) Report(inv Invocation) {
	f(inv)
}

// Format renders the console line for inv, without the trailing newline
func Format(inv Invocation) string {
	return fmt.Sprintf("Finished '%s' in %.4f seconds", inv.Name, inv.Elapsed().Seconds())
}

// Console writes one human-readable line per invocation
type Console struct {
	mu sync.Mutex
	w  io.Writer
}

// NewConsole creates a Console reporter writing to w (stdout when nil)
func NewConsole(w io.Writer) *Console {
	if w == nil {
		w = os.Stdout
	}
	return &Console{w: w}
}

// Report implements Reporter. Write errors are dropped: a broken sink
// must not change what the timed function returns.
func (c *Console) Report(inv Invocation) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, _ = fmt.Fprintln(c.w, Format(inv))
}

type multi []Reporter

// Multi fans an invocation out to every non-nil reporter in order
func Multi(reporters ...Reporter) Reporter {
	var m multi
	for _, r := range reporters {
		if r != nil {
			m = append(m, r)
		}
	}
	if len(m) == 1 {
		return m[0]
	}
	return m
}

func (m multi) Report(inv Invocation) {
	for _, r := range m {
		r.Report(inv)
	}
}

// Discard drops every invocation
var Discard Reporter = ReporterFunc(func(Invocation) {})
