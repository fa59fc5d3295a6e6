package demo

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/zgpcy/calltimer/internal/timer"
)

// ErrDivisionByZero is returned by Divide when the divisor is zero
var ErrDivisionByZero = errors.New("division by zero")

// Runner executes the demo call sites through timed wrappers
type Runner struct {
	out              io.Writer
	processDataDelay time.Duration
	addNumbersDelay  time.Duration
	sleep            func(time.Duration)
	opts             []timer.Option
}

// NewRunner creates a Runner writing demo output to out (stdout when nil)
func NewRunner(out io.Writer, processDataDelay, addNumbersDelay time.Duration, opts ...timer.Option) *Runner {
	if out == nil {
		out = os.Stdout
	}
	return &Runner{
		out:              out,
		processDataDelay: processDataDelay,
		addNumbersDelay:  addNumbersDelay,
		sleep:            time.Sleep,
		opts:             opts,
	}
}

// ProcessData simulates a unit of work and returns "Done"
func (r *Runner) ProcessData() string {
	fmt.Fprintln(r.out, "Processing data...")
	r.sleep(r.processDataDelay)
	return "Done"
}

// AddNumbers simulates slow addition
func (r *Runner) AddNumbers(a, b int) int {
	r.sleep(r.addNumbersDelay)
	return a + b
}

// Divide returns a / b, or ErrDivisionByZero
func Divide(a, b int) (int, error) {
	if b == 0 {
		return 0, ErrDivisionByZero
	}
	return a / b, nil
}

// Run calls process_data and add_numbers(10, 20) through the timer and
// prints the sum
func (r *Runner) Run() {
	processData := timer.Func0("process_data", r.ProcessData, r.opts...)
	addNumbers := timer.Func2("add_numbers", r.AddNumbers, r.opts...)

	processData()
	result := addNumbers(10, 20)
	fmt.Fprintln(r.out, "Result:", result)
}
