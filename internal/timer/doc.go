// Package timer wraps functions so every successful call reports its
// elapsed time.
//
// A wrapped function keeps the original's signature and returns exactly what
// the original returns. The report names the original function, not the
// wrapper, and is emitted once per successful call. Failures are passed
// through: a returned error comes back unchanged and a panic keeps
// unwinding, and in both cases nothing is reported.
//
// Example usage:
//
//	addNumbers := timer.Func2("add_numbers", func(a, b int) int {
//		time.Sleep(time.Second)
//		return a + b
//	})
//	result := addNumbers(10, 20) // prints: Finished 'add_numbers' in 1.0001 seconds
//
// Reports go to stdout by default; use WithReporter to send them elsewhere
// and WithClock to control the time source in tests.
package timer
