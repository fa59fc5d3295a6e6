package clock

import "time"

// Clock provides time-related functions that can be mocked for testing
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the system clock. Times it returns carry a
// monotonic reading, so subtracting two of them is immune to wall-clock jumps.
type RealClock struct{}

// Now returns the current system time
func (RealClock) Now() time.Time {
	return time.Now()
}

// Func adapts an ordinary function to the Clock interface
type Func func() time.Time

// Now calls f()
func (f Func) Now() time.Time {
	return f()
}
