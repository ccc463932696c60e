package clock

import "time"

// Clock provides time operations that can be mocked for testing
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the system clock
type RealClock struct{}

// New creates a new RealClock
func New() *RealClock {
	return &RealClock{}
}

// Now returns the current time
func (c *RealClock) Now() time.Time {
	return time.Now()
}

// Micros converts a time to microseconds since the Unix epoch, the timestamp
// representation stored in sessions and stats
func Micros(t time.Time) uint64 {
	return uint64(t.UnixMicro())
}
