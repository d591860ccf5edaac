package primary

import "time"

// Clock abstracts time for components with time-dependent behavior (the
// runtime cache TTL, retry backoff) so tests can run deterministically.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

// RealClock is the production Clock.
type RealClock struct{}

func (RealClock) Now() time.Time        { return time.Now() }
func (RealClock) Sleep(d time.Duration) { time.Sleep(d) }
