package animation

import "time"

// Clock provides time for animations. The default implementation uses
// system time. Tests inject a fake clock to control animation timing
// deterministically. Clocks are passed to component constructors rather
// than installed globally, so independent engines never share timing state.
type Clock interface {
	Now() time.Time
}

// SystemClock returns a clock backed by system time.
func SystemClock() Clock { return realClock{} }

// realClock uses system time.
type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }
