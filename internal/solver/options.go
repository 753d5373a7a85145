package solver

import "time"

// Options configures solver behavior. Both caps are defensive bounds on
// pathological inputs; zero disables them.
type Options struct {
	Timeout   time.Duration // Timeout limits total search time
	NodeLimit int           // NodeLimit caps the number of guesses tried
}

// DefaultOptions returns standard solver options: a generous timeout and
// no node cap.
func DefaultOptions() *Options {
	return &Options{
		Timeout:   10 * time.Second,
		NodeLimit: 0,
	}
}
