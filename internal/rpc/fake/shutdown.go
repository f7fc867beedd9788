package fake

import "sync"

// Shutdown is a minimal broadcaster implementing rpc.ShutdownSignal: a
// single channel that is closed exactly once, when Trigger is first
// called, notifying every live subscription at once.
type Shutdown struct {
	once sync.Once
	ch   chan struct{}
}

// NewShutdown constructs an armed, untriggered shutdown broadcaster.
func NewShutdown() *Shutdown {
	return &Shutdown{ch: make(chan struct{})}
}

// Signal returns the channel that closes once Trigger fires.
func (s *Shutdown) Signal() <-chan struct{} {
	return s.ch
}

// Trigger closes the signal channel. Safe to call more than once or
// concurrently; only the first call has any effect.
func (s *Shutdown) Trigger() {
	s.once.Do(func() {
		close(s.ch)
	})
}
