// Package aggregator collects reported worker states behind a mutex.
//
// Despite the name no reduction is computed: values are stored as reported,
// in the order their writers acquired the lock.
package aggregator

import "sync"

// Aggregator owns an append-only sequence of collected values.
type Aggregator struct {
	mu     sync.Mutex
	states []uint64
}

// New returns an Aggregator with an empty sequence.
func New() *Aggregator {
	return &Aggregator{}
}

// CollectState appends v to the sequence.
func (a *Aggregator) CollectState(v uint64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.states = append(a.states, v)
}

// GetAllStates returns an independent copy of every collected value in
// insertion order. The result is never nil.
func (a *Aggregator) GetAllStates() []uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]uint64, len(a.states))
	copy(out, a.states)
	return out
}

// Len returns the number of collected values.
func (a *Aggregator) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.states)
}
