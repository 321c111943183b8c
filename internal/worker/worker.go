// Package worker implements a single counter-holding worker.
package worker

import (
	"fmt"
	"io"
	"os"
)

// Worker holds an identifier and a counter advanced by PerformTask.
//
// A Worker is not safe for concurrent mutation; callers serialize access.
type Worker struct {
	id    uint64
	state uint64
	out   io.Writer
}

// Option configures a Worker.
type Option func(*Worker)

// WithOutput redirects task lines to w instead of stdout.
func WithOutput(w io.Writer) Option {
	return func(wk *Worker) {
		if w != nil {
			wk.out = w
		}
	}
}

// New returns a Worker whose counter starts at state.
func New(id, state uint64, opts ...Option) *Worker {
	w := &Worker{id: id, state: state, out: os.Stdout}
	for _, o := range opts {
		o(w)
	}
	return w
}

// ID returns the caller-assigned identifier.
func (w *Worker) ID() uint64 { return w.id }

// PerformTask increments the counter by one and prints a line naming the
// worker and its new state.
func (w *Worker) PerformTask() {
	w.state++
	_, _ = fmt.Fprintf(w.out, "Worker %d performed a task, new state: %d\n", w.id, w.state)
}

// ReportState returns the current counter value.
func (w *Worker) ReportState() uint64 { return w.state }
