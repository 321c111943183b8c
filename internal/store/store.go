// Package store keeps the host-visible handles to workers and aggregators.
package store

import (
	"errors"
	"io"
	"os"
	"sync"

	"github.com/google/uuid"

	"github.com/fairyhunter13/worker-aggregator/internal/aggregator"
	"github.com/fairyhunter13/worker-aggregator/internal/model"
	"github.com/fairyhunter13/worker-aggregator/internal/worker"
)

var (
	ErrWorkerNotFound     = errors.New("worker not found")
	ErrAggregatorNotFound = errors.New("aggregator not found")
)

// workerHandle serializes access to a Worker, which is not safe for
// concurrent mutation on its own.
type workerHandle struct {
	mu sync.Mutex
	w  *worker.Worker
}

// lockedWriter serializes task lines from workers sharing one output.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}

type Store struct {
	out io.Writer

	mu          sync.RWMutex
	workers     map[uint64]*workerHandle
	aggregators map[string]*aggregator.Aggregator
}

// New returns an empty Store. Worker task lines go to out, or stdout when
// out is nil.
func New(out io.Writer) *Store {
	if out == nil {
		out = os.Stdout
	}
	return &Store{
		out:         &lockedWriter{w: out},
		workers:     make(map[uint64]*workerHandle),
		aggregators: make(map[string]*aggregator.Aggregator),
	}
}

// CreateWorker registers a worker, replacing any previous one with the same id.
func (s *Store) CreateWorker(id, state uint64) model.WorkerState {
	h := &workerHandle{w: worker.New(id, state, worker.WithOutput(s.out))}
	s.mu.Lock()
	s.workers[id] = h
	s.mu.Unlock()
	return model.WorkerState{ID: id, State: state}
}

func (s *Store) worker(id uint64) (*workerHandle, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	h, ok := s.workers[id]
	return h, ok
}

// PerformTask advances the worker's counter and returns its new state.
func (s *Store) PerformTask(id uint64) (model.WorkerState, error) {
	h, ok := s.worker(id)
	if !ok {
		return model.WorkerState{}, ErrWorkerNotFound
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.w.PerformTask()
	return model.WorkerState{ID: id, State: h.w.ReportState()}, nil
}

// ReportState returns the worker's current state.
func (s *Store) ReportState(id uint64) (model.WorkerState, error) {
	h, ok := s.worker(id)
	if !ok {
		return model.WorkerState{}, ErrWorkerNotFound
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return model.WorkerState{ID: id, State: h.w.ReportState()}, nil
}

// CreateAggregator registers an empty aggregator and returns its handle.
func (s *Store) CreateAggregator() string {
	id := uuid.NewString()
	s.mu.Lock()
	s.aggregators[id] = aggregator.New()
	s.mu.Unlock()
	return id
}

func (s *Store) aggregator(id string) (*aggregator.Aggregator, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.aggregators[id]
	return a, ok
}

// CollectState appends v to the aggregator's sequence.
func (s *Store) CollectState(aggID string, v uint64) error {
	a, ok := s.aggregator(aggID)
	if !ok {
		return ErrAggregatorNotFound
	}
	a.CollectState(v)
	return nil
}

// GetAllStates returns a copy of the aggregator's sequence.
func (s *Store) GetAllStates(aggID string) ([]uint64, error) {
	a, ok := s.aggregator(aggID)
	if !ok {
		return nil, ErrAggregatorNotFound
	}
	return a.GetAllStates(), nil
}

// ReportTo reads the worker's state and collects it into the aggregator.
func (s *Store) ReportTo(aggID string, workerID uint64) (uint64, error) {
	a, ok := s.aggregator(aggID)
	if !ok {
		return 0, ErrAggregatorNotFound
	}
	st, err := s.ReportState(workerID)
	if err != nil {
		return 0, err
	}
	a.CollectState(st.State)
	return st.State, nil
}

// WorkerCount returns the number of registered workers.
func (s *Store) WorkerCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.workers)
}

// AggregatorCount returns the number of registered aggregators.
func (s *Store) AggregatorCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.aggregators)
}
