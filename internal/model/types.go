// Package model defines the JSON shapes exchanged with the host adapter.
package model

// WorkerSpec is the request body for creating a worker.
type WorkerSpec struct {
	ID    uint64 `json:"id"`
	State uint64 `json:"state"`
}

// WorkerState reports a worker's identifier and current counter.
type WorkerState struct {
	ID    uint64 `json:"id"`
	State uint64 `json:"state"`
}

// AggregatorRef identifies a registered aggregator.
type AggregatorRef struct {
	ID string `json:"id"`
}

// CollectRequest is the request body for collecting a single value.
type CollectRequest struct {
	Value uint64 `json:"value"`
}

// ReportRequest asks an aggregator to collect a registered worker's state.
type ReportRequest struct {
	WorkerID uint64 `json:"worker_id"`
}

// Report is the result of collecting a worker's state.
type Report struct {
	AggregatorID string `json:"aggregator_id"`
	WorkerID     uint64 `json:"worker_id"`
	Value        uint64 `json:"value"`
}

// States is a snapshot of an aggregator's collected values.
type States struct {
	AggregatorID string   `json:"aggregator_id"`
	States       []uint64 `json:"states"`
}
