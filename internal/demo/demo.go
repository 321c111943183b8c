// Package demo runs the scripted worker/aggregator scenario used by the CLI.
package demo

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/fairyhunter13/worker-aggregator/internal/aggregator"
	"github.com/fairyhunter13/worker-aggregator/internal/config"
	"github.com/fairyhunter13/worker-aggregator/internal/obs"
	"github.com/fairyhunter13/worker-aggregator/internal/worker"
)

// Result summarizes one demo run.
type Result struct {
	WorkerID   uint64
	FinalState uint64
	States     []uint64
}

// Run builds a worker and an aggregator, performs cfg.DemoTasks tasks and
// collects the worker's state after each one. Task lines are written to out.
func Run(cfg config.Config, out io.Writer) Result {
	w := worker.New(cfg.DemoWorkerID, cfg.DemoInitialState, worker.WithOutput(out))
	agg := aggregator.New()
	for i := 0; i < cfg.DemoTasks; i++ {
		w.PerformTask()
		agg.CollectState(w.ReportState())
	}
	res := Result{
		WorkerID:   w.ID(),
		FinalState: w.ReportState(),
		States:     agg.GetAllStates(),
	}
	obs.Logger.Debug("demo_complete",
		"worker_id", res.WorkerID,
		"final_state", res.FinalState,
		"collected", len(res.States),
	)
	return res
}

// Render prints the collected states as a table.
func Render(out io.Writer, res Result) error {
	table := tablewriter.NewWriter(out)
	table.Header("Step", "Worker", "State")
	for i, s := range res.States {
		if err := table.Append(
			strconv.Itoa(i+1),
			strconv.FormatUint(res.WorkerID, 10),
			strconv.FormatUint(s, 10),
		); err != nil {
			return fmt.Errorf("failed to append row: %w", err)
		}
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}
	_, err := fmt.Fprintf(out, "\nFinal state of worker %d: %d\n", res.WorkerID, res.FinalState)
	return err
}
