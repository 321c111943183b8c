package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/fairyhunter13/worker-aggregator/internal/config"
	httpopenapi "github.com/fairyhunter13/worker-aggregator/internal/http/openapi"
	"github.com/fairyhunter13/worker-aggregator/internal/model"
	"github.com/fairyhunter13/worker-aggregator/internal/obs"
	"github.com/fairyhunter13/worker-aggregator/internal/store"
)

type App struct {
	Cfg      config.Config
	Store    *store.Store
	Metrics  *obs.Metrics
	Gatherer prometheus.Gatherer
	closing  atomic.Bool
	started  time.Time
}

func NewApp(cfg config.Config, st *store.Store, m *obs.Metrics, g prometheus.Gatherer) *App {
	return &App{Cfg: cfg, Store: st, Metrics: m, Gatherer: g, started: time.Now()}
}

// StartShutdown makes mutating endpoints answer 503.
func (a *App) StartShutdown() { a.closing.Store(true) }

// decodeBody enforces a JSON content type and strict decoding into v.
// It writes the error response itself and reports whether decoding succeeded.
func (a *App) decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if a.closing.Load() {
		WriteJSONError(w, http.StatusServiceUnavailable, "shutting_down", "")
		return false
	}
	ct := r.Header.Get("Content-Type")
	if !strings.HasPrefix(strings.ToLower(ct), "application/json") {
		WriteJSONError(w, http.StatusUnsupportedMediaType, "unsupported_media_type", "expected application/json")
		return false
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return false
	}
	return true
}

func workerIDFromPath(r *http.Request) (uint64, bool) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	return id, err == nil
}

func (a *App) createWorkerHandler(w http.ResponseWriter, r *http.Request) {
	var spec model.WorkerSpec
	if !a.decodeBody(w, r, &spec) {
		return
	}
	st := a.Store.CreateWorker(spec.ID, spec.State)
	a.Metrics.Workers.Set(float64(a.Store.WorkerCount()))
	obs.Logger.Info("worker_created",
		"request_id", RequestIDFromContext(r.Context()),
		"worker_id", st.ID,
		"state", st.State,
	)
	writeJSON(w, http.StatusCreated, st)
}

func (a *App) performTaskHandler(w http.ResponseWriter, r *http.Request) {
	if a.closing.Load() {
		WriteJSONError(w, http.StatusServiceUnavailable, "shutting_down", "")
		return
	}
	id, ok := workerIDFromPath(r)
	if !ok {
		WriteJSONError(w, http.StatusNotFound, "worker_not_found", "")
		return
	}
	st, err := a.Store.PerformTask(id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	a.Metrics.TasksPerformed.Inc()
	obs.Logger.Info("task_performed",
		"request_id", RequestIDFromContext(r.Context()),
		"worker_id", st.ID,
		"state", st.State,
	)
	writeJSON(w, http.StatusOK, st)
}

func (a *App) reportStateHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := workerIDFromPath(r)
	if !ok {
		WriteJSONError(w, http.StatusNotFound, "worker_not_found", "")
		return
	}
	st, err := a.Store.ReportState(id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (a *App) createAggregatorHandler(w http.ResponseWriter, r *http.Request) {
	if a.closing.Load() {
		WriteJSONError(w, http.StatusServiceUnavailable, "shutting_down", "")
		return
	}
	id := a.Store.CreateAggregator()
	a.Metrics.Aggregators.Set(float64(a.Store.AggregatorCount()))
	obs.Logger.Info("aggregator_created",
		"request_id", RequestIDFromContext(r.Context()),
		"aggregator_id", id,
	)
	writeJSON(w, http.StatusCreated, model.AggregatorRef{ID: id})
}

func (a *App) collectStateHandler(w http.ResponseWriter, r *http.Request) {
	var req model.CollectRequest
	if !a.decodeBody(w, r, &req) {
		return
	}
	aggID := mux.Vars(r)["id"]
	if err := a.Store.CollectState(aggID, req.Value); err != nil {
		writeStoreError(w, err)
		return
	}
	a.Metrics.StatesCollected.Inc()
	obs.Logger.Info("state_collected",
		"request_id", RequestIDFromContext(r.Context()),
		"aggregator_id", aggID,
		"value", req.Value,
	)
	w.WriteHeader(http.StatusNoContent)
}

func (a *App) getAllStatesHandler(w http.ResponseWriter, r *http.Request) {
	aggID := mux.Vars(r)["id"]
	states, err := a.Store.GetAllStates(aggID)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, model.States{AggregatorID: aggID, States: states})
}

func (a *App) reportHandler(w http.ResponseWriter, r *http.Request) {
	var req model.ReportRequest
	if !a.decodeBody(w, r, &req) {
		return
	}
	aggID := mux.Vars(r)["id"]
	v, err := a.Store.ReportTo(aggID, req.WorkerID)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	a.Metrics.StatesCollected.Inc()
	obs.Logger.Info("state_reported",
		"request_id", RequestIDFromContext(r.Context()),
		"aggregator_id", aggID,
		"worker_id", req.WorkerID,
		"value", v,
	)
	writeJSON(w, http.StatusOK, model.Report{AggregatorID: aggID, WorkerID: req.WorkerID, Value: v})
}

func (a *App) healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":      "ok",
		"workers":     a.Store.WorkerCount(),
		"aggregators": a.Store.AggregatorCount(),
		"uptime_sec":  time.Since(a.started).Seconds(),
	})
}

func (a *App) openapiHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	_, _ = w.Write(httpopenapi.YAML)
}

func (a *App) docsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	html := `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>Worker Aggregator API</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/openapi.yaml',
        dom_id: '#swagger-ui'
      });
    </script>
  </body>
</html>`
	_, _ = w.Write([]byte(html))
}
