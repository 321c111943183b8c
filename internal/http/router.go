package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter registers HTTP routes and returns the handler with middleware.
func NewRouter(app *App) http.Handler {
	r := mux.NewRouter()
	r.Use(withMetrics(app.Metrics))

	r.HandleFunc("/workers", app.createWorkerHandler).Methods(http.MethodPost)
	r.HandleFunc("/workers/{id:[0-9]+}/tasks", app.performTaskHandler).Methods(http.MethodPost)
	r.HandleFunc("/workers/{id:[0-9]+}/state", app.reportStateHandler).Methods(http.MethodGet)

	r.HandleFunc("/aggregators", app.createAggregatorHandler).Methods(http.MethodPost)
	r.HandleFunc("/aggregators/{id}/states", app.collectStateHandler).Methods(http.MethodPost)
	r.HandleFunc("/aggregators/{id}/states", app.getAllStatesHandler).Methods(http.MethodGet)
	r.HandleFunc("/aggregators/{id}/reports", app.reportHandler).Methods(http.MethodPost)

	r.HandleFunc("/healthz", app.healthHandler).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.HandlerFor(app.Gatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	r.HandleFunc("/openapi.yaml", app.openapiHandler).Methods(http.MethodGet)
	r.HandleFunc("/docs", app.docsHandler).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		WriteJSONError(w, http.StatusNotFound, "not_found", "")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		WriteJSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", "")
	})
	return WithRequestID(WithLogging(WithRecover(r)))
}
