package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/fairyhunter13/worker-aggregator/internal/config"
	httpapi "github.com/fairyhunter13/worker-aggregator/internal/http"
	"github.com/fairyhunter13/worker-aggregator/internal/model"
	"github.com/fairyhunter13/worker-aggregator/internal/obs"
	"github.com/fairyhunter13/worker-aggregator/internal/store"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	obs.Configure(&bytes.Buffer{}, "error", "json")
	reg := prometheus.NewRegistry()
	app := httpapi.NewApp(config.Load(), store.New(&bytes.Buffer{}), obs.NewMetrics(reg), reg)
	srv := httptest.NewServer(httpapi.NewRouter(app))
	t.Cleanup(srv.Close)
	return srv
}

func post(t *testing.T, url, body string) *http.Response {
	t.Helper()
	var rdr *bytes.Buffer
	if body == "" {
		rdr = &bytes.Buffer{}
	} else {
		rdr = bytes.NewBufferString(body)
	}
	resp, err := http.Post(url, "application/json", rdr)
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

// TestIntegration_WorkersReportConcurrently drives several workers from
// separate goroutines, each reporting every state into one aggregator.
func TestIntegration_WorkersReportConcurrently(t *testing.T) {
	srv := newServer(t)

	resp := post(t, srv.URL+"/aggregators", "")
	var ref model.AggregatorRef
	if err := json.NewDecoder(resp.Body).Decode(&ref); err != nil {
		t.Fatalf("decode: %v", err)
	}
	_ = resp.Body.Close()

	const workers, tasks = 4, 5
	var wg sync.WaitGroup
	for id := 1; id <= workers; id++ {
		r := post(t, srv.URL+"/workers", fmt.Sprintf(`{"id":%d,"state":%d}`, id, id*100))
		_ = r.Body.Close()
		if r.StatusCode != http.StatusCreated {
			t.Fatalf("expected 201, got %d", r.StatusCode)
		}
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for i := 0; i < tasks; i++ {
				r, err := http.Post(fmt.Sprintf("%s/workers/%d/tasks", srv.URL, id), "application/json", nil)
				if err != nil {
					t.Error(err)
					return
				}
				_ = r.Body.Close()
				body := bytes.NewBufferString(fmt.Sprintf(`{"worker_id":%d}`, id))
				r, err = http.Post(fmt.Sprintf("%s/aggregators/%s/reports", srv.URL, ref.ID), "application/json", body)
				if err != nil {
					t.Error(err)
					return
				}
				_ = r.Body.Close()
				if r.StatusCode != http.StatusOK {
					t.Errorf("report: expected 200, got %d", r.StatusCode)
					return
				}
			}
		}(id)
	}
	wg.Wait()

	g, err := http.Get(srv.URL + "/aggregators/" + ref.ID + "/states")
	if err != nil {
		t.Fatal(err)
	}
	defer g.Body.Close()
	var states model.States
	if err := json.NewDecoder(g.Body).Decode(&states); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(states.States) != workers*tasks {
		t.Fatalf("expected %d states, got %d", workers*tasks, len(states.States))
	}

	var want []uint64
	for id := 1; id <= workers; id++ {
		for i := 1; i <= tasks; i++ {
			want = append(want, uint64(id*100+i))
		}
	}
	got := append([]uint64(nil), states.States...)
	sort.Slice(got, func(i, j int) bool { return got[i] < got[j] })
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("unexpected states: %v", states.States)
		}
	}
}
