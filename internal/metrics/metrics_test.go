package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

// counterValue sums the samples of a counter family whose labels include
// every pair in want.
func counterValue(t *testing.T, m *Metrics, name string, want map[string]string) float64 {
	t.Helper()
	families, err := m.Registry().Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}
	var total float64
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, metric := range mf.GetMetric() {
			labels := map[string]string{}
			for _, lp := range metric.GetLabel() {
				labels[lp.GetName()] = lp.GetValue()
			}
			match := true
			for k, v := range want {
				if labels[k] != v {
					match = false
				}
			}
			if match {
				total += metric.GetCounter().GetValue()
			}
		}
	}
	return total
}

func TestObserveRequest(t *testing.T) {
	t.Parallel()

	m := New()
	m.ObserveRequest(http.MethodPost, "/api/parse", http.StatusOK, 3*time.Millisecond)
	m.ObserveRequest(http.MethodPost, "/api/parse", http.StatusOK, time.Millisecond)
	m.ObserveRequest(http.MethodPost, "/api/parse", http.StatusBadRequest, time.Millisecond)

	if got := counterValue(t, m, "seopost_http_requests_total", map[string]string{"status": "200"}); got != 2 {
		t.Errorf("200 requests = %v, want 2", got)
	}
	if got := counterValue(t, m, "seopost_http_requests_total", map[string]string{"route": "/api/parse"}); got != 3 {
		t.Errorf("route total = %v, want 3", got)
	}
}

func TestObserveParse(t *testing.T) {
	t.Parallel()

	m := New()
	m.ObserveParse(true, 0)
	m.ObserveParse(false, 3)
	m.ObserveParse(false, 2)

	if got := counterValue(t, m, "seopost_documents_parsed_total", map[string]string{"valid": "false"}); got != 2 {
		t.Errorf("invalid documents = %v, want 2", got)
	}
	if got := counterValue(t, m, "seopost_parse_warnings_total", nil); got != 5 {
		t.Errorf("warnings = %v, want 5", got)
	}
}

func TestObserveRender(t *testing.T) {
	t.Parallel()

	m := New()
	m.ObserveRender("styled", time.Millisecond)

	if got := counterValue(t, m, "seopost_generated_outputs_total", map[string]string{"format": "styled"}); got != 1 {
		t.Errorf("styled outputs = %v, want 1", got)
	}
}

func TestHandler(t *testing.T) {
	t.Parallel()

	m := New()
	m.ObserveParse(true, 1)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body, _ := io.ReadAll(rec.Body)
	for _, want := range []string{"seopost_documents_parsed_total", "go_goroutines"} {
		if !strings.Contains(string(body), want) {
			t.Errorf("exposition missing %s", want)
		}
	}
}

func TestNew_IndependentRegistries(t *testing.T) {
	t.Parallel()

	a, b := New(), New()
	a.ObserveParse(true, 0)
	if got := counterValue(t, b, "seopost_documents_parsed_total", nil); got != 0 {
		t.Errorf("registries leak: %v", got)
	}
}
