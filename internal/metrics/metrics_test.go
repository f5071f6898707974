package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecorders(t *testing.T) {
	m := New()
	m.OrderPlaced()
	m.StatusChanged("preparing")
	m.StatusChanged("preparing")
	m.ObserveRequest("/health", "200", 1.5)

	if got := testutil.ToFloat64(m.OrdersPlaced); got != 1 {
		t.Fatalf("orders placed = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.StatusTransitions.WithLabelValues("preparing")); got != 2 {
		t.Fatalf("preparing transitions = %v, want 2", got)
	}

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	if !strings.Contains(rec.Body.String(), "fooddash_http_requests_total") {
		t.Fatalf("metrics output misses request counter")
	}
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.OrderPlaced()
	m.StatusChanged("placed")
	m.FeedbackReceived("5")
	m.TrackerStarted()
	m.TrackerStopped()
	m.ObserveRequest("/", "200", 1)
}
