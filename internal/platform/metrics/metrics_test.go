package metrics

import (
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveHTTPRequest(t *testing.T) {
	m := New(prometheus.NewRegistry())
	m.ObserveHTTPRequest(http.MethodGet, "/v1/chains", http.StatusOK, 20*time.Millisecond)
	m.ObserveHTTPRequest(http.MethodGet, "/v1/chains", http.StatusOK, 10*time.Millisecond)

	assert.InDelta(t, 2, testutil.ToFloat64(m.HTTPRequests.WithLabelValues(http.MethodGet, "/v1/chains", "200")), 0)
}

func TestObserveHTTPRequest_NilSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveHTTPRequest(http.MethodGet, "/healthz", http.StatusOK, time.Millisecond)
	})
}
