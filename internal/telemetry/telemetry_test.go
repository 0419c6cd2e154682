package telemetry

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordAction(t *testing.T) {
	r := NewRegistry()
	r.RecordAction("ADD_NODE", true)
	r.RecordAction("ADD_NODE", true)
	r.RecordAction("ADD_NODE", false)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.ActionsTotal.WithLabelValues("ADD_NODE", "true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.ActionsTotal.WithLabelValues("ADD_NODE", "false")))
}

func TestRecordPersist(t *testing.T) {
	r := NewRegistry()
	r.RecordPersist(nil)
	r.RecordPersist(errors.New("down"))

	assert.Equal(t, 2.0, testutil.ToFloat64(r.PersistWritesTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.PersistFailuresTotal))
}

func TestTimeRecalculate(t *testing.T) {
	r := NewRegistry()
	double := TimeRecalculate(r, func(n int) int { return n * 2 })

	assert.Equal(t, 4, double(2))
	assert.Equal(t, 1, testutil.CollectAndCount(r.RecalculateDuration))
}

func TestHandlerExposesMetrics(t *testing.T) {
	r := NewRegistry()
	r.RecordHTTPRequest("GET", "/health", "200", 5*time.Millisecond)
	r.Companies.Set(2)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `whatif_http_requests_total{method="GET",path="/health",status="200"} 1`)
	assert.Contains(t, body, "whatif_companies 2")
	assert.Contains(t, body, "go_goroutines")
}

func TestRegistriesAreIndependent(t *testing.T) {
	a, b := NewRegistry(), NewRegistry()
	a.RecordAction("RESET_SCENARIO", true)
	assert.Equal(t, 0.0, testutil.ToFloat64(b.ActionsTotal.WithLabelValues("RESET_SCENARIO", "true")))
}
