package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Record(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveRequest("GET", "/api/questions", "200", 0.02)
	m.ObserveGeneration("fill_blank", "ok", "openai:gpt-4o-mini", 12)
	m.ObserveGeneration("fill_blank", "invalid_shape", "openai:gpt-4o-mini", 0)
	m.SessionStarted()
	m.SessionCompleted("advanced")
	m.SetBankSize("beginner", 42)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestCounter.WithLabelValues("GET", "/api/questions", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Generations.WithLabelValues("fill_blank", "invalid_shape")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SessionsStarted))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SessionsCompleted.WithLabelValues("advanced")))
	assert.Equal(t, 42.0, testutil.ToFloat64(m.BankSize.WithLabelValues("beginner")))
}

func TestMetrics_Handler(t *testing.T) {
	m := New(prometheus.NewRegistry())
	m.SessionStarted()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "level_test_sessions_started_total 1")
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveRequest("GET", "/", "200", 1)
		m.ObserveGeneration("dialogue", "ok", "x", 1)
		m.SessionStarted()
		m.SessionCompleted("beginner")
		m.SetBankSize("advanced", 1)
	})
}
