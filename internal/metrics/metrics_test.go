package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestMetrics(t *testing.T) (*Metrics, *prometheus.Registry) {
	t.Helper()
	registry := prometheus.NewRegistry()
	return NewWithRegistry(registry, zap.NewNop()), registry
}

func findMetricFamily(t *testing.T, registry *prometheus.Registry, name string) *dto.MetricFamily {
	t.Helper()

	families, err := registry.Gather()
	require.NoError(t, err)

	for _, family := range families {
		if family.GetName() == name {
			return family
		}
	}
	return nil
}

func counterValue(t *testing.T, registry *prometheus.Registry, name string) float64 {
	t.Helper()

	family := findMetricFamily(t, registry, name)
	if family == nil {
		return 0
	}
	var total float64
	for _, metric := range family.GetMetric() {
		total += metric.GetCounter().GetValue()
	}
	return total
}

func TestMetrics_RecordHTTPRequest(t *testing.T) {
	m, registry := newTestMetrics(t)

	m.RecordHTTPRequest("GET", "/api/projects", 200, 50*time.Millisecond)
	m.RecordHTTPRequest("GET", "/api/projects", 404, 5*time.Millisecond)

	family := findMetricFamily(t, registry, "taskboard_http_requests_total")
	require.NotNil(t, family)
	require.Len(t, family.GetMetric(), 2)

	statuses := make(map[string]float64)
	for _, metric := range family.GetMetric() {
		for _, label := range metric.GetLabel() {
			if label.GetName() == "status" {
				statuses[label.GetValue()] = metric.GetCounter().GetValue()
			}
		}
	}
	assert.Equal(t, float64(1), statuses["2xx"])
	assert.Equal(t, float64(1), statuses["4xx"])
}

func TestMetrics_RecordDBQuery(t *testing.T) {
	m, registry := newTestMetrics(t)

	m.RecordDBQuery("SELECT", "tasks", time.Millisecond, nil)
	m.RecordDBQuery("INSERT", "tasks", time.Millisecond, errors.New("boom"))

	assert.Equal(t, float64(1), counterValue(t, registry, "taskboard_db_query_errors_total"))

	family := findMetricFamily(t, registry, "taskboard_db_query_duration_seconds")
	require.NotNil(t, family)
	assert.Len(t, family.GetMetric(), 2)
}

func TestMetrics_BusinessCounters(t *testing.T) {
	m, registry := newTestMetrics(t)

	m.IncrementUserRegistered()
	m.IncrementProjectCreated()
	m.IncrementTaskCreated()
	m.IncrementTaskCreated()
	m.IncrementTaskCompleted()
	m.SetTasksTotal(42)

	assert.Equal(t, float64(1), counterValue(t, registry, "taskboard_user_registered_total"))
	assert.Equal(t, float64(1), counterValue(t, registry, "taskboard_project_created_total"))
	assert.Equal(t, float64(2), counterValue(t, registry, "taskboard_task_created_total"))
	assert.Equal(t, float64(1), counterValue(t, registry, "taskboard_task_completed_total"))

	family := findMetricFamily(t, registry, "taskboard_tasks_total")
	require.NotNil(t, family)
	assert.Equal(t, float64(42), family.GetMetric()[0].GetGauge().GetValue())
}

func TestMetrics_RecordStorageRequest(t *testing.T) {
	m, registry := newTestMetrics(t)

	m.RecordStorageRequest("presign_put", nil, 10*time.Millisecond)
	m.RecordStorageRequest("delete", errors.New("timeout"), 10*time.Millisecond)

	family := findMetricFamily(t, registry, "taskboard_storage_requests_total")
	require.NotNil(t, family)

	statuses := make(map[string]float64)
	for _, metric := range family.GetMetric() {
		for _, label := range metric.GetLabel() {
			if label.GetName() == "status" {
				statuses[label.GetValue()] += metric.GetCounter().GetValue()
			}
		}
	}
	assert.Equal(t, float64(1), statuses["ok"])
	assert.Equal(t, float64(1), statuses["error"])
}

func TestMetrics_SafeExecute_RecoversPanic(t *testing.T) {
	m := &Metrics{logger: zap.NewNop()}

	// All counters are nil; every operation would panic without recovery.
	assert.NotPanics(t, func() {
		m.IncrementTaskCreated()
		m.RecordHTTPRequest("GET", "/x", 200, time.Millisecond)
		m.UpdateDBStats("not-db-stats")
	})
}

func TestShouldSkipEndpoint(t *testing.T) {
	assert.True(t, ShouldSkipEndpoint("/metrics"))
	assert.True(t, ShouldSkipEndpoint("/health"))
	assert.False(t, ShouldSkipEndpoint("/api/projects"))
}
