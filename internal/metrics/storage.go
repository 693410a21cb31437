package metrics

import "time"

// RecordStorageRequest records an object storage call
func (m *Metrics) RecordStorageRequest(operation string, err error, duration time.Duration) {
	m.safeExecute("RecordStorageRequest", func() {
		status := "ok"
		if err != nil {
			status = "error"
		}
		m.StorageRequestsTotal.WithLabelValues(operation, status).Inc()
		m.StorageRequestDuration.WithLabelValues(operation, status).Observe(duration.Seconds())
	})
}

// RecordStorageError records a categorized object storage failure
func (m *Metrics) RecordStorageError(operation, errorType string) {
	m.safeExecute("RecordStorageError", func() {
		m.StorageErrors.WithLabelValues(operation, errorType).Inc()
	})
}
