package metrics

// IncrementUserRegistered increments the registration counter
func (m *Metrics) IncrementUserRegistered() {
	m.safeExecute("IncrementUserRegistered", func() {
		m.UserRegisteredTotal.Inc()
	})
}

// IncrementProjectCreated increments the project creation counter
func (m *Metrics) IncrementProjectCreated() {
	m.safeExecute("IncrementProjectCreated", func() {
		m.ProjectCreatedTotal.Inc()
	})
}

// IncrementTaskCreated increments the task creation counter
func (m *Metrics) IncrementTaskCreated() {
	m.safeExecute("IncrementTaskCreated", func() {
		m.TaskCreatedTotal.Inc()
	})
}

// IncrementTaskCompleted increments the task completion counter
func (m *Metrics) IncrementTaskCompleted() {
	m.safeExecute("IncrementTaskCompleted", func() {
		m.TaskCompletedTotal.Inc()
	})
}

// SetUsersTotal sets the registered users gauge
func (m *Metrics) SetUsersTotal(count int64) {
	m.safeExecute("SetUsersTotal", func() {
		m.UsersTotal.Set(float64(count))
	})
}

// SetProjectsTotal sets the projects gauge
func (m *Metrics) SetProjectsTotal(count int64) {
	m.safeExecute("SetProjectsTotal", func() {
		m.ProjectsTotal.Set(float64(count))
	})
}

// SetTasksTotal sets the tasks gauge
func (m *Metrics) SetTasksTotal(count int64) {
	m.safeExecute("SetTasksTotal", func() {
		m.TasksTotal.Set(float64(count))
	})
}
