package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncMatchesScheduled()
	IncScoresSubmitted()
	ObserveScoreSubmissionDuration(duration float64)
	IncPersistenceFailures()
	IncSlackNotifSent()
	IncSlackNotifFailed()
	IncRemindersSent()
	SetStartupTime(duration float64)
}

// MetricsStore keeps lifetime activity counters in the database so they
// survive restarts, unlike the Prometheus counters.
type MetricsStore interface {
	Increment(key string)
	GetAll() (map[string]int, error)
}
