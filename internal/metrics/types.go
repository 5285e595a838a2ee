package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service holds all the Prometheus metrics for the application.
type Service struct {
	MatchesScheduled        prometheus.Counter
	ScoresSubmitted         prometheus.Counter
	ScoreSubmissionDuration prometheus.Histogram
	PersistenceFailures     prometheus.Counter
	SlackNotifSent          prometheus.Counter
	SlackNotifFailed        prometheus.Counter
	RemindersSent           prometheus.Counter
	StartupTimeSeconds      prometheus.Gauge
}

// Activity counter keys stored through MetricsStore.
const (
	KeyPlayersRegistered = "players_registered"
	KeyMatchesScheduled  = "matches_scheduled"
	KeyScoresSubmitted   = "scores_submitted"
	KeyRemindersSent     = "reminders_sent"
)
