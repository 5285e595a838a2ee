package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		MatchesScheduled: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "golf_matches_scheduled_total",
			Help: "The total number of matches scheduled.",
		}),
		ScoresSubmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "golf_scores_submitted_total",
			Help: "The total number of score submissions that completed a match.",
		}),
		ScoreSubmissionDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "golf_score_submission_duration_seconds",
			Help:    "The duration of a score submission including the leaderboard update.",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),
		PersistenceFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "golf_persistence_failures_total",
			Help: "The total number of writes to the record store that failed.",
		}),
		SlackNotifSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "golf_slack_notifications_sent_total",
			Help: "The total number of Slack notifications successfully sent.",
		}),
		SlackNotifFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "golf_slack_notifications_failed_total",
			Help: "The total number of Slack notifications that failed to send.",
		}),
		RemindersSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "golf_reminders_sent_total",
			Help: "The total number of upcoming match reminders sent.",
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "golf_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.MatchesScheduled,
		s.ScoresSubmitted,
		s.ScoreSubmissionDuration,
		s.PersistenceFailures,
		s.SlackNotifSent,
		s.SlackNotifFailed,
		s.RemindersSent,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncMatchesScheduled() {
	s.MatchesScheduled.Inc()
}

func (s *Service) IncScoresSubmitted() {
	s.ScoresSubmitted.Inc()
}

func (s *Service) ObserveScoreSubmissionDuration(duration float64) {
	s.ScoreSubmissionDuration.Observe(duration)
}

func (s *Service) IncPersistenceFailures() {
	s.PersistenceFailures.Inc()
}

func (s *Service) IncSlackNotifSent() {
	s.SlackNotifSent.Inc()
}

func (s *Service) IncSlackNotifFailed() {
	s.SlackNotifFailed.Inc()
}

func (s *Service) IncRemindersSent() {
	s.RemindersSent.Inc()
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
