package http

import (
	"net/http"

	"github.com/mauv0809/golf-match-manager/internal/config"
	"github.com/mauv0809/golf-match-manager/internal/http/handlers"
	"github.com/mauv0809/golf-match-manager/internal/manager"
	"github.com/mauv0809/golf-match-manager/internal/notifier"
	"github.com/mauv0809/golf-match-manager/internal/pubsub"
	"github.com/mauv0809/golf-match-manager/internal/reminder"
)

func NewServer(mgr *manager.Manager, reminder *reminder.Reminder, notifier notifier.Notifier, metricsHandler http.Handler, cfg config.Config, pubsub pubsub.PubSubClient) *Server {
	server := &Server{
		Manager:        mgr,
		Reminder:       reminder,
		Notifier:       notifier,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Router:         http.NewServeMux(),
		pubsub:         pubsub,
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// e.g. Chain(handler, paramsMiddleware, auth)
	auth := requireSession(s.Manager)
	slackAuth := slackVerificationMiddleware(s.Cfg.Slack.SigningSecret)

	s.Router.Handle("GET /metrics", s.MetricsHandler)
	s.Router.Handle("GET /health", Chain(handlers.HealthCheckHandler(), paramsMiddleware))
	s.Router.Handle("GET /activity", Chain(handlers.ActivityHandler(s.Manager), paramsMiddleware))

	s.Router.Handle("POST /register", Chain(handlers.RegisterHandler(s.Manager), paramsMiddleware))
	s.Router.Handle("POST /login", Chain(handlers.LoginHandler(s.Manager), paramsMiddleware))
	s.Router.Handle("POST /logout", Chain(handlers.LogoutHandler(s.Manager), paramsMiddleware, auth))
	s.Router.Handle("GET /me", Chain(handlers.MeHandler(s.Manager), paramsMiddleware, auth))
	s.Router.Handle("PUT /me/profile", Chain(handlers.UpdateProfileHandler(s.Manager), paramsMiddleware, auth))
	s.Router.Handle("PUT /me/password", Chain(handlers.ChangePasswordHandler(s.Manager), paramsMiddleware, auth))

	s.Router.Handle("GET /matches", Chain(handlers.ListMatchesHandler(s.Manager), paramsMiddleware))
	s.Router.Handle("POST /matches", Chain(handlers.ScheduleMatchHandler(s.Manager), paramsMiddleware, auth))
	s.Router.Handle("GET /matches/{id}", Chain(handlers.GetMatchHandler(s.Manager), paramsMiddleware))
	s.Router.Handle("POST /matches/{id}/scores", Chain(handlers.SubmitScoreHandler(s.Manager), paramsMiddleware, auth))

	s.Router.Handle("GET /leaderboard", Chain(handlers.LeaderboardHandler(s.Manager), paramsMiddleware))
	s.Router.Handle("GET /leaderboard/position", Chain(handlers.PositionHandler(s.Manager), paramsMiddleware))
	s.Router.Handle("GET /standings", Chain(handlers.StandingsHandler(s.Manager), paramsMiddleware))
	s.Router.Handle("GET /players/{name}/stats", Chain(handlers.PlayerStatsHandler(s.Manager), paramsMiddleware))
	s.Router.Handle("GET /roster", Chain(handlers.RosterHandler(s.Manager), paramsMiddleware, auth))

	s.Router.Handle("POST /reminders/run", Chain(handlers.RunRemindersHandler(s.Reminder), paramsMiddleware))
	s.Router.Handle("POST /pubsub/match-completed", Chain(handlers.MatchCompletedHandler(s.Manager, s.Notifier, s.pubsub), paramsMiddleware))
	s.Router.Handle("POST /slack/command/leaderboard", Chain(handlers.LeaderboardCommandHandler(s.Manager, s.Notifier), paramsMiddleware, slackAuth))
	s.Router.Handle("POST /slack/command/player-stats", Chain(handlers.PlayerStatsCommandHandler(s.Manager, s.Notifier), paramsMiddleware, slackAuth))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
