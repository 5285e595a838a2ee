package http

import (
	"net/http"

	"github.com/mauv0809/golf-match-manager/internal/config"
	"github.com/mauv0809/golf-match-manager/internal/manager"
	"github.com/mauv0809/golf-match-manager/internal/notifier"
	"github.com/mauv0809/golf-match-manager/internal/pubsub"
	"github.com/mauv0809/golf-match-manager/internal/reminder"
)

type Server struct {
	Manager        *manager.Manager
	Reminder       *reminder.Reminder
	Notifier       notifier.Notifier
	MetricsHandler http.Handler
	Cfg            config.Config
	Router         *http.ServeMux
	pubsub         pubsub.PubSubClient
}
