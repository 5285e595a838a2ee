package handlers

import (
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/golf-match-manager/internal/manager"
	"github.com/mauv0809/golf-match-manager/internal/notifier"
	"github.com/mauv0809/golf-match-manager/internal/pubsub"
)

// pushMessage is the envelope of a Pub/Sub push subscription request.
type pushMessage struct {
	Subscription string `json:"subscription"`
	Message      struct {
		Data string `json:"data"`
	} `json:"message"`
}

// MatchCompletedHandler consumes match-completed push messages and posts the
// refreshed leaderboard to Slack.
func MatchCompletedHandler(mgr *manager.Manager, notifier notifier.Notifier, pubsubClient pubsub.PubSubClient) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			log.Error("Failed to read request body", "error", err)
			http.Error(w, "Failed to read request body", http.StatusInternalServerError)
			return
		}
		log.Debug("Received match completed message", "body", string(bodyBytes))

		var msg pushMessage
		if err := json.Unmarshal(bodyBytes, &msg); err != nil {
			log.Error("Failed to unmarshal wrapper JSON", "error", err)
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		rawData, err := base64.StdEncoding.DecodeString(msg.Message.Data)
		if err != nil {
			log.Error("Failed to decode base64 data", "error", err)
			http.Error(w, "Invalid base64 data", http.StatusBadRequest)
			return
		}

		var event pubsub.MatchCompletedEvent
		if err := pubsubClient.ProcessMessage(rawData, &event); err != nil {
			log.Error("Failed to decode match completed event", "error", err)
			http.Error(w, "Invalid message payload", http.StatusBadRequest)
			return
		}
		log.Info("Match completed event received", "matchID", event.MatchID, "winner", event.Winner, "tie", event.Tie)

		entries, err := mgr.Leaderboard("", "")
		if err != nil {
			log.Error("Failed to load leaderboard", "error", err)
			http.Error(w, "Failed to load leaderboard", http.StatusInternalServerError)
			return
		}
		if err := notifier.SendLeaderboard(entries, IsDryRunFromContext(r)); err != nil {
			log.Error("Failed to post leaderboard", "error", err)
			http.Error(w, "Failed to post leaderboard", http.StatusInternalServerError)
			return
		}
		w.Write([]byte("OK"))
	}
}
