package handlers

import (
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/golf-match-manager/internal/manager"
	"github.com/mauv0809/golf-match-manager/internal/notifier"
)

// LeaderboardCommandHandler answers /leaderboard. The optional text is a sort
// key, e.g. "/leaderboard handicap".
func LeaderboardCommandHandler(mgr *manager.Manager, notifier notifier.Notifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Error parsing form", http.StatusBadRequest)
			return
		}
		sortKey := strings.TrimSpace(r.FormValue("text"))
		order := ""
		if sortKey == "handicap" {
			order = "asc"
		}

		entries, err := mgr.Leaderboard(sortKey, order)
		if err != nil {
			log.Warn("Invalid leaderboard command", "text", sortKey, "error", err)
			http.Error(w, "Unknown sort key. Use points, handicap or matches_played.", http.StatusBadRequest)
			return
		}

		msg, err := notifier.FormatLeaderboardResponse(entries)
		if err != nil {
			http.Error(w, "Failed to format leaderboard", http.StatusInternalServerError)
			log.Error("Failed to format leaderboard", "error", err)
			return
		}
		respondWithSlackMsg(w, msg)
	}
}

// PlayerStatsCommandHandler answers /player-stats <name>.
func PlayerStatsCommandHandler(mgr *manager.Manager, notifier notifier.Notifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Error parsing form", http.StatusBadRequest)
			return
		}
		playerName := strings.Join(strings.Fields(r.FormValue("text")), " ")
		if playerName == "" {
			http.Error(w, "Player name is required.", http.StatusBadRequest)
			return
		}
		log.Info("Received player stats command", "player", playerName)

		var msg any
		var err error
		if !mgr.IsKnownPlayer(playerName) {
			log.Warn("Could not find player", "player", playerName)
			msg, err = notifier.FormatPlayerNotFoundResponse(playerName, mgr.SuggestPlayers(playerName))
		} else {
			stats, statsErr := mgr.PlayerStatistics(playerName)
			if statsErr != nil {
				http.Error(w, "Failed to get player stats", http.StatusInternalServerError)
				log.Error("Failed to get player stats", "player", playerName, "error", statsErr)
				return
			}
			pos, posErr := mgr.PlayerPosition(playerName, "", "")
			if posErr != nil {
				http.Error(w, "Failed to get player position", http.StatusInternalServerError)
				log.Error("Failed to get player position", "player", playerName, "error", posErr)
				return
			}
			msg, err = notifier.FormatPlayerStatsResponse(stats, pos)
		}
		if err != nil {
			http.Error(w, "Failed to format player stats", http.StatusInternalServerError)
			log.Error("Failed to format player stats", "error", err)
			return
		}
		respondWithSlackMsg(w, msg)
	}
}
