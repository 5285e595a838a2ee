package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/golf-match-manager/internal/golf"
	"github.com/mauv0809/golf-match-manager/internal/manager"
)

func ListMatchesHandler(mgr *manager.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := manager.MatchFilter{
			Status: golf.MatchStatus(r.URL.Query().Get("status")),
			Player: r.URL.Query().Get("player"),
		}
		if filter.Status == "All" {
			filter.Status = ""
		}
		matches, err := mgr.ListMatches(filter)
		if err != nil {
			writeError(w, err)
			return
		}
		if matches == nil {
			matches = []*golf.Match{}
		}
		writeJSON(w, http.StatusOK, matches)
	}
}

func ScheduleMatchHandler(mgr *manager.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req manager.ScheduleMatchRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		match, err := mgr.ScheduleMatch(UserEmailFromContext(r), req, IsDryRunFromContext(r))
		if errors.Is(err, manager.ErrUnknownOpponent) {
			writeJSON(w, http.StatusBadRequest, errorResponse{
				Error:       err.Error(),
				Suggestions: mgr.SuggestPlayers(req.Opponent),
			})
			return
		}
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, match)
	}
}

func matchID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id <= 0 {
		log.Warn("Invalid match id", "id", r.PathValue("id"))
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid match id"})
		return 0, false
	}
	return id, true
}

func GetMatchHandler(mgr *manager.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := matchID(w, r)
		if !ok {
			return
		}
		match, err := mgr.Match(id)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, match)
	}
}

func SubmitScoreHandler(mgr *manager.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := matchID(w, r)
		if !ok {
			return
		}
		var sub golf.ScoreSubmission
		if !decodeJSON(w, r, &sub) {
			return
		}
		completion, err := mgr.SubmitScore(UserEmailFromContext(r), id, sub, IsDryRunFromContext(r))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, completion)
	}
}

func LeaderboardHandler(mgr *manager.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := mgr.Leaderboard(r.URL.Query().Get("sort"), r.URL.Query().Get("order"))
		if err != nil {
			writeError(w, err)
			return
		}
		if entries == nil {
			entries = []golf.LeaderboardEntry{}
		}
		writeJSON(w, http.StatusOK, entries)
	}
}

func PositionHandler(mgr *manager.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		player := q.Get("player")
		if player == "" {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "player is required"})
			return
		}
		pos, err := mgr.PlayerPosition(player, q.Get("sort"), q.Get("order"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, pos)
	}
}

func StandingsHandler(mgr *manager.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		standings, err := mgr.Standings()
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, standings)
	}
}

func PlayerStatsHandler(mgr *manager.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := r.PathValue("name")
		if !mgr.IsKnownPlayer(name) {
			writeJSON(w, http.StatusNotFound, errorResponse{
				Error:       "player not found: " + name,
				Suggestions: mgr.SuggestPlayers(name),
			})
			return
		}
		stats, err := mgr.PlayerStatistics(name)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, stats)
	}
}

// RosterHandler lists every schedulable opponent, leaving out the caller.
func RosterHandler(mgr *manager.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		exclude := ""
		if email := UserEmailFromContext(r); email != "" {
			if user, err := mgr.CurrentUser(email); err == nil {
				exclude = user.Name
			}
		}
		roster, err := mgr.Roster(exclude)
		if err != nil {
			writeError(w, err)
			return
		}
		if roster == nil {
			roster = []string{}
		}
		writeJSON(w, http.StatusOK, roster)
	}
}
