package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/golf-match-manager/internal/club"
	"github.com/mauv0809/golf-match-manager/internal/golf"
	"github.com/mauv0809/golf-match-manager/internal/manager"
	"github.com/mauv0809/golf-match-manager/internal/ranking"
	"github.com/mauv0809/golf-match-manager/internal/session"
	"github.com/slack-go/slack"
)

// ContextKey is a custom type to avoid key collisions in context.
type ContextKey string

const (
	DryRunKey    ContextKey = "dryRun"
	UserEmailKey ContextKey = "userEmail"
	TokenKey     ContextKey = "token"
)

// IsDryRunFromContext is a helper to safely retrieve the dry_run flag from the request context.
func IsDryRunFromContext(r *http.Request) bool {
	dryRun, ok := r.Context().Value(DryRunKey).(bool)
	return ok && dryRun
}

// UserEmailFromContext returns the email of the authenticated user.
func UserEmailFromContext(r *http.Request) string {
	email, _ := r.Context().Value(UserEmailKey).(string)
	return email
}

// TokenFromContext returns the session token of the authenticated request.
func TokenFromContext(r *http.Request) string {
	token, _ := r.Context().Value(TokenKey).(string)
	return token
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to write response", "error", err)
	}
}

type errorResponse struct {
	Error       string            `json:"error"`
	Suggestions []club.Suggestion `json:"suggestions,omitempty"`
}

var statusByError = []struct {
	err    error
	status int
}{
	{manager.ErrInvalidCredentials, http.StatusUnauthorized},
	{session.ErrSessionNotFound, http.StatusUnauthorized},
	{manager.ErrNotParticipant, http.StatusForbidden},
	{club.ErrUserNotFound, http.StatusNotFound},
	{club.ErrMatchNotFound, http.StatusNotFound},
	{club.ErrEmailExists, http.StatusConflict},
	{club.ErrNameTaken, http.StatusConflict},
	{golf.ErrMatchCompleted, http.StatusConflict},
	{manager.ErrInvalidRegistration, http.StatusBadRequest},
	{manager.ErrPasswordMismatch, http.StatusBadRequest},
	{manager.ErrUnknownOpponent, http.StatusBadRequest},
	{golf.ErrSelfMatch, http.StatusBadRequest},
	{golf.ErrInvalidParticipants, http.StatusBadRequest},
	{golf.ErrInvalidHandicap, http.StatusBadRequest},
	{golf.ErrInvalidFormat, http.StatusBadRequest},
	{golf.ErrInvalidLocation, http.StatusBadRequest},
	{golf.ErrInvalidCoursePar, http.StatusBadRequest},
	{golf.ErrInvalidScore, http.StatusBadRequest},
	{golf.ErrInvalidConditions, http.StatusBadRequest},
	{golf.ErrInvalidStats, http.StatusBadRequest},
	{golf.ErrInvalidStatus, http.StatusBadRequest},
	{ranking.ErrInvalidSortKey, http.StatusBadRequest},
	{ranking.ErrInvalidOrder, http.StatusBadRequest},
}

// statusFor maps a use-case error to the HTTP status it is reported with.
func statusFor(err error) int {
	for _, e := range statusByError {
		if errors.Is(err, e.err) {
			return e.status
		}
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Error("Request failed", "error", err)
		writeJSON(w, status, errorResponse{Error: "internal server error"})
		return
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		log.Warn("Invalid request body", "error", err)
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return false
	}
	return true
}

// respondWithSlackMsg is a helper to format and write a Slack message as an HTTP response.
func respondWithSlackMsg(w http.ResponseWriter, msg any) {
	slackMsg, ok := msg.(slack.Message)
	if !ok {
		http.Error(w, "Invalid message format for Slack", http.StatusInternalServerError)
		log.Error("Failed to cast message to slack.Message")
		return
	}
	writeJSON(w, http.StatusOK, slackMsg)
}
