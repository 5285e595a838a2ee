package handlers

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/golf-match-manager/internal/club"
	"github.com/mauv0809/golf-match-manager/internal/golf"
	"github.com/mauv0809/golf-match-manager/internal/manager"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string     `json:"token"`
	User  *golf.User `json:"user"`
}

func RegisterHandler(mgr *manager.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req manager.RegisterRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		user, err := mgr.Register(req, IsDryRunFromContext(r))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, user)
	}
}

func LoginHandler(mgr *manager.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		token, user, err := mgr.Login(req.Email, req.Password)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, loginResponse{Token: token, User: user})
	}
}

func LogoutHandler(mgr *manager.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := mgr.Logout(TokenFromContext(r)); err != nil {
			log.Warn("Logout failed", "error", err)
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func MeHandler(mgr *manager.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := mgr.CurrentUser(UserEmailFromContext(r))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, user)
	}
}

func UpdateProfileHandler(mgr *manager.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var update club.ProfileUpdate
		if !decodeJSON(w, r, &update) {
			return
		}
		user, err := mgr.UpdateProfile(UserEmailFromContext(r), update)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, user)
	}
}

func ChangePasswordHandler(mgr *manager.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req manager.ChangePasswordRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		if err := mgr.ChangePassword(UserEmailFromContext(r), req); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
