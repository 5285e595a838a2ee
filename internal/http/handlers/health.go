package handlers

import (
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/golf-match-manager/internal/manager"
)

func HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

// ActivityHandler serves the persisted activity counters.
func ActivityHandler(mgr *manager.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		counters, err := mgr.Activity()
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, counters)
	}
}
