package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/golf-match-manager/internal/reminder"
)

// RunRemindersHandler triggers one reminder pass, for external schedulers
// that call in instead of relying on the in-process job.
func RunRemindersHandler(r *reminder.Reminder) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		log.Info("Starting reminder run...")
		sent := r.RunOnce(time.Now().UTC(), IsDryRunFromContext(req))

		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "Reminder run completed. Sent %d reminder(s).\n", sent)
		log.Info("Reminder run finished.", "sent", sent)
	}
}
