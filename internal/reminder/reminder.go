package reminder

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-co-op/gocron/v2"
	"github.com/mauv0809/golf-match-manager/internal/club"
	"github.com/mauv0809/golf-match-manager/internal/golf"
	"github.com/mauv0809/golf-match-manager/internal/metrics"
	"github.com/mauv0809/golf-match-manager/internal/notifier"
)

// Store is the part of the record store the reminder job needs.
type Store interface {
	GetMatchesNeedingReminder(from, to time.Time) ([]*golf.Match, error)
	UpdateNotificationTimestamp(matchID int, kind club.NotificationKind) error
}

// Reminder posts a Slack reminder for every upcoming match that tees off
// within the lead time. Each match is reminded about at most once.
type Reminder struct {
	store     Store
	notifier  notifier.Notifier
	metrics   metrics.Metrics
	activity  metrics.MetricsStore
	leadTime  time.Duration
	scheduler gocron.Scheduler
}

func New(store Store, notifier notifier.Notifier, metrics metrics.Metrics, activity metrics.MetricsStore, leadTime time.Duration) *Reminder {
	return &Reminder{
		store:    store,
		notifier: notifier,
		metrics:  metrics,
		activity: activity,
		leadTime: leadTime,
	}
}

// RunOnce sends reminders for matches starting in [now, now+leadTime] and
// returns how many were sent.
func (r *Reminder) RunOnce(now time.Time, dryRun bool) int {
	due, err := r.store.GetMatchesNeedingReminder(now, now.Add(r.leadTime))
	if err != nil {
		log.Error("Failed to load matches needing a reminder", "error", err)
		return 0
	}
	if len(due) == 0 {
		log.Debug("No matches need a reminder")
		return 0
	}

	sent := 0
	for _, match := range due {
		if err := r.notifier.SendMatchReminder(match, dryRun); err != nil {
			log.Error("Failed to send match reminder", "matchID", match.ID, "error", err)
			continue
		}
		sent++
		if dryRun {
			continue
		}
		if err := r.store.UpdateNotificationTimestamp(match.ID, club.NotificationReminder); err != nil {
			log.Error("Failed to stamp reminder", "matchID", match.ID, "error", err)
			continue
		}
		r.metrics.IncRemindersSent()
		r.activity.Increment(metrics.KeyRemindersSent)
	}
	log.Info("Sent match reminders", "due", len(due), "sent", sent, "dryRun", dryRun)
	return sent
}

// Start runs RunOnce on a fixed interval until Stop is called.
func (r *Reminder) Start(interval time.Duration) error {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return err
	}
	_, err = sched.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			r.RunOnce(time.Now().UTC(), false)
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return err
	}
	sched.Start()
	r.scheduler = sched
	log.Info("Reminder scheduler started", "interval", interval, "leadTime", r.leadTime)
	return nil
}

// Stop shuts the scheduler down, waiting for a running job to finish.
func (r *Reminder) Stop() error {
	if r.scheduler == nil {
		return nil
	}
	return r.scheduler.Shutdown()
}
