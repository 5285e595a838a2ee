package manager

import (
	"errors"
	"sync"
	"time"

	"github.com/mauv0809/golf-match-manager/internal/club"
	"github.com/mauv0809/golf-match-manager/internal/golf"
	"github.com/mauv0809/golf-match-manager/internal/metrics"
	"github.com/mauv0809/golf-match-manager/internal/notifier"
	"github.com/mauv0809/golf-match-manager/internal/pubsub"
	"github.com/mauv0809/golf-match-manager/internal/session"
)

var (
	ErrInvalidRegistration = errors.New("email, name and password are required")
	ErrPasswordMismatch    = errors.New("passwords do not match")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrUnknownOpponent     = errors.New("opponent is not on the club roster")
	ErrNotParticipant      = errors.New("only a participant can submit scores for this match")
)

// Manager runs the club's use-cases on top of the record store. Mutating
// operations are serialised so the store sees a single writer.
type Manager struct {
	store    club.ClubStore
	sessions session.Store
	notifier notifier.Notifier
	metrics  metrics.Metrics
	activity metrics.MetricsStore
	pubsub   pubsub.PubSubClient
	now      func() time.Time
	mu       sync.Mutex
}

// RegisterRequest is the sign-up form.
type RegisterRequest struct {
	Email           string  `json:"email"`
	Name            string  `json:"name"`
	Phone           string  `json:"phone"`
	Country         string  `json:"country"`
	Handicap        float64 `json:"handicap"`
	Password        string  `json:"password"`
	ConfirmPassword string  `json:"confirm_password"`
}

// ChangePasswordRequest requires the current password and a confirmed new one.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

// ScheduleMatchRequest is the scheduling form. Handicap defaults to the
// creator's own handicap; AsTeam books the match for the creator's team.
type ScheduleMatchRequest struct {
	Opponent  string           `json:"opponent"`
	Date      time.Time        `json:"date"`
	Location  string           `json:"location"`
	Handicap  *float64         `json:"handicap,omitempty"`
	Format    golf.MatchFormat `json:"format"`
	Notes     string           `json:"notes"`
	CoursePar int              `json:"course_par"`
	AsTeam    bool             `json:"as_team"`
}

// MatchFilter narrows a match listing. Empty fields match everything.
type MatchFilter struct {
	Status golf.MatchStatus
	Player string
}
