package club

import (
	"database/sql"
	"errors"
	"sync"

	"github.com/mauv0809/golf-match-manager/internal/golf"
)

var (
	ErrEmailExists   = errors.New("a user with this email is already registered")
	ErrNameTaken     = errors.New("this player name is already taken")
	ErrUserNotFound  = errors.New("user not found")
	ErrMatchNotFound = errors.New("match not found")

	ErrCounterDecrease = errors.New("leaderboard points and matches played cannot decrease")
	ErrInvalidSnapshot = errors.New("invalid snapshot")
)

// store handles all database operations for the club.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// ProfileUpdate carries the editable fields of a user's profile.
type ProfileUpdate struct {
	Name     string  `json:"name"`
	Phone    string  `json:"phone"`
	Country  string  `json:"country"`
	Handicap float64 `json:"handicap"`
}

// NotificationKind selects which notification timestamp of a match to stamp.
type NotificationKind string

const (
	NotificationReminder NotificationKind = "reminder"
	NotificationResult   NotificationKind = "result"
)

// Award is the leaderboard change applied to one player when a match
// completes. Team is set when the player was credited through a team label.
type Award struct {
	Player      string `json:"player"`
	Team        string `json:"team,omitempty"`
	Score       int    `json:"score"`
	Points      int    `json:"points"`
	TotalPoints int    `json:"total_points"`
}

// Completion is the outcome of a committed score submission.
type Completion struct {
	Match  *golf.Match `json:"match"`
	Awards []Award     `json:"awards"`
}
