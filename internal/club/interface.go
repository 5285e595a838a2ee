package club

import (
	"time"

	"github.com/mauv0809/golf-match-manager/internal/golf"
)

// ClubStore is the record store for users, matches and the leaderboard.
type ClubStore interface {
	RegisterUser(user golf.User) error
	GetUser(email string) (*golf.User, error)
	GetAllUsers() ([]golf.User, error)
	UpdateProfile(email string, update ProfileUpdate) (*golf.User, error)
	UpdatePassword(email, password string) error

	IsKnownPlayer(name string) bool
	GetRoster() ([]string, error)
	GetLeaderboard() ([]golf.LeaderboardEntry, error)
	UpsertLeaderboardEntries(entries []golf.LeaderboardEntry) error

	CreateMatch(match *golf.Match) error
	GetMatch(id int) (*golf.Match, error)
	GetAllMatches() ([]*golf.Match, error)
	GetMatchesForPlayer(name string) ([]*golf.Match, error)
	CompleteMatch(id int, sub golf.ScoreSubmission, completedAt time.Time) (*Completion, error)
	GetMatchesNeedingReminder(from, to time.Time) ([]*golf.Match, error)
	UpdateNotificationTimestamp(matchID int, kind NotificationKind) error

	Export() (*Snapshot, error)
	Import(snapshot *Snapshot) error
	Clear()
}
