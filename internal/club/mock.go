package club

import (
	"sync"
	"time"

	"github.com/mauv0809/golf-match-manager/internal/golf"
)

// MockStore is a mock implementation of the ClubStore interface for testing.
// It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	// Spies for method calls
	RegisterUserFunc                func(user golf.User) error
	GetUserFunc                     func(email string) (*golf.User, error)
	GetAllUsersFunc                 func() ([]golf.User, error)
	UpdateProfileFunc               func(email string, update ProfileUpdate) (*golf.User, error)
	UpdatePasswordFunc              func(email, password string) error
	IsKnownPlayerFunc               func(name string) bool
	GetRosterFunc                   func() ([]string, error)
	GetLeaderboardFunc              func() ([]golf.LeaderboardEntry, error)
	UpsertLeaderboardEntriesFunc    func(entries []golf.LeaderboardEntry) error
	CreateMatchFunc                 func(match *golf.Match) error
	GetMatchFunc                    func(id int) (*golf.Match, error)
	GetAllMatchesFunc               func() ([]*golf.Match, error)
	GetMatchesForPlayerFunc         func(name string) ([]*golf.Match, error)
	CompleteMatchFunc               func(id int, sub golf.ScoreSubmission, completedAt time.Time) (*Completion, error)
	GetMatchesNeedingReminderFunc   func(from, to time.Time) ([]*golf.Match, error)
	UpdateNotificationTimestampFunc func(matchID int, kind NotificationKind) error
	ExportFunc                      func() (*Snapshot, error)
	ImportFunc                      func(snapshot *Snapshot) error
	ClearFunc                       func()

	// Call records
	RegisterUserCalls  []golf.User
	CreateMatchCalls   []*golf.Match
	CompleteMatchCalls []struct {
		ID  int
		Sub golf.ScoreSubmission
	}
	UpdateNotificationTimestampCalls []struct {
		MatchID int
		Kind    NotificationKind
	}
	ImportCalls []*Snapshot
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

// Reset clears all call records.
func (m *MockStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RegisterUserCalls = nil
	m.CreateMatchCalls = nil
	m.CompleteMatchCalls = nil
	m.UpdateNotificationTimestampCalls = nil
	m.ImportCalls = nil
}

func (m *MockStore) RegisterUser(user golf.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RegisterUserCalls = append(m.RegisterUserCalls, user)
	if m.RegisterUserFunc != nil {
		return m.RegisterUserFunc(user)
	}
	return nil
}

func (m *MockStore) GetUser(email string) (*golf.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetUserFunc != nil {
		return m.GetUserFunc(email)
	}
	return nil, ErrUserNotFound
}

func (m *MockStore) GetAllUsers() ([]golf.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetAllUsersFunc != nil {
		return m.GetAllUsersFunc()
	}
	return nil, nil
}

func (m *MockStore) UpdateProfile(email string, update ProfileUpdate) (*golf.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UpdateProfileFunc != nil {
		return m.UpdateProfileFunc(email, update)
	}
	return nil, ErrUserNotFound
}

func (m *MockStore) UpdatePassword(email, password string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UpdatePasswordFunc != nil {
		return m.UpdatePasswordFunc(email, password)
	}
	return nil
}

func (m *MockStore) IsKnownPlayer(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.IsKnownPlayerFunc != nil {
		return m.IsKnownPlayerFunc(name)
	}
	return false
}

func (m *MockStore) GetRoster() ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetRosterFunc != nil {
		return m.GetRosterFunc()
	}
	return nil, nil
}

func (m *MockStore) GetLeaderboard() ([]golf.LeaderboardEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetLeaderboardFunc != nil {
		return m.GetLeaderboardFunc()
	}
	return nil, nil
}

func (m *MockStore) UpsertLeaderboardEntries(entries []golf.LeaderboardEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UpsertLeaderboardEntriesFunc != nil {
		return m.UpsertLeaderboardEntriesFunc(entries)
	}
	return nil
}

func (m *MockStore) CreateMatch(match *golf.Match) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CreateMatchCalls = append(m.CreateMatchCalls, match)
	if m.CreateMatchFunc != nil {
		return m.CreateMatchFunc(match)
	}
	match.ID = len(m.CreateMatchCalls)
	return nil
}

func (m *MockStore) GetMatch(id int) (*golf.Match, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetMatchFunc != nil {
		return m.GetMatchFunc(id)
	}
	return nil, ErrMatchNotFound
}

func (m *MockStore) GetAllMatches() ([]*golf.Match, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetAllMatchesFunc != nil {
		return m.GetAllMatchesFunc()
	}
	return nil, nil
}

func (m *MockStore) GetMatchesForPlayer(name string) ([]*golf.Match, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetMatchesForPlayerFunc != nil {
		return m.GetMatchesForPlayerFunc(name)
	}
	return nil, nil
}

func (m *MockStore) CompleteMatch(id int, sub golf.ScoreSubmission, completedAt time.Time) (*Completion, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CompleteMatchCalls = append(m.CompleteMatchCalls, struct {
		ID  int
		Sub golf.ScoreSubmission
	}{id, sub})
	if m.CompleteMatchFunc != nil {
		return m.CompleteMatchFunc(id, sub, completedAt)
	}
	return nil, ErrMatchNotFound
}

func (m *MockStore) GetMatchesNeedingReminder(from, to time.Time) ([]*golf.Match, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetMatchesNeedingReminderFunc != nil {
		return m.GetMatchesNeedingReminderFunc(from, to)
	}
	return nil, nil
}

func (m *MockStore) UpdateNotificationTimestamp(matchID int, kind NotificationKind) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpdateNotificationTimestampCalls = append(m.UpdateNotificationTimestampCalls, struct {
		MatchID int
		Kind    NotificationKind
	}{matchID, kind})
	if m.UpdateNotificationTimestampFunc != nil {
		return m.UpdateNotificationTimestampFunc(matchID, kind)
	}
	return nil
}

func (m *MockStore) Export() (*Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ExportFunc != nil {
		return m.ExportFunc()
	}
	return &Snapshot{Users: map[string]UserRecord{}}, nil
}

func (m *MockStore) Import(snapshot *Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ImportCalls = append(m.ImportCalls, snapshot)
	if m.ImportFunc != nil {
		return m.ImportFunc(snapshot)
	}
	return nil
}

func (m *MockStore) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ClearFunc != nil {
		m.ClearFunc()
	}
}
