package notifier

import (
	"sync"

	"github.com/mauv0809/golf-match-manager/internal/club"
	"github.com/mauv0809/golf-match-manager/internal/golf"
	"github.com/mauv0809/golf-match-manager/internal/ranking"
)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// Call records
	SendMatchScheduledCalls []*golf.Match
	SendMatchResultCalls    []struct {
		Match  *golf.Match
		Awards []club.Award
	}
	SendMatchReminderCalls []*golf.Match
	SendLeaderboardCalls   [][]golf.LeaderboardEntry
	DryRunCalls            int

	// Spies for send functions
	SendMatchScheduledFunc func(match *golf.Match, dryRun bool) error
	SendMatchResultFunc    func(match *golf.Match, awards []club.Award, dryRun bool) error
	SendMatchReminderFunc  func(match *golf.Match, dryRun bool) error

	// Spies for format functions
	FormatLeaderboardResponseFunc    func(entries []golf.LeaderboardEntry) (any, error)
	FormatPlayerStatsResponseFunc    func(stats ranking.PlayerStatistics, position ranking.Position) (any, error)
	FormatPlayerNotFoundResponseFunc func(query string, suggestions []club.Suggestion) (any, error)

	// Call records for format functions
	LastLeaderboardResponse    any
	LastPlayerStatsResponse    any
	LastPlayerNotFoundResponse any
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendMatchScheduledCalls = nil
	m.SendMatchResultCalls = nil
	m.SendMatchReminderCalls = nil
	m.SendLeaderboardCalls = nil
	m.DryRunCalls = 0
	m.LastLeaderboardResponse = nil
	m.LastPlayerStatsResponse = nil
	m.LastPlayerNotFoundResponse = nil
}

func (m *Mock) SendMatchScheduled(match *golf.Match, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if dryRun {
		m.DryRunCalls++
	}
	m.SendMatchScheduledCalls = append(m.SendMatchScheduledCalls, match)
	if m.SendMatchScheduledFunc != nil {
		return m.SendMatchScheduledFunc(match, dryRun)
	}
	return nil
}

func (m *Mock) SendMatchResult(match *golf.Match, awards []club.Award, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if dryRun {
		m.DryRunCalls++
	}
	m.SendMatchResultCalls = append(m.SendMatchResultCalls, struct {
		Match  *golf.Match
		Awards []club.Award
	}{match, awards})
	if m.SendMatchResultFunc != nil {
		return m.SendMatchResultFunc(match, awards, dryRun)
	}
	return nil
}

func (m *Mock) SendMatchReminder(match *golf.Match, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if dryRun {
		m.DryRunCalls++
	}
	m.SendMatchReminderCalls = append(m.SendMatchReminderCalls, match)
	if m.SendMatchReminderFunc != nil {
		return m.SendMatchReminderFunc(match, dryRun)
	}
	return nil
}

func (m *Mock) SendLeaderboard(entries []golf.LeaderboardEntry, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if dryRun {
		m.DryRunCalls++
	}
	m.SendLeaderboardCalls = append(m.SendLeaderboardCalls, entries)
	return nil
}

func (m *Mock) FormatLeaderboardResponse(entries []golf.LeaderboardEntry) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var resp any = map[string]any{"text": "leaderboard", "entries": len(entries)}
	var err error
	if m.FormatLeaderboardResponseFunc != nil {
		resp, err = m.FormatLeaderboardResponseFunc(entries)
	}
	m.LastLeaderboardResponse = resp
	return resp, err
}

func (m *Mock) FormatPlayerStatsResponse(stats ranking.PlayerStatistics, position ranking.Position) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var resp any = map[string]any{"text": "stats", "player": stats.Player, "rank": position.Rank}
	var err error
	if m.FormatPlayerStatsResponseFunc != nil {
		resp, err = m.FormatPlayerStatsResponseFunc(stats, position)
	}
	m.LastPlayerStatsResponse = resp
	return resp, err
}

func (m *Mock) FormatPlayerNotFoundResponse(query string, suggestions []club.Suggestion) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var resp any = map[string]any{"text": "not found", "query": query}
	var err error
	if m.FormatPlayerNotFoundResponseFunc != nil {
		resp, err = m.FormatPlayerNotFoundResponseFunc(query, suggestions)
	}
	m.LastPlayerNotFoundResponse = resp
	return resp, err
}
