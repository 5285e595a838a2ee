package manager

import (
	"slices"
	"strings"

	"github.com/mauv0809/golf-match-manager/internal/club"
	"github.com/mauv0809/golf-match-manager/internal/golf"
	"github.com/mauv0809/golf-match-manager/internal/ranking"
)

// Leaderboard returns the leaderboard sorted by the given key and order.
func (m *Manager) Leaderboard(sortKey, order string) ([]golf.LeaderboardEntry, error) {
	key, err := ranking.ParseSortKey(sortKey)
	if err != nil {
		return nil, err
	}
	dir, err := ranking.ParseOrder(order)
	if err != nil {
		return nil, err
	}
	entries, err := m.store.GetLeaderboard()
	if err != nil {
		return nil, err
	}
	return ranking.Sort(entries, key, dir), nil
}

// PlayerPosition reports where a player sits on the leaderboard sorted by
// the given key and order.
func (m *Manager) PlayerPosition(name, sortKey, order string) (ranking.Position, error) {
	sorted, err := m.Leaderboard(sortKey, order)
	if err != nil {
		return ranking.Position{}, err
	}
	return ranking.PositionOf(sorted, strings.TrimSpace(name)), nil
}

// PlayerStatistics aggregates a player's match history.
func (m *Manager) PlayerStatistics(name string) (ranking.PlayerStatistics, error) {
	name = strings.TrimSpace(name)
	matches, err := m.store.GetMatchesForPlayer(name)
	if err != nil {
		return ranking.PlayerStatistics{}, err
	}
	return ranking.Statistics(name, matches), nil
}

// Standings returns the win/tie/loss table over completed matches.
func (m *Manager) Standings() ([]ranking.Standing, error) {
	matches, err := m.store.GetAllMatches()
	if err != nil {
		return nil, err
	}
	return ranking.Standings(matches), nil
}

// ListMatches returns matches in id order, optionally filtered by status
// and participant.
func (m *Manager) ListMatches(filter MatchFilter) ([]*golf.Match, error) {
	var (
		matches []*golf.Match
		err     error
	)
	if filter.Player != "" {
		matches, err = m.store.GetMatchesForPlayer(filter.Player)
	} else {
		matches, err = m.store.GetAllMatches()
	}
	if err != nil {
		return nil, err
	}
	if filter.Status != "" {
		matches = slices.DeleteFunc(matches, func(match *golf.Match) bool {
			return match.Status != filter.Status
		})
	}
	return matches, nil
}

// Match returns a single match.
func (m *Manager) Match(id int) (*golf.Match, error) {
	return m.store.GetMatch(id)
}

// Roster lists every name a match can be scheduled against, without the
// excluded player.
func (m *Manager) Roster(excluding string) ([]string, error) {
	roster, err := m.store.GetRoster()
	if err != nil {
		return nil, err
	}
	return slices.DeleteFunc(roster, func(name string) bool {
		return name == excluding
	}), nil
}

// IsKnownPlayer reports whether name is on the club roster.
func (m *Manager) IsKnownPlayer(name string) bool {
	return m.store.IsKnownPlayer(strings.TrimSpace(name))
}

// SuggestPlayers offers close roster matches for a name that was not found.
func (m *Manager) SuggestPlayers(name string) []club.Suggestion {
	roster, err := m.store.GetRoster()
	if err != nil {
		return nil
	}
	return club.SuggestPlayers(name, roster)
}

// Activity returns the persisted activity counters.
func (m *Manager) Activity() (map[string]int, error) {
	return m.activity.GetAll()
}
