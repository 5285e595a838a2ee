package ranking

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/mauv0809/golf-match-manager/internal/golf"
)

type SortKey string

const (
	SortByPoints        SortKey = "points"
	SortByHandicap      SortKey = "handicap"
	SortByMatchesPlayed SortKey = "matches_played"
)

type Order string

const (
	Ascending  Order = "asc"
	Descending Order = "desc"
)

// ParseSortKey accepts the query-string and display forms of a sort key
// ("points", "Matches Played"). An empty value means points.
func ParseSortKey(s string) (SortKey, error) {
	key := SortKey(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "_"))
	switch key {
	case "":
		return SortByPoints, nil
	case SortByPoints, SortByHandicap, SortByMatchesPlayed:
		return key, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidSortKey, s)
}

// ParseOrder accepts asc/desc and ascending/descending. An empty value means descending.
func ParseOrder(s string) (Order, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "desc", "descending":
		return Descending, nil
	case "asc", "ascending":
		return Ascending, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidOrder, s)
}

func compareBy(key SortKey) func(a, b golf.LeaderboardEntry) int {
	switch key {
	case SortByHandicap:
		return func(a, b golf.LeaderboardEntry) int { return cmp.Compare(a.Handicap, b.Handicap) }
	case SortByMatchesPlayed:
		return func(a, b golf.LeaderboardEntry) int { return cmp.Compare(a.MatchesPlayed, b.MatchesPlayed) }
	default:
		return func(a, b golf.LeaderboardEntry) int { return cmp.Compare(a.Points, b.Points) }
	}
}

// Sort returns a sorted copy of entries. The sort is stable: entries that
// compare equal keep their original relative order in both directions.
func Sort(entries []golf.LeaderboardEntry, key SortKey, order Order) []golf.LeaderboardEntry {
	sorted := slices.Clone(entries)
	compare := compareBy(key)
	if order == Descending {
		slices.SortStableFunc(sorted, func(a, b golf.LeaderboardEntry) int { return compare(b, a) })
	} else {
		slices.SortStableFunc(sorted, compare)
	}
	return sorted
}

// Rank returns the 1-based position of name in sorted, or len(sorted)+1 when
// the player has no entry.
func Rank(sorted []golf.LeaderboardEntry, name string) int {
	for i, e := range sorted {
		if e.Name == name {
			return i + 1
		}
	}
	return len(sorted) + 1
}

// Position is a player's place on a sorted leaderboard.
type Position struct {
	Player string `json:"player"`
	Rank   int    `json:"rank"`
	Total  int    `json:"total"`
	Points int    `json:"points"`
	// PointsToNext is how many points the player needs to overtake the entry
	// ranked directly above. Zero for the leader and for unranked players.
	PointsToNext int  `json:"points_to_next"`
	Ranked       bool `json:"ranked"`
}

// PositionOf locates name on an already sorted leaderboard.
func PositionOf(sorted []golf.LeaderboardEntry, name string) Position {
	pos := Position{Player: name, Rank: Rank(sorted, name), Total: len(sorted)}
	if pos.Rank > len(sorted) {
		return pos
	}
	pos.Ranked = true
	current := sorted[pos.Rank-1]
	pos.Points = current.Points
	if pos.Rank > 1 {
		ahead := sorted[pos.Rank-2]
		pos.PointsToNext = max(0, ahead.Points-current.Points+1)
	}
	return pos
}
