package ranking

import (
	"cmp"
	"slices"

	"github.com/mauv0809/golf-match-manager/internal/golf"
)

const (
	PointsPerWin  = 3
	PointsPerTie  = 1
	PointsPerLoss = 0
)

// Standing is a participant's record in the 3/1/0 table built from completed matches.
type Standing struct {
	Participant string  `json:"participant"`
	Points      int     `json:"points"`
	Matches     int     `json:"matches"`
	Wins        int     `json:"wins"`
	Ties        int     `json:"ties"`
	Losses      int     `json:"losses"`
	WinRate     float64 `json:"win_rate"`
}

// Standings builds the win/tie/loss table over every completed match. Rows are
// ordered by points, highest first; equal points keep first-appearance order.
func Standings(matches []*golf.Match) []Standing {
	index := make(map[string]int)
	var table []Standing
	row := func(name string) *Standing {
		i, ok := index[name]
		if !ok {
			i = len(table)
			index[name] = i
			table = append(table, Standing{Participant: name})
		}
		return &table[i]
	}

	for _, m := range matches {
		if !m.IsCompleted() || len(m.Scores) != 2 {
			continue
		}
		// Register both rows before taking pointers; append may move the slice.
		row(m.Players[0])
		row(m.Players[1])
		winner, decided := m.Winner()
		for _, p := range m.Players {
			s := row(p)
			s.Matches++
			switch {
			case !decided:
				s.Ties++
				s.Points += PointsPerTie
			case winner == p:
				s.Wins++
				s.Points += PointsPerWin
			default:
				s.Losses++
				s.Points += PointsPerLoss
			}
		}
	}

	for i := range table {
		table[i].WinRate = round1(float64(table[i].Wins) / float64(table[i].Matches) * 100)
	}
	slices.SortStableFunc(table, func(a, b Standing) int { return cmp.Compare(b.Points, a.Points) })
	return table
}
