package ranking

import (
	"math"

	"github.com/mauv0809/golf-match-manager/internal/golf"
)

// DefaultAvgPutts is reported as a player's average putts when none of their
// completed rounds captured putting stats. It is a club convention for a
// typical round, not a measured value.
const DefaultAvgPutts = 30.0

// PlayerStatistics summarises a player's match history. BestScore is nil when
// the player has no completed rounds.
type PlayerStatistics struct {
	Player       string  `json:"player"`
	TotalMatches int     `json:"total_matches"`
	Wins         int     `json:"wins"`
	Losses       int     `json:"losses"`
	Ties         int     `json:"ties"`
	WinRate      float64 `json:"win_rate"`
	AvgScore     float64 `json:"avg_score"`
	BestScore    *int    `json:"best_score"`
	AvgPutts     float64 `json:"avg_putts"`
	Upcoming     int     `json:"upcoming"`
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Statistics computes a player's statistics from the full match history. It
// is total over empty histories.
func Statistics(name string, matches []*golf.Match) PlayerStatistics {
	stats := PlayerStatistics{Player: name, AvgPutts: DefaultAvgPutts}

	var scoreSum, puttSum, puttRounds int
	for _, m := range matches {
		if !m.HasParticipant(name) {
			continue
		}
		if !m.IsCompleted() {
			stats.Upcoming++
			continue
		}
		own, ok := m.ScoreFor(name)
		if !ok {
			continue
		}
		opponent, _ := m.OpponentOf(name)
		other, _ := m.ScoreFor(opponent)

		stats.TotalMatches++
		switch {
		case own < other:
			stats.Wins++
		case own > other:
			stats.Losses++
		default:
			stats.Ties++
		}
		scoreSum += own
		if stats.BestScore == nil || own < *stats.BestScore {
			best := own
			stats.BestScore = &best
		}
		if perf, ok := m.PlayerStats[name]; ok {
			puttSum += perf.TotalPutts
			puttRounds++
		}
	}

	if stats.TotalMatches > 0 {
		stats.WinRate = round1(float64(stats.Wins) / float64(stats.TotalMatches) * 100)
		stats.AvgScore = round1(float64(scoreSum) / float64(stats.TotalMatches))
	}
	if puttRounds > 0 {
		stats.AvgPutts = round1(float64(puttSum) / float64(puttRounds))
	}
	return stats
}
