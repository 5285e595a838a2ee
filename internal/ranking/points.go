package ranking

import "github.com/mauv0809/golf-match-manager/internal/golf"

// BasePoints is the score a round is measured against when awarding points.
const BasePoints = 100

// PointsFor returns the leaderboard points earned for a round: max(0, 100-score).
func PointsFor(score int) int {
	return max(0, BasePoints-score)
}

// Award applies one completed round to a leaderboard entry and returns the
// points earned. matches_played always grows by exactly one.
func Award(entry *golf.LeaderboardEntry, score int) int {
	earned := PointsFor(score)
	entry.Points += earned
	entry.MatchesPlayed++
	return earned
}
