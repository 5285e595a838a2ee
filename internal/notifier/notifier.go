package notifier

import (
	"github.com/mauv0809/golf-match-manager/internal/club"
	"github.com/mauv0809/golf-match-manager/internal/golf"
	"github.com/mauv0809/golf-match-manager/internal/ranking"
)

// Notifier defines a high-level interface for sending notifications about business events.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	// For the match lifecycle
	SendMatchScheduled(match *golf.Match, dryRun bool) error
	SendMatchResult(match *golf.Match, awards []club.Award, dryRun bool) error
	SendMatchReminder(match *golf.Match, dryRun bool) error
	// For slash commands
	SendLeaderboard(entries []golf.LeaderboardEntry, dryRun bool) error

	// For formatting responses for slash commands
	FormatLeaderboardResponse(entries []golf.LeaderboardEntry) (any, error)
	FormatPlayerStatsResponse(stats ranking.PlayerStatistics, position ranking.Position) (any, error)
	FormatPlayerNotFoundResponse(query string, suggestions []club.Suggestion) (any, error)
}
