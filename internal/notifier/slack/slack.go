package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/golf-match-manager/internal/club"
	"github.com/mauv0809/golf-match-manager/internal/golf"
	"github.com/mauv0809/golf-match-manager/internal/metrics"
	"github.com/mauv0809/golf-match-manager/internal/notifier"
	"github.com/mauv0809/golf-match-manager/internal/ranking"
	"github.com/slack-go/slack"
)

const timeLayout = "Monday 02 Jan, 15:04 MST"

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

// Notifier handles sending notifications to Slack.
type Notifier struct {
	api       slackClient
	channelID string
	metrics   metrics.Metrics
	// disabled turns every send into a dry run; set when no bot token is configured.
	disabled bool
}

// NewNotifier creates a new Notifier. Without a token every message is only logged.
func NewNotifier(token, channelID string, metrics metrics.Metrics) *Notifier {
	if token == "" {
		log.Warn("No Slack token configured, Slack notifications will only be logged")
		return &Notifier{channelID: channelID, metrics: metrics, disabled: true}
	}
	return &Notifier{
		api:       slack.New(token),
		channelID: channelID,
		metrics:   metrics,
	}
}

// NewNotifierWithAPI creates a new Notifier with a specific slack.Client instance.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID string, metrics metrics.Metrics) *Notifier {
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

func (s *Notifier) sendMessage(message slack.Message, dryRun bool) (string, string, error) {
	if dryRun || s.disabled {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", s.channelID, "message", string(jsonMsg))
		return "dry-run-channel", "dry-run-ts", nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	channelID, timestamp, err := s.api.PostMessageContext(
		ctx,
		s.channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
		slack.MsgOptionAsUser(true),
	)

	if err != nil {
		s.metrics.IncSlackNotifFailed()
		log.Error("Failed to send Slack message", "error", err, "channel", s.channelID)
		return "", "", fmt.Errorf("failed to post message: %w", err)
	}

	s.metrics.IncSlackNotifSent()
	log.Info("Successfully sent Slack message", "channel", channelID, "timestamp", timestamp)
	return channelID, timestamp, nil
}

// Implement the Notifier interface
func (s *Notifier) SendMatchScheduled(match *golf.Match, dryRun bool) error {
	_, _, err := s.sendMessage(s.formatMatchScheduled(match), dryRun)
	return err
}

func (s *Notifier) SendMatchResult(match *golf.Match, awards []club.Award, dryRun bool) error {
	_, _, err := s.sendMessage(s.formatMatchResult(match, awards), dryRun)
	return err
}

func (s *Notifier) SendMatchReminder(match *golf.Match, dryRun bool) error {
	_, _, err := s.sendMessage(s.formatMatchReminder(match), dryRun)
	return err
}

func (s *Notifier) SendLeaderboard(entries []golf.LeaderboardEntry, dryRun bool) error {
	_, _, err := s.sendMessage(s.formatLeaderboard(entries), dryRun)
	return err
}

// FormatLeaderboardResponse formats a leaderboard message for a slash command response.
func (s *Notifier) FormatLeaderboardResponse(entries []golf.LeaderboardEntry) (any, error) {
	return s.formatLeaderboard(entries), nil
}

// FormatPlayerStatsResponse formats a player stats message for a slash command response.
func (s *Notifier) FormatPlayerStatsResponse(stats ranking.PlayerStatistics, position ranking.Position) (any, error) {
	return s.formatPlayerStats(stats, position), nil
}

// FormatPlayerNotFoundResponse formats a player not found message for a slash command response.
func (s *Notifier) FormatPlayerNotFoundResponse(query string, suggestions []club.Suggestion) (any, error) {
	return s.formatPlayerNotFound(query, suggestions), nil
}

func plainSection(text string) *slack.SectionBlock {
	return slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", text, true, false), nil, nil)
}

func matchDetails(match *golf.Match) string {
	details := fmt.Sprintf("Course: %s (par %d)\nTee time: %s\nFormat: %s", match.Location, match.Par(), match.Date.Format(timeLayout), match.Format)
	if match.Handicap > 0 {
		details += fmt.Sprintf("\nHandicap: %.1f", match.Handicap)
	}
	return details
}

// formatMatchScheduled creates the Slack message for a newly scheduled match using Block Kit.
func (s *Notifier) formatMatchScheduled(match *golf.Match) slack.Message {
	blocks := []slack.Block{
		slack.NewHeaderBlock(slack.NewTextBlockObject("plain_text", "⛳ New match scheduled! ⛳", true, false)),
		plainSection(fmt.Sprintf("%s vs %s", match.Players[0], match.Players[1])),
		plainSection(matchDetails(match)),
	}
	if match.Notes != "" {
		blocks = append(blocks, slack.NewContextBlock("", slack.NewTextBlockObject("plain_text", "📝 "+match.Notes, true, false)))
	}
	return slack.NewBlockMessage(blocks...)
}

// formatMatchReminder creates the Slack message reminding players of an upcoming match.
func (s *Notifier) formatMatchReminder(match *golf.Match) slack.Message {
	return slack.NewBlockMessage(
		slack.NewHeaderBlock(slack.NewTextBlockObject("plain_text", "⏰ Tee time coming up!", true, false)),
		plainSection(fmt.Sprintf("%s vs %s", match.Players[0], match.Players[1])),
		plainSection(matchDetails(match)),
	)
}

// formatMatchResult creates the Slack message for a completed match using Block Kit.
func (s *Notifier) formatMatchResult(match *golf.Match, awards []club.Award) slack.Message {
	blocks := []slack.Block{
		slack.NewHeaderBlock(slack.NewTextBlockObject("plain_text", "🏌️ Match finished! 🏌️", true, false)),
		plainSection(fmt.Sprintf("%s on %s", match.Location, match.Date.Format(timeLayout))),
	}

	if len(match.Scores) != 2 {
		blocks = append(blocks, plainSection("Result: No scores reported."))
		return slack.NewBlockMessage(blocks...)
	}

	resultHeader := "Result: All square, it's a tie!"
	if winner, ok := match.Winner(); ok {
		resultHeader = fmt.Sprintf("Result: %s won! 🏆", winner)
	}
	var fields []*slack.TextBlockObject
	for i, player := range match.Players {
		score := match.Scores[i]
		text := fmt.Sprintf("%s\n%d (%s)", player, score, golf.FormatToPar(match.ToPar(score)))
		if perf, ok := match.PlayerStats[player]; ok {
			text += fmt.Sprintf("\nFairways %.0f%% | GIR %.0f%% | Putts %d", perf.FairwaysHit, perf.GreensInRegulation, perf.TotalPutts)
		}
		fields = append(fields, slack.NewTextBlockObject("plain_text", text, true, false))
	}
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", resultHeader, true, false), fields, nil))

	var footer []string
	for _, a := range awards {
		name := a.Player
		if a.Team != "" {
			name = fmt.Sprintf("%s (%s)", a.Player, a.Team)
		}
		footer = append(footer, fmt.Sprintf("%s +%d pts (%d total)", name, a.Points, a.TotalPoints))
	}
	footer = append(footer, fmt.Sprintf("%s | %s | %s", match.Weather, match.CourseCondition, match.Duration))
	blocks = append(blocks, slack.NewContextBlock("", slack.NewTextBlockObject("plain_text", strings.Join(footer, " • "), true, false)))

	return slack.NewBlockMessage(blocks...)
}

// formatLeaderboard creates a Slack message to display the leaderboard, best first.
func (s *Notifier) formatLeaderboard(entries []golf.LeaderboardEntry) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "🏆 Club Leaderboard 🏆", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	if len(entries) == 0 {
		blocks = append(blocks, plainSection("No players on the leaderboard yet. Go play some golf!"))
		return slack.NewBlockMessage(blocks...)
	}

	for i, entry := range entries {
		rank := i + 1
		var medal string
		switch rank {
		case 1:
			medal = "🥇"
		case 2:
			medal = "🥈"
		case 3:
			medal = "🥉"
		}

		playerText := fmt.Sprintf("%d. %s %s\n> Points: %d | Matches: %d | Handicap: %.1f",
			rank,
			medal,
			entry.Name,
			entry.Points,
			entry.MatchesPlayed,
			entry.Handicap,
		)
		blocks = append(blocks, plainSection(playerText))
	}

	return slack.NewBlockMessage(blocks...)
}

// formatPlayerStats creates a Slack message to display a single player's stats.
func (s *Notifier) formatPlayerStats(stats ranking.PlayerStatistics, position ranking.Position) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := fmt.Sprintf("🏆 Stats for %s 🏆", stats.Player)
	blocks = append(blocks, slack.NewHeaderBlock(slack.NewTextBlockObject("plain_text", headerText, true, false)))

	best := "-"
	if stats.BestScore != nil {
		best = fmt.Sprintf("%d", *stats.BestScore)
	}
	rank := "unranked"
	if position.Ranked {
		rank = fmt.Sprintf("#%d of %d", position.Rank, position.Total)
	}
	playerText := fmt.Sprintf("> *Rank*: %s\n> *Win %%*: %.1f%% (%d/%d)\n> *Average score*: %.1f\n> *Best score*: %s\n> *Average putts*: %.1f\n> *Upcoming matches*: %d",
		rank,
		stats.WinRate,
		stats.Wins,
		stats.TotalMatches,
		stats.AvgScore,
		best,
		stats.AvgPutts,
		stats.Upcoming,
	)
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", playerText, false, false), nil, nil))

	if position.Ranked && position.Rank > 1 {
		next := fmt.Sprintf("%d points to move up to #%d", position.PointsToNext, position.Rank-1)
		blocks = append(blocks, slack.NewContextBlock("", slack.NewTextBlockObject("plain_text", next, true, false)))
	}

	return slack.NewBlockMessage(blocks...)
}

// formatPlayerNotFound creates a Slack message for when a player's stats are not found.
func (s *Notifier) formatPlayerNotFound(query string, suggestions []club.Suggestion) slack.Message {
	text := fmt.Sprintf("Sorry, I couldn't find a player matching *%s*. Try a different name.", query)
	if len(suggestions) > 0 {
		names := make([]string, len(suggestions))
		for i, sug := range suggestions {
			names[i] = sug.Name
		}
		text = fmt.Sprintf("Sorry, I couldn't find a player matching *%s*. Did you mean %s?", query, strings.Join(names, ", "))
	}
	return slack.NewBlockMessage(
		slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", text, false, false), nil, nil),
	)
}
