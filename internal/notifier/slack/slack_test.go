package slack

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mauv0809/golf-match-manager/internal/club"
	"github.com/mauv0809/golf-match-manager/internal/golf"
	"github.com/mauv0809/golf-match-manager/internal/metrics"
	"github.com/mauv0809/golf-match-manager/internal/ranking"
	slackapi "github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockSlackAPI is a mock implementation of the parts of the slack.Client that we use.
type mockSlackAPI struct {
	postMessageContextFunc func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error)
}

func (m *mockSlackAPI) PostMessageContext(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
	if m.postMessageContextFunc != nil {
		return m.postMessageContextFunc(ctx, channelID, options...)
	}
	return "C12345", "123456789.12345", nil
}

func testMatch() *golf.Match {
	return &golf.Match{
		ID:        1,
		Date:      time.Date(2025, 7, 9, 8, 30, 0, 0, time.UTC),
		Players:   [2]string{"Alice", "Bob"},
		Status:    golf.StatusUpcoming,
		Location:  "Pebble Beach Golf Links",
		CoursePar: 72,
		Handicap:  16.6,
		Format:    golf.FormatStrokePlay,
	}
}

func TestSendMessage_DryRun(t *testing.T) {
	metrics := metrics.NewMock()
	// Pass nil for the api, as it shouldn't be called in dry-run mode.
	notifier := NewNotifierWithAPI(nil, "C123", metrics)

	message := slackapi.NewBlockMessage()
	_, _, err := notifier.sendMessage(message, true)
	require.NoError(t, err)
	assert.Equal(t, 0, metrics.SlackNotifSent())
}

func TestSendMessage_NoTokenOnlyLogs(t *testing.T) {
	metrics := metrics.NewMock()
	notifier := NewNotifier("", "C123", metrics)

	require.NoError(t, notifier.SendMatchScheduled(testMatch(), false))
	assert.Equal(t, 0, metrics.SlackNotifSent())
	assert.Equal(t, 0, metrics.SlackNotifFailed())
}

func TestSendMessage_Success(t *testing.T) {
	postMessageCalled := false
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			postMessageCalled = true
			assert.Equal(t, "C123", channelID)
			return "C123", "ts123", nil
		},
	}

	metrics := metrics.NewMock()
	notifier := NewNotifierWithAPI(api, "C123", metrics)

	message := slackapi.NewBlockMessage(slackapi.NewSectionBlock(slackapi.NewTextBlockObject("plain_text", "hello", false, false), nil, nil))
	_, _, err := notifier.sendMessage(message, false)

	require.NoError(t, err)
	assert.True(t, postMessageCalled, "PostMessageContext should have been called")
	assert.Equal(t, 1, metrics.SlackNotifSent())
	assert.Equal(t, 0, metrics.SlackNotifFailed())
}

func TestSendMessage_Failure(t *testing.T) {
	expectedErr := errors.New("slack API is down")
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			return "", "", expectedErr
		},
	}

	metrics := metrics.NewMock()
	notifier := NewNotifierWithAPI(api, "C123", metrics)

	err := notifier.SendMatchReminder(testMatch(), false)

	require.Error(t, err)
	assert.ErrorIs(t, err, expectedErr)
	assert.Equal(t, 0, metrics.SlackNotifSent())
	assert.Equal(t, 1, metrics.SlackNotifFailed())
}

func TestFormatMatchScheduled(t *testing.T) {
	match := testMatch()
	match.Notes = "Bring rain gear"
	client := &Notifier{channelID: "C123"}

	msg := client.formatMatchScheduled(match)
	require.Len(t, msg.Blocks.BlockSet, 4)

	header, ok := msg.Blocks.BlockSet[0].(*slackapi.HeaderBlock)
	require.True(t, ok, "First block should be a HeaderBlock")
	assert.Equal(t, "⛳ New match scheduled! ⛳", header.Text.Text)
	assert.True(t, *header.Text.Emoji)

	players, ok := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
	require.True(t, ok)
	assert.Equal(t, "Alice vs Bob", players.Text.Text)

	details, ok := msg.Blocks.BlockSet[2].(*slackapi.SectionBlock)
	require.True(t, ok)
	assert.Equal(t, "Course: Pebble Beach Golf Links (par 72)\nTee time: Wednesday 09 Jul, 08:30 UTC\nFormat: Stroke Play\nHandicap: 16.6", details.Text.Text)

	notes, ok := msg.Blocks.BlockSet[3].(*slackapi.ContextBlock)
	require.True(t, ok)
	require.Len(t, notes.ContextElements.Elements, 1)
	element, ok := notes.ContextElements.Elements[0].(*slackapi.TextBlockObject)
	require.True(t, ok)
	assert.Equal(t, "📝 Bring rain gear", element.Text)
}

func TestFormatMatchResult(t *testing.T) {
	match := testMatch()
	done := match.Date.Add(4 * time.Hour)
	match.Status = golf.StatusCompleted
	match.Scores = []int{68, 75}
	match.CompletedDate = &done
	match.Conditions = golf.Conditions{Weather: golf.WeatherSunny, CourseCondition: golf.ConditionGood, Duration: golf.Duration3To4}
	match.PlayerStats = map[string]golf.PlayerPerformance{"Alice": {FairwaysHit: 71.4, GreensInRegulation: 61.1, TotalPutts: 29}}
	awards := []club.Award{
		{Player: "Alice", Score: 68, Points: 32, TotalPoints: 152},
		{Player: "Bob", Score: 75, Points: 25, TotalPoints: 25},
	}

	client := &Notifier{channelID: "C123"}
	msg := client.formatMatchResult(match, awards)
	require.Len(t, msg.Blocks.BlockSet, 4)

	result, ok := msg.Blocks.BlockSet[2].(*slackapi.SectionBlock)
	require.True(t, ok)
	assert.Equal(t, "Result: Alice won! 🏆", result.Text.Text)
	require.Len(t, result.Fields, 2)
	assert.Equal(t, "Alice\n68 (-4)\nFairways 71% | GIR 61% | Putts 29", result.Fields[0].Text)
	assert.Equal(t, "Bob\n75 (+3)", result.Fields[1].Text)

	footer, ok := msg.Blocks.BlockSet[3].(*slackapi.ContextBlock)
	require.True(t, ok)
	element, ok := footer.ContextElements.Elements[0].(*slackapi.TextBlockObject)
	require.True(t, ok)
	assert.Equal(t, "Alice +32 pts (152 total) • Bob +25 pts (25 total) • Sunny | Good | 3-4 hours", element.Text)

	t.Run("tie", func(t *testing.T) {
		match.Scores = []int{72, 72}
		msg := client.formatMatchResult(match, nil)
		result, ok := msg.Blocks.BlockSet[2].(*slackapi.SectionBlock)
		require.True(t, ok)
		assert.Equal(t, "Result: All square, it's a tie!", result.Text.Text)
		assert.Equal(t, "Bob\n72 (E)", result.Fields[1].Text)
	})

	t.Run("team credits name the team", func(t *testing.T) {
		match.Scores = []int{70, 74}
		msg := client.formatMatchResult(match, []club.Award{
			{Player: "Craig Roberts", Team: "Team 1", Score: 70, Points: 30, TotalPoints: 30},
		})
		footer, ok := msg.Blocks.BlockSet[3].(*slackapi.ContextBlock)
		require.True(t, ok)
		element, ok := footer.ContextElements.Elements[0].(*slackapi.TextBlockObject)
		require.True(t, ok)
		assert.Equal(t, "Craig Roberts (Team 1) +30 pts (30 total) • Sunny | Good | 3-4 hours", element.Text)
	})
}

func TestFormatLeaderboard(t *testing.T) {
	t.Run("displays leaderboard with points", func(t *testing.T) {
		entries := []golf.LeaderboardEntry{
			{Name: "Mayank Rai", Handicap: 16.5, Points: 120, MatchesPlayed: 8},
			{Name: "Omkar Pol", Handicap: 12.3, Points: 115, MatchesPlayed: 7},
			{Name: "Nitesh Devadiga", Handicap: 18.2, Points: 110, MatchesPlayed: 6},
		}

		client := &Notifier{channelID: "C123"}
		msg := client.formatLeaderboard(entries)

		require.Len(t, msg.Blocks.BlockSet, 4, "Expected 4 blocks (header + 3 players)")

		header, ok := msg.Blocks.BlockSet[0].(*slackapi.HeaderBlock)
		require.True(t, ok)
		assert.Equal(t, "🏆 Club Leaderboard 🏆", header.Text.Text)

		player1, ok := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
		require.True(t, ok)
		assert.Contains(t, player1.Text.Text, "1. 🥇 Mayank Rai")
		assert.Contains(t, player1.Text.Text, "> Points: 120 | Matches: 8 | Handicap: 16.5")

		player3, ok := msg.Blocks.BlockSet[3].(*slackapi.SectionBlock)
		require.True(t, ok)
		assert.Contains(t, player3.Text.Text, "3. 🥉 Nitesh Devadiga")
	})

	t.Run("displays message when the leaderboard is empty", func(t *testing.T) {
		client := &Notifier{channelID: "C123"}
		msg := client.formatLeaderboard(nil)

		require.Len(t, msg.Blocks.BlockSet, 2, "Expected 2 blocks (header + message)")
		message, ok := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
		require.True(t, ok)
		assert.Equal(t, "No players on the leaderboard yet. Go play some golf!", message.Text.Text)
	})
}

func TestFormatPlayerStats(t *testing.T) {
	client := &Notifier{channelID: "C123"}

	t.Run("formats stats for a ranked player", func(t *testing.T) {
		best := 68
		stats := ranking.PlayerStatistics{Player: "Alice", TotalMatches: 2, Wins: 1, WinRate: 50, AvgScore: 79, BestScore: &best, AvgPutts: 30, Upcoming: 1}
		position := ranking.Position{Player: "Alice", Rank: 2, Total: 5, Points: 57, PointsToNext: 64, Ranked: true}

		msg := client.formatPlayerStats(stats, position)
		require.Len(t, msg.Blocks.BlockSet, 3)

		header, ok := msg.Blocks.BlockSet[0].(*slackapi.HeaderBlock)
		require.True(t, ok)
		assert.Equal(t, "🏆 Stats for Alice 🏆", header.Text.Text)

		section, ok := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
		require.True(t, ok)
		assert.Contains(t, section.Text.Text, "> *Rank*: #2 of 5")
		assert.Contains(t, section.Text.Text, "> *Win %*: 50.0% (1/2)")
		assert.Contains(t, section.Text.Text, "> *Best score*: 68")

		next, ok := msg.Blocks.BlockSet[2].(*slackapi.ContextBlock)
		require.True(t, ok)
		element, ok := next.ContextElements.Elements[0].(*slackapi.TextBlockObject)
		require.True(t, ok)
		assert.Equal(t, "64 points to move up to #1", element.Text)
	})

	t.Run("formats stats for a player without history", func(t *testing.T) {
		stats := ranking.Statistics("Newbie", nil)
		msg := client.formatPlayerStats(stats, ranking.Position{Player: "Newbie", Rank: 6, Total: 5})
		require.Len(t, msg.Blocks.BlockSet, 2)

		section, ok := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
		require.True(t, ok)
		assert.Contains(t, section.Text.Text, "> *Rank*: unranked")
		assert.Contains(t, section.Text.Text, "> *Best score*: -")
		assert.Contains(t, section.Text.Text, "> *Average putts*: 30.0")
	})

	t.Run("formats message for a player not found", func(t *testing.T) {
		msg := client.formatPlayerNotFound("Unknown Player", nil)
		require.Len(t, msg.Blocks.BlockSet, 1)

		section, ok := msg.Blocks.BlockSet[0].(*slackapi.SectionBlock)
		require.True(t, ok)
		assert.Equal(t, "Sorry, I couldn't find a player matching *Unknown Player*. Try a different name.", section.Text.Text)
	})

	t.Run("suggests close names", func(t *testing.T) {
		msg := client.formatPlayerNotFound("Omkar", []club.Suggestion{{Name: "Omkar Pol", Confidence: 0.7}})
		section, ok := msg.Blocks.BlockSet[0].(*slackapi.SectionBlock)
		require.True(t, ok)
		assert.Equal(t, "Sorry, I couldn't find a player matching *Omkar*. Did you mean Omkar Pol?", section.Text.Text)
	})
}
