package manager

import (
	"errors"
	"testing"
	"time"

	"github.com/mauv0809/golf-match-manager/internal/club"
	"github.com/mauv0809/golf-match-manager/internal/database"
	"github.com/mauv0809/golf-match-manager/internal/golf"
	"github.com/mauv0809/golf-match-manager/internal/metrics"
	"github.com/mauv0809/golf-match-manager/internal/notifier"
	"github.com/mauv0809/golf-match-manager/internal/pubsub"
	"github.com/mauv0809/golf-match-manager/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	now       = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	teeTime   = time.Date(2025, 6, 14, 10, 0, 0, 0, time.UTC)
	aliceMail = "alice@example.com"
	bobMail   = "bob@example.com"
)

type fixture struct {
	m        *Manager
	store    club.ClubStore
	notif    *notifier.Mock
	metrics  *metrics.Mock
	activity *metrics.MockStore
	pubsub   *pubsub.MockPubSubClient
	sessions *session.MockStore
}

func setup(t *testing.T) *fixture {
	t.Helper()
	db, teardown, err := database.InitDB(":memory:", "", "")
	require.NoError(t, err)
	t.Cleanup(teardown)

	return newFixture(club.New(db))
}

func newFixture(store club.ClubStore) *fixture {
	f := &fixture{
		store:    store,
		notif:    notifier.NewMock(),
		metrics:  metrics.NewMock(),
		activity: metrics.NewMockStore(),
		pubsub:   pubsub.NewMock(),
		sessions: session.NewMock(),
	}
	f.m = New(f.store, f.sessions, f.notif, f.metrics, f.activity, f.pubsub)
	f.m.SetClock(func() time.Time { return now })
	return f
}

func (f *fixture) register(t *testing.T, email, name string, handicap float64) {
	t.Helper()
	_, err := f.m.Register(RegisterRequest{
		Email:           email,
		Name:            name,
		Handicap:        handicap,
		Password:        "secret",
		ConfirmPassword: "secret",
	}, false)
	require.NoError(t, err)
}

func (f *fixture) schedule(t *testing.T, creator, opponent string) *golf.Match {
	t.Helper()
	match, err := f.m.ScheduleMatch(creator, ScheduleMatchRequest{
		Opponent:  opponent,
		Date:      teeTime,
		Location:  "St. Andrews Links",
		CoursePar: 72,
	}, false)
	require.NoError(t, err)
	return match
}

func sub(a, b int) golf.ScoreSubmission {
	return golf.ScoreSubmission{
		Scores: [2]int{a, b},
		Conditions: golf.Conditions{
			Weather:         golf.WeatherSunny,
			CourseCondition: golf.ConditionGood,
			Duration:        golf.Duration3To4,
		},
	}
}

func TestRegisterAndLogin(t *testing.T) {
	t.Run("registration creates the user and publishes an event", func(t *testing.T) {
		f := setup(t)
		f.register(t, aliceMail, "Alice", 12.5)

		user, err := f.m.CurrentUser(aliceMail)
		require.NoError(t, err)
		assert.Equal(t, "Alice", user.Name)
		assert.Equal(t, golf.DefaultTeam, user.Team)

		board, err := f.m.Leaderboard("", "")
		require.NoError(t, err)
		assert.Equal(t, []golf.LeaderboardEntry{{Name: "Alice", Handicap: 12.5}}, board)

		assert.Equal(t, []pubsub.EventType{pubsub.EventPlayerRegistered}, f.pubsub.Topics())
		counters, _ := f.activity.GetAll()
		assert.Equal(t, 1, counters[metrics.KeyPlayersRegistered])
	})

	t.Run("rejects bad registrations", func(t *testing.T) {
		f := setup(t)
		f.register(t, aliceMail, "Alice", 12.5)

		tests := []struct {
			name string
			req  RegisterRequest
			want error
		}{
			{"missing name", RegisterRequest{Email: bobMail, Password: "x", ConfirmPassword: "x"}, ErrInvalidRegistration},
			{"bad email", RegisterRequest{Email: "bob", Name: "Bob", Password: "x", ConfirmPassword: "x"}, ErrInvalidRegistration},
			{"password mismatch", RegisterRequest{Email: bobMail, Name: "Bob", Password: "x", ConfirmPassword: "y"}, ErrPasswordMismatch},
			{"handicap out of range", RegisterRequest{Email: bobMail, Name: "Bob", Handicap: 40, Password: "x", ConfirmPassword: "x"}, golf.ErrInvalidHandicap},
			{"duplicate email", RegisterRequest{Email: aliceMail, Name: "Bob", Password: "x", ConfirmPassword: "x"}, club.ErrEmailExists},
			{"duplicate name", RegisterRequest{Email: bobMail, Name: "Alice", Password: "x", ConfirmPassword: "x"}, club.ErrNameTaken},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := f.m.Register(tt.req, false)
				assert.ErrorIs(t, err, tt.want)
			})
		}
		assert.Equal(t, 0, f.metrics.PersistenceFailures())
	})

	t.Run("login issues a session token", func(t *testing.T) {
		f := setup(t)
		f.register(t, aliceMail, "Alice", 12.5)

		_, _, err := f.m.Login(aliceMail, "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
		_, _, err = f.m.Login("nobody@example.com", "secret")
		assert.ErrorIs(t, err, ErrInvalidCredentials)

		token, user, err := f.m.Login(aliceMail, "secret")
		require.NoError(t, err)
		assert.Equal(t, "Alice", user.Name)

		email, err := f.m.Authenticate(token)
		require.NoError(t, err)
		assert.Equal(t, aliceMail, email)

		require.NoError(t, f.m.Logout(token))
		_, err = f.m.Authenticate(token)
		assert.ErrorIs(t, err, session.ErrSessionNotFound)
	})
}

func TestProfileAndPassword(t *testing.T) {
	f := setup(t)
	f.register(t, aliceMail, "Alice", 12.5)
	token, _, err := f.m.Login(aliceMail, "secret")
	require.NoError(t, err)

	user, err := f.m.UpdateProfile(aliceMail, club.ProfileUpdate{Name: "Alice Smith", Country: "Wales", Handicap: 10})
	require.NoError(t, err)
	assert.Equal(t, "Alice Smith", user.Name)

	_, err = f.m.UpdateProfile(aliceMail, club.ProfileUpdate{Name: " "})
	assert.ErrorIs(t, err, ErrInvalidRegistration)

	err = f.m.ChangePassword(aliceMail, ChangePasswordRequest{CurrentPassword: "nope", NewPassword: "a", ConfirmPassword: "a"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	err = f.m.ChangePassword(aliceMail, ChangePasswordRequest{CurrentPassword: "secret", NewPassword: "a", ConfirmPassword: "b"})
	assert.ErrorIs(t, err, ErrPasswordMismatch)

	require.NoError(t, f.m.ChangePassword(aliceMail, ChangePasswordRequest{CurrentPassword: "secret", NewPassword: "fresh", ConfirmPassword: "fresh"}))
	_, err = f.m.Authenticate(token)
	assert.ErrorIs(t, err, session.ErrSessionNotFound, "a password change ends open sessions")
	_, _, err = f.m.Login(aliceMail, "fresh")
	assert.NoError(t, err)
}

func TestScheduleMatch(t *testing.T) {
	t.Run("first match gets id 1 and is announced", func(t *testing.T) {
		f := setup(t)
		f.register(t, aliceMail, "Alice", 12.5)
		f.register(t, bobMail, "Bob", 18)
		f.pubsub.Reset()

		match := f.schedule(t, aliceMail, "Bob")

		assert.Equal(t, 1, match.ID)
		assert.Equal(t, golf.StatusUpcoming, match.Status)
		assert.Equal(t, [2]string{"Alice", "Bob"}, match.Players)
		assert.Equal(t, 12.5, match.Handicap, "handicap defaults to the creator's")
		assert.Equal(t, aliceMail, match.CreatedBy)
		assert.Equal(t, now, match.CreatedDate)

		require.Len(t, f.notif.SendMatchScheduledCalls, 1)
		assert.Equal(t, []pubsub.EventType{pubsub.EventMatchScheduled}, f.pubsub.Topics())
		assert.Equal(t, 1, f.metrics.MatchesScheduled())

		stored, err := f.m.Match(1)
		require.NoError(t, err)
		assert.Equal(t, match.Players, stored.Players)
	})

	t.Run("unknown opponent is rejected", func(t *testing.T) {
		f := setup(t)
		f.register(t, aliceMail, "Alice", 12.5)
		f.register(t, bobMail, "Bob Jones", 18)

		_, err := f.m.ScheduleMatch(aliceMail, ScheduleMatchRequest{Opponent: "Bob Jnes", Date: teeTime, Location: "Carnoustie"}, false)
		assert.ErrorIs(t, err, ErrUnknownOpponent)
		assert.Empty(t, f.notif.SendMatchScheduledCalls)

		suggestions := f.m.SuggestPlayers("Bob Jnes")
		require.NotEmpty(t, suggestions)
		assert.Equal(t, "Bob Jones", suggestions[0].Name)
	})

	t.Run("self match is rejected", func(t *testing.T) {
		f := setup(t)
		f.register(t, aliceMail, "Alice", 12.5)

		_, err := f.m.ScheduleMatch(aliceMail, ScheduleMatchRequest{Opponent: "Alice", Date: teeTime, Location: "Carnoustie"}, false)
		assert.ErrorIs(t, err, golf.ErrSelfMatch)
	})

	t.Run("dry run skips events", func(t *testing.T) {
		f := setup(t)
		f.register(t, aliceMail, "Alice", 12.5)
		f.register(t, bobMail, "Bob", 18)
		f.pubsub.Reset()

		_, err := f.m.ScheduleMatch(aliceMail, ScheduleMatchRequest{Opponent: "Bob", Date: teeTime, Location: "Carnoustie"}, true)
		require.NoError(t, err)
		assert.Empty(t, f.pubsub.SendMessageCalls)
		assert.Equal(t, 1, f.notif.DryRunCalls)
	})

	t.Run("store failure is counted", func(t *testing.T) {
		store := club.NewMock()
		store.GetUserFunc = func(email string) (*golf.User, error) {
			return &golf.User{Email: email, Name: "Alice", Handicap: 10}, nil
		}
		store.IsKnownPlayerFunc = func(string) bool { return true }
		store.CreateMatchFunc = func(*golf.Match) error { return errors.New("disk full") }
		f := newFixture(store)

		_, err := f.m.ScheduleMatch(aliceMail, ScheduleMatchRequest{Opponent: "Bob", Date: teeTime, Location: "Carnoustie"}, false)
		assert.EqualError(t, err, "disk full")
		assert.Equal(t, 1, f.metrics.PersistenceFailures())
		assert.Equal(t, 0, f.metrics.MatchesScheduled())
	})
}

func TestSubmitScore(t *testing.T) {
	t.Run("completion awards points and announces the result", func(t *testing.T) {
		f := setup(t)
		f.register(t, aliceMail, "Alice", 12.5)
		f.register(t, bobMail, "Bob", 18)
		match := f.schedule(t, aliceMail, "Bob")
		f.pubsub.Reset()

		completion, err := f.m.SubmitScore(bobMail, match.ID, sub(68, 75), false)
		require.NoError(t, err)

		assert.Equal(t, golf.StatusCompleted, completion.Match.Status)
		assert.Equal(t, []club.Award{
			{Player: "Alice", Score: 68, Points: 32, TotalPoints: 32},
			{Player: "Bob", Score: 75, Points: 25, TotalPoints: 25},
		}, completion.Awards)

		board, err := f.m.Leaderboard("points", "desc")
		require.NoError(t, err)
		assert.Equal(t, []golf.LeaderboardEntry{
			{Name: "Alice", Handicap: 12.5, Points: 32, MatchesPlayed: 1},
			{Name: "Bob", Handicap: 18, Points: 25, MatchesPlayed: 1},
		}, board)

		require.Len(t, f.pubsub.SendMessageCalls, 1)
		event, ok := f.pubsub.SendMessageCalls[0].Data.(pubsub.MatchCompletedEvent)
		require.True(t, ok)
		assert.Equal(t, "Alice", event.Winner)
		assert.Len(t, event.Results, 2)

		require.Len(t, f.notif.SendMatchResultCalls, 1)
		assert.Equal(t, 1, f.metrics.ScoresSubmitted())
		assert.Len(t, f.metrics.SubmissionDurations(), 1)

		stats, err := f.m.PlayerStatistics("Alice")
		require.NoError(t, err)
		assert.Equal(t, 1, stats.TotalMatches)
		assert.Equal(t, 1, stats.Wins)
		assert.Equal(t, 100.0, stats.WinRate)
		assert.Equal(t, 68.0, stats.AvgScore)
		require.NotNil(t, stats.BestScore)
		assert.Equal(t, 68, *stats.BestScore)

		pos, err := f.m.PlayerPosition("Bob", "", "")
		require.NoError(t, err)
		assert.Equal(t, 2, pos.Rank)
		assert.Equal(t, 8, pos.PointsToNext)
	})

	t.Run("second submission is rejected", func(t *testing.T) {
		f := setup(t)
		f.register(t, aliceMail, "Alice", 12.5)
		f.register(t, bobMail, "Bob", 18)
		match := f.schedule(t, aliceMail, "Bob")
		_, err := f.m.SubmitScore(aliceMail, match.ID, sub(68, 75), false)
		require.NoError(t, err)

		_, err = f.m.SubmitScore(aliceMail, match.ID, sub(70, 70), false)
		assert.ErrorIs(t, err, golf.ErrMatchCompleted)

		board, _ := f.m.Leaderboard("", "")
		assert.Equal(t, 32, board[0].Points)
		assert.Equal(t, 0, f.metrics.PersistenceFailures())
	})

	t.Run("only participants may submit", func(t *testing.T) {
		f := setup(t)
		f.register(t, aliceMail, "Alice", 12.5)
		f.register(t, bobMail, "Bob", 18)
		f.register(t, "carol@example.com", "Carol", 5)
		match := f.schedule(t, aliceMail, "Bob")

		_, err := f.m.SubmitScore("carol@example.com", match.ID, sub(68, 75), false)
		assert.ErrorIs(t, err, ErrNotParticipant)
	})

	t.Run("invalid scores leave the match upcoming", func(t *testing.T) {
		f := setup(t)
		f.register(t, aliceMail, "Alice", 12.5)
		f.register(t, bobMail, "Bob", 18)
		match := f.schedule(t, aliceMail, "Bob")

		_, err := f.m.SubmitScore(aliceMail, match.ID, sub(20, 75), false)
		assert.ErrorIs(t, err, golf.ErrInvalidScore)

		stored, err := f.m.Match(match.ID)
		require.NoError(t, err)
		assert.Equal(t, golf.StatusUpcoming, stored.Status)
	})

	t.Run("unknown match", func(t *testing.T) {
		f := setup(t)
		f.register(t, aliceMail, "Alice", 12.5)

		_, err := f.m.SubmitScore(aliceMail, 99, sub(68, 75), false)
		assert.ErrorIs(t, err, club.ErrMatchNotFound)
	})

	t.Run("notification failure does not fail the submission", func(t *testing.T) {
		f := setup(t)
		f.register(t, aliceMail, "Alice", 12.5)
		f.register(t, bobMail, "Bob", 18)
		match := f.schedule(t, aliceMail, "Bob")
		f.notif.SendMatchResultFunc = func(*golf.Match, []club.Award, bool) error {
			return errors.New("slack down")
		}

		completion, err := f.m.SubmitScore(aliceMail, match.ID, sub(68, 75), false)
		require.NoError(t, err)
		assert.Equal(t, golf.StatusCompleted, completion.Match.Status)
	})

	t.Run("store failure is counted", func(t *testing.T) {
		match := &golf.Match{ID: 1, Players: [2]string{"Alice", "Bob"}, Status: golf.StatusUpcoming}
		store := club.NewMock()
		store.GetUserFunc = func(email string) (*golf.User, error) {
			return &golf.User{Email: email, Name: "Alice"}, nil
		}
		store.GetMatchFunc = func(int) (*golf.Match, error) { return match, nil }
		store.CompleteMatchFunc = func(int, golf.ScoreSubmission, time.Time) (*club.Completion, error) {
			return nil, errors.New("database is locked")
		}
		f := newFixture(store)

		_, err := f.m.SubmitScore(aliceMail, 1, sub(68, 75), false)
		assert.Error(t, err)
		assert.Equal(t, 1, f.metrics.PersistenceFailures())
		assert.Empty(t, f.notif.SendMatchResultCalls)
	})

	t.Run("result notification is stamped", func(t *testing.T) {
		match := &golf.Match{ID: 7, Players: [2]string{"Alice", "Bob"}, Status: golf.StatusUpcoming}
		store := club.NewMock()
		store.GetUserFunc = func(email string) (*golf.User, error) {
			return &golf.User{Email: email, Name: "Alice"}, nil
		}
		store.GetMatchFunc = func(int) (*golf.Match, error) { return match, nil }
		store.CompleteMatchFunc = func(id int, s golf.ScoreSubmission, at time.Time) (*club.Completion, error) {
			done := *match
			require.NoError(t, done.Complete(s, at))
			return &club.Completion{Match: &done}, nil
		}
		f := newFixture(store)

		_, err := f.m.SubmitScore(aliceMail, 7, sub(68, 75), false)
		require.NoError(t, err)
		require.Len(t, store.UpdateNotificationTimestampCalls, 1)
		assert.Equal(t, 7, store.UpdateNotificationTimestampCalls[0].MatchID)
		assert.Equal(t, club.NotificationResult, store.UpdateNotificationTimestampCalls[0].Kind)
	})
}

func TestTeamScoring(t *testing.T) {
	f := setup(t)
	require.NoError(t, f.store.Import(&club.Snapshot{
		Users: map[string]club.UserRecord{
			"craig@example.com": {Name: "Craig", Handicap: 10, Password: "secret", Team: "Eagles"},
		},
		Matches: []*golf.Match{{
			ID:       1,
			Date:     teeTime,
			Players:  [2]string{"Eagles", "Hawks"},
			Status:   golf.StatusUpcoming,
			Location: "Muirfield",
			Format:   golf.FormatScramble,
		}},
	}))

	completion, err := f.m.SubmitScore("craig@example.com", 1, sub(70, 72), false)
	require.NoError(t, err)
	assert.Equal(t, golf.StatusCompleted, completion.Match.Status)
	assert.Equal(t, []club.Award{{Player: "Craig", Team: "Eagles", Score: 70, Points: 30, TotalPoints: 30}}, completion.Awards)

	board, err := f.m.Leaderboard("", "")
	require.NoError(t, err)
	assert.Equal(t, []golf.LeaderboardEntry{{Name: "Craig", Handicap: 10, Points: 30, MatchesPlayed: 1}}, board,
		"the team result is credited to its member, not to the label")

	standings, err := f.m.Standings()
	require.NoError(t, err)
	require.Len(t, standings, 2)
	assert.Equal(t, "Eagles", standings[0].Participant)
	assert.Equal(t, 3, standings[0].Points)
}

func TestListMatchesAndRoster(t *testing.T) {
	f := setup(t)
	f.register(t, aliceMail, "Alice", 12.5)
	f.register(t, bobMail, "Bob", 18)
	f.register(t, "carol@example.com", "Carol", 5)
	first := f.schedule(t, aliceMail, "Bob")
	f.schedule(t, aliceMail, "Carol")
	_, err := f.m.SubmitScore(aliceMail, first.ID, sub(80, 82), false)
	require.NoError(t, err)

	all, err := f.m.ListMatches(MatchFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	upcoming, err := f.m.ListMatches(MatchFilter{Status: golf.StatusUpcoming})
	require.NoError(t, err)
	require.Len(t, upcoming, 1)
	assert.Equal(t, [2]string{"Alice", "Carol"}, upcoming[0].Players)

	bobs, err := f.m.ListMatches(MatchFilter{Player: "Bob"})
	require.NoError(t, err)
	require.Len(t, bobs, 1)
	assert.Equal(t, first.ID, bobs[0].ID)

	roster, err := f.m.Roster("Alice")
	require.NoError(t, err)
	assert.Equal(t, []string{"Bob", "Carol"}, roster)
	assert.True(t, f.m.IsKnownPlayer(" Carol "))
}
