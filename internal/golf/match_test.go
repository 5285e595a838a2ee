package golf

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRequest() ScheduleRequest {
	return ScheduleRequest{
		Creator:   "Alice",
		Opponent:  "Bob",
		Date:      time.Date(2025, 6, 14, 10, 0, 0, 0, time.UTC),
		Location:  "Pebble Beach Golf Links",
		Handicap:  16.6,
		Format:    FormatStrokePlay,
		CreatedBy: "alice@example.com",
	}
}

func TestNewMatch(t *testing.T) {
	created := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	t.Run("creates an upcoming match with default par", func(t *testing.T) {
		m, err := NewMatch(validRequest(), created)
		require.NoError(t, err)
		assert.Equal(t, StatusUpcoming, m.Status)
		assert.Equal(t, [2]string{"Alice", "Bob"}, m.Players)
		assert.Equal(t, DefaultCoursePar, m.CoursePar)
		assert.Equal(t, created, m.CreatedDate)
		assert.Equal(t, "alice@example.com", m.CreatedBy)
		assert.Nil(t, m.Scores)
		assert.Zero(t, m.ID, "the id is assigned by the store")
	})

	t.Run("defaults an empty format to stroke play", func(t *testing.T) {
		req := validRequest()
		req.Format = ""
		m, err := NewMatch(req, created)
		require.NoError(t, err)
		assert.Equal(t, FormatStrokePlay, m.Format)
	})

	tests := []struct {
		name    string
		mutate  func(r *ScheduleRequest)
		wantErr error
	}{
		{"self match", func(r *ScheduleRequest) { r.Opponent = "Alice" }, ErrSelfMatch},
		{"self match with padding", func(r *ScheduleRequest) { r.Opponent = " Alice " }, ErrSelfMatch},
		{"missing opponent", func(r *ScheduleRequest) { r.Opponent = "" }, ErrInvalidParticipants},
		{"missing location", func(r *ScheduleRequest) { r.Location = "  " }, ErrInvalidLocation},
		{"handicap too high", func(r *ScheduleRequest) { r.Handicap = 36.1 }, ErrInvalidHandicap},
		{"negative handicap", func(r *ScheduleRequest) { r.Handicap = -0.5 }, ErrInvalidHandicap},
		{"unknown format", func(r *ScheduleRequest) { r.Format = "Skins" }, ErrInvalidFormat},
		{"negative par", func(r *ScheduleRequest) { r.CoursePar = -1 }, ErrInvalidCoursePar},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest()
			tc.mutate(&req)
			m, err := NewMatch(req, created)
			assert.ErrorIs(t, err, tc.wantErr)
			assert.Nil(t, m)
		})
	}

	t.Run("handicap bounds are inclusive", func(t *testing.T) {
		for _, h := range []float64{0, 36} {
			req := validRequest()
			req.Handicap = h
			_, err := NewMatch(req, created)
			assert.NoError(t, err)
		}
	})
}

func TestNextMatchID(t *testing.T) {
	assert.Equal(t, 1, NextMatchID())
	assert.Equal(t, 4, NextMatchID(1, 3, 2))
	assert.Equal(t, 8, NextMatchID(7))
}

func TestWinner(t *testing.T) {
	m := &Match{Players: [2]string{"Alice", "Bob"}}

	_, ok := m.Winner()
	assert.False(t, ok, "no winner without scores")

	m.Scores = []int{68, 75}
	winner, ok := m.Winner()
	assert.True(t, ok)
	assert.Equal(t, "Alice", winner)

	m.Scores = []int{80, 71}
	winner, ok = m.Winner()
	assert.True(t, ok)
	assert.Equal(t, "Bob", winner)

	m.Scores = []int{72, 72}
	_, ok = m.Winner()
	assert.False(t, ok, "a tie has no winner")
	assert.True(t, m.IsTie())
}

func TestParticipantLookups(t *testing.T) {
	m := &Match{Players: [2]string{"Team 1", "Team 2"}, Scores: []int{72, 75}}

	assert.True(t, m.HasParticipant("Team 2"))
	assert.False(t, m.HasParticipant("Team 3"))

	score, ok := m.ScoreFor("Team 2")
	assert.True(t, ok)
	assert.Equal(t, 75, score)

	opponent, ok := m.OpponentOf("Team 1")
	assert.True(t, ok)
	assert.Equal(t, "Team 2", opponent)

	_, ok = m.OpponentOf("Team 9")
	assert.False(t, ok)
}

func TestFormatToPar(t *testing.T) {
	m := &Match{}
	assert.Equal(t, "E", FormatToPar(m.ToPar(72)))
	assert.Equal(t, "-4", FormatToPar(m.ToPar(68)))
	assert.Equal(t, "+3", FormatToPar(m.ToPar(75)))

	m.CoursePar = 70
	assert.Equal(t, "+2", FormatToPar(m.ToPar(72)))
}
