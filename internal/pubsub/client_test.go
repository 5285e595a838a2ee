package pubsub

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

func TestNoopRoundTrip(t *testing.T) {
	c := NewNoop()
	defer c.Close()

	event := MatchCompletedEvent{
		MatchID: 7,
		Results: []ParticipantResult{
			{Player: "Alice", Score: 68, PointsEarned: 32, TotalPoints: 152},
			{Player: "Bob", Score: 75, PointsEarned: 25, TotalPoints: 25},
		},
		Winner:      "Alice",
		CompletedAt: time.Date(2025, 6, 14, 15, 0, 0, 0, time.UTC),
	}
	require.NoError(t, c.SendMessage(EventMatchCompleted, event))

	payload, err := msgpack.Marshal(event)
	require.NoError(t, err)

	var decoded MatchCompletedEvent
	require.NoError(t, c.ProcessMessage(payload, &decoded))
	assert.Equal(t, event.MatchID, decoded.MatchID)
	assert.Equal(t, event.Results, decoded.Results)
	assert.Equal(t, "Alice", decoded.Winner)
	assert.True(t, event.CompletedAt.Equal(decoded.CompletedAt))
}

func TestProcessMessage_InvalidPayload(t *testing.T) {
	var decoded MatchScheduledEvent
	assert.Error(t, NewNoop().ProcessMessage([]byte{0xc1}, &decoded))
}

func TestMockRecordsTopics(t *testing.T) {
	m := NewMock()
	require.NoError(t, m.SendMessage(EventPlayerRegistered, PlayerRegisteredEvent{Email: "a@example.com"}))
	require.NoError(t, m.SendMessage(EventMatchScheduled, MatchScheduledEvent{MatchID: 1}))

	assert.Equal(t, []EventType{EventPlayerRegistered, EventMatchScheduled}, m.Topics())

	m.Reset()
	assert.Empty(t, m.Topics())
}
