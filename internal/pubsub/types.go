package pubsub

import (
	"time"

	"cloud.google.com/go/pubsub"
)

type client struct {
	client   *pubsub.Client
	teardown func() error
}

// EventType represents the type of event/message sent via pubsub. It doubles
// as the topic name.
type EventType string

const (
	EventMatchScheduled   EventType = "match-scheduled"
	EventMatchCompleted   EventType = "match-completed"
	EventPlayerRegistered EventType = "player-registered"
)

// MatchScheduledEvent is published when a new match is put on the calendar.
type MatchScheduledEvent struct {
	MatchID   int       `msgpack:"match_id"`
	Players   [2]string `msgpack:"players"`
	Date      time.Time `msgpack:"date"`
	Location  string    `msgpack:"location"`
	Format    string    `msgpack:"format"`
	CreatedBy string    `msgpack:"created_by"`
}

// ParticipantResult is the points credited to one player for a completed
// match. Team names the team label the player was credited through.
type ParticipantResult struct {
	Player       string `msgpack:"player"`
	Team         string `msgpack:"team,omitempty"`
	Score        int    `msgpack:"score"`
	PointsEarned int    `msgpack:"points_earned"`
	TotalPoints  int    `msgpack:"total_points"`
}

// MatchCompletedEvent is published once a score submission has been committed.
type MatchCompletedEvent struct {
	MatchID     int                 `msgpack:"match_id"`
	Results     []ParticipantResult `msgpack:"results"`
	Winner      string              `msgpack:"winner,omitempty"`
	Tie         bool                `msgpack:"tie"`
	CompletedAt time.Time           `msgpack:"completed_at"`
}

// PlayerRegisteredEvent is published when a new member signs up.
type PlayerRegisteredEvent struct {
	Email    string  `msgpack:"email"`
	Name     string  `msgpack:"name"`
	Handicap float64 `msgpack:"handicap"`
}
