package golf

import (
	"fmt"
	"math"
	"slices"
	"time"
)

func validPercentage(v float64) bool {
	return !math.IsNaN(v) && v >= 0 && v <= MaxPercentage
}

// Validate checks scores, conditions and stats against the match participants.
func (s ScoreSubmission) Validate(players [2]string) error {
	for i, score := range s.Scores {
		if score < MinScore || score > MaxScore {
			return fmt.Errorf("%w: %s scored %d", ErrInvalidScore, players[i], score)
		}
	}
	if !slices.Contains(WeatherOptions, s.Weather) {
		return fmt.Errorf("%w: weather %q", ErrInvalidConditions, s.Weather)
	}
	if !slices.Contains(CourseConditions, s.CourseCondition) {
		return fmt.Errorf("%w: course condition %q", ErrInvalidConditions, s.CourseCondition)
	}
	if !slices.Contains(DurationBuckets, s.Duration) {
		return fmt.Errorf("%w: duration %q", ErrInvalidConditions, s.Duration)
	}
	for player, stats := range s.PlayerStats {
		if player != players[0] && player != players[1] {
			return fmt.Errorf("%w: %q is not playing this match", ErrInvalidStats, player)
		}
		if !validPercentage(stats.FairwaysHit) || !validPercentage(stats.GreensInRegulation) {
			return fmt.Errorf("%w: percentages for %s must be between 0 and 100", ErrInvalidStats, player)
		}
		if stats.TotalPutts < 0 || stats.TotalPutts > MaxPutts {
			return fmt.Errorf("%w: %d putts for %s", ErrInvalidStats, stats.TotalPutts, player)
		}
	}
	return nil
}

// Complete records the final result and moves the match to StatusCompleted.
// A completed match is a terminal record and cannot be scored again.
func (m *Match) Complete(sub ScoreSubmission, completedAt time.Time) error {
	switch m.Status {
	case StatusUpcoming:
	case StatusCompleted:
		return fmt.Errorf("%w: match %d", ErrMatchCompleted, m.ID)
	default:
		return fmt.Errorf("%w: %q", ErrInvalidStatus, m.Status)
	}
	if err := sub.Validate(m.Players); err != nil {
		return err
	}

	m.Scores = []int{sub.Scores[0], sub.Scores[1]}
	m.Conditions = sub.Conditions
	if len(sub.PlayerStats) > 0 {
		m.PlayerStats = make(map[string]PlayerPerformance, len(sub.PlayerStats))
		for player, stats := range sub.PlayerStats {
			m.PlayerStats[player] = stats
		}
	}
	// Notes from the scheduling form are kept unless the scorer wrote new ones.
	if sub.Notes != "" {
		m.Notes = sub.Notes
	}
	completed := completedAt
	m.CompletedDate = &completed
	m.Status = StatusCompleted
	return nil
}
