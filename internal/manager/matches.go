package manager

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/golf-match-manager/internal/club"
	"github.com/mauv0809/golf-match-manager/internal/golf"
	"github.com/mauv0809/golf-match-manager/internal/metrics"
	"github.com/mauv0809/golf-match-manager/internal/pubsub"
)

// identity is the participant label a user plays under.
func identity(user *golf.User, asTeam bool) string {
	if asTeam && user.Team != "" && user.Team != golf.DefaultTeam {
		return user.Team
	}
	return user.Name
}

// ScheduleMatch books a new match between the creator and a known opponent.
func (m *Manager) ScheduleMatch(creatorEmail string, req ScheduleMatchRequest, dryRun bool) (*golf.Match, error) {
	creator, err := m.store.GetUser(creatorEmail)
	if err != nil {
		return nil, err
	}

	handicap := creator.Handicap
	if req.Handicap != nil {
		handicap = *req.Handicap
	}
	match, err := golf.NewMatch(golf.ScheduleRequest{
		Creator:   identity(creator, req.AsTeam),
		Opponent:  req.Opponent,
		Date:      req.Date,
		Location:  req.Location,
		Handicap:  handicap,
		Format:    req.Format,
		Notes:     req.Notes,
		CoursePar: req.CoursePar,
		CreatedBy: creator.Email,
	}, m.now().UTC())
	if err != nil {
		return nil, err
	}
	opponent := match.Players[1]
	if !m.store.IsKnownPlayer(opponent) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownOpponent, opponent)
	}

	m.mu.Lock()
	err = m.store.CreateMatch(match)
	m.mu.Unlock()
	if err != nil {
		m.countPersistenceFailure(err)
		return nil, err
	}
	log.Info("Scheduled match", "matchID", match.ID, "players", match.Players, "date", match.Date, "dryRun", dryRun)
	m.metrics.IncMatchesScheduled()
	m.activity.Increment(metrics.KeyMatchesScheduled)

	m.publish(pubsub.EventMatchScheduled, pubsub.MatchScheduledEvent{
		MatchID:   match.ID,
		Players:   match.Players,
		Date:      match.Date,
		Location:  match.Location,
		Format:    string(match.Format),
		CreatedBy: match.CreatedBy,
	}, dryRun)
	if err := m.notifier.SendMatchScheduled(match, dryRun); err != nil {
		log.Error("Failed to announce scheduled match", "matchID", match.ID, "error", err)
	}
	return match, nil
}

// SubmitScore completes a match on behalf of one of its participants and
// credits the leaderboard.
func (m *Manager) SubmitScore(actorEmail string, matchID int, sub golf.ScoreSubmission, dryRun bool) (*club.Completion, error) {
	start := time.Now()
	defer func() {
		m.metrics.ObserveScoreSubmissionDuration(time.Since(start).Seconds())
	}()

	actor, err := m.store.GetUser(actorEmail)
	if err != nil {
		return nil, err
	}
	match, err := m.store.GetMatch(matchID)
	if err != nil {
		return nil, err
	}
	if !match.HasParticipant(actor.Name) && !match.HasParticipant(identity(actor, true)) {
		return nil, fmt.Errorf("%w: %s is not playing match %d", ErrNotParticipant, actor.Name, matchID)
	}
	if match.IsCompleted() {
		return nil, fmt.Errorf("%w: match %d", golf.ErrMatchCompleted, matchID)
	}
	sub.Notes = strings.TrimSpace(sub.Notes)
	if err := sub.Validate(match.Players); err != nil {
		return nil, err
	}

	m.mu.Lock()
	completion, err := m.store.CompleteMatch(matchID, sub, m.now().UTC())
	m.mu.Unlock()
	if err != nil {
		m.countPersistenceFailure(err)
		return nil, err
	}
	completed := completion.Match
	log.Info("Recorded match result", "matchID", completed.ID, "scores", completed.Scores, "submittedBy", actor.Email, "dryRun", dryRun)
	m.metrics.IncScoresSubmitted()
	m.activity.Increment(metrics.KeyScoresSubmitted)

	m.publish(pubsub.EventMatchCompleted, completedEvent(completion), dryRun)
	if err := m.notifier.SendMatchResult(completed, completion.Awards, dryRun); err != nil {
		log.Error("Failed to announce match result", "matchID", completed.ID, "error", err)
		return completion, nil
	}
	if !dryRun {
		if err := m.store.UpdateNotificationTimestamp(completed.ID, club.NotificationResult); err != nil {
			log.Error("Failed to stamp result notification", "matchID", completed.ID, "error", err)
		}
	}
	return completion, nil
}

func completedEvent(c *club.Completion) pubsub.MatchCompletedEvent {
	event := pubsub.MatchCompletedEvent{
		MatchID: c.Match.ID,
		Tie:     c.Match.IsTie(),
	}
	if winner, ok := c.Match.Winner(); ok {
		event.Winner = winner
	}
	if c.Match.CompletedDate != nil {
		event.CompletedAt = *c.Match.CompletedDate
	}
	for _, award := range c.Awards {
		event.Results = append(event.Results, pubsub.ParticipantResult{
			Player:       award.Player,
			Team:         award.Team,
			Score:        award.Score,
			PointsEarned: award.Points,
			TotalPoints:  award.TotalPoints,
		})
	}
	return event
}
