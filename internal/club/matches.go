package club

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/golf-match-manager/internal/golf"
	"github.com/mauv0809/golf-match-manager/internal/ranking"
)

const matchColumns = `id, scheduled_at, player_a, player_b, status, location, course_par, handicap, format, notes,
	created_by, created_at, score_a, score_b, stats_json, weather, course_condition, duration, completed_at`

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	QueryRow(query string, args ...any) *sql.Row
	Query(query string, args ...any) (*sql.Rows, error)
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}

// CreateMatch persists a new match and assigns it the next free id.
func (s *store) CreateMatch(match *golf.Match) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var maxID sql.NullInt64
	if err := tx.QueryRow("SELECT MAX(id) FROM matches").Scan(&maxID); err != nil {
		return err
	}
	id := golf.NextMatchID()
	if maxID.Valid {
		id = golf.NextMatchID(int(maxID.Int64))
	}

	saved := *match
	saved.ID = id
	if err := insertMatchTx(tx, &saved); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	match.ID = id
	return nil
}

func insertMatchTx(tx *sql.Tx, m *golf.Match) error {
	var scoreA, scoreB sql.NullInt64
	if len(m.Scores) == 2 {
		scoreA = sql.NullInt64{Int64: int64(m.Scores[0]), Valid: true}
		scoreB = sql.NullInt64{Int64: int64(m.Scores[1]), Valid: true}
	}
	var statsJSON sql.NullString
	if len(m.PlayerStats) > 0 {
		b, err := json.Marshal(m.PlayerStats)
		if err != nil {
			return err
		}
		statsJSON = sql.NullString{String: string(b), Valid: true}
	}
	var completedAt sql.NullString
	if m.CompletedDate != nil {
		completedAt = sql.NullString{String: formatTime(*m.CompletedDate), Valid: true}
	}

	_, err := tx.Exec(`
		INSERT INTO matches (`+matchColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			scheduled_at = excluded.scheduled_at,
			player_a = excluded.player_a,
			player_b = excluded.player_b,
			status = excluded.status,
			location = excluded.location,
			course_par = excluded.course_par,
			handicap = excluded.handicap,
			format = excluded.format,
			notes = excluded.notes,
			created_by = excluded.created_by,
			created_at = excluded.created_at,
			score_a = excluded.score_a,
			score_b = excluded.score_b,
			stats_json = excluded.stats_json,
			weather = excluded.weather,
			course_condition = excluded.course_condition,
			duration = excluded.duration,
			completed_at = excluded.completed_at;
	`,
		m.ID, formatTime(m.Date), m.Players[0], m.Players[1], m.Status, m.Location, m.Par(), m.Handicap, m.Format, m.Notes,
		m.CreatedBy, formatTime(m.CreatedDate), scoreA, scoreB, statsJSON,
		nullString(string(m.Weather)), nullString(string(m.CourseCondition)), nullString(string(m.Duration)), completedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to store match %d: %w", m.ID, err)
	}
	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// scanMatch is a helper function to scan a single match row.
func scanMatch(scanner interface{ Scan(...any) error }) (*golf.Match, error) {
	var (
		m                             golf.Match
		scheduledAt, createdAt        string
		scoreA, scoreB                sql.NullInt64
		statsJSON, weather, condition sql.NullString
		duration, completedAt         sql.NullString
	)
	err := scanner.Scan(
		&m.ID, &scheduledAt, &m.Players[0], &m.Players[1], &m.Status, &m.Location, &m.CoursePar, &m.Handicap, &m.Format, &m.Notes,
		&m.CreatedBy, &createdAt, &scoreA, &scoreB, &statsJSON, &weather, &condition, &duration, &completedAt,
	)
	if err != nil {
		return nil, err
	}

	if m.Date, err = parseTime(scheduledAt); err != nil {
		return nil, fmt.Errorf("match %d has invalid scheduled_at: %w", m.ID, err)
	}
	if m.CreatedDate, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("match %d has invalid created_at: %w", m.ID, err)
	}
	if scoreA.Valid && scoreB.Valid {
		m.Scores = []int{int(scoreA.Int64), int(scoreB.Int64)}
	}
	if statsJSON.Valid && statsJSON.String != "" {
		if err := json.Unmarshal([]byte(statsJSON.String), &m.PlayerStats); err != nil {
			return nil, fmt.Errorf("match %d has invalid stats_json: %w", m.ID, err)
		}
	}
	m.Weather = golf.Weather(weather.String)
	m.CourseCondition = golf.CourseCondition(condition.String)
	m.Duration = golf.DurationBucket(duration.String)
	if completedAt.Valid {
		t, err := parseTime(completedAt.String)
		if err != nil {
			return nil, fmt.Errorf("match %d has invalid completed_at: %w", m.ID, err)
		}
		m.CompletedDate = &t
	}
	return &m, nil
}

func getMatch(q queryer, id int) (*golf.Match, error) {
	m, err := scanMatch(q.QueryRow("SELECT "+matchColumns+" FROM matches WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", ErrMatchNotFound, id)
	}
	return m, err
}

func queryMatches(q queryer, where string, args ...any) ([]*golf.Match, error) {
	rows, err := q.Query("SELECT "+matchColumns+" FROM matches "+where+" ORDER BY id", args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var matches []*golf.Match
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, err
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

// GetMatch retrieves a single match by id.
func (s *store) GetMatch(id int) (*golf.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return getMatch(s.db, id)
}

// GetAllMatches returns the full match history in id order.
func (s *store) GetAllMatches() ([]*golf.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return queryMatches(s.db, "")
}

// GetMatchesForPlayer returns every match the participant plays in.
func (s *store) GetMatchesForPlayer(name string) ([]*golf.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return queryMatches(s.db, "WHERE player_a = ? OR player_b = ?", name, name)
}

// CompleteMatch records a score submission. Marking the match completed and
// awarding points to both participants commit together or not at all.
func (s *store) CompleteMatch(id int, sub golf.ScoreSubmission, completedAt time.Time) (*Completion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	match, err := getMatch(tx, id)
	if err != nil {
		return nil, err
	}
	if err := match.Complete(sub, completedAt); err != nil {
		return nil, err
	}
	if err := insertMatchTx(tx, match); err != nil {
		return nil, err
	}

	completion := &Completion{Match: match}
	for i, participant := range match.Players {
		score := match.Scores[i]
		players, team, err := playersForTx(tx, participant)
		if err != nil {
			return nil, err
		}
		if len(players) == 0 {
			log.Info("No ranked players behind participant, result kept in standings only", "participant", participant, "matchID", id)
			continue
		}
		for _, player := range players {
			award, err := awardTx(tx, player, score)
			if err != nil {
				return nil, err
			}
			award.Team = team
			completion.Awards = append(completion.Awards, award)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return completion, nil
}

// playersForTx resolves a match participant to the ranked players it stands
// for. A registered user or a roster entry is one player. A team label stands
// for every user on that team and is returned as team. Anything else has no
// leaderboard presence.
func playersForTx(tx *sql.Tx, participant string) ([]string, string, error) {
	var n int
	if err := tx.QueryRow("SELECT COUNT(*) FROM users WHERE name = ?", participant).Scan(&n); err != nil {
		return nil, "", err
	}
	if n > 0 {
		return []string{participant}, "", nil
	}

	rows, err := tx.Query("SELECT name FROM users WHERE team = ? AND team <> ? ORDER BY email", participant, golf.DefaultTeam)
	if err != nil {
		return nil, "", err
	}
	var members []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			rows.Close()
			return nil, "", err
		}
		members = append(members, name)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, "", err
	}
	if len(members) > 0 {
		return members, participant, nil
	}

	if err := tx.QueryRow("SELECT COUNT(*) FROM leaderboard WHERE player_name = ?", participant).Scan(&n); err != nil {
		return nil, "", err
	}
	if n > 0 {
		return []string{participant}, "", nil
	}
	return nil, "", nil
}

// awardTx credits one player's leaderboard entry with the points for score.
func awardTx(tx *sql.Tx, player string, score int) (Award, error) {
	entry, err := leaderboardEntryTx(tx, player)
	if err != nil {
		return Award{}, err
	}
	earned := ranking.Award(entry, score)
	_, err = tx.Exec(`
		INSERT INTO leaderboard (player_name, user_email, handicap, points, matches_played)
		VALUES (?, (SELECT email FROM users WHERE name = ? ORDER BY email LIMIT 1), ?, ?, ?)
		ON CONFLICT(player_name) DO UPDATE SET
			points = excluded.points,
			matches_played = excluded.matches_played;
	`, entry.Name, entry.Name, entry.Handicap, entry.Points, entry.MatchesPlayed)
	if err != nil {
		return Award{}, fmt.Errorf("failed to award points to %s: %w", player, err)
	}
	return Award{Player: player, Score: score, Points: earned, TotalPoints: entry.Points}, nil
}

// leaderboardEntryTx loads a player's entry. A registered user without one
// gets a fresh entry carrying their handicap.
func leaderboardEntryTx(tx *sql.Tx, name string) (*golf.LeaderboardEntry, error) {
	entry := golf.LeaderboardEntry{Name: name}
	err := tx.QueryRow("SELECT handicap, points, matches_played FROM leaderboard WHERE player_name = ?", name).
		Scan(&entry.Handicap, &entry.Points, &entry.MatchesPlayed)
	if err == nil {
		return &entry, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	err = tx.QueryRow("SELECT handicap FROM users WHERE name = ? ORDER BY email LIMIT 1", name).Scan(&entry.Handicap)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	log.Info("Creating leaderboard entry for player without one", "player", name)
	return &entry, nil
}

// renameParticipantTx moves a player's match history to a new name: both
// participant columns and the keys of the per-player stats.
func renameParticipantTx(tx *sql.Tx, from, to string) error {
	if _, err := tx.Exec("UPDATE matches SET player_a = ? WHERE player_a = ?", to, from); err != nil {
		return err
	}
	if _, err := tx.Exec("UPDATE matches SET player_b = ? WHERE player_b = ?", to, from); err != nil {
		return err
	}

	rows, err := tx.Query("SELECT id, stats_json FROM matches WHERE (player_a = ? OR player_b = ?) AND stats_json IS NOT NULL", to, to)
	if err != nil {
		return err
	}
	updated := make(map[int]string)
	for rows.Next() {
		var (
			id    int
			raw   string
			stats map[string]golf.PlayerPerformance
		)
		if err := rows.Scan(&id, &raw); err != nil {
			rows.Close()
			return err
		}
		if err := json.Unmarshal([]byte(raw), &stats); err != nil {
			rows.Close()
			return fmt.Errorf("match %d has invalid stats_json: %w", id, err)
		}
		perf, ok := stats[from]
		if !ok {
			continue
		}
		delete(stats, from)
		stats[to] = perf
		b, err := json.Marshal(stats)
		if err != nil {
			rows.Close()
			return err
		}
		updated[id] = string(b)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	for id, raw := range updated {
		if _, err := tx.Exec("UPDATE matches SET stats_json = ? WHERE id = ?", raw, id); err != nil {
			return err
		}
	}
	return nil
}

// GetMatchesNeedingReminder returns Upcoming matches scheduled within [from, to]
// that have not been reminded about yet.
func (s *store) GetMatchesNeedingReminder(from, to time.Time) ([]*golf.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	candidates, err := queryMatches(s.db, "WHERE status = ? AND reminder_notified_ts IS NULL", golf.StatusUpcoming)
	if err != nil {
		return nil, err
	}
	var due []*golf.Match
	for _, m := range candidates {
		if !m.Date.Before(from) && !m.Date.After(to) {
			due = append(due, m)
		}
	}
	return due, nil
}

// UpdateNotificationTimestamp stamps the time a notification was sent for a match.
func (s *store) UpdateNotificationTimestamp(matchID int, kind NotificationKind) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var column string
	switch kind {
	case NotificationReminder:
		column = "reminder_notified_ts"
	case NotificationResult:
		column = "result_notified_ts"
	default:
		return fmt.Errorf("invalid notification kind: %s", kind)
	}

	res, err := s.db.Exec("UPDATE matches SET "+column+" = ? WHERE id = ?", time.Now().Unix(), matchID)
	if err != nil {
		return fmt.Errorf("failed to update %s for match %d: %w", column, matchID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %d", ErrMatchNotFound, matchID)
	}
	return nil
}
