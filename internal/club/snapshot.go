package club

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/golf-match-manager/internal/golf"
)

// UserRecord is a user as written to a snapshot, password included.
type UserRecord struct {
	Name     string  `json:"name"`
	Phone    string  `json:"phone"`
	Country  string  `json:"country"`
	Handicap float64 `json:"handicap"`
	Password string  `json:"password"`
	Team     string  `json:"team,omitempty"`
}

// Snapshot is the whole club as one document: users keyed by email, matches
// in id order and the leaderboard in insertion order.
type Snapshot struct {
	Users       map[string]UserRecord   `json:"users"`
	Matches     []*golf.Match           `json:"matches"`
	Leaderboard []golf.LeaderboardEntry `json:"leaderboard"`
}

// ReadSnapshot decodes a snapshot document.
func ReadSnapshot(r io.Reader) (*Snapshot, error) {
	var snap Snapshot
	if err := json.NewDecoder(r).Decode(&snap); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return &snap, nil
}

// ReadSnapshotFile reads a snapshot from disk.
func ReadSnapshotFile(path string) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadSnapshot(f)
}

// Write encodes the snapshot as indented JSON.
func (snap *Snapshot) Write(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(snap)
}

// Export reads the complete club state.
func (s *store) Export() (*Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	snap := &Snapshot{Users: make(map[string]UserRecord)}

	rows, err := tx.Query("SELECT " + userColumns + " FROM users")
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		snap.Users[u.Email] = UserRecord{Name: u.Name, Phone: u.Phone, Country: u.Country, Handicap: u.Handicap, Password: u.Password, Team: u.Team}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if snap.Matches, err = queryMatches(tx, ""); err != nil {
		return nil, err
	}
	if snap.Matches == nil {
		snap.Matches = []*golf.Match{}
	}

	lrows, err := tx.Query("SELECT player_name, handicap, points, matches_played FROM leaderboard ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer lrows.Close()
	snap.Leaderboard = []golf.LeaderboardEntry{}
	for lrows.Next() {
		var e golf.LeaderboardEntry
		if err := lrows.Scan(&e.Name, &e.Handicap, &e.Points, &e.MatchesPlayed); err != nil {
			return nil, err
		}
		snap.Leaderboard = append(snap.Leaderboard, e)
	}
	return snap, lrows.Err()
}

// Import writes a snapshot into the store in one transaction. Existing records
// with the same key are replaced, except that leaderboard counters never
// decrease and a completed match is never reopened. Every user ends up with
// a leaderboard entry: an unclaimed entry carrying their name is linked,
// otherwise a fresh one is created.
func (s *store) Import(snap *Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := upsertLeaderboardTx(tx, snap.Leaderboard); err != nil {
		return err
	}

	emails := make([]string, 0, len(snap.Users))
	for email := range snap.Users {
		emails = append(emails, email)
	}
	sort.Strings(emails)
	for _, email := range emails {
		u := snap.Users[email]
		if u.Team == "" {
			u.Team = golf.DefaultTeam
		}
		var previous string
		err := tx.QueryRow("SELECT name FROM users WHERE email = ?", email).Scan(&previous)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return err
		}
		if err == nil && previous != u.Name {
			if _, err := tx.Exec("UPDATE leaderboard SET player_name = ? WHERE user_email = ?", u.Name, email); err != nil {
				return fmt.Errorf("failed to rename leaderboard entry of %s: %w", email, err)
			}
			if err := renameParticipantTx(tx, previous, u.Name); err != nil {
				return err
			}
		}
		_, err = tx.Exec(`
			INSERT INTO users (email, name, phone, country, handicap, password, team)
			VALUES (?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(email) DO UPDATE SET
				name = excluded.name,
				phone = excluded.phone,
				country = excluded.country,
				handicap = excluded.handicap,
				password = excluded.password,
				team = excluded.team;
		`, email, u.Name, u.Phone, u.Country, u.Handicap, u.Password, u.Team)
		if err != nil {
			return fmt.Errorf("failed to import user %s: %w", email, err)
		}
		_, err = tx.Exec(`UPDATE OR IGNORE leaderboard SET user_email = ? WHERE player_name = ? AND user_email IS NULL`, email, u.Name)
		if err != nil {
			return err
		}
		_, err = tx.Exec(`
			INSERT INTO leaderboard (player_name, user_email, handicap, points, matches_played)
			SELECT ?, ?, ?, 0, 0
			WHERE NOT EXISTS (SELECT 1 FROM leaderboard WHERE user_email = ?)
		`, u.Name, email, u.Handicap, email)
		if err != nil {
			return fmt.Errorf("failed to create leaderboard entry for %s: %w", email, err)
		}
	}

	for _, m := range snap.Matches {
		if err := validateImportedMatch(m); err != nil {
			return err
		}
		existing, err := getMatch(tx, m.ID)
		switch {
		case errors.Is(err, ErrMatchNotFound):
		case err != nil:
			return err
		case existing.IsCompleted() && !m.IsCompleted():
			return fmt.Errorf("%w: match %d is completed and cannot be reopened", ErrInvalidSnapshot, m.ID)
		}
		if err := insertMatchTx(tx, m); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	log.Info("Imported club snapshot", "users", len(snap.Users), "matches", len(snap.Matches), "leaderboard", len(snap.Leaderboard))
	return nil
}

// validateImportedMatch applies the match invariants to a record read from a
// snapshot. Completed matches need both scores; upcoming ones carry none. A
// missing format defaults to stroke play as it does when scheduling.
func validateImportedMatch(m *golf.Match) error {
	if m == nil {
		return fmt.Errorf("%w: empty match record", ErrInvalidSnapshot)
	}
	if m.ID <= 0 {
		return fmt.Errorf("%w: match has invalid id %d", ErrInvalidSnapshot, m.ID)
	}
	if m.Players[0] == "" || m.Players[1] == "" {
		return fmt.Errorf("match %d: %w", m.ID, golf.ErrInvalidParticipants)
	}
	if m.Players[0] == m.Players[1] {
		return fmt.Errorf("match %d: %w", m.ID, golf.ErrSelfMatch)
	}
	if m.Format == "" {
		m.Format = golf.FormatStrokePlay
	}
	if !m.Format.Valid() {
		return fmt.Errorf("match %d: %w: %q", m.ID, golf.ErrInvalidFormat, m.Format)
	}

	switch m.Status {
	case golf.StatusUpcoming:
		if len(m.Scores) != 0 || m.CompletedDate != nil {
			return fmt.Errorf("%w: upcoming match %d has a result", ErrInvalidSnapshot, m.ID)
		}
	case golf.StatusCompleted:
		if len(m.Scores) != 2 {
			return fmt.Errorf("%w: completed match %d needs two scores", ErrInvalidSnapshot, m.ID)
		}
		for i, score := range m.Scores {
			if score < golf.MinScore || score > golf.MaxScore {
				return fmt.Errorf("match %d: %w: %s scored %d", m.ID, golf.ErrInvalidScore, m.Players[i], score)
			}
		}
	default:
		return fmt.Errorf("match %d: %w: %q", m.ID, golf.ErrInvalidStatus, m.Status)
	}
	return nil
}
