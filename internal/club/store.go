package club

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/golf-match-manager/internal/golf"
)

// New creates a new ClubStore.
func New(db *sql.DB) ClubStore {
	return &store{
		db: db,
	}
}

// RegisterUser stores a new user together with their leaderboard entry. A
// roster entry with the same name that is not yet linked to an account is
// claimed instead of creating a second one.
func (s *store) RegisterUser(user golf.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user.Name = strings.TrimSpace(user.Name)
	if user.Team == "" {
		user.Team = golf.DefaultTeam
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var exists int
	if err := tx.QueryRow("SELECT COUNT(*) FROM users WHERE email = ?", user.Email).Scan(&exists); err != nil {
		return err
	}
	if exists > 0 {
		return ErrEmailExists
	}
	if err := tx.QueryRow("SELECT COUNT(*) FROM users WHERE name = ?", user.Name).Scan(&exists); err != nil {
		return err
	}
	if exists > 0 {
		return ErrNameTaken
	}

	var linked sql.NullString
	err = tx.QueryRow("SELECT user_email FROM leaderboard WHERE player_name = ?", user.Name).Scan(&linked)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		_, err = tx.Exec(`INSERT INTO leaderboard (player_name, user_email, handicap, points, matches_played) VALUES (?, ?, ?, 0, 0)`,
			user.Name, user.Email, user.Handicap)
		if err != nil {
			return err
		}
	case err != nil:
		return err
	case linked.Valid:
		return ErrNameTaken
	default:
		log.Info("Linking existing leaderboard entry to new account", "player", user.Name, "email", user.Email)
		_, err = tx.Exec("UPDATE leaderboard SET user_email = ?, handicap = ? WHERE player_name = ?", user.Email, user.Handicap, user.Name)
		if err != nil {
			return err
		}
	}

	_, err = tx.Exec(`INSERT INTO users (email, name, phone, country, handicap, password, team) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		user.Email, user.Name, user.Phone, user.Country, user.Handicap, user.Password, user.Team)
	if err != nil {
		return err
	}
	return tx.Commit()
}

const userColumns = "email, name, phone, country, handicap, password, team"

func scanUser(scanner interface{ Scan(...any) error }) (*golf.User, error) {
	var u golf.User
	if err := scanner.Scan(&u.Email, &u.Name, &u.Phone, &u.Country, &u.Handicap, &u.Password, &u.Team); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetUser retrieves a user by email.
func (s *store) GetUser(email string) (*golf.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, err := scanUser(s.db.QueryRow("SELECT "+userColumns+" FROM users WHERE email = ?", email))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	return user, err
}

// GetAllUsers retrieves every registered user ordered by email.
func (s *store) GetAllUsers() ([]golf.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query("SELECT " + userColumns + " FROM users ORDER BY email")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []golf.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

// UpdateProfile changes a user's profile and keeps their linked leaderboard
// entry's name and handicap in step.
func (s *store) UpdateProfile(email string, update ProfileUpdate) (*golf.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	update.Name = strings.TrimSpace(update.Name)

	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	user, err := scanUser(tx.QueryRow("SELECT "+userColumns+" FROM users WHERE email = ?", email))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	if update.Name != user.Name {
		var taken int
		err := tx.QueryRow(`SELECT
			(SELECT COUNT(*) FROM users WHERE (name = ? OR team = ?) AND email <> ?) +
			(SELECT COUNT(*) FROM leaderboard WHERE player_name = ? AND IFNULL(user_email, '') <> ?) +
			(SELECT COUNT(*) FROM matches WHERE player_a = ? OR player_b = ?)`,
			update.Name, update.Name, email, update.Name, email, update.Name, update.Name).Scan(&taken)
		if err != nil {
			return nil, err
		}
		if taken > 0 {
			return nil, ErrNameTaken
		}
	}

	_, err = tx.Exec("UPDATE users SET name = ?, phone = ?, country = ?, handicap = ? WHERE email = ?",
		update.Name, update.Phone, update.Country, update.Handicap, email)
	if err != nil {
		return nil, err
	}
	if update.Name != user.Name {
		if err := renameParticipantTx(tx, user.Name, update.Name); err != nil {
			return nil, err
		}
		log.Info("Renamed player", "email", email, "from", user.Name, "to", update.Name)
	}
	_, err = tx.Exec("UPDATE leaderboard SET player_name = ?, handicap = ? WHERE user_email = ?", update.Name, update.Handicap, email)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	user.Name = update.Name
	user.Phone = update.Phone
	user.Country = update.Country
	user.Handicap = update.Handicap
	return user, nil
}

// UpdatePassword replaces a user's password.
func (s *store) UpdatePassword(email, password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec("UPDATE users SET password = ? WHERE email = ?", password, email)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrUserNotFound
	}
	return nil
}

// IsKnownPlayer reports whether name is on the leaderboard or belongs to a
// registered user or team.
func (s *store) IsKnownPlayer(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int
	err := s.db.QueryRow(`SELECT
		(SELECT COUNT(*) FROM leaderboard WHERE player_name = ?) +
		(SELECT COUNT(*) FROM users WHERE name = ? OR team = ?)`, name, name, name).Scan(&count)
	if err != nil {
		log.Error("Failed to check for known player", "error", err, "player", name)
		return false
	}
	return count > 0
}

// GetRoster lists every player name: leaderboard entries in insertion order,
// then registered users that have no entry.
func (s *store) GetRoster() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT player_name FROM (
			SELECT player_name, 0 AS src, id AS ord FROM leaderboard
			UNION ALL
			SELECT name, 1, rowid FROM users WHERE name NOT IN (SELECT player_name FROM leaderboard)
		) ORDER BY src, ord`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// GetLeaderboard returns all leaderboard entries in insertion order.
func (s *store) GetLeaderboard() ([]golf.LeaderboardEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query("SELECT player_name, handicap, points, matches_played FROM leaderboard ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []golf.LeaderboardEntry
	for rows.Next() {
		var e golf.LeaderboardEntry
		if err := rows.Scan(&e.Name, &e.Handicap, &e.Points, &e.MatchesPlayed); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// UpsertLeaderboardEntries inserts or replaces roster entries by name. It is
// used for seeding; score submissions go through CompleteMatch. An existing
// entry's points and matches played may only grow.
func (s *store) UpsertLeaderboardEntries(entries []golf.LeaderboardEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := upsertLeaderboardTx(tx, entries); err != nil {
		return err
	}
	return tx.Commit()
}

func upsertLeaderboardTx(tx *sql.Tx, entries []golf.LeaderboardEntry) error {
	current, err := tx.Prepare("SELECT points, matches_played FROM leaderboard WHERE player_name = ?")
	if err != nil {
		return err
	}
	defer current.Close()

	stmt, err := tx.Prepare(`
		INSERT INTO leaderboard (player_name, handicap, points, matches_played)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(player_name) DO UPDATE SET
			handicap = excluded.handicap,
			points = excluded.points,
			matches_played = excluded.matches_played;
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, e := range entries {
		if e.Points < 0 || e.MatchesPlayed < 0 {
			return fmt.Errorf("invalid leaderboard entry for %s: negative counters", e.Name)
		}
		var points, played int
		err := current.QueryRow(e.Name).Scan(&points, &played)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return err
		}
		if err == nil && (e.Points < points || e.MatchesPlayed < played) {
			return fmt.Errorf("%w: %s has %d points in %d matches, got %d in %d",
				ErrCounterDecrease, e.Name, points, played, e.Points, e.MatchesPlayed)
		}
		if _, err := stmt.Exec(e.Name, e.Handicap, e.Points, e.MatchesPlayed); err != nil {
			return fmt.Errorf("failed to upsert leaderboard entry %s: %w", e.Name, err)
		}
	}
	return nil
}

// Clear deletes all club data. Used by tests and the seeder.
func (s *store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		log.Error("Failed to begin transaction for clear", "error", err)
		return
	}
	for _, table := range []string{"matches", "leaderboard", "users"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			log.Error("Failed to clear table", "table", table, "error", err)
			tx.Rollback()
			return
		}
	}
	if err := tx.Commit(); err != nil {
		log.Error("Failed to commit clear", "error", err)
	}
}
