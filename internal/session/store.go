package session

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// NewStore creates a new session store
func NewStore(db *sql.DB) Store {
	return &store{
		db: db,
	}
}

// Create starts a session for email
func (s *store) Create(email string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	token := uuid.New().String()
	_, err := s.db.Exec("INSERT INTO sessions (token, email, created_at) VALUES (?, ?, ?)", token, email, time.Now().Unix())
	if err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}
	log.Debug("Created session", "email", email)
	return token, nil
}

// Lookup returns the email owning token
func (s *store) Lookup(token string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var email string
	err := s.db.QueryRow("SELECT email FROM sessions WHERE token = ?", token).Scan(&email)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrSessionNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to look up session: %w", err)
	}
	return email, nil
}

// Delete ends a session
func (s *store) Delete(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec("DELETE FROM sessions WHERE token = ?", token); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// DeleteAllForUser ends every session of a user
func (s *store) DeleteAllForUser(email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec("DELETE FROM sessions WHERE email = ?", email)
	if err != nil {
		return fmt.Errorf("failed to delete sessions for %s: %w", email, err)
	}
	if n, err := res.RowsAffected(); err == nil {
		log.Debug("Deleted sessions", "email", email, "count", n)
	}
	return nil
}
