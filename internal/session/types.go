package session

import (
	"database/sql"
	"errors"
	"sync"
)

var ErrSessionNotFound = errors.New("session not found")

// store handles database operations for sessions
type store struct {
	db *sql.DB
	mu sync.RWMutex
}
