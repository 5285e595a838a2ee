package session

import (
	"fmt"
	"sync"
)

// MockStore is an in-memory Store for tests.
type MockStore struct {
	mu       sync.Mutex
	next     int
	sessions map[string]string

	CreateFunc func(email string) (string, error)
}

func NewMock() *MockStore {
	return &MockStore{sessions: make(map[string]string)}
}

func (m *MockStore) Create(email string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CreateFunc != nil {
		return m.CreateFunc(email)
	}
	m.next++
	token := fmt.Sprintf("token-%d", m.next)
	m.sessions[token] = email
	return token, nil
}

func (m *MockStore) Lookup(token string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	email, ok := m.sessions[token]
	if !ok {
		return "", ErrSessionNotFound
	}
	return email, nil
}

func (m *MockStore) Delete(token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, token)
	return nil
}

func (m *MockStore) DeleteAllForUser(email string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for token, owner := range m.sessions {
		if owner == email {
			delete(m.sessions, token)
		}
	}
	return nil
}
