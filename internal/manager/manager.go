package manager

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/golf-match-manager/internal/club"
	"github.com/mauv0809/golf-match-manager/internal/golf"
	"github.com/mauv0809/golf-match-manager/internal/metrics"
	"github.com/mauv0809/golf-match-manager/internal/notifier"
	"github.com/mauv0809/golf-match-manager/internal/pubsub"
	"github.com/mauv0809/golf-match-manager/internal/session"
)

// New creates a new Manager.
func New(store club.ClubStore, sessions session.Store, notifier notifier.Notifier, metrics metrics.Metrics, activity metrics.MetricsStore, pubsub pubsub.PubSubClient) *Manager {
	return &Manager{
		store:    store,
		sessions: sessions,
		notifier: notifier,
		metrics:  metrics,
		activity: activity,
		pubsub:   pubsub,
		now:      time.Now,
	}
}

// SetClock replaces the time source. Used by tests.
func (m *Manager) SetClock(now func() time.Time) {
	m.now = now
}

// Register creates an account and its leaderboard entry.
func (m *Manager) Register(req RegisterRequest, dryRun bool) (*golf.User, error) {
	req.Email = strings.TrimSpace(req.Email)
	req.Name = strings.TrimSpace(req.Name)
	if req.Email == "" || req.Name == "" || req.Password == "" {
		return nil, ErrInvalidRegistration
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return nil, fmt.Errorf("%w: invalid email %q", ErrInvalidRegistration, req.Email)
	}
	if req.Password != req.ConfirmPassword {
		return nil, ErrPasswordMismatch
	}
	if err := golf.ValidateHandicap(req.Handicap); err != nil {
		return nil, err
	}

	user := golf.User{
		Email:    req.Email,
		Name:     req.Name,
		Phone:    req.Phone,
		Country:  req.Country,
		Handicap: req.Handicap,
		Password: req.Password,
		Team:     golf.DefaultTeam,
	}

	m.mu.Lock()
	err := m.store.RegisterUser(user)
	m.mu.Unlock()
	if err != nil {
		m.countPersistenceFailure(err)
		return nil, err
	}
	log.Info("Registered player", "email", user.Email, "name", user.Name)
	m.activity.Increment(metrics.KeyPlayersRegistered)

	m.publish(pubsub.EventPlayerRegistered, pubsub.PlayerRegisteredEvent{
		Email:    user.Email,
		Name:     user.Name,
		Handicap: user.Handicap,
	}, dryRun)
	return &user, nil
}

// Login checks the credentials and opens a session.
func (m *Manager) Login(email, password string) (string, *golf.User, error) {
	user, err := m.store.GetUser(strings.TrimSpace(email))
	if errors.Is(err, club.ErrUserNotFound) {
		return "", nil, ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, err
	}
	if user.Password != password {
		log.Warn("Failed login attempt", "email", email)
		return "", nil, ErrInvalidCredentials
	}

	token, err := m.sessions.Create(user.Email)
	if err != nil {
		return "", nil, err
	}
	log.Info("User logged in", "email", user.Email)
	return token, user, nil
}

// Logout ends the session behind token.
func (m *Manager) Logout(token string) error {
	return m.sessions.Delete(token)
}

// Authenticate resolves a session token to the email of its user.
func (m *Manager) Authenticate(token string) (string, error) {
	if token == "" {
		return "", session.ErrSessionNotFound
	}
	return m.sessions.Lookup(token)
}

// CurrentUser returns the profile of a logged-in user.
func (m *Manager) CurrentUser(email string) (*golf.User, error) {
	return m.store.GetUser(email)
}

// UpdateProfile validates and stores a profile change.
func (m *Manager) UpdateProfile(email string, update club.ProfileUpdate) (*golf.User, error) {
	update.Name = strings.TrimSpace(update.Name)
	if update.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidRegistration)
	}
	if err := golf.ValidateHandicap(update.Handicap); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	user, err := m.store.UpdateProfile(email, update)
	if err != nil {
		m.countPersistenceFailure(err)
		return nil, err
	}
	log.Info("Updated profile", "email", email)
	return user, nil
}

// ChangePassword replaces the password after checking the current one and
// ends every open session of the user.
func (m *Manager) ChangePassword(email string, req ChangePasswordRequest) error {
	user, err := m.store.GetUser(email)
	if err != nil {
		return err
	}
	if user.Password != req.CurrentPassword {
		return ErrInvalidCredentials
	}
	if req.NewPassword == "" {
		return fmt.Errorf("%w: new password is required", ErrInvalidRegistration)
	}
	if req.NewPassword != req.ConfirmPassword {
		return ErrPasswordMismatch
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.store.UpdatePassword(email, req.NewPassword); err != nil {
		m.countPersistenceFailure(err)
		return err
	}
	if err := m.sessions.DeleteAllForUser(email); err != nil {
		log.Error("Failed to end sessions after password change", "email", email, "error", err)
	}
	log.Info("Password changed", "email", email)
	return nil
}

// domainErrors are expected rejections, not store failures.
var domainErrors = []error{
	club.ErrEmailExists,
	club.ErrNameTaken,
	club.ErrUserNotFound,
	club.ErrMatchNotFound,
	golf.ErrMatchCompleted,
	golf.ErrInvalidStatus,
	golf.ErrInvalidScore,
	golf.ErrInvalidConditions,
	golf.ErrInvalidStats,
}

func (m *Manager) countPersistenceFailure(err error) {
	for _, target := range domainErrors {
		if errors.Is(err, target) {
			return
		}
	}
	log.Error("Record store write failed", "error", err)
	m.metrics.IncPersistenceFailures()
}

// publish sends an event unless this is a dry run. Failures are logged only.
func (m *Manager) publish(topic pubsub.EventType, event any, dryRun bool) {
	if dryRun {
		log.Info("[Dry Run] Would publish event", "topic", topic)
		return
	}
	if err := m.pubsub.SendMessage(topic, event); err != nil {
		log.Error("Failed to publish event", "topic", topic, "error", err)
	}
}
