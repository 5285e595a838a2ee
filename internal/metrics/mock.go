package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                  sync.Mutex
	matchesScheduled    int
	scoresSubmitted     int
	submissionDurations []float64
	persistenceFailures int
	slackNotifSent      int
	slackNotifFailed    int
	remindersSent       int
	startupTime         float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		submissionDurations: make([]float64, 0),
	}
}

func (m *Mock) IncMatchesScheduled() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.matchesScheduled++
}

func (m *Mock) IncScoresSubmitted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scoresSubmitted++
}

func (m *Mock) ObserveScoreSubmissionDuration(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.submissionDurations = append(m.submissionDurations, duration)
}

func (m *Mock) IncPersistenceFailures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.persistenceFailures++
}

func (m *Mock) IncSlackNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifSent++
}

func (m *Mock) IncSlackNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifFailed++
}

func (m *Mock) IncRemindersSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.remindersSent++
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// MatchesScheduled returns the number of times IncMatchesScheduled was called.
func (m *Mock) MatchesScheduled() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.matchesScheduled
}

// ScoresSubmitted returns the number of times IncScoresSubmitted was called.
func (m *Mock) ScoresSubmitted() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.scoresSubmitted
}

// SubmissionDurations returns every duration passed to ObserveScoreSubmissionDuration.
func (m *Mock) SubmissionDurations() []float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]float64(nil), m.submissionDurations...)
}

// PersistenceFailures returns the number of times IncPersistenceFailures was called.
func (m *Mock) PersistenceFailures() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.persistenceFailures
}

// SlackNotifSent returns the number of times IncSlackNotifSent was called.
func (m *Mock) SlackNotifSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifSent
}

// SlackNotifFailed returns the number of times IncSlackNotifFailed was called.
func (m *Mock) SlackNotifFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifFailed
}

// RemindersSent returns the number of times IncRemindersSent was called.
func (m *Mock) RemindersSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.remindersSent
}

// StartupTime returns the last value passed to SetStartupTime.
func (m *Mock) StartupTime() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.startupTime
}
