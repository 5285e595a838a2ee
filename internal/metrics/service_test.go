package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService(t *testing.T) {
	reg := prometheus.NewRegistry()
	svc := NewService(reg)

	svc.IncMatchesScheduled()
	svc.IncMatchesScheduled()
	svc.IncScoresSubmitted()
	svc.IncPersistenceFailures()
	svc.IncSlackNotifSent()
	svc.IncSlackNotifFailed()
	svc.IncRemindersSent()
	svc.ObserveScoreSubmissionDuration(0.02)
	svc.SetStartupTime(1.5)

	assert.Equal(t, 2.0, testutil.ToFloat64(svc.MatchesScheduled))
	assert.Equal(t, 1.0, testutil.ToFloat64(svc.ScoresSubmitted))
	assert.Equal(t, 1.0, testutil.ToFloat64(svc.PersistenceFailures))
	assert.Equal(t, 1.0, testutil.ToFloat64(svc.SlackNotifSent))
	assert.Equal(t, 1.0, testutil.ToFloat64(svc.SlackNotifFailed))
	assert.Equal(t, 1.0, testutil.ToFloat64(svc.RemindersSent))
	assert.Equal(t, 1.5, testutil.ToFloat64(svc.StartupTimeSeconds))
	assert.Equal(t, 1, testutil.CollectAndCount(svc.ScoreSubmissionDuration))

	rec := httptest.NewRecorder()
	NewMetricsHandler(reg).ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "golf_matches_scheduled_total 2")
	assert.Contains(t, string(body), "golf_score_submission_duration_seconds_count 1")
}

func TestMock(t *testing.T) {
	m := NewMock()
	m.IncMatchesScheduled()
	m.IncScoresSubmitted()
	m.ObserveScoreSubmissionDuration(0.5)
	m.IncPersistenceFailures()
	m.SetStartupTime(2)

	assert.Equal(t, 1, m.MatchesScheduled())
	assert.Equal(t, 1, m.ScoresSubmitted())
	assert.Equal(t, []float64{0.5}, m.SubmissionDurations())
	assert.Equal(t, 1, m.PersistenceFailures())
	assert.Equal(t, 2.0, m.StartupTime())
}
