package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	t.Setenv("DB_NAME", "golf.db")
	t.Setenv("PORT", "8080")
	t.Setenv("SLACK_BOT_TOKEN", "xoxb-test")
	t.Setenv("SLACK_CHANNEL_ID", "C123")
	t.Setenv("REMINDER_INTERVAL", "5m")
	t.Setenv("REMINDER_LEAD_TIME", "not-a-duration")

	cfg := Load()

	assert.Equal(t, "golf.db", cfg.DBName)
	assert.Equal(t, "8080", cfg.Port)
	assert.True(t, cfg.SlackEnabled())
	assert.Equal(t, 5*time.Minute, cfg.Reminder.Interval)
	assert.Equal(t, defaultReminderLeadTime, cfg.Reminder.LeadTime, "invalid durations fall back to the default")
}

func TestSlackEnabled(t *testing.T) {
	assert.False(t, Config{}.SlackEnabled())
	assert.False(t, Config{Slack: SlackConfig{Token: "xoxb"}}.SlackEnabled())
}
