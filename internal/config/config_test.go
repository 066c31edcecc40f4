package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "")
	t.Setenv("AUTH_REQUIRE_PASSWORD", "")
	t.Setenv("LATEST_LEADS_LIMIT", "")
	t.Setenv("SESSION_TIMEOUT", "")

	cfg := Load()

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.False(t, cfg.RequirePassword)
	assert.Equal(t, 10, cfg.LatestLeadsLimit)
	assert.Equal(t, 3600, cfg.SessionTimeout)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("AUTH_REQUIRE_PASSWORD", "true")
	t.Setenv("LATEST_LEADS_LIMIT", "25")
	t.Setenv("SESSION_TIMEOUT", "not-a-number")

	cfg := Load()

	assert.Equal(t, "9090", cfg.ServerPort)
	assert.True(t, cfg.RequirePassword)
	assert.Equal(t, 25, cfg.LatestLeadsLimit)
	assert.Equal(t, 3600, cfg.SessionTimeout)
}

func TestWhatsAppEnabled(t *testing.T) {
	cfg := &Config{WhatsAppAPIURL: "https://gateway.local"}
	assert.False(t, cfg.WhatsAppEnabled())

	cfg.WhatsAppNotifyPhone = "0901234567"
	assert.True(t, cfg.WhatsAppEnabled())
}
