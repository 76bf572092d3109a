package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseRecipients(t *testing.T) {
	t.Run("parses name=number pairs", func(t *testing.T) {
		got := parseRecipients("Supplier A=+212600000001, Canon = +212600000002")
		assert.Equal(t, "+212600000001", got["Supplier A"])
		assert.Equal(t, "+212600000002", got["Canon"])
	})

	t.Run("skips malformed pairs", func(t *testing.T) {
		got := parseRecipients("no-separator,=+2126,Empty=")
		assert.Empty(t, got)
	})
}

func TestFromEnvDefaults(t *testing.T) {
	cfg := FromEnv()
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, 10*time.Second, cfg.Notify.DispatchTimeout)
	assert.Equal(t, 5*time.Minute, cfg.ScanSessionTTL)
	assert.Equal(t, time.Hour, cfg.AccessTokenTTL)
	assert.NotEmpty(t, cfg.Notify.DefaultRecipient)
	assert.NotEmpty(t, cfg.BootstrapAdmin.Email)
	assert.False(t, cfg.StrictValidation)
}
