package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAppliesDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := Load("testdata/absent.env")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoDB.URI)
	assert.Equal(t, "ovinmanager", cfg.MongoDB.DBName)
	assert.Equal(t, 12*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, "backups", cfg.Backup.Dir)
	assert.Equal(t, "0 2 * * *", cfg.Backup.CronSchedule)
	assert.False(t, cfg.SheetsEnabled())
}

func TestLoadRequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := Load("testdata/absent.env")
	assert.ErrorContains(t, err, "JWT_SECRET")
}

func TestLoadRejectsBadTokenTTL(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("TOKEN_TTL", "soon")

	_, err := Load("testdata/absent.env")
	assert.ErrorContains(t, err, "TOKEN_TTL")
}

func TestValidateRejectsHalfSheetsConfig(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("GOOGLE_SHEET_REGISTER_ID", "sheet-id")
	t.Setenv("GOOGLE_SHEETS_CREDENTIALS_PATH", "")

	_, err := Load("testdata/absent.env")
	assert.ErrorContains(t, err, "must be set together")
}

func TestSheetsEnabled(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("GOOGLE_SHEET_REGISTER_ID", "sheet-id")
	t.Setenv("GOOGLE_SHEETS_CREDENTIALS_PATH", "/etc/ovinpro/credentials.json")

	cfg, err := Load("testdata/absent.env")
	require.NoError(t, err)
	assert.True(t, cfg.SheetsEnabled())
}
