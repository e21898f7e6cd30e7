package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, 20, cfg.TickSeconds)
	assert.Equal(t, 30, cfg.DefaultSnoozeMinutes)
	assert.Equal(t, 10*time.Second, cfg.NotifyTimeout)
	assert.Equal(t, "*/20 * * * * *", cfg.TickSpec())
}

func TestLoad_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate_TickSeconds(t *testing.T) {
	tests := []struct {
		seconds int
		wantErr bool
	}{
		{seconds: 1},
		{seconds: 15},
		{seconds: 20},
		{seconds: 30},
		{seconds: 0, wantErr: true},
		{seconds: 25, wantErr: true},
		{seconds: 40, wantErr: true},
		{seconds: 60, wantErr: true},
	}
	for _, tt := range tests {
		cfg := validConfig()
		cfg.TickSeconds = tt.seconds
		err := cfg.Validate()
		if tt.wantErr {
			assert.Error(t, err, "tick %d", tt.seconds)
		} else {
			assert.NoError(t, err, "tick %d", tt.seconds)
		}
	}
}

func TestValidate_PairedCredentials(t *testing.T) {
	cfg := validConfig()
	cfg.VAPIDPublicKey = "pub"
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.LineChannelToken = "token"
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.DBDriver = "mysql"
	assert.Error(t, cfg.Validate())
}

func TestLocation(t *testing.T) {
	cfg := validConfig()
	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)

	cfg.Timezone = "Asia/Tokyo"
	loc, err = cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "Asia/Tokyo", loc.String())

	cfg.Timezone = "Nowhere/Land"
	assert.Error(t, cfg.Validate())
}

func validConfig() *Config {
	return &Config{
		DBDriver:             "sqlite",
		JWTSecret:            "secret",
		TickSeconds:          20,
		Timezone:             "Local",
		DefaultSnoozeMinutes: 30,
	}
}
