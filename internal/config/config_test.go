package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaultsAndEnvOverrides(t *testing.T) {
	t.Setenv("KYC_JWT_SECRET", "test-secret")
	t.Setenv("KYC_SERVER_PORT", "9090")
	t.Setenv("KYC_DATABASE_PASSWORD", "hunter2")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "test-secret", cfg.JWT.Secret)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "hunter2", cfg.Database.Password)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, "0.0.0.0:9090", cfg.Server.Addr())
	assert.Equal(t, 3, cfg.Auth.MaxLoginAttempts)
	assert.Equal(t, 900, cfg.Auth.LockoutWindow)
	assert.Equal(t, 28800, cfg.JWT.SessionTTL)
	assert.Equal(t, "kyc.audit", cfg.Kafka.Topic)
	assert.False(t, cfg.Kafka.Enabled)
}

func TestLoadConfigRequiresJWTSecret(t *testing.T) {
	_, err := LoadConfig(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jwt.secret")
}

func TestValidate(t *testing.T) {
	valid := Config{
		Server:   ServerConfig{Port: 8080},
		Database: DatabaseConfig{Host: "localhost"},
		JWT:      JWTConfig{Secret: "s", SessionTTL: 3600},
	}
	require.NoError(t, valid.Validate())

	badPort := valid
	badPort.Server.Port = 0
	assert.Error(t, badPort.Validate())

	kafkaNoBrokers := valid
	kafkaNoBrokers.Kafka.Enabled = true
	assert.Error(t, kafkaNoBrokers.Validate())
}
