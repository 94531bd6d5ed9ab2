package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func baseConfig() *Config {
	return &Config{
		JWTSecret:      "test-secret",
		JWTExpiryHours: 100,
		Port:           "8080",
		Env:            "test",
	}
}

func TestValidate(t *testing.T) {
	assert.NoError(t, baseConfig().Validate())
}

func TestValidateMissingPort(t *testing.T) {
	cfg := baseConfig()
	cfg.Port = ""
	assert.Error(t, cfg.Validate())
}

func TestValidateMissingSecret(t *testing.T) {
	cfg := baseConfig()
	cfg.JWTSecret = ""
	assert.Error(t, cfg.Validate())
}

func TestValidateNonPositiveExpiry(t *testing.T) {
	cfg := baseConfig()
	cfg.JWTExpiryHours = 0
	assert.Error(t, cfg.Validate())
}

func TestValidateProductionRejectsDefaults(t *testing.T) {
	cfg := baseConfig()
	cfg.Env = "production"
	cfg.JWTSecret = "your-secret-key-change-in-production"
	cfg.DBPassword = "supersecret-db-password"
	assert.Error(t, cfg.Validate())

	cfg.JWTSecret = "short"
	assert.Error(t, cfg.Validate())

	cfg.JWTSecret = "a-long-enough-production-secret-value!!"
	cfg.DBPassword = "password"
	assert.Error(t, cfg.Validate())

	cfg.DBPassword = "supersecret-db-password"
	assert.NoError(t, cfg.Validate())
}
