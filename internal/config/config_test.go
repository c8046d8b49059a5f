package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validProdConfig() *Config {
	return &Config{
		JWTSecret:  "a-long-production-secret-with-32plus-chars",
		Port:       "8460",
		DBDriver:   "postgres",
		DBPassword: "strong-db-password",
		DBSSLMode:  "require",
		Env:        "production",
	}
}

func TestValidateDevelopmentDefaults(t *testing.T) {
	cfg := &Config{
		JWTSecret: "change-this-secret-before-production",
		Port:      "8460",
		DBDriver:  "sqlite",
		Env:       "development",
	}
	assert.NoError(t, cfg.Validate())
}

func TestValidateRequiredFields(t *testing.T) {
	cfg := validProdConfig()
	cfg.Port = ""
	assert.Error(t, cfg.Validate())

	cfg = validProdConfig()
	cfg.JWTSecret = ""
	assert.Error(t, cfg.Validate())

	cfg = validProdConfig()
	cfg.DBDriver = "mysql"
	assert.Error(t, cfg.Validate())
}

func TestValidateProductionHardening(t *testing.T) {
	cfg := validProdConfig()
	assert.NoError(t, cfg.Validate())

	cfg = validProdConfig()
	cfg.JWTSecret = "change-this-secret-before-production"
	assert.Error(t, cfg.Validate())

	cfg = validProdConfig()
	cfg.JWTSecret = "short-secret"
	assert.Error(t, cfg.Validate())

	cfg = validProdConfig()
	cfg.DBDriver = "sqlite"
	assert.Error(t, cfg.Validate())

	cfg = validProdConfig()
	cfg.DBPassword = "password"
	assert.Error(t, cfg.Validate())
}

func TestIsProduction(t *testing.T) {
	assert.True(t, (&Config{Env: "production"}).IsProduction())
	assert.True(t, (&Config{Env: "prod"}).IsProduction())
	assert.False(t, (&Config{Env: "development"}).IsProduction())
	assert.False(t, (&Config{Env: "test"}).IsProduction())
}
