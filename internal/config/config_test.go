// internal/config/config_test.go
package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func baseConfig() *Config {
	return &Config{
		Server: ServerConfig{Port: "8080"},
		Redis:  RedisConfig{Host: "localhost"},
	}
}

func TestValidateAllowsKeylessGemini(t *testing.T) {
	cfg := baseConfig()
	cfg.GenAI.Provider = "gemini"
	cfg.GenAI.APIKey = ""

	assert.NoError(t, cfg.Validate(), "missing key falls back to the mock provider instead of failing startup")
}

func TestValidateRequiredFields(t *testing.T) {
	cfg := baseConfig()
	cfg.Redis.Host = ""
	assert.Error(t, cfg.Validate())

	cfg = baseConfig()
	cfg.Server.Port = ""
	assert.Error(t, cfg.Validate())
}

func TestValidateRejectsNegativePaymentDelay(t *testing.T) {
	cfg := baseConfig()
	cfg.Checkout.PaymentDelay = -time.Second
	assert.Error(t, cfg.Validate())
}
