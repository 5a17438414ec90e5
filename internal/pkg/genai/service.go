// internal/pkg/genai/service.go
package genai

import (
	"github.com/sirupsen/logrus"
	"github.com/your-org/smartshop-backend/internal/config"
)

// NewService creates the AI service based on configuration.
// Unknown providers and missing keys fall back to the mock so the
// application stays usable without external credentials.
func NewService(cfg config.GenAIConfig, logger *logrus.Logger) Service {
	switch cfg.Provider {
	case "gemini":
		if cfg.APIKey == "" {
			logger.Warn("GEMINI_API_KEY not set, falling back to mock AI provider")
			return NewMockProvider()
		}
		return NewGeminiProvider(cfg, logger)
	case "mock":
		return NewMockProvider()
	default:
		logger.WithField("provider", cfg.Provider).Warn("unknown AI provider, using mock")
		return NewMockProvider()
	}
}
