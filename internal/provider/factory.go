package provider

import (
	"log/slog"
	"time"

	"github.com/HasbiyallahuJafaru/E-KYC/pkg/platform/circuit"
)

// FactoryConfig selects and configures the verification provider.
type FactoryConfig struct {
	Name    string // "mock" or "verifyme"
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// New builds the configured provider wrapped with retry handling and a
// circuit breaker. Unknown names fall back to the mock provider so a
// misconfigured environment fails loudly in logs rather than silently
// dialing production.
func New(cfg FactoryConfig, logger *slog.Logger) Provider {
	var inner Provider
	switch cfg.Name {
	case "verifyme":
		inner = NewVerifyMe(VerifyMeConfig{
			BaseURL: cfg.BaseURL,
			APIKey:  cfg.APIKey,
			Timeout: cfg.Timeout,
		})
	case "mock", "":
		inner = NewMock()
	default:
		logger.Warn("unknown verification provider, falling back to mock",
			"provider", cfg.Name)
		inner = NewMock()
	}
	reliable := NewReliable(inner, cfg.Timeout, logger)
	return NewBreaking(reliable, circuit.New(inner.Name()), logger)
}
