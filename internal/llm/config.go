// Package llm provides the inference client abstraction used by the stage
// evaluators. It wraps Google Gemini behind a small interface so evaluators
// can be tested against a fake.
package llm

import "time"

// ModelTier represents the complexity/capability level of a model
type ModelTier string

const (
	// TierLite is for simple tasks: classification, short extraction
	TierLite ModelTier = "lite"
	// TierStandard is for structured scoring with moderate reasoning
	TierStandard ModelTier = "standard"
	// TierAdvanced is for transcript-scale analysis requiring nuance
	TierAdvanced ModelTier = "advanced"
)

// Provider represents an LLM provider
type Provider string

// Provider constants define supported LLM providers
const (
	// ProviderGemini is the Google Gemini provider
	ProviderGemini Provider = "gemini"
)

// DefaultCallTimeout bounds every inference call. A call that has not
// returned by then is treated by callers exactly like an evaluator error,
// so a hung model can never leave an application stuck mid-stage.
const DefaultCallTimeout = 60 * time.Second

// Config holds the model configuration for the screener
type Config struct {
	Provider Provider
	Models   map[ModelTier]string
	// CallTimeout applies per GenerateJSON/GenerateContent call.
	// Zero means DefaultCallTimeout.
	CallTimeout time.Duration
}

// DefaultConfig returns the default configuration (currently Gemini)
func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
		CallTimeout: DefaultCallTimeout,
	}
}

// GetModel returns the model name for a tier, or empty string if unset
func (c *Config) GetModel(tier ModelTier) string {
	if c.Models == nil {
		return ""
	}
	return c.Models[tier]
}

// timeout returns the effective per-call timeout
func (c *Config) timeout() time.Duration {
	if c.CallTimeout <= 0 {
		return DefaultCallTimeout
	}
	return c.CallTimeout
}
