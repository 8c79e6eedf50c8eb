// Package llm provides the completion-service client used by the matcher,
// the status predictor, and the cover letter writer. The service is treated
// as opaque: a prompt goes in, free-form text comes out.
package llm

// ModelTier represents the complexity/capability level of a model.
type ModelTier string

const (
	// TierLite is for cheap judgment calls: status prediction, classification.
	TierLite ModelTier = "lite"
	// TierStandard is for structured output: match sub-score judging.
	TierStandard ModelTier = "standard"
	// TierAdvanced is for long-form generation: cover letters.
	TierAdvanced ModelTier = "advanced"
)

// Config holds the model configuration for the process.
type Config struct {
	Models map[ModelTier]string
}

// DefaultConfig returns the default Gemini model mapping.
func DefaultConfig() *Config {
	return &Config{
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
	}
}

// GetModel returns the model name for a tier, falling back to standard then
// lite when the tier is not configured.
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	if model, ok := c.Models[TierLite]; ok {
		return model
	}
	return ""
}

// WithModel returns a copy of the config with one tier overridden.
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	out := &Config{Models: make(map[ModelTier]string, len(c.Models))}
	for k, v := range c.Models {
		out.Models[k] = v
	}
	out.Models[tier] = model
	return out
}
