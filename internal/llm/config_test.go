package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetModel_ConfiguredTier(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, "gemini-2.5-flash", config.GetModel(TierStandard))
	assert.Equal(t, "gemini-2.5-flash-lite", config.GetModel(TierLite))
	assert.Equal(t, "gemini-2.5-pro", config.GetModel(TierAdvanced))
}

func TestGetModel_FallbackChain(t *testing.T) {
	config := &Config{Models: map[ModelTier]string{TierLite: "lite-model"}}

	// Advanced not configured, standard not configured, falls back to lite.
	assert.Equal(t, "lite-model", config.GetModel(TierAdvanced))
}

func TestGetModel_NothingConfigured(t *testing.T) {
	config := &Config{Models: map[ModelTier]string{}}
	assert.Empty(t, config.GetModel(TierStandard))
}

func TestWithModel_DoesNotMutateOriginal(t *testing.T) {
	config := DefaultConfig()
	override := config.WithModel(TierStandard, "custom-model")

	assert.Equal(t, "custom-model", override.GetModel(TierStandard))
	assert.Equal(t, "gemini-2.5-flash", config.GetModel(TierStandard))
}
