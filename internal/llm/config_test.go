package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, ProviderGemini, cfg.Provider)
	assert.NotEmpty(t, cfg.Models[TierLite])
	assert.NotEmpty(t, cfg.Models[TierStandard])
	assert.NotEmpty(t, cfg.Models[TierAdvanced])
}

func TestGetModel_FallbackChain(t *testing.T) {
	cfg := &Config{
		Provider: ProviderGemini,
		Models:   map[ModelTier]string{TierLite: "lite-model"},
	}

	// Missing tiers fall back to standard, then lite.
	assert.Equal(t, "lite-model", cfg.GetModel(TierAdvanced))
	assert.Equal(t, "lite-model", cfg.GetModel(TierStandard))
	assert.Equal(t, "lite-model", cfg.GetModel(TierLite))

	empty := &Config{Provider: ProviderGemini, Models: map[ModelTier]string{}}
	assert.Empty(t, empty.GetModel(TierLite))
}

func TestWithModel_DoesNotMutateOriginal(t *testing.T) {
	base := DefaultConfig()
	derived := base.WithModel(TierLite, "custom-model")

	assert.Equal(t, "custom-model", derived.Models[TierLite])
	assert.NotEqual(t, "custom-model", base.Models[TierLite])
}
