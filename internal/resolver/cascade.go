package resolver

import "github.com/lbds137/tzurot/internal/model"

// Compiled-in fallback values. Only Model and Temperature have fallbacks;
// every other field stays absent when no tier supplies it, so the
// inference provider applies its own default.
const (
	FallbackModel       = "openai/gpt-4o"
	FallbackTemperature = 1.0
)

// Cascade merges an entity-specific config, the global default, and the
// compiled-in fallbacks into one effective configuration.
//
// Resolution is strictly per-field: a personality that overrides only
// temperature inherits every other field from the global default. Merging
// whole config objects here would be a correctness bug, because records
// are expected to carry partial overrides.
func Cascade(entity, global *model.ValidatedConfig) model.EffectiveConfig {
	if entity == nil {
		entity = &model.ValidatedConfig{}
	}
	if global == nil {
		global = &model.ValidatedConfig{}
	}

	eff := model.EffectiveConfig{
		// Core generation params.
		Model:       stringOr(pick(entity.Model, global.Model), FallbackModel),
		Temperature: floatOr(pick(entity.Temperature, global.Temperature), FallbackTemperature),
		VisionModel: pick(entity.VisionModel, global.VisionModel),
		MaxTokens:   pick(entity.MaxTokens, global.MaxTokens),

		// Sampling params.
		TopP:             pick(entity.TopP, global.TopP),
		TopK:             pick(entity.TopK, global.TopK),
		FrequencyPenalty: pick(entity.FrequencyPenalty, global.FrequencyPenalty),
		PresencePenalty:  pick(entity.PresencePenalty, global.PresencePenalty),

		// Memory and vision params.
		MemoryLimit:          pick(entity.MemoryLimit, global.MemoryLimit),
		MemoryScoreThreshold: pick(entity.MemoryScoreThreshold, global.MemoryScoreThreshold),
		ImageLimit:           pick(entity.ImageLimit, global.ImageLimit),
		MessageLimit:         pick(entity.MessageLimit, global.MessageLimit),
		MaxMessageAgeDays:    pick(entity.MaxMessageAgeDays, global.MaxMessageAgeDays),

		// Reasoning params.
		ReasoningEnabled:   pick(entity.ReasoningEnabled, global.ReasoningEnabled),
		ReasoningEffort:    pick(entity.ReasoningEffort, global.ReasoningEffort),
		ReasoningMaxTokens: pick(entity.ReasoningMaxTokens, global.ReasoningMaxTokens),

		// Context window and history limits.
		ContextWindow: pick(entity.ContextWindow, global.ContextWindow),
		HistoryLimit:  pick(entity.HistoryLimit, global.HistoryLimit),
	}
	return eff
}

// pick returns the first non-nil value.
func pick[T any](vals ...*T) *T {
	for _, v := range vals {
		if v != nil {
			return v
		}
	}
	return nil
}

func stringOr(v *string, fallback string) string {
	if v != nil && *v != "" {
		return *v
	}
	return fallback
}

func floatOr(v *float64, fallback float64) float64 {
	if v != nil {
		return *v
	}
	return fallback
}
