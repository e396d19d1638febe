package resolver

import (
	"testing"

	"github.com/lbds137/tzurot/internal/model"
)

func TestCascadeFallbacksOnly(t *testing.T) {
	eff := Cascade(nil, nil)

	if eff.Model != FallbackModel {
		t.Errorf("Model = %q, want %q", eff.Model, FallbackModel)
	}
	if eff.Temperature != FallbackTemperature {
		t.Errorf("Temperature = %v, want %v", eff.Temperature, FallbackTemperature)
	}
	if eff.MaxTokens != nil || eff.TopP != nil || eff.ReasoningEnabled != nil {
		t.Error("fields with no configured value must stay absent")
	}
}

func TestCascadeGlobalOnly(t *testing.T) {
	global := &model.ValidatedConfig{
		Model:       strPtr("anthropic/claude-sonnet-4"),
		Temperature: floatPtr(0.5),
		MaxTokens:   intPtr(8192),
	}

	eff := Cascade(nil, global)

	if eff.Model != "anthropic/claude-sonnet-4" {
		t.Errorf("Model = %q, want global value", eff.Model)
	}
	if eff.Temperature != 0.5 {
		t.Errorf("Temperature = %v, want 0.5", eff.Temperature)
	}
	if eff.MaxTokens == nil || *eff.MaxTokens != 8192 {
		t.Errorf("MaxTokens = %v, want 8192", eff.MaxTokens)
	}
}

// A record that overrides a single field must inherit every other field
// from the global default, not blank them.
func TestCascadePerFieldMerge(t *testing.T) {
	entity := &model.ValidatedConfig{
		Temperature: floatPtr(1.2),
	}
	global := &model.ValidatedConfig{
		Model:       strPtr("anthropic/claude-sonnet-4"),
		Temperature: floatPtr(0.5),
		MaxTokens:   intPtr(8192),
		TopP:        floatPtr(0.9),
	}

	eff := Cascade(entity, global)

	if eff.Temperature != 1.2 {
		t.Errorf("Temperature = %v, want entity override 1.2", eff.Temperature)
	}
	if eff.Model != "anthropic/claude-sonnet-4" {
		t.Errorf("Model = %q, want inherited global value", eff.Model)
	}
	if eff.MaxTokens == nil || *eff.MaxTokens != 8192 {
		t.Errorf("MaxTokens = %v, want inherited 8192", eff.MaxTokens)
	}
	if eff.TopP == nil || *eff.TopP != 0.9 {
		t.Errorf("TopP = %v, want inherited 0.9", eff.TopP)
	}
}

func TestCascadeEntityWinsEveryTier(t *testing.T) {
	entity := &model.ValidatedConfig{
		Model:       strPtr("openai/gpt-4o-mini"),
		Temperature: floatPtr(0.2),
	}
	global := &model.ValidatedConfig{
		Model:       strPtr("anthropic/claude-sonnet-4"),
		Temperature: floatPtr(0.5),
	}

	eff := Cascade(entity, global)

	if eff.Model != "openai/gpt-4o-mini" {
		t.Errorf("Model = %q, want entity value", eff.Model)
	}
	if eff.Temperature != 0.2 {
		t.Errorf("Temperature = %v, want entity value", eff.Temperature)
	}
}

// An explicit zero is a real value, not an absent one.
func TestCascadeZeroValuesAreSet(t *testing.T) {
	entity := &model.ValidatedConfig{
		Temperature:      floatPtr(0),
		FrequencyPenalty: floatPtr(0),
	}
	global := &model.ValidatedConfig{
		Temperature:      floatPtr(0.7),
		FrequencyPenalty: floatPtr(1.5),
	}

	eff := Cascade(entity, global)

	if eff.Temperature != 0 {
		t.Errorf("Temperature = %v, want explicit 0", eff.Temperature)
	}
	if eff.FrequencyPenalty == nil || *eff.FrequencyPenalty != 0 {
		t.Errorf("FrequencyPenalty = %v, want explicit 0", eff.FrequencyPenalty)
	}
}
