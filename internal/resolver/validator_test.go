package resolver

import (
	"encoding/json"
	"testing"
)

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }
func intPtr(n int) *int           { return &n }

func TestValidateAbsent(t *testing.T) {
	v := NewValidator(testLogger())

	for _, raw := range []json.RawMessage{nil, json.RawMessage(""), json.RawMessage("null")} {
		cfg, ok := v.Validate(raw)
		if !ok {
			t.Errorf("Validate(%q) ok = false, want true", raw)
		}
		if cfg != nil {
			t.Errorf("Validate(%q) = %+v, want nil", raw, cfg)
		}
	}
}

func TestValidateTypedFields(t *testing.T) {
	v := NewValidator(testLogger())

	raw := json.RawMessage(`{
		"model": "anthropic/claude-sonnet-4",
		"temperature": 0.7,
		"max_tokens": 4096,
		"top_p": 0.9,
		"top_k": 40,
		"memory_limit": 25,
		"reasoning": {"enabled": true, "effort": "high", "max_tokens": 2048}
	}`)

	cfg, ok := v.Validate(raw)
	if !ok {
		t.Fatal("Validate ok = false, want true")
	}
	if cfg.Model == nil || *cfg.Model != "anthropic/claude-sonnet-4" {
		t.Errorf("Model = %v, want anthropic/claude-sonnet-4", cfg.Model)
	}
	if cfg.Temperature == nil || *cfg.Temperature != 0.7 {
		t.Errorf("Temperature = %v, want 0.7", cfg.Temperature)
	}
	if cfg.MaxTokens == nil || *cfg.MaxTokens != 4096 {
		t.Errorf("MaxTokens = %v, want 4096", cfg.MaxTokens)
	}
	if cfg.TopP == nil || *cfg.TopP != 0.9 {
		t.Errorf("TopP = %v, want 0.9", cfg.TopP)
	}
	if cfg.TopK == nil || *cfg.TopK != 40 {
		t.Errorf("TopK = %v, want 40", cfg.TopK)
	}
	if cfg.MemoryLimit == nil || *cfg.MemoryLimit != 25 {
		t.Errorf("MemoryLimit = %v, want 25", cfg.MemoryLimit)
	}
	if cfg.ReasoningEnabled == nil || !*cfg.ReasoningEnabled {
		t.Errorf("ReasoningEnabled = %v, want true", cfg.ReasoningEnabled)
	}
	if cfg.ReasoningEffort == nil || *cfg.ReasoningEffort != "high" {
		t.Errorf("ReasoningEffort = %v, want high", cfg.ReasoningEffort)
	}
	if cfg.ReasoningMaxTokens == nil || *cfg.ReasoningMaxTokens != 2048 {
		t.Errorf("ReasoningMaxTokens = %v, want 2048", cfg.ReasoningMaxTokens)
	}
}

// Numeric values arrive both as JSON numbers and as decimal-wrapper
// strings; both spellings must parse identically.
func TestValidateDecimalStringCoercion(t *testing.T) {
	v := NewValidator(testLogger())

	cfg, ok := v.Validate(json.RawMessage(`{"temperature": "0.7", "top_k": "40"}`))
	if !ok {
		t.Fatal("Validate ok = false, want true")
	}
	if cfg.Temperature == nil || *cfg.Temperature != 0.7 {
		t.Errorf("Temperature = %v, want 0.7", cfg.Temperature)
	}
	if cfg.TopK == nil || *cfg.TopK != 40 {
		t.Errorf("TopK = %v, want 40", cfg.TopK)
	}
}

func TestValidateWrongTypeDropsSingleField(t *testing.T) {
	v := NewValidator(testLogger())

	cfg, ok := v.Validate(json.RawMessage(`{"temperature": "warm", "model": "openai/gpt-4o", "top_k": 3.5}`))
	if !ok {
		t.Fatal("Validate ok = false, want true: wrong-typed fields must not reject the record")
	}
	if cfg.Temperature != nil {
		t.Errorf("Temperature = %v, want nil (unparseable value)", cfg.Temperature)
	}
	if cfg.TopK != nil {
		t.Errorf("TopK = %v, want nil (fractional value for integer field)", cfg.TopK)
	}
	if cfg.Model == nil || *cfg.Model != "openai/gpt-4o" {
		t.Errorf("Model = %v, want openai/gpt-4o: sibling fields must survive", cfg.Model)
	}
}

func TestValidateOutOfRangeRejectsRecord(t *testing.T) {
	v := NewValidator(testLogger())

	cases := []struct {
		name string
		raw  string
	}{
		{"temperature high", `{"temperature": 5.0, "model": "openai/gpt-4o"}`},
		{"temperature negative", `{"temperature": -0.1}`},
		{"top_p high", `{"top_p": 1.5}`},
		{"top_k zero", `{"top_k": 0}`},
		{"penalty low", `{"frequency_penalty": -3}`},
		{"reasoning tokens zero", `{"reasoning": {"max_tokens": 0}}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg, ok := v.Validate(json.RawMessage(tc.raw))
			if ok {
				t.Errorf("Validate(%s) ok = true, want false", tc.raw)
			}
			if cfg != nil {
				t.Errorf("Validate(%s) = %+v, want nil", tc.raw, cfg)
			}
		})
	}
}

func TestValidateNonObjectRejected(t *testing.T) {
	v := NewValidator(testLogger())

	for _, raw := range []string{`[1,2,3]`, `"config"`, `42`, `{broken`} {
		if _, ok := v.Validate(json.RawMessage(raw)); ok {
			t.Errorf("Validate(%s) ok = true, want false", raw)
		}
	}
}

func TestValidateUnknownFieldsIgnored(t *testing.T) {
	v := NewValidator(testLogger())

	cfg, ok := v.Validate(json.RawMessage(`{"model": "openai/gpt-4o", "favorite_color": "purple"}`))
	if !ok {
		t.Fatal("Validate ok = false, want true")
	}
	if cfg.Model == nil || *cfg.Model != "openai/gpt-4o" {
		t.Errorf("Model = %v, want openai/gpt-4o", cfg.Model)
	}
}
