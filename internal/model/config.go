package model

// ValidatedConfig is a typed, range-checked view of a raw configuration
// record. Every field is independently optional; nil means the record did
// not supply a usable value for that field.
//
// Fields are grouped for readability only. The cascade merges them one
// field at a time, never whole groups.
type ValidatedConfig struct {
	// Core generation params.
	Model       *string  `json:"model,omitempty"`
	VisionModel *string  `json:"vision_model,omitempty"`
	Temperature *float64 `json:"temperature,omitempty"`
	MaxTokens   *int     `json:"max_tokens,omitempty"`

	// Sampling params.
	TopP             *float64 `json:"top_p,omitempty"`
	TopK             *int     `json:"top_k,omitempty"`
	FrequencyPenalty *float64 `json:"frequency_penalty,omitempty"`
	PresencePenalty  *float64 `json:"presence_penalty,omitempty"`

	// Memory and vision params.
	MemoryLimit          *int     `json:"memory_limit,omitempty"`
	MemoryScoreThreshold *float64 `json:"memory_score_threshold,omitempty"`
	ImageLimit           *int     `json:"image_limit,omitempty"`
	MessageLimit         *int     `json:"message_limit,omitempty"`
	MaxMessageAgeDays    *int     `json:"max_message_age_days,omitempty"`

	// Reasoning params.
	ReasoningEnabled   *bool   `json:"reasoning_enabled,omitempty"`
	ReasoningEffort    *string `json:"reasoning_effort,omitempty"`
	ReasoningMaxTokens *int    `json:"reasoning_max_tokens,omitempty"`

	// Context window and history limits.
	ContextWindow *int `json:"context_window,omitempty"`
	HistoryLimit  *int `json:"history_limit,omitempty"`
}

// EffectiveConfig is the cascade output. Model and Temperature are always
// populated (hardcoded fallbacks guarantee this even with zero
// configuration present); every other field stays absent when no tier
// supplied a value, signaling that the inference provider should apply its
// own default.
type EffectiveConfig struct {
	Model       string  `json:"model"`
	Temperature float64 `json:"temperature"`

	VisionModel *string `json:"vision_model,omitempty"`
	MaxTokens   *int    `json:"max_tokens,omitempty"`

	TopP             *float64 `json:"top_p,omitempty"`
	TopK             *int     `json:"top_k,omitempty"`
	FrequencyPenalty *float64 `json:"frequency_penalty,omitempty"`
	PresencePenalty  *float64 `json:"presence_penalty,omitempty"`

	MemoryLimit          *int     `json:"memory_limit,omitempty"`
	MemoryScoreThreshold *float64 `json:"memory_score_threshold,omitempty"`
	ImageLimit           *int     `json:"image_limit,omitempty"`
	MessageLimit         *int     `json:"message_limit,omitempty"`
	MaxMessageAgeDays    *int     `json:"max_message_age_days,omitempty"`

	ReasoningEnabled   *bool   `json:"reasoning_enabled,omitempty"`
	ReasoningEffort    *string `json:"reasoning_effort,omitempty"`
	ReasoningMaxTokens *int    `json:"reasoning_max_tokens,omitempty"`

	ContextWindow *int `json:"context_window,omitempty"`
	HistoryLimit  *int `json:"history_limit,omitempty"`
}
