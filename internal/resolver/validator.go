package resolver

import (
	"encoding/json"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/lbds137/tzurot/internal/model"
)

// Inclusive range bounds applied by the validator. A value outside these
// ranges rejects the whole record; a wrong-typed value drops only that
// field.
const (
	minTemperature = 0.0
	maxTemperature = 2.0
	minTopP        = 0.0
	maxTopP        = 1.0
	minTopK        = 1
	maxTopK        = 1000
	minPenalty     = -2.0
	maxPenalty     = 2.0
	maxMaxTokens   = 1_000_000
	maxContextWin  = 2_000_000
	maxMemoryLimit = 1000
)

// Validator turns a raw, duck-typed configuration blob into a typed
// model.ValidatedConfig. It never returns an error: absent or null input
// means "no config", wrong-typed fields degrade to absent, and only
// out-of-range values (a data-corruption signal) reject the record.
type Validator struct {
	logger *slog.Logger
}

// NewValidator creates a validator. A nil logger falls back to slog.Default.
func NewValidator(logger *slog.Logger) *Validator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Validator{logger: logger}
}

// Validate parses and range-checks raw. ok is false only when the record
// as a whole is unusable: not a JSON object, or carrying an out-of-range
// value. (nil, true) means "no configuration present", which is not an
// error.
func (v *Validator) Validate(raw json.RawMessage) (*model.ValidatedConfig, bool) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, true
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		v.logger.Warn("rejecting malformed config record", "err", err)
		return nil, false
	}

	d := &decoder{fields: fields}
	cfg := &model.ValidatedConfig{}

	cfg.Model = d.str("model")
	cfg.VisionModel = d.str("vision_model")
	cfg.Temperature = d.float("temperature", minTemperature, maxTemperature)
	cfg.MaxTokens = d.intRange("max_tokens", 1, maxMaxTokens)

	cfg.TopP = d.float("top_p", minTopP, maxTopP)
	cfg.TopK = d.intRange("top_k", minTopK, maxTopK)
	cfg.FrequencyPenalty = d.float("frequency_penalty", minPenalty, maxPenalty)
	cfg.PresencePenalty = d.float("presence_penalty", minPenalty, maxPenalty)

	cfg.MemoryLimit = d.intRange("memory_limit", 0, maxMemoryLimit)
	cfg.MemoryScoreThreshold = d.float("memory_score_threshold", 0, 1)
	cfg.ImageLimit = d.intRange("image_limit", 0, 100)
	cfg.MessageLimit = d.intRange("message_limit", 0, 10_000)
	cfg.MaxMessageAgeDays = d.intRange("max_message_age_days", 0, 3650)

	cfg.ContextWindow = d.intRange("context_window", 1, maxContextWin)
	cfg.HistoryLimit = d.intRange("history_limit", 0, 10_000)

	v.decodeReasoning(d, cfg)

	if d.outOfRange != "" {
		v.logger.Warn("rejecting config record with out-of-range value",
			"field", d.outOfRange, "value", d.outOfRangeVal)
		return nil, false
	}
	if len(d.dropped) > 0 {
		v.logger.Debug("dropped wrong-typed config fields", "fields", d.dropped)
	}

	return cfg, true
}

// decodeReasoning handles the nested reasoning sub-object. A wrong-typed
// sub-object drops as one field; its members are validated individually.
func (v *Validator) decodeReasoning(d *decoder, cfg *model.ValidatedConfig) {
	raw, ok := d.fields["reasoning"]
	if !ok || string(raw) == "null" {
		return
	}

	var sub map[string]json.RawMessage
	if err := json.Unmarshal(raw, &sub); err != nil {
		d.dropped = append(d.dropped, "reasoning")
		return
	}

	rd := &decoder{fields: sub, prefix: "reasoning."}
	cfg.ReasoningEnabled = rd.boolean("enabled")
	cfg.ReasoningEffort = rd.str("effort")
	cfg.ReasoningMaxTokens = rd.intRange("max_tokens", 1, maxMaxTokens)

	d.dropped = append(d.dropped, rd.dropped...)
	if rd.outOfRange != "" && d.outOfRange == "" {
		d.outOfRange = rd.outOfRange
		d.outOfRangeVal = rd.outOfRangeVal
	}
}

// decoder walks one raw field map, collecting dropped-field names and the
// first out-of-range violation.
type decoder struct {
	fields        map[string]json.RawMessage
	prefix        string
	dropped       []string
	outOfRange    string
	outOfRangeVal string
}

func (d *decoder) drop(key string) {
	d.dropped = append(d.dropped, d.prefix+key)
}

func (d *decoder) violate(key string, val decimal.Decimal) {
	if d.outOfRange == "" {
		d.outOfRange = d.prefix + key
		d.outOfRangeVal = val.String()
	}
}

// number decodes a field through decimal.Decimal, which accepts both plain
// JSON numbers and provider decimal-wrapper strings like "0.7".
func (d *decoder) number(key string) (decimal.Decimal, bool) {
	raw, ok := d.fields[key]
	if !ok || string(raw) == "null" {
		return decimal.Decimal{}, false
	}
	var dec decimal.Decimal
	if err := json.Unmarshal(raw, &dec); err != nil {
		d.drop(key)
		return decimal.Decimal{}, false
	}
	return dec, true
}

func (d *decoder) float(key string, min, max float64) *float64 {
	dec, ok := d.number(key)
	if !ok {
		return nil
	}
	f, _ := dec.Float64()
	if f < min || f > max {
		d.violate(key, dec)
		return nil
	}
	return &f
}

func (d *decoder) intRange(key string, min, max int) *int {
	dec, ok := d.number(key)
	if !ok {
		return nil
	}
	if !dec.IsInteger() {
		d.drop(key)
		return nil
	}
	n := int(dec.IntPart())
	if n < min || n > max {
		d.violate(key, dec)
		return nil
	}
	return &n
}

func (d *decoder) str(key string) *string {
	raw, ok := d.fields[key]
	if !ok || string(raw) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		d.drop(key)
		return nil
	}
	return &s
}

func (d *decoder) boolean(key string) *bool {
	raw, ok := d.fields[key]
	if !ok || string(raw) == "null" {
		return nil
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err != nil {
		d.drop(key)
		return nil
	}
	return &b
}
