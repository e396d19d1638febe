package model

import "time"

// ResolvedPersonality is the engine's output: access-checked identity,
// effective configuration, and placeholder-substituted character text.
// Values are never mutated after construction; a cache hit returns the
// same value a cache miss would have produced.
type ResolvedPersonality struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Public    bool      `json:"public"`
	OwnerID   string    `json:"owner_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// AvatarURL embeds the record's last-modified timestamp so external
	// CDN caches roll over when the record changes. Empty when no avatar
	// base URL is configured.
	AvatarURL string `json:"avatar_url,omitempty"`

	Config    EffectiveConfig `json:"config"`
	Character CharacterText   `json:"character"`
}
