package model

import (
	"encoding/json"
	"time"
)

// Personality is the as-stored personality record. It is created and
// updated by the management workflow; this engine only reads it.
type Personality struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Public    bool      `json:"public"`
	OwnerID   string    `json:"owner_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Config is the entity-specific configuration record, nil when the
	// personality has none.
	Config *PersonalityConfig `json:"config,omitempty"`

	Character CharacterText `json:"character"`
}

// CharacterText holds the free-text character fields of a personality.
// Fields are pointers so that "not set" stays distinguishable from
// "set to empty" after placeholder substitution.
type CharacterText struct {
	SystemPrompt *string `json:"system_prompt,omitempty"`
	Traits       *string `json:"traits,omitempty"`
	Tone         *string `json:"tone,omitempty"`
	Age          *string `json:"age,omitempty"`
	Appearance   *string `json:"appearance,omitempty"`
	Likes        *string `json:"likes,omitempty"`
	Dislikes     *string `json:"dislikes,omitempty"`
	Goals        *string `json:"goals,omitempty"`
	Examples     *string `json:"examples,omitempty"`
	ErrorMessage *string `json:"error_message,omitempty"`
}

// PersonalityConfig is a raw configuration record as stored. Params is a
// duck-typed JSONB blob; nothing downstream consumes it without going
// through the validator first.
type PersonalityConfig struct {
	ID            string          `json:"id"`
	PersonalityID string          `json:"personality_id,omitempty"`
	GlobalDefault bool            `json:"global_default"`
	Params        json.RawMessage `json:"params,omitempty"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// User maps an external caller id to an internal, owner-comparable id.
type User struct {
	ID         string    `json:"id"`
	ExternalID string    `json:"external_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// CallerIdentity is the opaque external reference of "who is asking".
// A nil *CallerIdentity means a trusted internal caller: no access
// filtering is applied.
type CallerIdentity struct {
	ExternalID string `json:"external_id"`
}

// AccessFilter is the access predicate injected into store lookups.
//
// Disabled means a trusted internal call with no filtering. Enabled with a
// non-empty OwnerID grants public records plus records owned by that
// internal id. Enabled with an empty OwnerID (the caller's external id did
// not resolve to a known user) grants public records only.
type AccessFilter struct {
	Enabled bool
	OwnerID string
}

// NoFilter is the trusted-caller predicate.
var NoFilter = AccessFilter{}

// PublicOnly returns a filter that grants only public records.
func PublicOnly() AccessFilter {
	return AccessFilter{Enabled: true}
}

// PublicOrOwner returns a filter that grants public records and records
// owned by the given internal user id.
func PublicOrOwner(ownerID string) AccessFilter {
	return AccessFilter{Enabled: true, OwnerID: ownerID}
}
