package events

import "context"

// Event topic constants. The management workflow that owns personality
// records publishes on these; this engine only consumes them to invalidate
// its cache.
const (
	TopicPersonalityCreated = "tzurot.personality.created"
	TopicPersonalityUpdated = "tzurot.personality.updated"
	TopicPersonalityDeleted = "tzurot.personality.deleted"
	TopicConfigUpdated      = "tzurot.config.updated"

	// TopicPersonalityAll matches every personality lifecycle event.
	TopicPersonalityAll = "tzurot.personality.>"

	// TopicRosterExported announces a completed roster export, so
	// consumers of the exported object know to re-read it.
	TopicRosterExported = "tzurot.roster.exported"
)

// Event types

type PersonalityCreated struct {
	PersonalityID string `json:"personality_id"`
}

type PersonalityUpdated struct {
	PersonalityID string `json:"personality_id"`
}

type PersonalityDeleted struct {
	PersonalityID string `json:"personality_id"`
}

// ConfigUpdated signals a change to a configuration record. An empty
// PersonalityID means the global default changed, which stales every
// cached resolution.
type ConfigUpdated struct {
	PersonalityID string `json:"personality_id,omitempty"`
}

// RosterExported reports a finished export cycle.
type RosterExported struct {
	Bytes        int `json:"bytes"`
	Destinations int `json:"destinations"`
}

// Publisher is the interface for emitting events.
type Publisher interface {
	Publish(ctx context.Context, topic string, event any) error
	Close() error
}
