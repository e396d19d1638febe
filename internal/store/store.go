// Package store defines the persistence interface consumed by the
// resolution engine. The engine never issues queries directly; it asks for
// the three lookup shapes below (record, alias target, global default)
// plus caller-identity and roster support, and implementations map rows
// onto the model types.
package store

import (
	"context"

	"github.com/lbds137/tzurot/internal/model"
)

// Store is the datastore boundary of the resolution engine. All lookups
// that touch personality records accept an injectable access predicate;
// rows the predicate rejects are indistinguishable from rows that do not
// exist.
type Store interface {
	// FindByID returns the personality with the given canonical id, with
	// its entity-specific config attached when one exists. Returns
	// sql.ErrNoRows when the record is absent or filtered out.
	FindByID(ctx context.Context, id string, filter model.AccessFilter) (*model.Personality, error)

	// FindByNameOrSlug returns all personalities whose display name
	// matches name case-insensitively or whose slug equals slug, ordered
	// by creation time ascending. An empty result is not an error.
	FindByNameOrSlug(ctx context.Context, name, slug string, filter model.AccessFilter) ([]*model.Personality, error)

	// FindAliasTarget returns the canonical id an alias maps to,
	// case-insensitively. Returns sql.ErrNoRows when the alias is unknown.
	FindAliasTarget(ctx context.Context, alias string) (string, error)

	// GetGlobalConfig returns the system-wide default configuration
	// record, or sql.ErrNoRows when none is configured.
	GetGlobalConfig(ctx context.Context) (*model.PersonalityConfig, error)

	// GetUserByExternalID resolves an external caller id to an internal
	// user. Returns sql.ErrNoRows for unknown callers.
	GetUserByExternalID(ctx context.Context, externalID string) (*model.User, error)

	// ListPersonalities returns every personality with configs attached,
	// unfiltered. Administrative/internal use only.
	ListPersonalities(ctx context.Context) ([]*model.Personality, error)

	// Lifecycle
	Close() error
}
