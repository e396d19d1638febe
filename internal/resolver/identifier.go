package resolver

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/gosimple/slug"

	"github.com/lbds137/tzurot/internal/idgen"
	"github.com/lbds137/tzurot/internal/model"
	"github.com/lbds137/tzurot/internal/store"
)

// ErrNotFound is returned when no accessible record matches an identifier.
// Access denial is deliberately indistinguishable from absence so private
// records do not leak their existence.
var ErrNotFound = errors.New("personality not found")

// IdentifierResolver executes the multi-strategy lookup: canonical id,
// then display name and slug in a single query, then alias. Every strategy
// applies the caller's access filter.
type IdentifierResolver struct {
	store  store.Store
	logger *slog.Logger

	// adminExternalID is the configured administrator identity, resolved
	// to an internal id lazily and at most once, only when a name
	// collision actually needs it.
	adminExternalID string
	adminOnce       sync.Once
	adminID         string
}

// NewIdentifierResolver creates a resolver. adminExternalID may be empty,
// in which case collision scoring skips the admin bonus.
func NewIdentifierResolver(st store.Store, adminExternalID string, logger *slog.Logger) *IdentifierResolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &IdentifierResolver{
		store:           st,
		logger:          logger,
		adminExternalID: adminExternalID,
	}
}

// Resolve looks up identifier under the caller's access filter and returns
// the raw record, or ErrNotFound. Transient store failures soft-fail to
// ErrNotFound after logging; context cancellation propagates unchanged.
func (r *IdentifierResolver) Resolve(ctx context.Context, identifier string, caller *model.CallerIdentity) (*model.Personality, error) {
	filter, err := r.accessFilter(ctx, caller)
	if err != nil {
		return nil, err
	}
	return r.resolve(ctx, identifier, filter)
}

func (r *IdentifierResolver) resolve(ctx context.Context, identifier string, filter model.AccessFilter) (*model.Personality, error) {
	// Strategy 1: canonical id.
	if idgen.IsCanonical(identifier) {
		p, err := r.store.FindByID(ctx, identifier, filter)
		switch {
		case err == nil:
			return p, nil
		case errors.Is(err, sql.ErrNoRows):
			// Fall through to name/slug lookup; a display name could
			// coincidentally have canonical shape.
		default:
			return nil, r.softFail("find by id", identifier, err)
		}
	}

	// Strategy 2: display name and slug, one query, partitioned in memory.
	candidates, err := r.store.FindByNameOrSlug(ctx, identifier, slug.Make(identifier), filter)
	if err != nil {
		return nil, r.softFail("find by name or slug", identifier, err)
	}

	var nameMatches, slugMatches []*model.Personality
	for _, c := range candidates {
		if strings.EqualFold(c.Name, identifier) {
			nameMatches = append(nameMatches, c)
		} else {
			slugMatches = append(slugMatches, c)
		}
	}

	switch {
	case len(nameMatches) == 1:
		return nameMatches[0], nil
	case len(nameMatches) > 1:
		return r.breakTie(ctx, identifier, nameMatches), nil
	case len(slugMatches) > 0:
		return slugMatches[0], nil
	}

	// Strategy 3: alias table, then re-resolve the target id under the
	// same filter. An alias pointing at an inaccessible or deleted record
	// reads as not-found, like any other miss.
	targetID, err := r.store.FindAliasTarget(ctx, identifier)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, r.softFail("find alias", identifier, err)
	}

	p, err := r.store.FindByID(ctx, targetID, filter)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, r.softFail("find alias target", targetID, err)
	}
	return p, nil
}

// breakTie picks among same-named records: +2 if public, +1 if owned by
// the administrator. Candidates arrive ordered by creation time, so on
// equal scores the earliest-created record wins.
func (r *IdentifierResolver) breakTie(ctx context.Context, identifier string, candidates []*model.Personality) *model.Personality {
	adminID := r.resolveAdminID(ctx)

	best := candidates[0]
	bestScore := collisionScore(best, adminID)
	for _, c := range candidates[1:] {
		if s := collisionScore(c, adminID); s > bestScore {
			best, bestScore = c, s
		}
	}

	r.logger.Debug("resolved name collision",
		"identifier", identifier, "candidates", len(candidates), "winner", best.ID)
	return best
}

func collisionScore(p *model.Personality, adminID string) int {
	score := 0
	if p.Public {
		score += 2
	}
	if adminID != "" && p.OwnerID == adminID {
		score++
	}
	return score
}

// resolveAdminID memoizes the administrator's internal id for the lifetime
// of this resolver instance. Looked up at most once, and only when a
// collision occurs.
func (r *IdentifierResolver) resolveAdminID(ctx context.Context) string {
	r.adminOnce.Do(func() {
		if r.adminExternalID == "" {
			return
		}
		u, err := r.store.GetUserByExternalID(ctx, r.adminExternalID)
		if err != nil {
			if !errors.Is(err, sql.ErrNoRows) {
				r.logger.Warn("admin identity lookup failed", "err", err)
			}
			return
		}
		r.adminID = u.ID
	})
	return r.adminID
}

// accessFilter maps the caller identity onto a store predicate. The
// designated administrator sees everything, like a trusted internal
// caller. A caller whose external id is unknown degrades to public-only:
// the external string is never compared against internal owner ids.
func (r *IdentifierResolver) accessFilter(ctx context.Context, caller *model.CallerIdentity) (model.AccessFilter, error) {
	if caller == nil {
		return model.NoFilter, nil
	}
	if r.adminExternalID != "" && caller.ExternalID == r.adminExternalID {
		return model.NoFilter, nil
	}

	u, err := r.store.GetUserByExternalID(ctx, caller.ExternalID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.PublicOnly(), nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return model.AccessFilter{}, ctxErr
		}
		r.logger.Error("caller identity lookup failed",
			"external_id", caller.ExternalID, "err", err)
		return model.PublicOnly(), nil
	}
	return model.PublicOrOwner(u.ID), nil
}

// softFail logs a transient store failure and degrades it to ErrNotFound,
// unless the caller's context was canceled, which propagates as-is.
func (r *IdentifierResolver) softFail(op, identifier string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	r.logger.Error("lookup failed", "op", op, "identifier", identifier, "err", err)
	return ErrNotFound
}
