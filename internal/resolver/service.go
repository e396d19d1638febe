// Package resolver implements the personality resolution engine: the
// multi-strategy identifier lookup, the configuration cascade, placeholder
// substitution, and the id-keyed resolution cache behind one façade.
package resolver

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/lbds137/tzurot/internal/idgen"
	"github.com/lbds137/tzurot/internal/model"
	"github.com/lbds137/tzurot/internal/store"
)

const (
	defaultCacheSize = 100
	defaultCacheTTL  = 10 * time.Minute
)

// Options configures a Service.
type Options struct {
	// AdminExternalID is the external id of the system administrator.
	// The administrator resolves without access filtering, and their
	// ownership breaks name-collision ties. Optional.
	AdminExternalID string

	// AvatarBaseURL is the base for derived avatar URLs. When empty,
	// avatar URLs are omitted and a warning is logged once.
	AvatarBaseURL string

	CacheSize int
	CacheTTL  time.Duration

	Logger *slog.Logger
}

// Service is the resolution façade. One instance owns one cache; nothing
// here is process-global, so tests and multi-tenant setups can run several
// independently-configured instances.
type Service struct {
	store     store.Store
	cache     *Cache
	ident     *IdentifierResolver
	validator *Validator
	subst     *Substituter

	avatarBase string
	avatarWarn sync.Once
	logger     *slog.Logger
}

// New creates a Service over the given store.
func New(st store.Store, opts Options) *Service {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	size := opts.CacheSize
	if size <= 0 {
		size = defaultCacheSize
	}
	ttl := opts.CacheTTL
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}

	return &Service{
		store:      st,
		cache:      NewCache(size, ttl),
		ident:      NewIdentifierResolver(st, opts.AdminExternalID, logger),
		validator:  NewValidator(logger),
		subst:      NewSubstituter(),
		avatarBase: strings.TrimRight(opts.AvatarBaseURL, "/"),
		logger:     logger,
	}
}

// Resolve turns idOrName into a fully-resolved personality under the
// caller's access filter, or returns ErrNotFound.
//
// The cache is consulted only for canonical-id lookups with no caller
// identity, and results are cached only when no caller identity was
// supplied, so cached values always represent the unfiltered view.
func (s *Service) Resolve(ctx context.Context, idOrName string, caller *model.CallerIdentity) (*model.ResolvedPersonality, error) {
	if caller == nil && idgen.IsCanonical(idOrName) {
		if v, ok := s.cache.Get(idOrName); ok {
			return v, nil
		}
	}

	rec, err := s.ident.Resolve(ctx, idOrName, caller)
	if err != nil {
		return nil, err
	}

	global, degraded, err := s.loadGlobalConfig(ctx)
	if err != nil {
		return nil, err
	}

	resolved := s.assemble(rec, global)
	if caller == nil && !degraded {
		s.cache.Set(resolved.ID, resolved)
	}
	return resolved, nil
}

// ResolveAll resolves every personality with no access filtering. This is
// the explicit bulk/administrative capability; callers gate it themselves.
// Every result is cached.
func (s *Service) ResolveAll(ctx context.Context) ([]*model.ResolvedPersonality, error) {
	records, err := s.store.ListPersonalities(ctx)
	if err != nil {
		return nil, fmt.Errorf("list personalities: %w", err)
	}

	global, degraded, err := s.loadGlobalConfig(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]*model.ResolvedPersonality, 0, len(records))
	for _, rec := range records {
		resolved := s.assemble(rec, global)
		if !degraded {
			s.cache.Set(resolved.ID, resolved)
		}
		out = append(out, resolved)
	}
	return out, nil
}

// Invalidate evicts one cache entry. Idempotent; safe for unknown ids.
func (s *Service) Invalidate(id string) {
	s.cache.Delete(id)
}

// InvalidateAll empties the cache.
func (s *Service) InvalidateAll() {
	s.cache.Clear()
}

// Stats reports cache size and bounds.
func (s *Service) Stats() CacheStats {
	return s.cache.Stats()
}

// loadGlobalConfig fetches and validates the global default. Absence
// degrades to nil; transient failure also degrades to nil but is reported
// so callers skip caching the fallback-shaped result. Cancellation
// propagates.
func (s *Service) loadGlobalConfig(ctx context.Context) (cfg *model.ValidatedConfig, degraded bool, err error) {
	rec, err := s.store.GetGlobalConfig(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, false, err
		}
		s.logger.Error("global config lookup failed", "err", err)
		return nil, true, nil
	}

	cfg, ok := s.validator.Validate(rec.Params)
	if !ok {
		return nil, false, nil
	}
	return cfg, false, nil
}

// assemble builds the immutable output value: effective config via the
// cascade, substituted character text, derived avatar URL.
func (s *Service) assemble(rec *model.Personality, global *model.ValidatedConfig) *model.ResolvedPersonality {
	var entity *model.ValidatedConfig
	if rec.Config != nil {
		cfg, ok := s.validator.Validate(rec.Config.Params)
		if !ok {
			s.logger.Warn("ignoring invalid config record", "personality_id", rec.ID)
		} else {
			entity = cfg
		}
	}

	return &model.ResolvedPersonality{
		ID:        rec.ID,
		Name:      rec.Name,
		Slug:      rec.Slug,
		Public:    rec.Public,
		OwnerID:   rec.OwnerID,
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
		AvatarURL: s.avatarURL(rec),
		Config:    Cascade(entity, global),
		Character: s.subst.SubstituteAll(rec.Character, rec.Name),
	}
}

// avatarURL derives the CDN-cacheable avatar location. The last-modified
// timestamp is baked into the filename so record updates roll the URL.
func (s *Service) avatarURL(rec *model.Personality) string {
	if s.avatarBase == "" {
		s.avatarWarn.Do(func() {
			s.logger.Warn("no avatar base URL configured, omitting avatar URLs")
		})
		return ""
	}
	return s.avatarBase + "/avatars/" + rec.Slug + "-" +
		strconv.FormatInt(rec.UpdatedAt.UnixMilli(), 10) + ".png"
}
