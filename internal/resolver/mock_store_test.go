package resolver

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"sort"
	"strings"

	"github.com/lbds137/tzurot/internal/model"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// mockStore is a minimal in-memory store for resolver tests. It applies
// access filters the way the real store does, and counts calls so tests
// can assert on cache behavior.
type mockStore struct {
	personalities map[string]*model.Personality
	aliases       map[string]string
	users         map[string]*model.User
	globalConfig  *model.PersonalityConfig

	// err, when set, is returned by every lookup. globalErr, when set, is
	// returned only by GetGlobalConfig.
	err       error
	globalErr error

	findByIDCalls     int
	findByNameCalls   int
	aliasCalls        int
	globalConfigCalls int
	userLookupCalls   int
	listCalls         int
}

func newMockStore() *mockStore {
	return &mockStore{
		personalities: make(map[string]*model.Personality),
		aliases:       make(map[string]string),
		users:         make(map[string]*model.User),
	}
}

func (m *mockStore) add(p *model.Personality) {
	m.personalities[p.ID] = p
}

func admits(filter model.AccessFilter, p *model.Personality) bool {
	if !filter.Enabled {
		return true
	}
	return p.Public || (filter.OwnerID != "" && p.OwnerID == filter.OwnerID)
}

func (m *mockStore) FindByID(_ context.Context, id string, filter model.AccessFilter) (*model.Personality, error) {
	m.findByIDCalls++
	if m.err != nil {
		return nil, m.err
	}
	p, ok := m.personalities[id]
	if !ok || !admits(filter, p) {
		return nil, sql.ErrNoRows
	}
	return p, nil
}

func (m *mockStore) FindByNameOrSlug(_ context.Context, name, slug string, filter model.AccessFilter) ([]*model.Personality, error) {
	m.findByNameCalls++
	if m.err != nil {
		return nil, m.err
	}
	var result []*model.Personality
	for _, p := range m.personalities {
		if !admits(filter, p) {
			continue
		}
		if strings.EqualFold(p.Name, name) || p.Slug == slug {
			result = append(result, p)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

func (m *mockStore) FindAliasTarget(_ context.Context, alias string) (string, error) {
	m.aliasCalls++
	if m.err != nil {
		return "", m.err
	}
	id, ok := m.aliases[strings.ToLower(alias)]
	if !ok {
		return "", sql.ErrNoRows
	}
	return id, nil
}

func (m *mockStore) GetGlobalConfig(_ context.Context) (*model.PersonalityConfig, error) {
	m.globalConfigCalls++
	if m.err != nil {
		return nil, m.err
	}
	if m.globalErr != nil {
		return nil, m.globalErr
	}
	if m.globalConfig == nil {
		return nil, sql.ErrNoRows
	}
	return m.globalConfig, nil
}

func (m *mockStore) GetUserByExternalID(_ context.Context, externalID string) (*model.User, error) {
	m.userLookupCalls++
	if m.err != nil {
		return nil, m.err
	}
	u, ok := m.users[externalID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return u, nil
}

func (m *mockStore) ListPersonalities(_ context.Context) ([]*model.Personality, error) {
	m.listCalls++
	if m.err != nil {
		return nil, m.err
	}
	var result []*model.Personality
	for _, p := range m.personalities {
		result = append(result, p)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

func (m *mockStore) Close() error { return nil }
