package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lbds137/tzurot/internal/model"
)

// personalityColumns is the column list used for SELECT statements joining
// personalities with their entity-specific config record.
const personalityColumns = `p.id, p.name, p.slug, p.is_public, p.owner_id,
	p.system_prompt, p.traits, p.tone, p.age, p.appearance,
	p.likes, p.dislikes, p.goals, p.examples, p.error_message,
	p.created_at, p.updated_at,
	c.id, c.personality_id, c.is_global_default, c.params, c.updated_at`

const personalityFrom = ` FROM personalities p
	LEFT JOIN personality_configs c ON c.personality_id = p.id`

// executor is the interface satisfied by both *sql.DB and *sql.Tx.
type executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// accessClause renders the filter as a SQL predicate fragment. The caller
// identity never reaches the query when it did not resolve to an internal
// user id; in that case only public rows qualify.
func accessClause(filter model.AccessFilter, args *[]any) string {
	if !filter.Enabled {
		return ""
	}
	if filter.OwnerID == "" {
		return " AND p.is_public"
	}
	*args = append(*args, filter.OwnerID)
	return fmt.Sprintf(" AND (p.is_public OR p.owner_id = $%d)", len(*args))
}

func queryFindByID(ctx context.Context, db executor, id string, filter model.AccessFilter) (*model.Personality, error) {
	args := []any{id}
	q := `SELECT ` + personalityColumns + personalityFrom + ` WHERE p.id = $1` + accessClause(filter, &args)
	return scanPersonality(db.QueryRowContext(ctx, q, args...))
}

func queryFindByNameOrSlug(ctx context.Context, db executor, name, slug string, filter model.AccessFilter) ([]*model.Personality, error) {
	args := []any{name, slug}
	q := `SELECT ` + personalityColumns + personalityFrom +
		` WHERE (LOWER(p.name) = LOWER($1) OR p.slug = $2)` +
		accessClause(filter, &args) +
		` ORDER BY p.created_at ASC`

	rows, err := db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("find by name or slug: %w", err)
	}
	defer rows.Close()
	return scanPersonalities(rows)
}

func queryFindAliasTarget(ctx context.Context, db executor, alias string) (string, error) {
	var target string
	err := db.QueryRowContext(ctx, `
		SELECT personality_id FROM personality_aliases
		WHERE LOWER(alias) = LOWER($1)`,
		alias,
	).Scan(&target)
	if err != nil {
		return "", err
	}
	return target, nil
}

func queryGetGlobalConfig(ctx context.Context, db executor) (*model.PersonalityConfig, error) {
	row := db.QueryRowContext(ctx, `
		SELECT id, personality_id, is_global_default, params, updated_at
		FROM personality_configs
		WHERE is_global_default
		LIMIT 1`)
	return scanConfig(row)
}

func queryGetUserByExternalID(ctx context.Context, db executor, externalID string) (*model.User, error) {
	var u model.User
	err := db.QueryRowContext(ctx, `
		SELECT id, external_id, created_at
		FROM users WHERE external_id = $1`,
		externalID,
	).Scan(&u.ID, &u.ExternalID, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func queryListPersonalities(ctx context.Context, db executor) ([]*model.Personality, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT `+personalityColumns+personalityFrom+` ORDER BY p.created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("list personalities: %w", err)
	}
	defer rows.Close()
	return scanPersonalities(rows)
}
