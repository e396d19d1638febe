package postgres

import (
	"database/sql"
	"encoding/json"

	"github.com/lbds137/tzurot/internal/model"
)

// scannable is the interface satisfied by both *sql.Row and *sql.Rows.
type scannable interface {
	Scan(dest ...any) error
}

// scanPersonality scans a single row into a model.Personality. The row
// must contain columns in the order defined by personalityColumns; the
// trailing config columns are NULL when the personality has no
// entity-specific config.
func scanPersonality(row scannable) (*model.Personality, error) {
	var p model.Personality
	var (
		ownerID sql.NullString

		cfgID            sql.NullString
		cfgPersonalityID sql.NullString
		cfgGlobal        sql.NullBool
		cfgParams        []byte
		cfgUpdatedAt     sql.NullTime
	)

	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Slug,
		&p.Public,
		&ownerID,
		&p.Character.SystemPrompt,
		&p.Character.Traits,
		&p.Character.Tone,
		&p.Character.Age,
		&p.Character.Appearance,
		&p.Character.Likes,
		&p.Character.Dislikes,
		&p.Character.Goals,
		&p.Character.Examples,
		&p.Character.ErrorMessage,
		&p.CreatedAt,
		&p.UpdatedAt,
		&cfgID,
		&cfgPersonalityID,
		&cfgGlobal,
		&cfgParams,
		&cfgUpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	p.OwnerID = ownerID.String

	if cfgID.Valid {
		cfg := &model.PersonalityConfig{
			ID:            cfgID.String,
			PersonalityID: cfgPersonalityID.String,
			GlobalDefault: cfgGlobal.Bool,
			UpdatedAt:     cfgUpdatedAt.Time,
		}
		if len(cfgParams) > 0 {
			cfg.Params = json.RawMessage(cfgParams)
		}
		p.Config = cfg
	}

	return &p, nil
}

// scanPersonalities scans multiple rows into a slice of Personality pointers.
func scanPersonalities(rows *sql.Rows) ([]*model.Personality, error) {
	var out []*model.Personality
	for rows.Next() {
		p, err := scanPersonality(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// scanConfig scans a single row into a model.PersonalityConfig.
func scanConfig(row scannable) (*model.PersonalityConfig, error) {
	var c model.PersonalityConfig
	var (
		personalityID sql.NullString
		params        []byte
	)
	err := row.Scan(&c.ID, &personalityID, &c.GlobalDefault, &params, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	c.PersonalityID = personalityID.String
	if len(params) > 0 {
		c.Params = json.RawMessage(params)
	}
	return &c, nil
}
