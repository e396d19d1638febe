// Package export serializes the resolved personality roster to JSONL and
// ships it to pluggable destinations on a schedule.
package export

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/lbds137/tzurot/internal/model"
)

// Roster is the slice of the resolution service the exporter consumes.
type Roster interface {
	ResolveAll(ctx context.Context) ([]*model.ResolvedPersonality, error)
}

// header is the first JSONL record written by WriteJSONL.
type header struct {
	Version          string    `json:"version"`
	Type             string    `json:"type"`
	Timestamp        time.Time `json:"timestamp"`
	PersonalityCount int       `json:"personality_count"`
}

// record wraps a single JSONL line with a type discriminator.
type record struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// WriteJSONL writes the full resolved roster as JSONL to w: one header
// record, then one "personality" record per entry, sorted by canonical id.
// The export carries effective configs and substituted character text, not
// raw records, so consumers see exactly what the engine would serve.
func WriteJSONL(ctx context.Context, roster Roster, w io.Writer) error {
	all, err := roster.ResolveAll(ctx)
	if err != nil {
		return fmt.Errorf("resolve roster: %w", err)
	}

	sort.Slice(all, func(i, j int) bool {
		return all[i].ID < all[j].ID
	})

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(header{
		Version:          "1",
		Type:             "header",
		Timestamp:        time.Now().UTC(),
		PersonalityCount: len(all),
	}); err != nil {
		return fmt.Errorf("encode header: %w", err)
	}

	for _, p := range all {
		if err := enc.Encode(record{Type: "personality", Data: p}); err != nil {
			return fmt.Errorf("encode personality %s: %w", p.ID, err)
		}
	}
	return nil
}
