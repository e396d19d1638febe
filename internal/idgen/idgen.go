// Package idgen provides short, URL-safe personality ID generation backed
// by nanoid, plus the canonical-id syntax check used by identifier lookup.
package idgen

import (
	"fmt"
	"regexp"

	nanoid "github.com/matoous/go-nanoid/v2"
)

// Prefix is prepended to every generated personality ID.
var Prefix = "pn-"

// Alphabet defines the character set used for the random portion of the ID.
var Alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Length is the number of random characters generated (excluding the prefix).
var Length = 10

var canonicalPattern = regexp.MustCompile(`^pn-[a-zA-Z0-9]{10}$`)

// Generate returns a new unique personality ID. The resolution engine only
// reads existing records; Generate is for the management workflow that
// creates them.
func Generate() (string, error) {
	id, err := nanoid.Generate(Alphabet, Length)
	if err != nil {
		return "", fmt.Errorf("idgen: %w", err)
	}
	return Prefix + id, nil
}

// IsCanonical reports whether s has canonical personality-id syntax.
// Display names and slugs never match: they either lack the prefix or
// have a different shape.
func IsCanonical(s string) bool {
	return canonicalPattern.MatchString(s)
}
