package resolver

import (
	"regexp"
	"strings"

	"github.com/lbds137/tzurot/internal/model"
)

// Placeholder spellings recognized in character text. Speaker placeholders
// normalize to CanonicalSpeakerToken, which downstream consumers replace
// with the actual end-user's name at message time. Self placeholders are
// replaced immediately with the personality's display name.
var (
	SpeakerSpellings = []string{"{{user}}", "{user}", "{{USER}}"}
	SelfSpellings    = []string{"{{assistant}}", "{assistant}", "{{char}}", "{char}"}

	// CanonicalSpeakerToken is the single spelling speaker placeholders
	// collapse to.
	CanonicalSpeakerToken = "{user}"
)

// Substituter rewrites placeholder tokens in free-text character fields.
// The matchers are built once; configured spellings are regex-escaped so a
// spelling like "{user}" cannot be misread as a character class.
type Substituter struct {
	speaker *regexp.Regexp
	self    *regexp.Regexp
}

// NewSubstituter builds a substituter from the package-level spellings.
func NewSubstituter() *Substituter {
	return &Substituter{
		speaker: compileSpellings(SpeakerSpellings),
		self:    compileSpellings(SelfSpellings),
	}
}

func compileSpellings(spellings []string) *regexp.Regexp {
	quoted := make([]string, len(spellings))
	for i, s := range spellings {
		quoted[i] = regexp.QuoteMeta(s)
	}
	return regexp.MustCompile(strings.Join(quoted, "|"))
}

// Substitute rewrites one text field. Absent input (nil) stays absent, so
// downstream code can distinguish "not set" from "set to empty".
func (s *Substituter) Substitute(text *string, displayName string) *string {
	if text == nil {
		return nil
	}
	out := s.speaker.ReplaceAllLiteralString(*text, CanonicalSpeakerToken)
	out = s.self.ReplaceAllLiteralString(out, displayName)
	return &out
}

// SubstituteAll applies Substitute to every free-text character field.
func (s *Substituter) SubstituteAll(ch model.CharacterText, displayName string) model.CharacterText {
	return model.CharacterText{
		SystemPrompt: s.Substitute(ch.SystemPrompt, displayName),
		Traits:       s.Substitute(ch.Traits, displayName),
		Tone:         s.Substitute(ch.Tone, displayName),
		Age:          s.Substitute(ch.Age, displayName),
		Appearance:   s.Substitute(ch.Appearance, displayName),
		Likes:        s.Substitute(ch.Likes, displayName),
		Dislikes:     s.Substitute(ch.Dislikes, displayName),
		Goals:        s.Substitute(ch.Goals, displayName),
		Examples:     s.Substitute(ch.Examples, displayName),
		ErrorMessage: s.Substitute(ch.ErrorMessage, displayName),
	}
}
