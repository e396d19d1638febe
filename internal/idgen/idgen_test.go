package idgen

import (
	"regexp"
	"testing"
)

func TestGenerate_Length(t *testing.T) {
	id, err := Generate()
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	wantLen := len(Prefix) + Length
	if len(id) != wantLen {
		t.Errorf("Generate() length = %d, want %d (id=%q)", len(id), wantLen, id)
	}
}

func TestGenerate_Charset(t *testing.T) {
	pattern := regexp.MustCompile(`^` + regexp.QuoteMeta(Prefix) + `[a-zA-Z0-9]+$`)
	for i := 0; i < 100; i++ {
		id, err := Generate()
		if err != nil {
			t.Fatalf("Generate() error on iteration %d: %v", i, err)
		}
		if !pattern.MatchString(id) {
			t.Fatalf("Generate() = %q, does not match expected charset pattern", id)
		}
	}
}

func TestGenerate_Uniqueness(t *testing.T) {
	const count = 10_000
	seen := make(map[string]struct{}, count)
	for i := 0; i < count; i++ {
		id, err := Generate()
		if err != nil {
			t.Fatalf("Generate() error on iteration %d: %v", i, err)
		}
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate id generated: %q", id)
		}
		seen[id] = struct{}{}
	}
}

func TestIsCanonical(t *testing.T) {
	for _, tc := range []struct {
		input string
		want  bool
	}{
		{"pn-aB3xY9kQz7", true},
		{"pn-0000000000", true},
		{"pn-short", false},
		{"pn-aB3xY9kQz7extra", false},
		{"bd-aB3xY9kQz7", false},
		{"Nova", false},
		{"nova-prime", false},
		{"", false},
		{"pn-aB3xY9kQ!7", false},
	} {
		if got := IsCanonical(tc.input); got != tc.want {
			t.Errorf("IsCanonical(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}

	id, err := Generate()
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	if !IsCanonical(id) {
		t.Errorf("IsCanonical(Generate()) = false for %q", id)
	}
}
