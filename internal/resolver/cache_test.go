package resolver

import (
	"fmt"
	"testing"
	"time"

	"github.com/lbds137/tzurot/internal/model"
)

func TestCacheGetSet(t *testing.T) {
	c := NewCache(10, time.Minute)

	if _, ok := c.Get("pn-abc123def4"); ok {
		t.Error("Get on empty cache returned a value")
	}

	v := &model.ResolvedPersonality{ID: "pn-abc123def4", Name: "Nova"}
	c.Set(v.ID, v)

	got, ok := c.Get("pn-abc123def4")
	if !ok {
		t.Fatal("Get after Set returned nothing")
	}
	if got != v {
		t.Error("Get returned a different value than Set stored")
	}
}

func TestCacheTTLExpiry(t *testing.T) {
	c := NewCache(10, 20*time.Millisecond)
	c.Set("pn-abc123def4", &model.ResolvedPersonality{ID: "pn-abc123def4"})

	time.Sleep(50 * time.Millisecond)

	if _, ok := c.Get("pn-abc123def4"); ok {
		t.Error("entry survived past its TTL")
	}
}

func TestCacheSizeBound(t *testing.T) {
	c := NewCache(3, time.Minute)
	for i := 0; i < 5; i++ {
		id := fmt.Sprintf("pn-%010d", i)
		c.Set(id, &model.ResolvedPersonality{ID: id})
	}

	if got := c.Stats().Size; got > 3 {
		t.Errorf("Size = %d, want at most 3", got)
	}
	if _, ok := c.Get("pn-0000000000"); ok {
		t.Error("oldest entry survived past the size bound")
	}
	if _, ok := c.Get("pn-0000000004"); !ok {
		t.Error("newest entry was evicted")
	}
}

func TestCacheDeleteAndClear(t *testing.T) {
	c := NewCache(10, time.Minute)
	c.Set("pn-aaaaaaaaaa", &model.ResolvedPersonality{ID: "pn-aaaaaaaaaa"})
	c.Set("pn-bbbbbbbbbb", &model.ResolvedPersonality{ID: "pn-bbbbbbbbbb"})

	c.Delete("pn-aaaaaaaaaa")
	c.Delete("pn-never-there") // no-op

	if _, ok := c.Get("pn-aaaaaaaaaa"); ok {
		t.Error("deleted entry still present")
	}
	if _, ok := c.Get("pn-bbbbbbbbbb"); !ok {
		t.Error("unrelated entry was deleted")
	}

	c.Clear()
	if got := c.Stats().Size; got != 0 {
		t.Errorf("Size after Clear = %d, want 0", got)
	}
}

func TestCacheStats(t *testing.T) {
	c := NewCache(42, 5*time.Minute)
	c.Set("pn-aaaaaaaaaa", &model.ResolvedPersonality{ID: "pn-aaaaaaaaaa"})

	s := c.Stats()
	if s.Size != 1 || s.MaxSize != 42 || s.TTL != 5*time.Minute {
		t.Errorf("Stats = %+v", s)
	}
}
