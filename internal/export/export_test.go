package export

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/lbds137/tzurot/internal/events"
	"github.com/lbds137/tzurot/internal/model"
)

// fakeRoster returns a fixed set of resolved personalities.
type fakeRoster struct {
	all []*model.ResolvedPersonality
	err error
}

func (f *fakeRoster) ResolveAll(_ context.Context) ([]*model.ResolvedPersonality, error) {
	return f.all, f.err
}

func resolved(id, name string) *model.ResolvedPersonality {
	return &model.ResolvedPersonality{
		ID:   id,
		Name: name,
		Config: model.EffectiveConfig{
			Model:       "openai/gpt-4o",
			Temperature: 1.0,
		},
	}
}

func TestWriteJSONL(t *testing.T) {
	roster := &fakeRoster{all: []*model.ResolvedPersonality{
		resolved("pn-bbbbbbbbbb", "Beta"),
		resolved("pn-aaaaaaaaaa", "Alpha"),
	}}

	var buf bytes.Buffer
	if err := WriteJSONL(context.Background(), roster, &buf); err != nil {
		t.Fatalf("WriteJSONL: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3 (header + 2 personalities)", len(lines))
	}

	var hdr struct {
		Version          string `json:"version"`
		Type             string `json:"type"`
		PersonalityCount int    `json:"personality_count"`
	}
	if err := json.Unmarshal([]byte(lines[0]), &hdr); err != nil {
		t.Fatalf("decoding header: %v", err)
	}
	if hdr.Type != "header" || hdr.Version != "1" || hdr.PersonalityCount != 2 {
		t.Errorf("header = %+v", hdr)
	}

	// Records are sorted by canonical id regardless of roster order.
	wantIDs := []string{"pn-aaaaaaaaaa", "pn-bbbbbbbbbb"}
	for i, line := range lines[1:] {
		var rec struct {
			Type string                     `json:"type"`
			Data *model.ResolvedPersonality `json:"data"`
		}
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			t.Fatalf("decoding line %d: %v", i+1, err)
		}
		if rec.Type != "personality" {
			t.Errorf("line %d type = %q, want personality", i+1, rec.Type)
		}
		if rec.Data.ID != wantIDs[i] {
			t.Errorf("line %d id = %q, want %q", i+1, rec.Data.ID, wantIDs[i])
		}
	}
}

func TestWriteJSONLEmptyRoster(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSONL(context.Background(), &fakeRoster{}, &buf); err != nil {
		t.Fatalf("WriteJSONL: %v", err)
	}

	sc := bufio.NewScanner(&buf)
	n := 0
	for sc.Scan() {
		n++
	}
	if n != 1 {
		t.Errorf("got %d lines, want header only", n)
	}
}

func TestWriteJSONLRosterError(t *testing.T) {
	roster := &fakeRoster{err: errors.New("db down")}
	var buf bytes.Buffer
	if err := WriteJSONL(context.Background(), roster, &buf); err == nil {
		t.Fatal("WriteJSONL succeeded, want error")
	}
	if buf.Len() != 0 {
		t.Errorf("partial output written: %q", buf.String())
	}
}

// memDestination collects writes for scheduler tests.
type memDestination struct {
	mu     sync.Mutex
	writes int
	err    error
}

func (d *memDestination) Write(_ context.Context, _ []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.writes++
	return d.err
}

func (d *memDestination) count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.writes
}

func TestSchedulerRunsImmediately(t *testing.T) {
	roster := &fakeRoster{all: []*model.ResolvedPersonality{resolved("pn-aaaaaaaaaa", "Alpha")}}
	dest := &memDestination{}

	s := NewScheduler(roster, []Destination{dest}, time.Hour, nil, nil)
	s.Start()
	defer s.Stop()

	deadline := time.Now().Add(2 * time.Second)
	for dest.count() == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if dest.count() == 0 {
		t.Fatal("no export ran at startup")
	}
}

func TestSchedulerFailingDestinationDoesNotStopOthers(t *testing.T) {
	roster := &fakeRoster{all: []*model.ResolvedPersonality{resolved("pn-aaaaaaaaaa", "Alpha")}}
	failing := &memDestination{err: errors.New("bucket gone")}
	healthy := &memDestination{}

	s := NewScheduler(roster, []Destination{failing, healthy}, time.Hour, nil, nil)
	s.Start()
	defer s.Stop()

	deadline := time.Now().Add(2 * time.Second)
	for healthy.count() == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if healthy.count() == 0 {
		t.Fatal("healthy destination never written after sibling failure")
	}
}

// recordingPublisher captures announcement events.
type recordingPublisher struct {
	mu     sync.Mutex
	topics []string
}

func (p *recordingPublisher) Publish(_ context.Context, topic string, _ any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.topics = append(p.topics, topic)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) published() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.topics...)
}

func TestSchedulerAnnouncesExports(t *testing.T) {
	roster := &fakeRoster{all: []*model.ResolvedPersonality{resolved("pn-aaaaaaaaaa", "Alpha")}}
	dest := &memDestination{}
	pub := &recordingPublisher{}

	s := NewScheduler(roster, []Destination{dest}, time.Hour, pub, nil)
	s.Start()
	defer s.Stop()

	deadline := time.Now().Add(2 * time.Second)
	for len(pub.published()) == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}

	topics := pub.published()
	if len(topics) == 0 {
		t.Fatal("no announcement published after export")
	}
	if topics[0] != events.TopicRosterExported {
		t.Errorf("topic = %q, want %q", topics[0], events.TopicRosterExported)
	}
}
