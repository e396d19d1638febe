package export

import (
	"bytes"
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/lbds137/tzurot/internal/events"
)

// Destination is a target for the exported roster (S3, local file, etc.).
type Destination interface {
	// Write sends the JSONL payload to the destination.
	Write(ctx context.Context, data []byte) error
}

// Scheduler exports the roster to one or more destinations on an interval
// and announces each completed cycle on the event bus.
type Scheduler struct {
	roster       Roster
	destinations []Destination
	interval     time.Duration
	publisher    events.Publisher
	logger       *slog.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewScheduler creates a scheduler. A nil publisher falls back to the
// noop publisher, for setups without an event bus.
func NewScheduler(roster Roster, destinations []Destination, interval time.Duration, publisher events.Publisher, logger *slog.Logger) *Scheduler {
	if publisher == nil {
		publisher = &events.NoopPublisher{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		roster:       roster,
		destinations: destinations,
		interval:     interval,
		publisher:    publisher,
		logger:       logger,
	}
}

// Start begins periodic export. It runs an initial export immediately,
// then on each tick.
func (s *Scheduler) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.run(ctx)
	}()
}

// Stop cancels the scheduler and waits for any in-flight export to finish.
func (s *Scheduler) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
}

func (s *Scheduler) run(ctx context.Context) {
	s.exportOnce(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.exportOnce(ctx)
		}
	}
}

func (s *Scheduler) exportOnce(ctx context.Context) {
	var buf bytes.Buffer
	if err := WriteJSONL(ctx, s.roster, &buf); err != nil {
		s.logger.Error("roster export failed", "err", err)
		return
	}
	data := buf.Bytes()

	for i, dest := range s.destinations {
		if err := dest.Write(ctx, data); err != nil {
			s.logger.Error("export destination write failed", "destination", i, "err", err)
		}
	}

	ev := events.RosterExported{Bytes: len(data), Destinations: len(s.destinations)}
	if err := s.publisher.Publish(ctx, events.TopicRosterExported, ev); err != nil {
		s.logger.Warn("export announcement failed", "err", err)
	}
	s.logger.Info("roster export completed", "destinations", len(s.destinations), "bytes", len(data))
}
