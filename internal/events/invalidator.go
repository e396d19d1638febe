package events

import (
	"encoding/json"
	"log/slog"
	"strings"
)

// ResolutionCache is the slice of the resolution service the invalidator
// drives: targeted eviction when a record changes, full flush when the
// global default changes.
type ResolutionCache interface {
	Invalidate(id string)
	InvalidateAll()
}

// Invalidator keeps a resolution cache coherent with the management
// workflow by evicting entries as personality and config events arrive.
// Eviction is best-effort: a missed event only delays freshness until the
// cache TTL catches up.
type Invalidator struct {
	sub    Subscriber
	cache  ResolutionCache
	logger *slog.Logger

	cancels []func()
}

func NewInvalidator(sub Subscriber, cache ResolutionCache, logger *slog.Logger) *Invalidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Invalidator{sub: sub, cache: cache, logger: logger}
}

// Start subscribes to personality and config topics and begins evicting.
// It returns once the subscriptions are registered; delivery runs on
// background goroutines until Stop.
func (inv *Invalidator) Start() error {
	personality, cancelP, err := inv.sub.Subscribe(TopicPersonalityAll)
	if err != nil {
		return err
	}
	inv.cancels = append(inv.cancels, cancelP)

	config, cancelC, err := inv.sub.Subscribe(TopicConfigUpdated)
	if err != nil {
		inv.Stop()
		return err
	}
	inv.cancels = append(inv.cancels, cancelC)

	go inv.consume(personality, inv.handlePersonality)
	go inv.consume(config, inv.handleConfig)
	return nil
}

// Stop cancels the subscriptions. In-flight handlers finish on their own.
func (inv *Invalidator) Stop() {
	for _, cancel := range inv.cancels {
		cancel()
	}
	inv.cancels = nil
}

func (inv *Invalidator) consume(ch <-chan []byte, handle func([]byte)) {
	for payload := range ch {
		handle(payload)
	}
}

// payload is the common shape of every event the invalidator cares about.
type payload struct {
	PersonalityID string `json:"personality_id"`
}

func (inv *Invalidator) handlePersonality(raw []byte) {
	var ev payload
	if err := json.Unmarshal(raw, &ev); err != nil || strings.TrimSpace(ev.PersonalityID) == "" {
		// A malformed or id-less event could refer to anything; flush
		// everything rather than risk serving a stale entry.
		inv.logger.Warn("unintelligible personality event, flushing cache", "payload", string(raw))
		inv.cache.InvalidateAll()
		return
	}
	inv.logger.Debug("evicting cached resolution", "personality_id", ev.PersonalityID)
	inv.cache.Invalidate(ev.PersonalityID)
}

func (inv *Invalidator) handleConfig(raw []byte) {
	var ev payload
	if err := json.Unmarshal(raw, &ev); err != nil || ev.PersonalityID == "" {
		// Global default changed: every cached effective config is stale.
		inv.logger.Debug("global config changed, flushing cache")
		inv.cache.InvalidateAll()
		return
	}
	inv.cache.Invalidate(ev.PersonalityID)
}
