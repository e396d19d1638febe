package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/lbds137/tzurot/internal/events"
	"github.com/lbds137/tzurot/internal/export"
)

// serve keeps a warm resolver running: the event-bus invalidator holds the
// cache coherent, and the export scheduler ships the roster on an interval
// when one is configured.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the resolver with live cache invalidation and scheduled exports",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if cfg.NATSURL != "" {
			sub, err := events.NewNATSSubscriber(cfg.NATSURL)
			if err != nil {
				return fmt.Errorf("connecting to event bus: %w", err)
			}
			defer sub.Close()

			inv := events.NewInvalidator(sub, svc, logger)
			if err := inv.Start(); err != nil {
				return fmt.Errorf("starting invalidator: %w", err)
			}
			defer inv.Stop()
			logger.Info("cache invalidation active", "nats_url", cfg.NATSURL)
		} else {
			logger.Warn("no NATS URL configured, cache coherence is TTL-only")
		}

		if cfg.ExportInterval > 0 {
			var destinations []export.Destination
			if cfg.ExportS3Bucket != "" {
				dest, err := export.NewS3Destination(ctx,
					cfg.ExportS3Bucket, cfg.ExportS3Key, cfg.ExportS3Region, cfg.ExportS3Endpoint)
				if err != nil {
					return fmt.Errorf("creating S3 destination: %w", err)
				}
				destinations = append(destinations, dest)
			}
			if len(destinations) > 0 {
				// Noop when no bus is configured, so exports still run.
				pub, err := events.NewPublisher(cfg.NATSURL)
				if err != nil {
					return fmt.Errorf("connecting export publisher: %w", err)
				}
				defer pub.Close()

				sched := export.NewScheduler(svc, destinations, cfg.ExportInterval, pub, logger)
				sched.Start()
				defer sched.Stop()
				logger.Info("roster export scheduled", "interval", cfg.ExportInterval)
			}
		}

		// Warm the cache so the first lookups after startup are cheap.
		if _, err := svc.ResolveAll(ctx); err != nil {
			logger.Warn("initial roster warm-up failed", "err", err)
		}

		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				logger.Info("shutting down")
				return nil
			case <-ticker.C:
				stats := svc.Stats()
				logger.Info("cache stats", "size", stats.Size, "max_size", stats.MaxSize, "ttl", stats.TTL)
			}
		}
	},
}
