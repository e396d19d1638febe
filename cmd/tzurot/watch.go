package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/lbds137/tzurot/internal/events"
	"github.com/lbds137/tzurot/internal/ui"
)

// watch tails the event bus, printing personality and config events as
// they arrive. Useful for verifying that the management workflow actually
// publishes what invalidation depends on.
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Tail personality events from the bus",
	Args:  cobra.NoArgs,
	// The bus is enough; skip the database connection.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return applyProfileEnv(profileName)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		url := natsURL()
		if url == "" {
			return fmt.Errorf("TZUROT_NATS_URL is not configured")
		}

		sub, err := events.NewNATSSubscriber(url)
		if err != nil {
			return err
		}
		defer sub.Close()

		ch, cancel, err := sub.Subscribe("tzurot.>")
		if err != nil {
			return err
		}
		defer cancel()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		fmt.Fprintln(os.Stderr, ui.RenderMuted("watching tzurot.> (ctrl-c to stop)"))
		for {
			select {
			case <-ctx.Done():
				return nil
			case payload, ok := <-ch:
				if !ok {
					return nil
				}
				ts := time.Now().Format("15:04:05")
				fmt.Printf("%s %s\n", ui.RenderMuted(ts), string(payload))
			}
		}
	},
}
