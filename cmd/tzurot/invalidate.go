package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lbds137/tzurot/internal/events"
)

// invalidate publishes eviction events on the bus so every running
// resolver instance drops its cached entry, not just this process.
var invalidateCmd = &cobra.Command{
	Use:   "invalidate <personality-id>",
	Short: "Evict cached resolutions across all running instances",
	Args:  cobra.MaximumNArgs(1),
	// The bus is enough; skip the database connection.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return applyProfileEnv(profileName)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		all, _ := cmd.Flags().GetBool("all")
		if !all && len(args) == 0 {
			return fmt.Errorf("provide a personality id or --all")
		}

		url := natsURL()
		if url == "" {
			return fmt.Errorf("TZUROT_NATS_URL is not configured")
		}
		pub, err := events.NewNATSPublisher(url)
		if err != nil {
			return err
		}
		defer pub.Close()

		ctx := context.Background()
		if all {
			// An id-less config event flushes every cache.
			if err := pub.Publish(ctx, events.TopicConfigUpdated, events.ConfigUpdated{}); err != nil {
				return err
			}
			if err := pub.Flush(); err != nil {
				return err
			}
			fmt.Println("flush requested")
			return nil
		}

		id := args[0]
		ev := events.PersonalityUpdated{PersonalityID: id}
		if err := pub.Publish(ctx, events.TopicPersonalityUpdated, ev); err != nil {
			return err
		}
		if err := pub.Flush(); err != nil {
			return err
		}
		fmt.Printf("eviction requested for %s\n", id)
		return nil
	},
}

func init() {
	invalidateCmd.Flags().Bool("all", false, "flush every cached resolution")
}
