package main

import (
	"context"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the full resolved roster (no access filtering)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		all, err := svc.ResolveAll(context.Background())
		if err != nil {
			return err
		}
		if jsonOutput {
			printJSON(all)
		} else {
			printRoster(all)
		}
		return nil
	},
}
