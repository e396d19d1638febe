package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lbds137/tzurot/internal/model"
	"github.com/lbds137/tzurot/internal/resolver"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <identifier>",
	Short: "Resolve a personality by id, name, slug, or alias",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		identifier := args[0]
		asUser, _ := cmd.Flags().GetString("as")

		var caller *model.CallerIdentity
		if asUser != "" {
			caller = &model.CallerIdentity{ExternalID: asUser}
		}

		p, err := svc.Resolve(context.Background(), identifier, caller)
		if err != nil {
			if errors.Is(err, resolver.ErrNotFound) {
				fmt.Fprintf(os.Stderr, "not found: %s\n", identifier)
				os.Exit(1)
			}
			return err
		}

		if jsonOutput {
			printJSON(p)
		} else {
			printResolved(p)
		}
		return nil
	},
}

func init() {
	resolveCmd.Flags().String("as", "", "resolve as this external user id (applies access filtering)")
}
