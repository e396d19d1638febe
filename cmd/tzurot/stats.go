package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lbds137/tzurot/internal/ui"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show resolution cache bounds and fill",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s := svc.Stats()
		if jsonOutput {
			printJSON(s)
			return nil
		}
		fmt.Printf("Cache size:  %d / %d\n", s.Size, s.MaxSize)
		fmt.Printf("Cache TTL:   %s\n", s.TTL)
		fmt.Println(ui.RenderMuted("size reflects this process only; long-lived caches live in serve"))
		return nil
	},
}
