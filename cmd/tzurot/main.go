package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/lbds137/tzurot/internal/config"
	"github.com/lbds137/tzurot/internal/resolver"
	"github.com/lbds137/tzurot/internal/store/postgres"
	"github.com/lbds137/tzurot/internal/ui"
)

var (
	jsonOutput  bool
	profileName string

	logger *slog.Logger

	cfg *config.Config
	st  *postgres.PostgresStore
	svc *resolver.Service
)

var rootCmd = &cobra.Command{
	Use:   "tzurot",
	Short: "Personality resolution engine",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := applyProfileEnv(profileName); err != nil {
			return err
		}
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		st, err = postgres.New(cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("opening store: %w", err)
		}
		svc = resolver.New(st, resolver.Options{
			AdminExternalID: cfg.AdminUserID,
			AvatarBaseURL:   cfg.AvatarBaseURL(),
			CacheSize:       cfg.CacheSize,
			CacheTTL:        cfg.CacheTTL,
			Logger:          logger,
		})
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if st != nil {
			st.Close()
		}
	},
}

func init() {
	logger = slog.New(slog.NewTextHandler(os.Stderr, nil))

	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	rootCmd.PersistentFlags().StringVar(&profileName, "profile", "", "named profile to use (defaults to the active profile)")

	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(invalidateCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(profileCmd)
}

func main() {
	if !ui.ShouldUseColor() {
		ui.ForceNoColor()
	}
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
