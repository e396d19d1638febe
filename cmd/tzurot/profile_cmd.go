package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage named environment profiles",
	// Skip the database connection — profile subcommands are local file
	// operations.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
}

var profileAddCmd = &cobra.Command{
	Use:   "add <name> <database-url>",
	Short: "Add or update a named profile",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, dbURL := args[0], args[1]
		nats, _ := cmd.Flags().GetString("nats")
		publicURL, _ := cmd.Flags().GetString("public-url")
		adminID, _ := cmd.Flags().GetString("admin")

		pc, err := loadProfilesConfig()
		if err != nil {
			return err
		}
		pc.Profiles[name] = Profile{
			DatabaseURL: dbURL,
			NATSURL:     nats,
			PublicURL:   publicURL,
			AdminUserID: adminID,
		}
		if err := saveProfilesConfig(pc); err != nil {
			return err
		}
		fmt.Printf("profile %q added\n", name)
		return nil
	},
}

var profileUseCmd = &cobra.Command{
	Use:   "use <name>",
	Short: "Set the active profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		pc, err := loadProfilesConfig()
		if err != nil {
			return err
		}
		if _, ok := pc.Profiles[name]; !ok {
			return fmt.Errorf("profile %q not found", name)
		}
		pc.Active = name
		if err := saveProfilesConfig(pc); err != nil {
			return err
		}
		fmt.Printf("profile %q is now active\n", name)
		return nil
	},
}

var profileRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a named profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		pc, err := loadProfilesConfig()
		if err != nil {
			return err
		}
		if _, ok := pc.Profiles[name]; !ok {
			return fmt.Errorf("profile %q not found", name)
		}
		delete(pc.Profiles, name)
		if pc.Active == name {
			pc.Active = ""
		}
		if err := saveProfilesConfig(pc); err != nil {
			return err
		}
		fmt.Printf("profile %q removed\n", name)
		return nil
	},
}

var profileListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all profiles",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		pc, err := loadProfilesConfig()
		if err != nil {
			return err
		}
		if len(pc.Profiles) == 0 {
			fmt.Println("no profiles configured")
			return nil
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "  NAME\tDATABASE\tNATS")
		for name, p := range pc.Profiles {
			marker := "  "
			if name == pc.Active {
				marker = "* "
			}
			fmt.Fprintf(w, "%s%s\t%s\t%s\n", marker, name, redactURL(p.DatabaseURL), p.NATSURL)
		}
		return w.Flush()
	},
}

func init() {
	profileAddCmd.Flags().String("nats", "", "NATS URL for this profile")
	profileAddCmd.Flags().String("public-url", "", "public base URL for avatar derivation")
	profileAddCmd.Flags().String("admin", "", "administrator external user id")

	profileCmd.AddCommand(profileAddCmd)
	profileCmd.AddCommand(profileUseCmd)
	profileCmd.AddCommand(profileRemoveCmd)
	profileCmd.AddCommand(profileListCmd)
}
