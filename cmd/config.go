package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration and manage profiles",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, used, err := loadConfig("")
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Loaded config from:\n  %s\n\n", used)
		cfg.Print(out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}

// profileFlagHint is shown after profile changes.
const profileFlagHint = "Environment variables (MANHUAFAST_*) and flags still override profile values."
