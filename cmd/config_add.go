package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/brogergvhs/manhuafast/internal/config"
)

var flagAddFromCurrent bool

var configAddCmd = &cobra.Command{
	Use:   "add <label>",
	Short: "Create a new config profile, e.g. for another mirror pair",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var from *config.Config
		if flagAddFromCurrent {
			cfg, _, err := loadConfig("")
			if err != nil {
				return err
			}
			from = cfg
		}

		path, err := config.NewProfile(args[0], from)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Created new config: %s\n", path)
		fmt.Fprintf(cmd.OutOrStdout(), "Activate it with `manhuafast config switch %s`.\n", args[0])
		return nil
	},
}

func init() {
	configAddCmd.Flags().BoolVar(&flagAddFromCurrent, "from-current", false, "copy the effective settings (profile, env and flags) instead of defaults")
	configCmd.AddCommand(configAddCmd)
}
