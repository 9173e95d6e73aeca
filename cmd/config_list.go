package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/brogergvhs/manhuafast/internal/config"
)

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all config profiles",
	RunE: func(cmd *cobra.Command, args []string) error {
		list, err := config.ListConfigs()
		if err != nil {
			return fmt.Errorf("cannot read configs directory: %w", err)
		}
		if len(list) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No configs yet. Run `manhuafast config init`.")
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
		_, _ = fmt.Fprintln(w, "\tLABEL\tPRIMARY\tSHAPE\tPATH")

		for _, c := range list {
			mark := " "
			if c.Active {
				mark = "*"
			}
			primary, shape := c.PrimaryURL, c.ChapterShape
			if c.Err != nil {
				primary, shape = "(unreadable)", "-"
			}
			_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", mark, c.Label, primary, shape, c.Path)
		}

		return w.Flush()
	},
}

var configResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset the active config to default values, keeping its source id",
	RunE: func(cmd *cobra.Command, args []string) error {
		activePath, err := config.ActiveConfigPath()
		if err != nil {
			return fmt.Errorf("%w; run `manhuafast config init` first", err)
		}

		if err := config.ResetConfig(activePath); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Reset active config: %s\n", activePath)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configListCmd, configResetCmd)
}
