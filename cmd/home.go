package cmd

import (
	"github.com/spf13/cobra"
)

var (
	flagHomeYAML         bool
	flagHomeContinuation string
)

var homeCmd = &cobra.Command{
	Use:   "home",
	Short: "List the latest updates from the front page",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession("")
		if err != nil {
			return err
		}
		defer s.log.Sync()

		page, err := s.src.GetHome(cmd.Context(), flagHomeContinuation)
		if err != nil {
			return err
		}

		if flagHomeYAML {
			return writeYAML(cmd.OutOrStdout(), page)
		}
		return printContents(cmd.OutOrStdout(), page.Items, true)
	},
}

func init() {
	homeCmd.Flags().BoolVar(&flagHomeYAML, "yaml", false, "print the raw page as YAML")
	homeCmd.Flags().StringVar(&flagHomeContinuation, "continuation", "", "continuation token from a previous page")
	rootCmd.AddCommand(homeCmd)
}
