package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/brogergvhs/manhuafast/internal/platform"
)

var flagChannelYAML bool

var channelCmd = &cobra.Command{
	Use:   "channel <series-url>",
	Short: "Show a series page",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession("")
		if err != nil {
			return err
		}
		defer s.log.Sync()

		ref := platform.RawURL(args[0])
		if !s.src.IsChannelURL(ref) {
			return fmt.Errorf("%s is not a series URL", args[0])
		}

		ch, err := s.src.GetChannel(cmd.Context(), ref)
		if err != nil {
			return err
		}

		if flagChannelYAML {
			return writeYAML(cmd.OutOrStdout(), ch)
		}
		return printChannel(cmd.OutOrStdout(), ch)
	},
}

func printChannel(w io.Writer, ch *platform.Channel) error {
	_, err := fmt.Fprintf(w, "%s\n  url:       %s\n  id:        %s\n  thumbnail: %s\n\n%s\n",
		ch.Name, ch.URL, ch.ID.Value, ch.Thumbnail, ch.Description)
	return err
}

func init() {
	channelCmd.Flags().BoolVar(&flagChannelYAML, "yaml", false, "print the channel as YAML")
	rootCmd.AddCommand(channelCmd)
}
