package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/brogergvhs/manhuafast/internal/platform"
)

var flagDetailsYAML bool

var detailsCmd = &cobra.Command{
	Use:   "details <chapter-url>",
	Short: "Show a chapter with its page images",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession("")
		if err != nil {
			return err
		}
		defer s.log.Sync()

		ref := platform.RawURL(args[0])
		if !s.src.IsContentDetailsURL(ref) {
			return fmt.Errorf("%s is not a chapter URL", args[0])
		}

		d, err := s.src.GetContentDetails(cmd.Context(), ref)
		if err != nil {
			return err
		}

		if flagDetailsYAML {
			return writeYAML(cmd.OutOrStdout(), d)
		}
		return printDetails(cmd.OutOrStdout(), d)
	},
}

func printDetails(w io.Writer, d *platform.PostDetails) error {
	if _, err := fmt.Fprintf(w, "%s\n  series: %s (%s)\n  url:    %s\n  pages:  %d\n",
		d.Name, d.Author.Name, d.Author.URL, d.URL, len(d.Images)); err != nil {
		return err
	}
	for i, img := range d.Images {
		if _, err := fmt.Fprintf(w, "  %3d  %s\n", i+1, img); err != nil {
			return err
		}
	}
	return nil
}

func init() {
	detailsCmd.Flags().BoolVar(&flagDetailsYAML, "yaml", false, "print the details as YAML")
	rootCmd.AddCommand(detailsCmd)
}
