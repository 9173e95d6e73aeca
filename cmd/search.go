package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/brogergvhs/manhuafast/internal/platform"
)

var (
	flagSearchNoPrompt bool
	flagSearchYAML     bool
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search series by title",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession("")
		if err != nil {
			return err
		}
		defer s.log.Sync()

		query := strings.Join(args, " ")
		page, err := s.src.SearchChannels(cmd.Context(), query, "")
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if flagSearchYAML {
			return writeYAML(out, page)
		}
		if len(page.Items) == 0 {
			fmt.Fprintf(out, "No series found for %q.\n", query)
			return nil
		}

		if flagSearchNoPrompt {
			return printChannels(out, page.Items)
		}

		idx, err := pickChannel(page.Items)
		if err != nil {
			return err
		}

		ch, err := s.src.GetChannel(cmd.Context(), platform.RawURL(page.Items[idx].URL))
		if err != nil {
			return err
		}
		return printChannel(out, ch)
	},
}

func pickChannel(items []platform.Channel) (int, error) {
	names := make([]string, 0, len(items))
	for _, c := range items {
		names = append(names, c.Name)
	}

	prompt := promptui.Select{
		Label: "Select series",
		Items: names,
		Size:  15,
	}

	idx, _, err := prompt.Run()
	if err != nil {
		return 0, fmt.Errorf("selection cancelled")
	}
	return idx, nil
}

func printChannels(w io.Writer, items []platform.Channel) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "#\tSERIES\tURL")
	for i, c := range items {
		_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\n", i+1, c.Name, c.URL)
	}
	return tw.Flush()
}

func init() {
	searchCmd.Flags().BoolVar(&flagSearchNoPrompt, "no-prompt", false, "print results instead of asking for a selection")
	searchCmd.Flags().BoolVar(&flagSearchYAML, "yaml", false, "print the raw result page as YAML")
	rootCmd.AddCommand(searchCmd)
}
