package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/brogergvhs/manhuafast/internal/chapters"
	"github.com/brogergvhs/manhuafast/internal/platform"
	"github.com/brogergvhs/manhuafast/internal/providers"
)

var (
	flagOrder string

	// selection
	flagChapter string
	flagRange   string
	flagList    string

	flagChaptersYAML bool
)

var chaptersCmd = &cobra.Command{
	Use:   "chapters <series-url>",
	Short: "List the chapters of a series",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(flagOrder)
		if err != nil {
			return err
		}
		defer s.log.Sync()

		items, err := listChapters(cmd, s, args[0])
		if err != nil {
			return err
		}

		if flagChaptersYAML {
			return writeYAML(cmd.OutOrStdout(), items)
		}
		return printContents(cmd.OutOrStdout(), items, false)
	},
}

// listChapters fetches the chapter list in the configured order and
// applies the --chapter/--range/--list selection.
func listChapters(cmd *cobra.Command, s *session, seriesURL string) ([]platform.Content, error) {
	ref := platform.RawURL(seriesURL)
	if !s.src.IsChannelURL(ref) {
		return nil, fmt.Errorf("%s is not a series URL", seriesURL)
	}

	page, err := s.src.GetChannelContents(cmd.Context(), ref, providers.Query{Order: s.cfg.DefaultOrder})
	if err != nil {
		return nil, err
	}
	s.log.Debugf("chapters: %d listed (order=%s)", len(page.Items), s.cfg.DefaultOrder)

	selected, err := chapters.Select(page.Items, flagChapter, flagRange, flagList)
	if err != nil {
		return nil, err
	}
	if len(selected) == 0 {
		return nil, fmt.Errorf("no chapters selected")
	}
	return selected, nil
}

func addSelectionFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&flagOrder, "order", "", "chapter order: newest or oldest")
	f.StringVarP(&flagChapter, "chapter", "c", "", "single chapter by name or position")
	f.StringVarP(&flagRange, "range", "r", "", "chapter positions, e.g. 1-10")
	f.StringVarP(&flagList, "list", "l", "", "chapter positions, e.g. 1,3,7")
}

func init() {
	addSelectionFlags(chaptersCmd)
	chaptersCmd.Flags().BoolVar(&flagChaptersYAML, "yaml", false, "print the chapters as YAML")
	rootCmd.AddCommand(chaptersCmd)
}
