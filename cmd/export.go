package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/brogergvhs/manhuafast/internal/chapters"
	"github.com/brogergvhs/manhuafast/internal/platform"
	"github.com/brogergvhs/manhuafast/internal/sourceerr"
	"github.com/brogergvhs/manhuafast/internal/ui"
)

var (
	flagOutput  string
	flagDetails bool
)

// exportFile is what `export` writes for one series.
type exportFile struct {
	Channel  *platform.Channel       `yaml:"channel"`
	Order    string                  `yaml:"order"`
	Chapters []platform.Content      `yaml:"chapters"`
	Details  []*platform.PostDetails `yaml:"details,omitempty"`
}

var exportCmd = &cobra.Command{
	Use:   "export <series-url>",
	Short: "Export a series and its chapter list to a YAML file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(flagOrder)
		if err != nil {
			return err
		}
		defer s.log.Sync()

		ctx := cmd.Context()
		ref := platform.RawURL(args[0])

		ch, err := s.src.GetChannel(ctx, ref)
		if err != nil {
			return err
		}

		selected, err := listChapters(cmd, s, args[0])
		if err != nil {
			return err
		}

		stats := ui.NewStats()
		stats.TotalChapters.Store(int64(len(selected)))

		out := exportFile{Channel: ch, Order: s.cfg.DefaultOrder, Chapters: selected}

		if flagDetails {
			out.Details, err = exportDetails(cmd, s, ch.Name, selected, stats)
			if err != nil {
				return err
			}
		}

		if err := os.MkdirAll(s.cfg.Output, 0755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
		path := filepath.Join(s.cfg.Output, chapters.FileName(ch.Name)+".yaml")

		f, err := os.Create(path)
		if err != nil {
			return err
		}
		if err := writeYAML(f, out); err != nil {
			_ = f.Close()
			return fmt.Errorf("write %s: %w", path, err)
		}
		if err := f.Close(); err != nil {
			return err
		}

		s.log.Infof("Exported %s to %s", ch.Name, path)
		s.log.Infof("Summary: %s", stats.Summary())
		return nil
	},
}

// exportDetails fetches chapter details one by one. A failed chapter is
// logged and counted; a challenge page stops the export since every
// following request would hit it too.
func exportDetails(cmd *cobra.Command, s *session, series string, items []platform.Content, stats *ui.Stats) ([]*platform.PostDetails, error) {
	pm := ui.NewProgressManager(cmd.ErrOrStderr())
	bar := pm.Register(series, "chapters", len(items))
	defer func() {
		bar.MarkDone()
		pm.Close()
	}()

	var details []*platform.PostDetails
	for _, c := range items {
		if err := cmd.Context().Err(); err != nil {
			return nil, err
		}

		d, err := s.src.GetContentDetails(cmd.Context(), c.ContentID())
		if err != nil {
			if errors.Is(err, sourceerr.ErrChallengeRequired) {
				return nil, err
			}
			stats.Failed.Add(1)
			s.log.Errorf("%s: %v", c.ContentName(), err)
			bar.Step(false)
			continue
		}

		stats.TotalDetails.Add(1)
		stats.TotalImages.Add(int64(len(d.Images)))
		details = append(details, d)
		bar.Step(true)
	}
	return details, nil
}

func init() {
	addSelectionFlags(exportCmd)
	exportCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "output directory (default from config)")
	exportCmd.Flags().BoolVar(&flagDetails, "details", false, "also fetch every selected chapter's details and page images")
	rootCmd.AddCommand(exportCmd)
}
