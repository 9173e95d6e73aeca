package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/brogergvhs/manhuafast/internal/config"
	"github.com/brogergvhs/manhuafast/internal/fetch"
	"github.com/brogergvhs/manhuafast/internal/normalize"
	"github.com/brogergvhs/manhuafast/internal/platform"
	"github.com/brogergvhs/manhuafast/internal/providers/madara"
	"github.com/brogergvhs/manhuafast/internal/ui"
	"github.com/brogergvhs/manhuafast/internal/util"
)

// session is everything a command needs to talk to the site.
type session struct {
	cfg *config.Config
	log *ui.Logger
	src *madara.Source
}

func loadConfig(order string) (*config.Config, string, error) {
	return config.LoadMerged(config.Options{
		IgnoreConfig:     flagIgnoreConfig,
		Debug:            flagDebug,
		PrimaryURL:       flagPrimary,
		FallbackURL:      flagFallback,
		ChapterShape:     flagShape,
		Order:            order,
		Output:           flagOutput,
		Cookie:           flagCookie,
		CookieFile:       flagCookieFile,
		UserAgent:        flagUserAgent,
		CloudflareBypass: flagCloudflareBypass,
	})
}

func newSession(order string) (*session, error) {
	cfg, used, err := loadConfig(order)
	if err != nil {
		return nil, err
	}

	log := ui.NewLogger(cfg.Debug)
	log.Debugf("config: %s", strings.TrimSpace(used))

	canon, err := normalize.New(cfg.PrimaryURL, cfg.FallbackURL)
	if err != nil {
		return nil, err
	}

	client, err := util.NewHTTPClient(util.HTTPClientOptions{
		UserAgent:        cfg.UserAgent,
		Cookie:           cfg.Cookie,
		CookieFile:       cfg.CookieFile,
		CloudflareBypass: cfg.CloudflareBypass,
		DebugLogger:      log,
	})
	if err != nil {
		return nil, err
	}

	var markers []string
	if len(cfg.ChallengeMarkers) > 0 {
		markers = append(append(markers, fetch.DefaultChallengeMarkers...), cfg.ChallengeMarkers...)
	}

	f := fetch.New(fetch.Options{
		Client:    client,
		Canon:     canon,
		UserAgent: util.PickUserAgent(cfg.UserAgent),
		Markers:   markers,
		Logger:    log,
	})

	shape, err := madara.ParseShape(cfg.ChapterShape)
	if err != nil {
		return nil, err
	}

	src := madara.New(madara.Config{
		SourceID:     cfg.SourceID,
		Platform:     cfg.Platform,
		ChapterShape: shape,
	}, canon, f, log)

	return &session{cfg: cfg, log: log, src: src}, nil
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

func formatTime(epoch int64) string {
	if epoch == 0 {
		return "-"
	}
	return time.Unix(epoch, 0).UTC().Format("2006-01-02 15:04")
}

// contentURL is the link a reader would open for an item.
func contentURL(c platform.Content) string {
	switch v := c.(type) {
	case *platform.WebItem:
		return v.URL
	case *platform.Post:
		if v.URL != "" {
			return v.URL
		}
		return v.ID.Value
	}
	return c.ContentID().Value
}

func printContents(w io.Writer, items []platform.Content, withSeries bool) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if withSeries {
		_, _ = fmt.Fprintln(tw, "#\tSERIES\tCHAPTER\tPUBLISHED\tURL")
	} else {
		_, _ = fmt.Fprintln(tw, "#\tCHAPTER\tPUBLISHED\tURL")
	}

	for i, c := range items {
		if withSeries {
			_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", i+1, seriesName(c), c.ContentName(), formatTime(c.Published()), contentURL(c))
			continue
		}
		_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", i+1, c.ContentName(), formatTime(c.Published()), contentURL(c))
	}
	return tw.Flush()
}

func seriesName(c platform.Content) string {
	switch v := c.(type) {
	case *platform.WebItem:
		return v.Author.Name
	case *platform.Post:
		return v.Author.Name
	}
	return ""
}
