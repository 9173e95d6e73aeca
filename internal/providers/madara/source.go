package madara

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"github.com/brogergvhs/manhuafast/internal/extract"
	"github.com/brogergvhs/manhuafast/internal/fetch"
	"github.com/brogergvhs/manhuafast/internal/normalize"
	"github.com/brogergvhs/manhuafast/internal/platform"
	"github.com/brogergvhs/manhuafast/internal/providers"
	"github.com/brogergvhs/manhuafast/internal/timeparse"
)

const (
	DefaultPlatform  = "ManhuaFast"
	DefaultClaimType = 2

	chapterDescription = "Open chapter"
)

// Shape selects the host type chapters are emitted as.
type Shape string

const (
	// ShapeWeb emits *platform.WebItem carrying the chapter URL.
	ShapeWeb Shape = "web"
	// ShapePost emits *platform.Post with an empty URL, so hosts that
	// mis-route web items open the details view instead.
	ShapePost Shape = "post"
)

func ParseShape(s string) (Shape, error) {
	switch Shape(strings.ToLower(strings.TrimSpace(s))) {
	case "", ShapeWeb:
		return ShapeWeb, nil
	case ShapePost:
		return ShapePost, nil
	}
	return "", fmt.Errorf("unknown chapter shape %q (want post or web)", s)
}

var ErrNotChapter = errors.New("not a chapter url")

type Config struct {
	// SourceID scopes every generated identifier to one installation.
	SourceID     string
	Platform     string
	ClaimType    int
	ChapterShape Shape
	// Now is the clock used for relative dates; nil means time.Now.
	Now func() time.Time
}

type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

type Fetcher interface {
	Get(ctx context.Context, url string) (fetch.FetchResult, error)
	Post(ctx context.Context, url, body string) (fetch.FetchResult, error)
}

type Source struct {
	cfg      Config
	canon    *normalize.Canonicalizer
	fetch    Fetcher
	times    *timeparse.Parser
	sanitize *bluemonday.Policy
	log      Logger
}

var _ providers.Source = (*Source)(nil)

func New(cfg Config, canon *normalize.Canonicalizer, f Fetcher, log Logger) *Source {
	if cfg.Platform == "" {
		cfg.Platform = DefaultPlatform
	}
	if cfg.ClaimType == 0 {
		cfg.ClaimType = DefaultClaimType
	}
	if cfg.ChapterShape == "" {
		cfg.ChapterShape = ShapeWeb
	}
	if log == nil {
		log = nopLogger{}
	}

	times := timeparse.New()
	if cfg.Now != nil {
		times.Now = cfg.Now
	}

	return &Source{
		cfg:      cfg,
		canon:    canon,
		fetch:    f,
		times:    times,
		sanitize: bluemonday.UGCPolicy(),
		log:      log,
	}
}

func (s *Source) id(value string) platform.ID {
	return platform.ID{
		Platform:  s.cfg.Platform,
		Value:     value,
		PluginID:  s.cfg.SourceID,
		ClaimType: s.cfg.ClaimType,
	}
}

// author links a chapter to its series. The identity is the channel slug.
func (s *Source) author(channelURL, name, thumb string) (platform.AuthorLink, error) {
	slug, err := normalize.ChannelSlug(channelURL)
	if err != nil {
		return platform.AuthorLink{}, err
	}
	return platform.AuthorLink{
		ID:        s.id(slug),
		Name:      name,
		URL:       channelURL,
		Thumbnail: thumb,
	}, nil
}

func (s *Source) chapter(author platform.AuthorLink, name, href string, published int64) (platform.Content, error) {
	url, err := s.canon.ChapterID(href)
	if err != nil {
		return nil, err
	}

	if s.cfg.ChapterShape == ShapePost {
		return &platform.Post{
			ID:          s.id(url),
			Author:      author,
			Name:        name,
			Datetime:    published,
			Description: chapterDescription,
		}, nil
	}
	return &platform.WebItem{
		ID:       s.id(url),
		Author:   author,
		Name:     name,
		Datetime: published,
		URL:      url,
	}, nil
}

func (s *Source) get(ctx context.Context, url, label string) (*extract.Document, error) {
	res, err := s.fetch.Get(ctx, url)
	if err != nil {
		return nil, err
	}
	return extract.Parse(res.Body, label)
}

func (s *Source) post(ctx context.Context, url, body, label string) (*extract.Document, error) {
	res, err := s.fetch.Post(ctx, url, body)
	if err != nil {
		return nil, err
	}
	return extract.Parse(res.Body, label)
}

func (s *Source) fail(op string, err error) error {
	s.log.Errorf("%s: %v", op, err)
	return err
}

func (s *Source) skipped(op string, failed []extract.ItemError) {
	for _, f := range failed {
		s.log.Warnf("%s item[%d] skipped: %v", op, f.Index, f.Err)
	}
}

// unique drops repeated identities, keeping the first occurrence.
func (s *Source) unique(op string, items []platform.Content) []platform.Content {
	seen := make(map[string]bool, len(items))
	out := make([]platform.Content, 0, len(items))
	for _, it := range items {
		id := it.ContentID().Value
		if seen[id] {
			s.log.Debugf("%s duplicate %s dropped", op, id)
			continue
		}
		seen[id] = true
		out = append(out, it)
	}
	return out
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any) {}
func (nopLogger) Infof(string, ...any)  {}
func (nopLogger) Warnf(string, ...any)  {}
func (nopLogger) Errorf(string, ...any) {}
