package madara

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/brogergvhs/manhuafast/internal/extract"
	"github.com/brogergvhs/manhuafast/internal/platform"
	"github.com/brogergvhs/manhuafast/internal/providers"
)

// Search over chapters is not offered by the site; the result is always an
// empty page.
func (s *Source) Search(_ context.Context, q providers.Query) (*platform.ContentPager, error) {
	s.log.Debugf("search query=%q type=%s order=%s", q.Text, q.Type, q.Order)
	return platform.EmptyPager[platform.Content](q.Continuation, map[string]string{
		"query": q.Text,
		"type":  q.Type,
		"order": q.Order,
	}), nil
}

func (s *Source) SearchSuggestions(context.Context, string) ([]string, error) {
	return []string{}, nil
}

func (s *Source) SearchCapabilities() platform.Capabilities {
	return platform.Capabilities{
		Types:   []string{platform.FeedMixed},
		Sorts:   []string{platform.OrderChronological},
		Filters: []string{},
	}
}

// SearchChannels runs the theme's series search. No matches is an empty
// page, not an error.
func (s *Source) SearchChannels(ctx context.Context, query, continuation string) (*platform.ChannelPager, error) {
	const op = "searchChannels"

	pagerCtx := map[string]string{"query": query}
	query = strings.TrimSpace(query)
	if query == "" {
		return platform.EmptyPager[platform.Channel](continuation, pagerCtx), nil
	}

	v := url.Values{}
	v.Set("s", query)
	v.Set("post_type", "wp-manga")
	searchURL := s.canon.Primary() + "/?" + v.Encode()

	doc, err := s.get(ctx, searchURL, op)
	if err != nil {
		return nil, s.fail(op, err)
	}

	anchors := doc.Root().Find(".post-title a")
	s.log.Debugf("%s query=%q anchors=%d", op, query, anchors.Length())
	if anchors.Length() == 0 {
		return platform.EmptyPager[platform.Channel](continuation, pagerCtx), nil
	}

	out, failed := extract.MapItems(anchors, func(i int, a *goquery.Selection) (platform.Channel, error) {
		return s.searchResult(a, fmt.Sprintf("%s[%d]", op, i))
	})
	s.skipped(op, failed)

	s.log.Infof("%s returning %d channels", op, len(out))
	return &platform.ChannelPager{Items: out, Continuation: continuation, Context: pagerCtx}, nil
}

func (s *Source) searchResult(a *goquery.Selection, ctx string) (platform.Channel, error) {
	href, err := extract.RequireAttr(a, "href", ctx+" href")
	if err != nil {
		return platform.Channel{}, err
	}
	name, err := extract.RequireText(a, ctx+" text")
	if err != nil {
		return platform.Channel{}, err
	}

	channelURL := s.canon.Canonicalize(href)
	slug, err := normalizeSlug(channelURL, ctx)
	if err != nil {
		return platform.Channel{}, err
	}

	var thumb string
	row := a.Closest(".c-tabs-item__content, .row")
	if img, ok := extract.OptionalElement(row, "img"); ok {
		if src, ok := extract.OptionalImageSrc(img); ok {
			thumb = s.canon.Canonicalize(src)
		}
	}

	return platform.Channel{
		ID:        s.id(slug),
		Name:      name,
		Thumbnail: thumb,
		URL:       channelURL,
	}, nil
}
