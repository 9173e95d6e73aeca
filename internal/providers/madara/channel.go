package madara

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/brogergvhs/manhuafast/internal/chapters"
	"github.com/brogergvhs/manhuafast/internal/extract"
	"github.com/brogergvhs/manhuafast/internal/normalize"
	"github.com/brogergvhs/manhuafast/internal/platform"
	"github.com/brogergvhs/manhuafast/internal/providers"
)

const chapterListPath = "ajax/chapters/"

func (s *Source) IsChannelURL(ref platform.Ref) bool {
	u := strings.TrimSpace(platform.URLOf(ref))
	ok := s.canon.IsChannelURL(u)
	s.log.Debugf("isChannelUrl url=%s match=%t", u, ok)
	return ok
}

func (s *Source) GetChannel(ctx context.Context, ref platform.Ref) (*platform.Channel, error) {
	const op = "getChannel"

	url := s.canon.Ref(ref)
	s.log.Debugf("%s url=%s", op, url)

	slug, err := normalizeSlug(url, op)
	if err != nil {
		return nil, s.fail(op, err)
	}

	doc, err := s.get(ctx, url, op)
	if err != nil {
		return nil, s.fail(op, err)
	}

	h1, err := extract.RequireElement(doc.Root(), "h1", op)
	if err != nil {
		return nil, s.fail(op, err)
	}
	name, err := extract.RequireText(h1, op+" h1")
	if err != nil {
		return nil, s.fail(op, err)
	}

	thumb, err := s.summaryThumb(doc, op, ".tab-summary img", ".summary_image img")
	if err != nil {
		return nil, s.fail(op, err)
	}

	ch := &platform.Channel{
		ID:          s.id(slug),
		Name:        name,
		Thumbnail:   thumb,
		Description: extract.OptionalText(doc.Root(), ".summary__content"),
		URL:         url,
	}
	s.log.Infof("%s name=%q id=%s", op, ch.Name, ch.ID.Value)
	return ch, nil
}

func (s *Source) ChannelCapabilities() platform.Capabilities {
	return platform.Capabilities{
		Types:   []string{platform.FeedMixed},
		Sorts:   []string{platform.OrderChronological, platform.OrderOldest},
		Filters: []string{},
	}
}

// GetChannelContents reads the series page for its name and cover, then
// POSTs to the theme's chapter list endpoint. Chapters arrive newest first;
// q.Order "oldest" reverses them.
func (s *Source) GetChannelContents(ctx context.Context, ref platform.Ref, q providers.Query) (*platform.ContentPager, error) {
	const op = "getChannelContents"

	url := s.canon.Ref(ref)
	s.log.Debugf("%s url=%s type=%s order=%s", op, url, q.Type, q.Order)

	doc, err := s.get(ctx, url, op)
	if err != nil {
		return nil, s.fail(op, err)
	}

	h1, err := extract.RequireElement(doc.Root(), "h1", op)
	if err != nil {
		return nil, s.fail(op, err)
	}
	title, err := extract.RequireText(h1, op+" h1")
	if err != nil {
		return nil, s.fail(op, err)
	}
	thumb, err := s.summaryThumb(doc, op+" summary", ".summary_image img", ".tab-summary img")
	if err != nil {
		return nil, s.fail(op, err)
	}

	author, err := s.author(url, title, thumb)
	if err != nil {
		return nil, s.fail(op, err)
	}

	listURL := strings.TrimRight(url, "/") + "/" + chapterListPath
	s.log.Debugf("%s chapter list url=%s", op, listURL)

	list, err := s.post(ctx, listURL, "", op+" chapters")
	if err != nil {
		return nil, s.fail(op, err)
	}

	items, err := extract.RequireElements(list.Root(), "li", op+" chapters")
	if err != nil {
		return nil, s.fail(op, err)
	}
	s.log.Debugf("%s chapter count=%d", op, items.Length())

	out, failed := extract.MapItems(items, func(i int, li *goquery.Selection) (platform.Content, error) {
		return s.listItem(author, li, fmt.Sprintf("%s chapter[%d]", op, i))
	})
	s.skipped(op, failed)

	out = chapters.ParseOrder(q.Order).Apply(s.unique(op, out))

	s.log.Infof("%s returning %d chapters", op, len(out))
	return &platform.ContentPager{
		Items:        out,
		Continuation: q.Continuation,
		Context:      map[string]string{"order": q.Order},
	}, nil
}

func (s *Source) listItem(author platform.AuthorLink, li *goquery.Selection, ctx string) (platform.Content, error) {
	a, err := extract.RequireElement(li, "a", ctx)
	if err != nil {
		return nil, err
	}
	name, err := extract.RequireText(a, ctx+" text")
	if err != nil {
		return nil, err
	}
	href, err := extract.RequireAttr(a, "href", ctx+" href")
	if err != nil {
		return nil, err
	}

	var published int64
	if i, ok := extract.OptionalElement(li, "i"); ok {
		date, err := extract.RequireText(i, ctx+" date")
		if err != nil {
			return nil, err
		}
		published = s.times.Parse(date)
	}

	return s.chapter(author, name, href, published)
}

// summaryThumb is optional, but a cover element without a source is an
// extraction failure.
func (s *Source) summaryThumb(doc *extract.Document, ctx string, selectors ...string) (string, error) {
	img, ok := extract.OptionalElement(doc.Root(), selectors...)
	if !ok {
		return "", nil
	}
	src, err := extract.RequireImageSrc(img, ctx+" img")
	if err != nil {
		return "", err
	}
	return s.canon.Canonicalize(src), nil
}

func normalizeSlug(url, ctx string) (string, error) {
	slug, err := normalize.ChannelSlug(url)
	if err != nil {
		return "", fmt.Errorf("%s: %w", ctx, err)
	}
	return slug, nil
}
