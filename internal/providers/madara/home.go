package madara

import (
	"context"
	"fmt"

	"github.com/PuerkitoBio/goquery"

	"github.com/brogergvhs/manhuafast/internal/extract"
	"github.com/brogergvhs/manhuafast/internal/platform"
)

// GetHome lists the latest chapter of every series on the front page.
// The site has no paging; the continuation is echoed back.
func (s *Source) GetHome(ctx context.Context, continuation string) (*platform.ContentPager, error) {
	const op = "getHome"

	home := s.canon.Primary() + "/"
	s.log.Debugf("%s url=%s continuation=%q", op, home, continuation)

	doc, err := s.get(ctx, home, op)
	if err != nil {
		return nil, s.fail(op, err)
	}

	items, err := extract.RequireElements(doc.Root(), ".page-item-detail", op)
	if err != nil {
		return nil, s.fail(op, err)
	}
	s.log.Debugf("%s found items=%d", op, items.Length())

	out, failed := extract.MapItems(items, func(i int, item *goquery.Selection) (platform.Content, error) {
		return s.homeItem(item, fmt.Sprintf("%s item[%d]", op, i))
	})
	s.skipped(op, failed)
	out = s.unique(op, out)

	s.log.Infof("%s returning %d items", op, len(out))
	return &platform.ContentPager{Items: out, Continuation: continuation}, nil
}

func (s *Source) homeItem(item *goquery.Selection, ctx string) (platform.Content, error) {
	series, err := extract.RequireElement(item, ".post-title a", ctx)
	if err != nil {
		return nil, err
	}
	latest, err := extract.RequireElement(item, ".chapter-item .chapter a", ctx)
	if err != nil {
		return nil, err
	}

	seriesName, err := extract.RequireText(series, ctx+" manga")
	if err != nil {
		return nil, err
	}
	seriesHref, err := extract.RequireAttr(series, "href", ctx+" manga href")
	if err != nil {
		return nil, err
	}
	chapterName, err := extract.RequireText(latest, ctx+" chapter")
	if err != nil {
		return nil, err
	}
	chapterHref, err := extract.RequireAttr(latest, "href", ctx+" chapter href")
	if err != nil {
		return nil, err
	}

	postOn, err := extract.RequireElement(item, ".post-on", ctx)
	if err != nil {
		return nil, err
	}
	postedText, err := extract.RequireText(postOn, ctx+" post-on")
	if err != nil {
		return nil, err
	}

	img, err := extract.RequireElement(item, "img", ctx)
	if err != nil {
		return nil, err
	}
	thumb, err := extract.RequireImageSrc(img, ctx+" img")
	if err != nil {
		return nil, err
	}

	author, err := s.author(s.canon.Canonicalize(seriesHref), seriesName, s.canon.Canonicalize(thumb))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ctx, err)
	}

	return s.chapter(author, chapterName, chapterHref, s.times.Parse(postedText))
}
