package madara

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/brogergvhs/manhuafast/internal/extract"
	"github.com/brogergvhs/manhuafast/internal/normalize"
	"github.com/brogergvhs/manhuafast/internal/platform"
)

// IsContentDetailsURL claims chapter URLs, except those marked for the
// external browser.
func (s *Source) IsContentDetailsURL(ref platform.Ref) bool {
	u := s.canon.Ref(ref)
	if normalize.HasExternalMarker(u) {
		s.log.Debugf("isContentDetailsUrl url=%s match=false (external marker)", u)
		return false
	}
	ok := s.canon.IsChapterURL(u)
	s.log.Debugf("isContentDetailsUrl url=%s match=%t", u, ok)
	return ok
}

// GetContentDetails returns an HTML post linking to the chapter in the
// browser, plus the page images found in the reader.
func (s *Source) GetContentDetails(ctx context.Context, ref platform.Ref) (*platform.PostDetails, error) {
	const op = "getContentDetails"

	url := s.canon.Ref(ref)
	s.log.Debugf("%s url=%s", op, url)

	if !s.canon.IsChapterURL(url) {
		return nil, s.fail(op, fmt.Errorf("%w: %s", ErrNotChapter, url))
	}

	doc, err := s.get(ctx, url, op)
	if err != nil {
		return nil, s.fail(op, err)
	}
	root := doc.Root()

	title := chapterTitle(doc, url)

	channelURL, channelName := s.breadcrumbChannel(doc)
	if channelURL == "" {
		channelURL, err = s.canon.ChannelURLOf(url)
		if err != nil {
			return nil, s.fail(op, err)
		}
	}
	if channelName == "" {
		channelName = s.cfg.Platform
	}

	var thumb string
	if og, ok := extract.OptionalElement(root, `meta[property="og:image"]`); ok {
		if content, err := extract.RequireAttr(og, "content", "og:image"); err == nil {
			thumb = s.canon.Canonicalize(content)
		}
	}

	author, err := s.author(channelURL, channelName, thumb)
	if err != nil {
		return nil, s.fail(op, err)
	}

	pages := newGallery(url, s.canon.Canonicalize)
	pages.Scan(root.Find(".reading-content img"))
	if pages.skipped > 0 {
		s.log.Debugf("%s skipped %d decorative images", op, pages.skipped)
	}

	details := &platform.PostDetails{
		Post: platform.Post{
			ID:          s.id(url),
			Author:      author,
			Name:        title,
			URL:         url,
			Description: chapterDescription,
		},
		Content:  s.sanitize.Sanitize(body(title, url)),
		TextType: platform.TextHTML,
		Images:   pages.Pages(),
	}

	s.log.Infof("%s name=%q images=%d", op, details.Name, len(details.Images))
	return details, nil
}

func chapterTitle(doc *extract.Document, url string) string {
	for _, sel := range []string{"h1", ".post-title h1", "#chapter-heading"} {
		if t := extract.OptionalText(doc.Root(), sel); t != "" {
			return t
		}
	}

	if i := strings.IndexAny(url, "?#"); i >= 0 {
		url = url[:i]
	}
	parts := strings.FieldsFunc(url, func(r rune) bool { return r == '/' })
	if len(parts) > 0 {
		return parts[len(parts)-1]
	}
	return "Chapter"
}

// breadcrumbChannel picks the deepest breadcrumb link that points at a
// series page.
func (s *Source) breadcrumbChannel(doc *extract.Document) (string, string) {
	links := doc.Root().Find(".breadcrumb a")
	for i := links.Length() - 1; i >= 0; i-- {
		a := links.Eq(i)
		ctx := fmt.Sprintf("breadcrumb[%d]", i)

		href, err := extract.RequireAttr(a, "href", ctx)
		if err != nil {
			s.log.Debugf("getContentDetails %v", err)
			continue
		}
		href = s.canon.Canonicalize(href)
		if !s.canon.IsChannelURL(href) {
			continue
		}
		name, err := extract.RequireText(a, ctx+" text")
		if err != nil || name == "" {
			return href, ""
		}
		return href, name
	}
	return "", ""
}

func body(title, chapterURL string) string {
	var b strings.Builder
	b.WriteString(`<div>`)
	b.WriteString(`<p><b>` + html.EscapeString(title) + `</b></p>`)
	b.WriteString(`<p>Open chapter in browser:</p>`)
	b.WriteString(`<p><a href="` + html.EscapeString(normalize.WithExternalMarker(chapterURL)) + `">Read chapter</a></p>`)
	b.WriteString(`</div>`)
	return b.String()
}

// GetComments is not supported by the site.
func (s *Source) GetComments(_ context.Context, ref platform.Ref, continuation string) (*platform.CommentPager, error) {
	s.log.Debugf("getComments url=%s", s.canon.Ref(ref))
	return platform.EmptyPager[platform.Comment](continuation, nil), nil
}
