// Package normalize rebases URLs onto the primary domain and derives the
// stable identities of channels and chapters.
package normalize

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/brogergvhs/manhuafast/internal/platform"
)

// ExternalMarker tells the host to open a link in the full browser instead of
// routing it back into the plugin.
const ExternalMarker = "gj_external=1"

var ErrEmptyID = errors.New("empty identity")

type Canonicalizer struct {
	primary string
	mirror  string

	channelRe *regexp.Regexp
	chapterRe *regexp.Regexp
}

// New takes the two site bases, e.g. "https://manhuafast.net" and
// "https://manhuafast.com". Trailing slashes are ignored.
func New(primary, mirror string) (*Canonicalizer, error) {
	primary = strings.TrimRight(strings.TrimSpace(primary), "/")
	mirror = strings.TrimRight(strings.TrimSpace(mirror), "/")

	if err := checkBase(primary); err != nil {
		return nil, fmt.Errorf("primary: %w", err)
	}
	if err := checkBase(mirror); err != nil {
		return nil, fmt.Errorf("mirror: %w", err)
	}
	// either base being a prefix of the other breaks idempotence
	if strings.HasPrefix(primary, mirror) || strings.HasPrefix(mirror, primary) {
		return nil, fmt.Errorf("primary %q and mirror %q overlap", primary, mirror)
	}

	hosts := "(?:" + regexp.QuoteMeta(primary) + "|" + regexp.QuoteMeta(mirror) + ")"

	return &Canonicalizer{
		primary:   primary,
		mirror:    mirror,
		channelRe: regexp.MustCompile(`^` + hosts + `/manga/([^/?#]+)/?$`),
		chapterRe: regexp.MustCompile(`^` + hosts + `/manga/[^/?#]+/[^/?#]+/?(?:[?#].*)?$`),
	}, nil
}

func checkBase(base string) error {
	u, err := url.Parse(base)
	if err != nil {
		return err
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%q is not an absolute http(s) URL", base)
	}
	return nil
}

func (c *Canonicalizer) Primary() string { return c.primary }
func (c *Canonicalizer) Mirror() string  { return c.mirror }

// Canonicalize rewrites a mirror URL onto the primary domain. Anything else
// is returned unchanged.
func (c *Canonicalizer) Canonicalize(u string) string {
	if onBase(u, c.mirror) {
		return c.primary + u[len(c.mirror):]
	}
	return u
}

// Ref coerces a host reference to a canonical URL string.
func (c *Canonicalizer) Ref(r platform.Ref) string {
	return c.Canonicalize(strings.TrimSpace(platform.URLOf(r)))
}

// MirrorOf returns the fallback URL for u, or false when u is not on the
// primary domain.
func (c *Canonicalizer) MirrorOf(u string) (string, bool) {
	if onBase(u, c.primary) {
		return c.mirror + u[len(c.primary):], true
	}
	return "", false
}

// OnMirror reports whether u targets the mirror domain.
func (c *Canonicalizer) OnMirror(u string) bool {
	return onBase(u, c.mirror)
}

// onBase is a prefix match that ends at a host boundary, so
// "https://manhuafast.community" is not on "https://manhuafast.com".
func onBase(u, base string) bool {
	if !strings.HasPrefix(u, base) {
		return false
	}
	if len(u) == len(base) {
		return true
	}
	switch u[len(base)] {
	case '/', '?', '#':
		return true
	}
	return false
}

func (c *Canonicalizer) IsChannelURL(u string) bool {
	return c.channelRe.MatchString(u)
}

func (c *Canonicalizer) IsChapterURL(u string) bool {
	return c.chapterRe.MatchString(u)
}

// ChannelURLOf returns the canonical "<primary>/manga/<slug>/" a chapter or
// channel URL belongs to.
func (c *Canonicalizer) ChannelURLOf(u string) (string, error) {
	slug, err := ChannelSlug(u)
	if err != nil {
		return "", err
	}
	return c.primary + "/manga/" + slug + "/", nil
}

// ChannelSlug is the path segment right after /manga/.
func ChannelSlug(u string) (string, error) {
	_, rest, ok := strings.Cut(u, "/manga/")
	if !ok {
		return "", fmt.Errorf("%w: no /manga/ segment in %q", ErrEmptyID, u)
	}
	if i := strings.IndexAny(rest, "?#"); i >= 0 {
		rest = rest[:i]
	}
	slug, _, _ := strings.Cut(rest, "/")
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return "", fmt.Errorf("%w: empty channel slug in %q", ErrEmptyID, u)
	}
	return slug, nil
}

// ChapterID is the canonical chapter URL. Display titles repeat across
// series, URLs do not.
func (c *Canonicalizer) ChapterID(u string) (string, error) {
	id := c.Canonicalize(strings.TrimSpace(u))
	if id == "" {
		return "", fmt.Errorf("%w: chapter url", ErrEmptyID)
	}
	return id, nil
}

// WithExternalMarker appends the external marker to the query string,
// before any fragment. Applying it twice is a no-op.
func WithExternalMarker(u string) string {
	if u == "" {
		return ""
	}
	if HasExternalMarker(u) {
		return u
	}

	base, frag := u, ""
	if i := strings.Index(u, "#"); i >= 0 {
		base, frag = u[:i], u[i:]
	}

	sep := "?"
	if strings.Contains(base, "?") {
		sep = "&"
	}
	return base + sep + ExternalMarker + frag
}

func HasExternalMarker(u string) bool {
	return strings.Contains(u, ExternalMarker)
}
