package madara

import (
	"net/url"
	"path"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/brogergvhs/manhuafast/internal/extract"
)

var (
	reSizeSuffix = regexp.MustCompile(`[-_]\d{2,5}x\d{2,5}`)
	reParseSize  = regexp.MustCompile(`[-_](\d{2,5})x(\d{2,5})`)

	decorative = []string{"logo", "banner", "avatar", "icon", "profile"}
)

type galleryItem struct {
	URL   string
	Order int
}

// gallery collects page images of a chapter in reading order. Theme chrome
// (logos, banners, avatars) and duplicate sizes of one page are dropped.
type gallery struct {
	base    string
	rebase  func(string) string
	items   []galleryItem
	seen    map[string]bool
	skipped int
}

// newGallery resolves image sources against pageURL and passes every
// result through rebase, so mirror-hosted pages come out on the primary.
func newGallery(pageURL string, rebase func(string) string) *gallery {
	if rebase == nil {
		rebase = func(u string) string { return u }
	}
	return &gallery{
		base:   pageURL,
		rebase: rebase,
		items:  make([]galleryItem, 0, 32),
		seen:   make(map[string]bool),
	}
}

func (g *gallery) add(raw string) {
	u := resolve(g.base, strings.TrimSpace(raw))
	if u != "" {
		u = g.rebase(u)
	}
	lu := strings.ToLower(u)
	if u == "" || strings.HasPrefix(lu, "data:") || strings.HasPrefix(lu, "javascript:") {
		return
	}
	if isDecorative(lu) {
		g.skipped++
		return
	}
	if g.seen[u] {
		return
	}
	g.seen[u] = true
	g.items = append(g.items, galleryItem{URL: u, Order: len(g.items)})
}

// Scan adds the preferred source of every image plus its srcset variants.
func (g *gallery) Scan(imgs *goquery.Selection) {
	imgs.Each(func(_ int, img *goquery.Selection) {
		if src, ok := extract.OptionalImageSrc(img); ok {
			g.add(src)
		}
		for _, attr := range []string{"data-srcset", "srcset"} {
			ss, ok := img.Attr(attr)
			if !ok {
				continue
			}
			for p := range strings.SplitSeq(ss, ",") {
				if parts := strings.Fields(p); len(parts) > 0 {
					g.add(parts[0])
				}
			}
		}
	})
}

// Pages returns one URL per page: the unsized original when present,
// otherwise the largest sized variant.
func (g *gallery) Pages() []string {
	if len(g.items) == 0 {
		return []string{}
	}

	groups := map[string][]galleryItem{}
	var keys []string
	for _, it := range g.items {
		k := normalizeBase(it.URL)
		if _, ok := groups[k]; !ok {
			keys = append(keys, k)
		}
		groups[k] = append(groups[k], it)
	}

	chosen := make([]galleryItem, 0, len(keys))
	for _, k := range keys {
		best := pickBest(groups[k])
		best.Order = groups[k][0].Order
		chosen = append(chosen, best)
	}
	sort.SliceStable(chosen, func(i, j int) bool { return chosen[i].Order < chosen[j].Order })

	out := make([]string, len(chosen))
	for i, c := range chosen {
		out[i] = c.URL
	}
	return out
}

func pickBest(items []galleryItem) galleryItem {
	var best galleryItem
	bestArea := -1
	for _, it := range items {
		if !reSizeSuffix.MatchString(it.URL) {
			return it
		}
		w, h := parseWxH(it.URL)
		if w*h > bestArea {
			best, bestArea = it, w*h
		}
	}
	return best
}

// isDecorative only looks at the file name; series slugs may contain the
// same words.
func isDecorative(lowerURL string) bool {
	name := lowerURL
	if u, err := url.Parse(lowerURL); err == nil {
		name = path.Base(u.Path)
	}
	for _, w := range decorative {
		if strings.Contains(name, w) {
			return true
		}
	}
	return false
}

func resolve(base, raw string) string {
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	if u.IsAbs() {
		return u.String()
	}
	b, err := url.Parse(base)
	if err != nil {
		return raw
	}
	return b.ResolveReference(u).String()
}

func normalizeBase(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	ext := path.Ext(u.Path)
	base := strings.TrimSuffix(u.Path, ext)
	base = reSizeSuffix.ReplaceAllString(base, "")
	base = strings.TrimRight(base, "-_")
	return u.Host + base + ext
}

func parseWxH(u string) (int, int) {
	m := reParseSize.FindStringSubmatch(u)
	if m == nil {
		return 0, 0
	}
	w, _ := strconv.Atoi(m[1])
	h, _ := strconv.Atoi(m[2])
	return w, h
}
