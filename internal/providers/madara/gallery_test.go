package madara

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brogergvhs/manhuafast/internal/normalize"
)

func TestGalleryDecorativeMatchesFileNameOnly(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(`
<div class="reading-content">
  <img src="https://cdn.test/silicon-valley/chapter-1/01.png">
  <img src="https://cdn.test/silicon-valley/chapter-1/site-icon.png">
  <img src="data:image/gif;base64,R0lGOD">
  <img src="https://cdn.test/silicon-valley/chapter-1/02_800x1200.png">
  <img src="https://cdn.test/silicon-valley/chapter-1/02.png">
</div>`))
	require.NoError(t, err)

	g := newGallery("https://manhuafast.net/manga/silicon-valley/chapter-1/", nil)
	g.Scan(doc.Find(".reading-content img"))

	assert.Equal(t, 1, g.skipped)
	assert.Equal(t, []string{
		"https://cdn.test/silicon-valley/chapter-1/01.png",
		"https://cdn.test/silicon-valley/chapter-1/02.png",
	}, g.Pages())
}

func TestGalleryEmpty(t *testing.T) {
	g := newGallery("https://manhuafast.net/", nil)
	assert.Equal(t, []string{}, g.Pages())
}

func TestGalleryRebasesMirrorImages(t *testing.T) {
	canon, err := normalize.New("https://manhuafast.net", "https://manhuafast.com")
	require.NoError(t, err)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(`<div class="reading-content">
  <img data-src="https://manhuafast.com/wp-content/uploads/ch-1/01.jpg">
  <img src="https://manhuafast.com/wp-content/uploads/ch-1/01.jpg">
  <img srcset="https://manhuafast.com/wp-content/uploads/ch-1/02-800x1200.jpg 800w">
  <img src="https://manhuafast.community/ch-1/03.jpg">
</div>`))
	require.NoError(t, err)

	g := newGallery("https://manhuafast.com/manga/solo/chapter-1/", canon.Canonicalize)
	g.Scan(doc.Find(".reading-content img"))

	assert.Equal(t, []string{
		"https://manhuafast.net/wp-content/uploads/ch-1/01.jpg",
		"https://manhuafast.net/wp-content/uploads/ch-1/02-800x1200.jpg",
		"https://manhuafast.community/ch-1/03.jpg",
	}, g.Pages())
}
