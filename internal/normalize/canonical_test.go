package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brogergvhs/manhuafast/internal/platform"
)

const (
	primary = "https://manhuafast.net"
	mirror  = "https://manhuafast.com"
)

func newCanon(t *testing.T) *Canonicalizer {
	t.Helper()
	c, err := New(primary, mirror+"/")
	require.NoError(t, err)
	return c
}

func TestCanonicalize(t *testing.T) {
	c := newCanon(t)

	tests := []struct {
		in, want string
	}{
		{mirror + "/manga/solo/", primary + "/manga/solo/"},
		{mirror + "/manga/solo/chapter-1/?style=list#top", primary + "/manga/solo/chapter-1/?style=list#top"},
		{primary + "/manga/solo/", primary + "/manga/solo/"},
		{"https://cdn.example.org/cover.jpg", "https://cdn.example.org/cover.jpg"},
		{mirror, primary},
		{mirror + "?s=solo", primary + "?s=solo"},
		{"https://manhuafast.community/manga/solo/", "https://manhuafast.community/manga/solo/"},
		{"https://manhuafast.com.evil.test/x", "https://manhuafast.com.evil.test/x"},
		{"", ""},
	}

	for _, tt := range tests {
		got := c.Canonicalize(tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		assert.Equal(t, got, c.Canonicalize(got), "idempotent for %q", tt.in)
	}
}

func TestNewRejectsOverlappingBases(t *testing.T) {
	_, err := New("https://site.test", "https://site.test.mirror")
	assert.Error(t, err)

	_, err = New("ftp://a.test", mirror)
	assert.Error(t, err)

	_, err = New(primary, "")
	assert.Error(t, err)
}

func TestMirrorOf(t *testing.T) {
	c := newCanon(t)

	got, ok := c.MirrorOf(primary + "/manga/solo/ajax/chapters/")
	require.True(t, ok)
	assert.Equal(t, mirror+"/manga/solo/ajax/chapters/", got)

	_, ok = c.MirrorOf("https://elsewhere.test/")
	assert.False(t, ok)
}

func TestHostBoundary(t *testing.T) {
	c := newCanon(t)

	_, ok := c.MirrorOf("https://manhuafast.network/manga/solo/")
	assert.False(t, ok)
	assert.False(t, c.OnMirror("https://manhuafast.community/"))

	fb, ok := c.MirrorOf(primary + "#top")
	require.True(t, ok)
	assert.Equal(t, mirror+"#top", fb)
	assert.True(t, c.OnMirror(mirror))
}

func TestURLMatchers(t *testing.T) {
	c := newCanon(t)

	assert.True(t, c.IsChannelURL(primary+"/manga/solo-leveling/"))
	assert.True(t, c.IsChannelURL(mirror+"/manga/solo-leveling"))
	assert.False(t, c.IsChannelURL(primary+"/manga/solo-leveling/chapter-1/"))
	assert.False(t, c.IsChannelURL("https://other.test/manga/x/"))

	assert.True(t, c.IsChapterURL(primary+"/manga/solo-leveling/chapter-1/"))
	assert.True(t, c.IsChapterURL(mirror+"/manga/solo-leveling/chapter-1?style=list"))
	assert.True(t, c.IsChapterURL(primary+"/manga/solo-leveling/chapter-1/#comments"))
	assert.False(t, c.IsChapterURL(primary+"/manga/solo-leveling/"))
	assert.False(t, c.IsChapterURL(primary+"/manga/a/b/c/"))
}

func TestChannelSlug(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: primary + "/manga/solo-leveling/", want: "solo-leveling"},
		{in: primary + "/manga/solo-leveling", want: "solo-leveling"},
		{in: primary + "/manga/solo-leveling/chapter-3/", want: "solo-leveling"},
		{in: primary + "/manga/solo-leveling?x=1", want: "solo-leveling"},
		{in: primary + "/manga/", wantErr: true},
		{in: primary + "/", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ChannelSlug(tt.in)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrEmptyID, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestChannelURLOf(t *testing.T) {
	c := newCanon(t)

	got, err := c.ChannelURLOf(mirror + "/manga/solo/chapter-9/")
	require.NoError(t, err)
	assert.Equal(t, primary+"/manga/solo/", got)
}

func TestChapterIDIsURL(t *testing.T) {
	c := newCanon(t)

	a, err := c.ChapterID(mirror + "/manga/a/chapter-1/")
	require.NoError(t, err)
	b, err := c.ChapterID(primary + "/manga/b/chapter-1/")
	require.NoError(t, err)

	assert.Equal(t, primary+"/manga/a/chapter-1/", a)
	assert.NotEqual(t, a, b)

	_, err = c.ChapterID("  ")
	assert.ErrorIs(t, err, ErrEmptyID)
}

func TestWithExternalMarker(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"https://x/y", "https://x/y?gj_external=1"},
		{"https://x/y#frag", "https://x/y?gj_external=1#frag"},
		{"https://x/y?a=1", "https://x/y?a=1&gj_external=1"},
		{"https://x/y?a=1#frag", "https://x/y?a=1&gj_external=1#frag"},
		{"", ""},
	}

	for _, tt := range tests {
		once := WithExternalMarker(tt.in)
		assert.Equal(t, tt.want, once, tt.in)
		assert.Equal(t, once, WithExternalMarker(once), "idempotent for %q", tt.in)
	}
}

func TestRefCoercion(t *testing.T) {
	c := newCanon(t)
	want := primary + "/manga/solo/"

	refs := []platform.Ref{
		platform.RawURL(mirror + "/manga/solo/"),
		platform.ID{Platform: "ManhuaFast", Value: mirror + "/manga/solo/"},
		&platform.ID{Value: want},
		platform.ContentRef{URL: " " + want + " "},
	}
	for _, r := range refs {
		assert.Equal(t, want, c.Ref(r))
	}

	assert.Equal(t, "", c.Ref(nil))
}
