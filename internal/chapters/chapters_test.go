package chapters

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brogergvhs/manhuafast/internal/platform"
)

func listing(n int) []platform.Content {
	out := make([]platform.Content, 0, n)
	for i := n; i >= 1; i-- {
		url := fmt.Sprintf("https://manhuafast.net/manga/solo/chapter-%d/", i)
		out = append(out, &platform.WebItem{
			ID:       platform.ID{Platform: "ManhuaFast", Value: url},
			Name:     fmt.Sprintf("Chapter %d", i),
			Datetime: int64(1000 + i),
			URL:      url,
		})
	}
	return out
}

func names(items []platform.Content) []string {
	out := make([]string, 0, len(items))
	for _, c := range items {
		out = append(out, c.ContentName())
	}
	return out
}

func TestOrderApply(t *testing.T) {
	items := listing(4)
	before := names(items)

	oldest := Oldest.Apply(items)
	assert.Equal(t, []string{"Chapter 1", "Chapter 2", "Chapter 3", "Chapter 4"}, names(oldest))
	assert.Equal(t, before, names(items), "input must not be reordered")

	// records are the same values, only their positions change
	assert.Same(t, items[0], oldest[3])

	assert.Equal(t, before, names(Newest.Apply(items)))
	assert.Empty(t, Oldest.Apply(nil))
}

func TestOrderApplyTwiceRestores(t *testing.T) {
	items := listing(5)
	assert.Equal(t, names(items), names(Oldest.Apply(Oldest.Apply(items))))
}

func TestParseOrder(t *testing.T) {
	assert.Equal(t, Oldest, ParseOrder("oldest"))
	assert.Equal(t, Oldest, ParseOrder(" OLDEST "))
	assert.Equal(t, Newest, ParseOrder(platform.OrderChronological))
	assert.Equal(t, Newest, ParseOrder(""))
}

func TestSelect(t *testing.T) {
	all := listing(5) // Chapter 5 .. Chapter 1

	got, err := Select(all, "", "", "")
	require.NoError(t, err)
	assert.Len(t, got, 5)

	got, err = Select(all, "chapter 2", "", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"Chapter 2"}, names(got))

	got, err = Select(all, "2", "", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"Chapter 4"}, names(got))

	_, err = Select(all, "9", "", "")
	assert.Error(t, err)

	_, err = Select(all, "Prologue", "", "")
	assert.Error(t, err)

	got, err = Select(all, "", "2-3", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"Chapter 4", "Chapter 3"}, names(got))

	for _, bad := range []string{"3-2", "0-1", "1-6", "x-2", "1"} {
		_, err = Select(all, "", bad, "")
		assert.Error(t, err, bad)
	}

	got, err = Select(all, "", "", "1, 5,x,,9")
	require.NoError(t, err)
	assert.Equal(t, []string{"Chapter 5", "Chapter 1"}, names(got))
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "solo_leveling", FileName("Solo Leveling"))
	assert.Equal(t, "the_s_classes_that_i_raised", FileName("The S-Classes That I Raised"))
	assert.Equal(t, "vol_1_chapter_2", FileName("Vol. 1 — Chapter (2)"))
	assert.Equal(t, "", FileName("  !!  "))
}
