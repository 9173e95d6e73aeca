package sourceerr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChallengeErrorIsExactSignal(t *testing.T) {
	err := Challenge("GET", "https://manhuafast.net/", 403)

	assert.Equal(t, ChallengeSignal, err.Error())
	assert.ErrorIs(t, err, ErrChallengeRequired)
	assert.NotErrorIs(t, err, ErrFetch)
}

func TestKindOfWrapped(t *testing.T) {
	wrapped := fmt.Errorf("getChannel: %w", Extraction("h1", "getChannel"))

	assert.Equal(t, KindExtraction, KindOf(wrapped))
	assert.True(t, errors.Is(wrapped, ErrExtraction))
	assert.Equal(t, KindUnknown, KindOf(errors.New("plain")))
}

func TestFetchMessageNamesBothURLs(t *testing.T) {
	err := &Error{
		Kind:        KindFetch,
		Method:      "GET",
		URL:         "https://a.test/x",
		FallbackURL: "https://b.test/x",
		Status:      503,
	}

	msg := err.Error()
	assert.Contains(t, msg, "https://a.test/x")
	assert.Contains(t, msg, "https://b.test/x")
	assert.Contains(t, msg, "503")
}

func TestExtractionMessage(t *testing.T) {
	el := Extraction(".post-title a", "getHome item[3]")
	assert.Equal(t, "element not found '.post-title a' in getHome item[3]", el.Error())

	attr := Extraction("[href]", "chapter[2] href")
	attr.Err = AttrMissing("href")
	assert.Contains(t, attr.Error(), "attribute missing '[href]' in chapter[2] href")
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "fetch", KindFetch.String())
	assert.Equal(t, "challenge", KindChallenge.String())
	assert.Equal(t, "parse", KindParse.String())
	assert.Equal(t, "extraction", KindExtraction.String())
	assert.Equal(t, "unknown", Kind(42).String())
}
