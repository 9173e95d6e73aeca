package cmd

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/brogergvhs/manhuafast/internal/platform"
	"github.com/brogergvhs/manhuafast/internal/sourceerr"
)

const seriesPage = `<html><body>
<h1>Solo Leveling</h1>
<div class="summary_image"><img data-src="https://cdn.test/solo.jpg"></div>
</body></html>`

const chapterList = `<ul>
<li><a href="{{BASE}}/manga/solo-leveling/chapter-3/">Chapter 3</a><i>January 7, 2024</i></li>
<li><a href="{{BASE}}/manga/solo-leveling/chapter-2/">Chapter 2</a><i>January 6, 2024</i></li>
<li><a href="{{BASE}}/manga/solo-leveling/chapter-1/">Chapter 1</a><i>January 5, 2024</i></li>
</ul>`

func newSeriesServer(t *testing.T) *httptest.Server {
	t.Helper()
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method + " " + r.URL.Path {
		case "GET /manga/solo-leveling/":
			_, _ = io.WriteString(w, seriesPage)
		case "POST /manga/solo-leveling/ajax/chapters/":
			_, _ = io.WriteString(w, strings.ReplaceAll(chapterList, "{{BASE}}", srv.URL))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func resetFlags() {
	flagIgnoreConfig, flagDebug = false, false
	flagPrimary, flagFallback, flagShape = "", "", ""
	flagCookie, flagCookieFile, flagUserAgent = "", "", ""
	flagCloudflareBypass = false
	flagOrder, flagChapter, flagRange, flagList = "", "", "", ""
	flagChaptersYAML, flagOutput, flagDetails = false, "", false
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags()
	t.Cleanup(resetFlags)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestChaptersCommandOldestRange(t *testing.T) {
	srv := newSeriesServer(t)

	out, err := run(t, "--ignore-config", "--primary", srv.URL,
		"chapters", srv.URL+"/manga/solo-leveling/", "--order", "oldest", "--range", "1-2")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "CHAPTER")
	assert.Contains(t, lines[1], "Chapter 1")
	assert.Contains(t, lines[1], "2024-01-05")
	assert.Contains(t, lines[2], "Chapter 2")
}

func TestChaptersCommandRejectsForeignURL(t *testing.T) {
	srv := newSeriesServer(t)

	_, err := run(t, "--ignore-config", "--primary", srv.URL, "chapters", "https://example.com/manga/x/")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a series URL")
}

func TestExportCommandWritesYAML(t *testing.T) {
	srv := newSeriesServer(t)
	dir := t.TempDir()

	_, err := run(t, "--ignore-config", "--primary", srv.URL,
		"export", srv.URL+"/manga/solo-leveling/", "--output", dir, "--chapter", "Chapter 2")
	require.NoError(t, err)

	raw, err := os.ReadFile(filepath.Join(dir, "solo_leveling.yaml"))
	require.NoError(t, err)

	var got struct {
		Channel struct {
			Name string `yaml:"name"`
		} `yaml:"channel"`
		Order    string `yaml:"order"`
		Chapters []struct {
			Name string `yaml:"name"`
			URL  string `yaml:"url"`
		} `yaml:"chapters"`
	}
	require.NoError(t, yaml.Unmarshal(raw, &got))

	assert.Equal(t, "Solo Leveling", got.Channel.Name)
	assert.Equal(t, "newest", got.Order)
	require.Len(t, got.Chapters, 1)
	assert.Equal(t, "Chapter 2", got.Chapters[0].Name)
	assert.Equal(t, srv.URL+"/manga/solo-leveling/chapter-2/", got.Chapters[0].URL)
}

func TestReportErrorChallenge(t *testing.T) {
	var buf bytes.Buffer
	reportError(&buf, sourceerr.Challenge("GET", "https://manhuafast.net/manga/x/", 403))

	lines := strings.Split(buf.String(), "\n")
	assert.Equal(t, sourceerr.ChallengeSignal, lines[0])
	assert.Contains(t, buf.String(), "https://manhuafast.net/manga/x/")

	buf.Reset()
	reportError(&buf, io.ErrUnexpectedEOF)
	assert.Equal(t, "Error: unexpected EOF\n", buf.String())
}

func TestContentURL(t *testing.T) {
	id := platform.ID{Value: "https://manhuafast.net/manga/x/chapter-1/"}

	assert.Equal(t, id.Value, contentURL(&platform.Post{ID: id}))
	assert.Equal(t, "https://m/1", contentURL(&platform.WebItem{ID: id, URL: "https://m/1"}))
	assert.Equal(t, "-", formatTime(0))
}
