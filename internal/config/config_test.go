package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("APPDATA", "")
	t.Setenv("XDG_CONFIG_HOME", dir)
	for _, k := range envKeys {
		t.Setenv(EnvPrefix+"_"+strings.ToUpper(k), "")
		require.NoError(t, os.Unsetenv(EnvPrefix+"_"+strings.ToUpper(k)))
	}
	return filepath.Join(dir, "manhuafast")
}

func TestLoadMergedWithoutProfile(t *testing.T) {
	isolate(t)

	cfg, used, err := LoadMerged(Options{})
	require.NoError(t, err)
	assert.Contains(t, used, "default config in memory")
	assert.Equal(t, DefaultPrimaryURL, cfg.PrimaryURL)
	assert.Equal(t, DefaultFallbackURL, cfg.FallbackURL)
	assert.Equal(t, "web", cfg.ChapterShape)
	assert.Equal(t, "newest", cfg.DefaultOrder)
}

func TestInitDefaultConfigGeneratesSourceID(t *testing.T) {
	root := isolate(t)

	path, err := InitDefaultConfig()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "configs", "Default.yaml"), path)

	cfg, used, err := LoadMerged(Options{})
	require.NoError(t, err)
	assert.Equal(t, path, used)
	_, err = uuid.Parse(cfg.SourceID)
	assert.NoError(t, err)

	_, err = InitDefaultConfig()
	assert.ErrorIs(t, err, os.ErrExist)

	label, err := CurrentLabel()
	require.NoError(t, err)
	assert.Equal(t, "Default", label)
}

func TestResetKeepsSourceID(t *testing.T) {
	isolate(t)

	path, err := InitDefaultConfig()
	require.NoError(t, err)
	before, err := loadYAML(path)
	require.NoError(t, err)

	before.ChapterShape = "post"
	require.NoError(t, SaveYAML(before, path))

	require.NoError(t, ResetConfig(path))
	after, err := loadYAML(path)
	require.NoError(t, err)
	assert.Equal(t, before.SourceID, after.SourceID)
	assert.Equal(t, "web", after.ChapterShape)
}

func TestPrecedenceFileEnvFlags(t *testing.T) {
	isolate(t)

	path, err := InitDefaultConfig()
	require.NoError(t, err)
	cfg, err := loadYAML(path)
	require.NoError(t, err)
	cfg.ChapterShape = "post"
	cfg.UserAgent = "from-file"
	require.NoError(t, SaveYAML(cfg, path))

	t.Setenv("MANHUAFAST_USER_AGENT", "from-env")
	t.Setenv("MANHUAFAST_CLOUDFLARE_BYPASS", "true")

	got, _, err := LoadMerged(Options{})
	require.NoError(t, err)
	assert.Equal(t, "post", got.ChapterShape)
	assert.Equal(t, "from-env", got.UserAgent)
	assert.True(t, got.CloudflareBypass)

	got, _, err = LoadMerged(Options{UserAgent: "from-flag", ChapterShape: "WEB", Order: "Oldest"})
	require.NoError(t, err)
	assert.Equal(t, "from-flag", got.UserAgent)
	assert.Equal(t, "web", got.ChapterShape)
	assert.Equal(t, "oldest", got.DefaultOrder)

	got, used, err := LoadMerged(Options{IgnoreConfig: true})
	require.NoError(t, err)
	assert.Equal(t, "(ignored config)", used)
	assert.Empty(t, got.UserAgent)
	assert.Empty(t, got.SourceID)
}

func TestValidate(t *testing.T) {
	isolate(t)

	tests := []struct {
		name string
		opts Options
	}{
		{"same domains", Options{PrimaryURL: "https://a.test", FallbackURL: "https://a.test/"}},
		{"overlapping domains", Options{PrimaryURL: "https://a.test", FallbackURL: "https://a.test.mirror"}},
		{"relative url", Options{PrimaryURL: "manhuafast.net"}},
		{"bad shape", Options{ChapterShape: "video"}},
		{"bad order", Options{Order: "random"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := LoadMerged(tt.opts)
			assert.Error(t, err)
		})
	}
}

func TestListAndSwitch(t *testing.T) {
	isolate(t)

	_, err := InitDefaultConfig()
	require.NoError(t, err)
	require.NoError(t, SaveYAML(NewInstallConfig(), filepath.Join(ConfigsDir(), "mirror.yaml")))

	list, err := ListConfigs()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Default", list[0].Label)
	assert.True(t, list[0].Active)
	assert.False(t, list[1].Active)

	require.NoError(t, SwitchConfig("mirror"))
	active, err := ActiveConfigPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(ConfigsDir(), "mirror.yaml"), active)

	assert.Error(t, SwitchConfig("missing"))
	assert.Error(t, SwitchConfig(" "))
}

func TestPrint(t *testing.T) {
	var b bytes.Buffer
	c := DefaultConfig()
	c.SourceID = "abc"
	c.CloudflareBypass = true
	c.Print(&b)

	out := b.String()
	assert.Contains(t, out, " -source_id: abc\n")
	assert.Contains(t, out, " -primary_url: https://manhuafast.net\n")
	assert.Contains(t, out, " -cloudflare_bypass: true\n")
	assert.NotContains(t, out, "cookie_file")
}

func TestNewProfile(t *testing.T) {
	isolate(t)

	from := DefaultConfig()
	from.SourceID = "copied-id"
	from.PrimaryURL = "https://a.test"
	from.FallbackURL = "https://b.test"
	from.ChallengeMarkers = []string{"bot check"}

	path, err := NewProfile("alt", from)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(ConfigsDir(), "alt.yaml"), path)

	got, err := loadYAML(path)
	require.NoError(t, err)
	assert.Equal(t, "https://a.test", got.PrimaryURL)
	assert.Equal(t, []string{"bot check"}, got.ChallengeMarkers)
	assert.NotEqual(t, "copied-id", got.SourceID)

	_, err = NewProfile("alt", nil)
	assert.ErrorIs(t, err, os.ErrExist)

	list, err := ListConfigs()
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "https://a.test", list[0].PrimaryURL)
	assert.False(t, list[0].Active)
	assert.NoError(t, list[0].Err)
}

func TestProfileLabels(t *testing.T) {
	isolate(t)

	for _, bad := range []string{"", "  ", "..", "a/b", `a\b`} {
		_, err := ProfilePath(bad)
		assert.ErrorIs(t, err, ErrBadLabel, bad)
	}

	assert.ErrorIs(t, SwitchConfig("nope"), ErrNoSuchConfig)

	_, err := ActiveConfigPath()
	assert.ErrorIs(t, err, ErrNoConfig)
}
