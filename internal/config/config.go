package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/brogergvhs/manhuafast/internal/normalize"
)

const (
	DefaultPrimaryURL  = "https://manhuafast.net"
	DefaultFallbackURL = "https://manhuafast.com"

	// EnvPrefix prefixes environment overrides, e.g. MANHUAFAST_PRIMARY_URL.
	EnvPrefix = "MANHUAFAST"
)

type Config struct {
	SourceID string `yaml:"source_id"`
	Platform string `yaml:"platform"`

	PrimaryURL  string `yaml:"primary_url"`
	FallbackURL string `yaml:"fallback_url"`

	ChapterShape string `yaml:"chapter_shape"`
	DefaultOrder string `yaml:"default_order"`

	Output string `yaml:"output"`
	Debug  bool   `yaml:"debug"`

	Cookie           string   `yaml:"cookie"`
	CookieFile       string   `yaml:"cookie_file"`
	UserAgent        string   `yaml:"user_agent"`
	CloudflareBypass bool     `yaml:"cloudflare_bypass"`
	ChallengeMarkers []string `yaml:"challenge_markers,omitempty"`
}

type Options struct {
	IgnoreConfig     bool
	Debug            bool
	Output           string
	PrimaryURL       string
	FallbackURL      string
	ChapterShape     string
	Order            string
	Cookie           string
	CookieFile       string
	UserAgent        string
	CloudflareBypass bool
}

func DefaultConfig() *Config {
	return &Config{
		Platform:     "ManhuaFast",
		PrimaryURL:   DefaultPrimaryURL,
		FallbackURL:  DefaultFallbackURL,
		ChapterShape: "web",
		DefaultOrder: "newest",
		Output:       ".",
	}
}

func SaveYAML(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

func loadYAML(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	c := DefaultConfig()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, err
	}

	return c, nil
}

// LoadMerged resolves the effective config: the active profile (or the
// defaults), then MANHUAFAST_* environment variables, then CLI flags.
// IgnoreConfig skips both the profile and the environment.
// The second return value describes where the base values came from.
func LoadMerged(opts Options) (*Config, string, error) {
	cfg, used, err := loadBase(opts.IgnoreConfig)
	if err != nil {
		return nil, "", err
	}

	if !opts.IgnoreConfig {
		applyEnv(cfg)
	}
	mergeConfig(cfg, opts)
	normalizeDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, "", fmt.Errorf("invalid config (%s): %w", strings.TrimSpace(used), err)
	}

	return cfg, used, nil
}

func loadBase(ignore bool) (*Config, string, error) {
	if ignore {
		return DefaultConfig(), "(ignored config)", nil
	}

	activePath, err := ActiveConfigPath()
	if errors.Is(err, ErrNoConfig) || (err == nil && activePath == "") {
		return DefaultConfig(), "(default config in memory)\nRun `manhuafast config init` to create an actual config\n", nil
	}
	if err != nil {
		return nil, "", err
	}

	cfg, err := loadYAML(activePath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load config %s: %w", activePath, err)
	}
	return cfg, activePath, nil
}

var envKeys = []string{
	"source_id",
	"platform",
	"primary_url",
	"fallback_url",
	"chapter_shape",
	"default_order",
	"output",
	"debug",
	"cookie",
	"cookie_file",
	"user_agent",
	"cloudflare_bypass",
}

func applyEnv(c *Config) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	for _, k := range envKeys {
		_ = v.BindEnv(k)
	}

	setString := func(key string, dst *string) {
		if v.IsSet(key) {
			*dst = v.GetString(key)
		}
	}
	setBool := func(key string, dst *bool) {
		if v.IsSet(key) {
			*dst = v.GetBool(key)
		}
	}

	setString("source_id", &c.SourceID)
	setString("platform", &c.Platform)
	setString("primary_url", &c.PrimaryURL)
	setString("fallback_url", &c.FallbackURL)
	setString("chapter_shape", &c.ChapterShape)
	setString("default_order", &c.DefaultOrder)
	setString("output", &c.Output)
	setBool("debug", &c.Debug)
	setString("cookie", &c.Cookie)
	setString("cookie_file", &c.CookieFile)
	setString("user_agent", &c.UserAgent)
	setBool("cloudflare_bypass", &c.CloudflareBypass)
}

func mergeConfig(c *Config, o Options) {
	if o.Output != "" {
		c.Output = o.Output
	}
	if o.Debug {
		c.Debug = true
	}
	if o.PrimaryURL != "" {
		c.PrimaryURL = o.PrimaryURL
	}
	if o.FallbackURL != "" {
		c.FallbackURL = o.FallbackURL
	}
	if o.ChapterShape != "" {
		c.ChapterShape = o.ChapterShape
	}
	if o.Order != "" {
		c.DefaultOrder = o.Order
	}
	if o.Cookie != "" {
		c.Cookie = o.Cookie
	}
	if o.CookieFile != "" {
		c.CookieFile = o.CookieFile
	}
	if o.UserAgent != "" {
		c.UserAgent = o.UserAgent
	}
	if o.CloudflareBypass {
		c.CloudflareBypass = true
	}
}

func normalizeDefaults(c *Config) {
	d := DefaultConfig()
	if c.Output == "" {
		c.Output = d.Output
	}
	if c.Platform == "" {
		c.Platform = d.Platform
	}
	if c.PrimaryURL == "" {
		c.PrimaryURL = d.PrimaryURL
	}
	if c.FallbackURL == "" {
		c.FallbackURL = d.FallbackURL
	}
	c.ChapterShape = strings.ToLower(strings.TrimSpace(c.ChapterShape))
	if c.ChapterShape == "" {
		c.ChapterShape = d.ChapterShape
	}
	c.DefaultOrder = strings.ToLower(strings.TrimSpace(c.DefaultOrder))
	if c.DefaultOrder == "" {
		c.DefaultOrder = d.DefaultOrder
	}
}

func (c *Config) Validate() error {
	if _, err := normalize.New(c.PrimaryURL, c.FallbackURL); err != nil {
		return err
	}
	switch c.ChapterShape {
	case "post", "web":
	default:
		return fmt.Errorf("chapter_shape %q: want post or web", c.ChapterShape)
	}
	switch c.DefaultOrder {
	case "newest", "oldest":
	default:
		return fmt.Errorf("default_order %q: want newest or oldest", c.DefaultOrder)
	}
	return nil
}

func (c *Config) Print(w io.Writer) {
	if c.SourceID != "" {
		_, _ = fmt.Fprintf(w, " -source_id: %s\n", c.SourceID)
	}
	_, _ = fmt.Fprintf(w, " -platform: %s\n", c.Platform)
	_, _ = fmt.Fprintf(w, " -primary_url: %s\n", c.PrimaryURL)
	_, _ = fmt.Fprintf(w, " -fallback_url: %s\n", c.FallbackURL)
	_, _ = fmt.Fprintf(w, " -chapter_shape: %s\n", c.ChapterShape)
	_, _ = fmt.Fprintf(w, " -default_order: %s\n", c.DefaultOrder)
	if c.Output != "" {
		_, _ = fmt.Fprintf(w, " -output: %s\n", c.Output)
	}
	if c.Debug {
		_, _ = fmt.Fprintf(w, " -debug: %t\n", c.Debug)
	}
	if c.UserAgent != "" {
		_, _ = fmt.Fprintf(w, " -user_agent: %s\n", c.UserAgent)
	}
	if c.CookieFile != "" {
		_, _ = fmt.Fprintf(w, " -cookie_file: %s\n", c.CookieFile)
	}
	if c.CloudflareBypass {
		_, _ = fmt.Fprintf(w, " -cloudflare_bypass: %t\n", c.CloudflareBypass)
	}
	if len(c.ChallengeMarkers) > 0 {
		_, _ = fmt.Fprintf(w, " -challenge_markers: %s\n", strings.Join(c.ChallengeMarkers, ", "))
	}
}
