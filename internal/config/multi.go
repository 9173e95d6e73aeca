package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
)

const (
	appDir       = "manhuafast"
	profileExt   = ".yaml"
	DefaultLabel = "Default"
)

var (
	ErrNoConfig     = errors.New("no config selected")
	ErrBadLabel     = errors.New("invalid profile label")
	ErrNoSuchConfig = errors.New("config does not exist")
)

// ConfigRoot is APPDATA on Windows, then XDG_CONFIG_HOME, then ~/.config.
func ConfigRoot() string {
	for _, env := range []string{"APPDATA", "XDG_CONFIG_HOME"} {
		if dir := os.Getenv(env); dir != "" {
			return filepath.Join(dir, appDir)
		}
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", appDir)
}

func ConfigsDir() string {
	return filepath.Join(ConfigRoot(), "configs")
}

func CurrentLabelFile() string {
	return filepath.Join(ConfigRoot(), "current_config")
}

func ensureDirs() error {
	return os.MkdirAll(ConfigsDir(), 0755)
}

// ProfilePath maps a label to its file. Labels are plain file names.
func ProfilePath(label string) (string, error) {
	label = strings.TrimSpace(label)
	if label == "" || label == "." || label == ".." || strings.ContainsAny(label, `/\`) {
		return "", fmt.Errorf("%w: %q", ErrBadLabel, label)
	}
	return filepath.Join(ConfigsDir(), label+profileExt), nil
}

func CurrentLabel() (string, error) {
	b, err := os.ReadFile(CurrentLabelFile())
	if errors.Is(err, os.ErrNotExist) {
		return "", ErrNoConfig
	}
	if err != nil {
		return "", err
	}

	label := strings.TrimSpace(string(b))
	if label == "" {
		return "", ErrNoConfig
	}
	return label, nil
}

func ActiveConfigPath() (string, error) {
	label, err := CurrentLabel()
	if err != nil {
		return "", err
	}
	return ProfilePath(label)
}

func setCurrent(label string) error {
	if err := ensureDirs(); err != nil {
		return err
	}
	return os.WriteFile(CurrentLabelFile(), []byte(label), 0644)
}

// ConfigInfo describes one stored profile. Err is set when the file could
// not be read; such profiles are still listed so they can be reset.
type ConfigInfo struct {
	Label  string
	Path   string
	Active bool

	SourceID     string
	PrimaryURL   string
	ChapterShape string
	Err          error
}

func ListConfigs() ([]ConfigInfo, error) {
	if err := ensureDirs(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(ConfigsDir())
	if err != nil {
		return nil, err
	}

	active, _ := CurrentLabel()
	var out []ConfigInfo

	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || filepath.Ext(name) != profileExt {
			continue
		}

		info := ConfigInfo{
			Label: strings.TrimSuffix(name, profileExt),
			Path:  filepath.Join(ConfigsDir(), name),
		}
		info.Active = info.Label == active

		if c, err := loadYAML(info.Path); err != nil {
			info.Err = err
		} else {
			info.SourceID = c.SourceID
			info.PrimaryURL = c.PrimaryURL
			info.ChapterShape = c.ChapterShape
		}
		out = append(out, info)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out, nil
}

func SwitchConfig(label string) error {
	path, err := ProfilePath(label)
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("%w: %s", ErrNoSuchConfig, path)
	}
	return setCurrent(strings.TrimSpace(label))
}

// NewInstallConfig is DefaultConfig with a fresh per-installation source id.
func NewInstallConfig() *Config {
	c := DefaultConfig()
	c.SourceID = uuid.NewString()
	return c
}

// NewProfile stores a new profile under label. With from set, its site and
// request settings are copied; the source id is always fresh so two
// profiles never emit colliding identifiers.
func NewProfile(label string, from *Config) (string, error) {
	path, err := ProfilePath(label)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(path); err == nil {
		return path, fmt.Errorf("config %q: %w", label, os.ErrExist)
	}
	if err := ensureDirs(); err != nil {
		return "", err
	}

	c := NewInstallConfig()
	if from != nil {
		id := c.SourceID
		*c = *from
		c.SourceID = id
		c.ChallengeMarkers = append([]string(nil), from.ChallengeMarkers...)
	}
	return path, SaveYAML(c, path)
}

// ResetConfig rewrites the profile at path with defaults, keeping its
// source id so previously emitted identifiers stay valid.
func ResetConfig(path string) error {
	def := NewInstallConfig()
	if old, err := loadYAML(path); err == nil && old.SourceID != "" {
		def.SourceID = old.SourceID
	}
	return SaveYAML(def, path)
}

// InitDefaultConfig writes Default.yaml and makes it active. An existing
// file is kept and os.ErrExist returned.
func InitDefaultConfig() (string, error) {
	path, err := NewProfile(DefaultLabel, nil)
	if err != nil && !errors.Is(err, os.ErrExist) {
		return "", err
	}
	if serr := setCurrent(DefaultLabel); serr != nil {
		return "", serr
	}
	return path, err
}
