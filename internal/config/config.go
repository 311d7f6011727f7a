// Package config loads and persists clipper's preferences.
//
// The config file is JSON at a fixed well-known path
// (os.UserConfigDir()/clipper/config.json). Missing keys fall back to
// defaults, unknown keys are ignored, and a corrupt file is treated as
// absent. Saving replaces the file wholesale.
package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// ValidModifiers are the modifier names accepted in hotkey.modifiers.
var ValidModifiers = []string{"command", "option", "control", "shift"}

// Hotkey is the configured activation chord: a single letter plus a set of
// modifier names.
type Hotkey struct {
	Key       string   `json:"key" mapstructure:"key"`
	Modifiers []string `json:"modifiers" mapstructure:"modifiers"`
}

// Config is the full application configuration.
type Config struct {
	Hotkey     Hotkey `json:"hotkey" mapstructure:"hotkey"`
	MaxItems   int    `json:"max_items" mapstructure:"max_items"`
	RunAtLogin bool   `json:"run_at_login" mapstructure:"run_at_login"`
	Theme      string `json:"theme" mapstructure:"theme"`
}

// Default returns the built-in configuration: ⌘⌥V, 50 items, login item on,
// system theme.
func Default() *Config {
	return &Config{
		Hotkey: Hotkey{
			Key:       "V",
			Modifiers: []string{"command", "option"},
		},
		MaxItems:   50,
		RunAtLogin: true,
		Theme:      "system",
	}
}

// Dir returns the directory holding the config and pinned-history files.
func Dir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		base = os.TempDir()
	}
	return filepath.Join(base, "clipper")
}

// Path returns the well-known config file location.
func Path() string { return filepath.Join(Dir(), "config.json") }

// PinnedPath returns the pinned-history file location.
func PinnedPath() string { return filepath.Join(Dir(), "pinned.json") }

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("hotkey.key", d.Hotkey.Key)
	v.SetDefault("hotkey.modifiers", d.Hotkey.Modifiers)
	v.SetDefault("max_items", d.MaxItems)
	v.SetDefault("run_at_login", d.RunAtLogin)
	v.SetDefault("theme", d.Theme)
}

// Load reads the config file at path, merging it over defaults. A missing or
// corrupt file yields the defaults; Load never fails.
func Load(path string) *Config {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if !os.IsNotExist(err) {
			slog.Debug("config unreadable, using defaults", "path", path, "err", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		slog.Warn("config malformed, using defaults", "path", path, "err", err)
		return Default()
	}
	c.normalize()
	return &c
}

// Save writes c to path as indented JSON, creating the directory if needed
// and replacing any previous contents.
func (c *Config) Save(path string) error {
	c.normalize()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config dir: %w", err)
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("config encode: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config write: %w", err)
	}
	return nil
}

// normalize clamps and canonicalises fields in place.
func (c *Config) normalize() {
	c.Hotkey.Key = strings.ToUpper(strings.TrimSpace(c.Hotkey.Key))
	if len(c.Hotkey.Key) != 1 || c.Hotkey.Key[0] < 'A' || c.Hotkey.Key[0] > 'Z' {
		c.Hotkey.Key = "V"
	}

	var mods []string
	for _, m := range c.Hotkey.Modifiers {
		m = strings.ToLower(strings.TrimSpace(m))
		for _, valid := range ValidModifiers {
			if m == valid {
				mods = append(mods, m)
				break
			}
		}
	}
	// A chord needs at least one modifier.
	if len(mods) == 0 {
		mods = Default().Hotkey.Modifiers
	}
	c.Hotkey.Modifiers = mods

	if c.MaxItems < 10 {
		c.MaxItems = 10
	}
	if c.MaxItems > 200 {
		c.MaxItems = 200
	}

	switch c.Theme {
	case "system", "light", "dark":
	default:
		c.Theme = "system"
	}
}
