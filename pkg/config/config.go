// Package config loads the tray demo configuration from YAML.
package config

import (
	"fmt"

	"github.com/mitchellh/hashstructure"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// Event delivery modes.
const (
	ModePoll    = "poll"
	ModeHandler = "handler"
)

// Menu item actions.
const (
	ActionQuit = "quit"
)

// Config describes the tray icon the demo shows.
type Config struct {
	ID              string     `mapstructure:"id"`
	Tooltip         string     `mapstructure:"tooltip"`
	Icon            string     `mapstructure:"icon"`
	Visible         bool       `mapstructure:"visible"`
	MenuOnLeftClick bool       `mapstructure:"menu_on_left_click"`
	Mode            string     `mapstructure:"mode"`
	Menu            []MenuItem `mapstructure:"menu"`
}

// MenuItem is one entry of the tray menu. Open names a file or URL to open
// when the item is picked; Action names a built-in action.
type MenuItem struct {
	ID        string `mapstructure:"id"`
	Title     string `mapstructure:"title"`
	Tooltip   string `mapstructure:"tooltip"`
	Open      string `mapstructure:"open"`
	Action    string `mapstructure:"action"`
	Checkable bool   `mapstructure:"checkable"`
	Checked   bool   `mapstructure:"checked"`
	Disabled  bool   `mapstructure:"disabled"`
	Separator bool   `mapstructure:"separator"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Tooltip:         "trayicon",
		Visible:         true,
		MenuOnLeftClick: true,
		Mode:            ModePoll,
		Menu: []MenuItem{
			{ID: "quit", Title: "Quit", Action: ActionQuit},
		},
	}
}

// Load reads the YAML file at path from fs. Keys missing from the file keep
// their default values.
func Load(fs afero.Fs, path string) (*Config, error) {
	b, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, err
	}
	return Parse(b)
}

// Parse decodes YAML configuration over the defaults.
func Parse(b []byte) (*Config, error) {
	var raw map[string]interface{}
	if err := yaml.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg := Default()
	if _, ok := raw["menu"]; ok {
		cfg.Menu = nil
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		Result:           cfg,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(raw); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values the decoder cannot.
func (c *Config) Validate() error {
	switch c.Mode {
	case ModePoll, ModeHandler:
	default:
		return fmt.Errorf("invalid mode %q: want %q or %q", c.Mode, ModePoll, ModeHandler)
	}
	seen := make(map[string]bool)
	for i, item := range c.Menu {
		if item.Separator {
			continue
		}
		if item.Title == "" {
			return fmt.Errorf("menu item %d has no title", i)
		}
		if item.ID != "" && seen[item.ID] {
			return fmt.Errorf("duplicate menu item id %q", item.ID)
		}
		seen[item.ID] = true
		if item.Action != "" && item.Action != ActionQuit {
			return fmt.Errorf("menu item %q: unknown action %q", item.Title, item.Action)
		}
	}
	return nil
}

// Hash fingerprints the configuration so reloads can skip unchanged files.
func (c *Config) Hash() (uint64, error) {
	return hashstructure.Hash(c, nil)
}
