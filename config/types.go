package config

import (
	"fmt"
	"time"

	"github.com/grovetools/reorder/errors"
	"github.com/mitchellh/mapstructure"
)

const (
	DefaultSpacing   = 1.0
	DefaultDragDelay = "100ms"
	DefaultTheme     = "kanagawa"
)

// Config is the parsed reorder.yml (or reorder.toml).
type Config struct {
	Version string     `yaml:"version" toml:"version" json:"version"`
	List    ListConfig `yaml:"list" toml:"list" json:"list"`
	TUI     TUIConfig  `yaml:"tui" toml:"tui" json:"tui"`

	// Extensions holds every top-level section this package does not own,
	// such as `logging`. Decode them with UnmarshalExtension.
	Extensions map[string]interface{} `yaml:",inline" toml:"-" json:"extensions,omitempty"`
}

// ListConfig configures the reorder engine.
type ListConfig struct {
	// Spacing is the gap between consecutive items, in rows for the terminal list.
	Spacing *float64 `yaml:"spacing,omitempty" toml:"spacing,omitempty" json:"spacing,omitempty" jsonschema:"minimum=0,description=Gap between consecutive items"`
	// DragDelay is how long a drag lasts before the item is styled as dragging.
	DragDelay string `yaml:"drag_delay,omitempty" toml:"drag_delay,omitempty" json:"drag_delay,omitempty" jsonschema:"description=Delay before the dragging style applies (Go duration; default 100ms)"`
}

// TUIConfig configures the interactive list.
type TUIConfig struct {
	Theme    string `yaml:"theme,omitempty" toml:"theme,omitempty" json:"theme,omitempty" jsonschema:"enum=kanagawa,enum=gruvbox,enum=terminal,description=Color palette"`
	Icons    string `yaml:"icons,omitempty" toml:"icons,omitempty" json:"icons,omitempty" jsonschema:"enum=nerd,enum=ascii,description=Icon set; ascii avoids Nerd Font glyphs"`
	ShowHelp bool   `yaml:"show_help,omitempty" toml:"show_help,omitempty" json:"show_help,omitempty" jsonschema:"description=Show the full key help below the list"`
}

// Default returns a Config with defaults applied, used when no file exists.
func Default() *Config {
	c := &Config{}
	c.SetDefaults()
	return c
}

// SetDefaults fills in unset values.
func (c *Config) SetDefaults() {
	if c.Version == "" {
		c.Version = "1.0"
	}
	if c.List.Spacing == nil {
		spacing := DefaultSpacing
		c.List.Spacing = &spacing
	}
	if c.List.DragDelay == "" {
		c.List.DragDelay = DefaultDragDelay
	}
	if c.TUI.Theme == "" {
		c.TUI.Theme = DefaultTheme
	}
}

// Validate checks semantic constraints the schema cannot express.
func (c *Config) Validate() error {
	if c.List.Spacing != nil && *c.List.Spacing < 0 {
		return errors.ConfigInvalid("list.spacing must not be negative").
			WithDetail("spacing", *c.List.Spacing)
	}
	if c.List.DragDelay != "" {
		d, err := time.ParseDuration(c.List.DragDelay)
		if err != nil {
			return errors.Wrap(err, errors.ErrCodeConfigInvalid, "list.drag_delay is not a duration").
				WithDetail("drag_delay", c.List.DragDelay)
		}
		if d < 0 {
			return errors.ConfigInvalid("list.drag_delay must not be negative").
				WithDetail("drag_delay", c.List.DragDelay)
		}
	}
	return nil
}

// Spacing returns the configured spacing, or the default.
func (c *Config) Spacing() float64 {
	if c.List.Spacing == nil {
		return DefaultSpacing
	}
	return *c.List.Spacing
}

// DragDelay returns the parsed drag delay, or the default for an empty or
// malformed value.
func (c *Config) DragDelay() time.Duration {
	if d, err := time.ParseDuration(c.List.DragDelay); err == nil && d >= 0 {
		return d
	}
	d, _ := time.ParseDuration(DefaultDragDelay)
	return d
}

// UnmarshalExtension decodes a top-level section this package does not own
// into target, which must be a pointer. A missing section leaves target
// untouched.
//
// Example:
//
//	var logCfg logging.Config
//	err := cfg.UnmarshalExtension("logging", &logCfg)
func (c *Config) UnmarshalExtension(key string, target interface{}) error {
	extensionConfig, ok := c.Extensions[key]
	if !ok {
		return nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          "yaml",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return fmt.Errorf("failed to create mapstructure decoder: %w", err)
	}

	if err := decoder.Decode(extensionConfig); err != nil {
		return fmt.Errorf("failed to decode extension config for '%s': %w", key, err)
	}

	return nil
}
