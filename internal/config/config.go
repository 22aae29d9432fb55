// Package config provides configuration types and defaults for plank.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dmelton/plank/internal/log"
)

// ColumnConfig customizes one of the two board columns.
type ColumnConfig struct {
	Name  string `mapstructure:"name"`  // header title
	Color string `mapstructure:"color"` // hex color e.g. "#54A0FF"
}

// ColumnsConfig holds the per-status column customizations.
// The columns themselves are fixed; only their presentation is
// configurable.
type ColumnsConfig struct {
	Active   ColumnConfig `mapstructure:"active"`
	Finished ColumnConfig `mapstructure:"finished"`
}

// Config holds all configuration options for plank.
type Config struct {
	AutoReload bool          `mapstructure:"auto_reload"` // re-apply config when the file changes
	UI         UIConfig      `mapstructure:"ui"`
	Theme      ThemeConfig   `mapstructure:"theme"`
	Columns    ColumnsConfig `mapstructure:"columns"`
}

// UIConfig holds user interface configuration options.
type UIConfig struct {
	ShowCounts    bool   `mapstructure:"show_counts"`
	ShowStatusBar bool   `mapstructure:"show_status_bar"`
	MarkdownStyle string `mapstructure:"markdown_style"` // "dark" (default) or "light"
}

// ThemeConfig holds all theme customization options.
type ThemeConfig struct {
	// Preset loads a built-in theme as the base (optional).
	// Valid values: "default", "catppuccin-mocha", "catppuccin-latte",
	// "dracula", "nord", "high-contrast"
	Preset string `mapstructure:"preset"`

	// Mode forces light or dark mode. If empty, uses terminal detection.
	// Valid values: "light", "dark", ""
	Mode string `mapstructure:"mode"`

	// Colors allows overriding individual color tokens.
	// Supports both nested YAML structure and dot notation.
	// Example YAML:
	//   colors:
	//     text:
	//       primary: "#FF0000"
	// Or quoted dot notation:
	//   colors:
	//     "text.primary": "#FF0000"
	Colors map[string]any `mapstructure:"colors"`
}

// FlattenedColors returns the Colors map flattened to dot-notation keys.
// This handles both nested YAML structures and already-flat keys.
func (t ThemeConfig) FlattenedColors() map[string]string {
	result := make(map[string]string)
	flattenColors("", t.Colors, result)
	return result
}

// flattenColors recursively flattens a nested map into dot-notation keys.
func flattenColors(prefix string, m map[string]any, result map[string]string) {
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}

		switch val := v.(type) {
		case string:
			result[key] = val
		case map[string]any:
			flattenColors(key, val, result)
		case map[any]any:
			// YAML sometimes produces map[any]any instead of map[string]any
			converted := make(map[string]any)
			for mk, mv := range val {
				if strKey, ok := mk.(string); ok {
					converted[strKey] = mv
				}
			}
			flattenColors(key, converted, result)
		}
	}
}

// DefaultColumns returns the stock column presentation.
func DefaultColumns() ColumnsConfig {
	return ColumnsConfig{
		Active: ColumnConfig{
			Name:  "Active Projects",
			Color: "#54A0FF",
		},
		Finished: ColumnConfig{
			Name:  "Finished Projects",
			Color: "#73F59F",
		},
	}
}

// ValidateColumns checks column customization for errors.
// Empty fields fall back to defaults and are valid.
func ValidateColumns(cols ColumnsConfig) error {
	for _, c := range []struct {
		key string
		col ColumnConfig
	}{
		{"columns.active", cols.Active},
		{"columns.finished", cols.Finished},
	} {
		if c.col.Color == "" {
			continue
		}
		if c.col.Color[0] != '#' || (len(c.col.Color) != 4 && len(c.col.Color) != 7) {
			return fmt.Errorf("%s.color: invalid hex color %q", c.key, c.col.Color)
		}
	}
	return nil
}

// GetColumns returns the configured columns with defaults filled in for
// any empty fields.
func (c Config) GetColumns() ColumnsConfig {
	out := c.Columns
	def := DefaultColumns()
	if out.Active.Name == "" {
		out.Active.Name = def.Active.Name
	}
	if out.Active.Color == "" {
		out.Active.Color = def.Active.Color
	}
	if out.Finished.Name == "" {
		out.Finished.Name = def.Finished.Name
	}
	if out.Finished.Color == "" {
		out.Finished.Color = def.Finished.Color
	}
	return out
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		AutoReload: true,
		UI: UIConfig{
			ShowCounts:    true,
			ShowStatusBar: true,
			MarkdownStyle: "dark",
		},
		Theme:   ThemeConfig{},
		Columns: DefaultColumns(),
	}
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# Plank Configuration

# Re-apply this file while the app is running when it changes
auto_reload: true

# UI settings
ui:
  show_counts: true       # Show project counts in column headers
  show_status_bar: true   # Show status bar at bottom
  # markdown_style: dark  # Markdown rendering style: "dark" (default) or "light"

# Theme configuration
# Use a preset theme or customize individual colors
theme:
  # Use a preset:
  # preset: catppuccin-mocha
  #
  # Available presets:
  #   default           - Default plank theme
  #   catppuccin-mocha  - Warm, cozy dark theme
  #   catppuccin-latte  - Warm, cozy light theme
  #   dracula           - Dark theme with vibrant colors
  #   nord              - Arctic, north-bluish palette
  #   high-contrast     - High contrast for accessibility
  #
  # Override specific colors (works with or without preset):
  # colors:
  #   text.primary: "#FFFFFF"
  #   project.active: "#54A0FF"
  #   project.finished: "#73F59F"

# Board columns - titles and header colors only; the two columns are fixed
columns:
  active:
    name: Active Projects
    color: "#54A0FF"
  finished:
    name: Finished Projects
    color: "#73F59F"
`
}

// WriteDefaultConfig creates a config file at the given path with default
// settings and comments. Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
