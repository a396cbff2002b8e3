// Package config manages gpxport configuration via Viper: defaults, TOML
// files merged system -> user -> project, and GPXPORT_* environment
// variables on top.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config is the gpxport configuration tree.
type Config struct {
	Output   OutputConfig   `mapstructure:"output"`
	Manifest ManifestConfig `mapstructure:"manifest"`
	Convert  ConvertConfig  `mapstructure:"convert"`
	Log      LogConfig      `mapstructure:"log"`
}

// OutputConfig configures where converted files go.
type OutputConfig struct {
	Dir string `mapstructure:"dir"` // default output directory; overridden by --output
}

// ManifestConfig configures manifest parsing.
type ManifestConfig struct {
	// TimeLayout is the Go layout of the manifest's locale-specific
	// timestamps. Exports from non-English accounts need their own.
	TimeLayout string `mapstructure:"time_layout"`
}

// ConvertConfig holds default filters applied when no flags are given.
type ConvertConfig struct {
	Types []string `mapstructure:"types"`
	Years []string `mapstructure:"years"`
	Gear  []string `mapstructure:"gear"`
}

// LogConfig configures log output.
type LogConfig struct {
	JSON  bool   `mapstructure:"json"`
	Theme string `mapstructure:"theme"` // console color theme: everforest or gruvbox
}

// DefaultManifestTimeLayout matches English-locale exports,
// e.g. "Jun 1, 2023, 9:15:00 AM".
const DefaultManifestTimeLayout = "Jan 2, 2006, 3:04:05 PM"

// SetDefaults configures default values for all configuration options.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("output.dir", "")
	v.SetDefault("manifest.time_layout", DefaultManifestTimeLayout)
	v.SetDefault("convert.types", []string{})
	v.SetDefault("convert.years", []string{})
	v.SetDefault("convert.gear", []string{})
	v.SetDefault("log.json", false)
	v.SetDefault("log.theme", "everforest")
}

// GetTimeLayout returns the manifest timestamp layout with the default
// applied.
func (c *Config) GetTimeLayout() string {
	if c.Manifest.TimeLayout == "" {
		return DefaultManifestTimeLayout
	}
	return c.Manifest.TimeLayout
}

// String returns a compact representation of the config.
func (c *Config) String() string {
	return fmt.Sprintf("Config{Output: %q, Manifest: {TimeLayout: %q}, Log: {JSON: %t, Theme: %s}}",
		c.Output.Dir, c.GetTimeLayout(), c.Log.JSON, c.Log.Theme)
}
