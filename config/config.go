// Package config loads bindgen settings from bindgen.toml files and
// BINDGEN_ environment variables.
package config

import (
	"fmt"

	"github.com/teranos/bindgen/instantiate"
)

// Config represents the bindgen configuration
type Config struct {
	Generator GeneratorConfig `mapstructure:"generator" toml:"generator"`
	Workspace WorkspaceConfig `mapstructure:"workspace" toml:"workspace"`
	Log       LogConfig       `mapstructure:"log" toml:"log"`
}

// GeneratorConfig configures instantiation and FFI generation
type GeneratorConfig struct {
	// InstantiationPolicy is first_match, first_success or all_matches
	InstantiationPolicy string `mapstructure:"instantiation_policy" toml:"instantiation_policy"`
	// DefaultIncludeFile names free functions without an include file
	DefaultIncludeFile string `mapstructure:"default_include_file" toml:"default_include_file"`
	// ParallelLibraries bounds concurrent library processing (0 = sequential)
	ParallelLibraries int `mapstructure:"parallel_libraries" toml:"parallel_libraries"`
}

// WorkspaceConfig locates the workspace manifest
type WorkspaceConfig struct {
	Manifest string `mapstructure:"manifest" toml:"manifest"`
}

// LogConfig configures logging output
type LogConfig struct {
	JSON      bool `mapstructure:"json" toml:"json"`
	Verbosity int  `mapstructure:"verbosity" toml:"verbosity"`
}

// Policy returns the parsed instantiation policy.
func (c *Config) Policy() (instantiate.Policy, error) {
	return instantiate.ParsePolicy(c.Generator.InstantiationPolicy)
}

// String returns a string representation of the config
func (c *Config) String() string {
	return fmt.Sprintf("Config{Generator: {Policy: %s, Parallel: %d}, Workspace: %s, Log: {JSON: %t, Verbosity: %d}}",
		c.Generator.InstantiationPolicy, c.Generator.ParallelLibraries, c.Workspace.Manifest, c.Log.JSON, c.Log.Verbosity)
}
