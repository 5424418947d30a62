package config

import (
	"github.com/spf13/viper"

	"github.com/teranos/bindgen/workspace"
)

// DefaultDirPermissions is used for ~/.bindgen
const DefaultDirPermissions = 0o750

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	v.SetDefault("generator.instantiation_policy", "first_match")
	v.SetDefault("generator.default_include_file", "")
	v.SetDefault("generator.parallel_libraries", 0)

	v.SetDefault("workspace.manifest", workspace.ManifestFileName)

	v.SetDefault("log.json", false)
	v.SetDefault("log.verbosity", 0)
}

func viperWithDefaults() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	return v
}

// BindEnvVars binds the settings most often overridden in CI
func BindEnvVars(v *viper.Viper) {
	v.BindEnv("generator.instantiation_policy", "BINDGEN_INSTANTIATION_POLICY")
	v.BindEnv("workspace.manifest", "BINDGEN_MANIFEST")
}
