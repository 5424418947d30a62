package config

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/teranos/bindgen/errors"
	"github.com/teranos/bindgen/logger"
)

// Default returns the configuration produced by SetDefaults alone.
func Default() *Config {
	v := viperWithDefaults()
	var cfg Config
	// Defaults always decode
	_ = v.Unmarshal(&cfg)
	return &cfg
}

// Save validates cfg and writes it to configPath as TOML, keeping rotating
// backups of the previous file.
func Save(cfg *Config, configPath string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(configPath), DefaultDirPermissions); err != nil {
		return errors.Wrapf(err, "failed to create directory for %s", configPath)
	}

	if err := createBackup(configPath); err != nil {
		return errors.Wrap(err, "failed to create backup")
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "failed to marshal config")
	}

	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return errors.Wrapf(err, "failed to write config %s", configPath)
	}
	return nil
}

// Init writes the default configuration to configPath. An existing file is
// only replaced when force is set.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return errors.WithHint(
			errors.NewInvalidInputError("config file %s already exists", configPath),
			"pass --force to overwrite it; the previous file is kept as .back1")
	}
	return Save(Default(), configPath)
}

// createBackup creates rotating backups (.back1, .back2, .back3) before modifying config
func createBackup(configPath string) error {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil
	}

	back3 := configPath + ".back3"
	back2 := configPath + ".back2"
	back1 := configPath + ".back1"

	if err := os.Remove(back3); err != nil && !os.IsNotExist(err) {
		logger.Warnw("Failed to delete old config backup", logger.FieldFile, back3, logger.FieldError, err)
	}

	if _, err := os.Stat(back2); err == nil {
		if err := os.Rename(back2, back3); err != nil {
			return errors.Wrap(err, "failed to rotate .back2 to .back3")
		}
	}

	if _, err := os.Stat(back1); err == nil {
		if err := os.Rename(back1, back2); err != nil {
			return errors.Wrap(err, "failed to rotate .back1 to .back2")
		}
	}

	content, err := os.ReadFile(configPath)
	if err != nil {
		return errors.Wrap(err, "failed to read config for backup")
	}

	if err := os.WriteFile(back1, content, 0o644); err != nil {
		return errors.Wrap(err, "failed to create .back1")
	}

	return nil
}
