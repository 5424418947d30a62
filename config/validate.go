package config

import (
	"github.com/teranos/bindgen/errors"
	"github.com/teranos/bindgen/instantiate"
	"github.com/teranos/bindgen/logger"
)

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if _, err := instantiate.ParsePolicy(c.Generator.InstantiationPolicy); err != nil {
		return errors.Wrap(err, "generator.instantiation_policy")
	}

	// Parallel libraries: 0 = sequential, negative = invalid
	if c.Generator.ParallelLibraries < 0 {
		return errors.NewInvalidInputError("generator.parallel_libraries must be >= 0, got %d", c.Generator.ParallelLibraries)
	}

	if c.Workspace.Manifest == "" {
		return errors.NewInvalidInputError("workspace.manifest cannot be empty")
	}

	if c.Log.Verbosity < logger.VerbosityUser || c.Log.Verbosity > logger.VerbosityTrace {
		return errors.NewInvalidInputError("log.verbosity must be between %d and %d, got %d",
			logger.VerbosityUser, logger.VerbosityTrace, c.Log.Verbosity)
	}

	return nil
}
