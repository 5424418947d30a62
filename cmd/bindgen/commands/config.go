package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/teranos/bindgen/config"
)

// ConfigCmd represents the config command
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage bindgen configuration",
	Long: `Display and manage bindgen configuration.

Configuration sources (in order of precedence):
1. Command line flags
2. Environment variables (BINDGEN_* prefix)
3. Project config (bindgen.toml in the current or a parent directory)
4. User config (~/.bindgen/bindgen.toml)
5. Default values

Examples:
  bindgen config show                 # Show current configuration
  bindgen config show --format json   # Show configuration in JSON format
  bindgen config validate             # Validate current configuration
  bindgen config init --force         # Rewrite ~/.bindgen/bindgen.toml`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runConfigShow,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate current configuration",
	RunE:  runConfigValidate,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a configuration file with default values",
	RunE:  runConfigInit,
}

var (
	configFormat string
	configPath   string
	configForce  bool
)

func init() {
	configShowCmd.Flags().StringVar(&configFormat, "format", "toml", "Output format: toml, json, yaml")
	configInitCmd.Flags().StringVar(&configPath, "path", "", "File to write (default ~/.bindgen/bindgen.toml)")
	configInitCmd.Flags().BoolVar(&configForce, "force", false, "Overwrite an existing file")

	ConfigCmd.AddCommand(configShowCmd)
	ConfigCmd.AddCommand(configValidateCmd)
	ConfigCmd.AddCommand(configInitCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	return writeConfig(cmd, cfg, configFormat)
}

func writeConfig(cmd *cobra.Command, cfg *config.Config, format string) error {
	out := cmd.OutOrStdout()
	switch format {
	case "json":
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal config to JSON: %w", err)
		}
		fmt.Fprintln(out, string(data))

	case "yaml":
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("failed to marshal config to YAML: %w", err)
		}
		fmt.Fprintf(out, "# bindgen configuration\n%s", string(data))

	case "toml":
		data, err := toml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("failed to marshal config to TOML: %w", err)
		}
		fmt.Fprintf(out, "# bindgen configuration\n%s", string(data))

	default:
		return fmt.Errorf("unsupported format: %s (supported: toml, json, yaml)", format)
	}
	return nil
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	if _, err := config.Load(); err != nil {
		return fmt.Errorf("configuration is invalid: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Configuration is valid")
	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := configPath
	if path == "" {
		path = config.UserConfigPath()
		if path == "" {
			return fmt.Errorf("could not determine home directory, pass --path")
		}
	}
	if err := config.Init(path, configForce); err != nil {
		return err
	}
	if _, err := os.Stat(path + ".back1"); err == nil && configForce {
		pterm.Info.Printfln("Previous configuration kept as %s.back1", path)
	}
	pterm.Success.Printfln("Wrote %s", path)
	return nil
}
