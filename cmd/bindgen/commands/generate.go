package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/bindgen/config"
	"github.com/teranos/bindgen/errors"
	"github.com/teranos/bindgen/instantiate"
	"github.com/teranos/bindgen/logger"
	"github.com/teranos/bindgen/workspace"
)

// GenerateCmd represents the generate command
var GenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Process the libraries of a workspace",
	Long: `Process every library of a workspace manifest in dependency order:
load declarations, discover and apply template instantiations, and
synthesize exported identifiers.

Examples:
  bindgen generate
  bindgen generate --manifest qt/bindgen.workspace.toml --library qtgui
  bindgen generate --format json --methods > report.json`,
	RunE: runGenerate,
}

var (
	generateManifest  string
	generateLibraries []string
	generatePolicy    string
	generateParallel  int
	generateFormat    string
	generateMethods   bool
)

func init() {
	GenerateCmd.Flags().StringVarP(&generateManifest, "manifest", "m", "", "Workspace manifest (default from config)")
	GenerateCmd.Flags().StringSliceVarP(&generateLibraries, "library", "l", nil, "Only process these libraries and their dependencies")
	GenerateCmd.Flags().StringVar(&generatePolicy, "policy", "", "Instantiation policy: first_match, first_success or all_matches")
	GenerateCmd.Flags().IntVarP(&generateParallel, "parallel", "p", -1, "Independent libraries processed at once")
	GenerateCmd.Flags().StringVar(&generateFormat, "format", "table", "Report format: table, json, yaml")
	GenerateCmd.Flags().BoolVar(&generateMethods, "methods", false, "Include every exported method in the report")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	opts, manifestPath, err := generateOptions(cfg)
	if err != nil {
		return err
	}

	manifest, err := workspace.LoadManifest(manifestPath)
	if err != nil {
		return err
	}
	if manifest, err = selectLibraries(manifest, manifestPath, generateLibraries); err != nil {
		return err
	}

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt)
	defer stop()
	ctx = logger.WithComponent(ctx, "generate")

	verbosity, _ := cmd.Flags().GetCount("verbose")
	status := pterm.Warning.WithWriter(cmd.ErrOrStderr())
	if logger.ShouldOutput(verbosity, logger.OutputConfig) {
		pterm.Info.WithWriter(cmd.ErrOrStderr()).Printfln("policy=%s parallel=%d include=%q manifest=%s verbosity=%s",
			opts.Policy, opts.Parallel, opts.DefaultIncludeFile, manifestPath, logger.LevelName(verbosity))
	}

	logger.LoggerFromContext(ctx, nil).Infow("Generating bindings",
		logger.FieldFile, manifestPath,
		logger.FieldCount, len(manifest.Libraries),
		"policy", opts.Policy.String())

	results, err := workspace.New(manifest, opts, logger.ComponentLogger("workspace")).Run(ctx)
	if err != nil {
		return err
	}

	reports := make([]LibraryReport, len(results))
	failed := 0
	for i, r := range results {
		reports[i] = NewLibraryReport(r)
		failed += reports[i].Failed
	}
	writeRunSummary(cmd.ErrOrStderr(), verbosity, results)
	if logger.ShouldOutput(verbosity, logger.OutputResults) {
		if err := WriteReports(cmd.OutOrStdout(), reports, generateFormat, generateMethods); err != nil {
			return err
		}
	}
	if failed > 0 && logger.ShouldOutput(verbosity, logger.OutputUserStatus) {
		status.Printfln("%d items failed; rerun with -vv for details", failed)
	}
	return nil
}

// selectLibraries narrows manifest to the --library names. An empty list
// keeps every library.
func selectLibraries(manifest *workspace.Manifest, manifestPath string, names []string) (*workspace.Manifest, error) {
	if len(names) == 0 {
		return manifest, nil
	}
	sub, err := manifest.Select(names...)
	if errors.IsNotFoundError(err) {
		return nil, errors.WithHintf(err, "--library must name a [[library]] of %s", manifestPath)
	}
	return sub, err
}

// generateOptions merges command line flags over the configuration.
func generateOptions(cfg *config.Config) (workspace.Options, string, error) {
	policySpelling := cfg.Generator.InstantiationPolicy
	if generatePolicy != "" {
		policySpelling = generatePolicy
	}
	policy, err := instantiate.ParsePolicy(policySpelling)
	if err != nil {
		return workspace.Options{}, "", err
	}

	parallel := cfg.Generator.ParallelLibraries
	if generateParallel >= 0 {
		parallel = generateParallel
	}

	manifestPath := cfg.Workspace.Manifest
	if generateManifest != "" {
		manifestPath = generateManifest
	}

	return workspace.Options{
		Policy:             policy,
		DefaultIncludeFile: cfg.Generator.DefaultIncludeFile,
		Parallel:           parallel,
	}, manifestPath, nil
}
