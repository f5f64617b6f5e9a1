// Package cli wires the cobra command tree for the docgen binary.
//
// Commands resolve a repository root from their positional argument,
// build the services for that root through the installed service
// factory, and print either a human-readable summary or JSON.
package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Saechaoc/docgen/internal/core/ports/driving"
	"github.com/Saechaoc/docgen/internal/logger"
)

// version and commit are stamped at build time via SetVersion and
// SetCommit.
var (
	version = "dev"
	commit  string
)

// SetVersion records the version string printed by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// SetCommit records the VCS revision printed by the version command.
func SetCommit(c string) {
	commit = c
}

// Services bundles the driving ports the commands call. Every command
// operates on exactly one repository root, so the bundle is built per
// invocation rather than held in package state.
type Services struct {
	Contexts  driving.ContextBuilder
	Validator driving.ReadmeValidator
	Signals   driving.SignalCollector
	Settings  driving.SettingsService
}

// ServiceOverrides carries flag-level overrides into service wiring.
type ServiceOverrides struct {
	// ConfigPath replaces the default <root>/.docgen.toml lookup.
	ConfigPath string

	// StorePath replaces the configured chunk store location.
	StorePath string
}

// ServiceFactory builds the service bundle for one repository root.
// Configuration lives next to the repository, so wiring cannot happen
// before the root is known.
type ServiceFactory func(root string, overrides ServiceOverrides) (*Services, error)

var serviceFactory ServiceFactory

// SetServiceFactory installs the factory used by all commands.
func SetServiceFactory(factory ServiceFactory) {
	serviceFactory = factory
}

var (
	verboseFlag bool
	configFlag  string
)

var rootCmd = &cobra.Command{
	Use:   "docgen",
	Short: "Grounded README tooling for repositories",
	Long: `docgen builds a retrieval index over a repository and validates
rendered README sections against the evidence found there.

The index maps README, docs, and source files onto canonical README
sections. The validator checks generated prose sentence by sentence and
reports anything that cannot be traced back to repository content or
analyzer signals.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseFlag)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "config file (default <path>/.docgen.toml)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// resolveRoot turns the optional positional path at args[index] into an
// absolute repository root, defaulting to the current directory.
func resolveRoot(args []string, index int) (string, error) {
	path := "."
	if len(args) > index {
		path = args[index]
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve path %s: %w", path, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("open repository %s: %w", abs, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%s is not a directory", abs)
	}

	return abs, nil
}

// buildServices invokes the installed factory for the given root,
// folding in the persistent --config flag.
func buildServices(root string, overrides ServiceOverrides) (*Services, error) {
	if serviceFactory == nil {
		return nil, errors.New("docgen services not configured")
	}
	if overrides.ConfigPath == "" {
		overrides.ConfigPath = configFlag
	}
	return serviceFactory(root, overrides)
}

// truncate shortens s to at most limit runes, appending an ellipsis
// when anything was cut.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
