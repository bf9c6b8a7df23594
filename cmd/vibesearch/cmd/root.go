// Package cmd provides the CLI commands for vibe-search.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/vhybzOS/vibe-search/internal/config"
	vibeerrors "github.com/vhybzOS/vibe-search/internal/errors"
	"github.com/vhybzOS/vibe-search/internal/logging"
	"github.com/vhybzOS/vibe-search/internal/profiling"
	"github.com/vhybzOS/vibe-search/internal/registry"
	"github.com/vhybzOS/vibe-search/pkg/version"
)

var (
	debugMode      bool
	projectFlag    string
	loggingCleanup func()

	profileCPU   string
	profileMem   string
	profileTrace string
	profiler     = profiling.NewProfiler()
	cpuCleanup   func()
	traceCleanup func()
)

// NewRootCmd creates the root command for the vibe-search CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vibesearch",
		Short: "Keyword search over project memory and decision logs",
		Long: `vibe-search indexes short project documents (conversational memory
snippets and decision-log entries) into a per-project inverted index and
answers ranked keyword queries over them.

The index lives in memory and persists as a JSON snapshot under
<project>/.vibe/search.index.`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.SetVersionTemplate("vibesearch version {{.Version}}\n")

	cmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging to ~/.vibe-search/logs/")
	cmd.PersistentFlags().StringVarP(&projectFlag, "project", "p", "", "Project root (default: current directory)")
	cmd.PersistentFlags().StringVar(&profileCPU, "profile-cpu", "", "Write CPU profile to file")
	cmd.PersistentFlags().StringVar(&profileMem, "profile-mem", "", "Write memory profile to file")
	cmd.PersistentFlags().StringVar(&profileTrace, "profile-trace", "", "Write execution trace to file")

	cmd.PersistentPreRunE = startProfilingAndLogging
	cmd.PersistentPostRunE = stopProfilingAndLogging

	cmd.AddCommand(newSearchCmd())
	cmd.AddCommand(newAddCmd())
	cmd.AddCommand(newDeleteCmd())
	cmd.AddCommand(newStatsCmd())
	cmd.AddCommand(newWatchCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

func startProfilingAndLogging(_ *cobra.Command, _ []string) error {
	cfg := logging.DefaultConfig()
	if debugMode {
		cfg = logging.DebugConfig()
	}
	logger, cleanup, err := logging.Setup(cfg)
	if err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	loggingCleanup = cleanup
	slog.SetDefault(logger)
	if debugMode {
		slog.Info("debug_logging_enabled", "log_file", logging.DefaultLogPath())
	}

	if profileCPU != "" {
		cpuCleanup, err = profiler.StartCPU(profileCPU)
		if err != nil {
			return fmt.Errorf("failed to start CPU profile: %w", err)
		}
	}
	if profileTrace != "" {
		traceCleanup, err = profiler.StartTrace(profileTrace)
		if err != nil {
			if cpuCleanup != nil {
				cpuCleanup()
			}
			return fmt.Errorf("failed to start trace: %w", err)
		}
	}
	return nil
}

func stopProfilingAndLogging(_ *cobra.Command, _ []string) error {
	if cpuCleanup != nil {
		cpuCleanup()
		cpuCleanup = nil
	}
	if traceCleanup != nil {
		traceCleanup()
		traceCleanup = nil
	}
	if profileMem != "" {
		if err := profiler.WriteHeap(profileMem); err != nil {
			return fmt.Errorf("failed to write memory profile: %w", err)
		}
	}
	if loggingCleanup != nil {
		loggingCleanup()
		loggingCleanup = nil
	}
	return nil
}

// projectRoot resolves the project directory from the flag or cwd.
func projectRoot() (string, error) {
	if projectFlag != "" {
		return projectFlag, nil
	}
	return os.Getwd()
}

// newRegistry loads the project's config and builds a registry around it.
func newRegistry(projectPath string) (*registry.Registry, error) {
	cfg, err := config.Load(projectPath)
	if err != nil {
		return nil, err
	}
	return registry.New(cfg), nil
}

// Execute runs the root command.
func Execute() error {
	cmd := NewRootCmd()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, vibeerrors.FormatForCLI(err))
		return err
	}
	return nil
}
