// Package cmd provides the CLI commands for docmind.
package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/docmind/docmind/internal/logging"
	"github.com/docmind/docmind/pkg/version"
)

var (
	debugMode      bool
	loggingCleanup func()
)

// NewRootCmd creates the root command for the docmind CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "docmind",
		Short: "Local document organization engine",
		Long: `docmind watches one or more directories, ingests plaintext and
Markdown documents, extracts entities and relationships between them, and
serves composite full-text, fuzzy, boolean, and wildcard search over an
embedded, on-disk index.

Run 'docmind ingest <path>' to build an index, then 'docmind search <query>'
to search it, or 'docmind watch <path>' to keep the index current as files
change.`,
		Version: version.Version,
	}

	cmd.SetVersionTemplate("docmind version {{.Version}}\n")

	cmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging to ~/.docmind/logs/")
	cmd.PersistentPreRunE = startLogging
	cmd.PersistentPostRunE = stopLogging

	cmd.AddCommand(newIngestCmd())
	cmd.AddCommand(newWatchCmd())
	cmd.AddCommand(newSearchCmd())
	cmd.AddCommand(newStatusCmd())
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

func startLogging(_ *cobra.Command, _ []string) error {
	if !debugMode {
		return nil
	}
	logger, cleanup, err := logging.Setup(logging.DebugConfig())
	if err != nil {
		return err
	}
	loggingCleanup = cleanup
	slog.SetDefault(logger)
	slog.Info("debug logging enabled", slog.String("log_file", logging.DefaultLogPath()))
	return nil
}

func stopLogging(_ *cobra.Command, _ []string) error {
	if loggingCleanup != nil {
		loggingCleanup()
		loggingCleanup = nil
	}
	return nil
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}
