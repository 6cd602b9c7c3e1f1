package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/docmind/docmind/internal/config"
	"github.com/docmind/docmind/internal/core"
	"github.com/docmind/docmind/internal/daemon"
	"github.com/docmind/docmind/internal/output"
)

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [path]",
		Short: "Watch a directory and keep its index current",
		Long: `Watch performs an initial ingest of path, then keeps watching it:
created, modified, renamed, and deleted files are coalesced and dispatched
into the ingestion pipeline as they occur.

Runs in the foreground until interrupted (Ctrl+C). A PID file is written
to <root>/.docmind/watch.pid so another invocation (docmind status) can
find this process.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}
			return runWatch(cmd, path)
		},
	}
	return cmd
}

func runWatch(cmd *cobra.Command, path string) error {
	out := output.New(cmd.OutOrStdout())

	root, err := config.FindProjectRoot(path)
	if err != nil {
		return fmt.Errorf("resolving project root: %w", err)
	}

	cfg, err := config.Load(root)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	cfg.DBPath = core.DefaultDBPathFor(cfg, root)

	c, err := core.New(cfg, root, nil)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer func() { _ = c.Shutdown() }()

	out.Statusf("", "Ingesting %s before watching", root)
	if _, err := c.IngestDirectory(cmd.Context(), root); err != nil {
		return fmt.Errorf("initial ingest failed: %w", err)
	}

	if err := c.StartWatching(cmd.Context()); err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer func() { _ = c.StopWatching() }()

	pidPath := filepath.Join(root, ".docmind", "watch.pid")
	pidFile := daemon.NewPIDFile(pidPath)
	if err := pidFile.Write(); err != nil {
		out.Warningf("could not write PID file: %s", err)
	}
	defer func() { _ = pidFile.Remove() }()

	out.Successf("Watching %s (pid %d)", root, os.Getpid())

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	out.Status("", "Stopping watcher")
	return nil
}
