package cmd

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/docmind/docmind/internal/config"
	"github.com/docmind/docmind/internal/core"
	"github.com/docmind/docmind/internal/daemon"
	"github.com/docmind/docmind/internal/output"
)

func newStatusCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show index and watcher health",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(cmd, jsonOutput)
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output status as JSON")
	return cmd
}

func runStatus(cmd *cobra.Command, jsonOutput bool) error {
	out := output.New(cmd.OutOrStdout())

	root, err := config.FindProjectRoot(".")
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

	health := c.GetHealth(cmd.Context())

	pidFile := daemon.NewPIDFile(filepath.Join(root, ".docmind", "watch.pid"))
	watching := pidFile.IsRunning()

	if jsonOutput {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Root     string `json:"root"`
			Watching bool   `json:"watching"`
			Health   any    `json:"health"`
		}{Root: root, Watching: watching, Health: health})
	}

	out.Statusf("", "Root: %s", root)
	if health.Healthy {
		out.Success("Store: healthy")
	} else {
		out.Errorf("Store: %s", health.StoreError)
	}
	out.Statusf("", "Documents: %d", health.DocCount)
	out.Statusf("", "Index terms: %d", health.IndexTerms)
	out.Statusf("", "Ingestion: %s (%s)", health.Ingestion.Status, health.Ingestion.Stage)
	if watching {
		out.Success("Watching: active")
	} else {
		out.Status("", "Watching: not running")
	}

	return nil
}
