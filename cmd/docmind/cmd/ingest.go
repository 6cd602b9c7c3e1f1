package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/docmind/docmind/internal/config"
	"github.com/docmind/docmind/internal/core"
	"github.com/docmind/docmind/internal/ingest"
	"github.com/docmind/docmind/internal/output"
)

func newIngestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest [path]",
		Short: "Ingest a directory into the index",
		Long: `Ingest walks a directory, decodes every supported file, extracts
entities and relationships, and persists the result to the embedded store.

Files already ingested with an unchanged checksum are skipped.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}
			return runIngest(cmd, path)
		},
	}
	return cmd
}

func runIngest(cmd *cobra.Command, path string) error {
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

	out.Statusf("", "Ingesting %s", root)

	outcomes, err := c.IngestDirectory(cmd.Context(), root)
	if err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}

	var ingested, unchanged, failed int
	for _, o := range outcomes {
		switch o.Kind {
		case ingest.OutcomeIngested:
			ingested++
		case ingest.OutcomeUnchanged:
			unchanged++
		case ingest.OutcomeError:
			failed++
			out.Errorf("%s: %s", o.Path, o.ErrorMessage)
		}
	}

	out.Successf("%d ingested, %d unchanged, %d failed", ingested, unchanged, failed)
	if failed > 0 {
		return fmt.Errorf("%d file(s) failed to ingest", failed)
	}
	return nil
}
