package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/docmind/docmind/internal/config"
	"github.com/docmind/docmind/internal/core"
	"github.com/docmind/docmind/internal/output"
	"github.com/docmind/docmind/internal/search"
)

func newSearchCmd() *cobra.Command {
	var (
		mode        string
		limit       int
		jsonOutput  bool
		snippets    bool
		entityQuery bool
	)

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the index",
		Long: `Search runs query against the composite search engine over the
index at the current directory's project root.

Mode selects how query is interpreted: standard (default), fuzzy, boolean,
wildcard, or semantic (currently a stub). Pass --entities to search entity
names instead of document content.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, args[0], mode, limit, jsonOutput, snippets, entityQuery)
		},
	}

	cmd.Flags().StringVar(&mode, "mode", "standard", "Search mode: standard, fuzzy, boolean, wildcard, semantic")
	cmd.Flags().IntVar(&limit, "limit", 10, "Maximum results to return")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output results as JSON")
	cmd.Flags().BoolVar(&snippets, "snippets", true, "Include content snippets in results")
	cmd.Flags().BoolVar(&entityQuery, "entities", false, "Search entity names instead of document content")

	return cmd
}

func parseMode(mode string) (search.Mode, error) {
	switch strings.ToLower(mode) {
	case "standard", "":
		return search.ModeStandard, nil
	case "fuzzy":
		return search.ModeFuzzy, nil
	case "boolean":
		return search.ModeBoolean, nil
	case "wildcard":
		return search.ModeWildcard, nil
	case "semantic":
		return search.ModeSemantic, nil
	default:
		return "", fmt.Errorf("unknown search mode: %s", mode)
	}
}

func runSearch(cmd *cobra.Command, query, mode string, limit int, jsonOutput, snippets, entityQuery bool) error {
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

	if entityQuery {
		results, err := c.SearchEntities(cmd.Context(), search.EntityQuery{NameSubstring: query, Limit: limit})
		if err != nil {
			return err
		}
		return printEntityResults(cmd, results, jsonOutput)
	}

	m, err := parseMode(mode)
	if err != nil {
		return err
	}

	results, err := c.Search(cmd.Context(), search.Query{
		Text: query,
		Mode: m,
		Options: search.Options{
			Limit:           limit,
			IncludeSnippets: snippets,
		},
	})
	if err != nil {
		return err
	}

	if jsonOutput {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results.Results) == 0 {
		out.Status("", "No results")
		return nil
	}

	for i, r := range results.Results {
		out.Statusf("", "%d. %s (score %.3f)", i+1, r.Title, r.Score)
		out.Status("", "   "+r.SourcePath)
		if r.Snippet != "" {
			out.Status("", "   "+r.Snippet)
		}
	}
	out.Newline()
	out.Statusf("", "%d of %d total", len(results.Results), results.Total)
	return nil
}

func printEntityResults(cmd *cobra.Command, results []search.EntityResult, jsonOutput bool) error {
	out := output.New(cmd.OutOrStdout())

	if jsonOutput {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		out.Status("", "No matching entities")
		return nil
	}
	for _, r := range results {
		out.Statusf("", "%s [%s] (confidence %.2f) in document %s", r.SurfaceForm, r.Kind, r.Confidence, r.DocumentID)
	}
	return nil
}
