// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/genealogy-tex/internal/catalog"
	"github.com/pdiddy/genealogy-tex/internal/convert"
	"github.com/pdiddy/genealogy-tex/internal/logging"
	"github.com/pdiddy/genealogy-tex/internal/source"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Manage the person catalog (store, find, show, sources, export)",
	Long: `Catalog keeps a local SQLite index of the persons in one or more record
books. Use subcommands to ingest books, search persons, show one person
with all sections, or export the catalog.`,
}

// --- store subcommand ---

var catalogStoreCmd = &cobra.Command{
	Use:   "store input.txt...",
	Short: "Parse record books and ingest their persons",
	Long: `Store parses each input and ingests its persons, sections and children
into <catalog-dir>/catalog.db. Inputs whose content is unchanged since the
last run are skipped unless --force is given.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCatalogStore,
}

type storeSummary struct {
	Indexed, Updated, Skipped, Failed int
}

func runCatalogStore(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")
	w := cmd.OutOrStdout()
	logger := logging.Logger()

	store, err := catalog.NewStore(loadConfig().Catalog)
	if err != nil {
		return err
	}
	defer store.Close()

	var summary storeSummary
	for _, path := range args {
		data, err := source.Read(path)
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", path, err)
			summary.Failed++
			continue
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			abs = path
		}

		doc, _ := convert.Parse(source.Lines(string(data)), abs, logger.With("input", path))
		status, err := store.Ingest(cmd.Context(), doc, source.Fingerprint(data), force, w)
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", path, err)
			summary.Failed++
			continue
		}
		switch status {
		case catalog.IngestIndexed:
			summary.Indexed++
		case catalog.IngestUpdated:
			summary.Updated++
		case catalog.IngestSkipped:
			summary.Skipped++
		}
	}

	fmt.Fprintf(w, "\nindexed: %d, updated: %d, skipped: %d, failed: %d\n",
		summary.Indexed, summary.Updated, summary.Skipped, summary.Failed)
	if summary.Failed > 0 {
		return fmt.Errorf("%d source(s) failed indexing", summary.Failed)
	}
	return nil
}

// --- find subcommand ---

var catalogFindCmd = &cobra.Command{
	Use:   "find [query]",
	Short: "Search persons by name or clause",
	Long: `Find lists persons whose name or biographical clause contains the query
(case-insensitive). Filter by --generation or --source; an empty query
with no filters lists every person up to --limit.`,
	RunE: runCatalogFind,
}

func runCatalogFind(cmd *cobra.Command, args []string) error {
	store, err := catalog.NewStore(loadConfig().Catalog)
	if err != nil {
		return err
	}
	defer store.Close()

	results, err := store.Find(cmd.Context(), queryOptsFromFlags(cmd, args))
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatFindOutput(cmd.OutOrStdout(), results, jsonOutput)
}

func formatFindOutput(w io.Writer, results []catalog.Result, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Fprintln(w, "No results found.")
		return nil
	}

	fmt.Fprintf(w, "%-8s  %-6s  %-30s  %-10s  %s\n", "ID", "No.", "Name", "Generation", "Clause")
	fmt.Fprintln(w, strings.Repeat("-", 100))

	for _, r := range results {
		fmt.Fprintf(w, "%-8s  %-6s  %-30s  %-10s  %s\n",
			r.ID, r.EntryNumber, truncate(r.Name, 30), r.Generation, truncate(r.Clause, 40))
	}

	fmt.Fprintf(w, "\n%d results\n", len(results))
	return nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// --- show subcommand ---

var catalogShowCmd = &cobra.Command{
	Use:   "show id",
	Short: "Show one person with sections and children",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src := sourceFlag(cmd)

		store, err := catalog.NewStore(loadConfig().Catalog)
		if err != nil {
			return err
		}
		defer store.Close()

		p, err := store.Person(cmd.Context(), src, args[0])
		if err != nil {
			return err
		}
		enc := yaml.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent(2)
		if err := enc.Encode(p); err != nil {
			return err
		}
		return enc.Close()
	},
}

// --- sources subcommand ---

var catalogSourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List the ingested record books",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := catalog.NewStore(loadConfig().Catalog)
		if err != nil {
			return err
		}
		defer store.Close()

		sources, err := store.Sources(cmd.Context())
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			return enc.Encode(sources)
		}
		if len(sources) == 0 {
			fmt.Fprintln(w, "No sources ingested.")
			return nil
		}
		for _, src := range sources {
			fmt.Fprintf(w, "%s  %s persons  %s  %s\n",
				src.Path, humanize.Comma(int64(src.Persons)), src.Fingerprint[:min(12, len(src.Fingerprint))], src.IngestedAt)
		}
		return nil
	},
}

// --- export subcommand ---

var catalogExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the catalog to YAML or JSON",
	Long: `Export writes the catalog (or a filtered subset) to
<catalog-dir>/export.yaml or export.json. Supports the same filter flags
as find for partial exports.`,
	RunE: runCatalogExport,
}

func runCatalogExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	store, err := catalog.NewStore(loadConfig().Catalog)
	if err != nil {
		return err
	}
	defer store.Close()

	opts := queryOptsFromFlags(cmd, args)

	var path string
	switch format {
	case "yaml", "":
		path, err = store.ExportYAML(cmd.Context(), opts)
	case "json":
		path, err = store.ExportJSON(cmd.Context(), opts)
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Exported to", path)
	return nil
}

// --- shared helpers ---

func queryOptsFromFlags(cmd *cobra.Command, args []string) catalog.QueryOptions {
	generation, _ := cmd.Flags().GetString("generation")
	limit, _ := cmd.Flags().GetInt("limit")

	return catalog.QueryOptions{
		Query:      strings.Join(args, " "),
		Generation: generation,
		Source:     sourceFlag(cmd),
		MaxResults: limit,
	}
}

// sourceFlag returns --source as an absolute path, the form sources are
// stored under.
func sourceFlag(cmd *cobra.Command) string {
	src, _ := cmd.Flags().GetString("source")
	if src == "" {
		return ""
	}
	if abs, err := filepath.Abs(src); err == nil {
		return abs
	}
	return src
}

func init() {
	// Shared flags on the parent command, inherited by subcommands.
	catalogCmd.PersistentFlags().String("catalog-dir", "catalog", "directory holding catalog.db and exports")
	catalogCmd.PersistentFlags().Int("max-results", 20, "default maximum number of search results")
	viper.BindPFlag("catalog.dir", catalogCmd.PersistentFlags().Lookup("catalog-dir"))
	viper.BindPFlag("catalog.max_results", catalogCmd.PersistentFlags().Lookup("max-results"))

	// Store flags.
	catalogStoreCmd.Flags().Bool("force", false, "re-ingest inputs even when unchanged")

	// Find flags.
	catalogFindCmd.Flags().String("generation", "", "filter by generation label (e.g. Second)")
	catalogFindCmd.Flags().String("source", "", "filter by source path")
	catalogFindCmd.Flags().Int("limit", 0, "maximum results (0 = use default)")
	catalogFindCmd.Flags().Bool("json", false, "output results as JSON")

	// Show flags.
	catalogShowCmd.Flags().String("source", "", "source path when the id occurs in several books")

	// Sources flags.
	catalogSourcesCmd.Flags().Bool("json", false, "output sources as JSON")

	// Export flags.
	catalogExportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	catalogExportCmd.Flags().String("generation", "", "filter by generation for partial export")
	catalogExportCmd.Flags().String("source", "", "filter by source path for partial export")

	// Wire subcommands.
	catalogCmd.AddCommand(catalogStoreCmd)
	catalogCmd.AddCommand(catalogFindCmd)
	catalogCmd.AddCommand(catalogShowCmd)
	catalogCmd.AddCommand(catalogSourcesCmd)
	catalogCmd.AddCommand(catalogExportCmd)

	rootCmd.AddCommand(catalogCmd)
}
