// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/sympo-pubtools/internal/catalog"
	"github.com/pdiddy/sympo-pubtools/internal/program"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Index and search the program catalog",
	Long: `Catalog keeps a SQLite copy of the program with a full-text index over
paper titles, abstracts, authors and keywords. Use subcommands to rebuild
the index from session data, search it, or export it.`,
}

var catalogIndexCmd = &cobra.Command{
	Use:   "index",
	Short: "Replace the catalog with the session data",
	RunE:  runCatalogIndex,
}

func runCatalogIndex(cmd *cobra.Command, args []string) error {
	dataPath, _ := cmd.Flags().GetString("data")
	sessions, err := program.LoadSessions(dataPath)
	if err != nil {
		return err
	}

	store, err := catalog.NewStore(catalogConfig())
	if err != nil {
		return err
	}
	defer store.Close()

	summary, err := store.Index(context.Background(), sessions, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	logger.Info().Int("sessions", summary.Sessions).Int("papers", summary.Papers).Msg("indexed catalog")
	return nil
}

var catalogSearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the catalog",
	Long: `Search runs an FTS5 query (e.g. "chaos", "authors:yamada", "reservoir*")
over the catalog, optionally restricted to a session or category. Without
a query it lists the matching papers in program order.`,
	RunE: runCatalogSearch,
}

func runCatalogSearch(cmd *cobra.Command, args []string) error {
	store, err := catalog.NewStore(catalogConfig())
	if err != nil {
		return err
	}
	defer store.Close()

	results, err := store.Search(context.Background(), queryOptsFromFlags(cmd, args))
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		data, err := program.Marshal("results.json", results)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}

	out := cmd.OutOrStdout()
	if len(results) == 0 {
		fmt.Fprintln(out, "No results found.")
		return nil
	}
	fmt.Fprintf(out, "%-8s  %-50s  %-30s  %s\n", "Number", "Title", "Authors", "Pages")
	fmt.Fprintln(out, strings.Repeat("-", 100))
	for _, r := range results {
		pages := "-"
		if r.Pages != nil {
			pages = fmt.Sprintf("%d-%d", r.Pages.From(), r.Pages.To())
		}
		fmt.Fprintf(out, "%-8s  %-50s  %-30s  %s\n",
			r.Number, truncate(r.Title, 50), truncate(strings.Join(r.Authors, ", "), 30), pages)
	}
	fmt.Fprintf(out, "\n%d results\n", len(results))
	return nil
}

var catalogExportCmd = &cobra.Command{
	Use:   "export [query]",
	Short: "Export the catalog to YAML or JSON",
	Long: `Export writes the catalog (or the subset matching the same filters as
search) to export.yaml or export.json in the catalog directory.`,
	RunE: runCatalogExport,
}

func runCatalogExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	store, err := catalog.NewStore(catalogConfig())
	if err != nil {
		return err
	}
	defer store.Close()

	opts := queryOptsFromFlags(cmd, args)
	var path string
	switch format {
	case "yaml", "":
		path, err = store.ExportYAML(context.Background(), opts)
	case "json":
		path, err = store.ExportJSON(context.Background(), opts)
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
	session, _ := cmd.Flags().GetString("session")
	category, _ := cmd.Flags().GetString("category")
	limit, _ := cmd.Flags().GetInt("limit")
	return catalog.QueryOptions{
		Query:       strings.Join(args, " "),
		SessionCode: session,
		Category:    category,
		MaxResults:  limit,
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func init() {
	catalogCmd.PersistentFlags().String("dir", "catalog", "catalog directory (contains program.db)")
	catalogCmd.PersistentFlags().Int("max-results", 20, "default maximum number of search results")
	bindFlags(catalogCmd, "catalog", "dir", "max-results")

	catalogIndexCmd.Flags().String("data", "data.json", "session data file")

	for _, c := range []*cobra.Command{catalogSearchCmd, catalogExportCmd} {
		c.Flags().String("session", "", "filter by session code")
		c.Flags().String("category", "", "filter by category tag: s, r, p, i")
	}
	catalogSearchCmd.Flags().Int("limit", 0, "maximum results (0 = use default)")
	catalogSearchCmd.Flags().Bool("json", false, "output results as JSON")
	catalogExportCmd.Flags().String("format", "yaml", "export format: yaml or json")

	catalogCmd.AddCommand(catalogIndexCmd)
	catalogCmd.AddCommand(catalogSearchCmd)
	catalogCmd.AddCommand(catalogExportCmd)

	rootCmd.AddCommand(catalogCmd)
}
