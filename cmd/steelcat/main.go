// Command steelcat looks up, searches and exports structural steel section
// data from the UK tables.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	gojson "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/hupe1980/steelcat"
	"github.com/hupe1980/steelcat/catalog"
	"github.com/hupe1980/steelcat/export"
	"github.com/hupe1980/steelcat/query"
	"github.com/hupe1980/steelcat/regions/uk"
)

var (
	dataDir     string
	sectionType string
	verbose     bool
)

var rootCmd = &cobra.Command{
	Use:   "steelcat",
	Short: "Reference-data catalog for structural steel cross-sections",
	Long: `steelcat resolves human-entered section designations (e.g. "457x191x67")
against the published UK steel tables, filters sections by property
criteria, and materializes the catalog into a SQLite database.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
}

var getCmd = &cobra.Command{
	Use:   "get <designation>",
	Short: "Resolve a designation and print the section's properties",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		factory := buildFactory()

		var section steelcat.Section
		var err error
		if sectionType != "" {
			section, err = factory.Create(args[0], catalog.SectionType(sectionType))
		} else {
			section, err = factory.Create(args[0])
		}
		if err != nil {
			return err
		}

		return printJSON(cmd, map[string]any{
			"section_type": section.SectionType().String(),
			"designation":  section.Designation(),
			"properties":   section.Properties().Plain(),
		})
	},
}

var searchCmd = &cobra.Command{
	Use:   "search <criterion>...",
	Short: "Filter sections by property criteria",
	Long: `Criteria take the form <property>__<op>=<value> with operators
eq, ne, gt, lt, gte and lte; a bare <property>=<value> means equality.

  steelcat search --type UB mass_per_metre__gt=50 h__lt=500`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if sectionType == "" {
			return fmt.Errorf("search requires --type")
		}

		criteria, err := parseCriteria(args)
		if err != nil {
			return err
		}

		cat := buildFactory().Catalog()
		matches := cat.Search(catalog.SectionType(sectionType), criteria)

		out := make([]map[string]any, 0, len(matches))
		for _, m := range matches {
			out = append(out, map[string]any{
				"designation": m.Designation,
				"properties":  m.Record.Clean().Plain(),
			})
		}
		return printJSON(cmd, out)
	},
}

var exportCmd = &cobra.Command{
	Use:   "export <database-path>",
	Short: "Materialize the catalog into a SQLite database",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")

		cat := buildFactory().Catalog()
		exporter := export.NewExporter(args[0], export.WithLogger(slog.Default()))
		if err := exporter.Materialize(cmd.Context(), cat, force); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "exported %d section types to %s\n",
			len(cat.AvailableTypes()), args[0])
		return nil
	},
}

var typesCmd = &cobra.Command{
	Use:   "types",
	Short: "List section types and their record counts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cat := buildFactory().Catalog()
		for _, st := range cat.SupportedTypes() {
			if !cat.Loaded(st) {
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%-16s %d\n", st.String(), len(cat.List(st)))
		}
		return nil
	},
}

// buildFactory loads the UK catalog from the configured data directory. The
// CLI is one-shot, so the region's shared default factory is bypassed.
func buildFactory() *steelcat.Factory {
	return uk.NewFactory(catalog.Load(
		uk.NewSource(os.DirFS(dataDir)),
		catalog.WithLogger(slog.Default()),
	))
}

// parseCriteria turns "prop__op=value" arguments into search criteria,
// coercing numeric and boolean values so comparisons behave as typed.
func parseCriteria(args []string) (query.Criteria, error) {
	criteria := make(query.Criteria, len(args))
	for _, arg := range args {
		key, raw, ok := strings.Cut(arg, "=")
		if !ok {
			return nil, fmt.Errorf("invalid criterion %q: want <property>__<op>=<value>", arg)
		}
		criteria[key] = coerceValue(raw)
	}
	return criteria, nil
}

func coerceValue(raw string) any {
	if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f
	}
	if b, err := strconv.ParseBool(raw); err == nil {
		return b
	}
	return raw
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := gojson.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func main() {
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", "data/UK", "directory holding the <TYPE>.json tables")
	rootCmd.PersistentFlags().StringVarP(&sectionType, "type", "t", "", "section type tag (e.g. UB, PFC)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	exportCmd.Flags().Bool("force", false, "rebuild the database even if it exists")

	rootCmd.AddCommand(getCmd, searchCmd, exportCmd, typesCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
