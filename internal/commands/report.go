package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cleared-dev/tally/internal/importer"
	"github.com/cleared-dev/tally/internal/ledger"
	"github.com/cleared-dev/tally/internal/render"
)

func newReportCommand(a *app) *cobra.Command {
	var format string
	var category string
	var asCSV bool

	cmd := &cobra.Command{
		Use:   "report <file>",
		Short: "Load entries from a file and print a report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			registry := importer.DefaultRegistry()
			parser := registry.Get(format)
			if parser == nil {
				return fmt.Errorf("unknown format %q (available: %s)", format, strings.Join(registry.Formats(), ", "))
			}

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening %s: %w", args[0], err)
			}
			defer f.Close()

			l := a.newLedger()
			n, err := importer.Load(l, parser, f)
			if err != nil {
				return fmt.Errorf("loading %s: %w", args[0], err)
			}
			a.log.Info("entries loaded", zap.String("file", args[0]), zap.Int("count", n))

			entries := l.AllEntries()
			empty := render.NoEntries
			if cmd.Flags().Changed("category") {
				entries = l.EntriesByCategory(category)
				empty = render.NoCategoryEntries
			}

			out := cmd.OutOrStdout()
			if asCSV {
				return ledger.WriteEntries(out, entries)
			}

			p := a.printer(out)
			p.Entries(entries, empty)
			if !cmd.Flags().Changed("category") {
				fmt.Fprintln(out)
				p.CategoryTotals(l.CategoryTotals())
				fmt.Fprintln(out)
				p.Summary(l.Summary())
				return nil
			}
			p.Balance(l.TotalBalance())
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "tally", "input format (tally, chase)")
	cmd.Flags().StringVar(&category, "category", "", "only show entries in this category")
	cmd.Flags().BoolVar(&asCSV, "csv", false, "print entries as tally CSV")

	return cmd
}
