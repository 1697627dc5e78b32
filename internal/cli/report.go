package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/sekarsister/pdrdash/internal/analysis"
	"github.com/sekarsister/pdrdash/internal/pdr"
	"github.com/sekarsister/pdrdash/internal/report"
)

// ReportOptions holds the report command flags.
type ReportOptions struct {
	OutputDir string
	Provinces []string
	Sectors   []string
}

// NewReportCommand creates the report command.
func NewReportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReportOptions{}

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Write the dashboard as static files",
		Long: `Write the filtered CSV export, an Excel workbook, the four charts as PNG
and a Markdown summary. Without --province or --secteur every value is kept.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd, rootOpts, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.OutputDir, "out", "o", "", "output directory (default from config, rapport)")
	cmd.Flags().StringArrayVar(&opts.Provinces, "province", nil, "provinces to keep (repeatable)")
	cmd.Flags().StringArrayVar(&opts.Sectors, "secteur", nil, "sectors to keep (repeatable)")

	return cmd
}

func runReport(cmd *cobra.Command, rootOpts *RootOptions, opts *ReportOptions) error {
	cfg := rootOpts.Config
	dir := opts.OutputDir
	if dir == "" {
		dir = cfg.Report.OutputDir
	}

	table, err := rootOpts.cache().Table()
	if err != nil {
		return loadError(err)
	}

	sel := selection(table, opts)
	v := analysis.Build(table, sel, cfg.Options())

	gen := &report.Generator{
		Delimiter: cfg.Delimiter(),
		Bounds:    cfg.Geo.Bounds(),
		Log:       rootOpts.Logger,
	}
	files, err := gen.Generate(v, dir)
	if err != nil {
		return WrapExitError(ExitFailure, "report failed", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "📊 Projets retenus: %d / %d\n", v.Count, table.Len())
	fmt.Fprintf(out, "💰 Budget: %s\n", pdr.FormatDH(v.TotalBudget))
	fmt.Fprintf(out, "🚨 Alertes critiques: %d\n", len(v.Critical))
	fmt.Fprintf(out, "📁 Fichiers générés dans %s:\n", dir)
	for _, f := range files {
		fmt.Fprintf(out, "   - %s\n", filepath.Base(f))
	}
	return nil
}

// selection turns the flags into a filter; an unset flag keeps every value.
func selection(t *pdr.Table, opts *ReportOptions) analysis.Selection {
	sel := analysis.AllOf(t)
	if len(opts.Provinces) > 0 {
		sel.Provinces = analysis.NewSet(opts.Provinces...)
	}
	if len(opts.Sectors) > 0 {
		sel.Sectors = analysis.NewSet(opts.Sectors...)
	}
	return sel
}
