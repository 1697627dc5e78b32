// Package report writes the dashboard as a set of static files: the filtered
// CSV export, the Excel workbook, one PNG per chart and a Markdown summary.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/twpayne/go-geom"
	"go.uber.org/zap"

	"github.com/sekarsister/pdrdash/internal/analysis"
	"github.com/sekarsister/pdrdash/internal/chart"
	"github.com/sekarsister/pdrdash/internal/pdr"
	"github.com/sekarsister/pdrdash/internal/workbook"
)

// MarkdownFile is the name of the Markdown summary.
const MarkdownFile = "rapport_pdr.md"

// chartFiles maps chart names to their PNG file names.
var chartFiles = map[string]string{
	chart.Map:      "carte_projets.png",
	chart.Budget:   "budget_province.png",
	chart.Progress: "avancement_secteur.png",
	chart.Status:   "statuts_projets.png",
}

// Generator writes reports.
type Generator struct {
	Delimiter rune
	Bounds    *geom.Bounds
	Now       func() time.Time
	Log       *zap.Logger
}

// Generate writes every report file for v into dir and returns their paths.
func (g *Generator) Generate(v analysis.View, dir string) ([]string, error) {
	log := g.Log
	if log == nil {
		log = zap.NewNop()
	}
	now := time.Now
	if g.Now != nil {
		now = g.Now
	}
	delim := g.Delimiter
	if delim == 0 {
		delim = pdr.DefaultDelimiter
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating report directory: %w", err)
	}

	var written []string

	csvPath := filepath.Join(dir, pdr.ExportFileName)
	if err := writeFile(csvPath, func(f *os.File) error { return pdr.WriteCSV(f, v.Subset, delim) }); err != nil {
		return written, fmt.Errorf("writing CSV export: %w", err)
	}
	written = append(written, csvPath)

	xlsxPath := filepath.Join(dir, workbook.FileName)
	if err := workbook.Save(v, xlsxPath); err != nil {
		return written, err
	}
	written = append(written, xlsxPath)

	for _, name := range chart.Names {
		p, err := chart.Render(name, v, g.Bounds)
		if err != nil {
			return written, fmt.Errorf("drawing %s chart: %w", name, err)
		}
		path := filepath.Join(dir, chartFiles[name])
		if err := chart.Save(p, path); err != nil {
			return written, fmt.Errorf("saving %s chart: %w", name, err)
		}
		written = append(written, path)
	}

	mdPath := filepath.Join(dir, MarkdownFile)
	if err := writeFile(mdPath, func(f *os.File) error { return WriteMarkdown(f, v, now()) }); err != nil {
		return written, fmt.Errorf("writing Markdown report: %w", err)
	}
	written = append(written, mdPath)

	log.Info("report generated",
		zap.String("dir", dir),
		zap.Int("projects", v.Count),
		zap.Int("files", len(written)))

	return written, nil
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
