// Package chart draws the dashboard charts with gonum/plot.
package chart

import (
	"errors"
	"fmt"
	"io"

	"github.com/twpayne/go-geom"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/sekarsister/pdrdash/internal/analysis"
	"github.com/sekarsister/pdrdash/internal/pdr"
)

// Chart names, as used in URLs and file names.
const (
	Budget   = "budget"
	Progress = "avancement"
	Status   = "statuts"
	Map      = "carte"
)

// Names lists every chart in dashboard order.
var Names = []string{Map, Budget, Progress, Status}

// ErrUnknownChart is returned by Render for a name not in Names.
var ErrUnknownChart = errors.New("unknown chart")

// Default canvas size.
const (
	Width  = 20 * vg.Centimeter
	Height = 12 * vg.Centimeter
)

// Render draws the named chart for v. bounds frames the map; it may be nil
// for the other charts.
func Render(name string, v analysis.View, bounds *geom.Bounds) (*plot.Plot, error) {
	switch name {
	case Budget:
		return BudgetByProvince(v)
	case Progress:
		return ProgressBySector(v)
	case Status:
		return StatusShares(v)
	case Map:
		return ProjectMap(v, bounds)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownChart, name)
}

// Save writes p to path; the format follows the file extension.
func Save(p *plot.Plot, path string) error {
	return p.Save(Width, Height, path)
}

// WriteSVG streams p to w as SVG.
func WriteSVG(w io.Writer, p *plot.Plot) error {
	wt, err := p.WriterTo(Width, Height, "svg")
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}

func newPlot(title string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = vg.Points(14)
	return p
}

// noData is drawn instead of a chart when the filters leave nothing to plot.
func noData(title string) (*plot.Plot, error) {
	p := newPlot(title)
	p.HideAxes()
	p.X.Min, p.X.Max = 0, 1
	p.Y.Min, p.Y.Max = 0, 1

	label, err := plotter.NewLabels(plotter.XYLabels{
		XYs:    []plotter.XY{{X: 0.5, Y: 0.5}},
		Labels: []string{pdr.NoData},
	})
	if err != nil {
		return nil, err
	}
	p.Add(label)
	return p, nil
}
