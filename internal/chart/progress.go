package chart

import (
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/sekarsister/pdrdash/internal/analysis"
)

// ProgressBySector draws one box per sector over the completion percentages.
func ProgressBySector(v analysis.View) (*plot.Plot, error) {
	const title = "Dispersion de l'avancement des projets par secteur"
	if len(v.SubsetSectors) == 0 {
		return noData(title)
	}

	p := newPlot(title)
	p.X.Label.Text = "Secteur"
	p.Y.Label.Text = "Taux_Avancement (%)"

	top := 100.0
	for i, sector := range v.SubsetSectors {
		values := plotter.Values(v.ProgressBySector[sector])
		for _, x := range values {
			if x > top {
				top = x
			}
		}

		box, err := plotter.NewBoxPlot(vg.Points(30), float64(i), values)
		if err != nil {
			return nil, err
		}
		box.FillColor = plotutil.Color(i)
		p.Add(box)
	}

	p.NominalX(v.SubsetSectors...)
	p.Y.Min = 0
	p.Y.Max = top * 1.05
	p.Add(plotter.NewGrid())

	return p, nil
}
