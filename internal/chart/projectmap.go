package chart

import (
	"math"

	"github.com/twpayne/go-geom"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/sekarsister/pdrdash/internal/analysis"
	"github.com/sekarsister/pdrdash/internal/pdr"
)

const (
	minBubble = 3
	maxBubble = 14
)

// ProjectMap scatters the located projects by longitude and latitude: one
// colour per sector, bubble area growing with the budget. bounds, when set,
// fixes the visible window.
func ProjectMap(v analysis.View, bounds *geom.Bounds) (*plot.Plot, error) {
	const title = "Répartition Géographique des Investissements"
	if v.Subset == nil || !v.Subset.Located || v.Subset.Len() == 0 {
		return noData(title)
	}

	p := newPlot(title)
	p.X.Label.Text = "Longitude"
	p.Y.Label.Text = "Latitude"
	p.Legend.Top = true

	maxBudget := 0.0
	for _, proj := range v.Subset.Projects {
		maxBudget = math.Max(maxBudget, proj.Budget)
	}

	for i, sector := range v.SubsetSectors {
		var projects []pdr.Project
		for _, proj := range v.Subset.Projects {
			if proj.Sector == sector && proj.Location != nil {
				projects = append(projects, proj)
			}
		}
		if len(projects) == 0 {
			continue
		}

		points := make(plotter.XYs, len(projects))
		for j, proj := range projects {
			points[j].X = proj.Lon()
			points[j].Y = proj.Lat()
		}

		bubbles, err := plotter.NewScatter(points)
		if err != nil {
			return nil, err
		}
		c := plotutil.Color(i)
		bubbles.GlyphStyle.Color = c
		bubbles.GlyphStyle.Shape = draw.CircleGlyph{}
		bubbles.GlyphStyle.Radius = vg.Points(minBubble)
		bubbles.GlyphStyleFunc = func(j int) draw.GlyphStyle {
			return draw.GlyphStyle{
				Color:  c,
				Shape:  draw.CircleGlyph{},
				Radius: bubbleRadius(projects[j].Budget, maxBudget),
			}
		}

		p.Add(bubbles)
		p.Legend.Add(sector, bubbles)
	}

	if bounds != nil {
		p.X.Min, p.X.Max = bounds.Min(0), bounds.Max(0)
		p.Y.Min, p.Y.Max = bounds.Min(1), bounds.Max(1)
	}
	p.Add(plotter.NewGrid())

	return p, nil
}

// bubbleRadius scales the radius with the square root of the budget so the
// bubble area is proportional to it.
func bubbleRadius(budget, maxBudget float64) vg.Length {
	if maxBudget <= 0 || budget <= 0 {
		return vg.Points(minBubble)
	}
	return vg.Points(minBubble + (maxBubble-minBubble)*math.Sqrt(budget/maxBudget))
}
