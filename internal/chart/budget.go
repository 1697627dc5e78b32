package chart

import (
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/sekarsister/pdrdash/internal/analysis"
	"github.com/sekarsister/pdrdash/internal/pdr"
)

// BudgetByProvince draws the horizontal budget bars, one per province,
// largest at the top.
func BudgetByProvince(v analysis.View) (*plot.Plot, error) {
	const title = "Budget Alloué par Province (DH)"
	if len(v.BudgetByProvince) == 0 {
		return noData(title)
	}

	p := newPlot(title)
	p.X.Label.Text = "Budget_DH"

	values := make(plotter.Values, len(v.BudgetByProvince))
	labels := make([]string, len(v.BudgetByProvince))
	points := make(plotter.XYs, len(v.BudgetByProvince))
	amounts := make([]string, len(v.BudgetByProvince))
	maxBudget := 0.0

	for i, a := range v.BudgetByProvince {
		values[i] = a.Value
		labels[i] = a.Label
		points[i] = plotter.XY{X: a.Value, Y: float64(i)}
		amounts[i] = pdr.ShortAmount(a.Value)
		if a.Value > maxBudget {
			maxBudget = a.Value
		}
	}

	bars, err := plotter.NewBarChart(values, vg.Points(14))
	if err != nil {
		return nil, err
	}
	bars.Horizontal = true
	bars.Color = color.RGBA{R: 70, G: 130, B: 180, A: 255}
	bars.LineStyle.Width = vg.Length(0)
	p.Add(bars)

	text, err := plotter.NewLabels(plotter.XYLabels{XYs: points, Labels: amounts})
	if err != nil {
		return nil, err
	}
	text.Offset = vg.Point{X: vg.Points(4)}
	p.Add(text)

	p.NominalY(labels...)
	p.X.Min = 0
	p.X.Max = maxBudget * 1.2
	if p.X.Max == 0 {
		p.X.Max = 1
	}
	p.Add(plotter.NewGrid())

	return p, nil
}
