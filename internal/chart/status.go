package chart

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/sekarsister/pdrdash/internal/analysis"
)

// StatusShares draws the status distribution as a pie, largest share first,
// clockwise from twelve o'clock.
func StatusShares(v analysis.View) (*plot.Plot, error) {
	const title = "Répartition des Projets par Statut"
	if len(v.StatusDistribution) == 0 {
		return noData(title)
	}

	p := newPlot(title)
	p.HideAxes()
	p.X.Min, p.X.Max = 0, 1
	p.Y.Min, p.Y.Max = 0, 1
	p.Legend.Top = true

	pie := &pieChart{shares: v.StatusDistribution}
	for i, s := range v.StatusDistribution {
		c := plotutil.Color(i)
		pie.colors = append(pie.colors, c)
		pie.total += s.Count
		p.Legend.Add(fmt.Sprintf("%s (%d)", s.Label, s.Count), swatch{color: c})
	}
	p.Add(pie)

	return p, nil
}

type pieChart struct {
	shares []analysis.Share
	colors []color.Color
	total  int
}

// Plot implements plot.Plotter.
func (pc *pieChart) Plot(c draw.Canvas, plt *plot.Plot) {
	if pc.total == 0 {
		return
	}

	center := vg.Point{X: (c.Min.X + c.Max.X) / 2, Y: (c.Min.Y + c.Max.Y) / 2}
	radius := c.Max.X - c.Min.X
	if h := c.Max.Y - c.Min.Y; h < radius {
		radius = h
	}
	radius = radius / 2 * 0.9

	sty := plt.Legend.TextStyle
	sty.XAlign = draw.XCenter
	sty.YAlign = draw.YCenter

	start := math.Pi / 2
	for i, s := range pc.shares {
		frac := float64(s.Count) / float64(pc.total)
		sweep := 2 * math.Pi * frac

		var wedge vg.Path
		wedge.Move(center)
		wedge.Arc(center, radius, start, -sweep)
		wedge.Close()
		c.SetColor(pc.colors[i])
		c.Fill(wedge)

		mid := start - sweep/2
		at := vg.Point{
			X: center.X + radius*0.65*vg.Length(math.Cos(mid)),
			Y: center.Y + radius*0.65*vg.Length(math.Sin(mid)),
		}
		c.FillText(sty, at, fmt.Sprintf("%.1f%%", 100*frac))

		start -= sweep
	}
}

// swatch is the legend thumbnail of a pie wedge.
type swatch struct {
	color color.Color
}

func (s swatch) Thumbnail(c *draw.Canvas) {
	pts := []vg.Point{
		{X: c.Min.X, Y: c.Min.Y},
		{X: c.Min.X, Y: c.Max.Y},
		{X: c.Max.X, Y: c.Max.Y},
		{X: c.Max.X, Y: c.Min.Y},
	}
	c.FillPolygon(s.color, c.ClipPolygonY(pts))
}
