// Package geo places projects on the map. The source table carries no
// coordinates, so positions are drawn uniformly around a fixed centre from a
// seeded generator: reproducible within a process, not geographically true.
package geo

import (
	"math/rand/v2"

	"github.com/twpayne/go-geom"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/sekarsister/pdrdash/internal/pdr"
)

// SRID of the synthetic points (WGS 84).
const SRID = 4326

// Jitter describes the sampling window around the map centre.
type Jitter struct {
	CenterLat float64 `yaml:"center_lat"`
	CenterLon float64 `yaml:"center_lon"`
	HalfLat   float64 `yaml:"half_lat"`
	HalfLon   float64 `yaml:"half_lon"`
	Seed      uint64  `yaml:"seed"`
}

// MarrakechSafi is the window used by the strategic dashboard.
var MarrakechSafi = Jitter{
	CenterLat: 31.62,
	CenterLon: -8.00,
	HalfLat:   0.5,
	HalfLon:   0.8,
	Seed:      42,
}

// Points draws n positions. All latitudes are drawn first, then all
// longitudes, from a single stream seeded with j.Seed.
func (j Jitter) Points(n int) []*geom.Point {
	src := rand.NewPCG(j.Seed, j.Seed)
	lat := distuv.Uniform{Min: j.CenterLat - j.HalfLat, Max: j.CenterLat + j.HalfLat, Src: src}
	lon := distuv.Uniform{Min: j.CenterLon - j.HalfLon, Max: j.CenterLon + j.HalfLon, Src: src}

	lats := make([]float64, n)
	for i := range lats {
		lats[i] = lat.Rand()
	}

	points := make([]*geom.Point, n)
	for i := range points {
		points[i] = geom.NewPointFlat(geom.XY, []float64{lon.Rand(), lats[i]}).SetSRID(SRID)
	}
	return points
}

// Enrich gives every project of t a synthetic location.
func (j Jitter) Enrich(t *pdr.Table) {
	points := j.Points(t.Len())
	for i := range t.Projects {
		t.Projects[i].Location = points[i]
	}
	t.Located = true
}

// Bounds returns the sampling window.
func (j Jitter) Bounds() *geom.Bounds {
	return geom.NewBounds(geom.XY).Set(
		j.CenterLon-j.HalfLon, j.CenterLat-j.HalfLat,
		j.CenterLon+j.HalfLon, j.CenterLat+j.HalfLat,
	)
}
