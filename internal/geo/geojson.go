package geo

import (
	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/sekarsister/pdrdash/internal/pdr"
)

// FeatureCollection returns the located projects of t as GeoJSON points.
// Projects without a location are skipped.
func FeatureCollection(t *pdr.Table) *geojson.FeatureCollection {
	fc := &geojson.FeatureCollection{Features: []*geojson.Feature{}}
	for _, p := range t.Projects {
		if p.Location == nil {
			continue
		}
		fc.Features = append(fc.Features, &geojson.Feature{
			Geometry: p.Location,
			Properties: map[string]interface{}{
				"titre":     p.Title,
				"province":  p.Province,
				"secteur":   p.Sector,
				"statut":    p.Status,
				"budget_dh": p.Budget,
			},
		})
	}
	return fc
}
