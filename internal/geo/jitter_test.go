package geo

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sekarsister/pdrdash/internal/pdr"
)

func TestPointsReproducible(t *testing.T) {
	first := MarrakechSafi.Points(20)
	second := MarrakechSafi.Points(20)

	require.Len(t, first, 20)
	for i := range first {
		assert.Equal(t, first[i].FlatCoords(), second[i].FlatCoords(), "point %d", i)
		assert.Equal(t, SRID, first[i].SRID())
	}
}

func TestPointsSeedMatters(t *testing.T) {
	other := MarrakechSafi
	other.Seed = 7

	a := MarrakechSafi.Points(5)
	b := other.Points(5)
	assert.NotEqual(t, a[0].FlatCoords(), b[0].FlatCoords())
}

func TestPointsWithinWindow(t *testing.T) {
	bounds := MarrakechSafi.Bounds()
	for _, p := range MarrakechSafi.Points(500) {
		assert.GreaterOrEqual(t, p.X(), bounds.Min(0))
		assert.LessOrEqual(t, p.X(), bounds.Max(0))
		assert.GreaterOrEqual(t, p.Y(), bounds.Min(1))
		assert.LessOrEqual(t, p.Y(), bounds.Max(1))
	}
}

func TestBounds(t *testing.T) {
	b := MarrakechSafi.Bounds()
	assert.InDelta(t, -8.8, b.Min(0), 1e-9)
	assert.InDelta(t, 31.12, b.Min(1), 1e-9)
	assert.InDelta(t, -7.2, b.Max(0), 1e-9)
	assert.InDelta(t, 32.12, b.Max(1), 1e-9)
}

func TestEnrich(t *testing.T) {
	table := pdr.NewTable(
		pdr.Project{Province: "A", Sector: "X", Budget: 1},
		pdr.Project{Province: "B", Sector: "Y", Budget: 2},
	)

	MarrakechSafi.Enrich(table)

	assert.True(t, table.Located)
	points := MarrakechSafi.Points(2)
	for i, p := range table.Projects {
		require.NotNil(t, p.Location)
		assert.Equal(t, points[i].FlatCoords(), p.Location.FlatCoords())
		assert.Equal(t, points[i].Y(), p.Lat())
		assert.Equal(t, points[i].X(), p.Lon())
	}
	assert.Equal(t, "A", table.Projects[0].Province)
	assert.Equal(t, 2.0, table.Projects[1].Budget)
}

func TestEnrichEmptyTable(t *testing.T) {
	table := pdr.NewTable()
	MarrakechSafi.Enrich(table)
	assert.True(t, table.Located)
	assert.Equal(t, 0, table.Len())
}

func TestFeatureCollection(t *testing.T) {
	table := pdr.NewTable(
		pdr.Project{Province: "A", Sector: "X", Title: "Pont", Status: "Delayed", Budget: 6000000},
		pdr.Project{Province: "B", Sector: "Y", Title: "Puits", Status: "Completed", Budget: 10},
	)
	MarrakechSafi.Enrich(table)
	table.Projects[1].Location = nil

	data, err := json.Marshal(FeatureCollection(table))
	require.NoError(t, err)

	var decoded struct {
		Type     string `json:"type"`
		Features []struct {
			Geometry struct {
				Type        string    `json:"type"`
				Coordinates []float64 `json:"coordinates"`
			} `json:"geometry"`
			Properties map[string]interface{} `json:"properties"`
		} `json:"features"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, "FeatureCollection", decoded.Type)
	require.Len(t, decoded.Features, 1)
	assert.Equal(t, "Point", decoded.Features[0].Geometry.Type)
	assert.Len(t, decoded.Features[0].Geometry.Coordinates, 2)
	assert.Equal(t, "Pont", decoded.Features[0].Properties["titre"])
	assert.Equal(t, 6000000.0, decoded.Features[0].Properties["budget_dh"])
}
