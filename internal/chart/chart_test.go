package chart

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/vg"

	"github.com/sekarsister/pdrdash/internal/analysis"
	"github.com/sekarsister/pdrdash/internal/geo"
	"github.com/sekarsister/pdrdash/internal/pdr"
)

func sampleView(t *testing.T, located bool) analysis.View {
	t.Helper()
	table := pdr.NewTable(
		pdr.Project{Province: "A", Sector: "X", Title: "A-X", Budget: 6000000, Status: "Delayed", Progress: 40},
		pdr.Project{Province: "A", Sector: "Y", Title: "A-Y", Budget: 1000000, Status: "Completed", Progress: 100},
		pdr.Project{Province: "B", Sector: "X", Title: "B-X", Budget: 7000000, Status: "Suspended", Progress: 10},
	)
	if located {
		geo.MarrakechSafi.Enrich(table)
	}
	return analysis.Build(table, analysis.AllOf(table), analysis.DefaultOptions())
}

func TestRenderAllCharts(t *testing.T) {
	v := sampleView(t, true)

	for _, name := range Names {
		t.Run(name, func(t *testing.T) {
			p, err := Render(name, v, geo.MarrakechSafi.Bounds())
			require.NoError(t, err)
			require.NotNil(t, p)

			var buf bytes.Buffer
			require.NoError(t, WriteSVG(&buf, p))
			assert.Contains(t, buf.String(), "<svg")
		})
	}
}

func TestRenderEmptyView(t *testing.T) {
	v := sampleView(t, true)
	v = analysis.Build(v.Subset, analysis.Selection{}, analysis.DefaultOptions())
	require.True(t, v.Empty())

	for _, name := range Names {
		t.Run(name, func(t *testing.T) {
			p, err := Render(name, v, nil)
			require.NoError(t, err)

			var buf bytes.Buffer
			require.NoError(t, WriteSVG(&buf, p))
		})
	}
}

func TestProjectMapWithoutLocations(t *testing.T) {
	v := sampleView(t, false)

	p, err := ProjectMap(v, nil)
	require.NoError(t, err)
	assert.Empty(t, p.X.Label.Text, "unlocated tables render the no-data plot")
}

func TestRenderUnknown(t *testing.T) {
	_, err := Render("camembert", sampleView(t, false), nil)
	assert.ErrorIs(t, err, ErrUnknownChart)
}

func TestSavePNG(t *testing.T) {
	p, err := BudgetByProvince(sampleView(t, false))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "budget.png")
	require.NoError(t, Save(p, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestBubbleRadius(t *testing.T) {
	assert.Equal(t, vg.Points(minBubble), bubbleRadius(0, 10))
	assert.Equal(t, vg.Points(minBubble), bubbleRadius(5, 0))
	assert.Equal(t, vg.Points(maxBubble), bubbleRadius(10, 10))
	assert.Less(t, bubbleRadius(1, 10), bubbleRadius(4, 10))
}
