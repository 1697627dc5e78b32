package analysis

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sekarsister/pdrdash/internal/pdr"
)

var (
	rowA6 = pdr.Project{Province: "A", Sector: "X", Title: "A-X", Budget: 6000000, Status: "Delayed", Progress: 40}
	rowA1 = pdr.Project{Province: "A", Sector: "Y", Title: "A-Y", Budget: 1000000, Status: "Completed", Progress: 100}
	rowB7 = pdr.Project{Province: "B", Sector: "X", Title: "B-X", Budget: 7000000, Status: "Suspended", Progress: 10}
)

func scenarioTable() *pdr.Table {
	return pdr.NewTable(rowA6, rowA1, rowB7)
}

func fixtureTable(t *testing.T) *pdr.Table {
	t.Helper()
	table, err := pdr.Load("../pdr/testdata/projects.csv", pdr.DefaultDelimiter)
	require.NoError(t, err)
	return table
}

func TestScenarioAllSelected(t *testing.T) {
	table := scenarioTable()
	sel := Selection{Provinces: NewSet("A", "B"), Sectors: NewSet("X", "Y")}

	subset := Filter(table, sel).Projects
	assert.Equal(t, 14000000.0, TotalBudget(subset))
	assert.Equal(t, 3, Count(subset))

	critical := CriticalProjects(subset, DefaultCriticalRule)
	if diff := cmp.Diff([]pdr.Project{rowB7, rowA6}, critical); diff != "" {
		t.Errorf("CriticalProjects mismatch (-want +got):\n%s", diff)
	}
}

func TestScenarioProvinceA(t *testing.T) {
	table := scenarioTable()
	sel := Selection{Provinces: NewSet("A"), Sectors: NewSet("X", "Y")}

	subset := Filter(table, sel).Projects
	assert.Equal(t, []pdr.Project{rowA6, rowA1}, subset)
	assert.Equal(t, map[string]float64{"A": 7000000}, BudgetByProvince(subset))
	assert.Equal(t, []pdr.Project{rowA6}, CriticalProjects(subset, DefaultCriticalRule))
}

func TestFilterIdentity(t *testing.T) {
	table := fixtureTable(t)
	got := Filter(table, AllOf(table))
	assert.Equal(t, table.Projects, got.Projects)
	assert.Equal(t, table.Columns, got.Columns)
}

func TestFilterEmptySelection(t *testing.T) {
	table := fixtureTable(t)

	none := Selection{Provinces: NewSet(), Sectors: NewSet(Sectors(table)...)}
	assert.Equal(t, 0, Filter(table, none).Len())

	none = Selection{Provinces: NewSet(Provinces(table)...), Sectors: nil}
	assert.Equal(t, 0, Filter(table, none).Len())
}

func TestFilterKeepsLocation(t *testing.T) {
	table := scenarioTable()
	table.Located = true
	got := Filter(table, AllOf(table))
	assert.True(t, got.Located)
}

// subsets enumerates every subset of values.
func subsets(values []string) []Set {
	var out []Set
	for mask := 0; mask < 1<<len(values); mask++ {
		s := NewSet()
		for i, v := range values {
			if mask&(1<<i) != 0 {
				s[v] = struct{}{}
			}
		}
		out = append(out, s)
	}
	return out
}

func TestFilterSoundAndComplete(t *testing.T) {
	table := fixtureTable(t)

	for _, provinces := range subsets(Provinces(table)) {
		for _, sectors := range subsets(Sectors(table)) {
			got := Filter(table, Selection{Provinces: provinces, Sectors: sectors}).Projects

			var want []pdr.Project
			for _, p := range table.Projects {
				if provinces.Has(p.Province) && sectors.Has(p.Sector) {
					want = append(want, p)
				}
			}
			require.Equal(t, want, got)

			for _, p := range got {
				require.True(t, provinces.Has(p.Province))
				require.True(t, sectors.Has(p.Sector))
			}
		}
	}
}

func TestTotalBudgetMonotone(t *testing.T) {
	table := fixtureTable(t)
	full := TotalBudget(table.Projects)
	allSectors := NewSet(Sectors(table)...)

	for _, provinces := range subsets(Provinces(table)) {
		sub := TotalBudget(Filter(table, Selection{Provinces: provinces, Sectors: allSectors}).Projects)
		assert.LessOrEqual(t, sub, full)

		for p := range provinces {
			smaller := NewSet()
			for q := range provinces {
				if q != p {
					smaller[q] = struct{}{}
				}
			}
			shrunk := TotalBudget(Filter(table, Selection{Provinces: smaller, Sectors: allSectors}).Projects)
			assert.LessOrEqual(t, shrunk, sub)
		}
	}
}

func TestAggregatesEmpty(t *testing.T) {
	assert.Equal(t, 0.0, TotalBudget(nil))
	assert.Equal(t, 0, Count(nil))

	avg, ok := AvgProgress(nil)
	assert.False(t, ok)
	assert.Equal(t, 0.0, avg)

	assert.Empty(t, BudgetByProvince(nil))
	assert.Empty(t, StatusDistribution(nil))
	assert.Empty(t, ProgressBySector(nil))
	assert.Empty(t, CriticalProjects(nil, DefaultCriticalRule))
}

func TestAvgProgress(t *testing.T) {
	avg, ok := AvgProgress(scenarioTable().Projects)
	assert.True(t, ok)
	assert.InDelta(t, 50.0, avg, 1e-9)
}

func TestStatusDistribution(t *testing.T) {
	table := fixtureTable(t)
	assert.Equal(t, map[string]int{
		"En Retard": 2,
		"Suspendu":  1,
		"En Cours":  2,
		"Achevé":    1,
	}, StatusDistribution(table.Projects))
	assert.Equal(t, 2, CountStatus(table.Projects, DefaultDelayedStatuses...))
}

func TestProgressBySector(t *testing.T) {
	got := ProgressBySector(scenarioTable().Projects)
	assert.Equal(t, map[string][]float64{"X": {40, 10}, "Y": {100}}, got)
}

func TestSortAmounts(t *testing.T) {
	got := SortAmounts(map[string]float64{"B": 7, "A": 7, "C": 1})
	assert.Equal(t, []Amount{{"C", 1}, {"A", 7}, {"B", 7}}, got)
}

func TestSortShares(t *testing.T) {
	got := SortShares(map[string]int{"Delayed": 1, "Completed": 3, "Active": 1})
	assert.Equal(t, []Share{{"Completed", 3}, {"Active", 1}, {"Delayed", 1}}, got)
}

func TestCriticalProjectsRule(t *testing.T) {
	ps := []pdr.Project{
		{Title: "p1", Status: "Delayed", Budget: 9000000},
		{Title: "p2", Status: "Delayed", Budget: 5000000},
		{Title: "p3", Status: "Completed", Budget: 20000000},
		{Title: "p4", Status: "Suspended", Budget: 9000000},
		{Title: "p5", Status: "En Retard", Budget: 12000000},
		{Title: "p6", Status: "Suspendu", Budget: 6000000},
		{Title: "p7", Status: "Delayed", Budget: 5500000},
		{Title: "p8", Status: "Delayed", Budget: 9000000},
	}

	got := CriticalProjects(ps, DefaultCriticalRule)

	var titles []string
	for _, p := range got {
		titles = append(titles, p.Title)
	}
	assert.Equal(t, []string{"p5", "p1", "p4", "p8", "p6"}, titles)

	for i, p := range got {
		assert.Greater(t, p.Budget, DefaultCriticalRule.BudgetThreshold)
		if i > 0 {
			assert.GreaterOrEqual(t, got[i-1].Budget, p.Budget)
		}
	}
}

func TestCriticalProjectsLimit(t *testing.T) {
	ps := scenarioTable().Projects

	rule := DefaultCriticalRule
	rule.Limit = 1
	assert.Equal(t, []pdr.Project{rowB7}, CriticalProjects(ps, rule))

	rule.Limit = 0
	assert.Empty(t, CriticalProjects(ps, rule))

	rule = DefaultCriticalRule
	rule.BudgetThreshold = 7000000
	assert.Empty(t, CriticalProjects(ps, rule))
}

func TestBuild(t *testing.T) {
	table := fixtureTable(t)
	sel := AllOf(table)
	sel.Provinces = NewSet("Marrakech", "Safi", "Chichaoua")

	v := Build(table, sel, DefaultOptions())

	assert.Equal(t, []string{"Marrakech", "Safi", "El Kelaa des Sraghna", "Essaouira", "Chichaoua"}, v.Provinces)
	assert.Equal(t, []string{"Eau", "Routes", "Santé", "Tourisme"}, v.Sectors)
	assert.Equal(t, 4, v.Count)
	assert.Equal(t, 33500000.0, v.TotalBudget)
	assert.True(t, v.HasProgress)
	assert.InDelta(t, 30.0, v.AvgProgress, 1e-9)
	assert.Equal(t, 2, v.DelayedCount)
	assert.False(t, v.Empty())
	assert.Equal(t, []string{"Eau", "Routes"}, v.SubsetSectors)
	assert.Equal(t, []Amount{
		{"Chichaoua", 7000000},
		{"Safi", 8500000},
		{"Marrakech", 18000000},
	}, v.BudgetByProvince)

	var titles []string
	for _, p := range v.Critical {
		titles = append(titles, p.Title)
	}
	assert.Equal(t, []string{"Station de traitement Tensift", "Route régionale R204", "Barrage collinaire"}, titles)
}

func TestBuildEmpty(t *testing.T) {
	table := fixtureTable(t)
	v := Build(table, Selection{}, DefaultOptions())

	assert.True(t, v.Empty())
	assert.False(t, v.HasProgress)
	assert.Equal(t, 0.0, v.TotalBudget)
	assert.Empty(t, v.BudgetByProvince)
	assert.Empty(t, v.StatusDistribution)
	assert.Empty(t, v.Critical)
	assert.Len(t, v.Provinces, 5)
}
