package analysis

import "github.com/sekarsister/pdrdash/internal/pdr"

// DefaultDelayedStatuses are counted as "Projets en Retard".
var DefaultDelayedStatuses = []string{"En Retard", "Delayed"}

// Options parameterise Build.
type Options struct {
	Critical        CriticalRule
	DelayedStatuses []string
}

// DefaultOptions returns the rule set used by both dashboards.
func DefaultOptions() Options {
	return Options{
		Critical:        DefaultCriticalRule,
		DelayedStatuses: DefaultDelayedStatuses,
	}
}

// View is everything a dashboard renders for one filter state.
type View struct {
	// Filter options offered to the user, taken from the full table.
	Provinces []string `json:"provinces"`
	Sectors   []string `json:"secteurs"`

	Selection Selection  `json:"-"`
	Subset    *pdr.Table `json:"-"`

	TotalBudget  float64 `json:"budget_total_dh"`
	Count        int     `json:"nombre_projets"`
	AvgProgress  float64 `json:"taux_avancement_moyen"`
	HasProgress  bool    `json:"taux_avancement_defini"`
	DelayedCount int     `json:"projets_en_retard"`

	BudgetByProvince   []Amount             `json:"budget_par_province"`
	StatusDistribution []Share              `json:"repartition_statuts"`
	ProgressBySector   map[string][]float64 `json:"avancement_par_secteur"`
	SubsetSectors      []string             `json:"-"`

	Critical []pdr.Project `json:"alertes_critiques"`
}

// Build runs the whole pipeline: filter t by sel, then aggregate the subset.
func Build(t *pdr.Table, sel Selection, opts Options) View {
	subset := Filter(t, sel)
	ps := subset.Projects

	avg, ok := AvgProgress(ps)
	return View{
		Provinces: Provinces(t),
		Sectors:   Sectors(t),
		Selection: sel,
		Subset:    subset,

		TotalBudget:  TotalBudget(ps),
		Count:        Count(ps),
		AvgProgress:  avg,
		HasProgress:  ok,
		DelayedCount: CountStatus(ps, opts.DelayedStatuses...),

		BudgetByProvince:   SortAmounts(BudgetByProvince(ps)),
		StatusDistribution: SortShares(StatusDistribution(ps)),
		ProgressBySector:   ProgressBySector(ps),
		SubsetSectors:      Sectors(subset),

		Critical: CriticalProjects(ps, opts.Critical),
	}
}

// Empty reports whether the filters left no project.
func (v View) Empty() bool {
	return v.Count == 0
}
