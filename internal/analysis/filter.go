package analysis

import "github.com/sekarsister/pdrdash/internal/pdr"

// Filter returns the projects of t whose province and sector are both
// selected, in table order.
func Filter(t *pdr.Table, sel Selection) *pdr.Table {
	var kept []pdr.Project
	for _, p := range t.Projects {
		if sel.Provinces.Has(p.Province) && sel.Sectors.Has(p.Sector) {
			kept = append(kept, p)
		}
	}
	return t.WithProjects(kept)
}
