// Package analysis turns the project table and a filter selection into the
// derived view shown on the dashboards: the filtered subset, KPIs,
// chart-ready aggregates and the critical-project alerts. Everything here is
// a pure function of its inputs.
package analysis

import "github.com/sekarsister/pdrdash/internal/pdr"

// Set is a set of category values.
type Set map[string]struct{}

// NewSet returns a set holding values.
func NewSet(values ...string) Set {
	s := make(Set, len(values))
	for _, v := range values {
		s[v] = struct{}{}
	}
	return s
}

// Has reports whether v is in s.
func (s Set) Has(v string) bool {
	_, ok := s[v]
	return ok
}

// Selection is the user's filter state. An empty set excludes everything.
type Selection struct {
	Provinces Set
	Sectors   Set
}

// AllOf selects every province and sector present in t.
func AllOf(t *pdr.Table) Selection {
	return Selection{
		Provinces: NewSet(Provinces(t)...),
		Sectors:   NewSet(Sectors(t)...),
	}
}

// Provinces returns the distinct provinces of t in order of first appearance.
func Provinces(t *pdr.Table) []string {
	return distinct(t, func(p pdr.Project) string { return p.Province })
}

// Sectors returns the distinct sectors of t in order of first appearance.
func Sectors(t *pdr.Table) []string {
	return distinct(t, func(p pdr.Project) string { return p.Sector })
}

func distinct(t *pdr.Table, key func(pdr.Project) string) []string {
	seen := make(map[string]bool)
	var values []string
	for _, p := range t.Projects {
		k := key(p)
		if !seen[k] {
			seen[k] = true
			values = append(values, k)
		}
	}
	return values
}
