package analysis

import (
	"sort"

	"github.com/sekarsister/pdrdash/internal/pdr"
)

// CriticalRule selects projects that need immediate attention.
type CriticalRule struct {
	Statuses        []string `yaml:"statuses"`
	BudgetThreshold float64  `yaml:"budget_threshold"`
	Limit           int      `yaml:"limit"`
}

// DefaultCriticalRule flags suspended or delayed projects above 5 MDH and
// keeps the five largest.
var DefaultCriticalRule = CriticalRule{
	Statuses:        []string{"Suspendu", "En Retard", "Suspended", "Delayed"},
	BudgetThreshold: 5000000,
	Limit:           5,
}

// CriticalProjects returns the projects matching rule, largest budget first.
// Equal budgets keep their input order. At most rule.Limit projects are
// returned; a non-positive limit returns none.
func CriticalProjects(ps []pdr.Project, rule CriticalRule) []pdr.Project {
	statuses := NewSet(rule.Statuses...)

	var critical []pdr.Project
	for _, p := range ps {
		if statuses.Has(p.Status) && p.Budget > rule.BudgetThreshold {
			critical = append(critical, p)
		}
	}

	sort.SliceStable(critical, func(i, j int) bool {
		return critical[i].Budget > critical[j].Budget
	})

	if rule.Limit <= 0 {
		return nil
	}
	if len(critical) > rule.Limit {
		critical = critical[:rule.Limit]
	}
	return critical
}
