package analysis

import (
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/sekarsister/pdrdash/internal/pdr"
)

// Amount is a labelled sum, as plotted on the budget chart.
type Amount struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Share is a labelled count, as plotted on the status chart.
type Share struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

func budgets(ps []pdr.Project) []float64 {
	values := make([]float64, len(ps))
	for i, p := range ps {
		values[i] = p.Budget
	}
	return values
}

// TotalBudget sums the budgets of ps.
func TotalBudget(ps []pdr.Project) float64 {
	if len(ps) == 0 {
		return 0
	}
	return floats.Sum(budgets(ps))
}

// Count returns the number of projects.
func Count(ps []pdr.Project) int {
	return len(ps)
}

// AvgProgress returns the mean completion percentage. ok is false when ps is
// empty and the mean is undefined.
func AvgProgress(ps []pdr.Project) (avg float64, ok bool) {
	if len(ps) == 0 {
		return 0, false
	}
	progress := make([]float64, len(ps))
	for i, p := range ps {
		progress[i] = p.Progress
	}
	return stat.Mean(progress, nil), true
}

// BudgetByProvince sums budgets per province.
func BudgetByProvince(ps []pdr.Project) map[string]float64 {
	sums := make(map[string]float64)
	for _, p := range ps {
		sums[p.Province] += p.Budget
	}
	return sums
}

// StatusDistribution counts projects per status.
func StatusDistribution(ps []pdr.Project) map[string]int {
	counts := make(map[string]int)
	for _, p := range ps {
		counts[p.Status]++
	}
	return counts
}

// CountStatus counts projects whose status is one of statuses.
func CountStatus(ps []pdr.Project, statuses ...string) int {
	want := NewSet(statuses...)
	n := 0
	for _, p := range ps {
		if want.Has(p.Status) {
			n++
		}
	}
	return n
}

// ProgressBySector groups completion percentages per sector.
func ProgressBySector(ps []pdr.Project) map[string][]float64 {
	groups := make(map[string][]float64)
	for _, p := range ps {
		groups[p.Sector] = append(groups[p.Sector], p.Progress)
	}
	return groups
}

// SortAmounts orders sums ascending by value, then by label.
func SortAmounts(sums map[string]float64) []Amount {
	amounts := make([]Amount, 0, len(sums))
	for label, v := range sums {
		amounts = append(amounts, Amount{Label: label, Value: v})
	}
	sort.Slice(amounts, func(i, j int) bool {
		if amounts[i].Value != amounts[j].Value {
			return amounts[i].Value < amounts[j].Value
		}
		return amounts[i].Label < amounts[j].Label
	})
	return amounts
}

// SortShares orders counts descending, then by label.
func SortShares(counts map[string]int) []Share {
	shares := make([]Share, 0, len(counts))
	for label, n := range counts {
		shares = append(shares, Share{Label: label, Count: n})
	}
	sort.Slice(shares, func(i, j int) bool {
		if shares[i].Count != shares[j].Count {
			return shares[i].Count > shares[j].Count
		}
		return shares[i].Label < shares[j].Label
	})
	return shares
}
