// Package pdr holds the project table of the Regional Development Plan (PDR):
// the record type, the semicolon-delimited loader, the export writer and the
// memoised table handle shared by every recomputation.
package pdr

import (
	"strconv"

	"github.com/twpayne/go-geom"
)

// Source column names.
const (
	ColProvince = "Province"
	ColSector   = "Secteur"
	ColTitle    = "Intitulé_Projet"
	ColBudget   = "Budget_DH"
	ColStatus   = "Statut"
	ColProgress = "Taux_Avancement"

	ColLat = "lat"
	ColLon = "lon"
)

// RequiredColumns must all be present in the header of the source table.
var RequiredColumns = []string{ColProvince, ColSector, ColTitle, ColBudget, ColStatus, ColProgress}

// Project is one row of the source table.
type Project struct {
	Province string  `json:"province"`
	Sector   string  `json:"secteur"`
	Title    string  `json:"intitule"`
	Budget   float64 `json:"budget_dh"`
	Status   string  `json:"statut"`
	Progress float64 `json:"taux_avancement"`

	// Location is synthetic and only set by geo enrichment.
	Location *geom.Point `json:"-"`

	// Cells keeps the raw source row, in Table.Columns order.
	Cells []string `json:"-"`
}

// Lat returns the latitude of an enriched project, 0 otherwise.
func (p Project) Lat() float64 {
	if p.Location == nil {
		return 0
	}
	return p.Location.Y()
}

// Lon returns the longitude of an enriched project, 0 otherwise.
func (p Project) Lon() float64 {
	if p.Location == nil {
		return 0
	}
	return p.Location.X()
}

// Cell returns the value of column col at position i. Raw source cells win;
// projects built in code fall back to their typed fields.
func (p Project) Cell(i int, col string) string {
	if i >= 0 && i < len(p.Cells) {
		return p.Cells[i]
	}
	switch col {
	case ColProvince:
		return p.Province
	case ColSector:
		return p.Sector
	case ColTitle:
		return p.Title
	case ColBudget:
		return strconv.FormatFloat(p.Budget, 'f', -1, 64)
	case ColStatus:
		return p.Status
	case ColProgress:
		return strconv.FormatFloat(p.Progress, 'f', -1, 64)
	case ColLat:
		if p.Location != nil {
			return formatCoord(p.Lat())
		}
	case ColLon:
		if p.Location != nil {
			return formatCoord(p.Lon())
		}
	}
	return ""
}

// Table is the loaded project table. It is treated as read-only once loaded
// and enriched.
type Table struct {
	Columns  []string
	Projects []Project

	// Located is set once every project carries a synthetic Location.
	Located bool
}

// NewTable builds a table over the required columns.
func NewTable(projects ...Project) *Table {
	cols := make([]string, len(RequiredColumns))
	copy(cols, RequiredColumns)
	return &Table{Columns: cols, Projects: projects}
}

// Len returns the number of projects.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Projects)
}

// WithProjects returns a table sharing t's header and geo flag over a
// different set of rows.
func (t *Table) WithProjects(projects []Project) *Table {
	return &Table{Columns: t.Columns, Projects: projects, Located: t.Located}
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
