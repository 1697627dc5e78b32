// Package workbook exports a dashboard view as an Excel workbook.
package workbook

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/sekarsister/pdrdash/internal/analysis"
	"github.com/sekarsister/pdrdash/internal/pdr"
)

// FileName is the fixed name of the workbook download.
const FileName = "Projets_PDR_Filtres.xlsx"

// Sheet names.
const (
	SheetProjects = "Projets"
	SheetSummary  = "Synthèse"
	SheetBudget   = "Budget_Province"
	SheetStatus   = "Statuts"
	SheetAlerts   = "Alertes"
)

// Build assembles the workbook for v. The caller closes the file.
func Build(v analysis.View) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", SheetProjects); err != nil {
		f.Close()
		return nil, err
	}
	for _, name := range []string{SheetSummary, SheetBudget, SheetStatus, SheetAlerts} {
		if _, err := f.NewSheet(name); err != nil {
			f.Close()
			return nil, err
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		f.Close()
		return nil, err
	}

	steps := []func(*excelize.File, analysis.View, int) error{
		writeProjects,
		writeSummary,
		writeBudget,
		writeStatus,
		writeAlerts,
	}
	for _, step := range steps {
		if err := step(f, v, bold); err != nil {
			f.Close()
			return nil, err
		}
	}

	return f, nil
}

// Save writes the workbook for v to path.
func Save(v analysis.View, path string) error {
	f, err := Build(v)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook: %w", err)
	}
	return nil
}

// Write streams the workbook for v to w.
func Write(w io.Writer, v analysis.View) error {
	f, err := Build(v)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.WriteTo(w)
	return err
}

func writeHeader(f *excelize.File, sheet string, headers []string, style int, width float64) error {
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return err
		}
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(sheet, col, col, width); err != nil {
			return err
		}
	}
	last, _ := excelize.CoordinatesToCellName(len(headers), 1)
	return f.SetCellStyle(sheet, "A1", last, style)
}

func writeProjects(f *excelize.File, v analysis.View, bold int) error {
	if v.Subset == nil {
		return nil
	}
	columns := pdr.ExportColumns(v.Subset)
	if err := writeHeader(f, SheetProjects, columns, bold, 18); err != nil {
		return err
	}

	for i, p := range v.Subset.Projects {
		row := make([]interface{}, len(columns))
		for j, col := range columns {
			switch col {
			case pdr.ColBudget:
				row[j] = p.Budget
			case pdr.ColProgress:
				row[j] = p.Progress
			case pdr.ColLat:
				row[j] = p.Lat()
			case pdr.ColLon:
				row[j] = p.Lon()
			default:
				row[j] = p.Cell(j, col)
			}
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(SheetProjects, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func writeSummary(f *excelize.File, v analysis.View, bold int) error {
	if err := writeHeader(f, SheetSummary, []string{"Indicateur", "Valeur"}, bold, 30); err != nil {
		return err
	}

	var avg interface{} = pdr.NoData
	if v.HasProgress {
		avg = v.AvgProgress
	}

	rows := [][]interface{}{
		{"Budget Total Investi (DH)", v.TotalBudget},
		{"Nombre de Projets", v.Count},
		{"Projets en Retard", v.DelayedCount},
		{"Taux d'Avancement Moyen (%)", avg},
		{"Alertes Critiques", len(v.Critical)},
	}
	for i, row := range rows {
		if err := f.SetSheetRow(SheetSummary, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return err
		}
	}
	return nil
}

func writeBudget(f *excelize.File, v analysis.View, bold int) error {
	if err := writeHeader(f, SheetBudget, []string{"Province", "Budget_DH"}, bold, 24); err != nil {
		return err
	}

	// Largest first, as read top-down on the bar chart.
	row := 2
	for i := len(v.BudgetByProvince) - 1; i >= 0; i-- {
		a := v.BudgetByProvince[i]
		f.SetCellValue(SheetBudget, fmt.Sprintf("A%d", row), a.Label)
		f.SetCellValue(SheetBudget, fmt.Sprintf("B%d", row), a.Value)
		row++
	}
	return nil
}

func writeStatus(f *excelize.File, v analysis.View, bold int) error {
	if err := writeHeader(f, SheetStatus, []string{"Statut", "Nombre", "Part (%)"}, bold, 18); err != nil {
		return err
	}

	for i, s := range v.StatusDistribution {
		row := i + 2
		share := 0.0
		if v.Count > 0 {
			share = 100 * float64(s.Count) / float64(v.Count)
		}
		f.SetCellValue(SheetStatus, fmt.Sprintf("A%d", row), s.Label)
		f.SetCellValue(SheetStatus, fmt.Sprintf("B%d", row), s.Count)
		f.SetCellValue(SheetStatus, fmt.Sprintf("C%d", row), share)
	}
	return nil
}

func writeAlerts(f *excelize.File, v analysis.View, bold int) error {
	headers := []string{"Province", "Intitulé_Projet", "Statut", "Budget_DH", "Taux_Avancement"}
	if err := writeHeader(f, SheetAlerts, headers, bold, 24); err != nil {
		return err
	}

	for i, p := range v.Critical {
		row := i + 2
		f.SetCellValue(SheetAlerts, fmt.Sprintf("A%d", row), p.Province)
		f.SetCellValue(SheetAlerts, fmt.Sprintf("B%d", row), p.Title)
		f.SetCellValue(SheetAlerts, fmt.Sprintf("C%d", row), p.Status)
		f.SetCellValue(SheetAlerts, fmt.Sprintf("D%d", row), p.Budget)
		f.SetCellValue(SheetAlerts, fmt.Sprintf("E%d", row), p.Progress)
	}
	return nil
}
