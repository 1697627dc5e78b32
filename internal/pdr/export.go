package pdr

import (
	"encoding/csv"
	"io"
)

// ExportFileName is the fixed name offered for the filtered-data download.
const ExportFileName = "Projets_PDR_Filtres.csv"

const utf8BOM = "\ufeff"

// WriteCSV writes t in the source format, prefixed with a UTF-8 byte order
// mark. Located tables carry their lat/lon columns.
func WriteCSV(w io.Writer, t *Table, delim rune) error {
	if _, err := io.WriteString(w, utf8BOM); err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	cw.Comma = delim

	header := ExportColumns(t)
	if err := cw.Write(header); err != nil {
		return err
	}

	row := make([]string, len(header))
	for _, p := range t.Projects {
		for i, col := range header {
			row[i] = p.Cell(i, col)
			if t.Located && p.Location != nil {
				switch col {
				case ColLat:
					row[i] = formatCoord(p.Lat())
				case ColLon:
					row[i] = formatCoord(p.Lon())
				}
			}
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// ExportColumns returns the header written by WriteCSV.
func ExportColumns(t *Table) []string {
	cols := make([]string, len(t.Columns), len(t.Columns)+2)
	copy(cols, t.Columns)
	if !t.Located {
		return cols
	}
	for _, geoCol := range []string{ColLat, ColLon} {
		found := false
		for _, c := range cols {
			if c == geoCol {
				found = true
				break
			}
		}
		if !found {
			cols = append(cols, geoCol)
		}
	}
	return cols
}
