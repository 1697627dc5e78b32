package pdr

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DefaultDelimiter separates fields in the source table and in the export.
const DefaultDelimiter = ';'

var (
	// ErrMissingSource is returned when the source table cannot be located.
	ErrMissingSource = errors.New("project table not found")
	// ErrMissingColumn is returned when a required column is absent.
	ErrMissingColumn = errors.New("missing required column")
	// ErrInvalidValue is returned when a numeric cell cannot be used.
	ErrInvalidValue = errors.New("invalid value")
)

// ValueError reports a cell that failed validation.
type ValueError struct {
	Line   int
	Column string
	Value  string
	Err    error
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("line %d, column %s: invalid value %q: %v", e.Line, e.Column, e.Value, e.Err)
}

func (e *ValueError) Unwrap() []error {
	return []error{ErrInvalidValue, e.Err}
}

var errNegative = errors.New("must not be negative")

// Load reads the project table at path.
func Load(path string, delim rune) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrMissingSource, path)
		}
		return nil, fmt.Errorf("opening project table: %w", err)
	}
	defer file.Close()

	t, err := Parse(file, delim)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Parse reads a delimited project table from r. A leading UTF-8 byte order
// mark is dropped.
func Parse(r io.Reader, delim rune) (*Table, error) {
	reader := csv.NewReader(transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder())))
	reader.Comma = delim

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading project table: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: no header row", ErrMissingColumn)
	}

	header := make([]string, len(records[0]))
	for i, name := range records[0] {
		header[i] = norm.NFC.String(strings.TrimSpace(name))
	}

	idx := make(map[string]int, len(header))
	for i, name := range header {
		if _, dup := idx[name]; !dup {
			idx[name] = i
		}
	}
	for _, col := range RequiredColumns {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, col)
		}
	}

	projects := make([]Project, 0, len(records)-1)
	for i, record := range records[1:] {
		p, err := parseProject(record, idx, i+2)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}

	return &Table{Columns: header, Projects: projects}, nil
}

func parseProject(record []string, idx map[string]int, line int) (Project, error) {
	cells := make([]string, len(record))
	copy(cells, record)

	field := func(col string) string {
		return strings.TrimSpace(record[idx[col]])
	}

	budget, err := parseNumber(field(ColBudget))
	if err != nil {
		return Project{}, &ValueError{Line: line, Column: ColBudget, Value: field(ColBudget), Err: err}
	}
	if budget < 0 {
		return Project{}, &ValueError{Line: line, Column: ColBudget, Value: field(ColBudget), Err: errNegative}
	}

	progress, err := parseNumber(field(ColProgress))
	if err != nil {
		return Project{}, &ValueError{Line: line, Column: ColProgress, Value: field(ColProgress), Err: err}
	}

	return Project{
		Province: field(ColProvince),
		Sector:   field(ColSector),
		Title:    field(ColTitle),
		Budget:   budget,
		Status:   field(ColStatus),
		Progress: progress,
		Cells:    cells,
	}, nil
}

func parseNumber(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("not a finite number")
	}
	return v, nil
}
