// Package batch applies feature extractors to the sequence columns of a
// tabular dataset.
package batch

import (
	"errors"
	"fmt"
	"slices"

	"github.com/cwbudde/algo-flowfeat/features"
)

// ErrMissingColumn is returned by Table accessors for unknown column names.
var ErrMissingColumn = errors.New("batch: missing column")

// Dataset is a table of named columns whose cells hold numeric sequences.
// Applier reads sequence columns and adds feature columns; it never removes
// or reorders rows.
type Dataset interface {
	// Len returns the number of rows.
	Len() int
	// Columns returns the column names in order.
	Columns() []string
	// HasColumn reports whether a column exists.
	HasColumn(name string) bool
	// Column returns the cells of a column, one per row.
	Column(name string) ([][]float64, error)
	// SetColumn adds a column, or replaces it if it exists.
	SetColumn(name string, cells [][]float64) error
}

// Table is an in-memory Dataset. The first column added fixes the row
// count. A Table is not safe for concurrent mutation.
type Table struct {
	rows  int
	names []string
	cols  map[string][][]float64
}

var _ Dataset = (*Table)(nil)

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{rows: -1, cols: make(map[string][][]float64)}
}

// AddSequences converts rows to float64 and stores them as column name.
func AddSequences[T features.Number](t *Table, name string, rows [][]T) error {
	cells := make([][]float64, len(rows))
	for i, r := range rows {
		cells[i] = features.Signal(r)
	}

	return t.SetColumn(name, cells)
}

// Len returns the number of rows, 0 for a table without columns.
func (t *Table) Len() int {
	return max(t.rows, 0)
}

// Columns returns the column names in insertion order.
func (t *Table) Columns() []string {
	return slices.Clone(t.names)
}

// HasColumn reports whether name exists.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.cols[name]
	return ok
}

// Column returns the cells of name. The slice is shared with the table.
func (t *Table) Column(name string) ([][]float64, error) {
	cells, ok := t.cols[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMissingColumn, name)
	}

	return cells, nil
}

// Cell returns one cell of name.
func (t *Table) Cell(name string, row int) ([]float64, error) {
	cells, err := t.Column(name)
	if err != nil {
		return nil, err
	}

	if row < 0 || row >= len(cells) {
		return nil, fmt.Errorf("batch: row %d out of range [0, %d)", row, len(cells))
	}

	return cells[row], nil
}

// SetColumn stores cells as column name. The cell count must match the
// table's row count once one is set.
func (t *Table) SetColumn(name string, cells [][]float64) error {
	if name == "" {
		return errors.New("batch: empty column name")
	}

	if t.rows >= 0 && len(cells) != t.rows {
		return fmt.Errorf("batch: column %q has %d rows, table has %d", name, len(cells), t.rows)
	}

	if _, ok := t.cols[name]; !ok {
		t.names = append(t.names, name)
	}

	t.rows = len(cells)
	t.cols[name] = cells

	return nil
}
