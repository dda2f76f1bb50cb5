package table

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
)

// utf8BOM marks the output as UTF-8 for spreadsheet applications
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ErrEmptyFile is returned when the input has no header row
var ErrEmptyFile = errors.New("no columns to parse from file")

// Table is a CSV file held in memory. Rows are indexed from zero and exclude
// the header. An empty cell stands for a missing value.
type Table struct {
	columns []string
	index   map[string]int
	rows    [][]string
}

// New builds a table from a header and rows. Short rows are padded with
// empty cells; duplicate column names get a ".N" suffix.
func New(columns []string, rows [][]string) (*Table, error) {
	t := &Table{
		columns: dedupeColumns(columns),
		index:   make(map[string]int, len(columns)),
	}
	for i, name := range t.columns {
		t.index[name] = i
	}

	for i, row := range rows {
		if len(row) > len(t.columns) {
			return nil, fmt.Errorf("row %d: expected %d fields, saw %d", i+1, len(t.columns), len(row))
		}
		padded := make([]string, len(t.columns))
		copy(padded, row)
		t.rows = append(t.rows, padded)
	}

	return t, nil
}

// Load reads a whole CSV file. The first record is the header.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}
	return Parse(bytes.NewReader(data))
}

// Parse reads CSV from r. A leading UTF-8 BOM is ignored.
func Parse(r io.Reader) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrEmptyFile
	}

	return New(records[0], records[1:])
}

// Columns returns the header names in file order
func (t *Table) Columns() []string {
	out := make([]string, len(t.columns))
	copy(out, t.columns)
	return out
}

// HasColumn reports whether name is one of the header names
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Len returns the number of data rows
func (t *Table) Len() int {
	return len(t.rows)
}

// Cell returns the value at (row, column)
func (t *Table) Cell(row int, column string) (string, error) {
	col, err := t.locate(row, column)
	if err != nil {
		return "", err
	}
	return t.rows[row][col], nil
}

// SetCell replaces the value at (row, column)
func (t *Table) SetCell(row int, column, value string) error {
	col, err := t.locate(row, column)
	if err != nil {
		return err
	}
	t.rows[row][col] = value
	return nil
}

// Prefix returns a table sharing the header with the first n rows copied.
// n is clamped to the row count.
func (t *Table) Prefix(n int) *Table {
	if n > len(t.rows) {
		n = len(t.rows)
	}
	if n < 0 {
		n = 0
	}

	p := &Table{
		columns: t.columns,
		index:   t.index,
		rows:    make([][]string, n),
	}
	for i := 0; i < n; i++ {
		row := make([]string, len(t.rows[i]))
		copy(row, t.rows[i])
		p.rows[i] = row
	}
	return p
}

// Write encodes the table as CSV with a leading UTF-8 BOM
func (t *Table) Write(w io.Writer) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return fmt.Errorf("failed to write BOM: %w", err)
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(t.columns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i, row := range t.rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteFile writes the table to path. The data goes to a temporary file in the
// same directory first, so a failed write leaves no file at path.
func (t *Table) WriteFile(path string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".banglacsv-*.csv")
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	tmpName := tmp.Name()

	if err := t.Write(tmp); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close output file: %w", err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to set output file mode: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to move output file into place: %w", err)
	}

	return nil
}

func (t *Table) locate(row int, column string) (int, error) {
	col, ok := t.index[column]
	if !ok {
		return 0, fmt.Errorf("unknown column %q", column)
	}
	if row < 0 || row >= len(t.rows) {
		return 0, fmt.Errorf("row %d out of range [0, %d)", row, len(t.rows))
	}
	return col, nil
}

// dedupeColumns renames repeated header names to name.1, name.2, ...
func dedupeColumns(columns []string) []string {
	out := make([]string, len(columns))
	seen := make(map[string]int, len(columns))
	taken := make(map[string]bool, len(columns))
	for _, c := range columns {
		taken[c] = true
	}

	for i, name := range columns {
		n, dup := seen[name]
		if !dup {
			seen[name] = 0
			out[i] = name
			continue
		}

		candidate := name
		for {
			n++
			candidate = name + "." + strconv.Itoa(n)
			if !taken[candidate] {
				break
			}
		}
		seen[name] = n
		taken[candidate] = true
		out[i] = candidate
	}

	return out
}
