// Package dataset assembles normalized rows into the fixed tabular shape
// used for filtering, previewing, and CSV export.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/guttosm/b3stream/internal/domain/models"
)

// Table is an ordered collection of normalized rows under the fixed
// 8-column schema (models.Columns). Insertion order is arrival order.
// The schema exists even when the table is empty.
type Table struct {
	rows []models.Row
}

// New builds a table over the given rows. The slice is copied so the
// table owns its data.
func New(rows []models.Row) *Table {
	return &Table{rows: append([]models.Row(nil), rows...)}
}

// Columns returns the schema, in export order.
func (t *Table) Columns() []string {
	return append([]string(nil), models.Columns...)
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.rows) }

// Rows returns a copy of all rows in insertion order.
func (t *Table) Rows() []models.Row {
	return append([]models.Row(nil), t.rows...)
}

// FilterByTicker returns a new table holding only rows whose ATIVO equals
// symbol exactly (case-sensitive, no substring or pattern matching). A
// symbol absent from the table yields an empty table with the schema
// intact.
func (t *Table) FilterByTicker(symbol string) *Table {
	out := make([]models.Row, 0, len(t.rows))
	for _, r := range t.rows {
		if r.Ticker == symbol {
			out = append(out, r)
		}
	}
	return &Table{rows: out}
}

// Head returns up to n rows from the start of the table.
func (t *Table) Head(n int) []models.Row {
	if n < 0 {
		n = 0
	}
	if n > len(t.rows) {
		n = len(t.rows)
	}
	return append([]models.Row(nil), t.rows[:n]...)
}

// Tail returns up to n rows from the end of the table.
func (t *Table) Tail(n int) []models.Row {
	if n < 0 {
		n = 0
	}
	if n > len(t.rows) {
		n = len(t.rows)
	}
	return append([]models.Row(nil), t.rows[len(t.rows)-n:]...)
}

// WriteCSV writes the table as delimited text: one header row with the
// schema, one line per row, no index column. QTDE is serialized as an
// integer, PREÇO and VOL as floats, everything else as strings.
func (t *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(models.Columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, r := range t.rows {
		rec := []string{
			r.Date,
			r.Time,
			r.Ticker,
			strconv.FormatInt(r.Quantity, 10),
			strconv.FormatFloat(r.Price, 'f', -1, 64),
			strconv.FormatFloat(r.Volume, 'f', -1, 64),
			r.Type,
			r.Canceled,
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// SaveCSV writes the table to a file, creating or truncating it.
func (t *Table) SaveCSV(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := t.WriteCSV(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// ReadCSV rebuilds a table from the delimited form produced by WriteCSV.
// The header must match the schema exactly, in order; typed columns are
// parsed back (QTDE integer, PREÇO/VOL float). An empty file body yields
// an empty table with the schema intact, so exports round-trip even at
// zero rows.
func ReadCSV(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("missing header row")
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) != len(models.Columns) {
		return nil, fmt.Errorf("invalid header length: expected %d, got %d", len(models.Columns), len(header))
	}
	for i, h := range header {
		if h != models.Columns[i] {
			return nil, fmt.Errorf("invalid header at col %d: expected %q, got %q", i+1, models.Columns[i], h)
		}
	}

	var rows []models.Row
	line := 1
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read line after %d: %w", line, err)
		}
		line++

		qty, err := strconv.ParseInt(rec[3], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid QTDE: %v", line, err)
		}
		price, err := strconv.ParseFloat(rec[4], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid PREÇO: %v", line, err)
		}
		vol, err := strconv.ParseFloat(rec[5], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid VOL: %v", line, err)
		}

		rows = append(rows, models.Row{
			Date:     rec[0],
			Time:     rec[1],
			Ticker:   rec[2],
			Quantity: qty,
			Price:    price,
			Volume:   vol,
			Type:     rec[6],
			Canceled: rec[7],
		})
	}

	return &Table{rows: rows}, nil
}
