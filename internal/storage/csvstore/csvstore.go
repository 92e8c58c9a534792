// Package csvstore implements storage.RowStore over plain CSV files, one
// file per table in a data directory. This mirrors the layout the data
// originally lived in, including its weakest property: ReplaceAll rewrites
// the whole file, so two concurrent read-modify-write sessions can lose
// rows. Callers that need atomic appends should prefer the SQLite or
// Postgres store.
package csvstore

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mnakagawa/kakei/internal/storage"
)

// Ensure Store implements storage.RowStore.
var _ storage.RowStore = (*Store)(nil)

// Store reads and writes one CSV file per table under dir.
type Store struct {
	dir string
}

// New creates the data directory if needed and returns a Store over it.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Close is a no-op; files are opened per operation.
func (s *Store) Close() error {
	return nil
}

func (s *Store) path(table storage.Table) string {
	return filepath.Join(s.dir, table.Name+".csv")
}

// ReadAll returns the rows of the table in file order. A missing file or a
// file holding only the header reads as an empty table.
func (s *Store) ReadAll(ctx context.Context, table storage.Table) ([]storage.Row, error) {
	f, err := os.Open(s.path(table))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", table.Name, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", table.Name, err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	// The first record is the header; map cells by the names it declares
	// so column reordering in the file does not corrupt reads.
	header := records[0]
	rows := make([]storage.Row, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := make(storage.Row, len(header))
		for i, col := range header {
			if i < len(rec) {
				row[col] = rec[i]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ReplaceAll rewrites the table file with header and body. The write goes
// to a temp file first and is renamed into place, so a crashed writer
// never leaves a half-written table behind.
func (s *Store) ReplaceAll(ctx context.Context, table storage.Table, rows []storage.Row) error {
	tmp, err := os.CreateTemp(s.dir, table.Name+"-*.csv")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", table.Name, err)
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	if err := w.Write(table.Columns); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s header: %w", table.Name, err)
	}
	for _, row := range rows {
		if err := w.Write(recordFor(table, row)); err != nil {
			tmp.Close()
			return fmt.Errorf("failed to write %s row: %w", table.Name, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to flush %s: %w", table.Name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file for %s: %w", table.Name, err)
	}

	if err := os.Rename(tmp.Name(), s.path(table)); err != nil {
		return fmt.Errorf("failed to replace %s: %w", table.Name, err)
	}
	return nil
}

// AppendRows appends rows to the table file, writing the header first if
// the file is new or empty.
func (s *Store) AppendRows(ctx context.Context, table storage.Table, rows []storage.Row) error {
	f, err := os.OpenFile(s.path(table), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open %s for append: %w", table.Name, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", table.Name, err)
	}

	w := csv.NewWriter(f)
	if info.Size() == 0 {
		if err := w.Write(table.Columns); err != nil {
			return fmt.Errorf("failed to write %s header: %w", table.Name, err)
		}
	}
	for _, row := range rows {
		if err := w.Write(recordFor(table, row)); err != nil {
			return fmt.Errorf("failed to append %s row: %w", table.Name, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", table.Name, err)
	}
	return nil
}

// recordFor lays the row cells out in the table's column order.
func recordFor(table storage.Table, row storage.Row) []string {
	rec := make([]string, len(table.Columns))
	for i, col := range table.Columns {
		rec[i] = row[col]
	}
	return rec
}
