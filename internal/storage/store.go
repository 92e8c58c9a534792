// Package storage provides abstractions for the row-oriented table store
// backing the ledger, the settlement history and the asset history.
package storage

import (
	"context"

	"github.com/mnakagawa/kakei/internal/models"
)

// Row is one table row, keyed by column name. Values are stored as strings
// the way a spreadsheet cell would hold them; parsing is the caller's job.
type Row map[string]string

// Table names a logical table and fixes its column order.
type Table struct {
	Name    string
	Columns []string
}

// RowStore is the capability the backing table store must provide. The
// store keeps rows in insertion order and guarantees nothing beyond these
// three operations: in particular, ReadAll followed by ReplaceAll is not
// atomic with respect to other writers.
type RowStore interface {
	// ReadAll returns every row of the table in insertion order. A table
	// that does not exist yet reads as empty, not as an error.
	ReadAll(ctx context.Context, table Table) ([]Row, error)

	// ReplaceAll rewrites the table (header and body) with the given rows.
	ReplaceAll(ctx context.Context, table Table, rows []Row) error

	// AppendRows adds rows to the end of the table without touching
	// existing ones.
	AppendRows(ctx context.Context, table Table, rows []Row) error

	// Close releases any resources held by the store.
	Close() error
}

// LedgerTable is the table of not-yet-settled expenses.
func LedgerTable() Table {
	return Table{
		Name: "ledger",
		Columns: []string{
			models.ColPerson,
			models.ColDate,
			models.ColAmount,
			models.ColContent,
			models.ColPlace,
		},
	}
}

// SettlementTable is the append-only settlement history.
func SettlementTable() Table {
	return Table{
		Name: "settlements",
		Columns: []string{
			models.ColSettledAt,
			models.ColPayer,
			models.ColPaidAmount,
			models.ColTotalSpent,
		},
	}
}

// AssetTable is the append-only asset snapshot history. The middle columns
// are the six configured category names, in configuration order.
func AssetTable(categories []string) Table {
	cols := make([]string, 0, len(categories)+3)
	cols = append(cols, models.ColSnapshotDate)
	cols = append(cols, categories...)
	cols = append(cols, models.ColTotal, models.ColChange)
	return Table{Name: "assets", Columns: cols}
}
