// Package pgstore implements storage.RowStore over PostgreSQL. The row
// contract is the same as the SQLite store's: TEXT columns, insertion
// order by sequence, transactional appends.
package pgstore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/lib/pq" // Postgres driver

	"github.com/mnakagawa/kakei/internal/storage"
)

// Ensure Store implements storage.RowStore.
var _ storage.RowStore = (*Store)(nil)

// Store keeps each logical table as a Postgres table of TEXT columns.
type Store struct {
	db *sql.DB
}

// New connects to the database at dsn and ensures a backing table exists
// for every given table.
func New(dsn string, tables ...storage.Table) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	for _, table := range tables {
		if err := createTable(db, table); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to migrate table %s: %w", table.Name, err)
		}
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func createTable(db *sql.DB, table storage.Table) error {
	cols := make([]string, 0, len(table.Columns)+1)
	cols = append(cols, "seq BIGSERIAL PRIMARY KEY")
	for _, col := range table.Columns {
		cols = append(cols, quoteIdent(col)+" TEXT NOT NULL DEFAULT ''")
	}
	stmt := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)",
		quoteIdent(table.Name), strings.Join(cols, ", "))
	_, err := db.Exec(stmt)
	return err
}

// ReadAll returns every row of the table in insertion order.
func (s *Store) ReadAll(ctx context.Context, table storage.Table) ([]storage.Row, error) {
	stmt := fmt.Sprintf("SELECT %s FROM %s ORDER BY seq",
		quotedList(table.Columns), quoteIdent(table.Name))
	rows, err := s.db.QueryContext(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", table.Name, err)
	}
	defer rows.Close()

	var result []storage.Row
	for rows.Next() {
		values := make([]string, len(table.Columns))
		dest := make([]any, len(values))
		for i := range values {
			dest[i] = &values[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", table.Name, err)
		}
		row := make(storage.Row, len(table.Columns))
		for i, col := range table.Columns {
			row[col] = values[i]
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate %s: %w", table.Name, err)
	}
	return result, nil
}

// ReplaceAll deletes every row and inserts the given ones, all in one
// transaction.
func (s *Store) ReplaceAll(ctx context.Context, table storage.Table, rows []storage.Row) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM "+quoteIdent(table.Name)); err != nil {
		return fmt.Errorf("failed to clear %s: %w", table.Name, err)
	}
	if err := insertRows(ctx, tx, table, rows); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// AppendRows inserts the given rows in one transaction.
func (s *Store) AppendRows(ctx context.Context, table storage.Table, rows []storage.Row) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := insertRows(ctx, tx, table, rows); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func insertRows(ctx context.Context, tx *sql.Tx, table storage.Table, rows []storage.Row) error {
	if len(rows) == 0 {
		return nil
	}
	stmt := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		quoteIdent(table.Name),
		quotedList(table.Columns),
		placeholders(len(table.Columns)))
	for _, row := range rows {
		args := make([]any, len(table.Columns))
		for i, col := range table.Columns {
			args[i] = row[col]
		}
		if _, err := tx.ExecContext(ctx, stmt, args...); err != nil {
			return fmt.Errorf("failed to insert %s row: %w", table.Name, err)
		}
	}
	return nil
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func quotedList(cols []string) string {
	quoted := make([]string, len(cols))
	for i, col := range cols {
		quoted[i] = quoteIdent(col)
	}
	return strings.Join(quoted, ", ")
}

func placeholders(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = fmt.Sprintf("$%d", i+1)
	}
	return strings.Join(parts, ", ")
}
