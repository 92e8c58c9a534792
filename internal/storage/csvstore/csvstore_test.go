package csvstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/mnakagawa/kakei/internal/storage"
)

func testTable() storage.Table {
	return storage.Table{Name: "ledger", Columns: []string{"Person", "Date", "Amount"}}
}

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := New(dir)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store, dir
}

func TestReadAllMissingFile(t *testing.T) {
	store, _ := newTestStore(t)

	rows, err := store.ReadAll(context.Background(), testTable())
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if rows != nil {
		t.Errorf("ReadAll of a missing file returned %v, want nil", rows)
	}
}

func TestAppendThenRead(t *testing.T) {
	store, dir := newTestStore(t)
	ctx := context.Background()
	table := testTable()

	err := store.AppendRows(ctx, table, []storage.Row{
		{"Person": "A", "Date": "2026-08-01", "Amount": "100"},
	})
	if err != nil {
		t.Fatalf("AppendRows failed: %v", err)
	}
	err = store.AppendRows(ctx, table, []storage.Row{
		{"Person": "B", "Date": "2026-08-02", "Amount": "300"},
	})
	if err != nil {
		t.Fatalf("AppendRows failed: %v", err)
	}

	rows, err := store.ReadAll(ctx, table)
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("ReadAll returned %d rows, want 2", len(rows))
	}
	if rows[0]["Person"] != "A" || rows[1]["Person"] != "B" {
		t.Errorf("rows out of order: %v", rows)
	}

	// The header must have been written exactly once.
	data, err := os.ReadFile(filepath.Join(dir, "ledger.csv"))
	if err != nil {
		t.Fatalf("failed to read table file: %v", err)
	}
	want := "Person,Date,Amount\nA,2026-08-01,100\nB,2026-08-02,300\n"
	if string(data) != want {
		t.Errorf("file content = %q, want %q", data, want)
	}
}

func TestReplaceAll(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	table := testTable()

	err := store.AppendRows(ctx, table, []storage.Row{
		{"Person": "A", "Date": "2026-08-01", "Amount": "100"},
	})
	if err != nil {
		t.Fatalf("AppendRows failed: %v", err)
	}

	err = store.ReplaceAll(ctx, table, []storage.Row{
		{"Person": "B", "Date": "2026-08-02", "Amount": "300"},
	})
	if err != nil {
		t.Fatalf("ReplaceAll failed: %v", err)
	}

	rows, err := store.ReadAll(ctx, table)
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if len(rows) != 1 || rows[0]["Person"] != "B" {
		t.Errorf("ReplaceAll left %v, want a single B row", rows)
	}
}

func TestReplaceAllEmptyKeepsHeader(t *testing.T) {
	store, dir := newTestStore(t)
	ctx := context.Background()
	table := testTable()

	err := store.AppendRows(ctx, table, []storage.Row{
		{"Person": "A", "Date": "2026-08-01", "Amount": "100"},
	})
	if err != nil {
		t.Fatalf("AppendRows failed: %v", err)
	}
	if err := store.ReplaceAll(ctx, table, nil); err != nil {
		t.Fatalf("ReplaceAll failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "ledger.csv"))
	if err != nil {
		t.Fatalf("failed to read table file: %v", err)
	}
	if string(data) != "Person,Date,Amount\n" {
		t.Errorf("cleared file = %q, want header only", data)
	}
}

func TestReadAllByHeaderNames(t *testing.T) {
	store, dir := newTestStore(t)

	// Columns appear in a different order than the table declares them;
	// cells must still land under the right names.
	content := "Amount,Person,Date\n100,A,2026-08-01\n"
	if err := os.WriteFile(filepath.Join(dir, "ledger.csv"), []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write table file: %v", err)
	}

	rows, err := store.ReadAll(context.Background(), testTable())
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("ReadAll returned %d rows, want 1", len(rows))
	}
	if rows[0]["Person"] != "A" || rows[0]["Amount"] != "100" {
		t.Errorf("row = %v, want cells mapped by header name", rows[0])
	}
}

func TestCellsWithCommasSurviveRoundTrip(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	table := testTable()

	err := store.AppendRows(ctx, table, []storage.Row{
		{"Person": "A", "Date": "2026-08-01", "Amount": "1,234"},
	})
	if err != nil {
		t.Fatalf("AppendRows failed: %v", err)
	}

	rows, err := store.ReadAll(ctx, table)
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if rows[0]["Amount"] != "1,234" {
		t.Errorf("Amount = %q, want the comma preserved", rows[0]["Amount"])
	}
}
