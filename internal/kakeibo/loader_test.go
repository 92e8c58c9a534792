package kakeibo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/japanese"
)

const testCSV = "日付,分類,金額,収入/支出\n2026-08-01,給与,300000,収入\n2026-08-05,食費,1200,支出\n"

func TestLoadUTF8CSV(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "record202608.csv")
	if err := os.WriteFile(path, []byte(testCSV), 0o644); err != nil {
		t.Fatalf("failed to write record file: %v", err)
	}

	rec, err := Load(dir, "202608")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(rec.Rows) != 2 {
		t.Fatalf("loaded %d rows, want 2", len(rec.Rows))
	}
	if rec.Rows[0]["分類"] != "給与" || rec.Rows[1][ColAmount] != "1200" {
		t.Errorf("rows = %v", rec.Rows)
	}
}

func TestLoadShiftJISCSV(t *testing.T) {
	encoded, err := japanese.ShiftJIS.NewEncoder().String(testCSV)
	if err != nil {
		t.Fatalf("failed to encode test data: %v", err)
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "record202608.csv")
	if err := os.WriteFile(path, []byte(encoded), 0o644); err != nil {
		t.Fatalf("failed to write record file: %v", err)
	}

	rec, err := Load(dir, "202608")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !rec.HasColumn(ColFlow) {
		t.Fatalf("decoded columns = %v, want %s present", rec.Columns, ColFlow)
	}
	if rec.Rows[0][ColFlow] != FlowIncome {
		t.Errorf("first row flow = %q, want %s", rec.Rows[0][ColFlow], FlowIncome)
	}
}

func TestLoadEUCJPCSV(t *testing.T) {
	encoded, err := japanese.EUCJP.NewEncoder().String(testCSV)
	if err != nil {
		t.Fatalf("failed to encode test data: %v", err)
	}

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "record202608.csv"), []byte(encoded), 0o644); err != nil {
		t.Fatalf("failed to write record file: %v", err)
	}

	rec, err := Load(dir, "202608")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	// 収 decodes to garbage under the Shift_JIS guess; reaching the right
	// cell value proves the fallback moved on to EUC-JP.
	if rec.Rows[0][ColFlow] != FlowIncome {
		t.Errorf("first row flow = %q, want %s", rec.Rows[0][ColFlow], FlowIncome)
	}
}

func TestLoadXLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]any{
		{"日付", "分類", "金額", "収入/支出"},
		{"2026-08-01", "給与", "300000", "収入"},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("failed to build cell name: %v", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("failed to set sheet row: %v", err)
		}
	}

	dir := t.TempDir()
	if err := f.SaveAs(filepath.Join(dir, "record202608.xlsx")); err != nil {
		t.Fatalf("failed to save workbook: %v", err)
	}

	rec, err := Load(dir, "202608")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(rec.Rows) != 1 {
		t.Fatalf("loaded %d rows, want 1", len(rec.Rows))
	}
	if rec.Rows[0][ColAmount] != "300000" {
		t.Errorf("amount = %q, want 300000", rec.Rows[0][ColAmount])
	}
}

func TestLoadPrefersCSVOverXLSX(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "record202608.csv"), []byte(testCSV), 0o644); err != nil {
		t.Fatalf("failed to write record file: %v", err)
	}

	f := excelize.NewFile()
	row := []any{"日付", "分類", "金額", "収入/支出"}
	if err := f.SetSheetRow(f.GetSheetName(0), "A1", &row); err != nil {
		t.Fatalf("failed to set sheet row: %v", err)
	}
	if err := f.SaveAs(filepath.Join(dir, "record202608.xlsx")); err != nil {
		t.Fatalf("failed to save workbook: %v", err)
	}

	rec, err := Load(dir, "202608")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	// The xlsx holds only the header; rows present means the CSV won.
	if len(rec.Rows) != 2 {
		t.Errorf("loaded %d rows, want 2 from the CSV", len(rec.Rows))
	}
}

func TestLoadMissingMonth(t *testing.T) {
	if _, err := Load(t.TempDir(), "209912"); err == nil {
		t.Error("Load of a missing month did not fail")
	}
}
