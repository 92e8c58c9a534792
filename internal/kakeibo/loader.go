// Package kakeibo summarizes the monthly budget record files exported by
// the banking apps: one record file per month, rows tagged as income or
// expense, amounts grouped by a caller-chosen column.
package kakeibo

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/japanese"
)

// Columns every record file must carry.
const (
	ColAmount = "金額"
	ColFlow   = "収入/支出"
)

// Values of the 収入/支出 column. Rows with any other value are ignored.
const (
	FlowIncome  = "収入"
	FlowExpense = "支出"
)

// Records is the parsed content of one monthly record file.
type Records struct {
	Columns []string
	Rows    []map[string]string
}

// HasColumn reports whether the file declared the given column.
func (r *Records) HasColumn(name string) bool {
	for _, c := range r.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Load reads the record file for yearMonth (YYYYMM) from dir, looking for
// record<yearMonth>.csv first and record<yearMonth>.xlsx second.
func Load(dir, yearMonth string) (*Records, error) {
	base := filepath.Join(dir, "record"+yearMonth)
	if _, err := os.Stat(base + ".csv"); err == nil {
		return loadCSV(base + ".csv")
	}
	if _, err := os.Stat(base + ".xlsx"); err == nil {
		return loadXLSX(base + ".xlsx")
	}
	return nil, fmt.Errorf("no record file for %s in %s", yearMonth, dir)
}

// loadCSV parses a CSV record file. The exports come in several encodings
// depending on which app produced them, so decoding is attempted as
// UTF-8, then Shift_JIS, then EUC-JP, then ISO-2022-JP.
func loadCSV(path string) (*Records, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if utf8.Valid(data) {
		return parseCSV(bytes.NewReader(data))
	}
	decoders := []encoding.Encoding{
		japanese.ShiftJIS,
		japanese.EUCJP,
		japanese.ISO2022JP,
	}
	for _, enc := range decoders {
		// The decoders substitute U+FFFD for bytes they cannot map instead
		// of failing, so treat any replacement rune as a wrong guess and
		// move on to the next encoding.
		decoded, err := enc.NewDecoder().Bytes(data)
		if err != nil || bytes.ContainsRune(decoded, utf8.RuneError) {
			continue
		}
		return parseCSV(bytes.NewReader(decoded))
	}
	return nil, fmt.Errorf("failed to decode %s with any known encoding", path)
}

func parseCSV(r io.Reader) (*Records, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	return fromRecords(records)
}

// loadXLSX parses the first sheet of an xlsx record file the same way the
// CSV path does.
func loadXLSX(path string) (*Records, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet: %w", err)
	}
	return fromRecords(rows)
}

func fromRecords(records [][]string) (*Records, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("record file is empty")
	}
	header := records[0]
	out := &Records{Columns: header}
	for _, rec := range records[1:] {
		row := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(rec) {
				row[col] = rec[i]
			}
		}
		out.Rows = append(out.Rows, row)
	}
	return out, nil
}
