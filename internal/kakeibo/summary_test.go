package kakeibo

import (
	"math"
	"strings"
	"testing"
)

func testRecords() *Records {
	header := []string{"日付", "分類", "金額", "収入/支出"}
	rows := [][]string{
		{"2026-08-01", "給与", "300000", "収入"},
		{"2026-08-05", "食費", "1,200", "支出"},
		{"2026-08-10", "食費", "800", "支出"},
		{"2026-08-12", "交通費", "2000", "支出"},
		{"2026-08-15", "副業", "50000", "収入"},
		{"2026-08-20", "振替", "10000", "振替"}, // neither income nor expense
	}
	rec := &Records{Columns: header}
	for _, r := range rows {
		m := map[string]string{}
		for i, c := range header {
			m[c] = r[i]
		}
		rec.Rows = append(rec.Rows, m)
	}
	return rec
}

func TestSummarize(t *testing.T) {
	s, err := Summarize(testRecords(), "分類")
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}

	if s.Income.Total != 350000 {
		t.Errorf("income total = %d, want 350000", s.Income.Total)
	}
	if s.Expense.Total != 4000 {
		t.Errorf("expense total = %d, want 4000", s.Expense.Total)
	}
	if s.Net() != 346000 {
		t.Errorf("net = %d, want 346000", s.Net())
	}

	// Expense groups sorted by amount descending.
	want := []GroupTotal{
		{Key: "交通費", Amount: 2000, Count: 1},
		{Key: "食費", Amount: 2000, Count: 2},
	}
	if s.Expense.GroupCount() != len(want) {
		t.Fatalf("expense group count = %d, want %d", s.Expense.GroupCount(), len(want))
	}
	for i, g := range s.Expense.Groups {
		if g != want[i] {
			t.Errorf("expense group %d = %+v, want %+v", i, g, want[i])
		}
	}

	if got := s.Expense.Mean(); got != 2000 {
		t.Errorf("expense mean = %v, want 2000", got)
	}
}

func TestSummarizeTieBreaksByKey(t *testing.T) {
	s, err := Summarize(testRecords(), "分類")
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}
	// 交通費 and 食費 both total 2000; the lexicographically smaller key
	// comes first.
	if s.Expense.Groups[0].Key != "交通費" {
		t.Errorf("first expense group = %q, want 交通費", s.Expense.Groups[0].Key)
	}
}

func TestSavingsRate(t *testing.T) {
	s, err := Summarize(testRecords(), "分類")
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}
	want := float64(346000) / 350000 * 100
	if math.Abs(s.SavingsRate()-want) > 1e-9 {
		t.Errorf("savings rate = %v, want %v", s.SavingsRate(), want)
	}

	empty := &Records{Columns: []string{"分類", "金額", "収入/支出"}}
	s2, err := Summarize(empty, "分類")
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}
	if s2.SavingsRate() != 0 {
		t.Errorf("savings rate with no income = %v, want 0", s2.SavingsRate())
	}
}

func TestSummarizeValidatesColumns(t *testing.T) {
	tests := []struct {
		name    string
		columns []string
		groupBy string
		wantErr string
	}{
		{"missing amount", []string{"分類", "収入/支出"}, "分類", "金額"},
		{"missing flow", []string{"分類", "金額"}, "分類", "収入/支出"},
		{"unknown group column", []string{"分類", "金額", "収入/支出"}, "店名", "group"},
		{"grouping by amount", []string{"分類", "金額", "収入/支出"}, "金額", "group"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Summarize(&Records{Columns: tt.columns}, tt.groupBy)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Summarize returned %v, want error mentioning %q", err, tt.wantErr)
			}
		})
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{"1200", 1200, false},
		{"1,200", 1200, false},
		{"¥1,200", 1200, false},
		{"￥300", 300, false},
		{" 500 ", 500, false},
		{"", 0, false},
		{"-700", -700, false},
		{"abc", 0, true},
	}

	for _, tt := range tests {
		got, err := parseAmount(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("parseAmount(%q) did not fail", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseAmount(%q) failed: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parseAmount(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
