package kakeibo

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// GroupTotal is one group's summed amount.
type GroupTotal struct {
	Key    string
	Amount int64
	Count  int
}

// FlowSummary aggregates one side (income or expense) of a month.
type FlowSummary struct {
	// Groups is sorted by amount descending, key ascending on ties.
	Groups []GroupTotal
	Total  int64
}

// GroupCount returns the number of distinct groups.
func (f FlowSummary) GroupCount() int {
	return len(f.Groups)
}

// Mean returns the mean of the per-group sums, 0 when there are no groups.
func (f FlowSummary) Mean() float64 {
	if len(f.Groups) == 0 {
		return 0
	}
	return float64(f.Total) / float64(len(f.Groups))
}

// Summary is the monthly income/expense breakdown grouped by one column.
type Summary struct {
	GroupBy string
	Income  FlowSummary
	Expense FlowSummary
}

// Net returns income minus expenses.
func (s *Summary) Net() int64 {
	return s.Income.Total - s.Expense.Total
}

// SavingsRate returns the net balance as a percentage of income, 0 when
// there was no income.
func (s *Summary) SavingsRate() float64 {
	if s.Income.Total <= 0 {
		return 0
	}
	return float64(s.Net()) / float64(s.Income.Total) * 100
}

// Summarize groups the month's amounts by the given column, split into income
// and expense sides. Rows whose 収入/支出 value is neither 収入 nor 支出
// are skipped.
func Summarize(rec *Records, groupBy string) (*Summary, error) {
	if !rec.HasColumn(ColAmount) {
		return nil, fmt.Errorf("record file has no %s column", ColAmount)
	}
	if !rec.HasColumn(ColFlow) {
		return nil, fmt.Errorf("record file has no %s column", ColFlow)
	}
	if groupBy == ColAmount || !rec.HasColumn(groupBy) {
		return nil, fmt.Errorf("cannot group by %q", groupBy)
	}

	income := map[string]*GroupTotal{}
	expense := map[string]*GroupTotal{}
	for _, row := range rec.Rows {
		var groups map[string]*GroupTotal
		switch row[ColFlow] {
		case FlowIncome:
			groups = income
		case FlowExpense:
			groups = expense
		default:
			continue
		}

		amount, err := parseAmount(row[ColAmount])
		if err != nil {
			return nil, fmt.Errorf("bad %s value %q: %w", ColAmount, row[ColAmount], err)
		}
		key := row[groupBy]
		g, ok := groups[key]
		if !ok {
			g = &GroupTotal{Key: key}
			groups[key] = g
		}
		g.Amount += amount
		g.Count++
	}

	return &Summary{
		GroupBy: groupBy,
		Income:  flowSummary(income),
		Expense: flowSummary(expense),
	}, nil
}

func flowSummary(groups map[string]*GroupTotal) FlowSummary {
	var f FlowSummary
	for _, g := range groups {
		f.Groups = append(f.Groups, *g)
		f.Total += g.Amount
	}
	sort.Slice(f.Groups, func(i, j int) bool {
		if f.Groups[i].Amount != f.Groups[j].Amount {
			return f.Groups[i].Amount > f.Groups[j].Amount
		}
		return f.Groups[i].Key < f.Groups[j].Key
	})
	return f
}

// parseAmount reads a yen cell, tolerating the thousand separators and
// currency marks the exports sprinkle in.
func parseAmount(s string) (int64, error) {
	cleaned := strings.NewReplacer(",", "", "¥", "", "￥", "", " ", "").Replace(s)
	if cleaned == "" {
		return 0, nil
	}
	return strconv.ParseInt(cleaned, 10, 64)
}
