// Package assets maintains the chronological history of category-tagged
// asset snapshots, with carry-forward defaulting for unentered categories
// and a percentage delta label against the previous total.
package assets

import (
	"fmt"
	"sort"
	"time"

	"github.com/mnakagawa/kakei/internal/models"
)

// History is an in-memory view of the snapshot table. Iteration order is
// insertion order; only Latest (and the values derived from it) re-sorts
// by date, so out-of-order insertion is tolerated for the carry-forward
// queries but deliberately not normalized anywhere else.
type History struct {
	categories []string
	snaps      []models.Snapshot
}

// NewHistory returns a history over the given category names holding the
// given snapshots in order.
func NewHistory(categories []string, snaps ...models.Snapshot) *History {
	h := &History{categories: categories}
	h.snaps = append(h.snaps, snaps...)
	return h
}

// Categories returns the configured category names in column order.
func (h *History) Categories() []string {
	return h.categories
}

// All returns the snapshots in insertion order. The slice is a copy.
func (h *History) All() []models.Snapshot {
	out := make([]models.Snapshot, len(h.snaps))
	copy(out, h.snaps)
	return out
}

// Append adds one snapshot to the in-memory history. Callers persist
// first and append here only on success.
func (h *History) Append(s models.Snapshot) {
	h.snaps = append(h.snaps, s)
}

// Latest returns the snapshot with the maximum date, which is not
// necessarily the last-appended one. Among equal dates the
// earliest-inserted wins, matching a stable descending sort.
func (h *History) Latest() (models.Snapshot, bool) {
	if len(h.snaps) == 0 {
		return models.Snapshot{}, false
	}
	sorted := h.All()
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})
	return sorted[0], true
}

// PreviousValues returns the category values of the latest snapshot, or
// an all-zero mapping when the history is empty.
func (h *History) PreviousValues() map[string]int64 {
	values := make(map[string]int64, len(h.categories))
	latest, ok := h.Latest()
	for _, c := range h.categories {
		if ok {
			values[c] = latest.Values[c]
		} else {
			values[c] = 0
		}
	}
	return values
}

// PreviousTotal returns the latest snapshot's total; ok is false when the
// history is empty.
func (h *History) PreviousTotal() (int64, bool) {
	latest, ok := h.Latest()
	if !ok {
		return 0, false
	}
	return latest.Total, true
}

// Build constructs a snapshot for the given date from the entered values.
// A zero entered value doubles as "not entered" and is substituted with
// the carry-forward value from the latest snapshot. Entering an explicit
// zero is indistinguishable from leaving the field blank, a known quirk
// kept for compatibility with the stored data. Build does not modify the
// history; call Append after the snapshot has been persisted.
func (h *History) Build(date time.Time, entered map[string]int64) models.Snapshot {
	previous := h.PreviousValues()
	values := make(map[string]int64, len(h.categories))
	var total int64
	for _, c := range h.categories {
		v := entered[c]
		if v == 0 {
			v = previous[c]
		}
		values[c] = v
		total += v
	}

	prevTotal, ok := h.PreviousTotal()
	return models.Snapshot{
		Date:   date,
		Values: values,
		Total:  total,
		Change: ChangeLabel(total, prevTotal, ok),
	}
}

// ChangeLabel formats the period-over-period delta of total versus
// prevTotal. The first snapshot ever, and any snapshot following a zero
// total, is labeled as initial rather than dividing by zero.
func ChangeLabel(total, prevTotal int64, hasPrev bool) string {
	if !hasPrev || prevTotal == 0 {
		return models.ChangeInitial
	}
	rate := float64(total-prevTotal) / float64(prevTotal) * 100
	switch {
	case rate > 0:
		return fmt.Sprintf("+%.1f%%", rate)
	case rate < 0:
		return fmt.Sprintf("%.1f%%", rate)
	default:
		return "0.0%"
	}
}
