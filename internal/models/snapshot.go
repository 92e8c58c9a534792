package models

import "time"

// Asset snapshot table columns. The six category columns between 日付 and
// 合計 are configured display names, not constants.
const (
	ColSnapshotDate = "日付"
	ColTotal        = "合計"
	ColChange       = "増減"
)

// ChangeInitial is the 増減 label of the first snapshot ever recorded
// (or of any snapshot whose predecessor total is zero).
const ChangeInitial = "initial"

// Snapshot is one dated set of per-category asset totals.
type Snapshot struct {
	// Date is the calendar date of the snapshot.
	Date time.Time

	// Values maps category name to amount in yen. A category the user
	// left at zero is filled in from the previous snapshot at
	// construction time; the stored value is always the resolved one.
	Values map[string]int64

	// Total is the sum of Values.
	Total int64

	// Change is the label of the delta versus the previous snapshot:
	// ChangeInitial, "+X.X%", "-X.X%" or "0.0%".
	Change string
}
