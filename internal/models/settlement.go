package models

import (
	"fmt"
	"time"
)

// Settlement history table columns.
const (
	ColSettledAt  = "精算日"
	ColPayer      = "支払者"
	ColPaidAmount = "金額"
	ColTotalSpent = "総支出"
)

// SettledAtFormat is the timestamp format of the 精算日 column.
const SettledAtFormat = "2006-01-02 15:04:05"

// Settlement is the outcome of closing out the current expense ledger:
// one participant pays the other half of the difference of their totals.
type Settlement struct {
	// SettledAt is when the settlement was computed.
	SettledAt time.Time

	// Payer is the participant who owes money, empty when both paid
	// the same amount.
	Payer string

	// Payee is the participant being paid, empty when Payer is empty.
	Payee string

	// Amount is half the absolute difference of the two totals. The
	// history row stores this value unrounded.
	Amount float64

	// TotalSpent is the sum of every expense in the ledger at
	// settlement time.
	TotalSpent int64
}

// NeedsPayment reports whether any money changes hands.
func (s Settlement) NeedsPayment() bool {
	return s.Payer != ""
}

// DisplayAmount renders Amount rounded to whole yen for display.
func (s Settlement) DisplayAmount() string {
	return fmt.Sprintf("¥%.0f", s.Amount)
}
