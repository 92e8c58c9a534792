// Package ledger holds the not-yet-settled expense records and the
// settlement arithmetic that closes out a period.
package ledger

import (
	"errors"

	"github.com/mnakagawa/kakei/internal/models"
)

// ErrNegativeAmount is returned when an expense with a negative amount is
// appended. Amounts are yen and never negative.
var ErrNegativeAmount = errors.New("expense amount must not be negative")

// Ledger is the current, not-yet-settled sequence of expenses. It keeps
// insertion order; no other ordering is guaranteed or required.
type Ledger struct {
	records []models.Expense
}

// New returns a ledger holding the given expenses in order.
func New(records ...models.Expense) *Ledger {
	l := &Ledger{}
	l.records = append(l.records, records...)
	return l
}

// Append adds one expense. There is no capacity limit and no validation
// beyond the non-negative amount invariant.
func (l *Ledger) Append(e models.Expense) error {
	if e.Amount < 0 {
		return ErrNegativeAmount
	}
	l.records = append(l.records, e)
	return nil
}

// TotalFor sums the amounts of every expense paid by the given person.
// Returns 0 when no expense matches.
func (l *Ledger) TotalFor(person string) int64 {
	var total int64
	for _, e := range l.records {
		if e.Person == person {
			total += e.Amount
		}
	}
	return total
}

// Clear removes every expense. This is how a period ends; it is not
// reversible.
func (l *Ledger) Clear() {
	l.records = nil
}

// All returns the expenses in insertion order. The slice is a copy.
func (l *Ledger) All() []models.Expense {
	out := make([]models.Expense, len(l.records))
	copy(out, l.records)
	return out
}

// Len returns the number of expenses currently held.
func (l *Ledger) Len() int {
	return len(l.records)
}
