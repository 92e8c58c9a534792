package ledger

import (
	"time"

	"github.com/mnakagawa/kakei/internal/models"
)

// Settle converts the two participants' running totals into a single
// one-directional payment instruction: whoever paid less pays half of the
// difference. When both paid the same amount no payer is reported and the
// amount is zero. Settle is pure; archiving the result and clearing the
// ledger is the caller's job.
func Settle(l *Ledger, participantA, participantB string, now time.Time) models.Settlement {
	totalA := l.TotalFor(participantA)
	totalB := l.TotalFor(participantB)

	s := models.Settlement{
		SettledAt:  now,
		TotalSpent: totalA + totalB,
	}

	switch diff := totalA - totalB; {
	case diff > 0:
		s.Payer, s.Payee = participantB, participantA
		s.Amount = float64(diff) / 2
	case diff < 0:
		s.Payer, s.Payee = participantA, participantB
		s.Amount = float64(-diff) / 2
	}
	return s
}
