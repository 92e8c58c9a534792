package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/mnakagawa/kakei/internal/models"
	"github.com/mnakagawa/kakei/internal/storage"
)

// HistoryRepository persists the append-only settlement history. History
// rows are never mutated or deleted here; rotation is someone else's
// concern.
type HistoryRepository struct {
	store storage.RowStore
}

// NewHistoryRepository creates a HistoryRepository over the given store.
func NewHistoryRepository(store storage.RowStore) *HistoryRepository {
	return &HistoryRepository{store: store}
}

// Append adds one settlement to the history. The 金額 column stores the
// unrounded amount; rounding is display-only.
func (r *HistoryRepository) Append(ctx context.Context, s models.Settlement) error {
	row := storage.Row{
		models.ColSettledAt:  s.SettledAt.Format(models.SettledAtFormat),
		models.ColPayer:      s.Payer,
		models.ColPaidAmount: strconv.FormatFloat(s.Amount, 'f', -1, 64),
		models.ColTotalSpent: strconv.FormatInt(s.TotalSpent, 10),
	}
	return r.store.AppendRows(ctx, storage.SettlementTable(), []storage.Row{row})
}

// List returns the settlement history in insertion order. Like the ledger
// read path, failures degrade to an empty history with a warning.
func (r *HistoryRepository) List(ctx context.Context) []models.Settlement {
	rows, err := r.store.ReadAll(ctx, storage.SettlementTable())
	if err != nil {
		slog.Warn("Settlement history read failed, showing an empty history", "error", err)
		return nil
	}

	out := make([]models.Settlement, 0, len(rows))
	for _, row := range rows {
		s, err := settlementFromRow(row)
		if err != nil {
			slog.Warn("Settlement history malformed, showing an empty history", "error", err)
			return nil
		}
		out = append(out, s)
	}
	return out
}

func settlementFromRow(row storage.Row) (models.Settlement, error) {
	settledAt, err := time.Parse(models.SettledAtFormat, row[models.ColSettledAt])
	if err != nil {
		return models.Settlement{}, fmt.Errorf("bad %s value %q: %w", models.ColSettledAt, row[models.ColSettledAt], err)
	}
	s := models.Settlement{
		SettledAt: settledAt,
		Payer:     row[models.ColPayer],
	}
	if v := row[models.ColPaidAmount]; v != "" {
		amount, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return models.Settlement{}, fmt.Errorf("bad %s value %q: %w", models.ColPaidAmount, v, err)
		}
		s.Amount = amount
	}
	if v := row[models.ColTotalSpent]; v != "" {
		total, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return models.Settlement{}, fmt.Errorf("bad %s value %q: %w", models.ColTotalSpent, v, err)
		}
		s.TotalSpent = total
	}
	return s, nil
}
